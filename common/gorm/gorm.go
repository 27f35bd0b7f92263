package gorm

import (
	"log/slog"
	"os"
	"time"

	slogGorm "github.com/orandin/slog-gorm"
	"github.com/sunthewhat/event-cert-api/common"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

func InitGorm() {
	db, connectionErr := Open(*common.Config.Postgres)
	if connectionErr != nil {
		slog.Error("Failed to connect to database", "error", connectionErr)
		os.Exit(1)
	}

	if replicas := replicaDialectors(); len(replicas) > 0 {
		if err := db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: replicas,
			Policy:   dbresolver.RandomPolicy{},
		})); err != nil {
			slog.Error("Failed to register read replicas", "error", err)
			os.Exit(1)
		}
		slog.Info("GORM read replicas registered", "count", len(replicas))
	}

	slog.Info("GORM Connected!")

	common.Gorm = db
}

// Open connects with the slog-backed gorm logger.
func Open(dsn string) (*gorm.DB, error) {
	lg := slogGorm.New(
		slogGorm.WithHandler(slog.Default().Handler()),
		slogGorm.WithSlowThreshold(100*time.Millisecond),
	)

	return gorm.Open(connector(dsn), &gorm.Config{
		Logger: lg,
	})
}

func connector(dsn string) gorm.Dialector {
	return postgres.New(
		postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		},
	)
}

func replicaDialectors() []gorm.Dialector {
	var out []gorm.Dialector
	for _, dsn := range common.Config.PostgresReplicas {
		if dsn != nil && *dsn != "" {
			out = append(out, connector(*dsn))
		}
	}
	return out
}
