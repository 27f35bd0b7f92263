package gorm

import (
	"log/slog"
	"os"

	"github.com/sunthewhat/event-cert-api/common"
	"github.com/sunthewhat/event-cert-api/type/shared/model"
	"gorm.io/gorm"
)

// Models lists every table managed by migrations.
func Models() []any {
	return []any{
		new(model.Event),
		new(model.Attendee),
		new(model.Certificate),
		new(model.Setting),
		new(model.Accommodation),
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

func Push_db() {
	db, err := Open(*common.Config.Postgres)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := Migrate(db); err != nil {
		slog.Error("Failed to migrate database", "error", err)
		os.Exit(1)
	}

	slog.Info("Database migration completed successfully")
}
