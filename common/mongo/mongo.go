package mongo

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/sunthewhat/event-cert-api/common"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// InitMongo connects when a mongo URI is configured. Without one the operation
// log writes to local files instead.
func InitMongo() {
	if common.Config.Mongo == nil || *common.Config.Mongo == "" {
		slog.Info("MongoDB not configured, operation log falls back to files")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	clientOptions := options.Client().ApplyURI(*common.Config.Mongo)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		slog.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}

	if err = client.Ping(ctx, nil); err != nil {
		slog.Error("Failed to ping MongoDB", "error", err)
		os.Exit(1)
	}

	database := "eventcert"
	if common.Config.MongoDatabase != nil && *common.Config.MongoDatabase != "" {
		database = *common.Config.MongoDatabase
	}

	slog.Info("MongoDB Connected!", "database", database)

	common.Mongo = client.Database(database)
}
