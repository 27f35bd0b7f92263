package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sunthewhat/event-cert-api/api"
	"github.com/sunthewhat/event-cert-api/common/config"
	"github.com/sunthewhat/event-cert-api/common/gorm"
	"github.com/sunthewhat/event-cert-api/common/mongo"
	"github.com/sunthewhat/event-cert-api/common/redis"
	"github.com/sunthewhat/event-cert-api/common/util"
)

func main() {
	isPushDB := flag.Bool("PushDB", false, "Run database migration")
	isRunAfter := flag.Bool("Run", false, "Run after db process")
	flag.Parse()

	config.LoadConfig()
	if *isPushDB {
		gorm.Push_db()
		if !*isRunAfter {
			return
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gorm.InitGorm()
	mongo.InitMongo()
	if err := redis.InitRedis(); err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}

	app, err := build(ctx)
	if err != nil {
		slog.Error("Failed to initialise application", "error", err)
		os.Exit(1)
	}
	defer app.close()

	util.StartCacheCleanupJob(ctx, app.cache, time.Minute)
	app.startWorkers(ctx)

	if err := api.InitFiber(ctx, app.fiber); err != nil {
		slog.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}
