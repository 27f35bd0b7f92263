package util

import (
	"context"
	"log/slog"
	"time"

	"github.com/sunthewhat/event-cert-api/internal/cache"
)

// StartCacheCleanupJob purges expired in-memory cache entries every interval
// until ctx is cancelled.
func StartCacheCleanupJob(ctx context.Context, svc *cache.Service, interval time.Duration) {
	if svc == nil {
		return
	}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				slog.Error("Panic occurred in cache cleanup job", "panic", r)
			}
		}()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				slog.Info("Cache cleanup job stopped")
				return
			case <-ticker.C:
				CleanupCache(ctx, svc)
			}
		}
	}()

	slog.Info("Cache cleanup job started successfully", "interval", interval.String())
}

func CleanupCache(ctx context.Context, svc *cache.Service) {
	if removed := svc.Cleanup(ctx); removed > 0 {
		stats := svc.Stats()
		slog.Debug("CleanupCache: removed expired entries", "removed", removed, "hits", stats.Hits, "misses", stats.Misses)
	}
}
