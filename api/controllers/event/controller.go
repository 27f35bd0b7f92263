package event_controller

import (
	"context"
	"errors"
	"log/slog"
	"time"

	eventmodel "github.com/sunthewhat/event-cert-api/api/model/eventModel"
	"github.com/sunthewhat/event-cert-api/internal/cache"
)

const cachePattern = "events:*"

var errEventNotFound = errors.New("event not found")

// EventController handles event requests. Reads go through the cache.
type EventController struct {
	eventRepo eventmodel.IEventRepository
	cache     *cache.Service
	ttl       time.Duration
}

func NewEventController(eventRepo eventmodel.IEventRepository, svc *cache.Service, ttl time.Duration) *EventController {
	return &EventController{eventRepo: eventRepo, cache: svc, ttl: ttl}
}

func (ctrl *EventController) invalidate(ctx context.Context) {
	if err := ctrl.cache.InvalidatePattern(ctx, cachePattern); err != nil {
		slog.Warn("Event cache invalidation failed", "error", err)
	}
}
