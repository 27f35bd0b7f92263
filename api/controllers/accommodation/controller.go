package accommodation_controller

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	accommodationmodel "github.com/sunthewhat/event-cert-api/api/model/accommodationModel"
	"github.com/sunthewhat/event-cert-api/internal/cache"
	"github.com/sunthewhat/event-cert-api/type/response"
)

const cachePattern = "accommodations:*"

type AccommodationController struct {
	accommodationRepo accommodationmodel.IAccommodationRepository
	cache             *cache.Service
	ttl               time.Duration
}

func NewAccommodationController(accommodationRepo accommodationmodel.IAccommodationRepository, svc *cache.Service, ttl time.Duration) *AccommodationController {
	return &AccommodationController{accommodationRepo: accommodationRepo, cache: svc, ttl: ttl}
}

func (ctrl *AccommodationController) invalidate(ctx context.Context) {
	if err := ctrl.cache.InvalidatePattern(ctx, cachePattern); err != nil {
		slog.Warn("Accommodation cache invalidation failed", "error", err)
	}
}

func sendError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, accommodationmodel.ErrAccommodationNotFound),
		errors.Is(err, accommodationmodel.ErrReservationNotFound):
		return response.SendNotFound(c, err.Error())
	case errors.Is(err, accommodationmodel.ErrRoomFull):
		return response.SendConflict(c, err.Error())
	case errors.Is(err, accommodationmodel.ErrUnknownRoomType):
		return response.SendFailed(c, err.Error())
	}
	return response.SendInternalError(c, err)
}
