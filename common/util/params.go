package util

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// ParamInt64 reads a positive integer route parameter.
func ParamInt64(c *fiber.Ctx, key string) (int64, error) {
	raw := c.Params(key)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", key)
	}
	return id, nil
}

// Pagination reads page and limit from the query string, clamped to sane bounds.
func Pagination(c *fiber.Ctx) (page, limit int) {
	page = c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit = c.QueryInt("limit", DefaultPageLimit)
	if limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return page, limit
}

type Page struct {
	Items any   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

// FirstValidationError returns the first readable message of a validator error.
func FirstValidationError(err error) string {
	if msgs := GetValidationErrors(err); len(msgs) > 0 {
		return msgs[0]
	}
	return err.Error()
}
