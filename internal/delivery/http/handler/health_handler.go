package handler

import (
	"context"
	"time"

	"skill-matrix/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db    Pinger
	cache Pinger
}

func NewHealthHandler(db, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

// Health reports 503 when the database is down. A missing cache only
// degrades search, so it is reported without failing the check.
func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	checks := map[string]string{"database": "disabled", "cache": "disabled"}
	status := fiber.StatusOK

	if h.db != nil {
		checks["database"] = "up"
		if err := h.db.Ping(ctx); err != nil {
			checks["database"] = "down"
			status = fiber.StatusServiceUnavailable
		}
	}
	if h.cache != nil {
		checks["cache"] = "up"
		if err := h.cache.Ping(ctx); err != nil {
			checks["cache"] = "down"
		}
	}

	msg := response.MessageOK
	if status != fiber.StatusOK {
		msg = "unavailable"
	}
	return response.Success(c, status, msg, checks)
}
