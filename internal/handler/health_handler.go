package handler

import (
	"hsc-mapper/internal/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
)

// HealthHandler reports liveness of the service's dependencies
type HealthHandler struct {
	db    *sqlx.DB
	cache domain.Cache
}

func NewHealthHandler(db *sqlx.DB, cache domain.Cache) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// Health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /healthz [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	status := fiber.Map{"status": "ok"}
	code := fiber.StatusOK

	if err := h.db.PingContext(c.Context()); err != nil {
		status["db"] = err.Error()
		code = fiber.StatusServiceUnavailable
	}
	if h.cache != nil {
		if err := h.cache.Ping(c.Context()); err != nil {
			status["redis"] = err.Error()
			code = fiber.StatusServiceUnavailable
		}
	}
	if code != fiber.StatusOK {
		status["status"] = "degraded"
	}

	return c.Status(code).JSON(status)
}
