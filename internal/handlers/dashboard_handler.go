package handlers

import (
	"time"

	"inventory/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// DashboardHandler serves the dashboard summary and health checks.
type DashboardHandler struct {
	service *services.DashboardService
	ping    func() error
}

// NewDashboardHandler creates a new DashboardHandler. ping reports database reachability.
func NewDashboardHandler(service *services.DashboardService, ping func() error) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		ping:    ping,
	}
}

func (h *DashboardHandler) RegisterRoutes(router fiber.Router) {
	dashboardRoutes := router.Group("/dashboard")
	dashboardRoutes.Get("/stats", h.HandleGetStats)
	dashboardRoutes.Get("/health", h.HandleHealth)
}

// HandleGetStats returns totals and the current low stock list.
func (h *DashboardHandler) HandleGetStats(c *fiber.Ctx) error {
	stats, err := h.service.GetStats()
	if err != nil {
		return respondError(c, err, "Could not compute dashboard stats")
	}
	return c.JSON(stats)
}

// HandleHealth answers 503 when the database cannot be reached.
func (h *DashboardHandler) HandleHealth(c *fiber.Ctx) error {
	database := "up"
	status := fiber.StatusOK
	if h.ping != nil {
		if err := h.ping(); err != nil {
			log.Warn().Err(err).Msg("database health check failed")
			database = "down"
			status = fiber.StatusServiceUnavailable
		}
	}
	state := "healthy"
	if status != fiber.StatusOK {
		state = "unhealthy"
	}
	return c.Status(status).JSON(fiber.Map{
		"status":   state,
		"database": database,
		"time":     time.Now().UTC().Format(time.RFC3339),
	})
}
