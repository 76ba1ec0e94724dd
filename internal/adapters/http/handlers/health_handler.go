package handlers

import (
	"context"
	"time"

	"gatepass/internal/adapters/persistence/repositories"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler handles liveness and health check endpoints
type HealthHandler struct {
	repo    repositories.SnapshotRepository
	appMode string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(repo repositories.SnapshotRepository, appMode string) *HealthHandler {
	return &HealthHandler{
		repo:    repo,
		appMode: appMode,
	}
}

// Test handles the liveness endpoint
// @Summary Liveness check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /test [get]
func (h *HealthHandler) Test(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Server is working",
	})
}

// HealthCheck handles health check
// @Summary Health check
// @Description Check API and snapshot storage health
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	storageStatus := "healthy"
	status := fiber.StatusOK
	if err := h.repo.Ping(ctx); err != nil {
		storageStatus = "unhealthy"
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"success": status == fiber.StatusOK,
		"mode":    h.appMode,
		"checks": fiber.Map{
			"api":     "healthy",
			"storage": storageStatus,
		},
	})
}
