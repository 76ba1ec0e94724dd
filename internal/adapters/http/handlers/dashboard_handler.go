package handlers

import (
	"gatepass/internal/core/services"
	"gatepass/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles dashboard endpoints
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// GetStaffDashboard returns the staff overview
// @Summary Staff Dashboard
// @Description User counts by role, pass counts by status and recent passes
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /dashboard [get]
func (h *DashboardHandler) GetStaffDashboard(c *fiber.Ctx) error {
	data := h.dashboardService.GetStaffDashboard(c.UserContext())
	return response.Success(c, "", fiber.Map{"dashboard": data})
}

// GetStudentDashboard returns one student's pass overview
// @Summary Student Dashboard
// @Tags Dashboard
// @Produce json
// @Param studentId path string true "Student ID"
// @Success 200 {object} map[string]interface{}
// @Router /dashboard/student/{studentId} [get]
func (h *DashboardHandler) GetStudentDashboard(c *fiber.Ctx) error {
	data := h.dashboardService.GetStudentDashboard(c.UserContext(), c.Params("studentId"))
	return response.Success(c, "", fiber.Map{"dashboard": data})
}
