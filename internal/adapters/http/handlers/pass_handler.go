package handlers

import (
	"errors"
	"log"

	"gatepass/internal/core/domain"
	"gatepass/internal/core/services"
	"gatepass/internal/pkg/pagination"
	"gatepass/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PassHandler handles gate pass endpoints
type PassHandler struct {
	passService *services.PassService
}

// NewPassHandler creates a new pass handler
func NewPassHandler(passService *services.PassService) *PassHandler {
	return &PassHandler{
		passService: passService,
	}
}

// Create handles a new pass request
// @Summary Request a pass
// @Tags Passes
// @Accept json
// @Produce json
// @Param body body services.CreatePassInput true "Pass request"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /passes [post]
func (h *PassHandler) Create(c *fiber.Ctx) error {
	var req services.CreatePassInput
	if err := parseBody(c, &req); err != nil {
		return response.BadRequest(c, MsgInvalidJSON)
	}

	pass, err := h.passService.Create(c.UserContext(), &req)
	if err != nil {
		return err
	}

	return response.Success(c, "", fiber.Map{"pass": pass})
}

// ListAll returns every pass
// @Summary List passes
// @Tags Passes
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} map[string]interface{}
// @Router /passes [get]
func (h *PassHandler) ListAll(c *fiber.Ctx) error {
	return respondPasses(c, h.passService.ListAll(c.UserContext()))
}

// ListByStudent returns the passes of one student
// @Summary List a student's passes
// @Tags Passes
// @Produce json
// @Param studentId path string true "Student ID"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} map[string]interface{}
// @Router /passes/student/{studentId} [get]
func (h *PassHandler) ListByStudent(c *fiber.Ctx) error {
	return respondPasses(c, h.passService.ListByStudent(c.UserContext(), c.Params("studentId")))
}

// GetByID returns one pass
// @Summary Get pass
// @Tags Passes
// @Produce json
// @Param passId path string true "Pass ID"
// @Success 200 {object} map[string]interface{}
// @Router /passes/{passId} [get]
func (h *PassHandler) GetByID(c *fiber.Ctx) error {
	pass, err := h.passService.GetByID(c.UserContext(), c.Params("passId"))
	if err != nil {
		return passFailure(c, err)
	}
	return response.Success(c, "", fiber.Map{"pass": pass})
}

// UpdateStatus records a moderator decision
// @Summary Approve or reject a pass
// @Tags Passes
// @Accept json
// @Produce json
// @Param passId path string true "Pass ID"
// @Param body body services.UpdateStatusInput true "Decision"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Security BearerAuth
// @Router /passes/{passId} [put]
func (h *PassHandler) UpdateStatus(c *fiber.Ctx) error {
	var req services.UpdateStatusInput
	if err := parseBody(c, &req); err != nil {
		return response.BadRequest(c, MsgInvalidJSON)
	}

	pass, err := h.passService.UpdateStatus(c.UserContext(), c.Params("passId"), &req)
	if err != nil {
		return passFailure(c, err)
	}
	return response.Success(c, "", fiber.Map{"pass": pass})
}

// MarkUsed records use of an approved pass at the gate
// @Summary Mark pass used
// @Tags Passes
// @Produce json
// @Param passId path string true "Pass ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /passes/{passId}/use [put]
func (h *PassHandler) MarkUsed(c *fiber.Ctx) error {
	pass, err := h.passService.MarkUsed(c.UserContext(), c.Params("passId"))
	if err != nil {
		return passFailure(c, err)
	}
	return response.Success(c, "", fiber.Map{"pass": pass})
}

// respondPasses writes a pass list, paged when page or limit is given
func respondPasses(c *fiber.Ctx, passes []domain.Pass) error {
	if !pagination.Requested(c) {
		return response.Success(c, "", fiber.Map{"passes": passes})
	}

	params := pagination.GetParams(c)
	return response.Success(c, "", fiber.Map{
		"passes": pagination.Slice(passes, params),
		"meta":   pagination.GetMeta(params, int64(len(passes))),
	})
}

// passFailure maps lifecycle errors to logical failures
func passFailure(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrPassNotFound):
		return response.Fail(c, "Pass not found")
	case errors.Is(err, domain.ErrPassNotApproved):
		return response.Fail(c, "Pass not approved")
	default:
		log.Printf("❌ Pass operation failed: %v", err)
		return err
	}
}
