package handlers

import (
	"errors"
	"log"

	"gatepass/internal/core/domain"
	"gatepass/internal/core/services"
	"gatepass/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles login and registration endpoints
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login handles user login
// @Summary Login
// @Description Authenticate with username and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.LoginInput true "Login credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req services.LoginInput
	if err := parseBody(c, &req); err != nil {
		return response.BadRequest(c, MsgInvalidJSON)
	}

	if req.Username == "" || req.Password == "" {
		return response.Fail(c, "Username and password are required")
	}

	result, err := h.authService.Login(c.UserContext(), &req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return response.Fail(c, "Invalid credentials")
		}
		log.Printf("❌ Login error: %v", err)
		return response.Fail(c, "Server error during login")
	}

	return response.Success(c, "", fiber.Map{
		"user":  result.User,
		"token": result.AccessToken,
	})
}

// Register handles student self-registration
// @Summary Register student
// @Description Create a student account; the student ID becomes the username
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.RegisterInput true "Registration data"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req services.RegisterInput
	if err := parseBody(c, &req); err != nil {
		return response.BadRequest(c, MsgInvalidJSON)
	}

	user, err := h.authService.Register(c.UserContext(), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingFields):
			return response.Fail(c, "All fields are required")
		case errors.Is(err, domain.ErrDuplicateStudentID):
			return response.Fail(c, "Student ID already exists")
		case errors.Is(err, domain.ErrDuplicateEmail):
			return response.Fail(c, "Email already registered")
		default:
			log.Printf("❌ Registration error: %v", err)
			return response.Fail(c, "Server error during registration")
		}
	}

	return response.Success(c, "Registration successful", fiber.Map{
		"user": user,
	})
}
