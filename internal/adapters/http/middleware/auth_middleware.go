package middleware

import (
	"errors"
	"strings"

	"gatepass/internal/config"
	"gatepass/internal/core/domain"
	"gatepass/internal/pkg/jwt"
	"gatepass/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware validates the bearer token issued at login
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return response.Unauthorized(c, "Access token required")
		}
		accessToken := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		c.Locals("userID", claims.UserID)
		c.Locals("username", claims.Username)
		c.Locals("role", claims.Role)

		return c.Next()
	}
}

// RoleMiddleware creates role-based authorization middleware
func RoleMiddleware(allowedRoles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		for _, allowedRole := range allowedRoles {
			if role == string(allowedRole) {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// ModeratorOrAdmin allows pass decisions
func ModeratorOrAdmin() fiber.Handler {
	return RoleMiddleware(domain.RoleModerator, domain.RoleAdmin)
}

// GatekeeperOrAdmin allows marking passes used
func GatekeeperOrAdmin() fiber.Handler {
	return RoleMiddleware(domain.RoleGatekeeper, domain.RoleAdmin)
}

// StaffOnly allows moderators, gatekeepers and admins
func StaffOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleModerator, domain.RoleGatekeeper, domain.RoleAdmin)
}

// Protect returns the handlers guarding a route. With REQUIRE_AUTH off it is empty.
func Protect(cfg *config.Config, guard fiber.Handler) []fiber.Handler {
	if !cfg.Auth.RequireAuth {
		return nil
	}
	return []fiber.Handler{AuthMiddleware(cfg), guard}
}
