package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// MsgInvalidJSON is returned with 400 when a request body cannot be decoded
const MsgInvalidJSON = "Invalid JSON format in request body"

// parseBody decodes JSON or urlencoded bodies into out.
// Empty bodies and other content types leave out untouched.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if len(c.Body()) == 0 {
		return nil
	}

	ctype := strings.ToLower(string(c.Request().Header.ContentType()))
	if !strings.HasPrefix(ctype, fiber.MIMEApplicationJSON) &&
		!strings.HasPrefix(ctype, fiber.MIMEApplicationForm) {
		return nil
	}
	return c.BodyParser(out)
}
