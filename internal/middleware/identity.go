package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// LocalHandle is the Fiber locals key holding the caller's handle.
const LocalHandle = "handle"

// APIKeyHeader carries the caller handle directly.
const APIKeyHeader = "api-key"

// Identity resolves the caller's handle from either an api-key header or a
// Bearer JWT whose subject is the handle. Requests without credentials are
// rejected with 401; unknown handles are left for the repositories to reject.
func Identity(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if key := strings.TrimSpace(c.Get(APIKeyHeader)); key != "" {
			setHandle(c, key)
			return c.Next()
		}

		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return unauthorized(c, "api-key or Authorization header required")
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return unauthorized(c, "Invalid authorization header format")
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid {
			return unauthorized(c, "Invalid or expired token")
		}

		subject, err := token.Claims.GetSubject()
		if err != nil || subject == "" {
			return unauthorized(c, "Invalid token structure - missing subject")
		}

		setHandle(c, subject)
		return c.Next()
	}
}

// setHandle stores the handle in locals and in the user context, since
// Identity runs after ContextMiddleware on the /api group.
func setHandle(c *fiber.Ctx, handle string) {
	c.Locals(LocalHandle, handle)
	c.SetUserContext(context.WithValue(c.UserContext(), HandleKey, handle))
}

// HandleFrom returns the caller handle stored by Identity.
func HandleFrom(c *fiber.Ctx) string {
	handle, _ := c.Locals(LocalHandle).(string)
	return handle
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"result":        false,
		"error_type":    "UNAUTHORIZED",
		"error_message": message,
	})
}
