package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/edumarket/elearn-api/internal/utils"
)

// JWTProtected returns a middleware that validates JWT bearer tokens and
// binds the caller's account to the request.
func JWTProtected(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authorization := c.Get("Authorization")
		if authorization == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "authorization header missing")
		}

		const bearer = "Bearer "
		if !strings.HasPrefix(strings.ToLower(authorization), strings.ToLower(bearer)) {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid authorization header")
		}

		tokenString := strings.TrimSpace(authorization[len(bearer):])
		if tokenString == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token claims")
		}

		account := extractAccountFromClaims(claims)
		if account == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "token carries no account")
		}
		c.Locals("account", account)

		return c.Next()
	}
}

func extractAccountFromClaims(claims jwt.MapClaims) string {
	keys := []string{"sub", "account"}
	for _, key := range keys {
		if value, ok := claims[key]; ok {
			if account, ok := value.(string); ok {
				if trimmed := strings.TrimSpace(account); trimmed != "" {
					return trimmed
				}
			}
		}
	}

	return ""
}
