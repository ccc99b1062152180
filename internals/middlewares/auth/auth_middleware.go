// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"shkola_backend/internals/configs"
)

// AuthMiddleware validates the bearer token and stores user_id and
// roles in Locals for downstream handlers.
func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		secretKey := configs.JWTSecret
		if secretKey == "" {
			log.Println("[ERROR] JWT_SECRET is empty")
			return fiber.NewError(fiber.StatusInternalServerError, "Missing JWT Secret")
		}

		claims := jwt.MapClaims{}
		parser := jwt.Parser{SkipClaimsValidation: true}
		if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(secretKey), nil
		}); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token parse error")
		}

		if err := validateTokenExpiry(claims, 30*time.Second); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token expired")
		}

		userID, err := extractUserID(claims)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Invalid or missing user ID")
		}
		c.Locals("user_id", userID.String())
		storeRolesToLocals(c, claims)

		return c.Next()
	}
}

func extractBearerToken(c *fiber.Ctx) (string, error) {
	header := c.Get("Authorization")
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") && parts[1] != "" {
			return parts[1], nil
		}
		return "", fiber.NewError(fiber.StatusUnauthorized, "Invalid Authorization header")
	}
	if cookie := c.Cookies("access_token"); cookie != "" {
		return cookie, nil
	}
	return "", fiber.NewError(fiber.StatusUnauthorized, "Missing Authorization header")
}

// validateTokenExpiry checks exp with a small leeway for clock skew.
func validateTokenExpiry(claims jwt.MapClaims, leeway time.Duration) error {
	expRaw, ok := claims["exp"]
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "missing exp claim")
	}
	expFloat, ok := expRaw.(float64)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid exp claim")
	}
	expiry := time.Unix(int64(expFloat), 0)
	if time.Now().After(expiry.Add(leeway)) {
		return fiber.NewError(fiber.StatusUnauthorized, "token expired")
	}
	return nil
}

func extractUserID(claims jwt.MapClaims) (uuid.UUID, error) {
	raw, ok := claims["user_id"].(string)
	if !ok || raw == "" {
		// some tokens carry it in sub
		raw, ok = claims["sub"].(string)
		if !ok || raw == "" {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "missing user_id")
		}
	}
	return uuid.Parse(raw)
}

func storeRolesToLocals(c *fiber.Ctx, claims jwt.MapClaims) {
	roles := []string{}
	if raw, ok := claims["roles"].([]interface{}); ok {
		for _, r := range raw {
			if s, ok := r.(string); ok {
				roles = append(roles, s)
			}
		}
	}
	c.Locals("roles", roles)
}
