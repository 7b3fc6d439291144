package serverutils

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// LocalsVaultSession is the ctx.Locals key carrying the unlocked vault
// session id extracted from the request token.
const LocalsVaultSession = "vault_session_id"

// VaultSession extracts the vault session token (Bearer header) and stores
// its session id in Locals. It never rejects on a missing token: with the
// vault disabled no token exists, and with the vault locked the services
// answer with their own error. A token that is present but unverifiable is
// rejected outright.
func VaultSession(secret string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
			return ctx.Next()
		}
		tokenStr := authHeader[7:]

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.ErrUnauthorized
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Invalid vault token"))
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Invalid vault claims"))
		}

		if sessionId, ok := claims["session_id"].(string); ok {
			ctx.Locals(LocalsVaultSession, sessionId)
		}
		return ctx.Next()
	}
}
