// file: internals/middlewares/auth/auth_middleware.go
package auth

import (
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"ahspku_backend/internals/configs"
)

// AuthMiddleware: wajib login. Verifikasi Bearer JWT lalu simpan user_id ke
// Locals untuk resolusi scope di controller.
func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := extractBearerToken(c)
		if tokenString == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Missing token")
		}
		userID, err := parseUserID(tokenString)
		if err != nil {
			log.Println("[ERROR] Gagal parse token:", err)
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token invalid")
		}
		c.Locals("user_id", userID)
		return c.Next()
	}
}

// OptionalAuthMiddleware: identitas caller opsional — tanpa token request
// tetap jalan di scope GLOBAL; token invalid tetap ditolak (bukan diabaikan
// diam-diam).
func OptionalAuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := extractBearerToken(c)
		if tokenString == "" {
			return c.Next()
		}
		userID, err := parseUserID(tokenString)
		if err != nil {
			log.Println("[ERROR] Gagal parse token:", err)
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token invalid")
		}
		c.Locals("user_id", userID)
		return c.Next()
	}
}

func extractBearerToken(c *fiber.Ctx) string {
	if v := strings.TrimSpace(c.Cookies("access_token")); v != "" {
		return v
	}
	const p = "Bearer "
	auth := c.Get("Authorization")
	if strings.HasPrefix(auth, p) {
		return strings.TrimSpace(auth[len(p):])
	}
	return ""
}

func parseUserID(tokenString string) (string, error) {
	secretKey := configs.JWTSecret
	if secretKey == "" {
		return "", fiber.NewError(fiber.StatusInternalServerError, "Missing JWT Secret")
	}

	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Unexpected signing method")
		}
		return []byte(secretKey), nil
	}); err != nil {
		return "", err
	}

	if exp, ok := claims["exp"].(float64); ok {
		if time.Now().After(time.Unix(int64(exp), 0).Add(30 * time.Second)) {
			return "", fiber.NewError(fiber.StatusUnauthorized, "Token expired")
		}
	}

	id, ok := claims["id"].(string)
	if !ok || strings.TrimSpace(id) == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Invalid or missing user ID")
	}
	return strings.TrimSpace(id), nil
}
