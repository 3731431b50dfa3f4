// file: internals/features/users/auth/route/auth_route.go
package route

import (
	controller "ahspku_backend/internals/features/users/auth/controller"
	rateLimiter "ahspku_backend/internals/middlewares"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func AuthRoutes(app *fiber.App, db *gorm.DB) {
	authController := controller.NewAuthController(db)

	// Base: /api/auth
	baseAuth := app.Group("/api/auth")

	baseAuth.Post("/register", rateLimiter.LoginRateLimiter(), authController.Register)
	baseAuth.Post("/login", rateLimiter.LoginRateLimiter(), authController.Login)
}
