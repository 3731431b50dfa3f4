// file: internals/route/index.go
package routes

import (
	"log"

	authMiddleware "ahspku_backend/internals/middlewares/auth"
	routeDetails "ahspku_backend/internals/route/details"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// ===================== AUTH =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, db)

	// ===================== PRICING =====================
	// JWT opsional: request tanpa token membaca/menulis scope GLOBAL,
	// request dengan token bekerja di scope user (copy-on-write).
	log.Println("[INFO] Setting up PRICING group...")
	pricing := app.Group("/api", authMiddleware.OptionalAuthMiddleware())

	routeDetails.PricingRoutes(pricing, db)
}
