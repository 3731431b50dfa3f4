// file: internals/features/pricing/importer/route/import_route.go
package route

import (
	controller "ahspku_backend/internals/features/pricing/importer/controller"
	rateLimiter "ahspku_backend/internals/middlewares"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Base: /api/import
func ImportRoutes(api fiber.Router, db *gorm.DB) {
	ctl := controller.NewImportController(db)

	imp := api.Group("/import")
	imp.Post("/hsp", rateLimiter.ImportRateLimiter(), ctl.ImportXLSX)
	imp.Get("/sessions", ctl.ListSessions)
}
