// file: internals/features/pricing/master/route/master_route.go
package route

import (
	controller "ahspku_backend/internals/features/pricing/master/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Base: /api/master-items
func MasterItemRoutes(api fiber.Router, db *gorm.DB) {
	ctl := controller.NewMasterItemController(db)

	items := api.Group("/master-items")
	items.Get("/", ctl.List)
	items.Post("/", ctl.Create)
	items.Patch("/:id", ctl.Patch)
	items.Delete("/:id", ctl.Delete)
}
