// file: internals/features/pricing/hsp/route/hsp_route.go
package route

import (
	controller "ahspku_backend/internals/features/pricing/hsp/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Base: /api/hsp
func HSPRoutes(api fiber.Router, db *gorm.DB) {
	categoryCtl := controller.NewHSPCategoryController(db)
	itemCtl := controller.NewHSPItemController(db)

	hsp := api.Group("/hsp")

	categories := hsp.Group("/categories")
	categories.Get("/", categoryCtl.List)
	categories.Post("/", categoryCtl.Create)

	items := hsp.Group("/items")
	items.Get("/", itemCtl.List)
	items.Post("/", itemCtl.Create)
	items.Get("/:kode", itemCtl.GetByKode)
	items.Patch("/:kode", itemCtl.PatchByKode)
	items.Delete("/:kode", itemCtl.DeleteByKode)
}
