// file: internals/features/pricing/ahsp/route/ahsp_route.go
package route

import (
	controller "ahspku_backend/internals/features/pricing/ahsp/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Base: /api/ahsp
func AHSPRoutes(api fiber.Router, db *gorm.DB) {
	ctl := controller.NewAHSPController(db)

	ahsp := api.Group("/ahsp")

	// komponen diakses by ID, jadi harus didaftarkan sebelum /:kode
	ahsp.Patch("/components/:id", ctl.PatchComponent)
	ahsp.Delete("/components/:id", ctl.DeleteComponent)

	ahsp.Get("/:kode", ctl.GetByKode)
	ahsp.Put("/:kode/overhead", ctl.SetOverheadByKode)
	ahsp.Post("/:kode/components", ctl.AddComponentByKode)
	ahsp.Post("/:kode/recompute", ctl.RecomputeByKode)

	// fan-out recompute untuk semua resep yang memakai master item tsb
	api.Post("/master-items/:id/recompute", ctl.RecomputeForMasterItem)
}
