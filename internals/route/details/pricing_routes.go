package details

import (
	ahspRoute "ahspku_backend/internals/features/pricing/ahsp/route"
	hspRoute "ahspku_backend/internals/features/pricing/hsp/route"
	importRoute "ahspku_backend/internals/features/pricing/importer/route"
	masterRoute "ahspku_backend/internals/features/pricing/master/route"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Semua surface pricing: master items, katalog HSP, AHSP, dan importer.
// Dipasang di group dengan OptionalAuth → tanpa login bekerja di scope GLOBAL,
// dengan login bekerja di scope user.
func PricingRoutes(api fiber.Router, db *gorm.DB) {
	masterRoute.MasterItemRoutes(api, db)
	hspRoute.HSPRoutes(api, db)
	ahspRoute.AHSPRoutes(api, db)
	importRoute.ImportRoutes(api, db)
}
