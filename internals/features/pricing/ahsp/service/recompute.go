// file: internals/features/pricing/ahsp/service/recompute.go
package service

import (
	"context"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	ahspModel "ahspku_backend/internals/features/pricing/ahsp/model"
	hspModel "ahspku_backend/internals/features/pricing/hsp/model"
	masterModel "ahspku_backend/internals/features/pricing/master/model"
)

/* =========================================================
   RecomputeService: propagasi harga master → resep → item
   ========================================================= */

type RecomputeService struct {
	DB *gorm.DB
}

func NewRecomputeService(db *gorm.DB) *RecomputeService {
	return &RecomputeService{DB: db}
}

// RecomputeRecipe menyegarkan seluruh cache satu resep dalam SATU transaksi:
// komponen (effective/subtotal), resep (D/E/F), dan harga item induk.
// Harga master dibaca DI DALAM transaksi yang sama dengan tulisannya —
// tidak ada snapshot harga di luar batas transaksi.
func (s *RecomputeService) RecomputeRecipe(ctx context.Context, recipeID uuid.UUID) (*RecipeTotals, error) {
	var totals *RecipeTotals

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe ahspModel.AHSPRecipeModel
		if er := tx.First(&recipe, "ahsp_recipe_id = ?", recipeID).Error; er != nil {
			if errors.Is(er, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Resep AHSP tidak ditemukan")
			}
			return er
		}

		var components []ahspModel.AHSPComponentModel
		if er := tx.
			Where("ahsp_component_recipe_id = ?", recipe.AHSPRecipeID).
			Order("ahsp_component_group ASC, ahsp_component_order ASC").
			Find(&components).Error; er != nil {
			return er
		}

		livePrices, er := loadLivePrices(tx, components)
		if er != nil {
			return er
		}

		t := DeriveComponents(components, livePrices, recipe.AHSPRecipeOverheadPercent)

		for i := range components {
			c := &components[i]
			if er := tx.Model(&ahspModel.AHSPComponentModel{}).
				Where("ahsp_component_id = ?", c.AHSPComponentID).
				Updates(map[string]any{
					"ahsp_component_effective_unit_price": c.AHSPComponentEffectiveUnitPrice,
					"ahsp_component_subtotal":             c.AHSPComponentSubtotal,
				}).Error; er != nil {
				return er
			}
		}

		if er := tx.Model(&ahspModel.AHSPRecipeModel{}).
			Where("ahsp_recipe_id = ?", recipe.AHSPRecipeID).
			Updates(map[string]any{
				"ahsp_recipe_subtotal_abc":     t.SubtotalABC,
				"ahsp_recipe_overhead_amount":  t.OverheadAmount,
				"ahsp_recipe_final_unit_price": t.FinalUnitPrice,
			}).Error; er != nil {
			return er
		}

		res := tx.Model(&hspModel.HSPItemModel{}).
			Where("hsp_item_id = ?", recipe.AHSPRecipeHSPItemID).
			Update("hsp_item_harga", t.FinalUnitPrice)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// resep yatim: item induk hilang — inkonsistensi internal
			return fiber.NewError(fiber.StatusInternalServerError, "Item induk resep tidak ditemukan saat recompute")
		}

		totals = &t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return totals, nil
}

// RecomputeItem: recompute by item id (resep wajib ada).
func (s *RecomputeService) RecomputeItem(ctx context.Context, itemID uuid.UUID) (*RecipeTotals, error) {
	var recipe ahspModel.AHSPRecipeModel
	if err := s.DB.WithContext(ctx).
		First(&recipe, "ahsp_recipe_hsp_item_id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Item tidak memiliki resep AHSP")
		}
		return nil, err
	}
	return s.RecomputeRecipe(ctx, recipe.AHSPRecipeID)
}

/* =========================================================
   Fan-out per master item
   ========================================================= */

type RecomputeFailure struct {
	RecipeID uuid.UUID `json:"recipe_id"`
	Error    string    `json:"error"`
}

type RecomputeReport struct {
	MasterItemID uuid.UUID          `json:"master_item_id"`
	Affected     int                `json:"affected"`
	Succeeded    int                `json:"succeeded"`
	Failures     []RecomputeFailure `json:"failures,omitempty"`
}

// RecomputeForMasterItem mencari semua resep (lintas scope) yang komponennya
// merujuk master item tsb lalu me-recompute MASING-MASING dalam transaksi
// terpisah: satu resep gagal tidak menggagalkan saudaranya.
func (s *RecomputeService) RecomputeForMasterItem(ctx context.Context, masterItemID uuid.UUID) (*RecomputeReport, error) {
	var recipeIDs []uuid.UUID
	if err := s.DB.WithContext(ctx).
		Model(&ahspModel.AHSPComponentModel{}).
		Distinct("ahsp_component_recipe_id").
		Where("ahsp_component_master_item_id = ?", masterItemID).
		Pluck("ahsp_component_recipe_id", &recipeIDs).Error; err != nil {
		return nil, err
	}

	report := &RecomputeReport{MasterItemID: masterItemID, Affected: len(recipeIDs)}
	for _, rid := range recipeIDs {
		if _, err := s.RecomputeRecipe(ctx, rid); err != nil {
			log.Printf("[ERROR] recompute resep %s gagal: %v", rid, err)
			report.Failures = append(report.Failures, RecomputeFailure{RecipeID: rid, Error: err.Error()})
			continue
		}
		report.Succeeded++
	}
	return report, nil
}

func loadLivePrices(tx *gorm.DB, components []ahspModel.AHSPComponentModel) (map[string]float64, error) {
	if len(components) == 0 {
		return map[string]float64{}, nil
	}
	ids := make([]uuid.UUID, 0, len(components))
	seen := make(map[uuid.UUID]struct{}, len(components))
	for i := range components {
		id := components[i].AHSPComponentMasterItemID
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	var masters []masterModel.MasterItemModel
	if err := tx.Where("master_item_id IN ?", ids).Find(&masters).Error; err != nil {
		return nil, err
	}
	prices := make(map[string]float64, len(masters))
	for i := range masters {
		prices[masters[i].MasterItemID.String()] = masters[i].MasterItemPrice
	}
	return prices, nil
}
