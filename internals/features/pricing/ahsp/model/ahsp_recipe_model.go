// file: internals/features/pricing/ahsp/model/ahsp_recipe_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Model: ahsp_recipes
   ========================= */

// AHSPRecipeModel: 1:1 dengan hsp_items, scope wajib sama dengan item induk.
// Kolom subtotal/overhead/final hanyalah cache hasil recompute — bukan
// source of truth.
type AHSPRecipeModel struct {
	AHSPRecipeID uuid.UUID `json:"ahsp_recipe_id" gorm:"column:ahsp_recipe_id;type:uuid;primaryKey;default:gen_random_uuid()"`

	AHSPRecipeScope string `json:"ahsp_recipe_scope" gorm:"column:ahsp_recipe_scope;type:varchar(40);not null;default:'GLOBAL'"`

	AHSPRecipeHSPItemID uuid.UUID `json:"ahsp_recipe_hsp_item_id" gorm:"column:ahsp_recipe_hsp_item_id;type:uuid;not null;uniqueIndex:ux_ahsp_recipes_item"`

	AHSPRecipeOverheadPercent float64 `json:"ahsp_recipe_overhead_percent" gorm:"column:ahsp_recipe_overhead_percent;type:numeric;not null;default:0"`

	// cache turunan: D, E, F
	AHSPRecipeSubtotalABC    float64 `json:"ahsp_recipe_subtotal_abc"     gorm:"column:ahsp_recipe_subtotal_abc;type:numeric;not null;default:0"`
	AHSPRecipeOverheadAmount float64 `json:"ahsp_recipe_overhead_amount"  gorm:"column:ahsp_recipe_overhead_amount;type:numeric;not null;default:0"`
	AHSPRecipeFinalUnitPrice float64 `json:"ahsp_recipe_final_unit_price" gorm:"column:ahsp_recipe_final_unit_price;type:numeric;not null;default:0"`

	AHSPRecipeNotes *string `json:"ahsp_recipe_notes,omitempty" gorm:"column:ahsp_recipe_notes;type:text"`

	AHSPRecipeCreatedAt time.Time `json:"ahsp_recipe_created_at" gorm:"column:ahsp_recipe_created_at;type:timestamptz;not null;default:now()"`
	AHSPRecipeUpdatedAt time.Time `json:"ahsp_recipe_updated_at" gorm:"column:ahsp_recipe_updated_at;type:timestamptz;not null;default:now()"`
}

func (AHSPRecipeModel) TableName() string { return "ahsp_recipes" }

func (m *AHSPRecipeModel) BeforeCreate(tx *gorm.DB) error {
	m.AHSPRecipeUpdatedAt = time.Now().UTC()
	return nil
}
func (m *AHSPRecipeModel) BeforeUpdate(tx *gorm.DB) error {
	m.AHSPRecipeUpdatedAt = time.Now().UTC()
	return nil
}
