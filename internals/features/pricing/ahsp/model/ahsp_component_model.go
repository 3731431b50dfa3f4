// file: internals/features/pricing/ahsp/model/ahsp_component_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Enum: grup komponen (bucket A/B/C/X)
   ========================= */

type ComponentGroup string

const (
	ComponentGroupLabor     ComponentGroup = "LABOR"
	ComponentGroupMaterial  ComponentGroup = "MATERIAL"
	ComponentGroupEquipment ComponentGroup = "EQUIPMENT"
	ComponentGroupOther     ComponentGroup = "OTHER"
)

func (g ComponentGroup) Valid() bool {
	switch g {
	case ComponentGroupLabor, ComponentGroupMaterial, ComponentGroupEquipment, ComponentGroupOther:
		return true
	}
	return false
}

// Bucket: label A/B/C/X. Mapping tetap, exhaustive — menambah grup berarti
// perubahan yang dicek compiler, bukan lookup table runtime.
func (g ComponentGroup) Bucket() string {
	switch g {
	case ComponentGroupLabor:
		return "A"
	case ComponentGroupMaterial:
		return "B"
	case ComponentGroupEquipment:
		return "C"
	case ComponentGroupOther:
		return "X"
	}
	return ""
}

/* =========================
   Model: ahsp_components
   ========================= */

// AHSPComponentModel: satu baris resep. Grup bucketing independen dari tipe
// master item yang dirujuk. effective_unit_price dan subtotal adalah cache
// yang selalu bisa diturunkan ulang oleh propagator.
type AHSPComponentModel struct {
	AHSPComponentID uuid.UUID `json:"ahsp_component_id" gorm:"column:ahsp_component_id;type:uuid;primaryKey;default:gen_random_uuid()"`

	AHSPComponentScope string `json:"ahsp_component_scope" gorm:"column:ahsp_component_scope;type:varchar(40);not null;default:'GLOBAL'"`

	AHSPComponentRecipeID uuid.UUID `json:"ahsp_component_recipe_id" gorm:"column:ahsp_component_recipe_id;type:uuid;not null;index:idx_ahsp_components_recipe"`

	// referensi master TIDAK ikut di-scope ulang saat copy-on-write
	AHSPComponentMasterItemID uuid.UUID `json:"ahsp_component_master_item_id" gorm:"column:ahsp_component_master_item_id;type:uuid;not null;index:idx_ahsp_components_master"`

	AHSPComponentGroup ComponentGroup `json:"ahsp_component_group" gorm:"column:ahsp_component_group;type:varchar(20);not null"`

	AHSPComponentCoefficient   float64  `json:"ahsp_component_coefficient"              gorm:"column:ahsp_component_coefficient;type:numeric;not null;default:1"`
	AHSPComponentPriceOverride *float64 `json:"ahsp_component_price_override,omitempty" gorm:"column:ahsp_component_price_override;type:numeric"`

	// snapshot point-in-time master item saat create/copy
	AHSPComponentNameSnapshot      string  `json:"ahsp_component_name_snapshot"       gorm:"column:ahsp_component_name_snapshot;type:text;not null"`
	AHSPComponentUnitSnapshot      string  `json:"ahsp_component_unit_snapshot"       gorm:"column:ahsp_component_unit_snapshot;type:varchar(40);not null"`
	AHSPComponentUnitPriceSnapshot float64 `json:"ahsp_component_unit_price_snapshot" gorm:"column:ahsp_component_unit_price_snapshot;type:numeric;not null;default:0"`

	// cache turunan
	AHSPComponentEffectiveUnitPrice float64 `json:"ahsp_component_effective_unit_price" gorm:"column:ahsp_component_effective_unit_price;type:numeric;not null;default:0"`
	AHSPComponentSubtotal           float64 `json:"ahsp_component_subtotal"             gorm:"column:ahsp_component_subtotal;type:numeric;not null;default:0"`

	// urutan tampil per (recipe, group); tie-break
	AHSPComponentOrder int `json:"ahsp_component_order" gorm:"column:ahsp_component_order;not null;default:1"`

	AHSPComponentNotes *string `json:"ahsp_component_notes,omitempty" gorm:"column:ahsp_component_notes;type:text"`

	AHSPComponentCreatedAt time.Time `json:"ahsp_component_created_at" gorm:"column:ahsp_component_created_at;type:timestamptz;not null;default:now()"`
	AHSPComponentUpdatedAt time.Time `json:"ahsp_component_updated_at" gorm:"column:ahsp_component_updated_at;type:timestamptz;not null;default:now()"`
}

func (AHSPComponentModel) TableName() string { return "ahsp_components" }

func (m *AHSPComponentModel) BeforeCreate(tx *gorm.DB) error {
	m.AHSPComponentUpdatedAt = time.Now().UTC()
	return nil
}
func (m *AHSPComponentModel) BeforeUpdate(tx *gorm.DB) error {
	m.AHSPComponentUpdatedAt = time.Now().UTC()
	return nil
}
