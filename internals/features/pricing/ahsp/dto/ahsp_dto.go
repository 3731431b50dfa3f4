// file: internals/features/pricing/ahsp/dto/ahsp_dto.go
package dto

import (
	"encoding/json"

	"github.com/google/uuid"

	model "ahspku_backend/internals/features/pricing/ahsp/model"
	service "ahspku_backend/internals/features/pricing/ahsp/service"
	hspModel "ahspku_backend/internals/features/pricing/hsp/model"
)

/* =========================================================
   PatchField tri-state (Unset / Null / Set(value))
   ========================================================= */

type PatchField[T any] struct {
	Set   bool `json:"-"`
	Null  bool `json:"-"`
	Value *T   `json:"-"`
}

func (p *PatchField[T]) UnmarshalJSON(b []byte) error {
	p.Set = true
	if string(b) == "null" {
		p.Null = true
		p.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	p.Value = &v
	return nil
}

/* =========================================================
   REQUESTS
   ========================================================= */

type SetOverheadRequest struct {
	OverheadPercent float64 `json:"overhead_percent" validate:"gte=0"`
}

type AddComponentRequest struct {
	AHSPComponentGroup         model.ComponentGroup `json:"ahsp_component_group"          validate:"required,oneof=LABOR MATERIAL EQUIPMENT OTHER"`
	AHSPComponentMasterItemID  uuid.UUID            `json:"ahsp_component_master_item_id" validate:"required"`
	AHSPComponentCoefficient   *float64             `json:"ahsp_component_coefficient"    validate:"omitempty,gte=0"`
	AHSPComponentPriceOverride *float64             `json:"ahsp_component_price_override" validate:"omitempty,gte=0"`
	AHSPComponentNotes         *string              `json:"ahsp_component_notes"`
}

type PatchComponentRequest struct {
	AHSPComponentCoefficient   PatchField[float64] `json:"ahsp_component_coefficient"`
	AHSPComponentPriceOverride PatchField[float64] `json:"ahsp_component_price_override"`
	AHSPComponentOrder         PatchField[int]     `json:"ahsp_component_order"`
	AHSPComponentNotes         PatchField[string]  `json:"ahsp_component_notes"`
}

/* =========================================================
   RESPONSES: pohon item + resep + komponen per bucket
   ========================================================= */

type ComponentResponse struct {
	AHSPComponentID                 string               `json:"ahsp_component_id"`
	AHSPComponentScope              string               `json:"ahsp_component_scope"`
	AHSPComponentGroup              model.ComponentGroup `json:"ahsp_component_group"`
	AHSPComponentBucket             string               `json:"ahsp_component_bucket"`
	AHSPComponentMasterItemID       string               `json:"ahsp_component_master_item_id"`
	AHSPComponentNameSnapshot       string               `json:"ahsp_component_name_snapshot"`
	AHSPComponentUnitSnapshot       string               `json:"ahsp_component_unit_snapshot"`
	AHSPComponentUnitPriceSnapshot  float64              `json:"ahsp_component_unit_price_snapshot"`
	AHSPComponentCoefficient        float64              `json:"ahsp_component_coefficient"`
	AHSPComponentPriceOverride      *float64             `json:"ahsp_component_price_override,omitempty"`
	AHSPComponentEffectiveUnitPrice float64              `json:"ahsp_component_effective_unit_price"`
	AHSPComponentSubtotal           float64              `json:"ahsp_component_subtotal"`
	AHSPComponentOrder              int                  `json:"ahsp_component_order"`
	AHSPComponentNotes              *string              `json:"ahsp_component_notes,omitempty"`
}

func FromModelComponent(m *model.AHSPComponentModel) ComponentResponse {
	return ComponentResponse{
		AHSPComponentID:                 m.AHSPComponentID.String(),
		AHSPComponentScope:              m.AHSPComponentScope,
		AHSPComponentGroup:              m.AHSPComponentGroup,
		AHSPComponentBucket:             m.AHSPComponentGroup.Bucket(),
		AHSPComponentMasterItemID:       m.AHSPComponentMasterItemID.String(),
		AHSPComponentNameSnapshot:       m.AHSPComponentNameSnapshot,
		AHSPComponentUnitSnapshot:       m.AHSPComponentUnitSnapshot,
		AHSPComponentUnitPriceSnapshot:  m.AHSPComponentUnitPriceSnapshot,
		AHSPComponentCoefficient:        m.AHSPComponentCoefficient,
		AHSPComponentPriceOverride:      m.AHSPComponentPriceOverride,
		AHSPComponentEffectiveUnitPrice: m.AHSPComponentEffectiveUnitPrice,
		AHSPComponentSubtotal:           m.AHSPComponentSubtotal,
		AHSPComponentOrder:              m.AHSPComponentOrder,
		AHSPComponentNotes:              m.AHSPComponentNotes,
	}
}

type RecipeResponse struct {
	AHSPRecipeID              string  `json:"ahsp_recipe_id"`
	AHSPRecipeScope           string  `json:"ahsp_recipe_scope"`
	AHSPRecipeOverheadPercent float64 `json:"ahsp_recipe_overhead_percent"`
	AHSPRecipeSubtotalABC     float64 `json:"ahsp_recipe_subtotal_abc"`
	AHSPRecipeOverheadAmount  float64 `json:"ahsp_recipe_overhead_amount"`
	AHSPRecipeFinalUnitPrice  float64 `json:"ahsp_recipe_final_unit_price"`
	AHSPRecipeNotes           *string `json:"ahsp_recipe_notes,omitempty"`

	Buckets map[string][]ComponentResponse `json:"buckets"` // A/B/C/X → komponen terurut
	Totals  service.RecipeTotals           `json:"totals"`
}

type RecipeTreeResponse struct {
	HSPItemID        string            `json:"hsp_item_id"`
	HSPItemScope     string            `json:"hsp_item_scope"`
	HSPItemKode      string            `json:"hsp_item_kode"`
	HSPItemDeskripsi string            `json:"hsp_item_deskripsi"`
	HSPItemSatuan    string            `json:"hsp_item_satuan"`
	HSPItemHarga     float64           `json:"hsp_item_harga"`
	PriceMode        service.PriceMode `json:"price_mode"`
	Recipe           *RecipeResponse   `json:"recipe,omitempty"`
}

// FromTree merakit response pohon dengan harga efektif dihitung ulang sesuai
// mode resolusi yang diminta (live/snapshot) terhadap livePrices.
func FromTree(item *hspModel.HSPItemModel, recipe *model.AHSPRecipeModel, components []model.AHSPComponentModel, livePrices map[string]float64, mode service.PriceMode) RecipeTreeResponse {
	resp := RecipeTreeResponse{
		HSPItemID:        item.HSPItemID.String(),
		HSPItemScope:     item.HSPItemScope,
		HSPItemKode:      item.HSPItemKode,
		HSPItemDeskripsi: item.HSPItemDeskripsi,
		HSPItemSatuan:    item.HSPItemSatuan,
		HSPItemHarga:     item.HSPItemHarga,
		PriceMode:        mode,
	}
	if recipe == nil {
		return resp
	}

	buckets := map[string][]ComponentResponse{"A": {}, "B": {}, "C": {}, "X": {}}
	var totals service.BucketTotals
	for i := range components {
		m := &components[i]

		var live *float64
		if p, ok := livePrices[m.AHSPComponentMasterItemID.String()]; ok {
			live = &p
		}
		snap := m.AHSPComponentUnitPriceSnapshot

		cr := FromModelComponent(m)
		cr.AHSPComponentEffectiveUnitPrice = service.EffectiveUnitPrice(mode, m.AHSPComponentPriceOverride, live, &snap)
		cr.AHSPComponentSubtotal = service.ComponentSubtotal(m.AHSPComponentCoefficient, cr.AHSPComponentEffectiveUnitPrice)

		buckets[cr.AHSPComponentBucket] = append(buckets[cr.AHSPComponentBucket], cr)
		totals.Add(m.AHSPComponentGroup, cr.AHSPComponentSubtotal)
	}

	resp.Recipe = &RecipeResponse{
		AHSPRecipeID:              recipe.AHSPRecipeID.String(),
		AHSPRecipeScope:           recipe.AHSPRecipeScope,
		AHSPRecipeOverheadPercent: recipe.AHSPRecipeOverheadPercent,
		AHSPRecipeSubtotalABC:     recipe.AHSPRecipeSubtotalABC,
		AHSPRecipeOverheadAmount:  recipe.AHSPRecipeOverheadAmount,
		AHSPRecipeFinalUnitPrice:  recipe.AHSPRecipeFinalUnitPrice,
		AHSPRecipeNotes:           recipe.AHSPRecipeNotes,
		Buckets:                   buckets,
		Totals:                    service.ComputeTotals(totals, recipe.AHSPRecipeOverheadPercent),
	}
	return resp
}
