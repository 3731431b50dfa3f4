// file: internals/features/pricing/master/dto/master_item_dto.go
package dto

import (
	"encoding/json"

	model "ahspku_backend/internals/features/pricing/master/model"
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
   REQUEST: Create
   ========================================================= */

type CreateMasterItemRequest struct {
	MasterItemCode *string              `json:"master_item_code" validate:"omitempty,max=60"`
	MasterItemName string               `json:"master_item_name" validate:"required"`
	MasterItemUnit string               `json:"master_item_unit" validate:"required,max=40"`
	MasterItemType model.MasterItemType `json:"master_item_type" validate:"required,oneof=LABOR MATERIAL EQUIPMENT OTHER"`

	MasterItemPrice      *float64 `json:"master_item_price"       validate:"omitempty,gte=0"`
	MasterItemHourlyRate *float64 `json:"master_item_hourly_rate" validate:"omitempty,gte=0"`
	MasterItemDailyRate  *float64 `json:"master_item_daily_rate"  validate:"omitempty,gte=0"`

	MasterItemNotes *string `json:"master_item_notes"`
}

/* =========================================================
   REQUEST: Patch
   ========================================================= */

type PatchMasterItemRequest struct {
	MasterItemName       PatchField[string]  `json:"master_item_name"`
	MasterItemUnit       PatchField[string]  `json:"master_item_unit"`
	MasterItemPrice      PatchField[float64] `json:"master_item_price"`
	MasterItemHourlyRate PatchField[float64] `json:"master_item_hourly_rate"`
	MasterItemDailyRate  PatchField[float64] `json:"master_item_daily_rate"`
	MasterItemNotes      PatchField[string]  `json:"master_item_notes"`
}

/* =========================================================
   RESPONSE
   ========================================================= */

type MasterItemResponse struct {
	MasterItemID         string               `json:"master_item_id"`
	MasterItemScope      string               `json:"master_item_scope"`
	MasterItemCode       string               `json:"master_item_code"`
	MasterItemName       string               `json:"master_item_name"`
	MasterItemUnit       string               `json:"master_item_unit"`
	MasterItemType       model.MasterItemType `json:"master_item_type"`
	MasterItemPrice      float64              `json:"master_item_price"`
	MasterItemHourlyRate *float64             `json:"master_item_hourly_rate,omitempty"`
	MasterItemDailyRate  *float64             `json:"master_item_daily_rate,omitempty"`
	MasterItemNotes      *string              `json:"master_item_notes,omitempty"`
}

func FromModelMasterItem(m *model.MasterItemModel) MasterItemResponse {
	return MasterItemResponse{
		MasterItemID:         m.MasterItemID.String(),
		MasterItemScope:      m.MasterItemScope,
		MasterItemCode:       m.MasterItemCode,
		MasterItemName:       m.MasterItemName,
		MasterItemUnit:       m.MasterItemUnit,
		MasterItemType:       m.MasterItemType,
		MasterItemPrice:      m.MasterItemPrice,
		MasterItemHourlyRate: m.MasterItemHourlyRate,
		MasterItemDailyRate:  m.MasterItemDailyRate,
		MasterItemNotes:      m.MasterItemNotes,
	}
}

func FromModelMasterItems(ms []model.MasterItemModel) []MasterItemResponse {
	out := make([]MasterItemResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromModelMasterItem(&ms[i]))
	}
	return out
}
