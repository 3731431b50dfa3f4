// file: internals/features/pricing/hsp/dto/hsp_dto.go
package dto

import (
	"encoding/json"

	"github.com/google/uuid"

	model "ahspku_backend/internals/features/pricing/hsp/model"
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
   Kategori
   ========================================================= */

type CreateHSPCategoryRequest struct {
	HSPCategoryName string `json:"hsp_category_name" validate:"required"`
}

type HSPCategoryResponse struct {
	HSPCategoryID    string `json:"hsp_category_id"`
	HSPCategoryScope string `json:"hsp_category_scope"`
	HSPCategoryName  string `json:"hsp_category_name"`
}

func FromModelHSPCategory(m *model.HSPCategoryModel) HSPCategoryResponse {
	return HSPCategoryResponse{
		HSPCategoryID:    m.HSPCategoryID.String(),
		HSPCategoryScope: m.HSPCategoryScope,
		HSPCategoryName:  m.HSPCategoryName,
	}
}

func FromModelHSPCategories(ms []model.HSPCategoryModel) []HSPCategoryResponse {
	out := make([]HSPCategoryResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromModelHSPCategory(&ms[i]))
	}
	return out
}

/* =========================================================
   Item
   ========================================================= */

type CreateHSPItemRequest struct {
	HSPItemKode       string    `json:"hsp_item_kode"        validate:"required,max=60"`
	HSPItemDeskripsi  string    `json:"hsp_item_deskripsi"   validate:"required"`
	HSPItemSatuan     string    `json:"hsp_item_satuan"      validate:"required,max=40"`
	HSPItemHarga      *float64  `json:"hsp_item_harga"       validate:"omitempty,gte=0"`
	HSPItemCategoryID uuid.UUID `json:"hsp_item_category_id" validate:"required"`
}

type PatchHSPItemRequest struct {
	HSPItemDeskripsi  PatchField[string]    `json:"hsp_item_deskripsi"`
	HSPItemSatuan     PatchField[string]    `json:"hsp_item_satuan"`
	HSPItemHarga      PatchField[float64]   `json:"hsp_item_harga"`
	HSPItemCategoryID PatchField[uuid.UUID] `json:"hsp_item_category_id"`
}

type HSPItemResponse struct {
	HSPItemID         string  `json:"hsp_item_id"`
	HSPItemScope      string  `json:"hsp_item_scope"`
	HSPItemKode       string  `json:"hsp_item_kode"`
	HSPItemDeskripsi  string  `json:"hsp_item_deskripsi"`
	HSPItemSatuan     string  `json:"hsp_item_satuan"`
	HSPItemHarga      float64 `json:"hsp_item_harga"`
	HSPItemCategoryID string  `json:"hsp_item_category_id"`
	HSPItemIsDeleted  bool    `json:"hsp_item_is_deleted"`
}

func FromModelHSPItem(m *model.HSPItemModel) HSPItemResponse {
	return HSPItemResponse{
		HSPItemID:         m.HSPItemID.String(),
		HSPItemScope:      m.HSPItemScope,
		HSPItemKode:       m.HSPItemKode,
		HSPItemDeskripsi:  m.HSPItemDeskripsi,
		HSPItemSatuan:     m.HSPItemSatuan,
		HSPItemHarga:      m.HSPItemHarga,
		HSPItemCategoryID: m.HSPItemCategoryID.String(),
		HSPItemIsDeleted:  m.HSPItemIsDeleted,
	}
}

func FromModelHSPItems(ms []model.HSPItemModel) []HSPItemResponse {
	out := make([]HSPItemResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromModelHSPItem(&ms[i]))
	}
	return out
}
