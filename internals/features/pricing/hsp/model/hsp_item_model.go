// file: internals/features/pricing/hsp/model/hsp_item_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Model: hsp_items
   ========================= */

// HSPItemModel: item pekerjaan katalog. Baris GLOBAL adalah baseline bersama;
// baris scope user untuk kode yang sama dibuat lazy saat edit/delete pertama
// (copy-on-write / tombstone-on-write).
type HSPItemModel struct {
	HSPItemID uuid.UUID `json:"hsp_item_id" gorm:"column:hsp_item_id;type:uuid;primaryKey;default:gen_random_uuid()"`

	HSPItemScope string `json:"hsp_item_scope" gorm:"column:hsp_item_scope;type:varchar(40);not null;default:'GLOBAL';uniqueIndex:ux_hsp_items_scope_kode"`
	HSPItemKode  string `json:"hsp_item_kode"  gorm:"column:hsp_item_kode;type:varchar(60);not null;uniqueIndex:ux_hsp_items_scope_kode"`

	HSPItemDeskripsi string `json:"hsp_item_deskripsi" gorm:"column:hsp_item_deskripsi;type:text;not null"`
	HSPItemSatuan    string `json:"hsp_item_satuan"    gorm:"column:hsp_item_satuan;type:varchar(40);not null"`

	// harga final ter-cache; disinkronkan dengan final_unit_price resep saat recompute
	HSPItemHarga float64 `json:"hsp_item_harga" gorm:"column:hsp_item_harga;type:numeric;not null;default:0"`

	// referensi kategori dibagi lintas scope (tidak ikut di-copy)
	HSPItemCategoryID uuid.UUID `json:"hsp_item_category_id" gorm:"column:hsp_item_category_id;type:uuid;not null;index"`

	// tombstone: soft delete per scope, baris GLOBAL tidak pernah dihapus fisik
	HSPItemIsDeleted bool `json:"hsp_item_is_deleted" gorm:"column:hsp_item_is_deleted;not null;default:false"`

	HSPItemCreatedAt time.Time `json:"hsp_item_created_at" gorm:"column:hsp_item_created_at;type:timestamptz;not null;default:now()"`
	HSPItemUpdatedAt time.Time `json:"hsp_item_updated_at" gorm:"column:hsp_item_updated_at;type:timestamptz;not null;default:now()"`
}

func (HSPItemModel) TableName() string { return "hsp_items" }

func (m *HSPItemModel) BeforeCreate(tx *gorm.DB) error {
	m.HSPItemUpdatedAt = time.Now().UTC()
	return nil
}
func (m *HSPItemModel) BeforeUpdate(tx *gorm.DB) error {
	m.HSPItemUpdatedAt = time.Now().UTC()
	return nil
}

/* =========================
   Scopes
   ========================= */

func ItemScopeByTag(tag string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("hsp_item_scope = ?", tag)
	}
}

func ItemAlive(db *gorm.DB) *gorm.DB {
	return db.Where("hsp_item_is_deleted = FALSE")
}
