// file: internals/features/pricing/master/model/master_item_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Enum: tipe master item
   ========================= */

type MasterItemType string

const (
	MasterItemTypeLabor     MasterItemType = "LABOR"
	MasterItemTypeMaterial  MasterItemType = "MATERIAL"
	MasterItemTypeEquipment MasterItemType = "EQUIPMENT"
	MasterItemTypeOther     MasterItemType = "OTHER"
)

func (t MasterItemType) Valid() bool {
	switch t {
	case MasterItemTypeLabor, MasterItemTypeMaterial, MasterItemTypeEquipment, MasterItemTypeOther:
		return true
	}
	return false
}

/* =========================
   Model: master_items
   ========================= */

type MasterItemModel struct {
	MasterItemID uuid.UUID `json:"master_item_id" gorm:"column:master_item_id;type:uuid;primaryKey;default:gen_random_uuid()"`

	// partisi GLOBAL / "u:<uuid>"
	MasterItemScope string `json:"master_item_scope" gorm:"column:master_item_scope;type:varchar(40);not null;default:'GLOBAL';uniqueIndex:ux_master_items_scope_code"`

	MasterItemCode string         `json:"master_item_code" gorm:"column:master_item_code;type:varchar(60);not null;uniqueIndex:ux_master_items_scope_code"`
	MasterItemName string         `json:"master_item_name" gorm:"column:master_item_name;type:text;not null"`
	MasterItemUnit string         `json:"master_item_unit" gorm:"column:master_item_unit;type:varchar(40);not null"`
	MasterItemType MasterItemType `json:"master_item_type" gorm:"column:master_item_type;type:varchar(20);not null;index:idx_master_items_scope_type,priority:2"`

	// harga satuan berjalan (selalu >= 0)
	MasterItemPrice float64 `json:"master_item_price" gorm:"column:master_item_price;type:numeric;not null;default:0"`

	// input informatif untuk derivasi harga LABOR
	MasterItemHourlyRate *float64 `json:"master_item_hourly_rate,omitempty" gorm:"column:master_item_hourly_rate;type:numeric"`
	MasterItemDailyRate  *float64 `json:"master_item_daily_rate,omitempty"  gorm:"column:master_item_daily_rate;type:numeric"`

	MasterItemNotes *string `json:"master_item_notes,omitempty" gorm:"column:master_item_notes;type:text"`

	MasterItemCreatedAt time.Time `json:"master_item_created_at" gorm:"column:master_item_created_at;type:timestamptz;not null;default:now()"`
	MasterItemUpdatedAt time.Time `json:"master_item_updated_at" gorm:"column:master_item_updated_at;type:timestamptz;not null;default:now()"`
}

func (MasterItemModel) TableName() string { return "master_items" }

func (m *MasterItemModel) BeforeCreate(tx *gorm.DB) error {
	m.MasterItemUpdatedAt = time.Now().UTC()
	return nil
}
func (m *MasterItemModel) BeforeUpdate(tx *gorm.DB) error {
	m.MasterItemUpdatedAt = time.Now().UTC()
	return nil
}

/* =========================
   Scopes
   ========================= */

func ScopeByTag(tag string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("master_item_scope = ?", tag)
	}
}

func ScopeByType(t MasterItemType) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("master_item_type = ?", t)
	}
}
