// file: internals/features/pricing/hsp/model/hsp_category_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Model: hsp_categories
   ========================= */

type HSPCategoryModel struct {
	HSPCategoryID uuid.UUID `json:"hsp_category_id" gorm:"column:hsp_category_id;type:uuid;primaryKey;default:gen_random_uuid()"`

	HSPCategoryScope string `json:"hsp_category_scope" gorm:"column:hsp_category_scope;type:varchar(40);not null;default:'GLOBAL';uniqueIndex:ux_hsp_categories_scope_name"`
	HSPCategoryName  string `json:"hsp_category_name"  gorm:"column:hsp_category_name;type:text;not null;uniqueIndex:ux_hsp_categories_scope_name"`

	HSPCategoryCreatedAt time.Time `json:"hsp_category_created_at" gorm:"column:hsp_category_created_at;type:timestamptz;not null;default:now()"`
	HSPCategoryUpdatedAt time.Time `json:"hsp_category_updated_at" gorm:"column:hsp_category_updated_at;type:timestamptz;not null;default:now()"`
}

func (HSPCategoryModel) TableName() string { return "hsp_categories" }

func (m *HSPCategoryModel) BeforeCreate(tx *gorm.DB) error {
	m.HSPCategoryUpdatedAt = time.Now().UTC()
	return nil
}
func (m *HSPCategoryModel) BeforeUpdate(tx *gorm.DB) error {
	m.HSPCategoryUpdatedAt = time.Now().UTC()
	return nil
}

func CategoryScopeByTag(tag string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("hsp_category_scope = ?", tag)
	}
}
