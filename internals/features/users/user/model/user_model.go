// file: internals/features/users/user/model/user_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Model: users
   ========================= */

type UserModel struct {
	UserID uuid.UUID `json:"user_id" gorm:"column:user_id;type:uuid;primaryKey;default:gen_random_uuid()"`

	UserName  string `json:"user_name"  gorm:"column:user_name;type:varchar(60);not null"`
	UserEmail string `json:"user_email" gorm:"column:user_email;type:varchar(120);not null;uniqueIndex:ux_users_email"`

	// bcrypt hash, tidak pernah keluar di response
	UserPassword string `json:"-" gorm:"column:user_password;type:text;not null"`

	UserIsActive bool `json:"user_is_active" gorm:"column:user_is_active;not null;default:true"`

	UserCreatedAt time.Time `json:"user_created_at" gorm:"column:user_created_at;type:timestamptz;not null;default:now()"`
	UserUpdatedAt time.Time `json:"user_updated_at" gorm:"column:user_updated_at;type:timestamptz;not null;default:now()"`
}

func (UserModel) TableName() string { return "users" }

func (m *UserModel) BeforeCreate(tx *gorm.DB) error {
	m.UserUpdatedAt = time.Now().UTC()
	return nil
}
func (m *UserModel) BeforeUpdate(tx *gorm.DB) error {
	m.UserUpdatedAt = time.Now().UTC()
	return nil
}
