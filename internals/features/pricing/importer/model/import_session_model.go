// file: internals/features/pricing/importer/model/import_session_model.go
package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* =========================
   Model: import_sessions
   ========================= */

type ImportRowError struct {
	Category string `json:"category,omitempty"`
	Kode     string `json:"kode,omitempty"`
	Error    string `json:"error"`
}

// ImportSessionModel: jejak audit satu import massal — siapa, kapan, flag
// harga, sheet yang diproses, dan error per baris (JSONB).
type ImportSessionModel struct {
	ImportSessionID uuid.UUID `json:"import_session_id" gorm:"column:import_session_id;type:uuid;primaryKey;default:gen_random_uuid()"`

	ImportSessionScope    string `json:"import_session_scope"    gorm:"column:import_session_scope;type:varchar(40);not null;default:'GLOBAL';index"`
	ImportSessionFilename string `json:"import_session_filename" gorm:"column:import_session_filename;type:text;not null"`

	ImportSessionUseHargaFile      bool `json:"import_session_use_harga_file"      gorm:"column:import_session_use_harga_file;not null;default:false"`
	ImportSessionLockExistingPrice bool `json:"import_session_lock_existing_price" gorm:"column:import_session_lock_existing_price;not null;default:false"`

	ImportSessionSheets pq.StringArray `json:"import_session_sheets" gorm:"column:import_session_sheets;type:text[]"`

	ImportSessionCreated int `json:"import_session_created" gorm:"column:import_session_created;not null;default:0"`
	ImportSessionUpdated int `json:"import_session_updated" gorm:"column:import_session_updated;not null;default:0"`
	ImportSessionFailed  int `json:"import_session_failed"  gorm:"column:import_session_failed;not null;default:0"`

	ImportSessionRowErrors datatypes.JSON `json:"import_session_row_errors,omitempty" gorm:"column:import_session_row_errors;type:jsonb"`

	ImportSessionCreatedAt time.Time `json:"import_session_created_at" gorm:"column:import_session_created_at;type:timestamptz;not null;default:now()"`
}

func (ImportSessionModel) TableName() string { return "import_sessions" }

func (m *ImportSessionModel) BeforeCreate(tx *gorm.DB) error {
	if m.ImportSessionCreatedAt.IsZero() {
		m.ImportSessionCreatedAt = time.Now().UTC()
	}
	return nil
}

func (m *ImportSessionModel) SetRowErrors(errs []ImportRowError) error {
	if len(errs) == 0 {
		m.ImportSessionRowErrors = nil
		return nil
	}
	b, err := json.Marshal(errs)
	if err != nil {
		return err
	}
	m.ImportSessionRowErrors = datatypes.JSON(b)
	return nil
}
