// file: internals/features/pricing/scope/scope.go
package scope

import (
	"strings"

	"github.com/google/uuid"
)

/* =========================
   Scope: GLOBAL vs per-user
   ========================= */

// GlobalTag adalah tag partisi untuk katalog bersama.
const GlobalTag = "GLOBAL"

const userTagPrefix = "u:"

// Scope memisahkan katalog GLOBAL dari override per-user.
// Disimpan di DB sebagai kolom tag (GLOBAL / "u:<uuid>").
type Scope struct {
	userID uuid.UUID
	isUser bool
}

// Global: scope katalog bersama.
func Global() Scope { return Scope{} }

// ForUser: scope privat milik satu user.
func ForUser(userID uuid.UUID) Scope {
	if userID == uuid.Nil {
		return Global()
	}
	return Scope{userID: userID, isUser: true}
}

// Of: tanpa identitas caller → GLOBAL, ada identitas → scope user.
// Fungsi murni, tidak pernah error.
func Of(callerID *uuid.UUID) Scope {
	if callerID == nil || *callerID == uuid.Nil {
		return Global()
	}
	return ForUser(*callerID)
}

func (s Scope) IsGlobal() bool { return !s.isUser }

func (s Scope) UserID() (uuid.UUID, bool) {
	if !s.isUser {
		return uuid.Nil, false
	}
	return s.userID, true
}

// Tag: representasi kolom DB.
func (s Scope) Tag() string {
	if !s.isUser {
		return GlobalTag
	}
	return userTagPrefix + s.userID.String()
}

func (s Scope) String() string { return s.Tag() }

// ParseTag: kebalikan dari Tag(). Tag yang tidak dikenal dianggap invalid.
func ParseTag(tag string) (Scope, bool) {
	tag = strings.TrimSpace(tag)
	if tag == GlobalTag {
		return Global(), true
	}
	if strings.HasPrefix(tag, userTagPrefix) {
		id, err := uuid.Parse(strings.TrimPrefix(tag, userTagPrefix))
		if err != nil || id == uuid.Nil {
			return Scope{}, false
		}
		return ForUser(id), true
	}
	return Scope{}, false
}
