// file: internals/features/pricing/master/service/price.go
package service

import (
	"math"
	"math/rand"
	"strings"

	"github.com/gofiber/fiber/v2"

	masterModel "ahspku_backend/internals/features/pricing/master/model"
)

/* =========================================================
   Derivasi harga master item
   ========================================================= */

func finite(f *float64) bool {
	return f != nil && !math.IsNaN(*f) && !math.IsInf(*f, 0)
}

// ResolveCreatePrice: untuk LABOR, dailyRate finite menang atas hourlyRate,
// hourlyRate menang atas price langsung; tipe lain pakai price apa adanya.
// Hasil wajib finite dan >= 0.
func ResolveCreatePrice(t masterModel.MasterItemType, price, hourlyRate, dailyRate *float64) (float64, error) {
	var resolved float64
	if t == masterModel.MasterItemTypeLabor {
		switch {
		case finite(dailyRate):
			resolved = *dailyRate
		case finite(hourlyRate):
			resolved = *hourlyRate
		case finite(price):
			resolved = *price
		}
	} else if finite(price) {
		resolved = *price
	}
	if math.IsNaN(resolved) || math.IsInf(resolved, 0) || resolved < 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Harga harus angka finite >= 0")
	}
	return resolved, nil
}

// ResolveUpdatePrice: derivasi LABOR hanya berlaku bila price TIDAK diset
// eksplisit pada panggilan yang sama; fallback ke hourlyRate hanya saat
// dailyRate absen (aturan asimetris, mengikuti perilaku produk).
// Return kedua = true bila ada harga baru yang harus diterapkan.
func ResolveUpdatePrice(t masterModel.MasterItemType, explicitPrice, hourlyRate, dailyRate *float64) (float64, bool, error) {
	// setiap field yang dikirim divalidasi sendiri, terlepas dipakai derivasi
	// atau tidak — rate negatif tidak boleh lolos hanya karena tipe non-LABOR
	// atau karena tertutup daily_rate
	if hourlyRate != nil && (!finite(hourlyRate) || *hourlyRate < 0) {
		return 0, false, fiber.NewError(fiber.StatusBadRequest, "hourly_rate harus angka finite >= 0")
	}
	if dailyRate != nil && (!finite(dailyRate) || *dailyRate < 0) {
		return 0, false, fiber.NewError(fiber.StatusBadRequest, "daily_rate harus angka finite >= 0")
	}
	if explicitPrice != nil {
		if !finite(explicitPrice) || *explicitPrice < 0 {
			return 0, false, fiber.NewError(fiber.StatusBadRequest, "Harga harus angka finite >= 0")
		}
		return *explicitPrice, true, nil
	}
	if t != masterModel.MasterItemTypeLabor {
		return 0, false, nil
	}
	switch {
	case dailyRate != nil:
		return *dailyRate, true, nil
	case hourlyRate != nil:
		return *hourlyRate, true, nil
	}
	return 0, false, nil
}

/* =========================================================
   Autogenerate kode non-LABOR: {PREFIX}-{6 base36}
   ========================================================= */

const base36Chars = "0123456789abcdefghijklmnopqrstuvwxyz"

func codePrefix(t masterModel.MasterItemType) string {
	switch t {
	case masterModel.MasterItemTypeMaterial:
		return "MAT"
	case masterModel.MasterItemTypeEquipment:
		return "EQP"
	case masterModel.MasterItemTypeOther:
		return "OTH"
	}
	return ""
}

// GenerateCode: LABOR wajib kode verbatim (tidak pernah autogen) → ok=false.
func GenerateCode(t masterModel.MasterItemType) (string, bool) {
	prefix := codePrefix(t)
	if prefix == "" {
		return "", false
	}
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteByte('-')
	for i := 0; i < 6; i++ {
		b.WriteByte(base36Chars[rand.Intn(len(base36Chars))])
	}
	return b.String(), true
}
