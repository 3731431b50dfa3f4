// file: internals/features/pricing/master/service/price_test.go
package service

import (
	"math"
	"strings"
	"testing"

	masterModel "ahspku_backend/internals/features/pricing/master/model"
)

func fptr(f float64) *float64 { return &f }

func TestResolveCreatePrice(t *testing.T) {
	tests := []struct {
		name    string
		typ     masterModel.MasterItemType
		price   *float64
		hourly  *float64
		daily   *float64
		want    float64
		wantErr bool
	}{
		{"labor: daily menang", masterModel.MasterItemTypeLabor, fptr(100), fptr(12500), fptr(100000), 100000, false},
		{"labor: hourly menang atas price", masterModel.MasterItemTypeLabor, fptr(100), fptr(12500), nil, 12500, false},
		{"labor: price saja", masterModel.MasterItemTypeLabor, fptr(100), nil, nil, 100, false},
		{"labor: semua absen", masterModel.MasterItemTypeLabor, nil, nil, nil, 0, false},
		{"material: pakai price", masterModel.MasterItemTypeMaterial, fptr(80000), nil, nil, 80000, false},
		{"material: rate diabaikan", masterModel.MasterItemTypeMaterial, fptr(80000), fptr(1), fptr(2), 80000, false},
		{"material: tanpa price", masterModel.MasterItemTypeMaterial, nil, fptr(1), fptr(2), 0, false},
		{"negatif ditolak", masterModel.MasterItemTypeMaterial, fptr(-1), nil, nil, 0, true},
		{"labor: daily negatif ditolak", masterModel.MasterItemTypeLabor, nil, nil, fptr(-5), 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveCreatePrice(tt.typ, tt.price, tt.hourly, tt.daily)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Fatalf("ResolveCreatePrice = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveUpdatePrice(t *testing.T) {
	tests := []struct {
		name     string
		typ      masterModel.MasterItemType
		explicit *float64
		hourly   *float64
		daily    *float64
		want     float64
		wantSet  bool
		wantErr  bool
	}{
		{"price eksplisit menang, labor pun", masterModel.MasterItemTypeLabor, fptr(55), fptr(1), fptr(2), 55, true, false},
		{"labor: daily dipakai", masterModel.MasterItemTypeLabor, nil, fptr(12500), fptr(100000), 100000, true, false},
		{"labor: hourly hanya saat daily absen", masterModel.MasterItemTypeLabor, nil, fptr(12500), nil, 12500, true, false},
		{"labor: tanpa input → tidak ada perubahan", masterModel.MasterItemTypeLabor, nil, nil, nil, 0, false, false},
		{"material: rate tidak menderivasi", masterModel.MasterItemTypeMaterial, nil, fptr(1), fptr(2), 0, false, false},
		{"price eksplisit negatif ditolak", masterModel.MasterItemTypeMaterial, fptr(-1), nil, nil, 0, false, true},
		{"material: hourly negatif tetap ditolak", masterModel.MasterItemTypeMaterial, nil, fptr(-5), nil, 0, false, true},
		{"material: daily negatif tetap ditolak", masterModel.MasterItemTypeMaterial, nil, nil, fptr(-5), 0, false, true},
		{"labor: hourly negatif ditolak walau daily valid", masterModel.MasterItemTypeLabor, nil, fptr(-5), fptr(100000), 0, false, true},
		{"labor: hourly NaN ditolak", masterModel.MasterItemTypeLabor, nil, fptr(math.NaN()), nil, 0, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, set, err := ResolveUpdatePrice(tt.typ, tt.explicit, tt.hourly, tt.daily)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if set != tt.wantSet || got != tt.want {
				t.Fatalf("ResolveUpdatePrice = (%v, %v), want (%v, %v)", got, set, tt.want, tt.wantSet)
			}
		})
	}
}

func TestGenerateCode(t *testing.T) {
	prefixes := map[masterModel.MasterItemType]string{
		masterModel.MasterItemTypeMaterial:  "MAT-",
		masterModel.MasterItemTypeEquipment: "EQP-",
		masterModel.MasterItemTypeOther:     "OTH-",
	}
	for typ, prefix := range prefixes {
		code, ok := GenerateCode(typ)
		if !ok {
			t.Fatalf("GenerateCode(%s) harus ok", typ)
		}
		if !strings.HasPrefix(code, prefix) {
			t.Fatalf("kode %q tidak berprefix %q", code, prefix)
		}
		if len(code) != len(prefix)+6 {
			t.Fatalf("kode %q panjangnya %d, want %d", code, len(code), len(prefix)+6)
		}
		for _, r := range code[len(prefix):] {
			if !strings.ContainsRune(base36Chars, r) {
				t.Fatalf("kode %q mengandung karakter di luar base36", code)
			}
		}
	}

	// LABOR tidak pernah autogenerate
	if _, ok := GenerateCode(masterModel.MasterItemTypeLabor); ok {
		t.Fatal("GenerateCode(LABOR) harus ok=false")
	}
}
