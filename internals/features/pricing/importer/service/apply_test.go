// file: internals/features/pricing/importer/service/apply_test.go
package service

import (
	"context"
	"testing"

	"ahspku_backend/internals/features/pricing/scope"
)

func TestShouldOverwritePrice(t *testing.T) {
	tests := []struct {
		name          string
		useHargaFile  bool
		lockExisting  bool
		existingPrice float64
		want          bool
	}{
		{"tanpa harga file: tidak pernah", false, false, 0, false},
		{"tanpa harga file: lock pun tidak", false, true, 0, false},
		{"harga file tanpa lock: selalu", true, false, 50000, true},
		{"harga file + lock: existing terisi → tahan", true, true, 50000, false},
		{"harga file + lock: existing nol → timpa", true, true, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ShouldOverwritePrice(tt.useHargaFile, tt.lockExisting, tt.existingPrice)
			if got != tt.want {
				t.Fatalf("ShouldOverwritePrice(%v, %v, %v) = %v, want %v",
					tt.useHargaFile, tt.lockExisting, tt.existingPrice, got, tt.want)
			}
		})
	}
}

func TestNewItemPrice(t *testing.T) {
	if got := NewItemPrice(true, 75000); got != 75000 {
		t.Fatalf("NewItemPrice(true) = %v, want 75000", got)
	}
	if got := NewItemPrice(false, 75000); got != 0 {
		t.Fatalf("NewItemPrice(false) = %v, want 0", got)
	}
}

func TestParseHarga(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"", 0},
		{"75000", 75000},
		{"75000.5", 75000.5},
		{"1.234.567,89", 1234567.89},
		{"1,234,567.89", 1234567.89},
		{"1.234.567", 1234567},
		{"1,234,567", 1234567},
		{"1234,5", 1234.5},
		{"  80000 ", 80000},
		{"abc", 0},
		{"-500", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := parseHarga(tt.in); got != tt.want {
				t.Fatalf("parseHarga(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestApplyFailedGroupCountedOnce(t *testing.T) {
	s := NewImportService(nil)
	groups := []ImportGroup{{
		Category: "   ", // gagal sebelum menyentuh DB
		Items: []ImportItem{
			{Kode: "K.001"}, {Kode: "K.002"}, {Kode: "K.003"},
		},
	}}

	res := s.Apply(context.Background(), scope.Global(), groups, ApplyOptions{})

	// hitungan parsial grup yang rollback tidak boleh bocor ke hasil
	if res.Created != 0 || res.Updated != 0 {
		t.Fatalf("created=%d updated=%d, want 0/0", res.Created, res.Updated)
	}
	if res.Failed != 3 {
		t.Fatalf("failed = %d, want 3 (sekali per baris, tanpa dobel)", res.Failed)
	}
	if len(res.RowErrors) != 1 {
		t.Fatalf("row errors = %d, want 1 entri per grup gagal", len(res.RowErrors))
	}
}

func TestAppendSheetRows(t *testing.T) {
	rows := [][]string{
		{"K.001", "Pekerja", "OH", "90000"}, // sebelum marker → UMUM
		{"UPAH"},                            // marker kategori
		{"K.002", "Tukang batu", "OH", "100000"},
		{"", "", "", ""}, // baris kosong dilewati
		{"BAHAN", "", "", ""},
		{"M.001", "Semen portland", "kg", "1.500,00"},
		{"M.002", "Pasir pasang", "m3", "250.000,00"},
	}

	groups := appendSheetRows(nil, rows)

	if len(groups) != 3 {
		t.Fatalf("jumlah grup = %d, want 3", len(groups))
	}
	if groups[0].Category != "UMUM" || len(groups[0].Items) != 1 {
		t.Fatalf("grup UMUM = %+v", groups[0])
	}
	if groups[1].Category != "UPAH" || len(groups[1].Items) != 1 {
		t.Fatalf("grup UPAH = %+v", groups[1])
	}
	if groups[2].Category != "BAHAN" || len(groups[2].Items) != 2 {
		t.Fatalf("grup BAHAN = %+v", groups[2])
	}

	it := groups[2].Items[0]
	if it.Kode != "M.001" || it.Deskripsi != "Semen portland" || it.Satuan != "kg" || it.Harga != 1500 {
		t.Fatalf("item = %+v", it)
	}
	if groups[2].Items[1].Harga != 250000 {
		t.Fatalf("harga pasir = %v", groups[2].Items[1].Harga)
	}

	// lembar berikutnya melanjutkan slice grup yang sama
	groups = appendSheetRows(groups, [][]string{
		{"ALAT", "", "", ""},
		{"E.001", "Molen beton", "jam", "50000"},
	})
	if len(groups) != 4 || groups[3].Category != "ALAT" {
		t.Fatalf("grup lembar kedua = %+v", groups[len(groups)-1])
	}
}
