// file: internals/features/pricing/ahsp/service/compute_test.go
package service

import (
	"math"
	"testing"

	"github.com/google/uuid"

	ahspModel "ahspku_backend/internals/features/pricing/ahsp/model"
)

func fptr(f float64) *float64 { return &f }

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestEffectiveUnitPrice(t *testing.T) {
	tests := []struct {
		name     string
		mode     PriceMode
		override *float64
		live     *float64
		snapshot *float64
		want     float64
	}{
		{"live: override menang", PriceModeLive, fptr(500), fptr(100), fptr(200), 500},
		{"live: override nol tetap menang", PriceModeLive, fptr(0), fptr(100), fptr(200), 0},
		{"live: tanpa override pakai harga berjalan", PriceModeLive, nil, fptr(100), fptr(200), 100},
		{"live: fallback ke snapshot", PriceModeLive, nil, nil, fptr(200), 200},
		{"snapshot: override menang", PriceModeSnapshot, fptr(500), fptr(100), fptr(200), 500},
		{"snapshot: tanpa override pakai snapshot", PriceModeSnapshot, nil, fptr(100), fptr(200), 200},
		{"snapshot: fallback ke harga berjalan", PriceModeSnapshot, nil, fptr(100), nil, 100},
		{"semua absen", PriceModeLive, nil, nil, nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EffectiveUnitPrice(tt.mode, tt.override, tt.live, tt.snapshot)
			if got != tt.want {
				t.Fatalf("EffectiveUnitPrice = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name     string
		buckets  BucketTotals
		overhead float64
		wantD    float64
		wantE    float64
		wantF    float64
	}{
		{"dasar", BucketTotals{A: 200000, B: 50000, C: 0}, 10, 250000, 25000, 275000},
		{"bucket X tidak masuk basis", BucketTotals{A: 100, B: 100, C: 100, X: 99999}, 10, 300, 30, 330},
		{"overhead nol", BucketTotals{A: 100}, 0, 100, 0, 100},
		{"kosong", BucketTotals{}, 10, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotals(tt.buckets, tt.overhead)
			if !almostEqual(got.SubtotalABC, tt.wantD) || !almostEqual(got.OverheadAmount, tt.wantE) || !almostEqual(got.FinalUnitPrice, tt.wantF) {
				t.Fatalf("ComputeTotals = D:%v E:%v F:%v, want D:%v E:%v F:%v",
					got.SubtotalABC, got.OverheadAmount, got.FinalUnitPrice, tt.wantD, tt.wantE, tt.wantF)
			}
		})
	}
}

func TestBucketTotalsAdd(t *testing.T) {
	var b BucketTotals
	b.Add(ahspModel.ComponentGroupLabor, 1)
	b.Add(ahspModel.ComponentGroupMaterial, 2)
	b.Add(ahspModel.ComponentGroupEquipment, 3)
	b.Add(ahspModel.ComponentGroupOther, 4)
	if b.A != 1 || b.B != 2 || b.C != 3 || b.X != 4 {
		t.Fatalf("BucketTotals = %+v", b)
	}
}

func TestDeriveComponents(t *testing.T) {
	tukang := uuid.New()
	semen := uuid.New()
	lain := uuid.New()

	components := []ahspModel.AHSPComponentModel{
		{
			AHSPComponentMasterItemID:      tukang,
			AHSPComponentGroup:             ahspModel.ComponentGroupLabor,
			AHSPComponentCoefficient:       2,
			AHSPComponentUnitPriceSnapshot: 90000,
		},
		{
			AHSPComponentMasterItemID:      semen,
			AHSPComponentGroup:             ahspModel.ComponentGroupMaterial,
			AHSPComponentCoefficient:       0.5,
			AHSPComponentUnitPriceSnapshot: 80000,
			AHSPComponentPriceOverride:     fptr(100000),
		},
		{
			// master item tanpa harga berjalan → jatuh ke snapshot
			AHSPComponentMasterItemID:      lain,
			AHSPComponentGroup:             ahspModel.ComponentGroupOther,
			AHSPComponentCoefficient:       1,
			AHSPComponentUnitPriceSnapshot: 12345,
		},
	}
	live := map[string]float64{
		tukang.String(): 100000,
		semen.String():  80000,
	}

	totals := DeriveComponents(components, live, 10)

	// tukang: 2 * 100000 (harga berjalan, bukan snapshot)
	if components[0].AHSPComponentEffectiveUnitPrice != 100000 || components[0].AHSPComponentSubtotal != 200000 {
		t.Fatalf("komponen tukang = harga:%v subtotal:%v",
			components[0].AHSPComponentEffectiveUnitPrice, components[0].AHSPComponentSubtotal)
	}
	// semen: override menang atas harga berjalan
	if components[1].AHSPComponentEffectiveUnitPrice != 100000 || components[1].AHSPComponentSubtotal != 50000 {
		t.Fatalf("komponen semen = harga:%v subtotal:%v",
			components[1].AHSPComponentEffectiveUnitPrice, components[1].AHSPComponentSubtotal)
	}
	// lain-lain: snapshot, masuk bucket X saja
	if components[2].AHSPComponentEffectiveUnitPrice != 12345 {
		t.Fatalf("komponen lain-lain = harga:%v", components[2].AHSPComponentEffectiveUnitPrice)
	}

	if !almostEqual(totals.Buckets.A, 200000) || !almostEqual(totals.Buckets.B, 50000) || totals.Buckets.C != 0 {
		t.Fatalf("buckets = %+v", totals.Buckets)
	}
	if !almostEqual(totals.SubtotalABC, 250000) || !almostEqual(totals.OverheadAmount, 25000) || !almostEqual(totals.FinalUnitPrice, 275000) {
		t.Fatalf("totals = %+v", totals)
	}
	if !almostEqual(totals.Buckets.X, 12345) {
		t.Fatalf("bucket X = %v", totals.Buckets.X)
	}
}

func TestDeriveComponentsEmpty(t *testing.T) {
	totals := DeriveComponents(nil, nil, 10)
	if totals.SubtotalABC != 0 || totals.OverheadAmount != 0 || totals.FinalUnitPrice != 0 {
		t.Fatalf("resep kosong harus nol semua, got %+v", totals)
	}
}

func TestNextOrder(t *testing.T) {
	siblings := []ahspModel.AHSPComponentModel{
		{AHSPComponentGroup: ahspModel.ComponentGroupLabor, AHSPComponentOrder: 1},
		{AHSPComponentGroup: ahspModel.ComponentGroupLabor, AHSPComponentOrder: 3},
		{AHSPComponentGroup: ahspModel.ComponentGroupMaterial, AHSPComponentOrder: 7},
	}
	if got := NextOrder(siblings, ahspModel.ComponentGroupLabor); got != 4 {
		t.Fatalf("NextOrder(LABOR) = %d, want 4", got)
	}
	if got := NextOrder(siblings, ahspModel.ComponentGroupMaterial); got != 8 {
		t.Fatalf("NextOrder(MATERIAL) = %d, want 8", got)
	}
	if got := NextOrder(siblings, ahspModel.ComponentGroupEquipment); got != 1 {
		t.Fatalf("NextOrder(EQUIPMENT) = %d, want 1", got)
	}
	if got := NextOrder(nil, ahspModel.ComponentGroupLabor); got != 1 {
		t.Fatalf("NextOrder(kosong) = %d, want 1", got)
	}
}

func TestPriceModeValid(t *testing.T) {
	if !PriceModeLive.Valid() || !PriceModeSnapshot.Valid() {
		t.Fatal("mode bawaan harus valid")
	}
	if PriceMode("").Valid() || PriceMode("LIVE").Valid() {
		t.Fatal("mode di luar daftar harus invalid")
	}
}
