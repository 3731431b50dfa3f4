// file: internals/features/pricing/ahsp/service/compute.go
package service

import (
	ahspModel "ahspku_backend/internals/features/pricing/ahsp/model"
)

/* =========================================================
   Mode resolusi harga efektif (dua kebijakan bernama)
   ========================================================= */

type PriceMode string

const (
	// PriceModeLive: priceOverride → harga master berjalan → snapshot.
	// Dipakai recompute dan read path default.
	PriceModeLive PriceMode = "live"

	// PriceModeSnapshot: priceOverride → snapshot → harga master berjalan.
	// Dipakai read path "use snapshot" (laporan historis).
	PriceModeSnapshot PriceMode = "snapshot"
)

func (m PriceMode) Valid() bool { return m == PriceModeLive || m == PriceModeSnapshot }

// EffectiveUnitPrice menjalankan rantai preferensi sesuai mode.
// Override 0 tetap menang — hanya nil yang jatuh ke preferensi berikutnya.
func EffectiveUnitPrice(mode PriceMode, override, live, snapshot *float64) float64 {
	if override != nil {
		return *override
	}
	switch mode {
	case PriceModeSnapshot:
		if snapshot != nil {
			return *snapshot
		}
		if live != nil {
			return *live
		}
	default: // PriceModeLive
		if live != nil {
			return *live
		}
		if snapshot != nil {
			return *snapshot
		}
	}
	return 0
}

// ComponentSubtotal: subtotal = koefisien * harga efektif, tanpa pembulatan.
func ComponentSubtotal(coefficient, effectiveUnitPrice float64) float64 {
	return coefficient * effectiveUnitPrice
}

/* =========================================================
   Bucket A/B/C/X dan agregat D/E/F
   ========================================================= */

type BucketTotals struct {
	A float64 `json:"a"` // LABOR
	B float64 `json:"b"` // MATERIAL
	C float64 `json:"c"` // EQUIPMENT
	X float64 `json:"x"` // OTHER — dihitung, tidak masuk D
}

// Add menambahkan subtotal satu komponen ke bucket grupnya.
func (b *BucketTotals) Add(group ahspModel.ComponentGroup, subtotal float64) {
	switch group {
	case ahspModel.ComponentGroupLabor:
		b.A += subtotal
	case ahspModel.ComponentGroupMaterial:
		b.B += subtotal
	case ahspModel.ComponentGroupEquipment:
		b.C += subtotal
	case ahspModel.ComponentGroupOther:
		b.X += subtotal
	}
}

type RecipeTotals struct {
	Buckets        BucketTotals `json:"buckets"`
	SubtotalABC    float64      `json:"subtotal_abc"`     // D
	OverheadAmount float64      `json:"overhead_amount"`  // E
	FinalUnitPrice float64      `json:"final_unit_price"` // F
}

// ComputeTotals: D = A + B + C (bucket X sengaja di luar basis overhead,
// mengikuti formula produk), E = D * persen/100, F = D + E.
func ComputeTotals(buckets BucketTotals, overheadPercent float64) RecipeTotals {
	d := buckets.A + buckets.B + buckets.C
	e := d * (overheadPercent / 100)
	return RecipeTotals{
		Buckets:        buckets,
		SubtotalABC:    d,
		OverheadAmount: e,
		FinalUnitPrice: d + e,
	}
}

/* =========================================================
   Derivasi sekumpulan komponen satu resep (kernel recompute)
   ========================================================= */

// DeriveComponents menyegarkan effective_unit_price/subtotal setiap komponen
// terhadap harga master berjalan (livePrices keyed by master_item_id string),
// lalu mengembalikan agregat resep. Komponen dimutasi in place; caller yang
// bertanggung jawab mem-persist dalam satu transaksi.
func DeriveComponents(components []ahspModel.AHSPComponentModel, livePrices map[string]float64, overheadPercent float64) RecipeTotals {
	var buckets BucketTotals
	for i := range components {
		c := &components[i]

		var live *float64
		if p, ok := livePrices[c.AHSPComponentMasterItemID.String()]; ok {
			live = &p
		}
		snap := c.AHSPComponentUnitPriceSnapshot

		c.AHSPComponentEffectiveUnitPrice = EffectiveUnitPrice(PriceModeLive, c.AHSPComponentPriceOverride, live, &snap)
		c.AHSPComponentSubtotal = ComponentSubtotal(c.AHSPComponentCoefficient, c.AHSPComponentEffectiveUnitPrice)

		buckets.Add(c.AHSPComponentGroup, c.AHSPComponentSubtotal)
	}
	return ComputeTotals(buckets, overheadPercent)
}

// NextOrder: urutan komponen baru = max order bucket (recipe, group) + 1,
// mulai dari 1 saat bucket kosong.
func NextOrder(siblings []ahspModel.AHSPComponentModel, group ahspModel.ComponentGroup) int {
	max := 0
	for i := range siblings {
		if siblings[i].AHSPComponentGroup != group {
			continue
		}
		if siblings[i].AHSPComponentOrder > max {
			max = siblings[i].AHSPComponentOrder
		}
	}
	return max + 1
}
