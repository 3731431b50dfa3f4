// file: internals/features/pricing/ahsp/service/clone.go
package service

import (
	"time"

	"github.com/google/uuid"

	ahspModel "ahspku_backend/internals/features/pricing/ahsp/model"
	hspModel "ahspku_backend/internals/features/pricing/hsp/model"
)

/* =========================================================
   Clone-into-scope (kernel murni copy-on-write)
   ========================================================= */

// RecipeTree: agregat item + resep (opsional) + komponen, seperti yang
// dikonsumsi read path dan materializer.
type RecipeTree struct {
	Item       hspModel.HSPItemModel
	Recipe     *ahspModel.AHSPRecipeModel
	Components []ahspModel.AHSPComponentModel
}

// CloneIntoScope membangun agregat baru ber-scope target dari agregat GLOBAL:
// identitas baru, field nilai disalin verbatim. Referensi kategori dan master
// item TIDAK di-scope ulang — tetap menunjuk baris bersama. Fungsi murni;
// penyimpanan transaksional ada di materializer.
func CloneIntoScope(src RecipeTree, scopeTag string) RecipeTree {
	var out RecipeTree

	out.Item = src.Item
	out.Item.HSPItemID = uuid.New()
	out.Item.HSPItemScope = scopeTag
	out.Item.HSPItemCreatedAt = time.Time{}
	out.Item.HSPItemUpdatedAt = time.Time{}

	if src.Recipe == nil {
		return out
	}

	r := *src.Recipe
	r.AHSPRecipeID = uuid.New()
	r.AHSPRecipeScope = scopeTag
	r.AHSPRecipeHSPItemID = out.Item.HSPItemID
	r.AHSPRecipeCreatedAt = time.Time{}
	r.AHSPRecipeUpdatedAt = time.Time{}
	out.Recipe = &r

	out.Components = make([]ahspModel.AHSPComponentModel, len(src.Components))
	for i, c := range src.Components {
		if c.AHSPComponentPriceOverride != nil {
			po := *c.AHSPComponentPriceOverride
			c.AHSPComponentPriceOverride = &po
		}
		if c.AHSPComponentNotes != nil {
			n := *c.AHSPComponentNotes
			c.AHSPComponentNotes = &n
		}
		c.AHSPComponentID = uuid.New()
		c.AHSPComponentScope = scopeTag
		c.AHSPComponentRecipeID = r.AHSPRecipeID
		c.AHSPComponentCreatedAt = time.Time{}
		c.AHSPComponentUpdatedAt = time.Time{}
		out.Components[i] = c
	}
	return out
}
