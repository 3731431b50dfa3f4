// file: internals/features/pricing/ahsp/service/clone_test.go
package service

import (
	"testing"
	"time"

	"github.com/google/uuid"

	ahspModel "ahspku_backend/internals/features/pricing/ahsp/model"
	hspModel "ahspku_backend/internals/features/pricing/hsp/model"
	"ahspku_backend/internals/features/pricing/scope"
)

func sampleTree(n int) RecipeTree {
	itemID := uuid.New()
	recipeID := uuid.New()
	notes := "catatan"

	tree := RecipeTree{
		Item: hspModel.HSPItemModel{
			HSPItemID:         itemID,
			HSPItemScope:      scope.GlobalTag,
			HSPItemKode:       "A.1.1.1",
			HSPItemDeskripsi:  "Galian tanah biasa",
			HSPItemSatuan:     "m3",
			HSPItemHarga:      275000,
			HSPItemCategoryID: uuid.New(),
			HSPItemCreatedAt:  time.Now(),
			HSPItemUpdatedAt:  time.Now(),
		},
		Recipe: &ahspModel.AHSPRecipeModel{
			AHSPRecipeID:              recipeID,
			AHSPRecipeScope:           scope.GlobalTag,
			AHSPRecipeHSPItemID:       itemID,
			AHSPRecipeOverheadPercent: 10,
			AHSPRecipeSubtotalABC:     250000,
			AHSPRecipeFinalUnitPrice:  275000,
		},
	}
	for i := 0; i < n; i++ {
		c := ahspModel.AHSPComponentModel{
			AHSPComponentID:                uuid.New(),
			AHSPComponentScope:             scope.GlobalTag,
			AHSPComponentRecipeID:          recipeID,
			AHSPComponentMasterItemID:      uuid.New(),
			AHSPComponentGroup:             ahspModel.ComponentGroupLabor,
			AHSPComponentCoefficient:       float64(i + 1),
			AHSPComponentUnitPriceSnapshot: 90000,
			AHSPComponentOrder:             i + 1,
		}
		if i == 0 {
			c.AHSPComponentPriceOverride = fptr(123)
			c.AHSPComponentNotes = &notes
		}
		tree.Components = append(tree.Components, c)
	}
	return tree
}

func TestCloneIntoScope(t *testing.T) {
	userID := uuid.New()
	tag := scope.ForUser(userID).Tag()
	src := sampleTree(3)

	got := CloneIntoScope(src, tag)

	// identitas baru, scope baru
	if got.Item.HSPItemID == src.Item.HSPItemID {
		t.Fatal("item hasil clone harus punya ID baru")
	}
	if got.Item.HSPItemScope != tag {
		t.Fatalf("scope item = %q, want %q", got.Item.HSPItemScope, tag)
	}
	if got.Recipe == nil || got.Recipe.AHSPRecipeID == src.Recipe.AHSPRecipeID {
		t.Fatal("resep hasil clone harus punya ID baru")
	}
	if got.Recipe.AHSPRecipeHSPItemID != got.Item.HSPItemID {
		t.Fatal("resep harus menunjuk item hasil clone")
	}

	// field nilai disalin verbatim
	if got.Item.HSPItemKode != src.Item.HSPItemKode || got.Item.HSPItemHarga != src.Item.HSPItemHarga {
		t.Fatal("field nilai item harus disalin")
	}
	if got.Item.HSPItemCategoryID != src.Item.HSPItemCategoryID {
		t.Fatal("referensi kategori tidak di-scope ulang")
	}
	if got.Recipe.AHSPRecipeOverheadPercent != 10 {
		t.Fatalf("overhead = %v", got.Recipe.AHSPRecipeOverheadPercent)
	}

	// komponen lengkap, tertaut resep baru, master item tetap
	if len(got.Components) != len(src.Components) {
		t.Fatalf("jumlah komponen = %d, want %d", len(got.Components), len(src.Components))
	}
	for i := range got.Components {
		gc, sc := got.Components[i], src.Components[i]
		if gc.AHSPComponentID == sc.AHSPComponentID {
			t.Fatalf("komponen %d harus punya ID baru", i)
		}
		if gc.AHSPComponentScope != tag {
			t.Fatalf("komponen %d scope = %q", i, gc.AHSPComponentScope)
		}
		if gc.AHSPComponentRecipeID != got.Recipe.AHSPRecipeID {
			t.Fatalf("komponen %d tidak tertaut resep hasil clone", i)
		}
		if gc.AHSPComponentMasterItemID != sc.AHSPComponentMasterItemID {
			t.Fatalf("komponen %d referensi master item berubah", i)
		}
		if gc.AHSPComponentCoefficient != sc.AHSPComponentCoefficient || gc.AHSPComponentOrder != sc.AHSPComponentOrder {
			t.Fatalf("komponen %d field nilai berubah", i)
		}
	}

	// pointer di-deep-copy: mutasi hasil clone tidak bocor ke sumber
	*got.Components[0].AHSPComponentPriceOverride = 999
	*got.Components[0].AHSPComponentNotes = "diubah"
	if *src.Components[0].AHSPComponentPriceOverride != 123 {
		t.Fatal("price override sumber ikut berubah")
	}
	if *src.Components[0].AHSPComponentNotes != "catatan" {
		t.Fatal("notes sumber ikut berubah")
	}

	// timestamp dikosongkan supaya hook/default DB yang mengisi
	if !got.Item.HSPItemCreatedAt.IsZero() || !got.Item.HSPItemUpdatedAt.IsZero() {
		t.Fatal("timestamp item harus kosong")
	}
}

func TestCloneIntoScopeSourceUnchanged(t *testing.T) {
	src := sampleTree(2)
	srcItemID := src.Item.HSPItemID
	srcRecipeID := src.Recipe.AHSPRecipeID

	_ = CloneIntoScope(src, scope.ForUser(uuid.New()).Tag())

	if src.Item.HSPItemID != srcItemID || src.Item.HSPItemScope != scope.GlobalTag {
		t.Fatal("item sumber berubah")
	}
	if src.Recipe.AHSPRecipeID != srcRecipeID || src.Recipe.AHSPRecipeScope != scope.GlobalTag {
		t.Fatal("resep sumber berubah")
	}
	for i := range src.Components {
		if src.Components[i].AHSPComponentScope != scope.GlobalTag {
			t.Fatalf("komponen sumber %d berubah", i)
		}
	}
}

func TestCloneIntoScopeWithoutRecipe(t *testing.T) {
	src := sampleTree(0)
	src.Recipe = nil
	src.Components = nil

	got := CloneIntoScope(src, scope.ForUser(uuid.New()).Tag())
	if got.Recipe != nil || len(got.Components) != 0 {
		t.Fatal("item tanpa resep harus menghasilkan clone tanpa resep")
	}
	if got.Item.HSPItemID == src.Item.HSPItemID {
		t.Fatal("item hasil clone harus punya ID baru")
	}
}
