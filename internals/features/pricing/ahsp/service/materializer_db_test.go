// file: internals/features/pricing/ahsp/service/materializer_db_test.go
package service

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	ahspModel "ahspku_backend/internals/features/pricing/ahsp/model"
	hspModel "ahspku_backend/internals/features/pricing/hsp/model"
	"ahspku_backend/internals/features/pricing/scope"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := strings.TrimSpace(os.Getenv("AHSPKU_TEST_DATABASE_URL"))
	if dsn == "" {
		t.Skip("AHSPKU_TEST_DATABASE_URL is not set")
	}
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	if err := db.AutoMigrate(
		&hspModel.HSPCategoryModel{},
		&hspModel.HSPItemModel{},
		&ahspModel.AHSPRecipeModel{},
		&ahspModel.AHSPComponentModel{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

// seedGlobalTree menanam item GLOBAL + resep + 2 komponen, kode unik per run.
func seedGlobalTree(t *testing.T, db *gorm.DB) string {
	t.Helper()
	kode := "T." + uuid.New().String()[:8]

	item := hspModel.HSPItemModel{
		HSPItemID:         uuid.New(),
		HSPItemScope:      scope.GlobalTag,
		HSPItemKode:       kode,
		HSPItemDeskripsi:  "Pasangan batu kali",
		HSPItemSatuan:     "m3",
		HSPItemHarga:      275000,
		HSPItemCategoryID: uuid.New(),
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("seed item: %v", err)
	}
	recipe := ahspModel.AHSPRecipeModel{
		AHSPRecipeID:              uuid.New(),
		AHSPRecipeScope:           scope.GlobalTag,
		AHSPRecipeHSPItemID:       item.HSPItemID,
		AHSPRecipeOverheadPercent: 10,
	}
	if err := db.Create(&recipe).Error; err != nil {
		t.Fatalf("seed recipe: %v", err)
	}
	components := []ahspModel.AHSPComponentModel{
		{
			AHSPComponentID:                uuid.New(),
			AHSPComponentScope:             scope.GlobalTag,
			AHSPComponentRecipeID:          recipe.AHSPRecipeID,
			AHSPComponentMasterItemID:      uuid.New(),
			AHSPComponentGroup:             ahspModel.ComponentGroupLabor,
			AHSPComponentCoefficient:       2,
			AHSPComponentNameSnapshot:      "Tukang batu",
			AHSPComponentUnitSnapshot:      "OH",
			AHSPComponentUnitPriceSnapshot: 100000,
			AHSPComponentOrder:             1,
		},
		{
			AHSPComponentID:                uuid.New(),
			AHSPComponentScope:             scope.GlobalTag,
			AHSPComponentRecipeID:          recipe.AHSPRecipeID,
			AHSPComponentMasterItemID:      uuid.New(),
			AHSPComponentGroup:             ahspModel.ComponentGroupMaterial,
			AHSPComponentCoefficient:       0.5,
			AHSPComponentNameSnapshot:      "Batu kali",
			AHSPComponentUnitSnapshot:      "m3",
			AHSPComponentUnitPriceSnapshot: 150000,
			AHSPComponentOrder:             1,
		},
	}
	if err := db.Create(&components).Error; err != nil {
		t.Fatalf("seed components: %v", err)
	}
	return kode
}

func countScopedItems(t *testing.T, db *gorm.DB, tag, kode string) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&hspModel.HSPItemModel{}).
		Where("hsp_item_scope = ? AND hsp_item_kode = ?", tag, kode).
		Count(&n).Error; err != nil {
		t.Fatalf("count scoped items: %v", err)
	}
	return n
}

func TestMaterializeIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewMaterializeService(db)
	ctx := context.Background()

	kode := seedGlobalTree(t, db)
	sc := scope.ForUser(uuid.New())

	first, err := svc.Materialize(ctx, sc, kode)
	if err != nil {
		t.Fatalf("materialize pertama: %v", err)
	}
	second, err := svc.Materialize(ctx, sc, kode)
	if err != nil {
		t.Fatalf("materialize kedua: %v", err)
	}
	if first.HSPItemID != second.HSPItemID {
		t.Fatalf("materialize kedua mengembalikan item lain: %s vs %s", first.HSPItemID, second.HSPItemID)
	}
	if n := countScopedItems(t, db, sc.Tag(), kode); n != 1 {
		t.Fatalf("baris scoped = %d, want 1", n)
	}

	tree, err := LoadTree(db, sc.Tag(), kode)
	if err != nil {
		t.Fatalf("load tree scoped: %v", err)
	}
	if tree.Recipe == nil || len(tree.Components) != 2 {
		t.Fatalf("pohon scoped tidak lengkap: recipe=%v komponen=%d", tree.Recipe != nil, len(tree.Components))
	}
	for i := range tree.Components {
		if tree.Components[i].AHSPComponentScope != sc.Tag() {
			t.Fatalf("komponen %d scope = %q", i, tree.Components[i].AHSPComponentScope)
		}
	}
}

func TestDeleteByKodeTombstoneInSameWrite(t *testing.T) {
	db := newTestDB(t)
	svc := NewMaterializeService(db)
	ctx := context.Background()

	kode := seedGlobalTree(t, db)
	sc := scope.ForUser(uuid.New())

	if err := svc.DeleteByKode(ctx, sc, kode); err != nil {
		t.Fatalf("delete: %v", err)
	}

	// copy scoped lahir langsung bertanda is_deleted
	var copied hspModel.HSPItemModel
	if err := db.Where("hsp_item_scope = ? AND hsp_item_kode = ?", sc.Tag(), kode).
		First(&copied).Error; err != nil {
		t.Fatalf("baca copy scoped: %v", err)
	}
	if !copied.HSPItemIsDeleted {
		t.Fatal("copy scoped harus bertanda is_deleted sejak dibuat")
	}

	// baris GLOBAL tidak tersentuh
	var global hspModel.HSPItemModel
	if err := db.Where("hsp_item_scope = ? AND hsp_item_kode = ?", scope.GlobalTag, kode).
		First(&global).Error; err != nil {
		t.Fatalf("baca baris GLOBAL: %v", err)
	}
	if global.HSPItemIsDeleted {
		t.Fatal("baris GLOBAL ikut tertombstone")
	}

	// delete kedua idempoten
	if err := svc.DeleteByKode(ctx, sc, kode); err != nil {
		t.Fatalf("delete kedua: %v", err)
	}
	if n := countScopedItems(t, db, sc.Tag(), kode); n != 1 {
		t.Fatalf("baris scoped = %d, want 1", n)
	}
}

func TestUpdateByKodePatchLandsOnCopy(t *testing.T) {
	db := newTestDB(t)
	svc := NewMaterializeService(db)
	ctx := context.Background()

	kode := seedGlobalTree(t, db)
	sc := scope.ForUser(uuid.New())

	harga := 300000.0
	item, err := svc.UpdateByKode(ctx, sc, kode, UpdateItemInput{Harga: &harga})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if item.HSPItemScope != sc.Tag() || item.HSPItemHarga != 300000 {
		t.Fatalf("copy scoped = scope:%q harga:%v", item.HSPItemScope, item.HSPItemHarga)
	}

	var stored hspModel.HSPItemModel
	if err := db.Where("hsp_item_scope = ? AND hsp_item_kode = ?", sc.Tag(), kode).
		First(&stored).Error; err != nil {
		t.Fatalf("baca copy scoped: %v", err)
	}
	if stored.HSPItemHarga != 300000 {
		t.Fatalf("harga tersimpan = %v, patch tidak ikut transaksi copy", stored.HSPItemHarga)
	}

	var global hspModel.HSPItemModel
	if err := db.Where("hsp_item_scope = ? AND hsp_item_kode = ?", scope.GlobalTag, kode).
		First(&global).Error; err != nil {
		t.Fatalf("baca baris GLOBAL: %v", err)
	}
	if global.HSPItemHarga != 275000 {
		t.Fatalf("harga GLOBAL berubah: %v", global.HSPItemHarga)
	}

	// panggilan kedua mengedit copy yang sama, bukan membuat baris baru
	harga2 := 310000.0
	if _, err := svc.UpdateByKode(ctx, sc, kode, UpdateItemInput{Harga: &harga2}); err != nil {
		t.Fatalf("update kedua: %v", err)
	}
	if n := countScopedItems(t, db, sc.Tag(), kode); n != 1 {
		t.Fatalf("baris scoped = %d, want 1", n)
	}
}
