// file: internals/features/pricing/ahsp/service/materializer.go
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	ahspModel "ahspku_backend/internals/features/pricing/ahsp/model"
	hspModel "ahspku_backend/internals/features/pricing/hsp/model"
	masterModel "ahspku_backend/internals/features/pricing/master/model"
	"ahspku_backend/internals/features/pricing/scope"
)

// default overhead saat resep dibuat implisit lewat addComponentByKode
const DefaultOverheadPercent = 10

/* =========================================================
   MaterializeService: copy-on-write item GLOBAL → scope user
   ========================================================= */

type MaterializeService struct {
	DB *gorm.DB
}

func NewMaterializeService(db *gorm.DB) *MaterializeService {
	return &MaterializeService{DB: db}
}

// LoadTree memuat item + resep + komponen pada satu scope.
// Resep boleh tidak ada (item berharga manual).
func LoadTree(db *gorm.DB, scopeTag, kode string) (*RecipeTree, error) {
	var tree RecipeTree

	if err := db.
		Where("hsp_item_scope = ? AND hsp_item_kode = ?", scopeTag, kode).
		First(&tree.Item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Item HSP tidak ditemukan")
		}
		return nil, err
	}

	var recipe ahspModel.AHSPRecipeModel
	err := db.Where("ahsp_recipe_hsp_item_id = ?", tree.Item.HSPItemID).First(&recipe).Error
	switch {
	case err == nil:
		tree.Recipe = &recipe
	case errors.Is(err, gorm.ErrRecordNotFound):
		return &tree, nil
	default:
		return nil, err
	}

	if err := db.
		Where("ahsp_component_recipe_id = ?", recipe.AHSPRecipeID).
		Order("ahsp_component_group ASC, ahsp_component_order ASC").
		Find(&tree.Components).Error; err != nil {
		return nil, err
	}
	return &tree, nil
}

// Materialize: copy-on-write item GLOBAL ke scope caller.
//  1. Sudah ada baris (scope, kode) → kembalikan apa adanya (idempoten).
//  2. Muat pohon GLOBAL; tidak ada → 404.
//  3. Clone ke scope + simpan item/resep/komponen dalam SATU transaksi.
//
// Race dua materialize serentak diserahkan ke unique (scope, kode):
// pemenang commit, yang kalah dapat 409 lalu retry fast path.
func (s *MaterializeService) Materialize(ctx context.Context, sc scope.Scope, kode string) (*hspModel.HSPItemModel, error) {
	item, _, err := s.materialize(ctx, sc, kode, nil)
	return item, err
}

// materialize: kernel copy-on-write. mutate (boleh nil) diterapkan pada pohon
// hasil clone SEBELUM disimpan, sehingga copy + mutasinya commit atomik —
// pembaca tidak pernah melihat copy verbatim dari operasi delete/patch yang
// setengah jalan. Return kedua = true bila baris scoped sudah ada (fast path,
// mutate tidak diterapkan).
func (s *MaterializeService) materialize(ctx context.Context, sc scope.Scope, kode string, mutate func(*RecipeTree)) (*hspModel.HSPItemModel, bool, error) {
	db := s.DB.WithContext(ctx)

	// fast path
	var existing hspModel.HSPItemModel
	err := db.Where("hsp_item_scope = ? AND hsp_item_kode = ?", sc.Tag(), kode).First(&existing).Error
	if err == nil {
		return &existing, true, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	globalTree, err := LoadTree(db, scope.GlobalTag, kode)
	if err != nil {
		return nil, false, err
	}

	cloned := CloneIntoScope(*globalTree, sc.Tag())
	if mutate != nil {
		mutate(&cloned)
	}

	if err := db.Transaction(func(tx *gorm.DB) error {
		if er := tx.Create(&cloned.Item).Error; er != nil {
			return er
		}
		if cloned.Recipe != nil {
			if er := tx.Create(cloned.Recipe).Error; er != nil {
				return er
			}
		}
		if len(cloned.Components) > 0 {
			if er := tx.Create(&cloned.Components).Error; er != nil {
				return er
			}
		}
		return nil
	}); err != nil {
		if IsUniqueViolation(err) {
			return nil, false, fiber.NewError(fiber.StatusConflict, "Item sudah ter-copy oleh request lain — ulangi pembacaan")
		}
		return nil, false, err
	}
	return &cloned.Item, false, nil
}

// ensureRecipe: pastikan resep scoped ada untuk item; buat bare recipe bila
// GLOBAL memang tidak punya (overhead default hanya untuk jalur addComponent).
func ensureRecipe(tx *gorm.DB, item *hspModel.HSPItemModel, defaultOverhead float64) (*ahspModel.AHSPRecipeModel, error) {
	var recipe ahspModel.AHSPRecipeModel
	err := tx.Where("ahsp_recipe_hsp_item_id = ?", item.HSPItemID).First(&recipe).Error
	if err == nil {
		return &recipe, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	recipe = ahspModel.AHSPRecipeModel{
		AHSPRecipeID:              uuid.New(),
		AHSPRecipeScope:           item.HSPItemScope,
		AHSPRecipeHSPItemID:       item.HSPItemID,
		AHSPRecipeOverheadPercent: defaultOverhead,
	}
	if er := tx.Create(&recipe).Error; er != nil {
		return nil, er
	}
	return &recipe, nil
}

/* =========================================================
   Entry point mutasi by kode (materialize-on-write)
   ========================================================= */

// SetOverheadByKode: materialize bila perlu, lalu upsert overhead resep.
func (s *MaterializeService) SetOverheadByKode(ctx context.Context, sc scope.Scope, kode string, percent float64) (*ahspModel.AHSPRecipeModel, error) {
	if percent < 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "overhead_percent harus >= 0")
	}
	item, err := s.Materialize(ctx, sc, kode)
	if err != nil {
		return nil, err
	}

	db := s.DB.WithContext(ctx)
	var recipe *ahspModel.AHSPRecipeModel
	if err := db.Transaction(func(tx *gorm.DB) error {
		r, er := ensureRecipe(tx, item, 0)
		if er != nil {
			return er
		}
		r.AHSPRecipeOverheadPercent = percent
		if er := tx.Save(r).Error; er != nil {
			return er
		}
		recipe = r
		return nil
	}); err != nil {
		return nil, err
	}
	return recipe, nil
}

type AddComponentInput struct {
	Group         ahspModel.ComponentGroup
	MasterItemID  uuid.UUID
	Coefficient   *float64 // default 1
	PriceOverride *float64
	Notes         *string
}

// AddComponentByKode: materialize bila perlu, pastikan resep ada (overhead
// default 10 bila dibuat di sini), lalu tambahkan komponen dengan snapshot
// master item saat ini dan order = max bucket + 1.
func (s *MaterializeService) AddComponentByKode(ctx context.Context, sc scope.Scope, kode string, in AddComponentInput) (*ahspModel.AHSPComponentModel, error) {
	if !in.Group.Valid() {
		return nil, fiber.NewError(fiber.StatusBadRequest, "group tidak valid")
	}
	coefficient := 1.0
	if in.Coefficient != nil {
		if *in.Coefficient < 0 {
			return nil, fiber.NewError(fiber.StatusBadRequest, "coefficient harus >= 0")
		}
		coefficient = *in.Coefficient
	}
	if in.PriceOverride != nil && *in.PriceOverride < 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "price_override harus >= 0")
	}

	item, err := s.Materialize(ctx, sc, kode)
	if err != nil {
		return nil, err
	}

	db := s.DB.WithContext(ctx)
	var created *ahspModel.AHSPComponentModel
	if err := db.Transaction(func(tx *gorm.DB) error {
		recipe, er := ensureRecipe(tx, item, DefaultOverheadPercent)
		if er != nil {
			return er
		}

		var master masterModel.MasterItemModel
		if er := tx.First(&master, "master_item_id = ?", in.MasterItemID).Error; er != nil {
			if errors.Is(er, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Master item tidak ditemukan")
			}
			return er
		}

		var siblings []ahspModel.AHSPComponentModel
		if er := tx.
			Where("ahsp_component_recipe_id = ?", recipe.AHSPRecipeID).
			Find(&siblings).Error; er != nil {
			return er
		}

		live := master.MasterItemPrice
		effective := EffectiveUnitPrice(PriceModeLive, in.PriceOverride, &live, nil)

		comp := ahspModel.AHSPComponentModel{
			AHSPComponentID:                 uuid.New(),
			AHSPComponentScope:              recipe.AHSPRecipeScope,
			AHSPComponentRecipeID:           recipe.AHSPRecipeID,
			AHSPComponentMasterItemID:       master.MasterItemID,
			AHSPComponentGroup:              in.Group,
			AHSPComponentCoefficient:        coefficient,
			AHSPComponentPriceOverride:      in.PriceOverride,
			AHSPComponentNameSnapshot:       master.MasterItemName,
			AHSPComponentUnitSnapshot:       master.MasterItemUnit,
			AHSPComponentUnitPriceSnapshot:  master.MasterItemPrice,
			AHSPComponentEffectiveUnitPrice: effective,
			AHSPComponentSubtotal:           ComponentSubtotal(coefficient, effective),
			AHSPComponentOrder:              NextOrder(siblings, in.Group),
			AHSPComponentNotes:              in.Notes,
		}
		if er := tx.Create(&comp).Error; er != nil {
			return er
		}
		created = &comp
		return nil
	}); err != nil {
		return nil, err
	}
	return created, nil
}

type UpdateItemInput struct {
	Deskripsi  *string
	Satuan     *string
	Harga      *float64
	CategoryID *uuid.UUID
}

func applyItemPatch(item *hspModel.HSPItemModel, in UpdateItemInput) {
	if in.Deskripsi != nil {
		item.HSPItemDeskripsi = *in.Deskripsi
	}
	if in.Satuan != nil {
		item.HSPItemSatuan = *in.Satuan
	}
	if in.Harga != nil {
		item.HSPItemHarga = *in.Harga
	}
	if in.CategoryID != nil {
		item.HSPItemCategoryID = *in.CategoryID
	}
}

// UpdateByKode: edit ke item GLOBAL-only memicu copy scoped dengan patch
// sudah diterapkan — keduanya commit dalam satu transaksi, pembaca tidak
// pernah melihat copy verbatim tanpa patch. Baris GLOBAL tidak pernah
// tersentuh.
func (s *MaterializeService) UpdateByKode(ctx context.Context, sc scope.Scope, kode string, in UpdateItemInput) (*hspModel.HSPItemModel, error) {
	if in.Harga != nil && *in.Harga < 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "harga harus >= 0")
	}
	if in.Deskripsi != nil && strings.TrimSpace(*in.Deskripsi) == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "deskripsi tidak boleh kosong")
	}

	item, existed, err := s.materialize(ctx, sc, kode, func(t *RecipeTree) {
		applyItemPatch(&t.Item, in)
	})
	if err != nil {
		return nil, err
	}
	if !existed {
		return item, nil
	}

	applyItemPatch(item, in)
	if err := s.DB.WithContext(ctx).Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteByKode: tombstone-on-write. Bila belum ada baris scoped, copy dibuat
// SUDAH bertanda is_deleted dalam transaksi materialize itu sendiri — tidak
// ada jendela di mana copy hidup verbatim terlihat. Baris GLOBAL tetap hidup.
func (s *MaterializeService) DeleteByKode(ctx context.Context, sc scope.Scope, kode string) error {
	item, existed, err := s.materialize(ctx, sc, kode, func(t *RecipeTree) {
		t.Item.HSPItemIsDeleted = true
	})
	if err != nil {
		return err
	}
	if !existed || item.HSPItemIsDeleted {
		return nil
	}
	item.HSPItemIsDeleted = true
	return s.DB.WithContext(ctx).Save(item).Error
}

/* =========================================================
   Mutasi komponen langsung by id (tanpa materialisasi)
   ========================================================= */

type UpdateComponentInput struct {
	Coefficient   *float64
	PriceOverride *float64
	ClearOverride bool
	Notes         *string
	Order         *int
}

// UpdateComponent: beroperasi pada scope milik komponen apa adanya; harga
// efektif/subtotal disegarkan terhadap harga master saat ini, TIDAK memicu
// recompute total resep (itu panggilan eksplisit terpisah).
func (s *MaterializeService) UpdateComponent(ctx context.Context, componentID uuid.UUID, in UpdateComponentInput) (*ahspModel.AHSPComponentModel, error) {
	if in.Coefficient != nil && *in.Coefficient < 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "coefficient harus >= 0")
	}
	if in.PriceOverride != nil && *in.PriceOverride < 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "price_override harus >= 0")
	}

	db := s.DB.WithContext(ctx)

	var comp ahspModel.AHSPComponentModel
	if err := db.First(&comp, "ahsp_component_id = ?", componentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Komponen tidak ditemukan")
		}
		return nil, err
	}

	if in.Coefficient != nil {
		comp.AHSPComponentCoefficient = *in.Coefficient
	}
	if in.ClearOverride {
		comp.AHSPComponentPriceOverride = nil
	} else if in.PriceOverride != nil {
		comp.AHSPComponentPriceOverride = in.PriceOverride
	}
	if in.Notes != nil {
		comp.AHSPComponentNotes = in.Notes
	}
	if in.Order != nil {
		comp.AHSPComponentOrder = *in.Order
	}

	var master masterModel.MasterItemModel
	if err := db.First(&master, "master_item_id = ?", comp.AHSPComponentMasterItemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Master item komponen tidak ditemukan")
		}
		return nil, err
	}

	live := master.MasterItemPrice
	comp.AHSPComponentEffectiveUnitPrice = EffectiveUnitPrice(PriceModeLive, comp.AHSPComponentPriceOverride, &live, nil)
	comp.AHSPComponentSubtotal = ComponentSubtotal(comp.AHSPComponentCoefficient, comp.AHSPComponentEffectiveUnitPrice)

	if err := db.Save(&comp).Error; err != nil {
		return nil, err
	}
	return &comp, nil
}

// DeleteComponent: hapus fisik satu komponen (bukan tombstone).
func (s *MaterializeService) DeleteComponent(ctx context.Context, componentID uuid.UUID) error {
	res := s.DB.WithContext(ctx).
		Delete(&ahspModel.AHSPComponentModel{}, "ahsp_component_id = ?", componentID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Komponen tidak ditemukan")
	}
	return nil
}

/* =========================================================
   Deteksi unique violation Postgres (SQLSTATE 23505)
   ========================================================= */

type pgSQLErr interface {
	SQLState() string
	Error() string
}

func IsUniqueViolation(err error) bool {
	var pgErr pgSQLErr
	if errors.As(err, &pgErr) && pgErr.SQLState() == "23505" {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint") || strings.Contains(s, "23505")
}
