// file: internals/features/pricing/hsp/controller/hsp_item_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	ahspService "ahspku_backend/internals/features/pricing/ahsp/service"
	dto "ahspku_backend/internals/features/pricing/hsp/dto"
	model "ahspku_backend/internals/features/pricing/hsp/model"
	"ahspku_backend/internals/features/pricing/scope"
	helper "ahspku_backend/internals/helpers"
)

type HSPItemController struct {
	DB          *gorm.DB
	Validator   *validator.Validate
	Materialize *ahspService.MaterializeService
}

func NewHSPItemController(db *gorm.DB) *HSPItemController {
	return &HSPItemController{
		DB:          db,
		Validator:   validator.New(),
		Materialize: ahspService.NewMaterializeService(db),
	}
}

/* ================= List ================= */

// GET /hsp-items?category_id=&q= — merge override per kode; tombstone user
// menutupi baris GLOBAL untuk kode yang sama.
func (ctl *HSPItemController) List(c *fiber.Ctx) error {
	sc := scope.Of(helper.GetOptionalUserID(c))
	p := helper.ResolvePaging(c, 20, 200)

	q := strings.ToLower(strings.TrimSpace(c.Query("q")))
	categoryID := strings.TrimSpace(c.Query("category_id"))
	filter := func(db *gorm.DB) *gorm.DB {
		if categoryID != "" {
			db = db.Where("hsp_item_category_id = ?", categoryID)
		}
		if q != "" {
			like := "%" + q + "%"
			db = db.Where("LOWER(hsp_item_kode) LIKE ? OR LOWER(hsp_item_deskripsi) LIKE ?", like, like)
		}
		return db
	}

	var globalRows []model.HSPItemModel
	if err := filter(ctl.DB.Scopes(model.ItemScopeByTag(scope.GlobalTag))).
		Order("hsp_item_kode ASC").
		Find(&globalRows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var userRows []model.HSPItemModel
	if !sc.IsGlobal() {
		if err := filter(ctl.DB.Scopes(model.ItemScopeByTag(sc.Tag()))).
			Find(&userRows).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
	}

	merged := scope.MergeOverride(userRows, globalRows, func(m model.HSPItemModel) string {
		return m.HSPItemKode
	})

	// tombstone menyembunyikan item dari listing
	alive := merged[:0]
	for _, m := range merged {
		if !m.HSPItemIsDeleted {
			alive = append(alive, m)
		}
	}

	total := int64(len(alive))
	lo := p.Offset
	if lo > len(alive) {
		lo = len(alive)
	}
	hi := lo + p.Limit
	if hi > len(alive) {
		hi = len(alive)
	}

	return helper.JsonList(c, "ok",
		dto.FromModelHSPItems(alive[lo:hi]),
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage),
	)
}

/* ================= Get by kode ================= */

// GET /hsp-items/:kode — baris user diutamakan, fallback GLOBAL.
func (ctl *HSPItemController) GetByKode(c *fiber.Ctx) error {
	kode := strings.TrimSpace(c.Params("kode"))
	sc := scope.Of(helper.GetOptionalUserID(c))

	item, err := resolveItemByKode(ctl.DB, sc, kode)
	if err != nil {
		return err
	}
	if item.HSPItemIsDeleted {
		return helper.JsonError(c, fiber.StatusNotFound, "Item HSP tidak ditemukan")
	}
	return helper.JsonOK(c, "ok", dto.FromModelHSPItem(item))
}

// resolveItemByKode: baris (scope user, kode) bila ada, selain itu GLOBAL.
func resolveItemByKode(db *gorm.DB, sc scope.Scope, kode string) (*model.HSPItemModel, error) {
	if !sc.IsGlobal() {
		var m model.HSPItemModel
		err := db.Where("hsp_item_scope = ? AND hsp_item_kode = ?", sc.Tag(), kode).First(&m).Error
		if err == nil {
			return &m, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	var m model.HSPItemModel
	if err := db.Where("hsp_item_scope = ? AND hsp_item_kode = ?", scope.GlobalTag, kode).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Item HSP tidak ditemukan")
		}
		return nil, err
	}
	return &m, nil
}

/* ================= Create ================= */

// POST /hsp-items — create langsung pada scope caller (bukan copy-on-write).
func (ctl *HSPItemController) Create(c *fiber.Ctx) error {
	var req dto.CreateHSPItemRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	sc := scope.Of(helper.GetOptionalUserID(c))
	m := model.HSPItemModel{
		HSPItemScope:      sc.Tag(),
		HSPItemKode:       strings.TrimSpace(req.HSPItemKode),
		HSPItemDeskripsi:  req.HSPItemDeskripsi,
		HSPItemSatuan:     req.HSPItemSatuan,
		HSPItemCategoryID: req.HSPItemCategoryID,
	}
	if req.HSPItemHarga != nil {
		m.HSPItemHarga = *req.HSPItemHarga
	}

	if err := ctl.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		if ahspService.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Kode item sudah dipakai pada scope ini")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "Item HSP dibuat", dto.FromModelHSPItem(&m))
}

/* ================= Patch by kode (copy-on-write) ================= */

// PATCH /hsp-items/:kode — edit terhadap item GLOBAL-only memicu copy scoped
// dulu; patch diterapkan di atas copy. GLOBAL tidak pernah termutasi.
func (ctl *HSPItemController) PatchByKode(c *fiber.Ctx) error {
	kode := strings.TrimSpace(c.Params("kode"))
	sc := scope.Of(helper.GetOptionalUserID(c))

	var req dto.PatchHSPItemRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	in := ahspService.UpdateItemInput{}
	if req.HSPItemDeskripsi.Set && !req.HSPItemDeskripsi.Null {
		in.Deskripsi = req.HSPItemDeskripsi.Value
	}
	if req.HSPItemSatuan.Set && !req.HSPItemSatuan.Null {
		in.Satuan = req.HSPItemSatuan.Value
	}
	if req.HSPItemHarga.Set && !req.HSPItemHarga.Null {
		in.Harga = req.HSPItemHarga.Value
	}
	if req.HSPItemCategoryID.Set && !req.HSPItemCategoryID.Null {
		in.CategoryID = req.HSPItemCategoryID.Value
	}

	item, err := ctl.Materialize.UpdateByKode(c.UserContext(), sc, kode, in)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Item HSP diperbarui", dto.FromModelHSPItem(item))
}

/* ================= Delete by kode (tombstone) ================= */

// DELETE /hsp-items/:kode — tombstone-on-write per scope.
func (ctl *HSPItemController) DeleteByKode(c *fiber.Ctx) error {
	kode := strings.TrimSpace(c.Params("kode"))
	sc := scope.Of(helper.GetOptionalUserID(c))

	if err := ctl.Materialize.DeleteByKode(c.UserContext(), sc, kode); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
