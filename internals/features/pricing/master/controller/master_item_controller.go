// file: internals/features/pricing/master/controller/master_item_controller.go
package controller

import (
	"errors"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "ahspku_backend/internals/features/pricing/master/dto"
	model "ahspku_backend/internals/features/pricing/master/model"
	service "ahspku_backend/internals/features/pricing/master/service"

	ahspModel "ahspku_backend/internals/features/pricing/ahsp/model"
	ahspService "ahspku_backend/internals/features/pricing/ahsp/service"
	"ahspku_backend/internals/features/pricing/scope"
	helper "ahspku_backend/internals/helpers"
)

type MasterItemController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Recompute *ahspService.RecomputeService
}

func NewMasterItemController(db *gorm.DB) *MasterItemController {
	return &MasterItemController{
		DB:        db,
		Validator: validator.New(),
		Recompute: ahspService.NewRecomputeService(db),
	}
}

func callerScope(c *fiber.Ctx) scope.Scope {
	return scope.Of(helper.GetOptionalUserID(c))
}

/* ================= List ================= */

// GET /master-items?type=&q=&sort_by=&order=&page=&per_page=
// Caller ber-identitas melihat merge override-nya di atas katalog GLOBAL.
func (ctl *MasterItemController) List(c *fiber.Ctx) error {
	t := model.MasterItemType(strings.ToUpper(strings.TrimSpace(c.Query("type"))))
	if !t.Valid() {
		return helper.JsonError(c, fiber.StatusBadRequest, "type harus LABOR/MATERIAL/EQUIPMENT/OTHER")
	}

	sc := callerScope(c)
	p := helper.ResolvePaging(c, 20, 200)

	q := strings.ToLower(strings.TrimSpace(c.Query("q")))
	filter := func(db *gorm.DB) *gorm.DB {
		db = db.Scopes(model.ScopeByType(t))
		if q != "" {
			like := "%" + q + "%"
			db = db.Where(
				"LOWER(master_item_code) LIKE ? OR LOWER(master_item_name) LIKE ? OR LOWER(master_item_unit) LIKE ?",
				like, like, like,
			)
		}
		return db
	}

	var globalRows []model.MasterItemModel
	if err := filter(ctl.DB.Scopes(model.ScopeByTag(scope.GlobalTag))).Find(&globalRows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var userRows []model.MasterItemModel
	if !sc.IsGlobal() {
		if err := filter(ctl.DB.Scopes(model.ScopeByTag(sc.Tag()))).Find(&userRows).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
	}

	merged := scope.MergeOverride(userRows, globalRows, func(m model.MasterItemModel) string {
		return m.MasterItemCode
	})

	// sort whitelist: code/name/price
	sortBy := strings.ToLower(strings.TrimSpace(c.Query("sort_by", "code")))
	desc := strings.EqualFold(c.Query("order", "asc"), "desc")
	switch sortBy {
	case "name":
		sort.SliceStable(merged, func(i, j int) bool { return merged[i].MasterItemName < merged[j].MasterItemName })
	case "price":
		sort.SliceStable(merged, func(i, j int) bool { return merged[i].MasterItemPrice < merged[j].MasterItemPrice })
	case "code":
		sort.SliceStable(merged, func(i, j int) bool { return merged[i].MasterItemCode < merged[j].MasterItemCode })
	default:
		return helper.JsonError(c, fiber.StatusBadRequest, "sort_by harus code/name/price")
	}
	if desc {
		for i, j := 0, len(merged)-1; i < j; i, j = i+1, j-1 {
			merged[i], merged[j] = merged[j], merged[i]
		}
	}

	total := int64(len(merged))
	lo := p.Offset
	if lo > len(merged) {
		lo = len(merged)
	}
	hi := lo + p.Limit
	if hi > len(merged) {
		hi = len(merged)
	}

	return helper.JsonList(c, "ok",
		dto.FromModelMasterItems(merged[lo:hi]),
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage),
	)
}

/* ================= Create ================= */

func (ctl *MasterItemController) Create(c *fiber.Ctx) error {
	var req dto.CreateMasterItemRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(req.MasterItemName) == "" || strings.TrimSpace(req.MasterItemUnit) == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "name dan unit wajib diisi")
	}

	sc := callerScope(c)

	// LABOR wajib kode verbatim; tipe lain boleh autogen
	var code string
	if req.MasterItemCode != nil && strings.TrimSpace(*req.MasterItemCode) != "" {
		code = strings.TrimSpace(*req.MasterItemCode)
	} else {
		gen, ok := service.GenerateCode(req.MasterItemType)
		if !ok {
			return helper.JsonError(c, fiber.StatusBadRequest, "Kode wajib diisi untuk item LABOR")
		}
		code = gen
	}

	price, err := service.ResolveCreatePrice(req.MasterItemType, req.MasterItemPrice, req.MasterItemHourlyRate, req.MasterItemDailyRate)
	if err != nil {
		return err
	}

	m := model.MasterItemModel{
		MasterItemScope:      sc.Tag(),
		MasterItemCode:       code,
		MasterItemName:       req.MasterItemName,
		MasterItemUnit:       req.MasterItemUnit,
		MasterItemType:       req.MasterItemType,
		MasterItemPrice:      price,
		MasterItemHourlyRate: req.MasterItemHourlyRate,
		MasterItemDailyRate:  req.MasterItemDailyRate,
		MasterItemNotes:      req.MasterItemNotes,
	}
	if err := ctl.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		if ahspService.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Kode master sudah dipakai pada scope ini")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonCreated(c, "Master item dibuat", dto.FromModelMasterItem(&m))
}

/* ================= Patch ================= */

// PATCH /master-items/:id?recompute=true — field diterapkan selektif;
// recompute=true memicu propagator setelah update commit.
func (ctl *MasterItemController) Patch(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "master_item_id invalid")
	}

	var m model.MasterItemModel
	if err := ctl.DB.First(&m, "master_item_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Master item tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var req dto.PatchMasterItemRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	if req.MasterItemName.Set {
		if req.MasterItemName.Null || strings.TrimSpace(*req.MasterItemName.Value) == "" {
			return helper.JsonError(c, fiber.StatusBadRequest, "name tidak boleh kosong")
		}
		m.MasterItemName = *req.MasterItemName.Value
	}
	if req.MasterItemUnit.Set {
		if req.MasterItemUnit.Null || strings.TrimSpace(*req.MasterItemUnit.Value) == "" {
			return helper.JsonError(c, fiber.StatusBadRequest, "unit tidak boleh kosong")
		}
		m.MasterItemUnit = *req.MasterItemUnit.Value
	}
	if req.MasterItemHourlyRate.Set {
		if req.MasterItemHourlyRate.Null {
			m.MasterItemHourlyRate = nil
		} else {
			m.MasterItemHourlyRate = req.MasterItemHourlyRate.Value
		}
	}
	if req.MasterItemDailyRate.Set {
		if req.MasterItemDailyRate.Null {
			m.MasterItemDailyRate = nil
		} else {
			m.MasterItemDailyRate = req.MasterItemDailyRate.Value
		}
	}
	if req.MasterItemNotes.Set {
		if req.MasterItemNotes.Null {
			m.MasterItemNotes = nil
		} else {
			m.MasterItemNotes = req.MasterItemNotes.Value
		}
	}

	// derivasi harga: price eksplisit menang; untuk LABOR, daily/hourly yang
	// dikirim tanpa price eksplisit ikut menurunkan harga
	var explicitPrice *float64
	if req.MasterItemPrice.Set && !req.MasterItemPrice.Null {
		explicitPrice = req.MasterItemPrice.Value
	}
	var sentHourly, sentDaily *float64
	if req.MasterItemHourlyRate.Set && !req.MasterItemHourlyRate.Null {
		sentHourly = req.MasterItemHourlyRate.Value
	}
	if req.MasterItemDailyRate.Set && !req.MasterItemDailyRate.Null {
		sentDaily = req.MasterItemDailyRate.Value
	}
	newPrice, apply, err := service.ResolveUpdatePrice(m.MasterItemType, explicitPrice, sentHourly, sentDaily)
	if err != nil {
		return err
	}
	if apply {
		m.MasterItemPrice = newPrice
	}

	if err := ctl.DB.WithContext(c.UserContext()).Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	resp := fiber.Map{"master_item": dto.FromModelMasterItem(&m)}
	if strings.EqualFold(c.Query("recompute"), "true") {
		report, err := ctl.Recompute.RecomputeForMasterItem(c.UserContext(), m.MasterItemID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
		resp["recompute"] = report
	}
	return helper.JsonOK(c, "Master item diperbarui", resp)
}

/* ================= Delete ================= */

// DELETE /master-items/:id — ditolak selama masih dirujuk komponen AHSP.
func (ctl *MasterItemController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "master_item_id invalid")
	}

	var refs int64
	if err := ctl.DB.Model(&ahspModel.AHSPComponentModel{}).
		Where("ahsp_component_master_item_id = ?", id).
		Count(&refs).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if refs > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Master item masih dirujuk komponen AHSP")
	}

	res := ctl.DB.WithContext(c.UserContext()).Delete(&model.MasterItemModel{}, "master_item_id = ?", id)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Master item tidak ditemukan")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
