// file: internals/features/pricing/ahsp/controller/ahsp_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "ahspku_backend/internals/features/pricing/ahsp/dto"
	ahspModel "ahspku_backend/internals/features/pricing/ahsp/model"
	service "ahspku_backend/internals/features/pricing/ahsp/service"
	hspModel "ahspku_backend/internals/features/pricing/hsp/model"
	masterModel "ahspku_backend/internals/features/pricing/master/model"
	"ahspku_backend/internals/features/pricing/scope"
	helper "ahspku_backend/internals/helpers"
)

type AHSPController struct {
	DB          *gorm.DB
	Validator   *validator.Validate
	Materialize *service.MaterializeService
	Recompute   *service.RecomputeService
}

func NewAHSPController(db *gorm.DB) *AHSPController {
	return &AHSPController{
		DB:          db,
		Validator:   validator.New(),
		Materialize: service.NewMaterializeService(db),
		Recompute:   service.NewRecomputeService(db),
	}
}

func callerScope(c *fiber.Ctx) scope.Scope {
	return scope.Of(helper.GetOptionalUserID(c))
}

/* ================= Read: pohon AHSP ================= */

// GET /ahsp/:kode?mode=live|snapshot — pohon item+resep+komponen lengkap,
// bucket A/B/C/X terurut, harga efektif sesuai mode resolusi yang diminta.
// Inilah kontrak read yang dikonsumsi kolaborator export.
func (ctl *AHSPController) GetByKode(c *fiber.Ctx) error {
	kode := strings.TrimSpace(c.Params("kode"))
	sc := callerScope(c)

	mode := service.PriceMode(strings.ToLower(c.Query("mode", string(service.PriceModeLive))))
	if !mode.Valid() {
		return helper.JsonError(c, fiber.StatusBadRequest, "mode harus live atau snapshot")
	}

	// baris user diutamakan, fallback GLOBAL
	tree, err := service.LoadTree(ctl.DB.WithContext(c.UserContext()), sc.Tag(), kode)
	if err != nil {
		var fe *fiber.Error
		if !sc.IsGlobal() && errors.As(err, &fe) && fe.Code == fiber.StatusNotFound {
			tree, err = service.LoadTree(ctl.DB.WithContext(c.UserContext()), scope.GlobalTag, kode)
		}
		if err != nil {
			return err
		}
	}
	if tree.Item.HSPItemIsDeleted {
		return helper.JsonError(c, fiber.StatusNotFound, "Item HSP tidak ditemukan")
	}

	livePrices, err := liveMasterPrices(ctl.DB.WithContext(c.UserContext()), tree.Components)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "ok", dto.FromTree(&tree.Item, tree.Recipe, tree.Components, livePrices, mode))
}

func liveMasterPrices(db *gorm.DB, components []ahspModel.AHSPComponentModel) (map[string]float64, error) {
	prices := make(map[string]float64, len(components))
	if len(components) == 0 {
		return prices, nil
	}
	ids := make([]uuid.UUID, 0, len(components))
	for i := range components {
		ids = append(ids, components[i].AHSPComponentMasterItemID)
	}
	var masters []masterModel.MasterItemModel
	if err := db.Where("master_item_id IN ?", ids).Find(&masters).Error; err != nil {
		return nil, err
	}
	for i := range masters {
		prices[masters[i].MasterItemID.String()] = masters[i].MasterItemPrice
	}
	return prices, nil
}

/* ================= Mutasi by kode (copy-on-write) ================= */

// PUT /ahsp/:kode/overhead
func (ctl *AHSPController) SetOverheadByKode(c *fiber.Ctx) error {
	kode := strings.TrimSpace(c.Params("kode"))

	var req dto.SetOverheadRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	recipe, err := ctl.Materialize.SetOverheadByKode(c.UserContext(), callerScope(c), kode, req.OverheadPercent)
	if err != nil {
		return err
	}
	if _, err := ctl.Recompute.RecomputeRecipe(c.UserContext(), recipe.AHSPRecipeID); err != nil {
		return err
	}
	return helper.JsonOK(c, "Overhead diperbarui", fiber.Map{
		"ahsp_recipe_id":               recipe.AHSPRecipeID.String(),
		"ahsp_recipe_overhead_percent": req.OverheadPercent,
	})
}

// POST /ahsp/:kode/components
func (ctl *AHSPController) AddComponentByKode(c *fiber.Ctx) error {
	kode := strings.TrimSpace(c.Params("kode"))

	var req dto.AddComponentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	comp, err := ctl.Materialize.AddComponentByKode(c.UserContext(), callerScope(c), kode, service.AddComponentInput{
		Group:         req.AHSPComponentGroup,
		MasterItemID:  req.AHSPComponentMasterItemID,
		Coefficient:   req.AHSPComponentCoefficient,
		PriceOverride: req.AHSPComponentPriceOverride,
		Notes:         req.AHSPComponentNotes,
	})
	if err != nil {
		return err
	}
	resp := dto.FromModelComponent(comp)
	return helper.JsonCreated(c, "Komponen ditambahkan", resp)
}

/* ================= Mutasi komponen by id ================= */

// PATCH /ahsp/components/:id — langsung pada scope milik komponen; tidak
// memicu recompute total resep (panggil endpoint recompute eksplisit).
func (ctl *AHSPController) PatchComponent(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ahsp_component_id invalid")
	}

	var req dto.PatchComponentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	in := service.UpdateComponentInput{}
	if req.AHSPComponentCoefficient.Set && !req.AHSPComponentCoefficient.Null {
		in.Coefficient = req.AHSPComponentCoefficient.Value
	}
	if req.AHSPComponentPriceOverride.Set {
		if req.AHSPComponentPriceOverride.Null {
			in.ClearOverride = true // override null = kembali ikut harga master
		} else {
			in.PriceOverride = req.AHSPComponentPriceOverride.Value
		}
	}
	if req.AHSPComponentOrder.Set && !req.AHSPComponentOrder.Null {
		in.Order = req.AHSPComponentOrder.Value
	}
	if req.AHSPComponentNotes.Set && !req.AHSPComponentNotes.Null {
		in.Notes = req.AHSPComponentNotes.Value
	}

	comp, err := ctl.Materialize.UpdateComponent(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Komponen diperbarui", dto.FromModelComponent(comp))
}

// DELETE /ahsp/components/:id
func (ctl *AHSPController) DeleteComponent(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ahsp_component_id invalid")
	}
	if err := ctl.Materialize.DeleteComponent(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

/* ================= Recompute eksplisit ================= */

// POST /ahsp/:kode/recompute — recompute satu resep (scope caller, fallback
// GLOBAL) lalu kembalikan total segar.
func (ctl *AHSPController) RecomputeByKode(c *fiber.Ctx) error {
	kode := strings.TrimSpace(c.Params("kode"))
	sc := callerScope(c)

	var item hspModel.HSPItemModel
	err := ctl.DB.Where("hsp_item_scope = ? AND hsp_item_kode = ?", sc.Tag(), kode).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) && !sc.IsGlobal() {
		err = ctl.DB.Where("hsp_item_scope = ? AND hsp_item_kode = ?", scope.GlobalTag, kode).First(&item).Error
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Item HSP tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	totals, err := ctl.Recompute.RecomputeItem(c.UserContext(), item.HSPItemID)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Recompute selesai", totals)
}

// POST /ahsp/recompute/master/:id — fan-out semua resep yang menyentuh satu
// master item; kegagalan per resep terisolasi di report.
func (ctl *AHSPController) RecomputeForMasterItem(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "master_item_id invalid")
	}
	report, err := ctl.Recompute.RecomputeForMasterItem(c.UserContext(), id)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "Recompute selesai", report)
}
