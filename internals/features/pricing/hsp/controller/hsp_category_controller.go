// file: internals/features/pricing/hsp/controller/hsp_category_controller.go
package controller

import (
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

type HSPCategoryController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewHSPCategoryController(db *gorm.DB) *HSPCategoryController {
	return &HSPCategoryController{DB: db, Validator: validator.New()}
}

// GET /hsp-categories — merge override user di atas GLOBAL, keyed by name.
func (ctl *HSPCategoryController) List(c *fiber.Ctx) error {
	sc := scope.Of(helper.GetOptionalUserID(c))

	var globalRows []model.HSPCategoryModel
	if err := ctl.DB.Scopes(model.CategoryScopeByTag(scope.GlobalTag)).
		Order("hsp_category_name ASC").
		Find(&globalRows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var userRows []model.HSPCategoryModel
	if !sc.IsGlobal() {
		if err := ctl.DB.Scopes(model.CategoryScopeByTag(sc.Tag())).
			Find(&userRows).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
	}

	merged := scope.MergeOverride(userRows, globalRows, func(m model.HSPCategoryModel) string {
		return m.HSPCategoryName
	})
	return helper.JsonOK(c, "ok", dto.FromModelHSPCategories(merged))
}

// POST /hsp-categories
func (ctl *HSPCategoryController) Create(c *fiber.Ctx) error {
	var req dto.CreateHSPCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	name := strings.TrimSpace(req.HSPCategoryName)
	if name == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Nama kategori wajib diisi")
	}

	sc := scope.Of(helper.GetOptionalUserID(c))
	m := model.HSPCategoryModel{
		HSPCategoryScope: sc.Tag(),
		HSPCategoryName:  name,
	}
	if err := ctl.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		if ahspService.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Nama kategori sudah dipakai pada scope ini")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "Kategori dibuat", dto.FromModelHSPCategory(&m))
}
