// file: internals/features/pricing/importer/controller/import_controller.go
package controller

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	importModel "ahspku_backend/internals/features/pricing/importer/model"
	service "ahspku_backend/internals/features/pricing/importer/service"
	"ahspku_backend/internals/features/pricing/scope"
	helper "ahspku_backend/internals/helpers"
)

type ImportController struct {
	DB      *gorm.DB
	Service *service.ImportService
}

func NewImportController(db *gorm.DB) *ImportController {
	return &ImportController{DB: db, Service: service.NewImportService(db)}
}

// POST /hsp-items/import — multipart "file" (xlsx) + flag
// ?use_harga_file=true|false & ?lock_existing_price=true|false.
// Hasil per baris dicatat di import_sessions sebagai jejak audit.
func (ctl *ImportController) ImportXLSX(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "File xlsx wajib dilampirkan (field: file)")
	}

	useHargaFile := strings.EqualFold(c.Query("use_harga_file"), "true")
	lockExisting := strings.EqualFold(c.Query("lock_existing_price"), "true")

	src, err := fh.Open()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	defer src.Close()

	groups, sheets, err := service.ParseXLSX(src)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if len(groups) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "File tidak berisi baris import")
	}

	sc := scope.Of(helper.GetOptionalUserID(c))
	res := ctl.Service.Apply(c.UserContext(), sc, groups, service.ApplyOptions{
		UseHargaFile:      useHargaFile,
		LockExistingPrice: lockExisting,
	})

	session := importModel.ImportSessionModel{
		ImportSessionScope:             sc.Tag(),
		ImportSessionFilename:          fh.Filename,
		ImportSessionUseHargaFile:      useHargaFile,
		ImportSessionLockExistingPrice: lockExisting,
		ImportSessionSheets:            sheets,
		ImportSessionCreated:           res.Created,
		ImportSessionUpdated:           res.Updated,
		ImportSessionFailed:            res.Failed,
	}
	if err := session.SetRowErrors(res.RowErrors); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if err := ctl.DB.WithContext(c.UserContext()).Create(&session).Error; err != nil {
		// import sudah ter-apply; kegagalan mencatat sesi cukup di-log
		log.Printf("[ERROR] gagal mencatat import session: %v", err)
	}

	return helper.JsonOK(c, "Import selesai", session)
}

// GET /hsp-items/import/sessions — riwayat import pada scope caller.
func (ctl *ImportController) ListSessions(c *fiber.Ctx) error {
	sc := scope.Of(helper.GetOptionalUserID(c))
	p := helper.ResolvePaging(c, 20, 100)

	var total int64
	q := ctl.DB.Model(&importModel.ImportSessionModel{}).
		Where("import_session_scope = ?", sc.Tag())
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var sessions []importModel.ImportSessionModel
	if err := q.Order("import_session_created_at DESC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&sessions).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "ok", sessions, helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}
