// file: internals/features/pricing/importer/service/apply.go
package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	hspModel "ahspku_backend/internals/features/pricing/hsp/model"
	importModel "ahspku_backend/internals/features/pricing/importer/model"
	"ahspku_backend/internals/features/pricing/scope"
)

// batas waktu transaksi per kategori: cukup untuk ratusan baris, tetap
// membatasi lama lock ter-hold pada kasus terburuk
const categoryTxBudget = 30 * time.Second

/* =========================================================
   Semantik harga import (kernel keputusan murni)
   ========================================================= */

// ShouldOverwritePrice: harga item EXISTING hanya ditimpa bila pakai harga
// file DAN (lock harga existing off ATAU harga existing persis 0).
func ShouldOverwritePrice(useHargaFile, lockExistingPrice bool, existingPrice float64) bool {
	if !useHargaFile {
		return false
	}
	if !lockExistingPrice {
		return true
	}
	return existingPrice == 0
}

// NewItemPrice: item BARU dihargai dari file hanya bila useHargaFile, selain
// itu 0 berapapun kolom harga di file.
func NewItemPrice(useHargaFile bool, filePrice float64) float64 {
	if useHargaFile {
		return filePrice
	}
	return 0
}

/* =========================================================
   Apply: upsert scoped per kategori
   ========================================================= */

type ImportItem struct {
	Kode      string
	Deskripsi string
	Satuan    string
	Harga     float64
}

// ImportGroup: satu marker kategori beserta baris item di bawahnya.
type ImportGroup struct {
	Category string
	Items    []ImportItem
}

type ApplyOptions struct {
	UseHargaFile      bool
	LockExistingPrice bool
}

type ApplyResult struct {
	Created   int
	Updated   int
	Failed    int
	RowErrors []importModel.ImportRowError
}

type ImportService struct {
	DB *gorm.DB
}

func NewImportService(db *gorm.DB) *ImportService {
	return &ImportService{DB: db}
}

// Apply memproses grup kategori SECARA INDEPENDEN: tiap kategori satu
// transaksi dengan budget waktu sendiri; kegagalan satu kategori dicatat dan
// tidak menggagalkan saudaranya.
func (s *ImportService) Apply(ctx context.Context, sc scope.Scope, groups []ImportGroup, opt ApplyOptions) ApplyResult {
	var res ApplyResult

	for _, g := range groups {
		groupRes, err := s.applyGroup(ctx, sc, g, opt)
		if err != nil {
			// rollback membuang hitungan parsial grup ini; audit hanya
			// mencatat seluruh baris grup sebagai gagal
			log.Printf("[ERROR] import kategori %q gagal: %v", g.Category, err)
			res.Failed += len(g.Items)
			res.RowErrors = append(res.RowErrors, importModel.ImportRowError{
				Category: g.Category,
				Error:    err.Error(),
			})
			continue
		}
		res.Created += groupRes.Created
		res.Updated += groupRes.Updated
		res.Failed += groupRes.Failed
		res.RowErrors = append(res.RowErrors, groupRes.RowErrors...)
	}
	return res
}

func (s *ImportService) applyGroup(ctx context.Context, sc scope.Scope, g ImportGroup, opt ApplyOptions) (ApplyResult, error) {
	var res ApplyResult

	name := strings.TrimSpace(g.Category)
	if name == "" {
		return res, errors.New("nama kategori kosong")
	}

	txCtx, cancel := context.WithTimeout(ctx, categoryTxBudget)
	defer cancel()

	err := s.DB.WithContext(txCtx).Transaction(func(tx *gorm.DB) error {
		category, err := upsertCategory(tx, sc, name)
		if err != nil {
			return err
		}

		for _, it := range g.Items {
			kode := strings.TrimSpace(it.Kode)
			if kode == "" {
				res.Failed++
				res.RowErrors = append(res.RowErrors, importModel.ImportRowError{
					Category: name, Error: "kode kosong",
				})
				continue
			}

			var existing hspModel.HSPItemModel
			err := tx.Where("hsp_item_scope = ? AND hsp_item_kode = ?", sc.Tag(), kode).
				First(&existing).Error
			switch {
			case err == nil:
				// existing: field deskriptif selalu diperbarui; harga
				// mengikuti aturan lock
				existing.HSPItemDeskripsi = it.Deskripsi
				existing.HSPItemSatuan = it.Satuan
				existing.HSPItemCategoryID = category.HSPCategoryID
				if ShouldOverwritePrice(opt.UseHargaFile, opt.LockExistingPrice, existing.HSPItemHarga) {
					existing.HSPItemHarga = it.Harga
				}
				if er := tx.Save(&existing).Error; er != nil {
					return er
				}
				res.Updated++

			case errors.Is(err, gorm.ErrRecordNotFound):
				item := hspModel.HSPItemModel{
					HSPItemScope:      sc.Tag(),
					HSPItemKode:       kode,
					HSPItemDeskripsi:  it.Deskripsi,
					HSPItemSatuan:     it.Satuan,
					HSPItemHarga:      NewItemPrice(opt.UseHargaFile, it.Harga),
					HSPItemCategoryID: category.HSPCategoryID,
				}
				if er := tx.Create(&item).Error; er != nil {
					return er
				}
				res.Created++

			default:
				return err
			}
		}
		return nil
	})
	if err != nil {
		return ApplyResult{}, err
	}
	return res, nil
}

func upsertCategory(tx *gorm.DB, sc scope.Scope, name string) (*hspModel.HSPCategoryModel, error) {
	var category hspModel.HSPCategoryModel
	err := tx.Where("hsp_category_scope = ? AND hsp_category_name = ?", sc.Tag(), name).
		First(&category).Error
	if err == nil {
		return &category, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	category = hspModel.HSPCategoryModel{
		HSPCategoryScope: sc.Tag(),
		HSPCategoryName:  name,
	}
	if er := tx.Create(&category).Error; er != nil {
		return nil, er
	}
	return &category, nil
}
