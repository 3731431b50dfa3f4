// file: internals/features/pricing/importer/service/xlsx_parser.go
package service

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

/* =========================================================
   Parser xlsx → grup kategori/item
   ========================================================= */

// Layout sheet yang diterima:
//
//	kolom A = kode, B = deskripsi, C = satuan, D = harga
//
// Baris yang hanya terisi kolom A (B/C/D kosong) adalah marker kategori;
// baris item di bawahnya milik kategori tersebut sampai marker berikutnya.
// Baris sebelum marker pertama dimasukkan ke kategori "UMUM".
func ParseXLSX(r io.Reader) (groups []ImportGroup, sheets []string, err error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("buka xlsx: %w", err)
	}
	defer f.Close()

	for _, sheet := range f.GetSheetList() {
		rows, er := f.GetRows(sheet)
		if er != nil {
			return nil, nil, fmt.Errorf("baca sheet %q: %w", sheet, er)
		}
		sheets = append(sheets, sheet)
		groups = appendSheetRows(groups, rows)
	}
	return groups, sheets, nil
}

func appendSheetRows(groups []ImportGroup, rows [][]string) []ImportGroup {
	current := -1
	for _, row := range rows {
		kode := cell(row, 0)
		deskripsi := cell(row, 1)
		satuan := cell(row, 2)
		hargaRaw := cell(row, 3)

		if kode == "" && deskripsi == "" {
			continue // baris kosong
		}

		// marker kategori: hanya kolom A terisi
		if kode != "" && deskripsi == "" && satuan == "" && hargaRaw == "" {
			groups = append(groups, ImportGroup{Category: kode})
			current = len(groups) - 1
			continue
		}

		if current < 0 {
			groups = append(groups, ImportGroup{Category: "UMUM"})
			current = len(groups) - 1
		}
		groups[current].Items = append(groups[current].Items, ImportItem{
			Kode:      kode,
			Deskripsi: deskripsi,
			Satuan:    satuan,
			Harga:     parseHarga(hargaRaw),
		})
	}
	return groups
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// parseHarga: toleran terhadap pemisah ribuan gaya lokal ("1.234.567,89"
// maupun "1,234,567.89"); nilai tak terbaca dianggap 0.
func parseHarga(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if strings.Contains(s, ",") && strings.Contains(s, ".") {
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			// format lokal: titik ribuan, koma desimal
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	} else if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.ReplaceAll(s, ",", ".")
	} else if strings.Count(s, ".") > 1 {
		// titik murni sebagai pemisah ribuan: "1.234.567"
		s = strings.ReplaceAll(s, ".", "")
	} else {
		s = strings.ReplaceAll(s, ",", "")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
