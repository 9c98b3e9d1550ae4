// Package export writes booking lists as spreadsheets.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/gorags/sewa-lapangan/internal/domain"
	"github.com/xuri/excelize/v2"
)

const SheetName = "Sewa"

var headers = []string{"ID", "Nama", "Tanggal", "Jam Masuk", "Jam Keluar", "Nomor Telepon"}

// WriteBookings writes one header row and one row per booking, in slice
// order, to w as an xlsx workbook.
func WriteBookings(w io.Writer, bookings []domain.Sewa, generatedAt time.Time) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("error renaming sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("error creating style: %w", err)
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(SheetName, cell, h)
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	f.SetCellStyle(SheetName, "A1", last, headerStyle)

	for i, b := range bookings {
		row := i + 2
		values := []any{b.ID, b.Nama, b.TanggalString(), b.JamMasuk, b.JamKeluar, b.NomorTelepon}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(SheetName, cell, v)
		}
	}

	f.SetColWidth(SheetName, "B", "B", 24)
	f.SetColWidth(SheetName, "C", "F", 16)
	f.SetDocProps(&excelize.DocProperties{
		Title:   "Sewa Lapangan",
		Created: generatedAt.UTC().Format(time.RFC3339),
	})

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("error writing workbook: %w", err)
	}
	return nil
}
