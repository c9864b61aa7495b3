// Package export menghasilkan file CSV/XLSX dari dataset yang sudah
// difilter dan diurutkan oleh tableview. Tidak ada paging di sini:
// export selalu memuat seluruh dataset hasil filter.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// CSV menulis dataset sebagai RFC 4180 CSV. Field di-quote oleh
// encoding/csv, termasuk penggandaan kutip ganda di dalam nilai.
func CSV(w io.Writer, headers []string, rows [][]string) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(headers); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// XLSX menulis dataset sebagai workbook Excel satu sheet.
func XLSX(w io.Writer, sheet string, headers []string, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	if sheet == "" {
		sheet = "Export"
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	if err := writeRow(f, sheet, 1, headers); err != nil {
		return err
	}
	for i, row := range rows {
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}

	_, err := f.WriteTo(w)
	return err
}

func writeRow(f *excelize.File, sheet string, rowIdx int, values []string) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, rowIdx)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}
