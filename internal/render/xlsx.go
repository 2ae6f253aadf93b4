package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/fillmatrix/internal/completeness"
	"github.com/xuri/excelize/v2"
)

// XLSXOptions controls workbook formatting.
type XLSXOptions struct {
	Sheet      string
	FontSize   float64
	ColorScale bool
	// Evaluate writes computed percentages instead of live formulas.
	Evaluate bool
}

// OutputPath appends ".xlsx" when missing.
func OutputPath(name string) string {
	if !strings.HasSuffix(name, ".xlsx") {
		name += ".xlsx"
	}
	return name
}

// WriteXLSX writes m to path. Cells holding a formula are written as live
// formulas so the spreadsheet computes the percentages.
func WriteXLSX(path string, m completeness.Matrix, opt XLSXOptions) error {
	sheet := opt.Sheet
	if sheet == "" {
		sheet = "Sheet1"
	}
	f := excelize.NewFile()
	defer f.Close()
	if sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			return fmt.Errorf("name sheet: %w", err)
		}
	}

	for r, row := range m {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := writeCell(f, sheet, cell, v, r > 0 && c > 0, opt.Evaluate); err != nil {
				return fmt.Errorf("write %s: %w", cell, err)
			}
		}
	}

	if len(m) > 0 && len(m[0]) > 0 {
		// the range reaches one past the last row and column
		peak, err := excelize.CoordinatesToCellName(len(m[0])+1, len(m)+1)
		if err != nil {
			return err
		}
		if opt.FontSize > 0 {
			style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Size: opt.FontSize}})
			if err != nil {
				return fmt.Errorf("new style: %w", err)
			}
			last, _ := excelize.CoordinatesToCellName(len(m[0]), len(m))
			if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
				return fmt.Errorf("set style: %w", err)
			}
		}
		if opt.ColorScale {
			err := f.SetConditionalFormat(sheet, "A1:"+peak, []excelize.ConditionalFormatOptions{{
				Type:     "3_color_scale",
				Criteria: "=",
				MinType:  "min",
				MidType:  "percentile",
				MaxType:  "max",
				MinColor: "#F8696B",
				MidColor: "#FFEB84",
				MaxColor: "#63BE7B",
			}})
			if err != nil {
				return fmt.Errorf("color scale: %w", err)
			}
		}
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir output dir: %w", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save xlsx: %w", err)
	}
	return nil
}

func writeCell(f *excelize.File, sheet, cell, v string, body, evaluate bool) error {
	if !body || !strings.HasPrefix(v, "=") {
		return f.SetCellValue(sheet, cell, v)
	}
	if evaluate {
		fm, err := completeness.ParseFormula(v)
		if err != nil {
			return err
		}
		return f.SetCellValue(sheet, cell, fm.Percent())
	}
	return f.SetCellFormula(sheet, cell, strings.TrimPrefix(v, "="))
}
