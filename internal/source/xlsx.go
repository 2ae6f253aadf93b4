package source

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/fillmatrix/internal/completeness"
	"github.com/xuri/excelize/v2"
)

type xlsxReader struct{}

func (xlsxReader) CanRead(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".xlsx")
}

// Read loads the named sheet. Rows are padded to the widest row so every
// data row lines up with the header; unnamed header cells stay "".
func (xlsxReader) Read(ctx context.Context, path, sheet string) (completeness.Source, error) {
	if err := ctx.Err(); err != nil {
		return completeness.Source{}, err
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return completeness.Source{}, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	if idx, err := f.GetSheetIndex(sheet); err != nil || idx == -1 {
		return completeness.Source{}, &completeness.SheetNotFoundError{
			Path:      filepath.Base(path),
			Sheet:     sheet,
			Available: f.GetSheetList(),
		}
	}
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return completeness.Source{}, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	src := completeness.Source{Name: EntityName(path)}
	if len(rows) == 0 {
		return src, nil
	}
	width := 0
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}
	src.Header = make([]string, width)
	copy(src.Header, rows[0])

	for r := 1; r < len(rows); r++ {
		if r%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return completeness.Source{}, err
			}
		}
		row := make([]completeness.Value, width)
		for c, raw := range rows[r] {
			if raw == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return completeness.Source{}, fmt.Errorf("cell ref: %w", err)
			}
			typ, err := f.GetCellType(sheet, cell)
			if err != nil {
				typ = excelize.CellTypeUnset
			}
			row[c] = cellValue(raw, typ)
		}
		src.Rows = append(src.Rows, row)
	}
	return src, nil
}

// cellValue maps a raw cell string and its stored type onto a Value.
// Untyped cells are numbers when they parse as one.
func cellValue(raw string, typ excelize.CellType) completeness.Value {
	switch typ {
	case excelize.CellTypeBool:
		return completeness.BoolValue(raw == "1" || strings.EqualFold(raw, "true"))
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString,
		excelize.CellTypeFormula, excelize.CellTypeError, excelize.CellTypeDate:
		return completeness.TextValue(raw)
	}
	if x, ok := parseNumber(raw); ok {
		return completeness.NumberValue(x)
	}
	return completeness.TextValue(raw)
}
