package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/KaramelBytes/fillmatrix/internal/completeness"
)

// csvReader reads delimited text. A CSV file holds a single table, so the
// sheet name is ignored.
type csvReader struct{}

func (csvReader) CanRead(filename string) bool {
	name := strings.ToLower(filename)
	return strings.HasSuffix(name, ".csv") || strings.HasSuffix(name, ".tsv")
}

func (csvReader) Read(ctx context.Context, path, _ string) (completeness.Source, error) {
	if err := ctx.Err(); err != nil {
		return completeness.Source{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return completeness.Source{}, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.Comma = sniffDelimiter(path)

	src := completeness.Source{Name: EntityName(path)}
	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return src, nil
		}
		return completeness.Source{}, fmt.Errorf("read header: %w", err)
	}
	src.Header = header
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return completeness.Source{}, fmt.Errorf("read row %d: %w", len(src.Rows)+1, err)
		}
		// ragged records are passed through; the counter rejects them
		row := make([]completeness.Value, len(rec))
		for j, cell := range rec {
			row[j] = textCell(cell)
		}
		src.Rows = append(src.Rows, row)
	}
	return src, nil
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}

// textCell infers a number from delimited text so "0" behaves like a
// numeric zero from a workbook.
func textCell(s string) completeness.Value {
	if s == "" {
		return completeness.Value{}
	}
	if x, ok := parseNumber(s); ok {
		return completeness.NumberValue(x)
	}
	return completeness.TextValue(s)
}

// parseNumber accepts finite decimal numbers only; "NaN" and "Inf" stay text.
func parseNumber(s string) (float64, bool) {
	x, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, false
	}
	return x, true
}
