package completeness

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrFormat marks malformed input: bad formula strings or ragged rows.
	ErrFormat = errors.New("input format error")
	// ErrSheetNotFound marks a configured sheet missing from a workbook.
	ErrSheetNotFound = errors.New("sheet not found")
	// ErrKeyNotFound marks a grouping column missing from a header.
	ErrKeyNotFound = errors.New("key column not found")
)

// FormatError describes malformed input.
type FormatError struct {
	Source string
	Row    int // 1-based data row, 0 when not row-specific
	Msg    string
}

func (e *FormatError) Error() string {
	switch {
	case e.Source != "" && e.Row > 0:
		return fmt.Sprintf("%s: row %d: %s", e.Source, e.Row, e.Msg)
	case e.Source != "":
		return fmt.Sprintf("%s: %s", e.Source, e.Msg)
	default:
		return e.Msg
	}
}

func (e *FormatError) Unwrap() error { return ErrFormat }

// SheetNotFoundError indicates the requested sheet does not exist in a workbook.
type SheetNotFoundError struct {
	Path      string
	Sheet     string
	Available []string
}

func (e *SheetNotFoundError) Error() string {
	return fmt.Sprintf("sheet '%s' not found in workbook '%s'. Available sheets: %s",
		e.Sheet, e.Path, strings.Join(e.Available, ", "))
}

func (e *SheetNotFoundError) Unwrap() error { return ErrSheetNotFound }

// KeyNotFoundError indicates the grouping column is absent from a source header.
type KeyNotFoundError struct {
	Source string
	Key    string
}

func (e *KeyNotFoundError) Error() string {
	return fmt.Sprintf("column '%s' not found in %s", e.Key, e.Source)
}

func (e *KeyNotFoundError) Unwrap() error { return ErrKeyNotFound }
