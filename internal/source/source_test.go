package source

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/fillmatrix/internal/completeness"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// newTestLogger returns a logger that writes to t.Log.
func newTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

type testWriter struct{ t testing.TB }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// writeWorkbook saves rows to a new workbook at path on the named sheet.
func writeWorkbook(t *testing.T, path, sheet string, rows [][]any) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	if sheet != "Sheet1" {
		require.NoError(t, f.SetSheetName("Sheet1", sheet))
	}
	for r, row := range rows {
		for c, v := range row {
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, v))
		}
	}
	require.NoError(t, f.SaveAs(path))
}

func TestXLSXReaderTypedCells(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "people.xlsx")
	writeWorkbook(t, p, "Sheet1", [][]any{
		{"Name", "Age", "Member"},
		{"Ann", 31, true},
		{"Bob", 0, false},
		{"Cy", nil, nil},
	})

	src, err := Open(context.Background(), p, "Sheet1")
	require.NoError(t, err)
	assert.Equal(t, "people", src.Name)
	assert.Equal(t, []string{"Name", "Age", "Member"}, src.Header)
	require.Len(t, src.Rows, 3)
	for _, row := range src.Rows {
		require.Len(t, row, 3, "rows are padded to header width")
	}
	assert.Equal(t, completeness.TextValue("Ann"), src.Rows[0][0])
	assert.Equal(t, completeness.NumberValue(0), src.Rows[1][1])
	assert.Equal(t, completeness.BoolValue(false), src.Rows[1][2])
	assert.Equal(t, completeness.Absent, src.Rows[2][1].Kind)

	rep, err := completeness.Count(src)
	require.NoError(t, err)
	age, _ := rep.Lookup("Age")
	assert.Equal(t, "=2/3*100", age.String())
}

func TestXLSXReaderMissingSheet(t *testing.T) {
	p := filepath.Join(t.TempDir(), "a.xlsx")
	writeWorkbook(t, p, "Data", [][]any{{"A"}, {"x"}})

	_, err := Open(context.Background(), p, "Sheet1")
	var se *completeness.SheetNotFoundError
	require.ErrorAs(t, err, &se)
	assert.ErrorIs(t, err, completeness.ErrSheetNotFound)
	assert.Equal(t, []string{"Data"}, se.Available)
}

func TestXLSXReaderDataBeyondHeader(t *testing.T) {
	p := filepath.Join(t.TempDir(), "wide.xlsx")
	writeWorkbook(t, p, "Sheet1", [][]any{
		{"A"},
		{"a", "stray"},
	})
	src, err := Open(context.Background(), p, "Sheet1")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", ""}, src.Header)
	rep, err := completeness.Count(src)
	require.NoError(t, err)
	require.Len(t, rep.Entries, 1)
}

func TestCSVReader(t *testing.T) {
	p := filepath.Join(t.TempDir(), "scores.csv")
	require.NoError(t, os.WriteFile(p, []byte("Team,Score\nX,5\nX,\nY,0\n"), 0o644))

	src, err := Open(context.Background(), p, "ignored")
	require.NoError(t, err)
	assert.Equal(t, "scores", src.Name)
	require.Len(t, src.Rows, 3)
	assert.Equal(t, completeness.NumberValue(0), src.Rows[2][1])
	assert.Equal(t, completeness.Absent, src.Rows[1][1].Kind)

	m, _, err := completeness.GroupedMatrix(src, "Team")
	require.NoError(t, err)
	assert.Equal(t, []string{"X", "=1/2*100"}, m[1])
}

func TestCSVNonFiniteStaysText(t *testing.T) {
	assert.Equal(t, completeness.TextValue("NaN"), textCell("NaN"))
	assert.Equal(t, completeness.NumberValue(1.5), textCell(" 1.5"))
}

func TestOpenUnsupported(t *testing.T) {
	_, err := Open(context.Background(), "notes.txt", "Sheet1")
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.xlsx", "a.csv", "notes.txt", "~$b.xlsx"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.xlsx"), 0o755))

	got, err := Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.csv"), filepath.Join(dir, "b.xlsx")}, got)
}

func TestLoaderKeepsInputOrder(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"c", "a", "b", "d"} {
		p := filepath.Join(dir, name+".csv")
		require.NoError(t, os.WriteFile(p, []byte("Col_"+name+"\n1\n"), 0o644))
		paths = append(paths, p)
	}
	calls := 0
	l := &Loader{Sheet: "Sheet1", Workers: 3, Logger: newTestLogger(t), Progress: func(done, total int, _ string) {
		calls++
		assert.Equal(t, 4, total)
	}}
	srcs, err := l.Load(context.Background(), paths)
	require.NoError(t, err)
	require.Len(t, srcs, 4)
	for i, name := range []string{"c", "a", "b", "d"} {
		assert.Equal(t, name, srcs[i].Name)
		assert.Equal(t, []string{"Col_" + name}, srcs[i].Header)
	}
	assert.Equal(t, 4, calls)
}

func TestLoaderFailsFast(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.csv")
	require.NoError(t, os.WriteFile(good, []byte("A\n1\n"), 0o644))
	l := &Loader{Workers: 2}
	_, err := l.Load(context.Background(), []string{good, filepath.Join(dir, "missing.csv")})
	require.Error(t, err)
}

func TestLoaderRejectsSharedRowLabel(t *testing.T) {
	dir := t.TempDir()
	writeWorkbook(t, filepath.Join(dir, "a.xlsx"), "Sheet1", [][]any{
		{"Name", "Age"},
		{"Ann", 31},
	})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.csv"), []byte("Name,Age\n,\n,\n"), 0o644))

	paths, err := Discover(dir)
	require.NoError(t, err)
	require.Len(t, paths, 2)

	l := &Loader{Sheet: "Sheet1", Workers: 2, Logger: newTestLogger(t)}
	_, err = l.Load(context.Background(), paths)
	var fe *completeness.FormatError
	require.ErrorAs(t, err, &fe)
	assert.ErrorIs(t, err, completeness.ErrFormat)
	assert.Contains(t, err.Error(), filepath.Join(dir, "a.csv"))
	assert.Contains(t, err.Error(), filepath.Join(dir, "a.xlsx"))
}
