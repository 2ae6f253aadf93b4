package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.SheetName != "Sheet1" {
		t.Errorf("sheet_name = %q, want Sheet1", c.SheetName)
	}
	if c.Threshold != -1 {
		t.Errorf("threshold = %v, want -1", c.Threshold)
	}
	if c.FontSize != 12 || !c.ColorScale {
		t.Errorf("unexpected formatting defaults: %+v", c)
	}
	if c.Workers != 4 {
		t.Errorf("workers = %d, want 4", c.Workers)
	}
}

func TestSaveThenLoad(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	path := filepath.Join(dir, "nested", "cfg.yaml")
	c := &Global{SheetName: "Data", Output: "out.xlsx", Threshold: 10, FontSize: 11, Workers: 2}
	if err := Save(c, path); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config not written: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.SheetName != "Data" || got.Threshold != 10 || got.Workers != 2 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if got.ColorScale {
		t.Fatalf("saved color_scale=false should override default")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("FILLMATRIX_SHEET_NAME", "FromEnv")
	c, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.SheetName != "FromEnv" {
		t.Fatalf("sheet_name = %q, want FromEnv", c.SheetName)
	}
}
