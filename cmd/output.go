package cmd

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/fillmatrix/internal/completeness"
	"github.com/KaramelBytes/fillmatrix/internal/manifest"
	"github.com/KaramelBytes/fillmatrix/internal/render"
	"github.com/spf13/cobra"
)

// outputSpec describes where and how a matrix is emitted.
type outputSpec struct {
	format   string
	path     string
	sheet    string
	evaluate bool
	quiet    bool
}

// emitMatrix writes m either to a workbook or to stdout, returning the
// workbook path when one was written.
func emitMatrix(cmd *cobra.Command, m completeness.Matrix, o outputSpec) (string, error) {
	format := strings.ToLower(strings.TrimSpace(o.format))
	if format != "" && format != "xlsx" {
		return "", render.WriteTable(cmd.OutOrStdout(), m, format, o.evaluate)
	}
	c := config()
	path := render.OutputPath(o.path)
	err := render.WriteXLSX(path, m, render.XLSXOptions{
		Sheet:      o.sheet,
		FontSize:   c.FontSize,
		ColorScale: c.ColorScale,
		Evaluate:   o.evaluate,
	})
	if err != nil {
		return "", err
	}
	if !o.quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote matrix (%d rows x %d columns) to %s\n", len(m)-1, len(m[0])-1, path)
	}
	return path, nil
}

// saveManifest persists a run manifest next to the workbook.
func saveManifest(cmd *cobra.Command, mf *manifest.Manifest, quiet bool) error {
	if mf.Output == "" {
		fmt.Fprintln(cmd.ErrOrStderr(), "⚠ Warning: --manifest needs an xlsx output; skipping")
		return nil
	}
	path, err := mf.Save()
	if err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	logger.Debug("manifest written", "id", mf.ID, "path", path)
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote manifest to %s\n", path)
	}
	return nil
}
