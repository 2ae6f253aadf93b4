package cmd

import (
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/fillmatrix/internal/completeness"
	"github.com/KaramelBytes/fillmatrix/internal/manifest"
	"github.com/KaramelBytes/fillmatrix/internal/source"
	"github.com/spf13/cobra"
)

var (
	grColumn   string
	grSheet    string
	grOutput   string
	grFormat   string
	grEvaluate bool
	grManifest bool
	grQuiet    bool
)

var groupCmd = &cobra.Command{
	Use:   "group <file>",
	Short: "Build a completeness matrix with one row per value of a key column",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := config()
		path := args[0]
		if !source.Supported(path) {
			path += ".xlsx"
		}
		sheet := c.SheetName
		if cmd.Flags().Changed("sheet") {
			sheet = grSheet
		}
		output := grOutput
		if output == "" {
			base := strings.TrimSuffix(path, filepath.Ext(path))
			output = base + "_by_" + safeName(grColumn) + ".xlsx"
		}

		src, err := source.Open(cmd.Context(), path, sheet)
		if err != nil {
			return err
		}
		logger.Debug("grouped run", "path", path, "column", grColumn, "rows", len(src.Rows))

		m, reports, err := completeness.GroupedMatrix(src, grColumn)
		if err != nil {
			return err
		}
		written, err := emitMatrix(cmd, m, outputSpec{
			format:   grFormat,
			path:     output,
			sheet:    sheet,
			evaluate: grEvaluate,
			quiet:    grQuiet,
		})
		if err != nil {
			return err
		}
		if !(c.WriteManifest || grManifest) {
			return nil
		}
		mf := manifest.New(manifest.KindGrouped, sheet, written)
		mf.GroupBy = grColumn
		mf.AddSource(path, src)
		mf.SetResult(completeness.Unify(m.Header()), reports)
		return saveManifest(cmd, mf, grQuiet)
	},
}

// safeName lowercases s and keeps only characters safe in a file name.
func safeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else if r == ' ' || r == '-' || r == '_' {
			b.WriteRune('-')
		}
	}
	out := strings.Trim(b.String(), "-")
	if out == "" {
		out = "column"
	}
	return out
}

func init() {
	rootCmd.AddCommand(groupCmd)
	groupCmd.Flags().StringVarP(&grColumn, "column", "c", "", "key column whose values become matrix rows")
	groupCmd.Flags().StringVar(&grSheet, "sheet", "", "sheet name to read (overrides config sheet_name)")
	groupCmd.Flags().StringVarP(&grOutput, "output", "o", "", "output workbook path (default <file>_by_<column>.xlsx)")
	groupCmd.Flags().StringVar(&grFormat, "format", "xlsx", "output format: xlsx | table | markdown | csv")
	groupCmd.Flags().BoolVar(&grEvaluate, "evaluate", false, "write computed percentages instead of formulas")
	groupCmd.Flags().BoolVar(&grManifest, "manifest", false, "write a JSON run manifest next to the workbook")
	groupCmd.Flags().BoolVar(&grQuiet, "quiet", false, "suppress non-essential output")
	_ = groupCmd.MarkFlagRequired("column")
}
