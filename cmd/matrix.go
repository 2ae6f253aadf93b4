package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/KaramelBytes/fillmatrix/internal/completeness"
	"github.com/KaramelBytes/fillmatrix/internal/manifest"
	"github.com/KaramelBytes/fillmatrix/internal/source"
	"github.com/spf13/cobra"
)

var (
	mxDir       string
	mxSheet     string
	mxOutput    string
	mxThreshold float64
	mxFormat    string
	mxEvaluate  bool
	mxList      bool
	mxWorkers   int
	mxManifest  bool
	mxQuiet     bool
)

var matrixCmd = &cobra.Command{
	Use:   "matrix [files...]",
	Short: "Build a completeness matrix with one row per spreadsheet",
	Long: `Build a completeness matrix with one row per spreadsheet. Files may be given as
paths or globs; without arguments every .xlsx/.csv file in --dir is read.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := config()
		f := cmd.Flags()
		dir := c.InputDir
		if f.Changed("dir") {
			dir = mxDir
		}
		sheet := c.SheetName
		if f.Changed("sheet") {
			sheet = mxSheet
		}
		output := c.Output
		if f.Changed("output") {
			output = mxOutput
		}
		threshold := c.Threshold
		if f.Changed("threshold") {
			threshold = mxThreshold
		}
		workers := c.Workers
		if f.Changed("workers") {
			if mxWorkers <= 0 {
				return fmt.Errorf("invalid int for workers: %d", mxWorkers)
			}
			workers = mxWorkers
		}
		writeManifest := c.WriteManifest || mxManifest

		var paths []string
		if len(args) > 0 {
			paths = source.Expand(args)
		} else {
			found, err := source.Discover(dir)
			if err != nil {
				return err
			}
			paths = found
		}
		if len(paths) == 0 {
			return fmt.Errorf("no input files matched")
		}
		logger.Debug("matrix run", "sources", len(paths), "sheet", sheet, "threshold", threshold, "workers", workers)

		loader := &source.Loader{Sheet: sheet, Workers: workers, Logger: logger}
		if !mxQuiet {
			loader.Progress = func(done, total int, path string) {
				fmt.Fprintf(cmd.OutOrStdout(), "[%d/%d] Loaded %s\n", done, total, filepath.Base(path))
			}
		}
		srcs, err := loader.Load(cmd.Context(), paths)
		if err != nil {
			return err
		}

		m, reports, err := completeness.PercentMatrix(srcs, threshold)
		if err != nil {
			return err
		}
		if mxList {
			lines, err := completeness.Listing(reports, threshold)
			if err != nil {
				return err
			}
			for _, l := range lines {
				fmt.Fprintln(cmd.OutOrStdout(), l)
			}
		}

		written, err := emitMatrix(cmd, m, outputSpec{
			format:   mxFormat,
			path:     output,
			sheet:    sheet,
			evaluate: mxEvaluate,
			quiet:    mxQuiet,
		})
		if err != nil {
			return err
		}
		if !writeManifest {
			return nil
		}
		mf := manifest.New(manifest.KindMatrix, sheet, written)
		mf.Threshold = &threshold
		for i, s := range srcs {
			mf.AddSource(paths[i], s)
		}
		mf.SetResult(completeness.UnifySources(srcs), reports)
		return saveManifest(cmd, mf, mxQuiet)
	},
}

func init() {
	rootCmd.AddCommand(matrixCmd)
	matrixCmd.Flags().StringVar(&mxDir, "dir", "", "directory of source spreadsheets (overrides config input_dir)")
	matrixCmd.Flags().StringVar(&mxSheet, "sheet", "", "sheet name read from every workbook (overrides config sheet_name)")
	matrixCmd.Flags().StringVarP(&mxOutput, "output", "o", "", "output workbook path; .xlsx is appended when missing")
	matrixCmd.Flags().Float64Var(&mxThreshold, "threshold", completeness.DefaultThreshold, "only report columns whose completeness is above this percentage")
	matrixCmd.Flags().StringVar(&mxFormat, "format", "xlsx", "output format: xlsx | table | markdown | csv")
	matrixCmd.Flags().BoolVar(&mxEvaluate, "evaluate", false, "write computed percentages instead of formulas")
	matrixCmd.Flags().BoolVar(&mxList, "list", false, "print the flattened '<source> - <column>: <formula>' listing")
	matrixCmd.Flags().IntVar(&mxWorkers, "workers", 0, "number of sources read concurrently (overrides config workers)")
	matrixCmd.Flags().BoolVar(&mxManifest, "manifest", false, "write a JSON run manifest next to the workbook")
	matrixCmd.Flags().BoolVar(&mxQuiet, "quiet", false, "suppress progress and non-essential output")
}
