package cmd

import (
	"fmt"
	"strconv"

	cfgpkg "github.com/KaramelBytes/fillmatrix/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set fillmatrix configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := config()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "input_dir: %s\n", c.InputDir)
		fmt.Fprintf(out, "sheet_name: %s\n", c.SheetName)
		fmt.Fprintf(out, "output: %s\n", c.Output)
		fmt.Fprintf(out, "threshold: %g\n", c.Threshold)
		fmt.Fprintf(out, "font_size: %g\n", c.FontSize)
		fmt.Fprintf(out, "color_scale: %t\n", c.ColorScale)
		fmt.Fprintf(out, "workers: %d\n", c.Workers)
		fmt.Fprintf(out, "write_manifest: %t\n", c.WriteManifest)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		c := config()
		switch key {
		case "input_dir":
			c.InputDir = val
		case "sheet_name":
			if val == "" {
				return fmt.Errorf("sheet_name cannot be empty")
			}
			c.SheetName = val
		case "output":
			c.Output = val
		case "threshold":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil || f >= 101 {
				return fmt.Errorf("invalid float for threshold: %v (must be below 101)", val)
			}
			c.Threshold = f
		case "font_size":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil || f < 0 {
				return fmt.Errorf("invalid float for font_size: %v", val)
			}
			c.FontSize = f
		case "color_scale":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for color_scale: %w", err)
			}
			c.ColorScale = b
		case "workers":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid int for workers: %v", val)
			}
			c.Workers = i
		case "write_manifest":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for write_manifest: %w", err)
			}
			c.WriteManifest = b
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		cfg = c
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
