package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	InputDir  string  `mapstructure:"input_dir" yaml:"input_dir"`
	SheetName string  `mapstructure:"sheet_name" yaml:"sheet_name"`
	Output    string  `mapstructure:"output" yaml:"output"`
	Threshold float64 `mapstructure:"threshold" yaml:"threshold"`

	// Output workbook formatting
	FontSize   float64 `mapstructure:"font_size" yaml:"font_size"`
	ColorScale bool    `mapstructure:"color_scale" yaml:"color_scale"`

	// Concurrent source loading
	Workers int `mapstructure:"workers" yaml:"workers"`

	WriteManifest bool `mapstructure:"write_manifest" yaml:"write_manifest"`
}

// Defaults returns the built-in configuration.
func Defaults() *Global {
	return &Global{
		InputDir:   "files/in",
		SheetName:  "Sheet1",
		Output:     "files/out/efc_output.xlsx",
		Threshold:  -1,
		FontSize:   12,
		ColorScale: true,
		Workers:    4,
	}
}

// DefaultPath returns ~/.fillmatrix/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".fillmatrix", "config.yaml"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.fillmatrix/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. Command flags are applied by the caller.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("FILLMATRIX")
	v.AutomaticEnv()

	d := Defaults()
	v.SetDefault("input_dir", d.InputDir)
	v.SetDefault("sheet_name", d.SheetName)
	v.SetDefault("output", d.Output)
	v.SetDefault("threshold", d.Threshold)
	v.SetDefault("font_size", d.FontSize)
	v.SetDefault("color_scale", d.ColorScale)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("write_manifest", d.WriteManifest)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(filepath.Dir(p))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.Workers <= 0 {
		c.Workers = 1
	}
	return &c, nil
}
