// Package config holds the watermark, display and batch settings.
package config

import (
	"fmt"
)

// Config is the on-disk YAML document. Zero values are filled from Default.
type Config struct {
	Font      FontConfig      `yaml:"font"`
	Watermark WatermarkConfig `yaml:"watermark"`
	Display   DisplayConfig   `yaml:"display"`
	Batch     BatchConfig     `yaml:"batch"`
}

// FontConfig selects the watermark typeface. An empty Path means the
// embedded Go Regular font.
type FontConfig struct {
	Path string  `yaml:"path"`
	Size float64 `yaml:"size"`
}

type WatermarkConfig struct {
	Margin  int    `yaml:"margin"`
	Opacity int    `yaml:"opacity"` // 0..255, applied to the whole staging canvas
	Prefix  string `yaml:"prefix"`
}

// DisplayConfig bounds the preview. Never applied to saved files.
type DisplayConfig struct {
	MaxSize int `yaml:"max_size"`
	MinSize int `yaml:"min_size"`
	Chrome  int `yaml:"chrome"` // vertical allowance added to the suggested window height
}

type BatchConfig struct {
	Glob            string `yaml:"glob"`
	ContinueOnError bool   `yaml:"continue_on_error"`
}

// Default returns the settings used when no config file exists.
func Default() *Config {
	return &Config{
		Font: FontConfig{Size: 40},
		Watermark: WatermarkConfig{
			Margin:  10,
			Opacity: 100,
			Prefix:  "watermark_",
		},
		Display: DisplayConfig{
			MaxSize: 1000,
			MinSize: 500,
			Chrome:  110,
		},
		Batch: BatchConfig{Glob: "*.*"},
	}
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if c.Font.Size <= 0 {
		return fmt.Errorf("font.size must be positive, got %v", c.Font.Size)
	}
	if c.Watermark.Margin < 0 {
		return fmt.Errorf("watermark.margin must not be negative, got %d", c.Watermark.Margin)
	}
	if c.Watermark.Opacity < 0 || c.Watermark.Opacity > 255 {
		return fmt.Errorf("watermark.opacity must be within 0..255, got %d", c.Watermark.Opacity)
	}
	if c.Watermark.Prefix == "" {
		return fmt.Errorf("watermark.prefix must not be empty")
	}
	if c.Display.MaxSize <= 0 || c.Display.MinSize < 0 {
		return fmt.Errorf("display sizes must be positive (max=%d min=%d)", c.Display.MaxSize, c.Display.MinSize)
	}
	if c.Display.MinSize > c.Display.MaxSize {
		return fmt.Errorf("display.min_size (%d) exceeds display.max_size (%d)", c.Display.MinSize, c.Display.MaxSize)
	}
	if c.Batch.Glob == "" {
		return fmt.Errorf("batch.glob must not be empty")
	}
	return nil
}
