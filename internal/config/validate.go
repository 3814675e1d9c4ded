package config

import (
	"fmt"
	"slices"

	"mia/internal/textutil"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateDisplay(); err != nil {
		return err
	}
	return c.validateOrganize()
}

func (c *Config) validateLogging() error {
	if !slices.Contains([]string{"console", "json"}, c.Logging.Format) {
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	if !slices.Contains([]string{"debug", "info", "warn", "error"}, c.Logging.Level) {
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}

func (c *Config) validateDisplay() error {
	if !slices.Contains([]string{GlyphsAuto, GlyphsUnicode, GlyphsASCII}, c.Display.Glyphs) {
		return fmt.Errorf("display.glyphs must be auto, unicode, or ascii, got %q", c.Display.Glyphs)
	}
	if !slices.Contains([]string{ColorAuto, ColorAlways, ColorNever}, c.Display.Color) {
		return fmt.Errorf("display.color must be auto, always, or never, got %q", c.Display.Color)
	}
	return nil
}

func (c *Config) validateOrganize() error {
	if c.Organize.OtherBucket != "" && !textutil.IsSafeFolderName(c.Organize.OtherBucket) {
		return fmt.Errorf("organize.other_bucket %q is not a valid folder name", c.Organize.OtherBucket)
	}
	for i, cat := range c.Organize.Categories {
		if !textutil.IsSafeFolderName(cat.Name) {
			return fmt.Errorf("organize.categories[%d].name %q is not a valid folder name", i, cat.Name)
		}
		if len(cat.Extensions) == 0 {
			return fmt.Errorf("organize.categories[%d] (%s) must list at least one extension", i, cat.Name)
		}
	}
	return nil
}
