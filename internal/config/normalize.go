package config

import (
	"fmt"
	"os"
	"strings"

	"mia/internal/classify"
	"mia/internal/resolve"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeLogging(); err != nil {
		return err
	}
	c.normalizeDisplay()
	c.normalizeWalk()
	return c.normalizeOrganize()
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir()
	}
	if c.Paths.StateDir, err = expandOptional(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	if value, ok := os.LookupEnv("MIA_LOG_LEVEL"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	if value, ok := os.LookupEnv("MIA_LOG_FORMAT"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Format = value
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	var err error
	if c.Logging.File, err = expandOptional(strings.TrimSpace(c.Logging.File)); err != nil {
		return fmt.Errorf("logging.file: %w", err)
	}
	return nil
}

func (c *Config) normalizeDisplay() {
	c.Display.Glyphs = strings.ToLower(strings.TrimSpace(c.Display.Glyphs))
	if c.Display.Glyphs == "" {
		c.Display.Glyphs = defaultGlyphs
	}
	c.Display.Color = strings.ToLower(strings.TrimSpace(c.Display.Color))
	if c.Display.Color == "" {
		c.Display.Color = defaultColor
	}
}

func (c *Config) normalizeWalk() {
	patterns := make([]string, 0, len(c.Walk.Exclude))
	for _, pattern := range c.Walk.Exclude {
		if trimmed := strings.TrimSpace(pattern); trimmed != "" {
			patterns = append(patterns, trimmed)
		}
	}
	c.Walk.Exclude = patterns
}

func (c *Config) normalizeOrganize() error {
	c.Organize.OtherBucket = strings.TrimSpace(c.Organize.OtherBucket)
	c.Organize.OnConflict = strings.ToLower(strings.TrimSpace(c.Organize.OnConflict))
	if c.Organize.OnConflict == "" {
		c.Organize.OnConflict = defaultOnConflict
	}
	var err error
	if c.Organize.CategoriesFile, err = expandOptional(strings.TrimSpace(c.Organize.CategoriesFile)); err != nil {
		return fmt.Errorf("organize.categories_file: %w", err)
	}
	for i := range c.Organize.Categories {
		cat := &c.Organize.Categories[i]
		cat.Name = strings.TrimSpace(cat.Name)
		cat.Extensions = classify.NormalizeExtensions(cat.Extensions)
	}
	return nil
}

// expandOptional expands a configured path, leaving an unset value empty.
func expandOptional(value string) (string, error) {
	if value == "" {
		return "", nil
	}
	return resolve.Expand(value)
}
