package classify

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// tableFile is the on-disk shape of a category table.
type tableFile struct {
	Categories []Category `toml:"categories" yaml:"categories"`
}

// LoadFile reads categories from a TOML (.toml) or YAML (.yaml, .yml) file,
// preserving declaration order.
func LoadFile(path string) ([]Category, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read categories file: %w", err)
	}
	return Parse(filepath.Ext(path), data)
}

// Parse decodes a category table. format is a file extension such as
// ".toml" or ".yaml".
func Parse(format string, data []byte) ([]Category, error) {
	var file tableFile
	switch strings.ToLower(format) {
	case ".toml":
		decoder := toml.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&file); err != nil {
			return nil, fmt.Errorf("parse categories toml: %w", err)
		}
	case ".yaml", ".yml":
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&file); err != nil {
			return nil, fmt.Errorf("parse categories yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported categories file format %q (use .toml, .yaml, or .yml)", format)
	}
	if len(file.Categories) == 0 {
		return nil, fmt.Errorf("categories file declares no categories")
	}
	return file.Categories, nil
}
