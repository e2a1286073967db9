package similarity

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// LoadTable reads an override table from a JSON or YAML file. Both formats are
// decoded by the YAML parser since JSON documents are valid YAML.
//
// Expected shape:
//
//	{"sport": {"football": 0.9, "tennis": 0.9}, "fiction": {"mystery": 0.8}}
func LoadTable(path string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
	default:
		return nil, fmt.Errorf("unsupported similarity table format %q (want .json, .yaml or .yml)", filepath.Ext(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read similarity table: %w", err)
	}

	var relations map[string]map[string]float64
	if err := yaml.Unmarshal(data, &relations); err != nil {
		return nil, fmt.Errorf("failed to parse similarity table %s: %w", path, err)
	}
	if len(relations) == 0 {
		return nil, fmt.Errorf("similarity table %s is empty", path)
	}

	return NewTable(relations, path)
}

// LoadTableOrDefault never fails: an empty path selects the built-in table and
// any load error is logged before falling back to it.
func LoadTableOrDefault(path string, log *zap.Logger) *Table {
	if log == nil {
		log = zap.NewNop()
	}

	if path == "" {
		table := DefaultTable()
		log.Info("Using built-in genre relationships", zap.Int("relations", table.Len()))
		return table
	}

	table, err := LoadTable(path)
	if err != nil {
		log.Warn("Error loading genre relationships, using built-in table",
			zap.String("path", path),
			zap.Error(err),
		)
		return DefaultTable()
	}

	log.Info("Genre relationships loaded successfully",
		zap.String("path", path),
		zap.Int("relations", table.Len()),
	)
	return table
}
