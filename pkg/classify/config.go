package classify

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadTables reads alternate classification tables from a YAML file.
// Sections absent from the file fall back to the corresponding default
// table, so a file can override just the keywords while keeping the
// standard relations and law mapping.
func LoadTables(path string) (Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Tables{}, fmt.Errorf("failed to read tables file %s: %w", path, err)
	}

	return ParseTables(data)
}

// ParseTables decodes classification tables from YAML bytes, filling
// omitted sections from DefaultTables.
func ParseTables(data []byte) (Tables, error) {
	var parsed Tables
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return Tables{}, fmt.Errorf("failed to parse tables: %w", err)
	}

	defaults := DefaultTables()
	if parsed.Keywords == nil {
		parsed.Keywords = defaults.Keywords
	}
	if parsed.Relations == nil {
		parsed.Relations = defaults.Relations
	}
	if parsed.Laws == nil {
		parsed.Laws = defaults.Laws
	}

	return parsed, nil
}
