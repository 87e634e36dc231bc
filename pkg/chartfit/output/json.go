// Package output serializes results to JSON.
package output

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// ToJSON encodes v as JSON, indented with two spaces when pretty is set.
func ToJSON(v interface{}, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// WriteFile encodes v and writes it to path, creating parent directories.
func WriteFile(path string, v interface{}, pretty bool) error {
	data, err := ToJSON(v, pretty)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}
