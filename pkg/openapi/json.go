package openapi

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// MarshalJSON renders spec as indented JSON.
func MarshalJSON(spec *Spec) ([]byte, error) {
	return json.MarshalIndent(spec, "", "  ")
}

// WriteJSON writes spec to path, creating parent directories.
func WriteJSON(spec *Spec, path string) error {
	data, err := MarshalJSON(spec)
	if err != nil {
		return fmt.Errorf("marshal spec: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create spec directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write spec: %w", err)
	}
	return nil
}
