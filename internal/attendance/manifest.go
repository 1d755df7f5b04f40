package attendance

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ManifestFile is written into the output directory after every run
const ManifestFile = "run-manifest.json"

// SaveManifest writes result as indented JSON to path
func SaveManifest(path string, result *RunResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrFilesystem, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: failed to write manifest: %w", ErrFilesystem, err)
	}

	return nil
}

// LoadManifest reads a manifest written by SaveManifest
func LoadManifest(path string) (*RunResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var result RunResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	return &result, nil
}
