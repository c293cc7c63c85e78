// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

const exportLimit = 100000

// ExportYAML writes the full lookup history to path, or to
// dataDir/export.yaml when path is empty. It returns the path written.
func (s *Store) ExportYAML(ctx context.Context, path string) (string, error) {
	entries, err := s.List(ctx, exportLimit)
	if err != nil {
		return "", fmt.Errorf("querying for export: %w", err)
	}

	if path == "" {
		path = filepath.Join(s.dataDir, "export.yaml")
	}
	data, err := yaml.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing export: %w", err)
	}
	return path, nil
}
