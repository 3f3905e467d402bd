package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/citymood/vibescout/internal/domain"
	domcat "github.com/citymood/vibescout/internal/domain/catalog"
)

// FileSource loads the catalog document from a JSON file on disk.
type FileSource struct {
	path string
}

// NewFileSource creates a file-backed catalog source.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Load reads and parses the catalog file.
func (s *FileSource) Load(_ context.Context) (domcat.Catalog, error) {
	data, err := os.ReadFile(filepath.Clean(s.path))
	if err != nil {
		if os.IsNotExist(err) {
			return domcat.Catalog{}, fmt.Errorf("%w: %s", domain.ErrCatalogNotFound, s.path)
		}
		return domcat.Catalog{}, fmt.Errorf("read catalog %s: %w", s.path, err)
	}
	cat, err := parseCatalog(data)
	if err != nil {
		return domcat.Catalog{}, fmt.Errorf("catalog %s: %w", s.path, err)
	}
	return cat, nil
}
