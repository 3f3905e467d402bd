package catalog

import (
	"context"

	domcat "github.com/citymood/vibescout/internal/domain/catalog"
)

// BytesSource parses the catalog document from an in-memory buffer.
// Used by embedders that ship the catalog inside the binary or fetch
// it through their own channel.
type BytesSource struct {
	data []byte
}

// NewBytesSource creates a buffer-backed catalog source.
func NewBytesSource(data []byte) *BytesSource {
	return &BytesSource{data: data}
}

// Load parses the buffered catalog document.
func (s *BytesSource) Load(_ context.Context) (domcat.Catalog, error) {
	return parseCatalog(s.data)
}
