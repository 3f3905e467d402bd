package domain

import "errors"

var (
	// ErrCatalogNotLoaded signals a query before the catalog is ready.
	ErrCatalogNotLoaded = errors.New("catalog not loaded")
	// ErrCatalogInvalid signals a catalog document that fails validation.
	ErrCatalogInvalid = errors.New("invalid catalog")
	// ErrCatalogNotFound signals a missing catalog document at the source.
	ErrCatalogNotFound = errors.New("catalog not found")
	// ErrInvalidQuery signals a query that fails validation.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrVectorDimMismatch signals a vector dimension mismatch.
	ErrVectorDimMismatch = errors.New("vector dimension mismatch")
	// ErrEmptyPool signals mean pooling over zero vectors.
	ErrEmptyPool = errors.New("cannot pool empty vector set")
)
