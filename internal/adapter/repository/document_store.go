package repository

import (
	"context"

	"rugstore/internal/domain/raw"
)

// Collection names in the store.
const (
	productsCollection    = "products"
	collectionsCollection = "collections"
	weaveTypesCollection  = "weave-types"
	leadsCollection       = "leads"
	pagesCollection       = "pages"
	settingsCollection    = "settings"

	homepageDocID = "homepage"
	siteDocID     = "site"

	// maxBatchWrites is the store's per-commit write limit.
	maxBatchWrites = 500
)

// Snapshot is a stored document and its id.
type Snapshot struct {
	ID   string
	Data raw.Document
}

// DocumentStore is the untyped view of one named collection. Get and FindOne
// return a NOT_FOUND AppError for missing documents.
type DocumentStore interface {
	NewID() string
	Get(ctx context.Context, id string) (raw.Document, error)
	FindOne(ctx context.Context, field string, value any) (Snapshot, error)
	All(ctx context.Context) ([]Snapshot, error)
	Set(ctx context.Context, id string, doc raw.Document) error
	SetAll(ctx context.Context, docs []Snapshot) error
	Delete(ctx context.Context, id string) error
}

// Stores opens a DocumentStore by collection name.
type Stores interface {
	Collection(name string) DocumentStore
}
