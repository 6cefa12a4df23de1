package repository

import (
	"context"

	"rugstore/internal/domain/entity"
	"rugstore/internal/domain/raw"
)

// Reads return raw documents so that every value reaching a caller has been
// through the transformers. Writes take safe entities and are last-write-wins.

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (raw.Product, error)
	GetBySlug(ctx context.Context, slug string) (raw.Product, error)
	List(ctx context.Context) ([]raw.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
}

type CollectionRepository interface {
	Create(ctx context.Context, collection *entity.Collection) error
	GetByID(ctx context.Context, id string) (raw.Collection, error)
	GetBySlug(ctx context.Context, slug string) (raw.Collection, error)
	List(ctx context.Context) ([]raw.Collection, error)
	Update(ctx context.Context, collection *entity.Collection) error
	Delete(ctx context.Context, id string) error
	// Seed writes collections in batches, keeping existing ids.
	Seed(ctx context.Context, collections []*entity.Collection) error
}

type WeaveTypeRepository interface {
	Create(ctx context.Context, weaveType *entity.WeaveType) error
	GetByID(ctx context.Context, id string) (raw.WeaveType, error)
	GetBySlug(ctx context.Context, slug string) (raw.WeaveType, error)
	List(ctx context.Context) ([]raw.WeaveType, error)
	Update(ctx context.Context, weaveType *entity.WeaveType) error
	Delete(ctx context.Context, id string) error
}

type LeadRepository interface {
	Create(ctx context.Context, lead *entity.Lead) error
	GetByID(ctx context.Context, id string) (raw.Lead, error)
	List(ctx context.Context) ([]raw.Lead, error)
	Update(ctx context.Context, lead *entity.Lead) error
	Delete(ctx context.Context, id string) error
}

// ContentRepository reads singleton documents. A missing document is not an
// error; it decodes to an empty raw value.
type ContentRepository interface {
	GetHomepage(ctx context.Context) (raw.Homepage, error)
	SaveHomepage(ctx context.Context, content *entity.HomepageContent) error
	GetSettings(ctx context.Context) (raw.Settings, error)
	SaveSettings(ctx context.Context, settings *entity.SiteSettings) error
}
