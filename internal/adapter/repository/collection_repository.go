package repository

import (
	"context"

	"rugstore/internal/domain/entity"
	"rugstore/internal/domain/raw"
	"rugstore/internal/domain/repository"
	"rugstore/internal/transform"
)

type collectionRepository struct {
	docs DocumentStore
}

func NewCollectionRepository(stores Stores) repository.CollectionRepository {
	return &collectionRepository{docs: stores.Collection(collectionsCollection)}
}

func (r *collectionRepository) Create(ctx context.Context, collection *entity.Collection) error {
	if collection.ID == "" {
		collection.ID = r.docs.NewID()
	}
	stamp(&collection.CreatedAt, &collection.UpdatedAt)
	return r.docs.Set(ctx, collection.ID, transform.CollectionDocument(*collection))
}

func (r *collectionRepository) GetByID(ctx context.Context, id string) (raw.Collection, error) {
	return getDecoded(ctx, r.docs, id, raw.DecodeCollection)
}

func (r *collectionRepository) GetBySlug(ctx context.Context, slug string) (raw.Collection, error) {
	return findDecoded(ctx, r.docs, "slug", slug, raw.DecodeCollection)
}

func (r *collectionRepository) List(ctx context.Context) ([]raw.Collection, error) {
	return listDecoded(ctx, r.docs, raw.DecodeCollection)
}

func (r *collectionRepository) Update(ctx context.Context, collection *entity.Collection) error {
	stamp(&collection.CreatedAt, &collection.UpdatedAt)
	return r.docs.Set(ctx, collection.ID, transform.CollectionDocument(*collection))
}

func (r *collectionRepository) Delete(ctx context.Context, id string) error {
	return r.docs.Delete(ctx, id)
}

func (r *collectionRepository) Seed(ctx context.Context, collections []*entity.Collection) error {
	snapshots := make([]Snapshot, len(collections))
	for i, c := range collections {
		if c.ID == "" {
			c.ID = r.docs.NewID()
		}
		stamp(&c.CreatedAt, &c.UpdatedAt)
		snapshots[i] = Snapshot{ID: c.ID, Data: transform.CollectionDocument(*c)}
	}
	return r.docs.SetAll(ctx, snapshots)
}
