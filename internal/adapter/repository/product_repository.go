package repository

import (
	"context"

	"rugstore/internal/domain/entity"
	"rugstore/internal/domain/raw"
	"rugstore/internal/domain/repository"
	"rugstore/internal/transform"
)

type productRepository struct {
	docs DocumentStore
}

func NewProductRepository(stores Stores) repository.ProductRepository {
	return &productRepository{docs: stores.Collection(productsCollection)}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	if product.ID == "" {
		product.ID = r.docs.NewID()
	}
	stamp(&product.CreatedAt, &product.UpdatedAt)
	return r.docs.Set(ctx, product.ID, transform.ProductDocument(*product))
}

func (r *productRepository) GetByID(ctx context.Context, id string) (raw.Product, error) {
	return getDecoded(ctx, r.docs, id, raw.DecodeProduct)
}

func (r *productRepository) GetBySlug(ctx context.Context, slug string) (raw.Product, error) {
	return findDecoded(ctx, r.docs, "slug", slug, raw.DecodeProduct)
}

func (r *productRepository) List(ctx context.Context) ([]raw.Product, error) {
	return listDecoded(ctx, r.docs, raw.DecodeProduct)
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	stamp(&product.CreatedAt, &product.UpdatedAt)
	return r.docs.Set(ctx, product.ID, transform.ProductDocument(*product))
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	return r.docs.Delete(ctx, id)
}
