package repository

import (
	"context"

	"rugstore/internal/domain/entity"
	"rugstore/internal/domain/raw"
	"rugstore/internal/domain/repository"
	"rugstore/internal/transform"
)

type weaveTypeRepository struct {
	docs DocumentStore
}

func NewWeaveTypeRepository(stores Stores) repository.WeaveTypeRepository {
	return &weaveTypeRepository{docs: stores.Collection(weaveTypesCollection)}
}

func (r *weaveTypeRepository) Create(ctx context.Context, weaveType *entity.WeaveType) error {
	if weaveType.ID == "" {
		weaveType.ID = r.docs.NewID()
	}
	stamp(&weaveType.CreatedAt, &weaveType.UpdatedAt)
	return r.docs.Set(ctx, weaveType.ID, transform.WeaveTypeDocument(*weaveType))
}

func (r *weaveTypeRepository) GetByID(ctx context.Context, id string) (raw.WeaveType, error) {
	return getDecoded(ctx, r.docs, id, raw.DecodeWeaveType)
}

func (r *weaveTypeRepository) GetBySlug(ctx context.Context, slug string) (raw.WeaveType, error) {
	return findDecoded(ctx, r.docs, "slug", slug, raw.DecodeWeaveType)
}

func (r *weaveTypeRepository) List(ctx context.Context) ([]raw.WeaveType, error) {
	return listDecoded(ctx, r.docs, raw.DecodeWeaveType)
}

func (r *weaveTypeRepository) Update(ctx context.Context, weaveType *entity.WeaveType) error {
	stamp(&weaveType.CreatedAt, &weaveType.UpdatedAt)
	return r.docs.Set(ctx, weaveType.ID, transform.WeaveTypeDocument(*weaveType))
}

func (r *weaveTypeRepository) Delete(ctx context.Context, id string) error {
	return r.docs.Delete(ctx, id)
}
