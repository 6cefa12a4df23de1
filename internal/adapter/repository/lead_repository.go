package repository

import (
	"context"

	"rugstore/internal/domain/entity"
	"rugstore/internal/domain/raw"
	"rugstore/internal/domain/repository"
	"rugstore/internal/transform"
)

type leadRepository struct {
	docs DocumentStore
}

func NewLeadRepository(stores Stores) repository.LeadRepository {
	return &leadRepository{docs: stores.Collection(leadsCollection)}
}

func (r *leadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	if lead.ID == "" {
		lead.ID = r.docs.NewID()
	}
	stamp(&lead.CreatedAt, &lead.UpdatedAt)
	return r.docs.Set(ctx, lead.ID, transform.LeadDocument(*lead))
}

func (r *leadRepository) GetByID(ctx context.Context, id string) (raw.Lead, error) {
	return getDecoded(ctx, r.docs, id, raw.DecodeLead)
}

func (r *leadRepository) List(ctx context.Context) ([]raw.Lead, error) {
	return listDecoded(ctx, r.docs, raw.DecodeLead)
}

func (r *leadRepository) Update(ctx context.Context, lead *entity.Lead) error {
	stamp(&lead.CreatedAt, &lead.UpdatedAt)
	return r.docs.Set(ctx, lead.ID, transform.LeadDocument(*lead))
}

func (r *leadRepository) Delete(ctx context.Context, id string) error {
	return r.docs.Delete(ctx, id)
}
