package accessor

import (
	"context"
	"sort"

	"rugstore/internal/domain/entity"
	"rugstore/internal/domain/repository"
	"rugstore/internal/domain/result"
	"rugstore/internal/transform"
	"rugstore/pkg/logger"
)

// LeadPage is one page of leads, newest first.
type LeadPage struct {
	Leads []entity.Lead `json:"leads"`
	Total int           `json:"total"`
}

// Leads reads enquiries for the admin dashboard. Leads are never cached.
type Leads struct {
	reader
	leads       repository.LeadRepository
	transformer *transform.Transformer
}

func NewLeads(leads repository.LeadRepository, transformer *transform.Transformer, log logger.Logger) *Leads {
	return &Leads{
		reader:      reader{log: log.With("component", "leads")},
		leads:       leads,
		transformer: transformer,
	}
}

func (l *Leads) List(ctx context.Context, filter repository.LeadFilter) result.Result[LeadPage] {
	return load(ctx, &l.reader, query[LeadPage]{
		resource: "leads",
		fetch: func(ctx context.Context) (LeadPage, error) {
			all, err := l.matching(ctx, filter)
			if err != nil {
				return LeadPage{}, err
			}
			return LeadPage{
				Leads: repository.Page(all, filter.Offset, filter.Limit),
				Total: len(all),
			}, nil
		},
	})
}

// All returns every lead matching filter, ignoring paging.
func (l *Leads) All(ctx context.Context, filter repository.LeadFilter) result.Result[[]entity.Lead] {
	return load(ctx, &l.reader, query[[]entity.Lead]{
		resource: "leads",
		fetch: func(ctx context.Context) ([]entity.Lead, error) {
			return l.matching(ctx, filter)
		},
	})
}

func (l *Leads) matching(ctx context.Context, filter repository.LeadFilter) ([]entity.Lead, error) {
	raws, err := l.leads.List(ctx)
	if err != nil {
		return nil, err
	}
	leads := make([]entity.Lead, 0, len(raws))
	for _, r := range raws {
		if lead := l.transformer.Lead(r); filter.Matches(lead) {
			leads = append(leads, lead)
		}
	}
	// ISO timestamps sort lexically
	sort.SliceStable(leads, func(i, j int) bool {
		return leads[i].CreatedAt > leads[j].CreatedAt
	})
	return leads, nil
}

func (l *Leads) ByID(ctx context.Context, id string) result.Result[entity.Lead] {
	return load(ctx, &l.reader, query[entity.Lead]{
		resource: "Lead",
		fetch: func(ctx context.Context) (entity.Lead, error) {
			r, err := l.leads.GetByID(ctx, id)
			if err != nil {
				return entity.Lead{}, err
			}
			return l.transformer.Lead(r), nil
		},
	})
}
