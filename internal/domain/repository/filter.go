package repository

import (
	"strings"

	"rugstore/internal/domain/entity"
)

// Filters are applied to transformed values so that documents written in a
// legacy shape match the same way as current ones.

type ProductFilter struct {
	WeaveType  string
	Collection string
	Featured   *bool
	ActiveOnly bool
	Limit      int
}

func (f ProductFilter) Matches(p entity.Product) bool {
	if f.ActiveOnly && !p.IsActive {
		return false
	}
	if f.Featured != nil && p.IsFeatured != *f.Featured {
		return false
	}
	if f.WeaveType != "" && !strings.EqualFold(p.Specifications.WeaveType, f.WeaveType) {
		return false
	}
	if f.Collection != "" && !p.InCollection(f.Collection) {
		return false
	}
	return true
}

type CollectionFilter struct {
	Type       entity.CollectionType
	ActiveOnly bool
}

func (f CollectionFilter) Matches(c entity.Collection) bool {
	if f.ActiveOnly && !c.IsActive {
		return false
	}
	return f.Type == "" || c.Type == f.Type
}

type LeadFilter struct {
	Status entity.LeadStatus
	Type   entity.LeadType
	Limit  int
	Offset int
}

func (f LeadFilter) Matches(l entity.Lead) bool {
	if f.Status != "" && l.Status != f.Status {
		return false
	}
	return f.Type == "" || l.Type == f.Type
}

// Page returns the window of xs selected by offset and limit. A zero limit
// means no limit.
func Page[T any](xs []T, offset, limit int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(xs) {
		return xs[:0]
	}
	xs = xs[offset:]
	if limit > 0 && limit < len(xs) {
		xs = xs[:limit]
	}
	return xs
}
