package transform

import (
	"rugstore/internal/domain/entity"
	"rugstore/internal/domain/raw"
)

// Collection maps a raw collections document. An unknown type reads as style.
func (t *Transformer) Collection(r raw.Collection) entity.Collection {
	collectionType := entity.CollectionTypeStyle
	if r.Type != nil {
		if parsed, ok := entity.ParseCollectionType(*r.Type); ok {
			collectionType = parsed
		}
	}

	return entity.Collection{
		ID:          r.ID,
		Name:        value(r.Name),
		Slug:        value(r.Slug),
		Description: valueOr(r.Description, entity.DefaultDescription),
		Type:        collectionType,
		HeroImage:   image(r.HeroImage, entity.FallbackCollectionImage),
		SEO:         seo(r.SEO),
		IsActive:    flag(r.IsActive, true),
		SortOrder:   intValue(r.SortOrder),
		ProductIDs:  nonNil(r.ProductIDs),
		CreatedAt:   t.Timestamp(r.CreatedAt),
		UpdatedAt:   t.Timestamp(r.UpdatedAt),
	}
}

func (t *Transformer) WeaveType(r raw.WeaveType) entity.WeaveType {
	return entity.WeaveType{
		ID:          r.ID,
		Name:        value(r.Name),
		Slug:        value(r.Slug),
		Description: value(r.Description),
		Image:       image(r.Image, entity.FallbackWeaveTypeImage),
		SortOrder:   intValue(r.SortOrder),
		IsActive:    flag(r.IsActive, true),
		CreatedAt:   t.Timestamp(r.CreatedAt),
		UpdatedAt:   t.Timestamp(r.UpdatedAt),
	}
}
