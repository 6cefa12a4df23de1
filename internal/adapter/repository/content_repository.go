package repository

import (
	"context"

	"rugstore/internal/domain/entity"
	"rugstore/internal/domain/raw"
	"rugstore/internal/domain/repository"
	"rugstore/internal/transform"
	"rugstore/pkg/errors"
)

type contentRepository struct {
	pages    DocumentStore
	settings DocumentStore
}

func NewContentRepository(stores Stores) repository.ContentRepository {
	return &contentRepository{
		pages:    stores.Collection(pagesCollection),
		settings: stores.Collection(settingsCollection),
	}
}

func (r *contentRepository) GetHomepage(ctx context.Context) (raw.Homepage, error) {
	doc, err := singleton(ctx, r.pages, homepageDocID)
	if err != nil {
		return raw.Homepage{}, err
	}
	return raw.DecodeHomepage(doc), nil
}

func (r *contentRepository) SaveHomepage(ctx context.Context, content *entity.HomepageContent) error {
	content.UpdatedAt = transform.FormatISO(timeNow())
	return r.pages.Set(ctx, homepageDocID, transform.HomepageDocument(*content))
}

func (r *contentRepository) GetSettings(ctx context.Context) (raw.Settings, error) {
	doc, err := singleton(ctx, r.settings, siteDocID)
	if err != nil {
		return raw.Settings{}, err
	}
	return raw.DecodeSettings(doc), nil
}

func (r *contentRepository) SaveSettings(ctx context.Context, settings *entity.SiteSettings) error {
	settings.UpdatedAt = transform.FormatISO(timeNow())
	return r.settings.Set(ctx, siteDocID, transform.SettingsDocument(*settings))
}

// singleton reads a fixed document, treating absence as an empty document.
func singleton(ctx context.Context, store DocumentStore, id string) (raw.Document, error) {
	doc, err := store.Get(ctx, id)
	if errors.Is(err, "NOT_FOUND") {
		return raw.Document{}, nil
	}
	return doc, err
}
