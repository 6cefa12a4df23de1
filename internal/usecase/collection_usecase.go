package usecase

import (
	"context"
	"strconv"
	"strings"

	"rugstore/internal/domain/entity"
	"rugstore/internal/domain/raw"
	"rugstore/internal/domain/repository"
	"rugstore/internal/domain/service"
	"rugstore/internal/infrastructure/cache"
	"rugstore/internal/transform"
	"rugstore/pkg/errors"
	"rugstore/pkg/logger"
	"rugstore/pkg/utils"
)

type CollectionUseCase struct {
	mutations
	collectionRepo repository.CollectionRepository
	transformer    *transform.Transformer
}

func NewCollectionUseCase(
	collectionRepo repository.CollectionRepository,
	transformer *transform.Transformer,
	storage service.FileStorage,
	c cache.Cache,
	log logger.Logger,
) *CollectionUseCase {
	return &CollectionUseCase{
		mutations:      mutations{cache: c, storage: storage, log: log.With("component", "collections")},
		collectionRepo: collectionRepo,
		transformer:    transformer,
	}
}

type CollectionInput struct {
	ID          string       `json:"id,omitempty"`
	Name        string       `json:"name" validate:"required,max=200"`
	Slug        string       `json:"slug" validate:"max=200"`
	Description string       `json:"description"`
	Type        string       `json:"type" validate:"required"`
	HeroImage   entity.Image `json:"heroImage"`
	SEO         entity.SEO   `json:"seo"`
	IsActive    *bool        `json:"isActive"`
	SortOrder   int          `json:"sortOrder"`
	ProductIDs  []string     `json:"productIds"`
}

func (in CollectionInput) apply(c *entity.Collection) error {
	collectionType, ok := entity.ParseCollectionType(in.Type)
	if !ok {
		return errors.Validation(map[string]string{"type": "Type must be style or space"})
	}
	c.Name = strings.TrimSpace(in.Name)
	if c.Name == "" {
		return errors.Validation(map[string]string{"name": "Name is required"})
	}
	c.Type = collectionType
	c.Description = strings.TrimSpace(in.Description)
	c.HeroImage = in.HeroImage
	c.SEO = entity.SEO{
		Title:       strings.TrimSpace(in.SEO.Title),
		Description: strings.TrimSpace(in.SEO.Description),
		Keywords:    trimAll(in.SEO.Keywords),
	}
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	c.SortOrder = in.SortOrder
	c.ProductIDs = trimAll(in.ProductIDs)
	return nil
}

func (uc *CollectionUseCase) CreateCollection(ctx context.Context, input CollectionInput) (*entity.Collection, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	collection := &entity.Collection{IsActive: true}
	if err := input.apply(collection); err != nil {
		return nil, err
	}
	slug, err := uc.uniqueSlug(ctx, input.Slug, collection.Name, "")
	if err != nil {
		return nil, err
	}
	collection.Slug = slug

	if err := uc.collectionRepo.Create(ctx, collection); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, cache.TagCollections)
	uc.log.Info("collection created", "id", collection.ID, "slug", collection.Slug)
	return uc.normalized(collection), nil
}

func (uc *CollectionUseCase) UpdateCollection(ctx context.Context, id string, input CollectionInput) (*entity.Collection, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	collection, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	previousHero := collection.HeroImage.StorageRef

	if err := input.apply(&collection); err != nil {
		return nil, err
	}
	slug, err := uc.uniqueSlug(ctx, input.Slug, collection.Name, collection.ID)
	if err != nil {
		return nil, err
	}
	collection.Slug = slug

	if err := uc.collectionRepo.Update(ctx, &collection); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, cache.TagCollections)
	uc.deleteFiles(ctx, orphaned([]string{previousHero}, []string{collection.HeroImage.StorageRef})...)
	return uc.normalized(&collection), nil
}

func (uc *CollectionUseCase) DeleteCollection(ctx context.Context, id string) error {
	if _, err := requireAdmin(ctx); err != nil {
		return err
	}

	collection, err := uc.get(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.collectionRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidate(ctx, cache.TagCollections)
	uc.deleteFiles(ctx, collection.HeroImage.StorageRef)
	uc.log.Info("collection deleted", "id", id)
	return nil
}

// SetProducts replaces the curated product list of a collection.
func (uc *CollectionUseCase) SetProducts(ctx context.Context, id string, productIDs []string) (*entity.Collection, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	collection, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	collection.ProductIDs = trimAll(productIDs)
	if err := uc.collectionRepo.Update(ctx, &collection); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, cache.TagCollections)
	return uc.normalized(&collection), nil
}

// Seed writes many collections at once, keeping supplied ids so that seeding
// twice overwrites rather than duplicates. A re-seeded collection keeps its
// original createdAt, and slugs must be free across the batch and the store.
func (uc *CollectionUseCase) Seed(ctx context.Context, inputs []CollectionInput) ([]entity.Collection, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(inputs))
	collections := make([]*entity.Collection, 0, len(inputs))
	for i, input := range inputs {
		c := &entity.Collection{ID: strings.TrimSpace(input.ID), IsActive: true}
		if err := input.apply(c); err != nil {
			return nil, errors.BadRequest("Invalid collection at position "+strconv.Itoa(i), err)
		}
		slug, err := uc.uniqueSlug(ctx, input.Slug, c.Name, c.ID)
		if err != nil {
			return nil, err
		}
		c.Slug = slug
		if seen[c.Slug] {
			return nil, errors.Conflict("Duplicate slug " + c.Slug + " in seed data")
		}
		seen[c.Slug] = true

		if c.ID != "" {
			stored, err := uc.collectionRepo.GetByID(ctx, c.ID)
			switch {
			case err == nil:
				c.CreatedAt = uc.transformer.Collection(stored).CreatedAt
			case !errors.Is(err, "NOT_FOUND"):
				return nil, err
			}
		}
		collections = append(collections, c)
	}

	if err := uc.collectionRepo.Seed(ctx, collections); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, cache.TagCollections)
	uc.log.Info("collections seeded", "count", len(collections))

	out := make([]entity.Collection, len(collections))
	for i, c := range collections {
		out[i] = *uc.normalized(c)
	}
	return out, nil
}

func (uc *CollectionUseCase) get(ctx context.Context, id string) (entity.Collection, error) {
	r, err := uc.collectionRepo.GetByID(ctx, id)
	if err != nil {
		return entity.Collection{}, err
	}
	return uc.transformer.Collection(r), nil
}

func (uc *CollectionUseCase) uniqueSlug(ctx context.Context, requested, name, selfID string) (string, error) {
	slug := utils.Slugify(requested)
	if slug == "" {
		slug = utils.Slugify(name)
	}
	if slug == "" {
		return "", errors.Validation(map[string]string{"slug": "Slug must contain letters or digits"})
	}

	existing, err := uc.collectionRepo.GetBySlug(ctx, slug)
	switch {
	case errors.Is(err, "NOT_FOUND"):
		return slug, nil
	case err != nil:
		return "", err
	case existing.ID != selfID:
		return "", errors.Conflict("Another collection already uses the slug " + slug)
	}
	return slug, nil
}

func (uc *CollectionUseCase) normalized(c *entity.Collection) *entity.Collection {
	safe := uc.transformer.Collection(raw.DecodeCollection(c.ID, transform.CollectionDocument(*c)))
	return &safe
}
