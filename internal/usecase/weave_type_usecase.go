package usecase

import (
	"context"
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

type WeaveTypeUseCase struct {
	mutations
	weaveTypeRepo repository.WeaveTypeRepository
	transformer   *transform.Transformer
}

func NewWeaveTypeUseCase(
	weaveTypeRepo repository.WeaveTypeRepository,
	transformer *transform.Transformer,
	storage service.FileStorage,
	c cache.Cache,
	log logger.Logger,
) *WeaveTypeUseCase {
	return &WeaveTypeUseCase{
		mutations:     mutations{cache: c, storage: storage, log: log.With("component", "weave-types")},
		weaveTypeRepo: weaveTypeRepo,
		transformer:   transformer,
	}
}

type WeaveTypeInput struct {
	Name        string       `json:"name" validate:"required,max=120"`
	Slug        string       `json:"slug" validate:"max=120"`
	Description string       `json:"description"`
	Image       entity.Image `json:"image"`
	SortOrder   int          `json:"sortOrder"`
	IsActive    *bool        `json:"isActive"`
}

func (in WeaveTypeInput) apply(w *entity.WeaveType) error {
	w.Name = strings.TrimSpace(in.Name)
	if w.Name == "" {
		return errors.Validation(map[string]string{"name": "Name is required"})
	}
	w.Description = strings.TrimSpace(in.Description)
	w.Image = in.Image
	w.SortOrder = in.SortOrder
	if in.IsActive != nil {
		w.IsActive = *in.IsActive
	}
	return nil
}

func (uc *WeaveTypeUseCase) CreateWeaveType(ctx context.Context, input WeaveTypeInput) (*entity.WeaveType, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	weaveType := &entity.WeaveType{IsActive: true}
	if err := input.apply(weaveType); err != nil {
		return nil, err
	}
	slug, err := uc.uniqueSlug(ctx, input.Slug, weaveType.Name, "")
	if err != nil {
		return nil, err
	}
	weaveType.Slug = slug

	if err := uc.weaveTypeRepo.Create(ctx, weaveType); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, cache.TagWeaveTypes)
	return uc.normalized(weaveType), nil
}

func (uc *WeaveTypeUseCase) UpdateWeaveType(ctx context.Context, id string, input WeaveTypeInput) (*entity.WeaveType, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	weaveType, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	previousImage := weaveType.Image.StorageRef

	if err := input.apply(&weaveType); err != nil {
		return nil, err
	}
	slug, err := uc.uniqueSlug(ctx, input.Slug, weaveType.Name, weaveType.ID)
	if err != nil {
		return nil, err
	}
	weaveType.Slug = slug

	if err := uc.weaveTypeRepo.Update(ctx, &weaveType); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, cache.TagWeaveTypes)
	uc.deleteFiles(ctx, orphaned([]string{previousImage}, []string{weaveType.Image.StorageRef})...)
	return uc.normalized(&weaveType), nil
}

func (uc *WeaveTypeUseCase) DeleteWeaveType(ctx context.Context, id string) error {
	if _, err := requireAdmin(ctx); err != nil {
		return err
	}

	weaveType, err := uc.get(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.weaveTypeRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidate(ctx, cache.TagWeaveTypes)
	uc.deleteFiles(ctx, weaveType.Image.StorageRef)
	return nil
}

func (uc *WeaveTypeUseCase) get(ctx context.Context, id string) (entity.WeaveType, error) {
	r, err := uc.weaveTypeRepo.GetByID(ctx, id)
	if err != nil {
		return entity.WeaveType{}, err
	}
	return uc.transformer.WeaveType(r), nil
}

func (uc *WeaveTypeUseCase) uniqueSlug(ctx context.Context, requested, name, selfID string) (string, error) {
	slug := utils.Slugify(requested)
	if slug == "" {
		slug = utils.Slugify(name)
	}
	if slug == "" {
		return "", errors.Validation(map[string]string{"slug": "Slug must contain letters or digits"})
	}

	existing, err := uc.weaveTypeRepo.GetBySlug(ctx, slug)
	switch {
	case errors.Is(err, "NOT_FOUND"):
		return slug, nil
	case err != nil:
		return "", err
	case existing.ID != selfID:
		return "", errors.Conflict("Another weave type already uses the slug " + slug)
	}
	return slug, nil
}

func (uc *WeaveTypeUseCase) normalized(w *entity.WeaveType) *entity.WeaveType {
	safe := uc.transformer.WeaveType(raw.DecodeWeaveType(w.ID, transform.WeaveTypeDocument(*w)))
	return &safe
}
