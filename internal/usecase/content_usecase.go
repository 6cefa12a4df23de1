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
	"rugstore/pkg/logger"
)

type ContentUseCase struct {
	mutations
	contentRepo repository.ContentRepository
	transformer *transform.Transformer
}

func NewContentUseCase(
	contentRepo repository.ContentRepository,
	transformer *transform.Transformer,
	storage service.FileStorage,
	c cache.Cache,
	log logger.Logger,
) *ContentUseCase {
	return &ContentUseCase{
		mutations:   mutations{cache: c, storage: storage, log: log.With("component", "content")},
		contentRepo: contentRepo,
		transformer: transformer,
	}
}

type HomepageInput struct {
	Hero                  entity.HeroSection  `json:"hero"`
	Story                 entity.StorySection `json:"story"`
	FeaturedCollectionIDs []string            `json:"featuredCollectionIds" validate:"max=12"`
}

type SettingsInput struct {
	CompanyName  string             `json:"companyName" validate:"max=160"`
	ContactEmail string             `json:"contactEmail" validate:"omitempty,email"`
	ContactPhone string             `json:"contactPhone" validate:"max=40"`
	Address      string             `json:"address" validate:"max=500"`
	Social       entity.SocialLinks `json:"social"`
}

func (uc *ContentUseCase) UpdateHomepage(ctx context.Context, input HomepageInput) (*entity.HomepageContent, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	current, err := uc.contentRepo.GetHomepage(ctx)
	if err != nil {
		return nil, err
	}
	previous := uc.transformer.Homepage(current)

	content := &entity.HomepageContent{
		Hero: entity.HeroSection{
			Title:    strings.TrimSpace(input.Hero.Title),
			Subtitle: strings.TrimSpace(input.Hero.Subtitle),
			CTAText:  strings.TrimSpace(input.Hero.CTAText),
			CTALink:  strings.TrimSpace(input.Hero.CTALink),
			Image:    input.Hero.Image,
		},
		Story: entity.StorySection{
			Title: strings.TrimSpace(input.Story.Title),
			Body:  strings.TrimSpace(input.Story.Body),
			Image: input.Story.Image,
		},
		FeaturedCollectionIDs: trimAll(input.FeaturedCollectionIDs),
	}
	if err := uc.contentRepo.SaveHomepage(ctx, content); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, cache.TagHomepage)
	uc.deleteFiles(ctx, orphaned(
		[]string{previous.Hero.Image.StorageRef, previous.Story.Image.StorageRef},
		[]string{content.Hero.Image.StorageRef, content.Story.Image.StorageRef},
	)...)

	safe := uc.transformer.Homepage(raw.DecodeHomepage(transform.HomepageDocument(*content)))
	return &safe, nil
}

func (uc *ContentUseCase) UpdateSettings(ctx context.Context, input SettingsInput) (*entity.SiteSettings, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	settings := &entity.SiteSettings{
		CompanyName:  strings.TrimSpace(input.CompanyName),
		ContactEmail: strings.TrimSpace(input.ContactEmail),
		ContactPhone: strings.TrimSpace(input.ContactPhone),
		Address:      strings.TrimSpace(input.Address),
		Social: entity.SocialLinks{
			Instagram: strings.TrimSpace(input.Social.Instagram),
			Pinterest: strings.TrimSpace(input.Social.Pinterest),
			Facebook:  strings.TrimSpace(input.Social.Facebook),
		},
	}
	if err := uc.contentRepo.SaveSettings(ctx, settings); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, cache.TagSettings)

	safe := uc.transformer.Settings(raw.DecodeSettings(transform.SettingsDocument(*settings)))
	return &safe, nil
}
