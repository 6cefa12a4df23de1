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

type ProductUseCase struct {
	mutations
	productRepo repository.ProductRepository
	transformer *transform.Transformer
}

func NewProductUseCase(
	productRepo repository.ProductRepository,
	transformer *transform.Transformer,
	storage service.FileStorage,
	c cache.Cache,
	log logger.Logger,
) *ProductUseCase {
	return &ProductUseCase{
		mutations:   mutations{cache: c, storage: storage, log: log.With("component", "products")},
		productRepo: productRepo,
		transformer: transformer,
	}
}

type PriceInput struct {
	Amount    float64 `json:"amount" validate:"gte=0"`
	Currency  string  `json:"currency" validate:"omitempty,len=3,alpha"`
	OnRequest bool    `json:"onRequest"`
}

type ProductInput struct {
	Name           string                       `json:"name" validate:"required,max=200"`
	Slug           string                       `json:"slug" validate:"max=200"`
	Description    string                       `json:"description"`
	Story          string                       `json:"story"`
	Images         []entity.ProductImage        `json:"images" validate:"dive"`
	Specifications entity.ProductSpecifications `json:"specifications"`
	Collections    []string                     `json:"collections"`
	Price          PriceInput                   `json:"price"`
	SEO            entity.SEO                   `json:"seo"`
	IsActive       *bool                        `json:"isActive"`
	IsFeatured     bool                         `json:"isFeatured"`
	SortOrder      int                          `json:"sortOrder"`
}

func (in ProductInput) apply(p *entity.Product) {
	p.Name = strings.TrimSpace(in.Name)
	p.Description = strings.TrimSpace(in.Description)
	p.Story = strings.TrimSpace(in.Story)
	p.Images = in.Images
	p.Specifications = entity.ProductSpecifications{
		Materials: trimAll(in.Specifications.Materials),
		WeaveType: strings.TrimSpace(in.Specifications.WeaveType),
		Sizes:     trimAll(in.Specifications.Sizes),
		Origin:    strings.TrimSpace(in.Specifications.Origin),
		CraftTime: strings.TrimSpace(in.Specifications.CraftTime),
	}
	p.Collections = trimAll(in.Collections)
	p.Price = entity.ProductPrice{
		Amount:    in.Price.Amount,
		Currency:  strings.ToUpper(in.Price.Currency),
		OnRequest: in.Price.OnRequest || in.Price.Amount == 0,
	}
	if p.Price.Currency == "" {
		p.Price.Currency = entity.DefaultCurrency
	}
	p.SEO = entity.SEO{
		Title:       strings.TrimSpace(in.SEO.Title),
		Description: strings.TrimSpace(in.SEO.Description),
		Keywords:    trimAll(in.SEO.Keywords),
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	p.IsFeatured = in.IsFeatured
	p.SortOrder = in.SortOrder
}

func (uc *ProductUseCase) CreateProduct(ctx context.Context, input ProductInput) (*entity.Product, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	product := &entity.Product{IsActive: true}
	input.apply(product)
	if product.Name == "" {
		return nil, errors.Validation(map[string]string{"name": "Name is required"})
	}

	slug, err := uc.uniqueSlug(ctx, input.Slug, product.Name, "")
	if err != nil {
		return nil, err
	}
	product.Slug = slug

	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, cache.TagProducts)
	uc.log.Info("product created", "id", product.ID, "slug", product.Slug)

	return uc.normalized(product), nil
}

func (uc *ProductUseCase) UpdateProduct(ctx context.Context, id string, input ProductInput) (*entity.Product, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	product, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	before := product.StorageRefs()

	input.apply(&product)
	if product.Name == "" {
		return nil, errors.Validation(map[string]string{"name": "Name is required"})
	}
	slug, err := uc.uniqueSlug(ctx, input.Slug, product.Name, product.ID)
	if err != nil {
		return nil, err
	}
	product.Slug = slug

	if err := uc.productRepo.Update(ctx, &product); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, cache.TagProducts)
	uc.deleteFiles(ctx, orphaned(before, product.StorageRefs())...)

	return uc.normalized(&product), nil
}

// DeleteProduct removes the document and then its uploaded images.
func (uc *ProductUseCase) DeleteProduct(ctx context.Context, id string) error {
	if _, err := requireAdmin(ctx); err != nil {
		return err
	}

	product, err := uc.get(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.productRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidate(ctx, cache.TagProducts)
	uc.deleteFiles(ctx, product.StorageRefs()...)
	uc.log.Info("product deleted", "id", id)
	return nil
}

func (uc *ProductUseCase) SetActive(ctx context.Context, id string, active bool) (*entity.Product, error) {
	return uc.patch(ctx, id, func(p *entity.Product) { p.IsActive = active })
}

func (uc *ProductUseCase) SetFeatured(ctx context.Context, id string, featured bool) (*entity.Product, error) {
	return uc.patch(ctx, id, func(p *entity.Product) { p.IsFeatured = featured })
}

// Reorder assigns sortOrder by position in ids. Products not listed keep
// their current order.
func (uc *ProductUseCase) Reorder(ctx context.Context, ids []string) error {
	if _, err := requireAdmin(ctx); err != nil {
		return err
	}

	products := make([]entity.Product, 0, len(ids))
	for _, id := range ids {
		p, err := uc.get(ctx, id)
		if err != nil {
			return err
		}
		products = append(products, p)
	}
	for i := range products {
		products[i].SortOrder = i
		if err := uc.productRepo.Update(ctx, &products[i]); err != nil {
			return err
		}
	}
	uc.invalidate(ctx, cache.TagProducts)
	return nil
}

func (uc *ProductUseCase) patch(ctx context.Context, id string, change func(*entity.Product)) (*entity.Product, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	product, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	change(&product)
	if err := uc.productRepo.Update(ctx, &product); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, cache.TagProducts)
	return uc.normalized(&product), nil
}

func (uc *ProductUseCase) get(ctx context.Context, id string) (entity.Product, error) {
	r, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return entity.Product{}, err
	}
	return uc.transformer.Product(r), nil
}

// uniqueSlug derives a slug from requested or name and rejects one already
// used by another product.
func (uc *ProductUseCase) uniqueSlug(ctx context.Context, requested, name, selfID string) (string, error) {
	slug := utils.Slugify(requested)
	if slug == "" {
		slug = utils.Slugify(name)
	}
	if slug == "" {
		return "", errors.Validation(map[string]string{"slug": "Slug must contain letters or digits"})
	}

	existing, err := uc.productRepo.GetBySlug(ctx, slug)
	switch {
	case errors.Is(err, "NOT_FOUND"):
		return slug, nil
	case err != nil:
		return "", err
	case existing.ID != selfID:
		return "", errors.Conflict("Another product already uses the slug " + slug)
	}
	return slug, nil
}

// normalized returns what a reader will see for p once stored.
func (uc *ProductUseCase) normalized(p *entity.Product) *entity.Product {
	safe := uc.transformer.Product(raw.DecodeProduct(p.ID, transform.ProductDocument(*p)))
	return &safe
}
