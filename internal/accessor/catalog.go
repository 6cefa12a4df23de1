package accessor

import (
	"context"
	"fmt"
	"strconv"

	"rugstore/internal/domain/entity"
	"rugstore/internal/domain/repository"
	"rugstore/internal/domain/result"
	"rugstore/internal/infrastructure/cache"
	"rugstore/internal/transform"
	"rugstore/pkg/logger"
)

// Catalog reads products, collections, weave types and site content.
type Catalog struct {
	reader
	products    repository.ProductRepository
	collections repository.CollectionRepository
	weaveTypes  repository.WeaveTypeRepository
	content     repository.ContentRepository
	transformer *transform.Transformer
}

func NewCatalog(
	products repository.ProductRepository,
	collections repository.CollectionRepository,
	weaveTypes repository.WeaveTypeRepository,
	content repository.ContentRepository,
	transformer *transform.Transformer,
	c cache.Cache,
	log logger.Logger,
) *Catalog {
	return &Catalog{
		reader:      reader{cache: c, log: log.With("component", "catalog")},
		products:    products,
		collections: collections,
		weaveTypes:  weaveTypes,
		content:     content,
		transformer: transformer,
	}
}

func productsKey(f repository.ProductFilter) string {
	featured := "any"
	if f.Featured != nil {
		featured = strconv.FormatBool(*f.Featured)
	}
	return fmt.Sprintf("products:weave=%s:collection=%s:featured=%s:active=%t:limit=%d",
		f.WeaveType, f.Collection, featured, f.ActiveOnly, f.Limit)
}

// Products lists products matching filter. Every stored document yields a
// product; malformed ones are filled with fallbacks rather than dropped.
func (c *Catalog) Products(ctx context.Context, filter repository.ProductFilter) result.Result[[]entity.Product] {
	tags := []cache.Tag{cache.TagProducts}
	if filter.Featured != nil {
		tags = append(tags, cache.TagFeaturedProducts)
	}
	return load(ctx, &c.reader, query[[]entity.Product]{
		key:      productsKey(filter),
		tags:     tags,
		resource: "products",
		fetch: func(ctx context.Context) ([]entity.Product, error) {
			return c.listProducts(ctx, filter.Matches, filter.Limit)
		},
	})
}

func (c *Catalog) listProducts(ctx context.Context, match func(entity.Product) bool, limit int) ([]entity.Product, error) {
	raws, err := c.products.List(ctx)
	if err != nil {
		return nil, err
	}
	products := make([]entity.Product, 0, len(raws))
	for _, r := range raws {
		if p := c.transformer.Product(r); match(p) {
			products = append(products, p)
		}
	}
	bySortOrder(products,
		func(p entity.Product) int { return p.SortOrder },
		func(p entity.Product) string { return p.Name })
	return repository.Page(products, 0, limit), nil
}

func (c *Catalog) FeaturedProducts(ctx context.Context, limit int) result.Result[[]entity.Product] {
	featured := true
	return c.Products(ctx, repository.ProductFilter{Featured: &featured, ActiveOnly: true, Limit: limit})
}

// ProductBySlug returns an active product for the storefront.
func (c *Catalog) ProductBySlug(ctx context.Context, slug string) result.Result[entity.Product] {
	return load(ctx, &c.reader, query[entity.Product]{
		key:      "product:slug:" + slug,
		tags:     []cache.Tag{cache.TagProducts},
		resource: "Product",
		fetch: func(ctx context.Context) (entity.Product, error) {
			r, err := c.products.GetBySlug(ctx, slug)
			if err != nil {
				return entity.Product{}, err
			}
			p := c.transformer.Product(r)
			if !p.IsActive {
				return entity.Product{}, notFound("Product")
			}
			return p, nil
		},
	})
}

// ProductByID returns a product regardless of its active flag.
func (c *Catalog) ProductByID(ctx context.Context, id string) result.Result[entity.Product] {
	return load(ctx, &c.reader, query[entity.Product]{
		key:      "product:id:" + id,
		tags:     []cache.Tag{cache.TagProducts},
		resource: "Product",
		fetch: func(ctx context.Context) (entity.Product, error) {
			r, err := c.products.GetByID(ctx, id)
			if err != nil {
				return entity.Product{}, err
			}
			return c.transformer.Product(r), nil
		},
	})
}

// ProductsInCollection lists active products that name the collection or that
// the collection names.
func (c *Catalog) ProductsInCollection(ctx context.Context, collection entity.Collection) result.Result[[]entity.Product] {
	return load(ctx, &c.reader, query[[]entity.Product]{
		key:      "products:collection:" + collection.ID,
		tags:     []cache.Tag{cache.TagProducts, cache.TagCollections},
		resource: "products",
		fetch: func(ctx context.Context) ([]entity.Product, error) {
			return c.listProducts(ctx, func(p entity.Product) bool {
				if !p.IsActive {
					return false
				}
				return collection.HasProduct(p.ID) ||
					p.InCollection(collection.ID) ||
					(collection.Slug != "" && p.InCollection(collection.Slug))
			}, 0)
		},
	})
}

func (c *Catalog) Collections(ctx context.Context, filter repository.CollectionFilter) result.Result[[]entity.Collection] {
	return load(ctx, &c.reader, query[[]entity.Collection]{
		key:      fmt.Sprintf("collections:type=%s:active=%t", filter.Type, filter.ActiveOnly),
		tags:     []cache.Tag{cache.TagCollections},
		resource: "collections",
		fetch: func(ctx context.Context) ([]entity.Collection, error) {
			raws, err := c.collections.List(ctx)
			if err != nil {
				return nil, err
			}
			collections := make([]entity.Collection, 0, len(raws))
			for _, r := range raws {
				if col := c.transformer.Collection(r); filter.Matches(col) {
					collections = append(collections, col)
				}
			}
			bySortOrder(collections,
				func(col entity.Collection) int { return col.SortOrder },
				func(col entity.Collection) string { return col.Name })
			return collections, nil
		},
	})
}

// CollectionBySlug returns an active collection for the storefront.
func (c *Catalog) CollectionBySlug(ctx context.Context, slug string) result.Result[entity.Collection] {
	return load(ctx, &c.reader, query[entity.Collection]{
		key:      "collection:slug:" + slug,
		tags:     []cache.Tag{cache.TagCollections},
		resource: "Collection",
		fetch: func(ctx context.Context) (entity.Collection, error) {
			r, err := c.collections.GetBySlug(ctx, slug)
			if err != nil {
				return entity.Collection{}, err
			}
			col := c.transformer.Collection(r)
			if !col.IsActive {
				return entity.Collection{}, notFound("Collection")
			}
			return col, nil
		},
	})
}

func (c *Catalog) CollectionByID(ctx context.Context, id string) result.Result[entity.Collection] {
	return load(ctx, &c.reader, query[entity.Collection]{
		key:      "collection:id:" + id,
		tags:     []cache.Tag{cache.TagCollections},
		resource: "Collection",
		fetch: func(ctx context.Context) (entity.Collection, error) {
			r, err := c.collections.GetByID(ctx, id)
			if err != nil {
				return entity.Collection{}, err
			}
			return c.transformer.Collection(r), nil
		},
	})
}

func (c *Catalog) WeaveTypes(ctx context.Context, activeOnly bool) result.Result[[]entity.WeaveType] {
	return load(ctx, &c.reader, query[[]entity.WeaveType]{
		key:      "weave-types:active=" + strconv.FormatBool(activeOnly),
		tags:     []cache.Tag{cache.TagWeaveTypes},
		resource: "weave types",
		fetch: func(ctx context.Context) ([]entity.WeaveType, error) {
			raws, err := c.weaveTypes.List(ctx)
			if err != nil {
				return nil, err
			}
			weaveTypes := make([]entity.WeaveType, 0, len(raws))
			for _, r := range raws {
				if w := c.transformer.WeaveType(r); w.IsActive || !activeOnly {
					weaveTypes = append(weaveTypes, w)
				}
			}
			bySortOrder(weaveTypes,
				func(w entity.WeaveType) int { return w.SortOrder },
				func(w entity.WeaveType) string { return w.Name })
			return weaveTypes, nil
		},
	})
}

func (c *Catalog) WeaveTypeBySlug(ctx context.Context, slug string) result.Result[entity.WeaveType] {
	return load(ctx, &c.reader, query[entity.WeaveType]{
		key:      "weave-type:slug:" + slug,
		tags:     []cache.Tag{cache.TagWeaveTypes},
		resource: "Weave type",
		fetch: func(ctx context.Context) (entity.WeaveType, error) {
			r, err := c.weaveTypes.GetBySlug(ctx, slug)
			if err != nil {
				return entity.WeaveType{}, err
			}
			w := c.transformer.WeaveType(r)
			if !w.IsActive {
				return entity.WeaveType{}, notFound("Weave type")
			}
			return w, nil
		},
	})
}

func (c *Catalog) WeaveTypeByID(ctx context.Context, id string) result.Result[entity.WeaveType] {
	return load(ctx, &c.reader, query[entity.WeaveType]{
		key:      "weave-type:id:" + id,
		tags:     []cache.Tag{cache.TagWeaveTypes},
		resource: "Weave type",
		fetch: func(ctx context.Context) (entity.WeaveType, error) {
			r, err := c.weaveTypes.GetByID(ctx, id)
			if err != nil {
				return entity.WeaveType{}, err
			}
			return c.transformer.WeaveType(r), nil
		},
	})
}

func (c *Catalog) HomepageContent(ctx context.Context) result.Result[entity.HomepageContent] {
	return load(ctx, &c.reader, query[entity.HomepageContent]{
		key:      "pages:homepage",
		tags:     []cache.Tag{cache.TagHomepage},
		resource: "homepage content",
		fetch: func(ctx context.Context) (entity.HomepageContent, error) {
			r, err := c.content.GetHomepage(ctx)
			if err != nil {
				return entity.HomepageContent{}, err
			}
			return c.transformer.Homepage(r), nil
		},
	})
}

func (c *Catalog) Settings(ctx context.Context) result.Result[entity.SiteSettings] {
	return load(ctx, &c.reader, query[entity.SiteSettings]{
		key:      "settings:site",
		tags:     []cache.Tag{cache.TagSettings},
		resource: "site settings",
		fetch: func(ctx context.Context) (entity.SiteSettings, error) {
			r, err := c.content.GetSettings(ctx)
			if err != nil {
				return entity.SiteSettings{}, err
			}
			return c.transformer.Settings(r), nil
		},
	})
}
