package accessor

import (
	"context"

	"golang.org/x/sync/errgroup"

	"rugstore/internal/domain/entity"
	"rugstore/internal/domain/repository"
	"rugstore/internal/domain/result"
)

const (
	homepageFeaturedProducts    = 8
	homepageFeaturedCollections = 6
)

// Homepage holds one result per section so a failing section does not take
// the page down.
type Homepage struct {
	Content             result.Result[entity.HomepageContent] `json:"content"`
	FeaturedCollections result.Result[[]entity.Collection]    `json:"featuredCollections"`
	FeaturedProducts    result.Result[[]entity.Product]       `json:"featuredProducts"`
	WeaveTypes          result.Result[[]entity.WeaveType]     `json:"weaveTypes"`
	Settings            result.Result[entity.SiteSettings]    `json:"settings"`
}

// Homepage loads every section concurrently.
func (c *Catalog) Homepage(ctx context.Context) Homepage {
	var (
		h           Homepage
		collections result.Result[[]entity.Collection]
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		h.Content = c.HomepageContent(gctx)
		return nil
	})
	g.Go(func() error {
		collections = c.Collections(gctx, repository.CollectionFilter{ActiveOnly: true})
		return nil
	})
	g.Go(func() error {
		h.FeaturedProducts = c.FeaturedProducts(gctx, homepageFeaturedProducts)
		return nil
	})
	g.Go(func() error {
		h.WeaveTypes = c.WeaveTypes(gctx, true)
		return nil
	})
	g.Go(func() error {
		h.Settings = c.Settings(gctx)
		return nil
	})
	// the goroutines report through results, never through the group
	_ = g.Wait()

	var featuredIDs []string
	if content, ok := h.Content.Value(); ok {
		featuredIDs = content.FeaturedCollectionIDs
	}
	h.FeaturedCollections = result.Map(collections, func(all []entity.Collection) []entity.Collection {
		return pickCollections(all, featuredIDs, homepageFeaturedCollections)
	})
	return h
}

// pickCollections returns the collections named by ids in that order, or the
// first limit collections when no ids are configured.
func pickCollections(all []entity.Collection, ids []string, limit int) []entity.Collection {
	if len(ids) == 0 {
		return repository.Page(all, 0, limit)
	}
	byID := make(map[string]entity.Collection, len(all))
	for _, col := range all {
		byID[col.ID] = col
	}
	picked := make([]entity.Collection, 0, len(ids))
	for _, id := range ids {
		if col, ok := byID[id]; ok {
			picked = append(picked, col)
		}
	}
	return picked
}
