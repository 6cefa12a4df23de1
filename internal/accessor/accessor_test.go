package accessor

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapter "rugstore/internal/adapter/repository"
	"rugstore/internal/domain/entity"
	"rugstore/internal/domain/raw"
	"rugstore/internal/domain/repository"
	"rugstore/internal/domain/result"
	"rugstore/internal/infrastructure/cache"
	"rugstore/internal/transform"
	"rugstore/pkg/errors"
	"rugstore/pkg/logger"
)

var fixedNow = time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	stores  *adapter.MemoryStores
	repos   adapter.Repositories
	catalog *Catalog
	leads   *Leads
}

func newFixture(t *testing.T, c cache.Cache) *fixture {
	t.Helper()
	stores := adapter.NewMemoryStores()
	repos := adapter.New(stores)
	tr := transform.NewWithClock(func() time.Time { return fixedNow })
	return &fixture{
		stores:  stores,
		repos:   repos,
		catalog: NewCatalog(repos.Products, repos.Collections, repos.WeaveTypes, repos.Content, tr, c, logger.Nop()),
		leads:   NewLeads(repos.Leads, tr, logger.Nop()),
	}
}

func exactlyOneState[T any](t *testing.T, r result.Result[T]) {
	t.Helper()
	states := 0
	for _, s := range []bool{r.IsData(), r.IsError(), r.IsLoading()} {
		if s {
			states++
		}
	}
	assert.Equal(t, 1, states)
}

func TestEmptyCollectionQueryIsData(t *testing.T) {
	f := newFixture(t, cache.Nop())
	f.stores.Put("collections", "c1", raw.Document{"name": "Vintage", "type": "style"})

	r := f.catalog.Collections(context.Background(), repository.CollectionFilter{Type: entity.CollectionTypeSpace})

	exactlyOneState(t, r)
	require.True(t, r.IsData())
	collections, _ := r.Value()
	assert.NotNil(t, collections)
	assert.Empty(t, collections)
}

func TestMalformedProductsAreIncludedWithFallbacks(t *testing.T) {
	f := newFixture(t, cache.Nop())
	f.stores.Put("products", "good", raw.Document{
		"name": "Heritage Medallion", "images": []any{"/h.jpg"}, "sortOrder": int64(1),
	})
	f.stores.Put("products", "broken", raw.Document{
		"name": 42, "images": "nope", "createdAt": "yesterday", "sortOrder": int64(0),
	})

	r := f.catalog.Products(context.Background(), repository.ProductFilter{})

	products, ok := r.Value()
	require.True(t, ok)
	require.Len(t, products, 2)
	assert.Equal(t, "broken", products[0].ID)
	assert.Equal(t, []entity.ProductImage{entity.FallbackProductImage}, products[0].Images)
	assert.Equal(t, "2025-05-01T12:00:00.000Z", products[0].CreatedAt)
	assert.Equal(t, "Heritage Medallion", products[1].Name)
}

func TestProductFilters(t *testing.T) {
	f := newFixture(t, cache.Nop())
	f.stores.Put("products", "a", raw.Document{"name": "A", "isFeatured": true, "specifications": map[string]any{"weaveType": "flatweave"}})
	f.stores.Put("products", "b", raw.Document{"name": "B", "collections": []any{"classic"}})
	f.stores.Put("products", "c", raw.Document{"name": "C", "isActive": false, "isFeatured": true})
	ctx := context.Background()

	featured, _ := f.catalog.FeaturedProducts(ctx, 10).Value()
	require.Len(t, featured, 1)
	assert.Equal(t, "a", featured[0].ID)

	flat, _ := f.catalog.Products(ctx, repository.ProductFilter{WeaveType: "Flatweave"}).Value()
	require.Len(t, flat, 1)

	inClassic, _ := f.catalog.Products(ctx, repository.ProductFilter{Collection: "classic", ActiveOnly: true}).Value()
	require.Len(t, inClassic, 1)
	assert.Equal(t, "b", inClassic[0].ID)

	limited, _ := f.catalog.Products(ctx, repository.ProductFilter{Limit: 2}).Value()
	assert.Len(t, limited, 2)
}

func TestStoreFailureBecomesErrorResult(t *testing.T) {
	f := newFixture(t, cache.Nop())
	f.stores.FailWith("products", errors.Unavailable("deadline exceeded", nil))

	r := f.catalog.Products(context.Background(), repository.ProductFilter{})

	exactlyOneState(t, r)
	require.True(t, r.IsError())
	assert.Equal(t, "UNAVAILABLE", r.Code())
	assert.Equal(t, "Unable to load products right now", r.Message())
}

func TestProductBySlug(t *testing.T) {
	f := newFixture(t, cache.Nop())
	f.stores.Put("products", "p1", raw.Document{"name": "Azure", "slug": "azure"})
	f.stores.Put("products", "p2", raw.Document{"name": "Hidden", "slug": "hidden", "isActive": false})
	ctx := context.Background()

	found := f.catalog.ProductBySlug(ctx, "azure")
	p, ok := found.Value()
	require.True(t, ok)
	assert.Equal(t, "p1", p.ID)

	missing := f.catalog.ProductBySlug(ctx, "nope")
	assert.True(t, missing.IsError())
	assert.Equal(t, "NOT_FOUND", missing.Code())

	hidden := f.catalog.ProductBySlug(ctx, "hidden")
	assert.Equal(t, "NOT_FOUND", hidden.Code())

	byID := f.catalog.ProductByID(ctx, "p2")
	assert.True(t, byID.IsData())
}

func TestProductsInCollectionMatchesBothDirections(t *testing.T) {
	f := newFixture(t, cache.Nop())
	f.stores.Put("products", "listed", raw.Document{"name": "Listed"})
	f.stores.Put("products", "tagged", raw.Document{"name": "Tagged", "collections": []any{"coastal"}})
	f.stores.Put("products", "other", raw.Document{"name": "Other"})

	collection := entity.Collection{ID: "c1", Slug: "coastal", ProductIDs: []string{"listed"}}
	products, ok := f.catalog.ProductsInCollection(context.Background(), collection).Value()

	require.True(t, ok)
	require.Len(t, products, 2)
	assert.Equal(t, "listed", products[0].ID)
	assert.Equal(t, "tagged", products[1].ID)
}

func TestCollectionBySlugHeroFallback(t *testing.T) {
	f := newFixture(t, cache.Nop())
	f.stores.Put("collections", "c1", raw.Document{"name": "Nursery", "slug": "nursery", "type": "space", "heroImage": nil})

	c, ok := f.catalog.CollectionBySlug(context.Background(), "nursery").Value()

	require.True(t, ok)
	assert.Equal(t, entity.FallbackCollectionImage, c.HeroImage)
	assert.Equal(t, entity.CollectionTypeSpace, c.Type)
}

func TestWeaveTypesActiveOnly(t *testing.T) {
	f := newFixture(t, cache.Nop())
	f.stores.Put("weave-types", "w1", raw.Document{"name": "Soumak", "sortOrder": int64(2)})
	f.stores.Put("weave-types", "w2", raw.Document{"name": "Flatweave", "sortOrder": int64(1)})
	f.stores.Put("weave-types", "w3", raw.Document{"name": "Retired", "slug": "retired", "isActive": false})
	ctx := context.Background()

	active, _ := f.catalog.WeaveTypes(ctx, true).Value()
	require.Len(t, active, 2)
	assert.Equal(t, "Flatweave", active[0].Name)

	all, _ := f.catalog.WeaveTypes(ctx, false).Value()
	assert.Len(t, all, 3)

	bySlug := f.catalog.WeaveTypeBySlug(ctx, "missing")
	assert.Equal(t, "NOT_FOUND", bySlug.Code())

	retired := f.catalog.WeaveTypeBySlug(ctx, "retired")
	assert.Equal(t, "NOT_FOUND", retired.Code())
}

func TestHomepageSectionsFailIndependently(t *testing.T) {
	f := newFixture(t, cache.Nop())
	f.stores.Put("pages", "homepage", raw.Document{
		"hero":                  map[string]any{"title": "Woven by hand"},
		"featuredCollectionIds": []any{"c2", "missing", "c1"},
	})
	f.stores.Put("collections", "c1", raw.Document{"name": "Classic"})
	f.stores.Put("collections", "c2", raw.Document{"name": "Modern"})
	f.stores.FailWith("products", errors.Unavailable("offline", nil))

	h := f.catalog.Homepage(context.Background())

	content, ok := h.Content.Value()
	require.True(t, ok)
	assert.Equal(t, "Woven by hand", content.Hero.Title)
	assert.Equal(t, entity.FallbackHeroImage, content.Hero.Image)

	featured, ok := h.FeaturedCollections.Value()
	require.True(t, ok)
	require.Len(t, featured, 2)
	assert.Equal(t, "c2", featured[0].ID)
	assert.Equal(t, "c1", featured[1].ID)

	assert.True(t, h.FeaturedProducts.IsError())
	assert.True(t, h.WeaveTypes.IsData())
	assert.True(t, h.Settings.IsData())
}

func TestPickCollectionsWithoutConfiguredIDs(t *testing.T) {
	all := []entity.Collection{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	assert.Equal(t, all[:2], pickCollections(all, nil, 2))
	assert.Empty(t, pickCollections(all, []string{"z"}, 2))
}

func TestCachedReadsAndInvalidation(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { client.Close() })
	c := cache.NewRedis(client, "test:")

	f := newFixture(t, c)
	ctx := context.Background()
	f.stores.Put("products", "p1", raw.Document{"name": "First", "isFeatured": true})

	first, _ := f.catalog.FeaturedProducts(ctx, 4).Value()
	require.Len(t, first, 1)

	f.stores.Put("products", "p2", raw.Document{"name": "Second", "isFeatured": true})
	cached, _ := f.catalog.FeaturedProducts(ctx, 4).Value()
	assert.Len(t, cached, 1)
	assert.Equal(t, uint64(1), c.Stats().Hits)

	require.NoError(t, c.Invalidate(ctx, cache.TagProducts))
	fresh, _ := f.catalog.FeaturedProducts(ctx, 4).Value()
	assert.Len(t, fresh, 2)
}

func TestLeadsNewestFirstWithPaging(t *testing.T) {
	f := newFixture(t, cache.Nop())
	f.stores.Put("leads", "old", raw.Document{"name": "Old", "createdAt": time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "status": "closed"})
	f.stores.Put("leads", "mid", raw.Document{"name": "Mid", "createdAt": time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)})
	f.stores.Put("leads", "new", raw.Document{"name": "New", "createdAt": time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)})
	ctx := context.Background()

	page, ok := f.leads.List(ctx, repository.LeadFilter{Limit: 2}).Value()
	require.True(t, ok)
	assert.Equal(t, 3, page.Total)
	require.Len(t, page.Leads, 2)
	assert.Equal(t, "new", page.Leads[0].ID)
	assert.Equal(t, "mid", page.Leads[1].ID)

	closed, _ := f.leads.List(ctx, repository.LeadFilter{Status: entity.LeadStatusClosed}).Value()
	assert.Equal(t, 1, closed.Total)

	assert.Equal(t, "NOT_FOUND", f.leads.ByID(ctx, "ghost").Code())
}
