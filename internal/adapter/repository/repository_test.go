package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rugstore/internal/domain/entity"
	"rugstore/internal/domain/raw"
	"rugstore/internal/transform"
	"rugstore/pkg/errors"
)

func TestProductRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	stores := NewMemoryStores()
	repo := NewProductRepository(stores)
	tr := transform.New()

	product := &entity.Product{
		Name:        "Heritage Medallion",
		Slug:        "heritage-medallion",
		Description: "Hand-knotted wool",
		Images:      []entity.ProductImage{{URL: "/p/1.jpg", Alt: "front", IsMain: true}},
		Collections: []string{"classic"},
		Price:       entity.ProductPrice{Amount: 4200, Currency: "GBP"},
		IsActive:    true,
	}
	require.NoError(t, repo.Create(ctx, product))
	require.NotEmpty(t, product.ID)
	require.NotEmpty(t, product.CreatedAt)

	byID, err := repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	got := tr.Product(byID)
	assert.Equal(t, product.Name, got.Name)
	assert.Equal(t, product.Images, got.Images)
	assert.Equal(t, product.CreatedAt, got.CreatedAt)
	assert.Equal(t, "£4,200", got.Price.DisplayText)

	bySlug, err := repo.GetBySlug(ctx, "heritage-medallion")
	require.NoError(t, err)
	assert.Equal(t, product.ID, bySlug.ID)

	product.Collections = append(product.Collections, "living-room")
	require.NoError(t, repo.Update(ctx, product))
	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, []string{"classic", "living-room"}, all[0].Collections)

	require.NoError(t, repo.Delete(ctx, product.ID))
	_, err = repo.GetByID(ctx, product.ID)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestStoredDocumentsDoNotAliasCallers(t *testing.T) {
	ctx := context.Background()
	stores := NewMemoryStores()
	repo := NewCollectionRepository(stores)

	c := &entity.Collection{Name: "Coastal", ProductIDs: []string{"p1"}}
	require.NoError(t, repo.Create(ctx, c))
	c.ProductIDs[0] = "mutated"

	stored, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, stored.ProductIDs)
}

func TestLegacyDocumentsAreReadable(t *testing.T) {
	ctx := context.Background()
	stores := NewMemoryStores()
	stores.Put(productsCollection, "legacy", raw.Document{
		"title":    "Old Kilim",
		"imageUrl": "/kilim.jpg",
		"price":    "950",
	})

	p, err := NewProductRepository(stores).GetByID(ctx, "legacy")
	require.NoError(t, err)
	assert.Equal(t, "Old Kilim", *p.Name)
	require.Len(t, p.Images, 1)
}

func TestCollectionSeedKeepsIDsAcrossBatches(t *testing.T) {
	ctx := context.Background()
	stores := NewMemoryStores()
	repo := NewCollectionRepository(stores)

	seed := make([]*entity.Collection, maxBatchWrites+20)
	for i := range seed {
		seed[i] = &entity.Collection{Name: fmt.Sprintf("C%d", i), Slug: fmt.Sprintf("c-%d", i)}
	}
	seed[0].ID = "fixed"

	require.NoError(t, repo.Seed(ctx, seed))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, len(seed))
	_, ok := stores.Raw(collectionsCollection, "fixed")
	assert.True(t, ok)
}

func TestContentMissingDocumentsDecodeEmpty(t *testing.T) {
	ctx := context.Background()
	repo := NewContentRepository(NewMemoryStores())

	home, err := repo.GetHomepage(ctx)
	require.NoError(t, err)
	assert.Nil(t, home.Hero)

	settings, err := repo.GetSettings(ctx)
	require.NoError(t, err)
	assert.Nil(t, settings.CompanyName)

	require.NoError(t, repo.SaveSettings(ctx, &entity.SiteSettings{CompanyName: "Loom"}))
	settings, err = repo.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Loom", *settings.CompanyName)
}

func TestStampKeepsCreatedAt(t *testing.T) {
	previous := timeNow
	defer func() { timeNow = previous }()
	timeNow = func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }

	created, updated := "2024-01-01T00:00:00.000Z", ""
	stamp(&created, &updated)
	assert.Equal(t, "2024-01-01T00:00:00.000Z", created)
	assert.Equal(t, "2025-06-01T00:00:00.000Z", updated)

	created = "garbage"
	stamp(&created, &updated)
	assert.Equal(t, "2025-06-01T00:00:00.000Z", created)
}

func TestFailingStoreSurfacesError(t *testing.T) {
	stores := NewMemoryStores()
	stores.FailWith(leadsCollection, errors.Unavailable("store offline", nil))

	_, err := NewLeadRepository(stores).List(context.Background())
	assert.True(t, errors.Is(err, "UNAVAILABLE"))
}
