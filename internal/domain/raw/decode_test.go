package raw

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeProductFirestoreShape(t *testing.T) {
	created := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	doc := Document{
		"name":        "Heritage Medallion",
		"slug":        "heritage-medallion",
		"isActive":    true,
		"isFeatured":  false,
		"sortOrder":   int64(3),
		"collections": []any{"living-room", 42, "classic"},
		"images": []any{
			map[string]any{"url": "https://cdn/a.jpg", "alt": "front", "isMain": true, "sortOrder": int64(0)},
			"https://cdn/b.jpg",
			17,
		},
		"specifications": map[string]any{
			"materials": []any{"wool", "silk"},
			"weaveType": "hand-knotted",
		},
		"price":     map[string]any{"amount": 4200.0, "currency": "GBP"},
		"createdAt": created,
	}

	p := DecodeProduct("p1", doc)

	assert.Equal(t, "p1", p.ID)
	require.NotNil(t, p.Name)
	assert.Equal(t, "Heritage Medallion", *p.Name)
	require.NotNil(t, p.SortOrder)
	assert.Equal(t, 3, *p.SortOrder)
	assert.Equal(t, []string{"living-room", "classic"}, p.Collections)

	require.Len(t, p.Images, 2)
	assert.Equal(t, "https://cdn/a.jpg", *p.Images[0].URL)
	assert.True(t, *p.Images[0].IsMain)
	assert.Equal(t, "https://cdn/b.jpg", *p.Images[1].URL)
	assert.Nil(t, p.Images[1].Alt)

	require.NotNil(t, p.Specifications)
	assert.Equal(t, []string{"wool", "silk"}, p.Specifications.Materials)
	assert.Nil(t, p.Specifications.Sizes)
	assert.Equal(t, 4200.0, *p.Price.Amount)
	assert.Nil(t, p.Price.OnRequest)
	assert.Equal(t, created, p.CreatedAt)
	assert.Nil(t, p.UpdatedAt)
	assert.Nil(t, p.Story)
}

func TestDecodeProductLegacyShape(t *testing.T) {
	doc := Document{
		"title":         "Old Kilim",
		"imageUrl":      "https://cdn/kilim.jpg",
		"price":         "950",
		"materials":     "wool, cotton",
		"collectionIds": []string{"vintage"},
		"active":        "true",
		"name":          nil,
	}

	p := DecodeProduct("legacy", doc)

	assert.Equal(t, "Old Kilim", *p.Name)
	require.Len(t, p.Images, 1)
	assert.Equal(t, "https://cdn/kilim.jpg", *p.Images[0].URL)
	assert.Equal(t, 950.0, *p.Price.Amount)
	assert.Equal(t, []string{"wool", "cotton"}, p.Specifications.Materials)
	assert.Equal(t, []string{"vintage"}, p.Collections)
	assert.True(t, *p.IsActive)
}

func TestDecodeProductWrongTypesAreAbsent(t *testing.T) {
	doc := Document{
		"name":      12,
		"images":    "not-a-list",
		"sortOrder": "first",
		"isActive":  "maybe",
	}

	p := DecodeProduct("bad", doc)

	assert.Nil(t, p.Name)
	assert.Nil(t, p.Images)
	assert.Nil(t, p.SortOrder)
	assert.Nil(t, p.IsActive)
	assert.Nil(t, p.Specifications)
	assert.Nil(t, p.Price)
}

func TestDecodeCollectionHeroImageShapes(t *testing.T) {
	asString := DecodeCollection("c1", Document{"heroImage": "/img/hero.jpg", "type": "Space"})
	require.NotNil(t, asString.HeroImage)
	assert.Equal(t, "/img/hero.jpg", *asString.HeroImage.URL)
	assert.Equal(t, "Space", *asString.Type)

	asMap := DecodeCollection("c2", Document{"heroImage": map[string]any{"url": "/img/x.jpg", "storageRef": "collections/x.jpg"}})
	assert.Equal(t, "collections/x.jpg", *asMap.HeroImage.StorageRef)

	absent := DecodeCollection("c3", Document{"heroImage": nil})
	assert.Nil(t, absent.HeroImage)
	assert.Nil(t, absent.ProductIDs)
}

func TestDecodeLeadNotesAndCustomization(t *testing.T) {
	doc := Document{
		"type":  "customize",
		"notes": "called back on Monday",
		"customization": map[string]any{
			"size":      "200x300",
			"materials": []any{"wool"},
			"moodboard": []any{
				map[string]any{"name": "ref.png", "url": "https://cdn/ref.png", "storageRef": "leads/ref.png", "size": int64(2048)},
			},
		},
	}

	l := DecodeLead("l1", doc)

	require.Len(t, l.Notes, 1)
	assert.Equal(t, "called back on Monday", *l.Notes[0].Text)
	require.NotNil(t, l.Customization)
	assert.Equal(t, "200x300", *l.Customization.PreferredSize)
	require.Len(t, l.Customization.Moodboard, 1)
	assert.Equal(t, 2048, *l.Customization.Moodboard[0].Size)
}

func TestDecodeHomepageAndSettings(t *testing.T) {
	h := DecodeHomepage(Document{
		"hero":                map[string]any{"heading": "Woven by hand", "backgroundImage": "/hero.jpg"},
		"featuredCollections": []any{"c1", "c2"},
	})
	assert.Equal(t, "Woven by hand", *h.Hero.Title)
	assert.Equal(t, "/hero.jpg", *h.Hero.Image.URL)
	assert.Nil(t, h.Story)
	assert.Equal(t, []string{"c1", "c2"}, h.FeaturedCollectionIDs)

	s := DecodeSettings(Document{"email": "hello@rugs.example", "socialLinks": map[string]any{"instagram": "@rugs"}})
	assert.Equal(t, "hello@rugs.example", *s.ContactEmail)
	assert.Equal(t, "@rugs", *s.Social.Instagram)
}
