package entity

import "strings"

type CollectionType string

const (
	CollectionTypeStyle CollectionType = "style"
	CollectionTypeSpace CollectionType = "space"
)

func (t CollectionType) Valid() bool {
	return t == CollectionTypeStyle || t == CollectionTypeSpace
}

// ParseCollectionType accepts any casing; ok is false for unknown values.
func ParseCollectionType(s string) (CollectionType, bool) {
	t := CollectionType(strings.ToLower(strings.TrimSpace(s)))
	return t, t.Valid()
}

// Image is a single standalone image (collection hero, weave type, page sections).
type Image struct {
	URL        string `json:"url"`
	Alt        string `json:"alt"`
	StorageRef string `json:"storageRef"`
}

type Collection struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Slug        string         `json:"slug"`
	Description string         `json:"description"`
	Type        CollectionType `json:"type"`
	HeroImage   Image          `json:"heroImage"`
	SEO         SEO            `json:"seo"`
	IsActive    bool           `json:"isActive"`
	SortOrder   int            `json:"sortOrder"`
	ProductIDs  []string       `json:"productIds"`
	CreatedAt   string         `json:"createdAt"`
	UpdatedAt   string         `json:"updatedAt"`
}

func (c Collection) HasProduct(productID string) bool {
	for _, id := range c.ProductIDs {
		if id == productID {
			return true
		}
	}
	return false
}
