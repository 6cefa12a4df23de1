package entity

// ProductImage is one entry of a product gallery. SortOrder is advisory;
// galleries are rendered in stored order.
type ProductImage struct {
	URL        string `json:"url"`
	Alt        string `json:"alt"`
	StorageRef string `json:"storageRef"`
	IsMain     bool   `json:"isMain"`
	SortOrder  int    `json:"sortOrder"`
}

type ProductSpecifications struct {
	Materials []string `json:"materials"`
	WeaveType string   `json:"weaveType"`
	Sizes     []string `json:"sizes"`
	Origin    string   `json:"origin"`
	CraftTime string   `json:"craftTime"`
}

// ProductPrice carries a derived DisplayText so every client renders the
// same label.
type ProductPrice struct {
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	OnRequest   bool    `json:"onRequest"`
	DisplayText string  `json:"displayText"`
}

type SEO struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
}

// Product is the safe view of a products document: every nested value is
// populated, Images is never empty and timestamps are ISO-8601 strings.
type Product struct {
	ID             string                `json:"id"`
	Name           string                `json:"name"`
	Slug           string                `json:"slug"`
	Description    string                `json:"description"`
	Story          string                `json:"story"`
	Images         []ProductImage        `json:"images"`
	Specifications ProductSpecifications `json:"specifications"`
	Collections    []string              `json:"collections"`
	Price          ProductPrice          `json:"price"`
	SEO            SEO                   `json:"seo"`
	IsActive       bool                  `json:"isActive"`
	IsFeatured     bool                  `json:"isFeatured"`
	SortOrder      int                   `json:"sortOrder"`
	CreatedAt      string                `json:"createdAt"`
	UpdatedAt      string                `json:"updatedAt"`
}

// MainImage returns the image flagged as main, or the first one.
func (p Product) MainImage() ProductImage {
	for _, img := range p.Images {
		if img.IsMain {
			return img
		}
	}
	if len(p.Images) == 0 {
		return FallbackProductImage
	}
	return p.Images[0]
}

// StorageRefs lists the storage references of uploaded gallery images.
func (p Product) StorageRefs() []string {
	var refs []string
	for _, img := range p.Images {
		if img.StorageRef != "" {
			refs = append(refs, img.StorageRef)
		}
	}
	return refs
}

func (p Product) InCollection(collectionID string) bool {
	for _, id := range p.Collections {
		if id == collectionID {
			return true
		}
	}
	return false
}
