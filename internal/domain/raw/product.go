package raw

type ProductImage struct {
	URL        *string
	Alt        *string
	StorageRef *string
	IsMain     *bool
	SortOrder  *int
}

type Specifications struct {
	Materials []string
	WeaveType *string
	Sizes     []string
	Origin    *string
	CraftTime *string
}

type Price struct {
	Amount    *float64
	Currency  *string
	OnRequest *bool
}

type Product struct {
	ID             string
	Name           *string
	Slug           *string
	Description    *string
	Story          *string
	Images         []ProductImage
	Specifications *Specifications
	Collections    []string
	Price          *Price
	SEO            *SEO
	IsActive       *bool
	IsFeatured     *bool
	SortOrder      *int
	CreatedAt      any
	UpdatedAt      any
}

// DecodeProduct reads a products document. Images may be stored as maps or
// as bare URLs, and legacy documents keep specifications at the top level.
func DecodeProduct(id string, doc Document) Product {
	p := Product{
		ID:          id,
		Name:        str(doc, "name", "title"),
		Slug:        str(doc, "slug"),
		Description: str(doc, "description"),
		Story:       str(doc, "story"),
		Images:      productImages(doc),
		Collections: strs(doc, "collections", "collectionIds"),
		SEO:         seo(doc),
		IsActive:    boolean(doc, "isActive", "active"),
		IsFeatured:  boolean(doc, "isFeatured", "featured"),
		SortOrder:   integer(doc, "sortOrder", "order"),
		CreatedAt:   timestamp(doc, "createdAt"),
		UpdatedAt:   timestamp(doc, "updatedAt"),
	}

	specs := object(doc, "specifications", "specs")
	if specs == nil {
		specs = doc
	}
	if s := decodeSpecifications(specs); s != nil {
		p.Specifications = s
	}

	p.Price = decodePrice(doc)
	return p
}

func decodeSpecifications(m Document) *Specifications {
	s := Specifications{
		Materials: strs(m, "materials", "material"),
		WeaveType: str(m, "weaveType", "weave"),
		Sizes:     strs(m, "sizes", "size"),
		Origin:    str(m, "origin"),
		CraftTime: str(m, "craftTime", "craftingTime"),
	}
	if s.Materials == nil && s.WeaveType == nil && s.Sizes == nil && s.Origin == nil && s.CraftTime == nil {
		return nil
	}
	return &s
}

func decodePrice(doc Document) *Price {
	if m := object(doc, "price"); m != nil {
		return &Price{
			Amount:    number(m, "amount", "value"),
			Currency:  str(m, "currency"),
			OnRequest: boolean(m, "onRequest", "priceOnRequest"),
		}
	}
	// legacy: price stored as a bare number
	if amount := number(doc, "price"); amount != nil {
		return &Price{Amount: amount}
	}
	return nil
}

func productImages(doc Document) []ProductImage {
	v, ok := first(doc, "images", "gallery")
	if !ok {
		if url := str(doc, "imageUrl", "image"); url != nil {
			return []ProductImage{{URL: url}}
		}
		return nil
	}
	xs, isList := list(v)
	if !isList {
		return nil
	}

	images := make([]ProductImage, 0, len(xs))
	for _, x := range xs {
		switch item := x.(type) {
		case string:
			url := item
			images = append(images, ProductImage{URL: &url})
		case map[string]any:
			images = append(images, ProductImage{
				URL:        str(item, "url", "src"),
				Alt:        str(item, "alt"),
				StorageRef: str(item, "storageRef", "storagePath", "path"),
				IsMain:     boolean(item, "isMain", "main"),
				SortOrder:  integer(item, "sortOrder", "order"),
			})
		}
	}
	return images
}
