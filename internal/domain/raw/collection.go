package raw

type Collection struct {
	ID          string
	Name        *string
	Slug        *string
	Description *string
	Type        *string
	HeroImage   *Image
	SEO         *SEO
	IsActive    *bool
	SortOrder   *int
	ProductIDs  []string
	CreatedAt   any
	UpdatedAt   any
}

func DecodeCollection(id string, doc Document) Collection {
	return Collection{
		ID:          id,
		Name:        str(doc, "name", "title"),
		Slug:        str(doc, "slug"),
		Description: str(doc, "description"),
		Type:        str(doc, "type", "category"),
		HeroImage:   image(doc, "heroImage", "image", "coverImage"),
		SEO:         seo(doc),
		IsActive:    boolean(doc, "isActive", "active"),
		SortOrder:   integer(doc, "sortOrder", "order"),
		ProductIDs:  strs(doc, "productIds", "products"),
		CreatedAt:   timestamp(doc, "createdAt"),
		UpdatedAt:   timestamp(doc, "updatedAt"),
	}
}

type WeaveType struct {
	ID          string
	Name        *string
	Slug        *string
	Description *string
	Image       *Image
	SortOrder   *int
	IsActive    *bool
	CreatedAt   any
	UpdatedAt   any
}

func DecodeWeaveType(id string, doc Document) WeaveType {
	return WeaveType{
		ID:          id,
		Name:        str(doc, "name", "title"),
		Slug:        str(doc, "slug"),
		Description: str(doc, "description"),
		Image:       image(doc, "image", "imageUrl"),
		SortOrder:   integer(doc, "sortOrder", "order"),
		IsActive:    boolean(doc, "isActive", "active"),
		CreatedAt:   timestamp(doc, "createdAt"),
		UpdatedAt:   timestamp(doc, "updatedAt"),
	}
}
