package entity

// Fallback values substituted by the transformers when a document is missing
// display-critical data. They are constants in spirit: never mutate them.
//
// The product placeholder is an inline SVG so it renders without a fetch.
var (
	FallbackProductImage = ProductImage{
		URL:       fallbackProductImageURL,
		Alt:       "Rug image coming soon",
		IsMain:    true,
		SortOrder: 0,
	}

	FallbackCollectionImage = Image{
		URL: "/images/placeholders/collection.jpg",
		Alt: "Collection image coming soon",
	}

	FallbackWeaveTypeImage = Image{
		URL: "/images/placeholders/weave-type.jpg",
		Alt: "Weave image coming soon",
	}

	FallbackHeroImage = Image{
		URL: "/images/placeholders/hero.jpg",
		Alt: "Handmade rugs",
	}
)

const (
	FallbackVersion = "2"

	DefaultDescription = "Handcrafted by master weavers. Contact us for details about this piece."
	DefaultCurrency    = "GBP"

	fallbackProductImageURL = "data:image/svg+xml;base64," +
		"PHN2ZyB4bWxucz0iaHR0cDovL3d3dy53My5vcmcvMjAwMC9zdmciIHdpZHRoPSI4MDAiIGhlaWdodD0iMTAwMCIgdmlld0JveD0iMCAwIDgw" +
		"MCAxMDAwIj48cmVjdCB3aWR0aD0iODAwIiBoZWlnaHQ9IjEwMDAiIGZpbGw9IiNFREU2REIiLz48cmVjdCB4PSIxMjAiIHk9IjE1MCIgd2lk" +
		"dGg9IjU2MCIgaGVpZ2h0PSI3MDAiIGZpbGw9Im5vbmUiIHN0cm9rZT0iI0I5QTg4RiIgc3Ryb2tlLXdpZHRoPSI2Ii8+PHRleHQgeD0iNDAw" +
		"IiB5PSI1MTAiIGZvbnQtZmFtaWx5PSJzZXJpZiIgZm9udC1zaXplPSIzNiIgZmlsbD0iIzhBN0E2MyIgdGV4dC1hbmNob3I9Im1pZGRsZSI+" +
		"SW1hZ2UgY29taW5nIHNvb248L3RleHQ+PC9zdmc+"
)
