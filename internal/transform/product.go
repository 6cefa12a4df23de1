package transform

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"rugstore/internal/domain/entity"
	"rugstore/internal/domain/raw"
)

const priceOnRequestText = "Price on request"

var currencySymbols = map[string]string{
	"GBP": "£",
	"EUR": "€",
	"USD": "$",
}

// Product maps a raw products document to its safe form. An empty or missing
// gallery becomes a single placeholder image; a present gallery is kept as is.
func (t *Transformer) Product(r raw.Product) entity.Product {
	return entity.Product{
		ID:             r.ID,
		Name:           value(r.Name),
		Slug:           value(r.Slug),
		Description:    valueOr(r.Description, entity.DefaultDescription),
		Story:          value(r.Story),
		Images:         productImages(r.Images),
		Specifications: specifications(r.Specifications),
		Collections:    nonNil(r.Collections),
		Price:          price(r.Price),
		SEO:            seo(r.SEO),
		IsActive:       flag(r.IsActive, true),
		IsFeatured:     flag(r.IsFeatured, false),
		SortOrder:      intValue(r.SortOrder),
		CreatedAt:      t.Timestamp(r.CreatedAt),
		UpdatedAt:      t.Timestamp(r.UpdatedAt),
	}
}

func productImages(rs []raw.ProductImage) []entity.ProductImage {
	if len(rs) == 0 {
		return []entity.ProductImage{entity.FallbackProductImage}
	}
	images := make([]entity.ProductImage, len(rs))
	for i, r := range rs {
		images[i] = entity.ProductImage{
			URL:        valueOr(r.URL, entity.FallbackProductImage.URL),
			Alt:        valueOr(r.Alt, entity.FallbackProductImage.Alt),
			StorageRef: value(r.StorageRef),
			IsMain:     flag(r.IsMain, false),
			SortOrder:  intValue(r.SortOrder),
		}
	}
	return images
}

func specifications(r *raw.Specifications) entity.ProductSpecifications {
	if r == nil {
		return entity.ProductSpecifications{Materials: []string{}, Sizes: []string{}}
	}
	return entity.ProductSpecifications{
		Materials: nonNil(r.Materials),
		WeaveType: value(r.WeaveType),
		Sizes:     nonNil(r.Sizes),
		Origin:    value(r.Origin),
		CraftTime: value(r.CraftTime),
	}
}

// price treats a missing or non-positive amount as price on request.
func price(r *raw.Price) entity.ProductPrice {
	if r == nil {
		return entity.ProductPrice{
			Currency:    entity.DefaultCurrency,
			OnRequest:   true,
			DisplayText: priceOnRequestText,
		}
	}
	p := entity.ProductPrice{Currency: valueOr(r.Currency, entity.DefaultCurrency)}
	if r.Amount != nil && *r.Amount > 0 {
		p.Amount = *r.Amount
	}
	p.OnRequest = flag(r.OnRequest, p.Amount == 0)
	p.DisplayText = displayPrice(p)
	return p
}

func displayPrice(p entity.ProductPrice) string {
	if p.OnRequest || p.Amount == 0 {
		return priceOnRequestText
	}
	printer := message.NewPrinter(language.BritishEnglish)
	format := "%.2f"
	if p.Amount == math.Trunc(p.Amount) {
		format = "%.0f"
	}
	amount := printer.Sprintf(format, p.Amount)
	if symbol, ok := currencySymbols[p.Currency]; ok {
		return symbol + amount
	}
	return p.Currency + " " + amount
}
