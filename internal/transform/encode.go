package transform

import (
	"rugstore/internal/domain/entity"
	"rugstore/internal/domain/raw"
)

// The encoders below produce the store shape of a safe value. Decoding an
// encoded value and transforming it again yields the value unchanged.
// Fallback images are not persisted; they are substituted again on read.

func ProductDocument(p entity.Product) raw.Document {
	images := make([]any, 0, len(p.Images))
	if !(len(p.Images) == 1 && p.Images[0] == entity.FallbackProductImage) {
		for _, img := range p.Images {
			images = append(images, map[string]any{
				"url":        img.URL,
				"alt":        img.Alt,
				"storageRef": img.StorageRef,
				"isMain":     img.IsMain,
				"sortOrder":  int64(img.SortOrder),
			})
		}
	}

	doc := raw.Document{
		"name":        p.Name,
		"slug":        p.Slug,
		"description": p.Description,
		"story":       p.Story,
		"images":      images,
		"specifications": map[string]any{
			"materials": copyStrings(p.Specifications.Materials),
			"weaveType": p.Specifications.WeaveType,
			"sizes":     copyStrings(p.Specifications.Sizes),
			"origin":    p.Specifications.Origin,
			"craftTime": p.Specifications.CraftTime,
		},
		"collections": copyStrings(p.Collections),
		"price": map[string]any{
			"amount":    p.Price.Amount,
			"currency":  p.Price.Currency,
			"onRequest": p.Price.OnRequest,
		},
		"seo":        seoDocument(p.SEO),
		"isActive":   p.IsActive,
		"isFeatured": p.IsFeatured,
		"sortOrder":  int64(p.SortOrder),
	}
	putTimestamps(doc, p.CreatedAt, p.UpdatedAt)
	return doc
}

func CollectionDocument(c entity.Collection) raw.Document {
	doc := raw.Document{
		"name":        c.Name,
		"slug":        c.Slug,
		"description": c.Description,
		"type":        string(c.Type),
		"seo":         seoDocument(c.SEO),
		"isActive":    c.IsActive,
		"sortOrder":   int64(c.SortOrder),
		"productIds":  copyStrings(c.ProductIDs),
	}
	putImage(doc, "heroImage", c.HeroImage, entity.FallbackCollectionImage)
	putTimestamps(doc, c.CreatedAt, c.UpdatedAt)
	return doc
}

func WeaveTypeDocument(w entity.WeaveType) raw.Document {
	doc := raw.Document{
		"name":        w.Name,
		"slug":        w.Slug,
		"description": w.Description,
		"sortOrder":   int64(w.SortOrder),
		"isActive":    w.IsActive,
	}
	putImage(doc, "image", w.Image, entity.FallbackWeaveTypeImage)
	putTimestamps(doc, w.CreatedAt, w.UpdatedAt)
	return doc
}

func LeadDocument(l entity.Lead) raw.Document {
	moodboard := make([]any, len(l.Customization.Moodboard))
	for i, f := range l.Customization.Moodboard {
		moodboard[i] = map[string]any{
			"name":        f.Name,
			"url":         f.URL,
			"storageRef":  f.StorageRef,
			"contentType": f.ContentType,
			"size":        f.Size,
		}
	}
	notes := make([]any, len(l.Notes))
	for i, n := range l.Notes {
		note := map[string]any{
			"id":     n.ID,
			"text":   n.Text,
			"author": n.Author,
		}
		if tm, ok := ParseTimestamp(n.CreatedAt); ok {
			note["createdAt"] = tm.UTC()
		}
		notes[i] = note
	}

	doc := raw.Document{
		"type":         string(l.Type),
		"name":         l.Name,
		"email":        l.Email,
		"phone":        l.Phone,
		"company":      l.Company,
		"message":      l.Message,
		"status":       string(l.Status),
		"productId":    l.ProductID,
		"productName":  l.ProductName,
		"collectionId": l.CollectionID,
		"customization": map[string]any{
			"preferredSize": l.Customization.PreferredSize,
			"materials":     copyStrings(l.Customization.Materials),
			"colors":        l.Customization.Colors,
			"budget":        l.Customization.Budget,
			"moodboard":     moodboard,
		},
		"source":     l.Source,
		"assignedTo": l.AssignedTo,
		"notes":      notes,
	}
	putTimestamps(doc, l.CreatedAt, l.UpdatedAt)
	return doc
}

func HomepageDocument(h entity.HomepageContent) raw.Document {
	hero := map[string]any{
		"title":    h.Hero.Title,
		"subtitle": h.Hero.Subtitle,
		"ctaText":  h.Hero.CTAText,
		"ctaLink":  h.Hero.CTALink,
	}
	putImage(hero, "image", h.Hero.Image, entity.FallbackHeroImage)
	story := map[string]any{
		"title": h.Story.Title,
		"body":  h.Story.Body,
	}
	putImage(story, "image", h.Story.Image, entity.FallbackHeroImage)

	doc := raw.Document{
		"hero":                  hero,
		"story":                 story,
		"featuredCollectionIds": copyStrings(h.FeaturedCollectionIDs),
	}
	putTimestamps(doc, "", h.UpdatedAt)
	return doc
}

func SettingsDocument(s entity.SiteSettings) raw.Document {
	doc := raw.Document{
		"companyName":  s.CompanyName,
		"contactEmail": s.ContactEmail,
		"contactPhone": s.ContactPhone,
		"address":      s.Address,
		"social": map[string]any{
			"instagram": s.Social.Instagram,
			"pinterest": s.Social.Pinterest,
			"facebook":  s.Social.Facebook,
		},
	}
	putTimestamps(doc, "", s.UpdatedAt)
	return doc
}

func seoDocument(s entity.SEO) map[string]any {
	return map[string]any{
		"title":       s.Title,
		"description": s.Description,
		"keywords":    copyStrings(s.Keywords),
	}
}

func putImage(doc map[string]any, key string, img, fallback entity.Image) {
	if img == fallback || img.URL == "" {
		return
	}
	doc[key] = map[string]any{
		"url":        img.URL,
		"alt":        img.Alt,
		"storageRef": img.StorageRef,
	}
}

func putTimestamps(doc raw.Document, createdAt, updatedAt string) {
	if tm, ok := ParseTimestamp(createdAt); ok {
		doc["createdAt"] = tm.UTC()
	}
	if tm, ok := ParseTimestamp(updatedAt); ok {
		doc["updatedAt"] = tm.UTC()
	}
}

// copyStrings copies xs so stored documents never alias caller slices.
func copyStrings(xs []string) []string {
	out := make([]string, len(xs))
	copy(out, xs)
	return out
}
