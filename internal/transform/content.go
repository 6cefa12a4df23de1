package transform

import (
	"rugstore/internal/domain/entity"
	"rugstore/internal/domain/raw"
)

// Homepage maps pages/homepage. A missing document decodes to an empty raw
// value, so callers always get renderable sections.
func (t *Transformer) Homepage(r raw.Homepage) entity.HomepageContent {
	h := entity.HomepageContent{
		Hero:                  entity.HeroSection{Image: entity.FallbackHeroImage},
		Story:                 entity.StorySection{Image: entity.FallbackHeroImage},
		FeaturedCollectionIDs: nonNil(r.FeaturedCollectionIDs),
		UpdatedAt:             t.Timestamp(r.UpdatedAt),
	}
	if r.Hero != nil {
		h.Hero = entity.HeroSection{
			Title:    value(r.Hero.Title),
			Subtitle: value(r.Hero.Subtitle),
			CTAText:  value(r.Hero.CTAText),
			CTALink:  value(r.Hero.CTALink),
			Image:    image(r.Hero.Image, entity.FallbackHeroImage),
		}
	}
	if r.Story != nil {
		h.Story = entity.StorySection{
			Title: value(r.Story.Title),
			Body:  value(r.Story.Body),
			Image: image(r.Story.Image, entity.FallbackHeroImage),
		}
	}
	return h
}

func (t *Transformer) Settings(r raw.Settings) entity.SiteSettings {
	s := entity.SiteSettings{
		CompanyName:  value(r.CompanyName),
		ContactEmail: value(r.ContactEmail),
		ContactPhone: value(r.ContactPhone),
		Address:      value(r.Address),
		UpdatedAt:    t.Timestamp(r.UpdatedAt),
	}
	if r.Social != nil {
		s.Social = entity.SocialLinks{
			Instagram: value(r.Social.Instagram),
			Pinterest: value(r.Social.Pinterest),
			Facebook:  value(r.Social.Facebook),
		}
	}
	return s
}
