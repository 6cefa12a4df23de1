package raw

type HeroSection struct {
	Title    *string
	Subtitle *string
	CTAText  *string
	CTALink  *string
	Image    *Image
}

type StorySection struct {
	Title *string
	Body  *string
	Image *Image
}

type Homepage struct {
	Hero                  *HeroSection
	Story                 *StorySection
	FeaturedCollectionIDs []string
	UpdatedAt             any
}

func DecodeHomepage(doc Document) Homepage {
	h := Homepage{
		FeaturedCollectionIDs: strs(doc, "featuredCollectionIds", "featuredCollections"),
		UpdatedAt:             timestamp(doc, "updatedAt"),
	}
	if m := object(doc, "hero"); m != nil {
		h.Hero = &HeroSection{
			Title:    str(m, "title", "heading"),
			Subtitle: str(m, "subtitle", "subheading"),
			CTAText:  str(m, "ctaText", "buttonText"),
			CTALink:  str(m, "ctaLink", "buttonLink"),
			Image:    image(m, "image", "backgroundImage"),
		}
	}
	if m := object(doc, "story"); m != nil {
		h.Story = &StorySection{
			Title: str(m, "title", "heading"),
			Body:  str(m, "body", "text", "content"),
			Image: image(m, "image"),
		}
	}
	return h
}

type SocialLinks struct {
	Instagram *string
	Pinterest *string
	Facebook  *string
}

type Settings struct {
	CompanyName  *string
	ContactEmail *string
	ContactPhone *string
	Address      *string
	Social       *SocialLinks
	UpdatedAt    any
}

func DecodeSettings(doc Document) Settings {
	s := Settings{
		CompanyName:  str(doc, "companyName", "siteName"),
		ContactEmail: str(doc, "contactEmail", "email"),
		ContactPhone: str(doc, "contactPhone", "phone"),
		Address:      str(doc, "address"),
		UpdatedAt:    timestamp(doc, "updatedAt"),
	}
	if m := object(doc, "social", "socialLinks"); m != nil {
		s.Social = &SocialLinks{
			Instagram: str(m, "instagram"),
			Pinterest: str(m, "pinterest"),
			Facebook:  str(m, "facebook"),
		}
	}
	return s
}
