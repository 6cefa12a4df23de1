package entity

type HeroSection struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	CTAText  string `json:"ctaText"`
	CTALink  string `json:"ctaLink"`
	Image    Image  `json:"image"`
}

type StorySection struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Image Image  `json:"image"`
}

// HomepageContent is the editable copy stored at pages/homepage.
type HomepageContent struct {
	Hero                  HeroSection  `json:"hero"`
	Story                 StorySection `json:"story"`
	FeaturedCollectionIDs []string     `json:"featuredCollectionIds"`
	UpdatedAt             string       `json:"updatedAt"`
}

type SocialLinks struct {
	Instagram string `json:"instagram"`
	Pinterest string `json:"pinterest"`
	Facebook  string `json:"facebook"`
}

// SiteSettings is stored at settings/site.
type SiteSettings struct {
	CompanyName  string      `json:"companyName"`
	ContactEmail string      `json:"contactEmail"`
	ContactPhone string      `json:"contactPhone"`
	Address      string      `json:"address"`
	Social       SocialLinks `json:"social"`
	UpdatedAt    string      `json:"updatedAt"`
}

// Principal is the verified identity behind a request.
type Principal struct {
	UID      string `json:"uid"`
	Email    string `json:"email"`
	Admin    bool   `json:"admin"`
	Role     string `json:"role,omitempty"`
	AuthTime int64  `json:"-"`
}
