package cache

import (
	"sort"
	"time"
)

// Tag names a family of cached reads that a write can make stale.
type Tag string

const (
	TagProducts         Tag = "products"
	TagFeaturedProducts Tag = "featured-products"
	TagCollections      Tag = "collections"
	TagWeaveTypes       Tag = "weave-types"
	TagHomepage         Tag = "homepage"
	TagSettings         Tag = "settings"
	TagLeads            Tag = "leads"
)

// Dependencies lists, for each tag, the tags whose entries are derived from
// it. Invalidation follows it transitively.
var Dependencies = map[Tag][]Tag{
	TagProducts:         {TagFeaturedProducts, TagHomepage},
	TagFeaturedProducts: {TagHomepage},
	TagCollections:      {TagHomepage},
	TagWeaveTypes:       {TagHomepage},
	TagSettings:         {TagHomepage},
}

// RevalidateAfter is the time an entry under a tag may be served before it
// is refetched. Zero means the tag is never cached.
var RevalidateAfter = map[Tag]time.Duration{
	TagProducts:         5 * time.Minute,
	TagFeaturedProducts: 5 * time.Minute,
	TagCollections:      10 * time.Minute,
	TagWeaveTypes:       time.Hour,
	TagHomepage:         5 * time.Minute,
	TagSettings:         time.Hour,
	TagLeads:            0,
}

// TTL returns the shortest revalidation window among tags.
func TTL(tags ...Tag) time.Duration {
	var ttl time.Duration
	for i, tag := range tags {
		d := RevalidateAfter[tag]
		if i == 0 || d < ttl {
			ttl = d
		}
	}
	return ttl
}

// Expand returns tags plus everything that depends on them, sorted.
func Expand(tags ...Tag) []Tag {
	seen := make(map[Tag]bool)
	queue := append([]Tag(nil), tags...)
	for len(queue) > 0 {
		tag := queue[0]
		queue = queue[1:]
		if seen[tag] {
			continue
		}
		seen[tag] = true
		queue = append(queue, Dependencies[tag]...)
	}

	out := make([]Tag, 0, len(seen))
	for tag := range seen {
		out = append(out, tag)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
