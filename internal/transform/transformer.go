// Package transform turns raw store documents into safe view models and back.
//
// Transformers are total: they never fail and never return a value with a
// missing required field. Missing display-critical data is replaced with the
// fallback constants from the entity package. Running a transformer on the
// document encoding of its own output returns the same value.
package transform

import (
	"time"

	"rugstore/internal/domain/entity"
	"rugstore/internal/domain/raw"
)

type Transformer struct {
	now func() time.Time
}

func New() *Transformer {
	return &Transformer{now: time.Now}
}

// NewWithClock fixes the time used for unparseable timestamps.
func NewWithClock(now func() time.Time) *Transformer {
	return &Transformer{now: now}
}

// Now is the transformer's clock, formatted.
func (t *Transformer) Now() string {
	return FormatISO(t.now())
}

func value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func valueOr(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}

func flag(b *bool, fallback bool) bool {
	if b == nil {
		return fallback
	}
	return *b
}

func intValue(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}

func nonNil(xs []string) []string {
	if xs == nil {
		return []string{}
	}
	return xs
}

// image substitutes fallback wholesale when the raw image has no URL.
func image(r *raw.Image, fallback entity.Image) entity.Image {
	if r == nil || r.URL == nil || *r.URL == "" {
		return fallback
	}
	return entity.Image{
		URL:        *r.URL,
		Alt:        value(r.Alt),
		StorageRef: value(r.StorageRef),
	}
}

func seo(r *raw.SEO) entity.SEO {
	if r == nil {
		return entity.SEO{Keywords: []string{}}
	}
	return entity.SEO{
		Title:       value(r.Title),
		Description: value(r.Description),
		Keywords:    nonNil(r.Keywords),
	}
}
