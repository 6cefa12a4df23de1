// Package raw holds documents exactly as they come out of the store: every
// field optional, timestamps untyped, legacy shapes tolerated. Decoders
// inspect one key at a time and never fail; a field of the wrong type is
// treated as absent.
package raw

import (
	"math"
	"strconv"
	"strings"
)

// Document is the untyped form returned by the store.
type Document = map[string]any

func first(doc Document, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := doc[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func str(doc Document, keys ...string) *string {
	v, ok := first(doc, keys...)
	if !ok {
		return nil
	}
	switch s := v.(type) {
	case string:
		return &s
	case *string:
		return s
	}
	return nil
}

func boolean(doc Document, keys ...string) *bool {
	v, ok := first(doc, keys...)
	if !ok {
		return nil
	}
	switch b := v.(type) {
	case bool:
		return &b
	case *bool:
		return b
	case string:
		// legacy form posts stored "true"/"false"
		if parsed, err := strconv.ParseBool(b); err == nil {
			return &parsed
		}
	}
	return nil
}

func integer(doc Document, keys ...string) *int {
	v, ok := first(doc, keys...)
	if !ok {
		return nil
	}
	var n int
	switch x := v.(type) {
	case int:
		n = x
	case int32:
		n = int(x)
	case int64:
		n = int(x)
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil
		}
		n = int(x)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil {
			return nil
		}
		n = parsed
	default:
		return nil
	}
	return &n
}

func number(doc Document, keys ...string) *float64 {
	v, ok := first(doc, keys...)
	if !ok {
		return nil
	}
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// list normalizes the slice shapes the store and tests produce.
func list(v any) ([]any, bool) {
	switch xs := v.(type) {
	case []any:
		return xs, true
	case []string:
		out := make([]any, len(xs))
		for i, s := range xs {
			out[i] = s
		}
		return out, true
	case []map[string]any:
		out := make([]any, len(xs))
		for i, m := range xs {
			out[i] = m
		}
		return out, true
	}
	return nil, false
}

// strs returns nil when the key is absent and a non-nil slice when present.
// Non-string elements are dropped; a comma separated string is split.
func strs(doc Document, keys ...string) []string {
	v, ok := first(doc, keys...)
	if !ok {
		return nil
	}
	if s, isString := v.(string); isString {
		out := []string{}
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	}
	xs, isList := list(v)
	if !isList {
		return nil
	}
	out := make([]string, 0, len(xs))
	for _, x := range xs {
		if s, isString := x.(string); isString {
			out = append(out, s)
		}
	}
	return out
}

func object(doc Document, keys ...string) Document {
	v, ok := first(doc, keys...)
	if !ok {
		return nil
	}
	if m, isMap := v.(map[string]any); isMap {
		return m
	}
	return nil
}

func timestamp(doc Document, keys ...string) any {
	v, _ := first(doc, keys...)
	return v
}

// Image is a standalone image. Legacy documents store a bare URL string.
type Image struct {
	URL        *string
	Alt        *string
	StorageRef *string
}

func decodeImage(v any) *Image {
	switch x := v.(type) {
	case string:
		return &Image{URL: &x}
	case map[string]any:
		return &Image{
			URL:        str(x, "url", "src"),
			Alt:        str(x, "alt"),
			StorageRef: str(x, "storageRef", "storagePath", "path"),
		}
	}
	return nil
}

func image(doc Document, keys ...string) *Image {
	v, ok := first(doc, keys...)
	if !ok {
		return nil
	}
	return decodeImage(v)
}

type SEO struct {
	Title       *string
	Description *string
	Keywords    []string
}

func seo(doc Document) *SEO {
	m := object(doc, "seo")
	if m == nil {
		return nil
	}
	return &SEO{
		Title:       str(m, "title", "metaTitle"),
		Description: str(m, "description", "metaDescription"),
		Keywords:    strs(m, "keywords"),
	}
}
