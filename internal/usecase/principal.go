package usecase

import (
	"context"
	"strings"

	"rugstore/internal/domain/entity"
	"rugstore/internal/domain/service"
	"rugstore/internal/infrastructure/cache"
	"rugstore/pkg/errors"
	"rugstore/pkg/logger"
)

type principalKey struct{}

// WithPrincipal attaches the verified identity of the caller to ctx.
func WithPrincipal(ctx context.Context, p *entity.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func PrincipalFrom(ctx context.Context) (*entity.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*entity.Principal)
	return p, ok && p != nil
}

// requireAdmin must run before any admin mutation touches a repository.
func requireAdmin(ctx context.Context) (*entity.Principal, error) {
	p, ok := PrincipalFrom(ctx)
	if !ok {
		return nil, errors.Unauthorized("Sign in required", nil)
	}
	if !p.Admin {
		return nil, errors.Forbidden("Admin access required", nil)
	}
	return p, nil
}

// mutations is shared by the admin use cases: it drops cache entries after a
// write and cleans up files that are no longer referenced.
type mutations struct {
	cache   cache.Cache
	storage service.FileStorage
	log     logger.Logger
}

// invalidate never fails the action; stale entries expire on their own.
func (m mutations) invalidate(ctx context.Context, tags ...cache.Tag) {
	if m.cache == nil {
		return
	}
	if err := m.cache.Invalidate(ctx, tags...); err != nil {
		m.log.Warn("cache invalidation failed", "tags", tags, "error", err)
	}
}

func (m mutations) deleteFiles(ctx context.Context, refs ...string) {
	if m.storage == nil {
		return
	}
	for _, ref := range refs {
		if ref == "" {
			continue
		}
		if err := m.storage.Delete(ctx, ref); err != nil {
			m.log.Warn("failed to delete stored file", "ref", ref, "error", err)
		}
	}
}

// orphaned returns refs present in before but not in after.
func orphaned(before, after []string) []string {
	kept := make(map[string]bool, len(after))
	for _, ref := range after {
		kept[ref] = true
	}
	var out []string
	for _, ref := range before {
		if !kept[ref] {
			out = append(out, ref)
		}
	}
	return out
}

func trimAll(xs []string) []string {
	out := make([]string, 0, len(xs))
	for _, x := range xs {
		if x = strings.TrimSpace(x); x != "" {
			out = append(out, x)
		}
	}
	return out
}
