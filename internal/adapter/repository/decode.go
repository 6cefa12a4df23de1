package repository

import (
	"context"
	"time"

	"rugstore/internal/domain/raw"
	"rugstore/internal/transform"
)

type decoder[R any] func(id string, doc raw.Document) R

func getDecoded[R any](ctx context.Context, store DocumentStore, id string, decode decoder[R]) (R, error) {
	doc, err := store.Get(ctx, id)
	if err != nil {
		var zero R
		return zero, err
	}
	return decode(id, doc), nil
}

func findDecoded[R any](ctx context.Context, store DocumentStore, field string, value any, decode decoder[R]) (R, error) {
	snap, err := store.FindOne(ctx, field, value)
	if err != nil {
		var zero R
		return zero, err
	}
	return decode(snap.ID, snap.Data), nil
}

func listDecoded[R any](ctx context.Context, store DocumentStore, decode decoder[R]) ([]R, error) {
	snapshots, err := store.All(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]R, len(snapshots))
	for i, snap := range snapshots {
		out[i] = decode(snap.ID, snap.Data)
	}
	return out, nil
}

var timeNow = time.Now

// stamp fills createdAt on first write and always refreshes updatedAt.
func stamp(createdAt, updatedAt *string) {
	now := transform.FormatISO(timeNow())
	if _, ok := transform.ParseTimestamp(*createdAt); !ok {
		*createdAt = now
	}
	*updatedAt = now
}
