package service

import (
	"context"
	"io"
	"time"

	"rugstore/internal/domain/entity"
)

// StoredFile identifies an uploaded object. Ref is what Delete expects; URL is
// what pages render.
type StoredFile struct {
	URL string `json:"url"`
	Ref string `json:"storageRef"`
}

type FileStorage interface {
	Upload(ctx context.Context, folder, filename, contentType string, content io.Reader) (StoredFile, error)
	Delete(ctx context.Context, ref string) error
	// URL is the public address of the object at ref.
	URL(ref string) string
}

type IdentityProvider interface {
	VerifyIDToken(ctx context.Context, idToken string) (*entity.Principal, error)
	CreateSessionCookie(ctx context.Context, idToken string, expiresIn time.Duration) (string, error)
	VerifySessionCookie(ctx context.Context, cookie string) (*entity.Principal, error)
	RevokeRefreshTokens(ctx context.Context, uid string) error
	SetAdmin(ctx context.Context, email string, admin bool) (string, error)
}

// LeadNotifier is told about leads as they arrive.
type LeadNotifier interface {
	LeadCreated(lead entity.Lead)
}
