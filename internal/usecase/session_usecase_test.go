package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rugstore/internal/domain/entity"
	"rugstore/pkg/errors"
	"rugstore/pkg/logger"
)

type fakeIdentity struct {
	tokens  map[string]*entity.Principal
	cookies map[string]*entity.Principal
	revoked []string
}

func newFakeIdentity() *fakeIdentity {
	return &fakeIdentity{tokens: map[string]*entity.Principal{}, cookies: map[string]*entity.Principal{}}
}

func (f *fakeIdentity) VerifyIDToken(ctx context.Context, idToken string) (*entity.Principal, error) {
	p, ok := f.tokens[idToken]
	if !ok {
		return nil, fmt.Errorf("invalid token")
	}
	return p, nil
}

func (f *fakeIdentity) CreateSessionCookie(ctx context.Context, idToken string, expiresIn time.Duration) (string, error) {
	cookie := "cookie-" + idToken
	f.cookies[cookie] = f.tokens[idToken]
	return cookie, nil
}

func (f *fakeIdentity) VerifySessionCookie(ctx context.Context, cookie string) (*entity.Principal, error) {
	p, ok := f.cookies[cookie]
	if !ok {
		return nil, fmt.Errorf("invalid cookie")
	}
	return p, nil
}

func (f *fakeIdentity) RevokeRefreshTokens(ctx context.Context, uid string) error {
	f.revoked = append(f.revoked, uid)
	for cookie, p := range f.cookies {
		if p.UID == uid {
			delete(f.cookies, cookie)
		}
	}
	return nil
}

func (f *fakeIdentity) SetAdmin(ctx context.Context, email string, admin bool) (string, error) {
	return "uid-" + email, nil
}

func TestSessionLogin(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	identity := newFakeIdentity()
	identity.tokens["admin"] = &entity.Principal{UID: "a1", Admin: true, AuthTime: now.Add(-time.Minute).Unix()}
	identity.tokens["stale"] = &entity.Principal{UID: "a2", Admin: true, AuthTime: now.Add(-time.Hour).Unix()}
	identity.tokens["visitor"] = &entity.Principal{UID: "v1"}

	uc := NewSessionUseCase(identity, 5*24*time.Hour, logger.Nop())
	uc.now = func() time.Time { return now }
	ctx := context.Background()

	session, err := uc.Login(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, "cookie-admin", session.Cookie)
	assert.Equal(t, 5*24*time.Hour, session.ExpiresIn)

	_, err = uc.Login(ctx, "visitor")
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	_, err = uc.Login(ctx, "stale")
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))

	_, err = uc.Login(ctx, "forged")
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))

	_, err = uc.Login(ctx, "")
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestSessionVerifyAndLogout(t *testing.T) {
	identity := newFakeIdentity()
	identity.tokens["admin"] = &entity.Principal{UID: "a1", Admin: true}
	uc := NewSessionUseCase(identity, time.Hour, logger.Nop())
	ctx := context.Background()

	session, err := uc.Login(ctx, "admin")
	require.NoError(t, err)

	principal, err := uc.Verify(ctx, session.Cookie)
	require.NoError(t, err)
	assert.Equal(t, "a1", principal.UID)

	require.NoError(t, uc.Logout(ctx, session.Cookie))
	assert.Equal(t, []string{"a1"}, identity.revoked)

	_, err = uc.Verify(ctx, session.Cookie)
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))
	assert.NoError(t, uc.Logout(ctx, session.Cookie))
	assert.NoError(t, uc.Logout(ctx, ""))
}

func TestGrantAdmin(t *testing.T) {
	uc := NewSessionUseCase(newFakeIdentity(), time.Hour, logger.Nop())

	uid, err := uc.GrantAdmin(context.Background(), "owner@rugs.example", true)
	require.NoError(t, err)
	assert.Equal(t, "uid-owner@rugs.example", uid)

	_, err = uc.GrantAdmin(context.Background(), "", true)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}
