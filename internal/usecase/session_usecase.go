package usecase

import (
	"context"
	"time"

	"rugstore/internal/domain/entity"
	"rugstore/internal/domain/service"
	"rugstore/pkg/errors"
	"rugstore/pkg/logger"
)

// recentSignIn bounds how old the sign-in behind an ID token may be when it
// is exchanged for a session cookie.
const recentSignIn = 5 * time.Minute

type Session struct {
	Cookie    string
	ExpiresIn time.Duration
	Principal *entity.Principal
}

type SessionUseCase struct {
	identity service.IdentityProvider
	expiry   time.Duration
	now      func() time.Time
	log      logger.Logger
}

func NewSessionUseCase(identity service.IdentityProvider, expiry time.Duration, log logger.Logger) *SessionUseCase {
	return &SessionUseCase{
		identity: identity,
		expiry:   expiry,
		now:      time.Now,
		log:      log.With("component", "session"),
	}
}

// Login exchanges a freshly issued ID token of an admin for a session cookie.
func (uc *SessionUseCase) Login(ctx context.Context, idToken string) (*Session, error) {
	if idToken == "" {
		return nil, errors.BadRequest("ID token is required", nil)
	}

	principal, err := uc.identity.VerifyIDToken(ctx, idToken)
	if err != nil {
		uc.log.Info("login rejected", "reason", "invalid token", "error", err)
		return nil, errors.Unauthorized("Invalid ID token", err)
	}
	if !principal.Admin {
		uc.log.Warn("login rejected", "reason", "not admin", "uid", principal.UID)
		return nil, errors.Forbidden("Admin access required", nil)
	}
	if principal.AuthTime > 0 && uc.now().Sub(time.Unix(principal.AuthTime, 0)) > recentSignIn {
		return nil, errors.Unauthorized("Recent sign-in required", nil)
	}

	cookie, err := uc.identity.CreateSessionCookie(ctx, idToken, uc.expiry)
	if err != nil {
		return nil, errors.Unauthorized("Failed to create session", err)
	}
	uc.log.Info("admin signed in", "uid", principal.UID)

	return &Session{Cookie: cookie, ExpiresIn: uc.expiry, Principal: principal}, nil
}

// Logout revokes the refresh tokens behind cookie. A cookie that no longer
// verifies is already signed out.
func (uc *SessionUseCase) Logout(ctx context.Context, cookie string) error {
	if cookie == "" {
		return nil
	}
	principal, err := uc.identity.VerifySessionCookie(ctx, cookie)
	if err != nil {
		return nil
	}
	if err := uc.identity.RevokeRefreshTokens(ctx, principal.UID); err != nil {
		return errors.Internal("Failed to sign out", err)
	}
	uc.log.Info("admin signed out", "uid", principal.UID)
	return nil
}

func (uc *SessionUseCase) Verify(ctx context.Context, cookie string) (*entity.Principal, error) {
	if cookie == "" {
		return nil, errors.Unauthorized("Sign in required", nil)
	}
	principal, err := uc.identity.VerifySessionCookie(ctx, cookie)
	if err != nil {
		return nil, errors.Unauthorized("Session expired", err)
	}
	return principal, nil
}

// GrantAdmin sets or clears the admin claim for the account with email.
func (uc *SessionUseCase) GrantAdmin(ctx context.Context, email string, admin bool) (string, error) {
	if email == "" {
		return "", errors.BadRequest("Email is required", nil)
	}
	uid, err := uc.identity.SetAdmin(ctx, email, admin)
	if err != nil {
		return "", err
	}
	uc.log.Info("admin claim updated", "uid", uid, "admin", admin)
	return uid, nil
}
