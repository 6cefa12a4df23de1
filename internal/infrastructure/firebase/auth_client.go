package firebase

import (
	"context"
	"time"

	"firebase.google.com/go/v4/auth"

	"rugstore/internal/domain/entity"
	"rugstore/internal/domain/service"
	"rugstore/pkg/errors"
)

// Custom claims set on staff accounts.
const (
	ClaimAdmin = "admin"
	ClaimRole  = "role"
)

type FirebaseAuthClient struct {
	client *auth.Client
}

func NewFirebaseAuthClient(client *auth.Client) service.IdentityProvider {
	return &FirebaseAuthClient{
		client: client,
	}
}

func (f *FirebaseAuthClient) VerifyIDToken(ctx context.Context, idToken string) (*entity.Principal, error) {
	token, err := f.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		if auth.IsIDTokenExpired(err) {
			return nil, errors.Unauthorized("Sign-in has expired, please sign in again", err)
		}
		return nil, errors.Unauthorized("Invalid ID token", err)
	}
	return PrincipalFromToken(token), nil
}

func (f *FirebaseAuthClient) CreateSessionCookie(ctx context.Context, idToken string, expiresIn time.Duration) (string, error) {
	cookie, err := f.client.SessionCookie(ctx, idToken, expiresIn)
	if err != nil {
		return "", errors.Unauthorized("Failed to create session", err)
	}
	return cookie, nil
}

// VerifySessionCookie also rejects cookies whose refresh tokens were revoked.
func (f *FirebaseAuthClient) VerifySessionCookie(ctx context.Context, cookie string) (*entity.Principal, error) {
	token, err := f.client.VerifySessionCookieAndCheckRevoked(ctx, cookie)
	if err != nil {
		if auth.IsSessionCookieRevoked(err) {
			return nil, errors.Unauthorized("Session has been revoked", err)
		}
		return nil, errors.Unauthorized("Invalid or expired session", err)
	}
	return PrincipalFromToken(token), nil
}

func (f *FirebaseAuthClient) RevokeRefreshTokens(ctx context.Context, uid string) error {
	if err := f.client.RevokeRefreshTokens(ctx, uid); err != nil {
		return errors.Internal("Failed to revoke session", err)
	}
	return nil
}

// SetAdmin grants or removes the admin claim on the account for email and
// returns its uid.
func (f *FirebaseAuthClient) SetAdmin(ctx context.Context, email string, admin bool) (string, error) {
	user, err := f.client.GetUserByEmail(ctx, email)
	if err != nil {
		if auth.IsUserNotFound(err) {
			return "", errors.NotFound("User", err)
		}
		return "", errors.Internal("Failed to look up user", err)
	}

	claims := user.CustomClaims
	if claims == nil {
		claims = map[string]interface{}{}
	}
	claims[ClaimAdmin] = admin
	if admin {
		claims[ClaimRole] = "admin"
	} else {
		delete(claims, ClaimRole)
	}

	if err := f.client.SetCustomUserClaims(ctx, user.UID, claims); err != nil {
		return "", errors.Internal("Failed to update user claims", err)
	}
	return user.UID, nil
}

func PrincipalFromToken(token *auth.Token) *entity.Principal {
	p := &entity.Principal{
		UID:      token.UID,
		AuthTime: token.AuthTime,
	}
	if email, ok := token.Claims["email"].(string); ok {
		p.Email = email
	}
	if admin, ok := token.Claims[ClaimAdmin].(bool); ok {
		p.Admin = admin
	}
	if role, ok := token.Claims[ClaimRole].(string); ok {
		p.Role = role
		if role == "admin" {
			p.Admin = true
		}
	}
	return p
}
