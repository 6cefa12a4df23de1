package firebase

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"rugstore/internal/domain/entity"
	"rugstore/internal/domain/service"
	"rugstore/pkg/errors"
)

// Development tokens take the form "dev:<email>" or "dev-admin:<email>".
const (
	devTokenPrefix      = "dev:"
	devAdminTokenPrefix = "dev-admin:"
)

// DevIdentity stands in for Firebase Auth with the memory store driver.
// Sessions live in process and every token is trusted.
type DevIdentity struct {
	mu       sync.Mutex
	sessions map[string]*entity.Principal
	admins   map[string]bool
}

func NewDevIdentity() service.IdentityProvider {
	return &DevIdentity{
		sessions: make(map[string]*entity.Principal),
		admins:   make(map[string]bool),
	}
}

func (d *DevIdentity) VerifyIDToken(ctx context.Context, idToken string) (*entity.Principal, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.parse(idToken)
}

func (d *DevIdentity) parse(idToken string) (*entity.Principal, error) {
	admin := false
	email, ok := strings.CutPrefix(idToken, devAdminTokenPrefix)
	if ok {
		admin = true
	} else if email, ok = strings.CutPrefix(idToken, devTokenPrefix); !ok {
		return nil, errors.Unauthorized("Invalid ID token", nil)
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, errors.Unauthorized("Invalid ID token", nil)
	}
	if granted, set := d.admins[email]; set {
		admin = granted
	}

	role := ""
	if admin {
		role = "admin"
	}
	return &entity.Principal{
		UID:      "dev-" + email,
		Email:    email,
		Admin:    admin,
		Role:     role,
		AuthTime: time.Now().Unix(),
	}, nil
}

func (d *DevIdentity) CreateSessionCookie(ctx context.Context, idToken string, expiresIn time.Duration) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	principal, err := d.parse(idToken)
	if err != nil {
		return "", err
	}
	cookie := uuid.NewString()
	d.sessions[cookie] = principal
	return cookie, nil
}

func (d *DevIdentity) VerifySessionCookie(ctx context.Context, cookie string) (*entity.Principal, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	principal, ok := d.sessions[cookie]
	if !ok {
		return nil, errors.Unauthorized("Invalid or expired session", nil)
	}
	p := *principal
	return &p, nil
}

func (d *DevIdentity) RevokeRefreshTokens(ctx context.Context, uid string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for cookie, p := range d.sessions {
		if p.UID == uid {
			delete(d.sessions, cookie)
		}
	}
	return nil
}

func (d *DevIdentity) SetAdmin(ctx context.Context, email string, admin bool) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	email = strings.ToLower(strings.TrimSpace(email))
	d.admins[email] = admin
	return "dev-" + email, nil
}
