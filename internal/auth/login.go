package auth

import (
	"context"
	"errors"
	"time"

	"tutordesk/internal/academy"
)

// OrganizationName is the tenant every mock identity belongs to.
const OrganizationName = "Al-Furqan Academy"

var (
	ErrMissingCredentials = errors.New("email and password required")
	ErrUnknownRole        = errors.New("role must be company or staff")
)

// Identity is the signed-in user.
type Identity struct {
	ID               string       `json:"id"`
	Email            string       `json:"email"`
	Name             string       `json:"name"`
	Role             academy.Role `json:"role"`
	OrganizationName string       `json:"organizationName"`
}

// Actor converts the identity into the actor views are scoped to.
func (i Identity) Actor() academy.Actor {
	return academy.Actor{ID: i.ID, Name: i.Name, Role: i.Role}
}

// Authenticator is a login stub. It never checks credentials: any non-empty
// email and password succeed after a fixed delay with a per-role mock identity.
type Authenticator struct {
	delay time.Duration
}

// NewAuthenticator creates a stub authenticator with the given artificial delay.
func NewAuthenticator(delay time.Duration) *Authenticator {
	return &Authenticator{delay: delay}
}

// Login returns the mock identity for role.
func (a *Authenticator) Login(ctx context.Context, email, password string, role academy.Role) (Identity, error) {
	if email == "" || password == "" {
		return Identity{}, ErrMissingCredentials
	}
	if !role.Valid() {
		return Identity{}, ErrUnknownRole
	}

	if a.delay > 0 {
		t := time.NewTimer(a.delay)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			return Identity{}, ctx.Err()
		}
	}

	id := Identity{Email: email, Role: role, OrganizationName: OrganizationName}
	if role == academy.RoleCompany {
		id.ID = "comp-001"
		id.Name = OrganizationName
	} else {
		id.ID = "staff-001"
		id.Name = "Ahmad Hassan"
	}
	return id, nil
}

// IdentityFromClaims rebuilds the identity carried by a verified token.
func IdentityFromClaims(c Claims) Identity {
	return Identity{
		ID:               c.Subject,
		Email:            c.Email,
		Name:             c.Name,
		Role:             academy.Role(c.Role),
		OrganizationName: OrganizationName,
	}
}
