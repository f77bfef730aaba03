// Package identity abstracts the external identity provider. Authentication
// itself lives outside this service; the core only consumes the resulting
// user and keeps the mentor roster in step with it.
package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/okian/mentorboard/internal/adapters/store"
	"github.com/okian/mentorboard/internal/domain/model"
)

// RoleAdmin is the sole authorization signal distinguishing the
// administrator view from the single-mentor view.
const RoleAdmin = "admin"

// User is the identity the external provider hands the core.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// IsAdmin reports whether the user carries the administrator role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// DisplayName derives a mentor display name from the email local part,
// falling back to the id when no email is available.
func (u User) DisplayName() string {
	if at := strings.IndexByte(u.Email, '@'); at > 0 {
		return u.Email[:at]
	}
	if u.Email != "" {
		return u.Email
	}
	return u.ID
}

// Provider is the slice of the identity provider the core consumes. Tests
// substitute a fake; nothing in the core reaches for ambient auth state.
type Provider interface {
	// CurrentUser returns the signed-in user, or ok=false when signed out.
	CurrentUser(ctx context.Context) (User, bool)
	// OnAuthChange subscribes to sign-in/sign-out transitions and returns
	// the matching unsubscribe.
	OnAuthChange(fn func(u User, signedIn bool)) (unsubscribe func())
	// SignOut clears the session.
	SignOut(ctx context.Context) error
}

// EnsureMentor lazily creates the mentor row for a freshly authenticated
// user: fetch by id, insert with a derived display name when absent. The
// admin role maps onto the isInternal flag.
func EnsureMentor(ctx context.Context, st store.Store, u User) (model.Mentor, error) {
	m, err := st.GetMentor(ctx, u.ID)
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return model.Mentor{}, err
	}
	return st.InsertMentor(ctx, model.Mentor{
		ID:         u.ID,
		Name:       u.DisplayName(),
		IsInternal: u.IsAdmin(),
	})
}
