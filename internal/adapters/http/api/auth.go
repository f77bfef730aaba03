package api

import (
	"net/http"

	"github.com/okian/mentorboard/internal/identity"
)

// Identity headers set by the front proxy after it verifies the session.
const (
	headerUserID    = "X-User-Id"
	headerUserEmail = "X-User-Email"
	headerUserRole  = "X-User-Role"
)

// userFromRequest reads the proxy-asserted identity headers. The second
// return is false when no identity accompanied the request.
func userFromRequest(r *http.Request) (identity.User, bool) {
	id := r.Header.Get(headerUserID)
	if id == "" {
		return identity.User{}, false
	}
	return identity.User{
		ID:    id,
		Email: r.Header.Get(headerUserEmail),
		Role:  r.Header.Get(headerUserRole),
	}, true
}

// requireUser rejects anonymous requests with 401.
func requireUser(w http.ResponseWriter, r *http.Request) (identity.User, bool) {
	u, ok := userFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated", Kind("auth", ErrUnauthed))
		return identity.User{}, false
	}
	return u, true
}

// requireAdmin rejects non-admin requests with 403.
func requireAdmin(w http.ResponseWriter, r *http.Request) (identity.User, bool) {
	u, ok := requireUser(w, r)
	if !ok {
		return identity.User{}, false
	}
	if !u.IsAdmin() {
		writeError(w, http.StatusForbidden, "forbidden", Kind("auth", ErrForbidden))
		return identity.User{}, false
	}
	return u, true
}
