// Package authgate decides whether a caller may reach a protected route.
//
// The decision is a pure function of already-loaded session state and the
// route's static allow-list. It performs no I/O and never fails: every
// input combination maps to exactly one Decision.
package authgate

import "github.com/edusync-app/school-service/internal/models"

// Session is the view of the session provider the gate consumes. The gate
// only reads it.
type Session struct {
	User            *models.User
	IsLoading       bool
	IsAuthenticated bool
}

type Decision int

const (
	// DecisionLoading defers rendering until session hydration completes,
	// avoiding a redirect flash.
	DecisionLoading Decision = iota

	// DecisionRedirectToLogin sends the caller to login, carrying the
	// originally requested location for post-login return.
	DecisionRedirectToLogin

	// DecisionRedirectToUnauthorized denies an authenticated caller whose
	// role is not on the route's allow-list.
	DecisionRedirectToUnauthorized

	// DecisionAllow renders the protected view.
	DecisionAllow
)

func (d Decision) String() string {
	switch d {
	case DecisionLoading:
		return "loading"
	case DecisionRedirectToLogin:
		return "redirect_to_login"
	case DecisionRedirectToUnauthorized:
		return "redirect_to_unauthorized"
	case DecisionAllow:
		return "allow"
	default:
		return "unknown"
	}
}

// Authorize maps a session and a route allow-list to a Decision.
//
// A nil or empty allow-list means any authenticated role may enter. The
// role check is flat set membership: a role off the list is denied even if
// it would intuitively outrank the listed ones (a route allowing only
// student denies admin).
func Authorize(session Session, allowedRoles []models.UserRole) Decision {
	if session.IsLoading {
		return DecisionLoading
	}
	if !session.IsAuthenticated || session.User == nil {
		return DecisionRedirectToLogin
	}
	if len(allowedRoles) > 0 && !containsRole(allowedRoles, session.User.Role) {
		return DecisionRedirectToUnauthorized
	}
	return DecisionAllow
}

func containsRole(roles []models.UserRole, role models.UserRole) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
