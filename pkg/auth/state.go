package auth

import "slices"

// AccessState is what a client should render for a protected view.
type AccessState string

const (
	AccessAnonymous     AccessState = "anonymous"
	AccessAuthenticated AccessState = "authenticated"
	AccessUnauthorized  AccessState = "unauthorized"
)

// AccessInput holds everything ResolveAccess looks at.
type AccessInput struct {
	TokenPresent  bool
	TokenValid    bool
	Role          string
	RequiredRoles []string
}

// ResolveAccess has no side effects. Navigation is left to whoever observes
// the result.
//
// A missing or invalid token is anonymous. A valid token whose role is not
// among RequiredRoles is unauthorized. An empty RequiredRoles admits any role.
func ResolveAccess(in AccessInput) AccessState {
	if !in.TokenPresent || !in.TokenValid {
		return AccessAnonymous
	}
	if len(in.RequiredRoles) > 0 && !slices.Contains(in.RequiredRoles, in.Role) {
		return AccessUnauthorized
	}
	return AccessAuthenticated
}
