// Copyright (c) 2026 Selluna. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// AuthUser is the resolved identity the session middleware attaches to the
// request context after a successful lookup in the credential store.
//
// It deliberately carries no password hash and no cart state: it is the
// projection of an account that is safe to hand to any downstream handler
// and to return verbatim from the profile endpoint.
type AuthUser struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Role  UserRole `json:"role"`
}

// IsAdmin reports whether the identity holds the admin role.
func (u *AuthUser) IsAdmin() bool {
	return u.Role.AtLeast(RoleAdmin)
}
