package pkgrouter

import (
	"net/http"

	"github.com/Dakshp001/SOC-Central-sub003/internal/pkg/pkgauth"
)

// HeaderAPIKey carries the caller's API key used for role resolution.
const HeaderAPIKey = "X-API-Key"

// APIKeyAuth resolves caller roles from an API key header and guards
// endpoints with capability checks.
//
// When disabled, every request runs as an admin so local setups work without
// provisioning keys.
type APIKeyAuth struct {
	enabled bool
	roles   map[string]pkgauth.Role
}

// NewAPIKeyAuth builds an APIKeyAuth from a key to role-name map.
func NewAPIKeyAuth(enabled bool, keys map[string]string) (*APIKeyAuth, error) {
	roles := make(map[string]pkgauth.Role, len(keys))
	for key, name := range keys {
		role, err := pkgauth.ParseRole(name)
		if err != nil {
			return nil, err
		}
		roles[key] = role
	}

	return &APIKeyAuth{enabled: enabled, roles: roles}, nil
}

// Require returns middleware that rejects requests whose resolved role does
// not satisfy the allowed capability.
func (a *APIKeyAuth) Require(allowed func(pkgauth.Role) bool) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := pkgauth.RoleAdmin
			if a.enabled {
				key := r.Header.Get(HeaderAPIKey)
				got, ok := a.roles[key]
				if key == "" || !ok {
					writeJSON(w, errorResponse{Message: "invalid api key"}, http.StatusUnauthorized)
					return
				}
				role = got
			}

			if !allowed(role) {
				writeJSON(w, errorResponse{Message: "insufficient role"}, http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r.WithContext(pkgauth.WithRole(r.Context(), role)))
		})
	}
}
