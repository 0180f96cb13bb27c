package pkgauth

import (
	"context"
	"fmt"
	"strings"
)

// Role is the access level attached to an authenticated caller.
//
// Roles are ordered: a higher role can do everything a lower role can.
type Role int

const (
	RoleViewer Role = iota + 1
	RoleAnalyst
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleViewer:
		return "VIEWER"
	case RoleAnalyst:
		return "ANALYST"
	case RoleAdmin:
		return "ADMIN"
	default:
		return "UNKNOWN"
	}
}

// ParseRole converts a role name (case-insensitive) into a Role.
func ParseRole(value string) (Role, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "VIEWER":
		return RoleViewer, nil
	case "ANALYST":
		return RoleAnalyst, nil
	case "ADMIN":
		return RoleAdmin, nil
	default:
		return 0, fmt.Errorf("invalid role: %s", value)
	}
}

// CanUpload reports whether the role may create sessions and ingest files.
func (r Role) CanUpload() bool {
	return r >= RoleAnalyst
}

// CanView reports whether the role may read descriptors and KPI summaries.
func (r Role) CanView() bool {
	return r >= RoleViewer
}

// CanViewActivity reports whether the role may read the upload activity log.
func (r Role) CanViewActivity() bool {
	return r >= RoleAdmin
}

type roleContextKey struct{}

// WithRole stores the caller role into the context.
func WithRole(ctx context.Context, role Role) context.Context {
	return context.WithValue(ctx, roleContextKey{}, role)
}

// RoleFromContext returns the caller role stored in the context, if any.
func RoleFromContext(ctx context.Context) (Role, bool) {
	role, ok := ctx.Value(roleContextKey{}).(Role)
	return role, ok
}
