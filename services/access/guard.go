// Package access decides whether an actor role may perform an action.
package access

import (
	"strings"

	"interviewsched/models"
)

// GuardRole fails with unauthorized when role is empty and forbidden when it
// is not one of allowed.
func GuardRole(role models.Role, allowed ...models.Role) error {
	if role == "" {
		return models.NewError(models.CodeUnauthorized, "X-User-Role header required")
	}
	for _, r := range allowed {
		if r == role {
			return nil
		}
	}
	return models.NewError(models.CodeForbidden, "Role not permitted for this action").
		WithDetails(map[string]any{"role": string(role)})
}

// ParseRole turns a raw header value into a Role. Surrounding whitespace is
// ignored; anything else is kept verbatim so unknown roles are forbidden
// rather than treated as missing.
func ParseRole(header string) models.Role {
	return models.Role(strings.TrimSpace(header))
}
