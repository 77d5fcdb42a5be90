package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/example/mediatheque/internal/auth"
)

// RequireRole returns a middleware that rejects the request with 403
// unless the role claim stored by JWTAuth parses to one of the given
// roles. The raw claim string is converted through auth.RoleFromName
// so unknown or malformed role values collapse to RoleUnknown, which
// never matches.
func RequireRole(roles ...auth.Role) echo.MiddlewareFunc {
	allowed := make(map[auth.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			name, _ := c.Get("role").(string)
			if role := auth.RoleFromName(name); !allowed[role] {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}

// RequireStaff admits Admin and Employee callers only. Catalog
// mutations and reservation oversight go through this gate.
func RequireStaff() echo.MiddlewareFunc {
	return RequireRole(auth.RoleAdmin, auth.RoleEmployee)
}

// RequireAnyRole admits every known role but still rejects tokens
// whose role claim is missing or unrecognized.
func RequireAnyRole() echo.MiddlewareFunc {
	return RequireRole(auth.RoleAdmin, auth.RoleEmployee, auth.RoleClient)
}
