// Package handler implements the HTTP handlers. Authentication and
// role gating happen in middleware; the helpers here recover the
// caller's identity from the values the JWT middleware stored in the
// echo context.
package handler

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/example/mediatheque/internal/auth"
)

// getUserID extracts the user_id claim from the context and converts
// it to uint64. JWT numeric claims decode as float64; tokens issued
// by other tooling sometimes carry the subject as a string.
func getUserID(c echo.Context) (uint64, error) {
	switch t := c.Get("user_id").(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// getRole converts the role claim into a typed auth.Role. Anything
// missing or unrecognised yields RoleUnknown, for which every
// authorization predicate is false.
func getRole(c echo.Context) auth.Role {
	name, _ := c.Get("role").(string)
	return auth.RoleFromName(name)
}
