package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/mediatheque/internal/auth"
)

func invokeWithRole(t *testing.T, mw echo.MiddlewareFunc, roleClaim interface{}) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if roleClaim != nil {
		c.Set("role", roleClaim)
	}
	h := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec
}

func TestRequireStaffAdmitsAdminAndEmployee(t *testing.T) {
	assert.Equal(t, http.StatusOK, invokeWithRole(t, RequireStaff(), "ADMIN").Code)
	assert.Equal(t, http.StatusOK, invokeWithRole(t, RequireStaff(), "EMPLOYEE").Code)
}

func TestRequireStaffRejectsClient(t *testing.T) {
	assert.Equal(t, http.StatusForbidden, invokeWithRole(t, RequireStaff(), "CLIENT").Code)
}

func TestRequireRoleRejectsMissingOrUnknownRole(t *testing.T) {
	mw := RequireRole(auth.RoleClient)
	assert.Equal(t, http.StatusForbidden, invokeWithRole(t, mw, nil).Code)
	assert.Equal(t, http.StatusForbidden, invokeWithRole(t, mw, "INTRUDER").Code)
	// A non-string claim must not panic, only reject.
	assert.Equal(t, http.StatusForbidden, invokeWithRole(t, mw, 3).Code)
}

func TestRequireRoleClient(t *testing.T) {
	mw := RequireRole(auth.RoleClient)
	assert.Equal(t, http.StatusOK, invokeWithRole(t, mw, "CLIENT").Code)
	assert.Equal(t, http.StatusForbidden, invokeWithRole(t, mw, "ADMIN").Code)
}
