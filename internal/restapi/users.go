package restapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/autimapro/autimapro/internal/domain"
	"github.com/autimapro/autimapro/internal/store"
)

func (a *API) listUsers(c echo.Context) error {
	rows, err := a.users.List(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query users", err.Error())
	}
	return ok(c, rows)
}

// grantAdmin promotes an existing account to the admin role.
func (a *API) grantAdmin(c echo.Context) error {
	email := strings.TrimSpace(c.Param("email"))
	if email == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Email is required", nil)
	}
	err := a.users.SetRole(c.Request().Context(), email, domain.RoleAdmin)
	if errors.Is(err, store.ErrNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "User not found", nil)
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update role", err.Error())
	}
	return ok(c, echo.Map{"email": email, "role": domain.RoleAdmin})
}

func (a *API) deleteUser(c echo.Context) error {
	email := strings.TrimSpace(c.Param("email"))
	err := a.users.Delete(c.Request().Context(), email)
	if errors.Is(err, store.ErrNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "User not found", nil)
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete user", err.Error())
	}
	return ok(c, echo.Map{"email": email})
}

// checkAdmin is the public boolean admin probe used by the storefront UI.
func (a *API) checkAdmin(c echo.Context) error {
	email := strings.TrimSpace(c.Param("email"))
	admin, err := a.users.IsAdmin(c.Request().Context(), email)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query user", err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"admin": admin})
}
