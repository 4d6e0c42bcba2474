package restapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/autimapro/autimapro/internal/webserver"
)

// issueToken upserts the account keyed by the path email and returns a signed
// bearer token for it. The original service answered missing input with a
// 200 denial body; here a blank email is an explicit 400.
func (a *API) issueToken(c echo.Context) error {
	email := strings.TrimSpace(c.Param("email"))
	if email == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Email is required", nil)
	}

	user, created, err := a.users.Upsert(c.Request().Context(), email)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to upsert user", err.Error())
	}

	token, err := webserver.IssueToken(email, a.cfg.Web.Secret, webserver.TokenExpiry)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "TOKEN_ERROR", "Failed to issue token", err.Error())
	}

	return ok(c, echo.Map{
		"token":    token,
		"upserted": created,
		"user":     user,
	})
}
