package restapi

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// ok responds with the uniform success envelope.
func ok(c echo.Context, data interface{}) error {
	return c.JSON(200, echo.Map{"code": "OK", "data": data})
}

// fail responds with the uniform failure envelope.
func fail(c echo.Context, status int, code, message string, detail interface{}) error {
	body := echo.Map{"code": code, "message": message}
	if detail != nil {
		body["detail"] = detail
	}
	return c.JSON(status, body)
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}
