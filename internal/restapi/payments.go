package restapi

import (
	"math"
	"net/http"

	"github.com/labstack/echo/v4"
)

type paymentIntentPayload struct {
	Price float64 `json:"price"`
}

// createPaymentIntent asks the gateway for a pending charge of price in minor
// units and returns the client-side confirmation secret. Whether the intent
// ever completes is reported back by the client, not verified here.
func (a *API) createPaymentIntent(c echo.Context) error {
	var payload paymentIntentPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse payment request", nil)
	}
	if payload.Price <= 0 {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Price must be > 0", nil)
	}

	amount := int64(math.Round(payload.Price * 100))
	secret, err := a.gateway.CreateIntent(c.Request().Context(), amount, a.cfg.Shop.Currency)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "PAYMENT_ERROR", "Failed to create payment intent", err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"clientSecret": secret})
}
