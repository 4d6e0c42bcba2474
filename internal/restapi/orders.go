package restapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/autimapro/autimapro/internal/domain"
	"github.com/autimapro/autimapro/internal/store"
	"github.com/autimapro/autimapro/internal/webserver"
)

type orderPayload struct {
	ProductID   int64   `json:"productId,string"`
	ProductName string  `json:"productName"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Address     string  `json:"address"`
	Phone       string  `json:"phone"`
}

// placeOrder is the stock-coupled placement path. The decrement runs as one
// conditional update, so two placements racing on the same product can never
// both consume the last units: the losing request is refused with 409 instead
// of writing a stale quantity.
func (a *API) placeOrder(c echo.Context) error {
	var payload orderPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse order", nil)
	}
	if payload.ProductID == 0 {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Product ID is required", nil)
	}
	if payload.Quantity < 1 {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Quantity must be >= 1", nil)
	}

	ctx := c.Request().Context()
	err := a.catalog.DecrementStock(ctx, payload.ProductID, payload.Quantity, a.cfg.Shop.LegacyZeroStockDrop)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	case errors.Is(err, store.ErrZeroStockDrop):
		return fail(c, http.StatusConflict, "ZERO_STOCK_DROP", "Order would exhaust stock", nil)
	case errors.Is(err, store.ErrInsufficientStock):
		return fail(c, http.StatusConflict, "INSUFFICIENT_STOCK", "Not enough stock for this order", nil)
	case err != nil:
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update stock", err.Error())
	}

	order := domain.Order{
		ProductID:   payload.ProductID,
		Email:       webserver.EmailFromContext(c),
		ProductName: payload.ProductName,
		Price:       payload.Price,
		Quantity:    payload.Quantity,
		Address:     payload.Address,
		Phone:       payload.Phone,
	}
	if err := a.ledger.Create(ctx, &order); err != nil {
		// Undo the decrement so stock is not stranded without an order.
		if rerr := a.catalog.RestoreStock(ctx, payload.ProductID, payload.Quantity); rerr != nil {
			zap.L().Error("failed to restore stock after order insert failure",
				zap.Int64("product_id", payload.ProductID),
				zap.Int("quantity", payload.Quantity),
				zap.Error(rerr))
		}
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to record order", err.Error())
	}

	a.bus.PublishOrderPlaced(&order)
	return ok(c, order)
}

// listOrders returns the requester's own orders; asking for another email is
// denied.
func (a *API) listOrders(c echo.Context) error {
	email := c.Param("email")
	if email != webserver.EmailFromContext(c) {
		return fail(c, http.StatusForbidden, "FORBIDDEN", "You can only view your own orders", nil)
	}
	rows, err := a.ledger.ListByEmail(c.Request().Context(), email)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query orders", err.Error())
	}
	return ok(c, rows)
}

func (a *API) getOrder(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID", nil)
	}
	o, err := a.ledger.Get(c.Request().Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Order not found", nil)
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query order", err.Error())
	}
	return ok(c, o)
}

type cancelOrderPayload struct {
	ID int64 `json:"id,string"`
}

// cancelOrder deletes an order owned by the requester. The order id travels
// in the body; the path email must match the token.
func (a *API) cancelOrder(c echo.Context) error {
	email := c.Param("email")
	if email != webserver.EmailFromContext(c) {
		return fail(c, http.StatusForbidden, "FORBIDDEN", "You can only cancel your own orders", nil)
	}
	var payload cancelOrderPayload
	if err := c.Bind(&payload); err != nil || payload.ID == 0 {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Order ID is required", nil)
	}
	err := a.ledger.DeleteOwned(c.Request().Context(), payload.ID, email)
	if errors.Is(err, store.ErrNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Order not found", nil)
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete order", err.Error())
	}
	return ok(c, echo.Map{"id": payload.ID})
}

type paymentConfirmPayload struct {
	TransactionID string `json:"transactionId"`
	Paid          bool   `json:"paid"`
}

// attachPayment records the client-reported payment confirmation on an order.
// Unknown ids fail with 404; no partial record is ever created.
func (a *API) attachPayment(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID", nil)
	}
	var payload paymentConfirmPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse payment confirmation", nil)
	}
	if payload.TransactionID == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Transaction ID is required", nil)
	}

	o, err := a.ledger.AttachPayment(c.Request().Context(), id, payload.TransactionID, payload.Paid)
	if errors.Is(err, store.ErrNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Order not found", nil)
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update order", err.Error())
	}

	a.bus.PublishOrderPaid(o)
	return ok(c, o)
}
