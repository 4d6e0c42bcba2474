package restapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/spf13/cast"

	"github.com/autimapro/autimapro/internal/domain"
	"github.com/autimapro/autimapro/internal/store"
)

type productPayload struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Supplier    string  `json:"supplier"`
	Description string  `json:"description"`
	MinOrderQty int     `json:"minOrderQty"`
	Quantity    *int    `json:"quantity"`
}

// listProducts returns the catalog newest first. The size query parameter
// caps the result; non-numeric or zero values mean no limit.
func (a *API) listProducts(c echo.Context) error {
	size := cast.ToInt(c.QueryParam("size"))
	rows, err := a.catalog.List(c.Request().Context(), size)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}
	return ok(c, rows)
}

func (a *API) getProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	p, err := a.catalog.Get(c.Request().Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product", err.Error())
	}
	return ok(c, p)
}

func (a *API) createProduct(c echo.Context) error {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", nil)
	}
	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Name == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Name is required", nil)
	}
	if payload.Quantity == nil || *payload.Quantity < 0 {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Quantity is required and must be >= 0", nil)
	}

	p := domain.Product{
		Name:        payload.Name,
		Price:       payload.Price,
		Image:       strings.TrimSpace(payload.Image),
		Supplier:    payload.Supplier,
		Description: payload.Description,
		MinOrderQty: payload.MinOrderQty,
		Quantity:    *payload.Quantity,
	}
	if err := a.catalog.Create(c.Request().Context(), &p); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create product", err.Error())
	}
	return ok(c, p)
}

func (a *API) updateProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", nil)
	}

	updates := map[string]interface{}{}
	if name := strings.TrimSpace(payload.Name); name != "" {
		updates["name"] = name
	}
	if payload.Price > 0 {
		updates["price"] = payload.Price
	}
	if payload.Image != "" {
		updates["image"] = strings.TrimSpace(payload.Image)
	}
	if payload.Supplier != "" {
		updates["supplier"] = payload.Supplier
	}
	if payload.Description != "" {
		updates["description"] = payload.Description
	}
	if payload.MinOrderQty > 0 {
		updates["min_order_qty"] = payload.MinOrderQty
	}
	if payload.Quantity != nil && *payload.Quantity >= 0 {
		updates["quantity"] = *payload.Quantity
	}

	p, err := a.catalog.Update(c.Request().Context(), id, updates)
	if errors.Is(err, store.ErrNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update product", err.Error())
	}
	return ok(c, p)
}

func (a *API) deleteProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	err = a.catalog.Delete(c.Request().Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete product", err.Error())
	}
	return ok(c, echo.Map{"id": id})
}
