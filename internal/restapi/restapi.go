package restapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/autimapro/autimapro/config"
	"github.com/autimapro/autimapro/internal/events"
	"github.com/autimapro/autimapro/internal/payment"
	"github.com/autimapro/autimapro/internal/store"
	"github.com/autimapro/autimapro/internal/webserver"
)

// API holds the storefront REST handlers and their injected dependencies.
type API struct {
	cfg     *config.AppConfig
	users   *store.UserStore
	catalog *store.CatalogStore
	ledger  *store.OrderLedger
	gateway payment.Gateway
	bus     *events.Bus
}

func New(cfg *config.AppConfig, db *gorm.DB, gateway payment.Gateway, bus *events.Bus) *API {
	return &API{
		cfg:     cfg,
		users:   store.NewUserStore(db),
		catalog: store.NewCatalogStore(db),
		ledger:  store.NewOrderLedger(db),
		gateway: gateway,
		bus:     bus,
	}
}

// Register wires the storefront routes. Paths match the original service
// exactly; authorization is a chain of bearer verification and, where needed,
// the admin role check.
func (a *API) Register(ws *webserver.WebServer) {
	e := ws.Echo()
	auth := ws.BearerAuth()

	// Catalog
	e.GET("/product", a.listProducts)
	e.GET("/product/:id", a.getProduct, auth)
	e.POST("/product", a.createProduct, auth, a.adminOnly)
	e.PUT("/product/:id", a.updateProduct, auth, a.adminOnly)
	e.DELETE("/product/:id", a.deleteProduct, auth, a.adminOnly)

	// Users and tokens
	e.PUT("/token/:email", a.issueToken)
	e.GET("/user", a.listUsers, auth, a.adminOnly)
	e.PUT("/user/admin/:email", a.grantAdmin, auth, a.adminOnly)
	e.DELETE("/user/:email", a.deleteUser, auth, a.adminOnly)
	e.GET("/admin/:email", a.checkAdmin)

	// Orders
	e.POST("/order", a.placeOrder, auth)
	e.GET("/order/:email", a.listOrders, auth)
	e.DELETE("/order/:email", a.cancelOrder, auth)
	e.GET("/myorder/:id", a.getOrder)
	e.PUT("/myorder/:id", a.attachPayment, auth)

	// Payments
	e.POST("/create-payment-intent", a.createPaymentIntent, auth)
}

// adminOnly allows the request through only when the verified requester's
// account carries the admin role. A missing account denies like any other
// non-admin.
func (a *API) adminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		email := webserver.EmailFromContext(c)
		admin, err := a.users.IsAdmin(c.Request().Context(), email)
		if err != nil {
			return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to verify role", err.Error())
		}
		if !admin {
			return fail(c, http.StatusForbidden, "FORBIDDEN", "Admin role required", nil)
		}
		return next(c)
	}
}
