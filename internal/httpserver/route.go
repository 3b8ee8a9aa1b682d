package httpserver

import (
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/Skotchmaster/restaurant_pos/internal/config"
	loggingmw "github.com/Skotchmaster/restaurant_pos/internal/middleware/logging"
	"github.com/Skotchmaster/restaurant_pos/internal/transport"
)

type Deps struct {
	Menu         *MenuHTTP
	Customers    *CustomerHTTP
	Orders       *OrderHTTP
	Reservations *ReservationHTTP
	Billing      *BillingHTTP
	Reports      *ReportHTTP
	// Static is served at / when set.
	Static fs.FS
}

// New builds the echo instance with the shared middleware stack. Routes are
// added by Register.
func New(cfg config.Config, l *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()
	e.HTTPErrorHandler = ErrorHandler

	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(
		middleware.Recover(),
		middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}),
		loggingmw.RequestLogger(l),
	)

	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAccept, HeaderIdempotencyKey},
	}))

	if cfg.RateLimitRPS > 0 {
		e.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
			Skipper: middleware.DefaultSkipper,
			Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(cfg.RateLimitRPS),
				Burst:     cfg.RateLimitBurst,
				ExpiresIn: 3 * time.Minute,
			}),
			IdentifierExtractor: func(c echo.Context) (string, error) {
				return c.RealIP(), nil
			},
			DenyHandler: func(c echo.Context, identifier string, err error) error {
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded").SetInternal(err)
			},
		}))
	}

	return e
}

func Register(e *echo.Echo, d *Deps) {
	api := e.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, transport.HealthResponse{Status: "Server is running"})
	})

	menu := api.Group("/menu")
	menu.GET("", d.Menu.List)
	menu.GET("/search", d.Menu.Search)
	menu.GET("/category/:category", d.Menu.ListByCategory)
	menu.POST("", d.Menu.Create)
	menu.PUT("/:id", d.Menu.Update)
	menu.DELETE("/:id", d.Menu.Delete)

	customers := api.Group("/customers")
	customers.GET("", d.Customers.List)
	customers.GET("/:id", d.Customers.Get)
	customers.POST("", d.Customers.Create)
	customers.PUT("/:id", d.Customers.Update)
	customers.DELETE("/:id", d.Customers.Delete)

	orders := api.Group("/orders")
	orders.GET("", d.Orders.List)
	orders.GET("/:id", d.Orders.Get)
	orders.POST("", d.Orders.Create)
	orders.PUT("/:id", d.Orders.UpdateStatus)
	orders.DELETE("/:id", d.Orders.Delete)

	reservations := api.Group("/reservations")
	reservations.GET("", d.Reservations.List)
	reservations.GET("/:id", d.Reservations.Get)
	reservations.POST("", d.Reservations.Create)
	reservations.PUT("/:id", d.Reservations.Update)
	reservations.DELETE("/:id", d.Reservations.Delete)

	billing := api.Group("/billing")
	billing.GET("", d.Billing.List)
	billing.GET("/:id", d.Billing.Get)
	billing.POST("", d.Billing.Create)
	billing.PUT("/:id/payment", d.Billing.MarkPaid)

	api.GET("/reports/summary", d.Reports.Summary)

	if d.Static != nil {
		e.StaticFS("/", d.Static)
	}
}
