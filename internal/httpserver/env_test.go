package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/restaurant_pos/internal/config"
	"github.com/Skotchmaster/restaurant_pos/internal/db"
	"github.com/Skotchmaster/restaurant_pos/internal/events/eventstest"
	"github.com/Skotchmaster/restaurant_pos/internal/idempotency"
	"github.com/Skotchmaster/restaurant_pos/internal/logging"
	"github.com/Skotchmaster/restaurant_pos/internal/repo"
	"github.com/Skotchmaster/restaurant_pos/internal/service"
	"github.com/Skotchmaster/restaurant_pos/web"
)

type testEnv struct {
	T      *testing.T
	E      *echo.Echo
	Repo   *repo.GormRepo
	Events *eventstest.Recorder
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := config.Config{Storage: config.DriverSQLite, SQLitePath: ":memory:"}
	gdb, err := db.Open(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })
	require.NoError(t, db.Migrate(gdb))

	r := repo.New(gdb)
	rec := &eventstest.Recorder{}
	guard := idempotency.NewGuard(idempotency.NewMemoryStore(), 0)

	e := New(cfg, logging.NewWithWriter(io.Discard, "error"))
	Register(e, &Deps{
		Menu:         &MenuHTTP{Svc: &service.MenuService{Repo: r, Events: rec}},
		Customers:    &CustomerHTTP{Svc: &service.CustomerService{Repo: r}},
		Orders:       &OrderHTTP{Svc: &service.OrderService{Repo: r, Events: rec, Idem: guard}},
		Reservations: &ReservationHTTP{Svc: &service.ReservationService{Repo: r, Events: rec}},
		Billing:      &BillingHTTP{Svc: &service.BillingService{Repo: r, Events: rec, Idem: guard, Numbers: service.NewBillNumberer(), TaxRate: config.StandardTaxRate}},
		Reports:      &ReportHTTP{Svc: &service.ReportService{Repo: r}},
		Static:       web.Static(),
	})

	return &testEnv{T: t, E: e, Repo: r, Events: rec}
}

// do sends body as JSON (nil for no body) and returns the recorded response.
func (env *testEnv) do(method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	env.T.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(env.T, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

// doJSON performs the request, checks the status and decodes the body into out.
func (env *testEnv) doJSON(method, path string, body any, wantStatus int, out any, headers ...string) {
	env.T.Helper()

	rec := env.do(method, path, body, headers...)
	require.Equal(env.T, wantStatus, rec.Code, rec.Body.String())
	if out != nil {
		require.NoError(env.T, json.Unmarshal(rec.Body.Bytes(), out))
	}
}

func (env *testEnv) errorOf(rec *httptest.ResponseRecorder) string {
	env.T.Helper()

	var body struct {
		Error string `json:"error"`
	}
	require.NoError(env.T, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body.Error
}

type idOnly struct {
	ID uint `json:"id"`
}

func (env *testEnv) createMenuItem(name, category string, price float64) uint {
	env.T.Helper()
	var out idOnly
	env.doJSON(http.MethodPost, "/api/menu", map[string]any{"name": name, "category": category, "price": price}, http.StatusCreated, &out)
	return out.ID
}

func (env *testEnv) createCustomer(name string) uint {
	env.T.Helper()
	var out idOnly
	env.doJSON(http.MethodPost, "/api/customers", map[string]any{"name": name, "phone": "555-0100"}, http.StatusCreated, &out)
	return out.ID
}
