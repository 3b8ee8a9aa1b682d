package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/restaurant_pos/internal/logging"
	"github.com/Skotchmaster/restaurant_pos/internal/service"
	"github.com/Skotchmaster/restaurant_pos/internal/transport"
)

type BillingHTTP struct {
	Svc *service.BillingService
}

func (h *BillingHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "billing.list")

	bills, err := h.Svc.List(ctx)
	if err != nil {
		return fail(l, "list_bills_error", err)
	}
	return c.JSON(http.StatusOK, bills)
}

func (h *BillingHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "billing.get")

	id, err := parseID(c)
	if err != nil {
		return fail(l, "get_bill_error", err)
	}

	bill, err := h.Svc.Get(ctx, id)
	if err != nil {
		return fail(l, "get_bill_error", err)
	}
	return c.JSON(http.StatusOK, bill)
}

func (h *BillingHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "billing.create")

	var req transport.CreateBillRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(l, "create_bill_error", err)
	}
	if err := c.Validate(&req); err != nil {
		return fail(l, "create_bill_error", err)
	}

	bill, replayed, err := h.Svc.Create(ctx, req, c.Request().Header.Get(HeaderIdempotencyKey))
	if err != nil {
		return fail(l, "create_bill_error", err)
	}

	if replayed {
		l.Info("create_bill_replayed", "id", bill.ID)
		return c.JSON(http.StatusOK, bill)
	}
	l.Info("create_bill_success", "id", bill.ID, "bill_number", bill.BillNumber, "total", bill.Total)
	return c.JSON(http.StatusCreated, bill)
}

func (h *BillingHTTP) MarkPaid(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "billing.mark_paid")

	id, err := parseID(c)
	if err != nil {
		return fail(l, "mark_bill_paid_error", err)
	}

	var req transport.PaymentRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(l, "mark_bill_paid_error", err)
	}
	if err := c.Validate(&req); err != nil {
		return fail(l, "mark_bill_paid_error", err)
	}

	bill, err := h.Svc.MarkPaid(ctx, id, req.PaymentMethod)
	if err != nil {
		return fail(l, "mark_bill_paid_error", err)
	}

	l.Info("mark_bill_paid_success", "id", id, "payment_method", bill.PaymentMethod)
	return c.JSON(http.StatusOK, bill)
}
