package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/restaurant_pos/internal/logging"
	"github.com/Skotchmaster/restaurant_pos/internal/service"
	"github.com/Skotchmaster/restaurant_pos/internal/transport"
)

type CustomerHTTP struct {
	Svc *service.CustomerService
}

func (h *CustomerHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "customer.list")

	customers, err := h.Svc.List(ctx)
	if err != nil {
		return fail(l, "list_customers_error", err)
	}
	return c.JSON(http.StatusOK, customers)
}

func (h *CustomerHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "customer.get")

	id, err := parseID(c)
	if err != nil {
		return fail(l, "get_customer_error", err)
	}

	customer, err := h.Svc.Get(ctx, id)
	if err != nil {
		return fail(l, "get_customer_error", err)
	}
	return c.JSON(http.StatusOK, customer)
}

func (h *CustomerHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "customer.create")

	var req transport.CustomerRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(l, "create_customer_error", err)
	}
	if err := c.Validate(&req); err != nil {
		return fail(l, "create_customer_error", err)
	}

	customer, err := h.Svc.Create(ctx, req)
	if err != nil {
		return fail(l, "create_customer_error", err)
	}

	l.Info("create_customer_success", "id", customer.ID)
	return c.JSON(http.StatusCreated, customer)
}

func (h *CustomerHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "customer.update")

	id, err := parseID(c)
	if err != nil {
		return fail(l, "update_customer_error", err)
	}

	var req transport.CustomerRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(l, "update_customer_error", err)
	}
	if err := c.Validate(&req); err != nil {
		return fail(l, "update_customer_error", err)
	}

	customer, err := h.Svc.Update(ctx, id, req)
	if err != nil {
		return fail(l, "update_customer_error", err)
	}

	l.Info("update_customer_success", "id", id)
	return c.JSON(http.StatusOK, customer)
}

func (h *CustomerHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "customer.delete")

	id, err := parseID(c)
	if err != nil {
		return fail(l, "delete_customer_error", err)
	}

	if err := h.Svc.Delete(ctx, id); err != nil {
		return fail(l, "delete_customer_error", err)
	}

	l.Info("delete_customer_success", "id", id)
	return c.JSON(http.StatusOK, transport.DeletedResponse{Message: "Customer deleted", ID: id})
}
