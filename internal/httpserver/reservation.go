package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/restaurant_pos/internal/logging"
	"github.com/Skotchmaster/restaurant_pos/internal/service"
	"github.com/Skotchmaster/restaurant_pos/internal/transport"
)

type ReservationHTTP struct {
	Svc *service.ReservationService
}

func (h *ReservationHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "reservation.list")

	rows, err := h.Svc.List(ctx)
	if err != nil {
		return fail(l, "list_reservations_error", err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *ReservationHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "reservation.get")

	id, err := parseID(c)
	if err != nil {
		return fail(l, "get_reservation_error", err)
	}

	row, err := h.Svc.Get(ctx, id)
	if err != nil {
		return fail(l, "get_reservation_error", err)
	}
	return c.JSON(http.StatusOK, row)
}

func (h *ReservationHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "reservation.create")

	var req transport.CreateReservationRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(l, "create_reservation_error", err)
	}
	if err := c.Validate(&req); err != nil {
		return fail(l, "create_reservation_error", err)
	}

	reservation, err := h.Svc.Create(ctx, req)
	if err != nil {
		return fail(l, "create_reservation_error", err)
	}

	l.Info("create_reservation_success", "id", reservation.ID)
	return c.JSON(http.StatusCreated, reservation)
}

func (h *ReservationHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "reservation.update")

	id, err := parseID(c)
	if err != nil {
		return fail(l, "update_reservation_error", err)
	}

	var req transport.UpdateReservationRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(l, "update_reservation_error", err)
	}
	if err := c.Validate(&req); err != nil {
		return fail(l, "update_reservation_error", err)
	}

	reservation, err := h.Svc.Update(ctx, id, req)
	if err != nil {
		return fail(l, "update_reservation_error", err)
	}

	l.Info("update_reservation_success", "id", id)
	return c.JSON(http.StatusOK, reservation)
}

func (h *ReservationHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "reservation.delete")

	id, err := parseID(c)
	if err != nil {
		return fail(l, "delete_reservation_error", err)
	}

	if err := h.Svc.Delete(ctx, id); err != nil {
		return fail(l, "delete_reservation_error", err)
	}

	l.Info("delete_reservation_success", "id", id)
	return c.JSON(http.StatusOK, transport.DeletedResponse{Message: "Reservation deleted", ID: id})
}
