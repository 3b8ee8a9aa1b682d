package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/restaurant_pos/internal/logging"
	"github.com/Skotchmaster/restaurant_pos/internal/service"
	"github.com/Skotchmaster/restaurant_pos/internal/transport"
	"github.com/Skotchmaster/restaurant_pos/internal/util"
)

type MenuHTTP struct {
	Svc *service.MenuService
}

func (h *MenuHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "menu.list")

	items, err := h.Svc.List(ctx)
	if err != nil {
		return fail(l, "list_menu_error", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *MenuHTTP) ListByCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "menu.list_by_category")

	items, err := h.Svc.ListByCategory(ctx, c.Param("category"))
	if err != nil {
		return fail(l, "list_menu_category_error", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *MenuHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "menu.search")

	limit := util.ParseIntDefault(c.QueryParam("limit"), util.DefaultLimit)

	items, err := h.Svc.Search(ctx, c.QueryParam("q"), limit)
	if err != nil {
		return fail(l, "search_menu_error", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *MenuHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "menu.create")

	var req transport.MenuItemRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(l, "create_menu_item_error", err)
	}
	if err := c.Validate(&req); err != nil {
		return fail(l, "create_menu_item_error", err)
	}

	item, err := h.Svc.Create(ctx, req)
	if err != nil {
		return fail(l, "create_menu_item_error", err)
	}

	l.Info("create_menu_item_success", "id", item.ID)
	return c.JSON(http.StatusCreated, item)
}

func (h *MenuHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "menu.update")

	id, err := parseID(c)
	if err != nil {
		return fail(l, "update_menu_item_error", err)
	}

	var req transport.MenuItemRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(l, "update_menu_item_error", err)
	}
	if err := c.Validate(&req); err != nil {
		return fail(l, "update_menu_item_error", err)
	}

	item, err := h.Svc.Update(ctx, id, req)
	if err != nil {
		return fail(l, "update_menu_item_error", err)
	}

	l.Info("update_menu_item_success", "id", id)
	return c.JSON(http.StatusOK, item)
}

func (h *MenuHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "menu.delete")

	id, err := parseID(c)
	if err != nil {
		return fail(l, "delete_menu_item_error", err)
	}

	if err := h.Svc.Delete(ctx, id); err != nil {
		return fail(l, "delete_menu_item_error", err)
	}

	l.Info("delete_menu_item_success", "id", id)
	return c.JSON(http.StatusOK, transport.DeletedResponse{Message: "Menu item deleted", ID: id})
}
