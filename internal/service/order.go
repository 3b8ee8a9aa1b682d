package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/Skotchmaster/restaurant_pos/internal/events"
	"github.com/Skotchmaster/restaurant_pos/internal/idempotency"
	"github.com/Skotchmaster/restaurant_pos/internal/models"
	"github.com/Skotchmaster/restaurant_pos/internal/repo"
	"github.com/Skotchmaster/restaurant_pos/internal/transport"
)

// totalTolerance absorbs float drift between the summed rows and the total
// computed from the request.
const totalTolerance = 0.005

type OrderService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
	Idem   *idempotency.Guard
}

func (s *OrderService) List(ctx context.Context) ([]models.OrderSummary, error) {
	orders, err := s.Repo.ListOrders(ctx)
	return orders, storeErr("order", err)
}

func (s *OrderService) Get(ctx context.Context, id uint) (*models.OrderDetail, error) {
	summary, err := s.Repo.GetOrderSummary(ctx, id)
	if err != nil {
		return nil, storeErr("order", err)
	}
	lines, err := s.Repo.ListOrderLines(ctx, id)
	if err != nil {
		return nil, storeErr("order", err)
	}
	return &models.OrderDetail{OrderSummary: *summary, Items: lines}, nil
}

// Create stores the order and all its items in one transaction. replayed is
// true when key was already used and the earlier order is returned.
func (s *OrderService) Create(ctx context.Context, req transport.CreateOrderRequest, key string) (*models.OrderDetail, bool, error) {
	if err := checkOrder(req); err != nil {
		return nil, false, err
	}

	id, replayed, err := s.Idem.Do(ctx, "orders", key, func() (uint, error) {
		return s.create(ctx, req)
	})
	if err != nil {
		return nil, false, err
	}

	detail, err := s.Get(ctx, id)
	if err != nil {
		return nil, false, err
	}

	if !replayed {
		events.Emit(ctx, s.Events, events.TopicOrders, events.Event{
			Type: "order_created",
			ID:   id,
			Data: map[string]any{"customer_id": detail.CustomerID, "total": detail.Total, "items": len(detail.Items)},
		})
	}
	return detail, replayed, nil
}

func (s *OrderService) create(ctx context.Context, req transport.CreateOrderRequest) (uint, error) {
	var orderID uint
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		if req.CustomerID != nil {
			ok, err := tx.CustomerExists(ctx, *req.CustomerID)
			if err != nil {
				return err
			}
			if !ok {
				return invalid("customer %d does not exist", *req.CustomerID)
			}
		}

		ids := make([]uint, 0, len(req.Items))
		for _, it := range req.Items {
			ids = append(ids, it.MenuItemID)
		}
		menu, err := tx.GetMenuItemsByIDs(ctx, ids)
		if err != nil {
			return err
		}

		items := make([]models.OrderItem, 0, len(req.Items))
		var total float64
		for _, it := range req.Items {
			mi, ok := menu[it.MenuItemID]
			if !ok {
				return invalid("menu item %d does not exist", it.MenuItemID)
			}
			if !mi.Available {
				return invalid("menu item %d is not available", it.MenuItemID)
			}
			price := mi.Price
			if it.Price != nil {
				price = *it.Price
			}
			price = round2(price)
			subtotal := round2(float64(it.Quantity) * price)
			total = round2(total + subtotal)
			items = append(items, models.OrderItem{
				MenuItemID: it.MenuItemID,
				Quantity:   it.Quantity,
				Price:      price,
				Subtotal:   subtotal,
			})
		}

		order := &models.Order{
			CustomerID: req.CustomerID,
			Status:     models.OrderStatusPending,
			Notes:      req.Notes,
		}
		if err := tx.CreateOrder(ctx, order); err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := tx.CreateOrderItems(ctx, items); err != nil {
			return err
		}
		if err := tx.UpdateOrderTotal(ctx, order.ID, total); err != nil {
			return err
		}

		stats, err := tx.OrderItemStats(ctx, order.ID)
		if err != nil {
			return err
		}
		if stats.Count != int64(len(items)) || math.Abs(stats.Total-total) > totalTolerance {
			return fmt.Errorf("order %d: stored %d items totalling %.2f, expected %d totalling %.2f",
				order.ID, stats.Count, stats.Total, len(items), total)
		}

		orderID = order.ID
		return nil
	})
	if err != nil {
		return 0, storeErr("order", err)
	}
	return orderID, nil
}

// UpdateStatus accepts any non-empty status; there is no transition table.
func (s *OrderService) UpdateStatus(ctx context.Context, id uint, status string) (*models.OrderSummary, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		return nil, invalid("status is required")
	}

	var prev string
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		order, err := tx.GetOrder(ctx, id)
		if err != nil {
			return err
		}
		prev = order.Status
		return tx.UpdateOrderStatus(ctx, id, status)
	})
	if err != nil {
		return nil, storeErr("order", err)
	}

	summary, err := s.Repo.GetOrderSummary(ctx, id)
	if err != nil {
		return nil, storeErr("order", err)
	}

	events.Emit(ctx, s.Events, events.TopicOrders, events.Event{
		Type: "order_status_changed",
		ID:   id,
		Data: map[string]any{"from": prev, "to": status},
	})
	return summary, nil
}

// Delete removes the order with its items. Orders that were billed stay.
func (s *OrderService) Delete(ctx context.Context, id uint) error {
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		if _, err := tx.GetOrder(ctx, id); err != nil {
			return err
		}
		n, err := tx.CountBillsForOrder(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return conflict("order %d has %d bill(s)", id, n)
		}
		if err := tx.DeleteOrderItems(ctx, id); err != nil {
			return err
		}
		return tx.DeleteOrder(ctx, id)
	})
	if err != nil {
		return storeErr("order", err)
	}

	events.Emit(ctx, s.Events, events.TopicOrders, events.Event{Type: "order_deleted", ID: id})
	return nil
}

func checkOrder(req transport.CreateOrderRequest) error {
	if len(req.Items) == 0 {
		return invalid("items required")
	}
	for i, it := range req.Items {
		if it.MenuItemID == 0 {
			return invalid("items[%d].menu_item_id required", i)
		}
		if it.Quantity <= 0 {
			return invalid("items[%d].quantity must be > 0", i)
		}
		if it.Price != nil && *it.Price < 0 {
			return invalid("items[%d].price must be >= 0", i)
		}
	}
	return nil
}
