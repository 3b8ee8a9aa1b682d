package repo

import (
	"context"

	"github.com/Skotchmaster/restaurant_pos/internal/models"
)

const orderSummarySelect = "o.*, c.name AS customer_name"

func (r *GormRepo) ListOrders(ctx context.Context) ([]models.OrderSummary, error) {
	rows := []models.OrderSummary{}
	err := r.DB.WithContext(ctx).
		Table("orders AS o").
		Select(orderSummarySelect).
		Joins("LEFT JOIN customers c ON c.id = o.customer_id").
		Order("o.order_date DESC").
		Order("o.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *GormRepo) GetOrderSummary(ctx context.Context, id uint) (*models.OrderSummary, error) {
	var row models.OrderSummary
	res := r.DB.WithContext(ctx).
		Table("orders AS o").
		Select(orderSummarySelect).
		Joins("LEFT JOIN customers c ON c.id = o.customer_id").
		Where("o.id = ?", id).
		Limit(1).
		Scan(&row)
	if err := notFoundIfEmpty(res); err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *GormRepo) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// ListOrderLines returns the stored line items of an order. The menu name is
// attached when the menu item still exists.
func (r *GormRepo) ListOrderLines(ctx context.Context, orderID uint) ([]models.OrderLine, error) {
	lines := []models.OrderLine{}
	err := r.DB.WithContext(ctx).
		Table("order_items AS oi").
		Select("oi.*, mi.name AS name").
		Joins("LEFT JOIN menu_items mi ON mi.id = oi.menu_item_id").
		Where("oi.order_id = ?", orderID).
		Order("oi.id ASC").
		Scan(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order) error {
	return r.DB.WithContext(ctx).Create(order).Error
}

func (r *GormRepo) CreateOrderItems(ctx context.Context, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Create(&items).Error
}

func (r *GormRepo) UpdateOrderTotal(ctx context.Context, id uint, total float64) error {
	return notFoundIfEmpty(r.DB.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Update("total", total))
}

func (r *GormRepo) UpdateOrderStatus(ctx context.Context, id uint, status string) error {
	return r.DB.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Update("status", status).Error
}

type OrderItemStats struct {
	Count int64
	Total float64
}

func (r *GormRepo) OrderItemStats(ctx context.Context, orderID uint) (OrderItemStats, error) {
	var stats OrderItemStats
	err := r.DB.WithContext(ctx).
		Model(&models.OrderItem{}).
		Select("COUNT(*) AS count, COALESCE(SUM(subtotal), 0) AS total").
		Where("order_id = ?", orderID).
		Scan(&stats).Error
	return stats, err
}

func (r *GormRepo) DeleteOrderItems(ctx context.Context, orderID uint) error {
	return r.DB.WithContext(ctx).Where("order_id = ?", orderID).Delete(&models.OrderItem{}).Error
}

func (r *GormRepo) DeleteOrder(ctx context.Context, id uint) error {
	return notFoundIfEmpty(r.DB.WithContext(ctx).Delete(&models.Order{}, id))
}
