package repo

import (
	"context"
	"time"

	"github.com/Skotchmaster/restaurant_pos/internal/models"
)

func (r *GormRepo) CountOrders(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Order{}).Count(&n).Error
	return n, err
}

func (r *GormRepo) CountOrdersByStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Order{}).Where("status = ?", status).Count(&n).Error
	return n, err
}

// OrdersSince returns the number and summed total of orders placed at or after since.
func (r *GormRepo) OrdersSince(ctx context.Context, since time.Time) (int64, float64, error) {
	var row struct {
		Count int64
		Total float64
	}
	err := r.DB.WithContext(ctx).
		Model(&models.Order{}).
		Select("COUNT(*) AS count, COALESCE(SUM(total), 0) AS total").
		Where("order_date >= ?", since).
		Scan(&row).Error
	return row.Count, row.Total, err
}

func (r *GormRepo) CountCustomers(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Customer{}).Count(&n).Error
	return n, err
}

func (r *GormRepo) BillTotals(ctx context.Context) (revenue float64, paid int64, unpaid int64, err error) {
	var row struct {
		Revenue float64
		Paid    int64
		Unpaid  int64
	}
	err = r.DB.WithContext(ctx).
		Model(&models.Bill{}).
		Select(
			"COALESCE(SUM(total), 0) AS revenue, "+
				"COALESCE(SUM(CASE WHEN payment_status = ? THEN 1 ELSE 0 END), 0) AS paid, "+
				"COALESCE(SUM(CASE WHEN payment_status = ? THEN 1 ELSE 0 END), 0) AS unpaid",
			models.PaymentStatusPaid, models.PaymentStatusUnpaid,
		).
		Scan(&row).Error
	return row.Revenue, row.Paid, row.Unpaid, err
}

func (r *GormRepo) TopItems(ctx context.Context, limit int) ([]models.TopItem, error) {
	items := []models.TopItem{}
	err := r.DB.WithContext(ctx).
		Table("order_items AS oi").
		Select("oi.menu_item_id AS menu_item_id, mi.name AS name, SUM(oi.quantity) AS quantity, SUM(oi.subtotal) AS revenue").
		Joins("LEFT JOIN menu_items mi ON mi.id = oi.menu_item_id").
		Group("oi.menu_item_id, mi.name").
		Order("quantity DESC").
		Order("oi.menu_item_id ASC").
		Limit(limit).
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
