package repo

import (
	"context"

	"github.com/Skotchmaster/restaurant_pos/internal/models"
)

func (r *GormRepo) ListBills(ctx context.Context) ([]models.BillSummary, error) {
	rows := []models.BillSummary{}
	err := r.DB.WithContext(ctx).
		Table("bills AS b").
		Select("b.*, o.customer_id AS customer_id, c.name AS customer_name").
		Joins("LEFT JOIN orders o ON o.id = b.order_id").
		Joins("LEFT JOIN customers c ON c.id = o.customer_id").
		Order("b.created_at DESC").
		Order("b.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *GormRepo) GetBillHeader(ctx context.Context, id uint) (*models.BillHeader, error) {
	var row models.BillHeader
	res := r.DB.WithContext(ctx).
		Table("bills AS b").
		Select("b.*, o.customer_id AS customer_id, c.name AS customer_name, c.phone AS phone, c.email AS email").
		Joins("LEFT JOIN orders o ON o.id = b.order_id").
		Joins("LEFT JOIN customers c ON c.id = o.customer_id").
		Where("b.id = ?", id).
		Limit(1).
		Scan(&row)
	if err := notFoundIfEmpty(res); err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *GormRepo) GetBill(ctx context.Context, id uint) (*models.Bill, error) {
	var bill models.Bill
	if err := r.DB.WithContext(ctx).First(&bill, id).Error; err != nil {
		return nil, err
	}
	return &bill, nil
}

func (r *GormRepo) CountBillsForOrder(ctx context.Context, orderID uint) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Bill{}).Where("order_id = ?", orderID).Count(&n).Error
	return n, err
}

func (r *GormRepo) CreateBill(ctx context.Context, bill *models.Bill) error {
	return r.DB.WithContext(ctx).Create(bill).Error
}

func (r *GormRepo) MarkBillPaid(ctx context.Context, id uint, method string) error {
	return r.DB.WithContext(ctx).
		Model(&models.Bill{}).
		Where("id = ?", id).
		Updates(map[string]any{"payment_status": models.PaymentStatusPaid, "payment_method": method}).Error
}
