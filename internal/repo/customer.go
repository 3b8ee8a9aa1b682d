package repo

import (
	"context"

	"github.com/Skotchmaster/restaurant_pos/internal/models"
)

func (r *GormRepo) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	customers := []models.Customer{}
	if err := r.DB.WithContext(ctx).Order("name ASC").Order("id ASC").Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *GormRepo) GetCustomer(ctx context.Context, id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := r.DB.WithContext(ctx).First(&customer, id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *GormRepo) CustomerExists(ctx context.Context, id uint) (bool, error) {
	var n int64
	if err := r.DB.WithContext(ctx).Model(&models.Customer{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *GormRepo) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	return r.DB.WithContext(ctx).Create(customer).Error
}

func (r *GormRepo) SaveCustomer(ctx context.Context, customer *models.Customer) error {
	return r.DB.WithContext(ctx).Save(customer).Error
}

func (r *GormRepo) DeleteCustomer(ctx context.Context, id uint) error {
	return notFoundIfEmpty(r.DB.WithContext(ctx).Delete(&models.Customer{}, id))
}
