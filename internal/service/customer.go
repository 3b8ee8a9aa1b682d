package service

import (
	"context"
	"strings"

	"github.com/Skotchmaster/restaurant_pos/internal/models"
	"github.com/Skotchmaster/restaurant_pos/internal/repo"
	"github.com/Skotchmaster/restaurant_pos/internal/transport"
)

type CustomerService struct {
	Repo *repo.GormRepo
}

func (s *CustomerService) List(ctx context.Context) ([]models.Customer, error) {
	customers, err := s.Repo.ListCustomers(ctx)
	return customers, storeErr("customer", err)
}

func (s *CustomerService) Get(ctx context.Context, id uint) (*models.Customer, error) {
	customer, err := s.Repo.GetCustomer(ctx, id)
	if err != nil {
		return nil, storeErr("customer", err)
	}
	return customer, nil
}

func (s *CustomerService) Create(ctx context.Context, req transport.CustomerRequest) (*models.Customer, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, invalid("name is required")
	}

	customer := &models.Customer{
		Name:    strings.TrimSpace(req.Name),
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
	}
	if err := s.Repo.CreateCustomer(ctx, customer); err != nil {
		return nil, storeErr("customer", err)
	}
	return customer, nil
}

func (s *CustomerService) Update(ctx context.Context, id uint, req transport.CustomerRequest) (*models.Customer, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, invalid("name is required")
	}

	var customer *models.Customer
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		cur, err := tx.GetCustomer(ctx, id)
		if err != nil {
			return err
		}
		cur.Name = strings.TrimSpace(req.Name)
		cur.Phone = req.Phone
		cur.Email = req.Email
		cur.Address = req.Address
		customer = cur
		return tx.SaveCustomer(ctx, cur)
	})
	if err != nil {
		return nil, storeErr("customer", err)
	}
	return customer, nil
}

// Delete does not touch orders or reservations that reference the customer.
func (s *CustomerService) Delete(ctx context.Context, id uint) error {
	return storeErr("customer", s.Repo.DeleteCustomer(ctx, id))
}
