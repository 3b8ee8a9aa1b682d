package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Skotchmaster/restaurant_pos/internal/events"
	"github.com/Skotchmaster/restaurant_pos/internal/idempotency"
	"github.com/Skotchmaster/restaurant_pos/internal/models"
	"github.com/Skotchmaster/restaurant_pos/internal/repo"
	"github.com/Skotchmaster/restaurant_pos/internal/transport"
)

// billNumberAttempts bounds retries when another process took the same number.
const billNumberAttempts = 3

type BillingService struct {
	Repo    *repo.GormRepo
	Events  events.Publisher
	Idem    *idempotency.Guard
	Numbers *BillNumberer
	// TaxRate applies when a request omits tax_rate.
	TaxRate float64
}

func (s *BillingService) List(ctx context.Context) ([]models.BillSummary, error) {
	bills, err := s.Repo.ListBills(ctx)
	return bills, storeErr("bill", err)
}

// Get returns the bill with the customer of its order and the order's items.
func (s *BillingService) Get(ctx context.Context, id uint) (*models.BillDetail, error) {
	header, err := s.Repo.GetBillHeader(ctx, id)
	if err != nil {
		return nil, storeErr("bill", err)
	}
	lines, err := s.Repo.ListOrderLines(ctx, header.OrderID)
	if err != nil {
		return nil, storeErr("bill", err)
	}
	return &models.BillDetail{BillHeader: *header, Items: lines}, nil
}

func (s *BillingService) Create(ctx context.Context, req transport.CreateBillRequest, key string) (*models.Bill, bool, error) {
	if req.OrderID == 0 {
		return nil, false, invalid("order_id is required")
	}

	rate := s.TaxRate
	if req.TaxRate != nil {
		rate = *req.TaxRate
	}
	var discount float64
	if req.Discount != nil {
		discount = *req.Discount
	}
	method := paymentMethod(req.PaymentMethod)

	id, replayed, err := s.Idem.Do(ctx, "bills", key, func() (uint, error) {
		return s.create(ctx, req.OrderID, rate, discount, method)
	})
	if err != nil {
		return nil, false, err
	}

	bill, err := s.Repo.GetBill(ctx, id)
	if err != nil {
		return nil, false, storeErr("bill", err)
	}

	if !replayed {
		events.Emit(ctx, s.Events, events.TopicBilling, events.Event{Type: "bill_created", ID: bill.ID, Data: bill})
	}
	return bill, replayed, nil
}

func (s *BillingService) create(ctx context.Context, orderID uint, rate, discount float64, method string) (uint, error) {
	var err error
	for attempt := 0; attempt < billNumberAttempts; attempt++ {
		var id uint
		id, err = s.insertBill(ctx, orderID, rate, discount, method)
		if err == nil {
			return id, nil
		}
		if !errors.Is(err, ErrConflict) {
			return 0, err
		}
	}
	return 0, err
}

func (s *BillingService) insertBill(ctx context.Context, orderID uint, rate, discount float64, method string) (uint, error) {
	var bill *models.Bill
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		order, err := tx.GetOrder(ctx, orderID)
		if err != nil {
			return storeErr("order", err)
		}

		amounts, err := ComputeBill(order.Total, rate, discount)
		if err != nil {
			return err
		}

		bill = &models.Bill{
			OrderID:       order.ID,
			BillNumber:    s.Numbers.Next(),
			Subtotal:      amounts.Subtotal,
			Tax:           amounts.Tax,
			Discount:      amounts.Discount,
			Total:         amounts.Total,
			PaymentStatus: models.PaymentStatusUnpaid,
			PaymentMethod: method,
		}
		return tx.CreateBill(ctx, bill)
	})
	if err != nil {
		return 0, storeErr("bill", err)
	}
	return bill.ID, nil
}

// MarkPaid is idempotent: paying a paid bill only updates the method.
func (s *BillingService) MarkPaid(ctx context.Context, id uint, method string) (*models.Bill, error) {
	method = paymentMethod(method)

	var wasPaid bool
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		bill, err := tx.GetBill(ctx, id)
		if err != nil {
			return err
		}
		wasPaid = bill.PaymentStatus == models.PaymentStatusPaid
		return tx.MarkBillPaid(ctx, id, method)
	})
	if err != nil {
		return nil, storeErr("bill", err)
	}

	bill, err := s.Repo.GetBill(ctx, id)
	if err != nil {
		return nil, storeErr("bill", err)
	}

	if !wasPaid {
		events.Emit(ctx, s.Events, events.TopicBilling, events.Event{
			Type: "bill_paid",
			ID:   id,
			Data: map[string]any{"order_id": bill.OrderID, "total": bill.Total, "payment_method": bill.PaymentMethod},
		})
	}
	return bill, nil
}

func paymentMethod(v string) string {
	if v = strings.TrimSpace(v); v == "" {
		return models.DefaultPaymentMethod
	}
	return v
}
