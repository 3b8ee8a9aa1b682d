package service

import (
	"context"
	"time"

	"github.com/Skotchmaster/restaurant_pos/internal/models"
	"github.com/Skotchmaster/restaurant_pos/internal/repo"
)

const topItemsLimit = 5

type ReportService struct {
	Repo *repo.GormRepo
	// Now defaults to time.Now.
	Now func() time.Time
}

// Summary aggregates the dashboard figures. "Today" is the server's local
// calendar day.
func (s *ReportService) Summary(ctx context.Context) (*models.Summary, error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}

	var (
		sum models.Summary
		err error
	)

	sum.TodayOrders, sum.TodayRevenue, err = s.Repo.OrdersSince(ctx, startOfDay(now()))
	if err != nil {
		return nil, storeErr("report", err)
	}
	if sum.TotalOrders, err = s.Repo.CountOrders(ctx); err != nil {
		return nil, storeErr("report", err)
	}
	if sum.PendingOrders, err = s.Repo.CountOrdersByStatus(ctx, models.OrderStatusPending); err != nil {
		return nil, storeErr("report", err)
	}
	if sum.TotalCustomers, err = s.Repo.CountCustomers(ctx); err != nil {
		return nil, storeErr("report", err)
	}
	if sum.TotalRevenue, sum.PaidBills, sum.UnpaidBills, err = s.Repo.BillTotals(ctx); err != nil {
		return nil, storeErr("report", err)
	}
	if sum.TopItems, err = s.Repo.TopItems(ctx, topItemsLimit); err != nil {
		return nil, storeErr("report", err)
	}

	sum.TodayRevenue = round2(sum.TodayRevenue)
	sum.TotalRevenue = round2(sum.TotalRevenue)
	if sum.TotalOrders > 0 {
		sum.AverageOrder = round2(sum.TotalRevenue / float64(sum.TotalOrders))
	}
	for i := range sum.TopItems {
		sum.TopItems[i].Revenue = round2(sum.TopItems[i].Revenue)
	}
	return &sum, nil
}

func startOfDay(t time.Time) time.Time {
	t = t.Local()
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local).UTC()
}
