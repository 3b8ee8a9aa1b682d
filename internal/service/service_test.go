package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/restaurant_pos/internal/config"
	"github.com/Skotchmaster/restaurant_pos/internal/db"
	"github.com/Skotchmaster/restaurant_pos/internal/events/eventstest"
	"github.com/Skotchmaster/restaurant_pos/internal/idempotency"
	"github.com/Skotchmaster/restaurant_pos/internal/models"
	"github.com/Skotchmaster/restaurant_pos/internal/repo"
	"github.com/Skotchmaster/restaurant_pos/internal/transport"
)

type services struct {
	repo      *repo.GormRepo
	events    *eventstest.Recorder
	menu      *MenuService
	customers *CustomerService
	orders    *OrderService
	billing   *BillingService
}

func newServices(t *testing.T) services {
	t.Helper()

	gdb, err := db.Open(context.Background(), config.Config{Storage: config.DriverSQLite, SQLitePath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })
	require.NoError(t, db.Migrate(gdb))

	r := repo.New(gdb)
	rec := &eventstest.Recorder{}
	guard := idempotency.NewGuard(idempotency.NewMemoryStore(), 0)

	return services{
		repo:      r,
		events:    rec,
		menu:      &MenuService{Repo: r, Events: rec},
		customers: &CustomerService{Repo: r},
		orders:    &OrderService{Repo: r, Events: rec, Idem: guard},
		billing:   &BillingService{Repo: r, Events: rec, Idem: guard, Numbers: NewBillNumberer(), TaxRate: config.StandardTaxRate},
	}
}

func price(v float64) *float64 { return &v }

func (s services) menuItem(t *testing.T, name string, p float64) *models.MenuItem {
	t.Helper()
	item, err := s.menu.Create(context.Background(), transport.MenuItemRequest{Name: name, Category: "mains", Price: price(p)})
	require.NoError(t, err)
	return item
}

func TestOrderService_CreateStoresItemsAndTotal(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	burger := s.menuItem(t, "Burger", 8.5)
	fries := s.menuItem(t, "Fries", 3.25)

	order, replayed, err := s.orders.Create(ctx, transport.CreateOrderRequest{
		Items: []transport.OrderItemRequest{
			{MenuItemID: burger.ID, Quantity: 2},
			{MenuItemID: fries.ID, Quantity: 3, Price: price(3)},
		},
		Notes: "no onions",
	}, "")
	require.NoError(t, err)
	assert.False(t, replayed)

	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Nil(t, order.CustomerID)
	assert.InDelta(t, 26.0, order.Total, 1e-9)
	require.Len(t, order.Items, 2)
	assert.InDelta(t, 17.0, order.Items[0].Subtotal, 1e-9)
	assert.InDelta(t, 3.0, order.Items[1].Price, 1e-9)
	require.NotNil(t, order.Items[0].Name)
	assert.Equal(t, "Burger", *order.Items[0].Name)

	stats, err := s.repo.OrderItemStats(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Count)
	assert.InDelta(t, order.Total, stats.Total, 1e-9)
}

func TestOrderService_CreateRollsBackOnUnknownMenuItem(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	burger := s.menuItem(t, "Burger", 8.5)

	_, _, err := s.orders.Create(ctx, transport.CreateOrderRequest{
		Items: []transport.OrderItemRequest{
			{MenuItemID: burger.ID, Quantity: 1},
			{MenuItemID: burger.ID + 100, Quantity: 1},
		},
	}, "")
	require.ErrorIs(t, err, ErrValidation)

	n, err := s.repo.CountOrders(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NotContains(t, s.events.Types(), "order_created")
}

func TestOrderService_CreateRejectsUnknownCustomer(t *testing.T) {
	s := newServices(t)
	burger := s.menuItem(t, "Burger", 8.5)

	missing := uint(42)
	_, _, err := s.orders.Create(context.Background(), transport.CreateOrderRequest{
		CustomerID: &missing,
		Items:      []transport.OrderItemRequest{{MenuItemID: burger.ID, Quantity: 1}},
	}, "")
	require.ErrorIs(t, err, ErrValidation)
}

func TestOrderService_CreateIsIdempotent(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	burger := s.menuItem(t, "Burger", 8.5)

	req := transport.CreateOrderRequest{Items: []transport.OrderItemRequest{{MenuItemID: burger.ID, Quantity: 1}}}

	first, replayed, err := s.orders.Create(ctx, req, "key-1")
	require.NoError(t, err)
	assert.False(t, replayed)

	second, replayed, err := s.orders.Create(ctx, req, "key-1")
	require.NoError(t, err)
	assert.True(t, replayed)
	assert.Equal(t, first.ID, second.ID)

	n, err := s.repo.CountOrders(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestOrderService_DeleteBilledOrderConflicts(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	burger := s.menuItem(t, "Burger", 10)

	order, _, err := s.orders.Create(ctx, transport.CreateOrderRequest{
		Items: []transport.OrderItemRequest{{MenuItemID: burger.ID, Quantity: 1}},
	}, "")
	require.NoError(t, err)

	_, _, err = s.billing.Create(ctx, transport.CreateBillRequest{OrderID: order.ID}, "")
	require.NoError(t, err)

	require.ErrorIs(t, s.orders.Delete(ctx, order.ID), ErrConflict)
	require.ErrorIs(t, s.orders.Delete(ctx, order.ID+1), ErrNotFound)
}

func TestBillingService_MarkPaidTwice(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	burger := s.menuItem(t, "Burger", 100)

	order, _, err := s.orders.Create(ctx, transport.CreateOrderRequest{
		Items: []transport.OrderItemRequest{{MenuItemID: burger.ID, Quantity: 1}},
	}, "")
	require.NoError(t, err)

	bill, _, err := s.billing.Create(ctx, transport.CreateBillRequest{OrderID: order.ID}, "")
	require.NoError(t, err)
	assert.InDelta(t, 10.0, bill.Tax, 1e-9)
	assert.InDelta(t, 110.0, bill.Total, 1e-9)
	assert.Equal(t, models.PaymentStatusUnpaid, bill.PaymentStatus)
	assert.Equal(t, models.DefaultPaymentMethod, bill.PaymentMethod)

	paid, err := s.billing.MarkPaid(ctx, bill.ID, "card")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, paid.PaymentStatus)
	assert.Equal(t, "card", paid.PaymentMethod)

	paid, err = s.billing.MarkPaid(ctx, bill.ID, "")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, paid.PaymentStatus)

	var paidEvents int
	for _, typ := range s.events.Types() {
		if typ == "bill_paid" {
			paidEvents++
		}
	}
	assert.Equal(t, 1, paidEvents)

	_, err = s.billing.MarkPaid(ctx, bill.ID+1, "")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestBillingService_CreateUnknownOrder(t *testing.T) {
	s := newServices(t)
	_, _, err := s.billing.Create(context.Background(), transport.CreateBillRequest{OrderID: 99}, "")
	require.ErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, "order not found")
}

func TestBillingService_ZeroDefaultTaxRate(t *testing.T) {
	s := newServices(t)
	s.billing.TaxRate = 0
	ctx := context.Background()
	burger := s.menuItem(t, "Burger", 100)

	order, _, err := s.orders.Create(ctx, transport.CreateOrderRequest{
		Items: []transport.OrderItemRequest{{MenuItemID: burger.ID, Quantity: 1}},
	}, "")
	require.NoError(t, err)

	bill, _, err := s.billing.Create(ctx, transport.CreateBillRequest{OrderID: order.ID}, "")
	require.NoError(t, err)
	assert.Zero(t, bill.Tax)
	assert.InDelta(t, 100.0, bill.Total, 1e-9)

	bill, _, err = s.billing.Create(ctx, transport.CreateBillRequest{OrderID: order.ID, TaxRate: price(20)}, "")
	require.NoError(t, err)
	assert.InDelta(t, 20.0, bill.Tax, 1e-9)
}

func TestMenuService_DeleteKeepsOrderSnapshot(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	soup := s.menuItem(t, "Soup", 6)

	order, _, err := s.orders.Create(ctx, transport.CreateOrderRequest{
		Items: []transport.OrderItemRequest{{MenuItemID: soup.ID, Quantity: 2}},
	}, "")
	require.NoError(t, err)

	require.NoError(t, s.menu.Delete(ctx, soup.ID))
	require.ErrorIs(t, s.menu.Delete(ctx, soup.ID), ErrNotFound)

	got, err := s.orders.Get(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.InDelta(t, 6.0, got.Items[0].Price, 1e-9)
	assert.InDelta(t, 12.0, got.Items[0].Subtotal, 1e-9)
	assert.Nil(t, got.Items[0].Name)
	assert.InDelta(t, 12.0, got.Total, 1e-9)
}

func TestMenuService_SearchFallsBackToSQL(t *testing.T) {
	s := newServices(t)
	s.menuItem(t, "Tomato Soup", 6)
	s.menuItem(t, "Steak", 25)

	items, err := s.menu.Search(context.Background(), "soup", 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Tomato Soup", items[0].Name)

	_, err = s.menu.Search(context.Background(), "  ", 10)
	require.ErrorIs(t, err, ErrValidation)
}

type fakeIndex struct {
	ids     []uint
	err     error
	indexed []uint
	removed []uint
}

func (f *fakeIndex) IndexMenuItem(_ context.Context, item models.MenuItem) error {
	f.indexed = append(f.indexed, item.ID)
	return nil
}

func (f *fakeIndex) RemoveMenuItem(_ context.Context, id uint) error {
	f.removed = append(f.removed, id)
	return nil
}

func (f *fakeIndex) SearchMenu(context.Context, string, int) ([]uint, error) {
	return f.ids, f.err
}

func TestMenuService_SearchUsesIndexRanking(t *testing.T) {
	s := newServices(t)
	ix := &fakeIndex{}
	s.menu.Index = ix

	soup := s.menuItem(t, "Soup", 6)
	stew := s.menuItem(t, "Stew", 9)
	assert.Equal(t, []uint{soup.ID, stew.ID}, ix.indexed)

	ix.ids = []uint{stew.ID, 999, soup.ID}
	items, err := s.menu.Search(context.Background(), "s", 10)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, stew.ID, items[0].ID)
	assert.Equal(t, soup.ID, items[1].ID)

	require.NoError(t, s.menu.Delete(context.Background(), soup.ID))
	assert.Equal(t, []uint{soup.ID}, ix.removed)

	n, err := s.menu.Reindex(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestMenuService_SearchFallsBackWhenIndexFails(t *testing.T) {
	s := newServices(t)
	s.menu.Index = &fakeIndex{err: assert.AnError}
	s.menuItem(t, "Garlic Bread", 4)

	items, err := s.menu.Search(context.Background(), "garlic", 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Garlic Bread", items[0].Name)
}
