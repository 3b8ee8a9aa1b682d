package models

// Read models produced by joins. They are scanned from query results and
// never written back.

type OrderSummary struct {
	Order
	CustomerName *string `json:"customer_name"`
}

type OrderLine struct {
	OrderItem
	Name *string `json:"name"`
}

type OrderDetail struct {
	OrderSummary
	Items []OrderLine `json:"items"`
}

type ReservationDetail struct {
	Reservation
	CustomerName *string `json:"customer_name"`
	Phone        *string `json:"phone"`
	Email        *string `json:"email"`
}

type BillSummary struct {
	Bill
	CustomerID   *uint   `json:"customer_id"`
	CustomerName *string `json:"customer_name"`
}

type BillHeader struct {
	BillSummary
	Phone *string `json:"phone"`
	Email *string `json:"email"`
}

type BillDetail struct {
	BillHeader
	Items []OrderLine `json:"items"`
}

type TopItem struct {
	MenuItemID uint    `json:"menu_item_id"`
	Name       *string `json:"name"`
	Quantity   int64   `json:"quantity"`
	Revenue    float64 `json:"revenue"`
}

type Summary struct {
	TodayOrders    int64     `json:"today_orders"`
	TodayRevenue   float64   `json:"today_revenue"`
	TotalCustomers int64     `json:"total_customers"`
	PendingOrders  int64     `json:"pending_orders"`
	TotalOrders    int64     `json:"total_orders"`
	TotalRevenue   float64   `json:"total_revenue"`
	AverageOrder   float64   `json:"average_order"`
	PaidBills      int64     `json:"paid_bills"`
	UnpaidBills    int64     `json:"unpaid_bills"`
	TopItems       []TopItem `json:"top_items"`
}
