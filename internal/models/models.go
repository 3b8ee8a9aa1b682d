package models

import (
	"time"
)

const (
	OrderStatusPending = "pending"

	ReservationStatusConfirmed = "confirmed"

	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"

	DefaultPaymentMethod = "cash"
)

type MenuItem struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"not null"                 json:"name"`
	Category    string    `gorm:"not null;index"           json:"category"`
	Price       float64   `gorm:"not null"                 json:"price"`
	Description string    `json:"description"`
	Available   bool      `gorm:"not null"                 json:"available"`
	CreatedAt   time.Time `json:"created_at"`
}

type Customer struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"not null"                 json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

// Order.CustomerID is nil for walk-in orders.
type Order struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID *uint     `gorm:"index"                    json:"customer_id"`
	OrderDate  time.Time `gorm:"autoCreateTime;index"     json:"order_date"`
	Status     string    `gorm:"not null"                 json:"status"`
	Total      float64   `gorm:"not null"                 json:"total"`
	Notes      string    `json:"notes"`
}

// OrderItem keeps the price at order time; it never depends on the current menu row.
type OrderItem struct {
	ID         uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID    uint    `gorm:"not null;index"           json:"order_id"`
	MenuItemID uint    `gorm:"not null;index"           json:"menu_item_id"`
	Quantity   int     `gorm:"not null"                 json:"quantity"`
	Price      float64 `gorm:"not null"                 json:"price"`
	Subtotal   float64 `gorm:"not null"                 json:"subtotal"`
}

type Reservation struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID      uint      `gorm:"not null;index"           json:"customer_id"`
	ReservationDate time.Time `gorm:"not null;index"           json:"reservation_date"`
	GuestCount      int       `gorm:"not null"                 json:"guest_count"`
	Status          string    `gorm:"not null"                 json:"status"`
	Notes           string    `json:"notes"`
	CreatedAt       time.Time `json:"created_at"`
}

type Bill struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID       uint      `gorm:"not null;index"           json:"order_id"`
	BillNumber    string    `gorm:"uniqueIndex;not null"     json:"bill_number"`
	Subtotal      float64   `gorm:"not null"                 json:"subtotal"`
	Tax           float64   `gorm:"not null"                 json:"tax"`
	Discount      float64   `gorm:"not null"                 json:"discount"`
	Total         float64   `gorm:"not null"                 json:"total"`
	PaymentStatus string    `gorm:"not null"                 json:"payment_status"`
	PaymentMethod string    `json:"payment_method"`
	CreatedAt     time.Time `json:"created_at"`
}

// All returns every persisted model in migration order.
func All() []any {
	return []any{&MenuItem{}, &Customer{}, &Order{}, &OrderItem{}, &Reservation{}, &Bill{}}
}
