package transport

type MenuItemRequest struct {
	Name        string   `json:"name"        validate:"required,max=200"`
	Category    string   `json:"category"    validate:"required,max=100"`
	Price       *float64 `json:"price"       validate:"required,gte=0"`
	Description string   `json:"description" validate:"max=2000"`
	Available   *bool    `json:"available"`
}

type CustomerRequest struct {
	Name    string `json:"name"    validate:"required,max=200"`
	Phone   string `json:"phone"   validate:"max=50"`
	Email   string `json:"email"   validate:"omitempty,email,max=200"`
	Address string `json:"address" validate:"max=500"`
}

type OrderItemRequest struct {
	MenuItemID uint `json:"menu_item_id" validate:"required"`
	Quantity   int  `json:"quantity"     validate:"min=1"`
	// Price is the unit price to snapshot; nil takes the current menu price.
	Price *float64 `json:"price" validate:"omitempty,gte=0"`
}

type CreateOrderRequest struct {
	CustomerID *uint              `json:"customer_id"`
	Items      []OrderItemRequest `json:"items"       validate:"required,min=1,dive"`
	Notes      string             `json:"notes"       validate:"max=1000"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,max=32"`
}

type CreateReservationRequest struct {
	CustomerID      uint   `json:"customer_id"      validate:"required"`
	ReservationDate string `json:"reservation_date" validate:"required"`
	GuestCount      int    `json:"guest_count"      validate:"min=1,max=500"`
	Notes           string `json:"notes"            validate:"max=1000"`
}

type UpdateReservationRequest struct {
	ReservationDate string `json:"reservation_date" validate:"required"`
	GuestCount      int    `json:"guest_count"      validate:"min=1,max=500"`
	Status          string `json:"status"           validate:"max=32"`
	Notes           string `json:"notes"            validate:"max=1000"`
}

type CreateBillRequest struct {
	OrderID       uint     `json:"order_id"       validate:"required"`
	TaxRate       *float64 `json:"tax_rate"       validate:"omitempty,gte=0,lte=100"`
	Discount      *float64 `json:"discount"       validate:"omitempty,gte=0"`
	PaymentMethod string   `json:"payment_method" validate:"max=32"`
}

type PaymentRequest struct {
	PaymentMethod string `json:"payment_method" validate:"max=32"`
}

type DeletedResponse struct {
	Message string `json:"message"`
	ID      uint   `json:"id"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
