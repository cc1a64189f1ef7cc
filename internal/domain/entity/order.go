package entity

import "time"

// Order statuses as written to the ledger.
const (
	OrderStatusPending = "pending"
)

// Order is one row appended to the order ledger.
type Order struct {
	ID          string
	UserID      string
	DisplayName string
	ProductCode string
	ProductName string
	Qty         int
	Price       float64
	Status      string
	CreatedAt   time.Time
}

// Total is the line total for the ordered quantity.
func (o Order) Total() float64 {
	return o.Price * float64(o.Qty)
}
