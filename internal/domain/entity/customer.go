package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer is a buyer of the shop.
// TotalPending is derived: the sum of pending balances over the customer's
// non-deleted invoices, recalculated after every invoice mutation.
type Customer struct {
	ID           string
	Name         string
	Phone        string
	Address      string
	GSTIN        string // optional
	TotalPending decimal.Decimal
	Deleted      bool // soft delete
	CreatedAt    time.Time
}
