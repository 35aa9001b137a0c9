package repository

import (
	"github.com/shopspring/decimal"
	"github.com/tilekart/tilebill/internal/domain/entity"
)

// CustomerRepository persistence port for customers.
// Reads exclude soft-deleted rows; GetByID returns (nil, nil) when missing.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	List() ([]*entity.Customer, error)
	Update(customer *entity.Customer) error
	SoftDelete(id string) error
	UpdateTotalPending(id string, total decimal.Decimal) error
}
