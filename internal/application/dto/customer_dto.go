package dto

import "github.com/shopspring/decimal"

// CreateCustomerRequest body for POST /api/customers.
type CreateCustomerRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	GSTIN   string `json:"gstin,omitempty"`
}

// UpdateCustomerRequest body for PUT /api/customers/:id. Nil fields stay unchanged.
type UpdateCustomerRequest struct {
	Name    *string `json:"name,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
	GSTIN   *string `json:"gstin,omitempty"`
}

// CustomerResponse customer in responses.
type CustomerResponse struct {
	ID           string          `json:"customer_id"`
	Name         string          `json:"name"`
	Phone        string          `json:"phone"`
	Address      string          `json:"address"`
	GSTIN        string          `json:"gstin,omitempty"`
	TotalPending decimal.Decimal `json:"total_pending"`
	CreatedAt    string          `json:"created_at"`
}
