package model

import (
	"fmt"
	"strings"
)

// ValidationError reports a malformed or missing input field. It is always
// mapped to a 400 response and never reaches a backing store.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ValidateCreate normalizes and validates a creation payload. All trimming
// and defaulting happens here; backings receive ready-to-store values.
func ValidateCreate(req CreateRequest) (NewProduct, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return NewProduct{}, &ValidationError{Field: "name", Reason: "is required"}
	}
	if req.Quantity == nil {
		return NewProduct{}, &ValidationError{Field: "quantity", Reason: "is required"}
	}
	if *req.Quantity < 0 {
		return NewProduct{}, &ValidationError{Field: "quantity", Reason: "must be >= 0"}
	}
	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = DefaultCategory
	}
	var price float64
	if req.Price != nil {
		if *req.Price < 0 {
			return NewProduct{}, &ValidationError{Field: "price", Reason: "must be >= 0"}
		}
		price = *req.Price
	}
	return NewProduct{
		Name:     name,
		Quantity: *req.Quantity,
		Category: category,
		Price:    price,
	}, nil
}

// ValidateReduceAmount checks a requested write-off amount.
func ValidateReduceAmount(amount int64) (int64, error) {
	if amount <= 0 {
		return 0, &ValidationError{Field: "quantity", Reason: "must be a positive integer"}
	}
	return amount, nil
}
