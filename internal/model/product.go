// Package model defines domain types used by the service.
package model

import "time"

// DefaultCategory is assigned when a product is created without a category.
const DefaultCategory = "uncategorized"

// Product represents one inventory record. The bson tags describe the
// document shape in the durable store; the volatile backing uses the same
// struct directly.
type Product struct {
	ID          string    `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	Quantity    int64     `json:"quantity" bson:"quantity"`
	Category    string    `json:"category" bson:"category"`
	Price       float64   `json:"price" bson:"price"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	LastUpdated time.Time `json:"lastUpdated" bson:"lastUpdated"`
}

// CreateRequest is the raw creation payload before validation. Pointers
// distinguish absent fields from zero values.
type CreateRequest struct {
	Name     string   `json:"name"`
	Quantity *int64   `json:"quantity"`
	Category string   `json:"category"`
	Price    *float64 `json:"price"`
}

// NewProduct is a normalized, validated creation payload. Identifier and
// timestamps are assigned by the backing store.
type NewProduct struct {
	Name     string
	Quantity int64
	Category string
	Price    float64
}

// CategoryCount is one bucket of the category aggregation.
type CategoryCount struct {
	Category string `json:"category" bson:"_id"`
	Count    int64  `json:"count" bson:"count"`
}

// Stats summarizes the whole collection.
type Stats struct {
	TotalProducts int64           `json:"totalProducts"`
	TotalValue    float64         `json:"totalValue"`
	Categories    []CategoryCount `json:"categories"`
	LowStock      int64           `json:"lowStock"`
}
