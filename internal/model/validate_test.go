package model

import (
	"errors"
	"strings"
	"testing"
)

func i64(v int64) *int64     { return &v }
func f64(v float64) *float64 { return &v }

func TestValidateCreateNormalizes(t *testing.T) {
	np, err := ValidateCreate(CreateRequest{
		Name:     "  Bolt  ",
		Quantity: i64(50),
		Category: " Hardware ",
		Price:    f64(12.5),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if np.Name != "Bolt" || np.Quantity != 50 || np.Category != "Hardware" || np.Price != 12.5 {
		t.Fatalf("unexpected: %+v", np)
	}
}

func TestValidateCreateDefaults(t *testing.T) {
	np, err := ValidateCreate(CreateRequest{Name: "Nut", Quantity: i64(0)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if np.Category != DefaultCategory {
		t.Fatalf("expected default category, got %q", np.Category)
	}
	if np.Price != 0 {
		t.Fatalf("expected default price, got %v", np.Price)
	}
}

func TestValidateCreateRejects(t *testing.T) {
	cases := []struct {
		name  string
		req   CreateRequest
		field string
	}{
		{"blank name", CreateRequest{Name: "   ", Quantity: i64(1)}, "name"},
		{"missing name", CreateRequest{Quantity: i64(1)}, "name"},
		{"missing quantity", CreateRequest{Name: "x"}, "quantity"},
		{"negative quantity", CreateRequest{Name: "x", Quantity: i64(-1)}, "quantity"},
		{"negative price", CreateRequest{Name: "x", Quantity: i64(1), Price: f64(-0.5)}, "price"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ValidateCreate(tc.req)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tc.field {
				t.Fatalf("expected field %q, got %q", tc.field, verr.Field)
			}
		})
	}
}

func TestValidateReduceAmount(t *testing.T) {
	if _, err := ValidateReduceAmount(0); err == nil {
		t.Fatalf("expected error for zero")
	}
	if _, err := ValidateReduceAmount(-3); err == nil {
		t.Fatalf("expected error for negative")
	}
	n, err := ValidateReduceAmount(7)
	if err != nil || n != 7 {
		t.Fatalf("unexpected: %d %v", n, err)
	}
}

func TestValidationErrorMessage(t *testing.T) {
	_, err := ValidateCreate(CreateRequest{Name: " "})
	if err == nil || !strings.Contains(err.Error(), "name") {
		t.Fatalf("expected field name in message, got %v", err)
	}
}
