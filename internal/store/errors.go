package store

import (
	"errors"
	"fmt"
)

// ErrNotFound reports that no product exists under the requested id in the
// active backing.
var ErrNotFound = errors.New("product not found")

// InsufficientStockError rejects a reduce that would drive quantity
// negative. Available carries the quantity observed when the reduce failed.
type InsufficientStockError struct {
	Available int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: %d available", e.Available)
}

// StorageError wraps an I/O failure of the durable backing. Handlers map it
// to a generic 500; the wrapped driver error goes to the log only.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
