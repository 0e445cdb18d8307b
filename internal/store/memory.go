package store

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/warehousekit/warehouse-api/internal/model"
)

// MemoryStore is the volatile backing: a mutex-guarded in-process table
// with a monotonic id counter. Records are lost on process exit.
type MemoryStore struct {
	mu       sync.Mutex
	products []model.Product
	nextID   int64
}

// NewMemoryStore creates an empty volatile store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

func (s *MemoryStore) Source() string { return SourceVolatile }

func (s *MemoryStore) Create(_ context.Context, np model.NewProduct) (model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	p := model.Product{
		ID:          strconv.FormatInt(s.nextID, 10),
		Name:        np.Name,
		Quantity:    np.Quantity,
		Category:    np.Category,
		Price:       np.Price,
		CreatedAt:   now,
		LastUpdated: now,
	}
	s.nextID++
	s.products = append(s.products, p)
	return p, nil
}

func (s *MemoryStore) List(_ context.Context) ([]model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Insertion order reversed matches the durable createdAt-descending sort.
	out := make([]model.Product, 0, len(s.products))
	for i := len(s.products) - 1; i >= 0; i-- {
		out = append(out, s.products[i])
	}
	return out, nil
}

func (s *MemoryStore) Reduce(_ context.Context, id string, amount int64) (model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return model.Product{}, ErrNotFound
	}
	// Check-and-update stays under the lock so concurrent reduces on the
	// same id serialize and the quantity can never go negative.
	if s.products[i].Quantity < amount {
		return model.Product{}, &InsufficientStockError{Available: s.products[i].Quantity}
	}
	s.products[i].Quantity -= amount
	s.products[i].LastUpdated = time.Now().UTC()
	return s.products[i], nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) (model.Product, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return model.Product{}, 0, ErrNotFound
	}
	deleted := s.products[i]
	s.products = append(s.products[:i], s.products[i+1:]...)
	return deleted, int64(len(s.products)), nil
}

func (s *MemoryStore) Search(_ context.Context, query string) ([]model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := strings.ToLower(query)
	var out []model.Product
	for _, p := range s.products {
		if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Category), q) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *MemoryStore) Stats(_ context.Context, lowStockThreshold int64) (model.Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := model.Stats{
		TotalProducts: int64(len(s.products)),
		Categories:    []model.CategoryCount{},
	}
	counts := map[string]int64{}
	for _, p := range s.products {
		st.TotalValue += float64(p.Quantity) * p.Price
		counts[p.Category]++
		if p.Quantity < lowStockThreshold {
			st.LowStock++
		}
	}
	for c, n := range counts {
		st.Categories = append(st.Categories, model.CategoryCount{Category: c, Count: n})
	}
	sort.Slice(st.Categories, func(i, j int) bool {
		if st.Categories[i].Count != st.Categories[j].Count {
			return st.Categories[i].Count > st.Categories[j].Count
		}
		return st.Categories[i].Category < st.Categories[j].Category
	})
	return st, nil
}

// indexLocked finds a product by id. Callers must hold mu.
func (s *MemoryStore) indexLocked(id string) int {
	for i := range s.products {
		if s.products[i].ID == id {
			return i
		}
	}
	return -1
}
