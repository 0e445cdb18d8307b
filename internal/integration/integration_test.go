package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/warehousekit/warehouse-api/internal/config"
	httpapi "github.com/warehousekit/warehouse-api/internal/http"
	"github.com/warehousekit/warehouse-api/internal/model"
	"github.com/warehousekit/warehouse-api/internal/obs"
	"github.com/warehousekit/warehouse-api/internal/store"
)

// TestIntegration_FullLifecycle drives the whole API in one process over the
// volatile backing: create, list, reduce, search, stats, delete.
func TestIntegration_FullLifecycle(t *testing.T) {
	obs.InitLogger()
	cfg := config.Load()
	sel := store.NewSelector(nil, store.NewMemoryStore(), &store.Health{})
	app := httpapi.NewApp(cfg, sel)
	h := httpapi.NewRouter(app)

	post := func(path, body string) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
		r.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		return w
	}
	get := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	w := post("/api/products", `{"name":"Bolt","quantity":50,"category":"Hardware","price":12.5}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", w.Code)
	}
	var created struct {
		Data model.Product `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create: %v", err)
	}
	id := created.Data.ID

	if w = get("/api/products"); w.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", w.Code)
	}

	r := httptest.NewRequest(http.MethodPut, "/api/products/"+id+"/reduce", bytes.NewBufferString(`{"quantity":20}`))
	r.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("reduce: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var reduced struct {
		NewQuantity int64 `json:"newQuantity"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &reduced); err != nil {
		t.Fatalf("decode reduce: %v", err)
	}
	if reduced.NewQuantity != 30 {
		t.Fatalf("expected 30, got %d", reduced.NewQuantity)
	}

	if w = get("/api/products/search/hard"); w.Code != http.StatusOK {
		t.Fatalf("search: expected 200, got %d", w.Code)
	}
	var search struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &search); err != nil {
		t.Fatalf("decode search: %v", err)
	}
	if search.Count != 1 {
		t.Fatalf("search count: %d", search.Count)
	}

	if w = get("/api/stats"); w.Code != http.StatusOK {
		t.Fatalf("stats: expected 200, got %d", w.Code)
	}
	var stats struct {
		Data struct {
			TotalProducts int64   `json:"totalProducts"`
			TotalValue    float64 `json:"totalValue"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats.Data.TotalProducts != 1 || stats.Data.TotalValue != 30*12.5 {
		t.Fatalf("unexpected stats: %+v", stats.Data)
	}

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/products/"+id, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", w.Code)
	}
	var deleted struct {
		RemainingCount int64 `json:"remainingCount"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &deleted); err != nil {
		t.Fatalf("decode delete: %v", err)
	}
	if deleted.RemainingCount != 0 {
		t.Fatalf("remaining: %d", deleted.RemainingCount)
	}
}
