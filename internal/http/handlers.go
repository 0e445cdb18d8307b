package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/warehousekit/warehouse-api/internal/config"
	"github.com/warehousekit/warehouse-api/internal/model"
	"github.com/warehousekit/warehouse-api/internal/obs"
	"github.com/warehousekit/warehouse-api/internal/store"
)

// App holds the handler dependencies: config and the backing selector.
type App struct {
	Cfg     config.Config
	Stores  *store.Selector
	started time.Time
}

// NewApp constructs the handler set.
func NewApp(cfg config.Config, stores *store.Selector) *App {
	return &App{Cfg: cfg, Stores: stores, started: time.Now()}
}

type productList struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Source  string          `json:"source"`
	Query   string          `json:"query,omitempty"`
	Count   int             `json:"count"`
	Data    []model.Product `json:"data"`
}

type productCreated struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Source  string        `json:"source"`
	Data    model.Product `json:"data"`
}

type productReduced struct {
	Success         bool   `json:"success"`
	Message         string `json:"message"`
	Source          string `json:"source"`
	ProductID       string `json:"productId"`
	QuantityReduced int64  `json:"quantityReduced"`
	NewQuantity     int64  `json:"newQuantity"`
	ProductName     string `json:"productName"`
}

type productDeleted struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	Source         string `json:"source"`
	ProductID      string `json:"productId"`
	ProductName    string `json:"productName"`
	RemainingCount int64  `json:"remainingCount"`
}

type statsData struct {
	TotalProducts int64                 `json:"totalProducts"`
	TotalValue    float64               `json:"totalValue"`
	Categories    []model.CategoryCount `json:"categories"`
	LowStock      int64                 `json:"lowStock"`
	LastUpdated   string                `json:"lastUpdated"`
}

type statsEnvelope struct {
	Success bool      `json:"success"`
	Source  string    `json:"source"`
	Data    statsData `json:"data"`
}

func (a *App) listProductsHandler(w http.ResponseWriter, r *http.Request) {
	st := a.Stores.Pick()
	products, err := st.List(r.Context())
	if err != nil {
		a.writeStoreError(w, r, err)
		return
	}
	if products == nil {
		products = []model.Product{}
	}
	writeJSON(w, http.StatusOK, productList{
		Success: true,
		Message: "products loaded",
		Source:  st.Source(),
		Count:   len(products),
		Data:    products,
	})
}

func (a *App) createProductHandler(w http.ResponseWriter, r *http.Request) {
	if !requireJSON(w, r) {
		return
	}
	var req model.CreateRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid json: "+err.Error())
		return
	}
	np, err := model.ValidateCreate(req)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	st := a.Stores.Pick()
	p, err := st.Create(r.Context(), np)
	if err != nil {
		a.writeStoreError(w, r, err)
		return
	}
	obs.Logger.Info("product_created",
		"request_id", RequestIDFromContext(r.Context()),
		"product_id", p.ID,
		"name", p.Name,
		"source", st.Source(),
	)
	writeJSON(w, http.StatusCreated, productCreated{
		Success: true,
		Message: "product created",
		Source:  st.Source(),
		Data:    p,
	})
}

func (a *App) reduceProductHandler(w http.ResponseWriter, r *http.Request) {
	if !requireJSON(w, r) {
		return
	}
	id := r.PathValue("id")
	var req struct {
		Quantity *int64 `json:"quantity"`
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid json: "+err.Error())
		return
	}
	if req.Quantity == nil {
		WriteJSONError(w, http.StatusBadRequest, "quantity: is required")
		return
	}
	amount, err := model.ValidateReduceAmount(*req.Quantity)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	st := a.Stores.Pick()
	p, err := st.Reduce(r.Context(), id, amount)
	if err != nil {
		a.writeStoreError(w, r, err)
		return
	}
	obs.Logger.Info("product_reduced",
		"request_id", RequestIDFromContext(r.Context()),
		"product_id", p.ID,
		"amount", amount,
		"new_quantity", p.Quantity,
		"source", st.Source(),
	)
	writeJSON(w, http.StatusOK, productReduced{
		Success:         true,
		Message:         "stock reduced",
		Source:          st.Source(),
		ProductID:       p.ID,
		QuantityReduced: amount,
		NewQuantity:     p.Quantity,
		ProductName:     p.Name,
	})
}

func (a *App) deleteProductHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	st := a.Stores.Pick()
	p, remaining, err := st.Delete(r.Context(), id)
	if err != nil {
		a.writeStoreError(w, r, err)
		return
	}
	obs.Logger.Info("product_deleted",
		"request_id", RequestIDFromContext(r.Context()),
		"product_id", p.ID,
		"remaining", remaining,
		"source", st.Source(),
	)
	writeJSON(w, http.StatusOK, productDeleted{
		Success:        true,
		Message:        "product deleted",
		Source:         st.Source(),
		ProductID:      p.ID,
		ProductName:    p.Name,
		RemainingCount: remaining,
	})
}

func (a *App) searchProductsHandler(w http.ResponseWriter, r *http.Request) {
	query := r.PathValue("query")
	st := a.Stores.Pick()
	products, err := st.Search(r.Context(), query)
	if err != nil {
		a.writeStoreError(w, r, err)
		return
	}
	if products == nil {
		products = []model.Product{}
	}
	writeJSON(w, http.StatusOK, productList{
		Success: true,
		Message: "search complete",
		Source:  st.Source(),
		Query:   strings.ToLower(query),
		Count:   len(products),
		Data:    products,
	})
}

func (a *App) statsHandler(w http.ResponseWriter, r *http.Request) {
	st := a.Stores.Pick()
	stats, err := st.Stats(r.Context(), a.Cfg.LowStockThreshold)
	if err != nil {
		a.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, statsEnvelope{
		Success: true,
		Source:  st.Source(),
		Data: statsData{
			TotalProducts: stats.TotalProducts,
			TotalValue:    stats.TotalValue,
			Categories:    stats.Categories,
			LowStock:      stats.LowStock,
			LastUpdated:   time.Now().UTC().Format(time.RFC3339),
		},
	})
}

func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"source":     a.Stores.Pick().Source(),
		"durable_up": a.Stores.DurableUp(),
	})
}

func (a *App) metricsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"requests_total": requestsTotal.Value(),
		"source":         a.Stores.Pick().Source(),
		"durable_up":     a.Stores.DurableUp(),
		"uptime_sec":     time.Since(a.started).Seconds(),
	})
}

// writeStoreError maps backing errors to the response envelope. Durable I/O
// failures are logged with the driver error and reported generically.
func (a *App) writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	var insufficient *store.InsufficientStockError
	var storageErr *store.StorageError
	switch {
	case errors.Is(err, store.ErrNotFound):
		WriteJSONError(w, http.StatusNotFound, "product not found")
	case errors.As(err, &insufficient):
		WriteJSONError(w, http.StatusBadRequest, insufficient.Error())
	case errors.As(err, &storageErr):
		obs.Logger.Error("storage_error",
			"request_id", RequestIDFromContext(r.Context()),
			"op", storageErr.Op,
			"error", storageErr.Err.Error(),
		)
		WriteJSONError(w, http.StatusInternalServerError, "storage unavailable")
	default:
		obs.Logger.Error("internal_error",
			"request_id", RequestIDFromContext(r.Context()),
			"error", err.Error(),
		)
		WriteJSONError(w, http.StatusInternalServerError, "internal error")
	}
}

func requireJSON(w http.ResponseWriter, r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	if !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		WriteJSONError(w, http.StatusUnsupportedMediaType, "expected application/json")
		return false
	}
	return true
}
