package httpapi

import (
	"expvar"
	"net/http"
)

// NewRouter registers HTTP routes and returns the handler with middleware.
func NewRouter(app *App) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/products", app.listProductsHandler)
	mux.HandleFunc("POST /api/products", app.createProductHandler)
	mux.HandleFunc("PUT /api/products/{id}/reduce", app.reduceProductHandler)
	mux.HandleFunc("DELETE /api/products/{id}", app.deleteProductHandler)
	mux.HandleFunc("GET /api/products/search/{query}", app.searchProductsHandler)
	mux.HandleFunc("GET /api/stats", app.statsHandler)
	mux.HandleFunc("GET /healthz", app.healthHandler)
	mux.HandleFunc("GET /debug/metrics", app.metricsHandler)
	mux.Handle("GET /debug/vars", expvar.Handler())
	mux.HandleFunc("GET /openapi.yaml", app.openapiHandler)
	mux.HandleFunc("GET /docs", app.docsHandler)
	return WithRequestID(WithLogging(WithCORS(mux)))
}
