// Package handler exposes the retail back-office HTTP surface: inventory
// lookup, item creation, checkout, and billing history, all speaking JSON
// with a uniform {"error": "..."} envelope on failure.
package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/xenking/smart-retail/internal/domain/billing"
	"github.com/xenking/smart-retail/internal/domain/catalog"
	"github.com/xenking/smart-retail/internal/domain/checkout"
)

// Handler routes requests to the catalog store, checkout engine, and bill
// ledger.
type Handler struct {
	catalog   catalog.Repository
	checkouts *checkout.Service
	ledger    billing.Ledger
}

// New constructs a Handler with the required domain dependencies.
func New(cat catalog.Repository, checkouts *checkout.Service, ledger billing.Ledger) *Handler {
	return &Handler{
		catalog:   cat,
		checkouts: checkouts,
		ledger:    ledger,
	}
}

// Routes returns a mux with every API route registered. Callers may add
// further routes (health probes) before wrapping the mux in middleware.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.home)
	mux.HandleFunc("GET /health", h.health)
	mux.HandleFunc("GET /inventory", h.listInventory)
	mux.HandleFunc("GET /item/{sku}", h.getItem)
	mux.HandleFunc("POST /add-item", h.addItem)
	mux.HandleFunc("GET /billing-history", h.billingHistory)
	mux.HandleFunc("POST /checkout", h.checkout)
	mux.HandleFunc("/", h.notFound)
	return mux
}

func (h *Handler) home(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, "Smart Retail backend is running")
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) notFound(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, "The requested URL was not found on the server.")
}
