package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/xenking/smart-retail/internal/domain/billing"
	"github.com/xenking/smart-retail/internal/domain/catalog"
)

// errorResponse is the uniform failure envelope.
type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

type itemResponse struct {
	SKU   string  `json:"sku"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

type addItemResponse struct {
	Message string       `json:"message"`
	Item    itemResponse `json:"item"`
}

type lineItemResponse struct {
	SKU       string  `json:"sku"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Qty       int     `json:"qty"`
	LineTotal float64 `json:"line_total"`
}

type billResponse struct {
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	Items     []lineItemResponse `json:"items"`
	Total     float64            `json:"total"`
}

type checkoutResponse struct {
	Message string       `json:"message"`
	Bill    billResponse `json:"bill"`
}

// Decimal amounts are converted to floats at the HTTP boundary only; the
// domain keeps exact values.

func toItemResponse(item catalog.Item) itemResponse {
	return itemResponse{
		SKU:   item.SKU,
		Name:  item.Name,
		Price: item.Price.InexactFloat64(),
		Stock: item.Stock,
	}
}

func toBillResponse(bill *billing.Bill) billResponse {
	items := make([]lineItemResponse, len(bill.Items))
	for i, li := range bill.Items {
		items[i] = lineItemResponse{
			SKU:       li.SKU,
			Name:      li.Name,
			Price:     li.Price.InexactFloat64(),
			Qty:       li.Qty,
			LineTotal: li.LineTotal.InexactFloat64(),
		}
	}
	return billResponse{
		ID:        bill.ID,
		Timestamp: bill.Timestamp,
		Items:     items,
		Total:     bill.Total.InexactFloat64(),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Best effort: the status is already written, so a failed encode can
	// only mean the client went away.
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
