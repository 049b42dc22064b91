package handler

import (
	"net/http"

	"github.com/go-faster/errors"

	"github.com/xenking/smart-retail/internal/domain/checkout"
)

// checkout runs the two-phase checkout and returns the resulting bill.
func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	body, ok := readJSONBody(w, r)
	if !ok {
		return
	}

	lines, err := decodeCheckout(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	bill, err := h.checkouts.Checkout(r.Context(), lines)
	if err != nil {
		h.checkoutError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, checkoutResponse{
		Message: "Checkout successful!",
		Bill:    toBillResponse(bill),
	})
}

// checkoutError maps engine errors to statuses: unknown SKU is 404, every
// other validation failure is 400, anything unclassified is 500.
func (h *Handler) checkoutError(w http.ResponseWriter, r *http.Request, err error) {
	var notFound *checkout.ItemNotFoundError
	if errors.As(err, &notFound) {
		writeError(w, http.StatusNotFound, notFound.Error())
		return
	}

	var insufficient *checkout.InsufficientStockError
	if errors.As(err, &insufficient) {
		writeError(w, http.StatusBadRequest, insufficient.Error())
		return
	}

	switch {
	case errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, checkout.ErrEntryNotObject),
		errors.Is(err, checkout.ErrEntryMissingFields),
		errors.Is(err, checkout.ErrQtyNotInteger),
		errors.Is(err, checkout.ErrQtyNotPositive):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.serverError(w, r, errors.Wrap(err, "checkout"))
	}
}

// billingHistory returns every bill, most recent first.
func (h *Handler) billingHistory(w http.ResponseWriter, r *http.Request) {
	bills, err := h.ledger.ListMostRecentFirst(r.Context())
	if err != nil {
		h.serverError(w, r, errors.Wrap(err, "list bills"))
		return
	}

	// Always an array, never null.
	out := make([]billResponse, len(bills))
	for i := range bills {
		out[i] = toBillResponse(&bills[i])
	}
	writeJSON(w, http.StatusOK, out)
}
