package handler

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/smart-retail/internal/domain/catalog"
)

// listInventory returns every catalog item.
func (h *Handler) listInventory(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.List(r.Context())
	if err != nil {
		h.serverError(w, r, errors.Wrap(err, "list inventory"))
		return
	}

	out := make([]itemResponse, len(items))
	for i, item := range items {
		out[i] = toItemResponse(item)
	}
	writeJSON(w, http.StatusOK, out)
}

// getItem returns a single item by SKU.
func (h *Handler) getItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.catalog.Get(r.Context(), r.PathValue("sku"))
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Item not found")
			return
		}
		h.serverError(w, r, errors.Wrap(err, "get item"))
		return
	}
	writeJSON(w, http.StatusOK, toItemResponse(*item))
}

// addItem creates a new catalog entry.
func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	body, ok := readJSONBody(w, r)
	if !ok {
		return
	}

	req, err := decodeAddItem(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := catalog.NewItem(req.sku, req.name, req.price, req.stock)
	if err != nil {
		var fieldErr *catalog.FieldError
		if errors.As(err, &fieldErr) {
			writeError(w, http.StatusBadRequest, fieldErr.Error())
			return
		}
		h.serverError(w, r, errors.Wrap(err, "build item"))
		return
	}

	if err := h.catalog.Create(r.Context(), item); err != nil {
		if errors.Is(err, catalog.ErrDuplicateSKU) {
			writeError(w, http.StatusBadRequest, "Item already exists")
			return
		}
		h.serverError(w, r, errors.Wrap(err, "create item"))
		return
	}

	writeJSON(w, http.StatusCreated, addItemResponse{
		Message: "Item added successfully",
		Item:    toItemResponse(*item),
	})
}

// serverError logs the unclassified fault and answers with a deliberately
// generic message.
func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	zctx.From(r.Context()).Error("Request failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "Internal server error")
}
