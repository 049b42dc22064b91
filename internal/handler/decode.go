package handler

import (
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"

	"github.com/xenking/smart-retail/internal/domain/checkout"
)

// Decode-level errors with user-facing messages.
var (
	errInvalidJSON    = errors.New("Invalid JSON")
	errFieldsRequired = errors.New("Fields required: sku, name, price, stock")
	errBadPriceStock  = errors.New("Price must be a number and stock must be an integer")
)

// readJSONBody enforces that POST bodies are declared and shaped as JSON.
// On failure it writes the 400 response itself and returns ok=false.
func readJSONBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || (mt != "application/json" && !strings.HasSuffix(mt, "+json")) {
		writeError(w, http.StatusBadRequest, "Request body must be JSON")
		return nil, false
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, errInvalidJSON.Error())
		return nil, false
	}
	return body, true
}

// stringOrNumber decodes a JSON string or number into its string form,
// consuming the value. ok is false for null and for any other type.
func stringOrNumber(d *jx.Decoder) (s string, ok bool, err error) {
	switch d.Next() {
	case jx.String:
		s, err = d.Str()
		return s, err == nil, err
	case jx.Number:
		n, err := d.Num()
		if err != nil {
			return "", false, err
		}
		return string(n), true, nil
	case jx.Null:
		return "", false, d.Null()
	default:
		return "", false, d.Skip()
	}
}

// addItemRequest is a fully validated item-creation request.
type addItemRequest struct {
	sku   string
	name  string
	price decimal.Decimal
	stock int
}

// decodeAddItem decodes and validates an add-item body. Field values may be
// JSON strings or numbers ("45" and 45 both parse); presence and
// parseability are checked explicitly.
func decodeAddItem(data []byte) (*addItemRequest, error) {
	var (
		req                addItemRequest
		rawPrice, rawStock string
		hasSKU, hasName    bool
		hasPrice, hasStock bool
	)

	d := jx.DecodeBytes(data)
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "sku":
			s, ok, err := stringOrNumber(d)
			if err != nil {
				return err
			}
			if ok && s != "" {
				req.sku = s
				hasSKU = true
			}
			return nil
		case "name":
			if d.Next() != jx.String {
				return d.Skip()
			}
			s, err := d.Str()
			if err != nil {
				return err
			}
			if s != "" {
				req.name = s
				hasName = true
			}
			return nil
		case "price":
			s, ok, err := stringOrNumber(d)
			if err != nil {
				return err
			}
			if ok {
				rawPrice = s
				hasPrice = true
			}
			return nil
		case "stock":
			s, ok, err := stringOrNumber(d)
			if err != nil {
				return err
			}
			if ok {
				rawStock = s
				hasStock = true
			}
			return nil
		default:
			return d.Skip()
		}
	}); err != nil {
		return nil, errInvalidJSON
	}

	if !hasSKU || !hasName || !hasPrice || !hasStock {
		return nil, errFieldsRequired
	}

	price, err := decimal.NewFromString(strings.TrimSpace(rawPrice))
	if err != nil {
		return nil, errBadPriceStock
	}
	stock, err := strconv.Atoi(strings.TrimSpace(rawStock))
	if err != nil {
		return nil, errBadPriceStock
	}

	req.price = price
	req.stock = stock
	return &req, nil
}

// decodeCheckout decodes a checkout body into cart lines. A missing cart
// key, a non-array cart, and an empty cart all collapse into ErrEmptyCart.
// Any client-supplied total is ignored; the server computes its own.
func decodeCheckout(data []byte) ([]checkout.CartLine, error) {
	var (
		lines  []checkout.CartLine
		cartOK bool
	)

	d := jx.DecodeBytes(data)
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		if key != "cart" {
			return d.Skip()
		}
		if d.Next() != jx.Array {
			return d.Skip()
		}
		cartOK = true
		return d.Arr(func(d *jx.Decoder) error {
			line, err := decodeCartLine(d)
			if err != nil {
				return err
			}
			lines = append(lines, line)
			return nil
		})
	}); err != nil {
		return nil, errInvalidJSON
	}

	if !cartOK || len(lines) == 0 {
		return nil, checkout.ErrEmptyCart
	}
	return lines, nil
}

// decodeCartLine decodes one cart entry. Shape defects are recorded on the
// line rather than returned, so the checkout engine reports them in cart
// order.
func decodeCartLine(d *jx.Decoder) (checkout.CartLine, error) {
	if d.Next() != jx.Object {
		if err := d.Skip(); err != nil {
			return checkout.CartLine{}, err
		}
		return checkout.CartLine{Defect: checkout.ErrEntryNotObject}, nil
	}

	var (
		line           checkout.CartLine
		hasSKU, hasQty bool
		qtyIsInt       = true
	)
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "sku":
			s, ok, err := stringOrNumber(d)
			if err != nil {
				return err
			}
			if ok && s != "" {
				line.SKU = s
				hasSKU = true
			}
			return nil
		case "qty":
			s, ok, err := stringOrNumber(d)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
			hasQty = true
			n, convErr := strconv.Atoi(strings.TrimSpace(s))
			if convErr != nil {
				qtyIsInt = false
				return nil
			}
			line.Qty = n
			return nil
		default:
			return d.Skip()
		}
	}); err != nil {
		return checkout.CartLine{}, err
	}

	switch {
	case !hasSKU || !hasQty:
		line.Defect = checkout.ErrEntryMissingFields
	case !qtyIsInt:
		line.Defect = checkout.ErrQtyNotInteger
	}
	return line, nil
}
