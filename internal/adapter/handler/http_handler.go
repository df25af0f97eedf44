package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rl1809/shopping-cart/internal/core/domain"
	"github.com/rl1809/shopping-cart/internal/core/service"
	"github.com/rl1809/shopping-cart/internal/port"
)

type HTTPHandler struct {
	cartService *service.CartService
	catalog     port.CatalogRepository
}

type CartMutationHTTPRequest struct {
	ItemID int64 `json:"item_id"`
}

type CartHTTPResponse struct {
	Items         []domain.CartLine `json:"items"`
	TotalQuantity int               `json:"total_quantity"`
	IsOpen        bool              `json:"is_open"`
}

type QuantityHTTPResponse struct {
	ItemID   int64 `json:"item_id"`
	Quantity int   `json:"quantity"`
}

type ErrorHTTPResponse struct {
	Error string `json:"error"`
}

func NewHTTPHandler(cartService *service.CartService, catalog port.CatalogRepository) *HTTPHandler {
	return &HTTPHandler{cartService: cartService, catalog: catalog}
}

func (h *HTTPHandler) Cart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, h.cartSnapshot())
}

func (h *HTTPHandler) ItemQuantity(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	itemID, err := strconv.ParseInt(r.URL.Query().Get("item_id"), 10, 64)
	if err != nil || itemID <= 0 {
		writeJSON(w, http.StatusBadRequest, ErrorHTTPResponse{Error: "invalid item_id"})
		return
	}

	writeJSON(w, http.StatusOK, QuantityHTTPResponse{
		ItemID:   itemID,
		Quantity: h.cartService.ItemQuantity(itemID),
	})
}

func (h *HTTPHandler) IncreaseQuantity(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	itemID, ok := h.decodeItemID(w, r)
	if !ok {
		return
	}

	h.cartService.IncreaseQuantity(r.Context(), itemID)
	writeJSON(w, http.StatusOK, h.cartSnapshot())
}

func (h *HTTPHandler) DecreaseQuantity(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	itemID, ok := h.decodeItemID(w, r)
	if !ok {
		return
	}

	h.cartService.DecreaseQuantity(r.Context(), itemID)
	writeJSON(w, http.StatusOK, h.cartSnapshot())
}

func (h *HTTPHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	itemID, ok := h.decodeItemID(w, r)
	if !ok {
		return
	}

	h.cartService.RemoveItem(r.Context(), itemID)
	writeJSON(w, http.StatusOK, h.cartSnapshot())
}

func (h *HTTPHandler) OpenCart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	h.cartService.OpenCart()
	writeJSON(w, http.StatusOK, h.cartSnapshot())
}

func (h *HTTPHandler) CloseCart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	h.cartService.CloseCart()
	writeJSON(w, http.StatusOK, h.cartSnapshot())
}

func (h *HTTPHandler) Products(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	products, err := h.catalog.Products(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ErrorHTTPResponse{Error: "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, products)
}

func (h *HTTPHandler) Product(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, ErrorHTTPResponse{Error: "invalid product id"})
		return
	}

	product, err := h.catalog.Product(r.Context(), id)
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, ErrorHTTPResponse{Error: "product not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, ErrorHTTPResponse{Error: "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, product)
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HTTPHandler) decodeItemID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	var req CartMutationHTTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorHTTPResponse{Error: "invalid request body"})
		return 0, false
	}
	if req.ItemID <= 0 {
		writeJSON(w, http.StatusBadRequest, ErrorHTTPResponse{Error: "item_id must be positive"})
		return 0, false
	}
	return req.ItemID, true
}

// cartSnapshot derives the total from the same line snapshot it returns, so
// the two never disagree even while mutations are in flight.
func (h *HTTPHandler) cartSnapshot() CartHTTPResponse {
	items := h.cartService.Items()
	return CartHTTPResponse{
		Items:         items,
		TotalQuantity: domain.TotalQuantity(items),
		IsOpen:        h.cartService.IsOpen(),
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
