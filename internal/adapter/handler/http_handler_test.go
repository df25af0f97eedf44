package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rl1809/shopping-cart/internal/adapter/storage"
	"github.com/rl1809/shopping-cart/internal/core/cell"
	"github.com/rl1809/shopping-cart/internal/core/domain"
	"github.com/rl1809/shopping-cart/internal/core/service"
	"github.com/rl1809/shopping-cart/internal/port"
)

// Mock CatalogRepository
type mockCatalog struct {
	products map[int64]domain.Product
	err      error
}

func newMockCatalog(products ...domain.Product) *mockCatalog {
	m := &mockCatalog{products: make(map[int64]domain.Product)}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

func (m *mockCatalog) Product(ctx context.Context, id int64) (domain.Product, error) {
	if m.err != nil {
		return domain.Product{}, m.err
	}
	p, ok := m.products[id]
	if !ok {
		return domain.Product{}, port.ErrNotFound
	}
	return p, nil
}

func (m *mockCatalog) Products(ctx context.Context) ([]domain.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]domain.Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, p)
	}
	return out, nil
}

func (m *mockCatalog) UpsertProduct(ctx context.Context, p domain.Product) error {
	if m.err != nil {
		return m.err
	}
	m.products[p.ID] = p
	return nil
}

func (m *mockCatalog) Close() error { return nil }

func newTestHandler(t *testing.T, catalog port.CatalogRepository) *HTTPHandler {
	t.Helper()

	store := storage.NewMemoryStore()
	lines := cell.New[[]domain.CartLine](context.Background(), store, "shopping-cart", []domain.CartLine{})
	svc := service.NewCartService(context.Background(), lines)
	return NewHTTPHandler(svc, catalog)
}

func decodeCart(t *testing.T, recorder *httptest.ResponseRecorder) CartHTTPResponse {
	t.Helper()

	var resp CartHTTPResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response does not decode: %v", err)
	}
	return resp
}

func postItem(t *testing.T, h http.HandlerFunc, itemID string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "http://example.com/", strings.NewReader(`{"item_id":`+itemID+`}`))
	recorder := httptest.NewRecorder()
	h(recorder, req)
	return recorder
}

func TestCartEndpoint_EmptyCart(t *testing.T) {
	h := newTestHandler(t, newMockCatalog())

	req := httptest.NewRequest(http.MethodGet, "http://example.com/api/cart", nil)
	recorder := httptest.NewRecorder()
	h.Cart(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, recorder.Code)
	}

	resp := decodeCart(t, recorder)
	if len(resp.Items) != 0 {
		t.Errorf("expected no items, got %v", resp.Items)
	}
	if resp.TotalQuantity != 0 {
		t.Errorf("expected total 0, got %d", resp.TotalQuantity)
	}
	if resp.IsOpen {
		t.Error("expected cart to start closed")
	}
}

func TestIncreaseEndpoint(t *testing.T) {
	h := newTestHandler(t, newMockCatalog())

	postItem(t, h.IncreaseQuantity, "7")
	recorder := postItem(t, h.IncreaseQuantity, "7")

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, recorder.Code)
	}

	resp := decodeCart(t, recorder)
	if resp.TotalQuantity != 2 {
		t.Errorf("expected total 2, got %d", resp.TotalQuantity)
	}
	if len(resp.Items) != 1 || resp.Items[0].ItemID != 7 || resp.Items[0].Quantity != 2 {
		t.Errorf("expected single line {7 2}, got %v", resp.Items)
	}
}

func TestIncreaseEndpoint_InvalidBody(t *testing.T) {
	h := newTestHandler(t, newMockCatalog())

	req := httptest.NewRequest(http.MethodPost, "http://example.com/api/cart/increase", strings.NewReader("not json"))
	recorder := httptest.NewRecorder()
	h.IncreaseQuantity(recorder, req)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, recorder.Code)
	}
}

func TestIncreaseEndpoint_MissingItemID(t *testing.T) {
	h := newTestHandler(t, newMockCatalog())

	recorder := postItem(t, h.IncreaseQuantity, "0")

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, recorder.Code)
	}
}

func TestIncreaseEndpoint_MethodNotAllowed(t *testing.T) {
	h := newTestHandler(t, newMockCatalog())

	req := httptest.NewRequest(http.MethodGet, "http://example.com/api/cart/increase", nil)
	recorder := httptest.NewRecorder()
	h.IncreaseQuantity(recorder, req)

	if recorder.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status %d, got %d", http.StatusMethodNotAllowed, recorder.Code)
	}
}

func TestDecreaseEndpoint_RemovesLineAtOne(t *testing.T) {
	h := newTestHandler(t, newMockCatalog())

	postItem(t, h.IncreaseQuantity, "7")
	recorder := postItem(t, h.DecreaseQuantity, "7")

	resp := decodeCart(t, recorder)
	if len(resp.Items) != 0 {
		t.Errorf("expected empty cart, got %v", resp.Items)
	}
}

func TestDecreaseEndpoint_AbsentItemIsNoop(t *testing.T) {
	h := newTestHandler(t, newMockCatalog())

	recorder := postItem(t, h.DecreaseQuantity, "9")

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, recorder.Code)
	}
	resp := decodeCart(t, recorder)
	if resp.TotalQuantity != 0 {
		t.Errorf("expected total 0, got %d", resp.TotalQuantity)
	}
}

func TestRemoveEndpoint(t *testing.T) {
	h := newTestHandler(t, newMockCatalog())

	postItem(t, h.IncreaseQuantity, "7")
	postItem(t, h.IncreaseQuantity, "7")
	recorder := postItem(t, h.RemoveItem, "7")

	resp := decodeCart(t, recorder)
	if len(resp.Items) != 0 {
		t.Errorf("expected empty cart after remove, got %v", resp.Items)
	}
}

func TestQuantityEndpoint(t *testing.T) {
	h := newTestHandler(t, newMockCatalog())
	postItem(t, h.IncreaseQuantity, "7")

	req := httptest.NewRequest(http.MethodGet, "http://example.com/api/cart/quantity?item_id=7", nil)
	recorder := httptest.NewRecorder()
	h.ItemQuantity(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, recorder.Code)
	}

	var resp QuantityHTTPResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response does not decode: %v", err)
	}
	if resp.ItemID != 7 || resp.Quantity != 1 {
		t.Errorf("expected {7 1}, got %+v", resp)
	}
}

func TestQuantityEndpoint_AbsentItemIsZero(t *testing.T) {
	h := newTestHandler(t, newMockCatalog())

	req := httptest.NewRequest(http.MethodGet, "http://example.com/api/cart/quantity?item_id=42", nil)
	recorder := httptest.NewRecorder()
	h.ItemQuantity(recorder, req)

	var resp QuantityHTTPResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response does not decode: %v", err)
	}
	if resp.Quantity != 0 {
		t.Errorf("expected quantity 0, got %d", resp.Quantity)
	}
}

func TestQuantityEndpoint_InvalidItemID(t *testing.T) {
	h := newTestHandler(t, newMockCatalog())

	req := httptest.NewRequest(http.MethodGet, "http://example.com/api/cart/quantity?item_id=abc", nil)
	recorder := httptest.NewRecorder()
	h.ItemQuantity(recorder, req)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, recorder.Code)
	}
}

func TestOpenCloseEndpoints(t *testing.T) {
	h := newTestHandler(t, newMockCatalog())

	req := httptest.NewRequest(http.MethodPost, "http://example.com/api/cart/open", nil)
	recorder := httptest.NewRecorder()
	h.OpenCart(recorder, req)

	if resp := decodeCart(t, recorder); !resp.IsOpen {
		t.Error("expected cart to be open")
	}

	req = httptest.NewRequest(http.MethodPost, "http://example.com/api/cart/close", nil)
	recorder = httptest.NewRecorder()
	h.CloseCart(recorder, req)

	if resp := decodeCart(t, recorder); resp.IsOpen {
		t.Error("expected cart to be closed")
	}
}

func TestProductEndpoint(t *testing.T) {
	h := newTestHandler(t, newMockCatalog(domain.Product{
		ID: 1, Name: "Cool Hat", PriceCents: 1099, ImageURL: "/img/hat.png",
	}))

	req := httptest.NewRequest(http.MethodGet, "http://example.com/api/product?id=1", nil)
	recorder := httptest.NewRecorder()
	h.Product(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, recorder.Code)
	}

	var resp domain.Product
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response does not decode: %v", err)
	}
	if resp.Name != "Cool Hat" || resp.PriceCents != 1099 {
		t.Errorf("unexpected product: %+v", resp)
	}
}

func TestProductEndpoint_NotFound(t *testing.T) {
	h := newTestHandler(t, newMockCatalog())

	req := httptest.NewRequest(http.MethodGet, "http://example.com/api/product?id=999", nil)
	recorder := httptest.NewRecorder()
	h.Product(recorder, req)

	if recorder.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, recorder.Code)
	}
}

func TestProductEndpoint_InvalidID(t *testing.T) {
	h := newTestHandler(t, newMockCatalog())

	req := httptest.NewRequest(http.MethodGet, "http://example.com/api/product?id=abc", nil)
	recorder := httptest.NewRecorder()
	h.Product(recorder, req)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, recorder.Code)
	}
}

func TestProductsEndpoint(t *testing.T) {
	h := newTestHandler(t, newMockCatalog(
		domain.Product{ID: 1, Name: "Cool Hat", PriceCents: 1099},
		domain.Product{ID: 2, Name: "Warm Socks", PriceCents: 599},
	))

	req := httptest.NewRequest(http.MethodGet, "http://example.com/api/products", nil)
	recorder := httptest.NewRecorder()
	h.Products(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, recorder.Code)
	}

	var resp []domain.Product
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response does not decode: %v", err)
	}
	if len(resp) != 2 {
		t.Errorf("expected 2 products, got %d", len(resp))
	}
}

func TestHealthCheck(t *testing.T) {
	h := newTestHandler(t, newMockCatalog())

	req := httptest.NewRequest(http.MethodGet, "http://example.com/health", nil)
	recorder := httptest.NewRecorder()
	h.HealthCheck(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), `"status":"ok"`) {
		t.Errorf("unexpected health body: %s", recorder.Body.String())
	}
}
