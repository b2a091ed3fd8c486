package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"shoplite/internal/cart"
	"shoplite/internal/client"
	"shoplite/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSales stands in for the external sales service.
func fakeSales(t *testing.T, taxAmount float64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/admin/tax" && r.Method == http.MethodGet:
			json.NewEncoder(w).Encode(map[string]float64{"amount": taxAmount})
		case r.URL.Path == "/orders" && r.Method == http.MethodPost:
			var payload struct {
				Items []client.CheckoutItem `json:"items"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(client.CheckoutResponse{
				Message: "order created",
				OrderID: 42,
				Total:   62.98,
				Items:   len(payload.Items),
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func newTestHandler(t *testing.T, catalogURL, salesURL string) (*Handler, *cart.Store) {
	t.Helper()
	logger := zerolog.Nop()
	carts := cart.NewStore()
	h := NewHandler(
		client.NewCatalog(catalogURL, logger),
		client.NewSales(salesURL, logger),
		carts,
		logger,
	)
	return h, carts
}

func withSession(req *http.Request, sessionID string) *http.Request {
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: sessionID})
	return req
}

func TestHandler_Products_DegradesToEmptyList(t *testing.T) {
	// Unreachable catalog: listing should still answer with an empty array
	h, _ := newTestHandler(t, "http://127.0.0.1:1", "http://127.0.0.1:1")

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	rec := httptest.NewRecorder()

	h.Products(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestHandler_Products(t *testing.T) {
	catalog := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]model.Product{
			{ID: 1, Name: "Wireless Mouse", Price: 29.99, Variants: []model.Variant{}},
		})
	}))
	defer catalog.Close()

	h, _ := newTestHandler(t, catalog.URL, "http://127.0.0.1:1")

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	rec := httptest.NewRecorder()

	h.Products(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var products []model.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	require.Len(t, products, 1)
	assert.Equal(t, "Wireless Mouse", products[0].Name)
}

func TestHandler_GetCart(t *testing.T) {
	sales := fakeSales(t, 5)
	defer sales.Close()

	h, carts := newTestHandler(t, "http://127.0.0.1:1", sales.URL)
	carts.Add("s1", cart.Item{ProductID: 1, Name: "Wireless Mouse", Price: 29.99, Quantity: 2})

	req := withSession(httptest.NewRequest(http.MethodGet, "/api/cart", nil), "s1")
	rec := httptest.NewRecorder()

	h.GetCart(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp cartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 5.0, resp.TaxRate)
	assert.Equal(t, 59.98, resp.Subtotal)
	assert.Equal(t, 3.00, resp.TaxAmount)
	assert.Equal(t, 62.98, resp.Total)
}

func TestHandler_GetCart_IssuesSessionCookie(t *testing.T) {
	sales := fakeSales(t, 0)
	defer sales.Close()

	h, _ := newTestHandler(t, "http://127.0.0.1:1", sales.URL)

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	rec := httptest.NewRecorder()

	h.GetCart(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, sessionCookie, cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestHandler_GetCart_TaxFetchFailureDefaultsToZero(t *testing.T) {
	h, carts := newTestHandler(t, "http://127.0.0.1:1", "http://127.0.0.1:1")
	carts.Add("s1", cart.Item{ProductID: 1, Name: "Mouse", Price: 10, Quantity: 1})

	req := withSession(httptest.NewRequest(http.MethodGet, "/api/cart", nil), "s1")
	rec := httptest.NewRecorder()

	h.GetCart(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp cartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 0.0, resp.TaxRate)
	assert.Equal(t, 0.0, resp.TaxAmount)
	assert.Equal(t, 10.0, resp.Total)
}

func TestHandler_AddCartItem(t *testing.T) {
	sales := fakeSales(t, 5)
	defer sales.Close()

	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{
			name:           "Success",
			body:           `{"productId":1,"name":"Wireless Mouse","price":29.99,"quantity":2}`,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Success with variant",
			body:           `{"productId":1,"variantId":3,"name":"Wireless Mouse","variantName":"Black","price":29.99,"quantity":1}`,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Malformed JSON",
			body:           `{`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Missing product id",
			body:           `{"name":"Mouse","price":29.99,"quantity":1}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Missing name",
			body:           `{"productId":1,"price":29.99,"quantity":1}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Zero quantity",
			body:           `{"productId":1,"name":"Mouse","price":29.99,"quantity":0}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Negative price",
			body:           `{"productId":1,"name":"Mouse","price":-1,"quantity":1}`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, carts := newTestHandler(t, "http://127.0.0.1:1", sales.URL)

			req := withSession(httptest.NewRequest(http.MethodPost, "/api/cart/items", strings.NewReader(tt.body)), "s1")
			rec := httptest.NewRecorder()

			h.AddCartItem(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)

			if tt.expectedStatus == http.StatusCreated {
				assert.Len(t, carts.Get("s1"), 1)
			} else {
				assert.Empty(t, carts.Get("s1"))
			}
		})
	}
}

func TestHandler_RemoveCartItem(t *testing.T) {
	sales := fakeSales(t, 0)
	defer sales.Close()

	h, carts := newTestHandler(t, "http://127.0.0.1:1", sales.URL)
	carts.Add("s1", cart.Item{ProductID: 1, Name: "Mouse", Price: 29.99, Quantity: 1})
	carts.Add("s1", cart.Item{ProductID: 2, Name: "Keyboard", Price: 89.99, Quantity: 1})

	req := withSession(httptest.NewRequest(http.MethodDelete, "/api/cart/items/0", nil), "s1")
	req.SetPathValue("index", "0")
	rec := httptest.NewRecorder()

	h.RemoveCartItem(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	items := carts.Get("s1")
	require.Len(t, items, 1)
	assert.Equal(t, "Keyboard", items[0].Name)

	// Out-of-range index is rejected
	req = withSession(httptest.NewRequest(http.MethodDelete, "/api/cart/items/5", nil), "s1")
	req.SetPathValue("index", "5")
	rec = httptest.NewRecorder()

	h.RemoveCartItem(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Len(t, carts.Get("s1"), 1)
}

func TestHandler_ClearCart(t *testing.T) {
	h, carts := newTestHandler(t, "http://127.0.0.1:1", "http://127.0.0.1:1")
	carts.Add("s1", cart.Item{ProductID: 1, Name: "Mouse", Price: 29.99, Quantity: 1})

	req := withSession(httptest.NewRequest(http.MethodDelete, "/api/cart", nil), "s1")
	rec := httptest.NewRecorder()

	h.ClearCart(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, carts.Get("s1"))
}

func TestHandler_Checkout(t *testing.T) {
	sales := fakeSales(t, 5)
	defer sales.Close()

	t.Run("Success clears the cart", func(t *testing.T) {
		h, carts := newTestHandler(t, "http://127.0.0.1:1", sales.URL)
		carts.Add("s1", cart.Item{ProductID: 1, Name: "Wireless Mouse", Price: 29.99, Quantity: 2})

		req := withSession(httptest.NewRequest(http.MethodPost, "/api/checkout", nil), "s1")
		rec := httptest.NewRecorder()

		h.Checkout(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)

		var resp client.CheckoutResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, int64(42), resp.OrderID)
		assert.Equal(t, 1, resp.Items)

		assert.Empty(t, carts.Get("s1"))
	})

	t.Run("Empty cart is rejected", func(t *testing.T) {
		h, _ := newTestHandler(t, "http://127.0.0.1:1", sales.URL)

		req := withSession(httptest.NewRequest(http.MethodPost, "/api/checkout", nil), "s1")
		rec := httptest.NewRecorder()

		h.Checkout(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Sales outage keeps the cart", func(t *testing.T) {
		h, carts := newTestHandler(t, "http://127.0.0.1:1", "http://127.0.0.1:1")
		carts.Add("s1", cart.Item{ProductID: 1, Name: "Mouse", Price: 29.99, Quantity: 1})

		req := withSession(httptest.NewRequest(http.MethodPost, "/api/checkout", nil), "s1")
		rec := httptest.NewRecorder()

		h.Checkout(rec, req)

		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Len(t, carts.Get("s1"), 1)
	})
}

func TestHandler_Tax(t *testing.T) {
	sales := fakeSales(t, 7.5)
	defer sales.Close()

	t.Run("Get", func(t *testing.T) {
		h, _ := newTestHandler(t, "http://127.0.0.1:1", sales.URL)

		req := httptest.NewRequest(http.MethodGet, "/api/admin/tax", nil)
		rec := httptest.NewRecorder()

		h.GetTax(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]float64
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 7.5, resp["amount"])
	})

	t.Run("Update rejects a negative amount", func(t *testing.T) {
		h, _ := newTestHandler(t, "http://127.0.0.1:1", sales.URL)

		req := httptest.NewRequest(http.MethodPut, "/api/admin/tax", strings.NewReader(`{"amount":-1}`))
		rec := httptest.NewRecorder()

		h.UpdateTax(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Update rejects a missing amount", func(t *testing.T) {
		h, _ := newTestHandler(t, "http://127.0.0.1:1", sales.URL)

		req := httptest.NewRequest(http.MethodPut, "/api/admin/tax", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()

		h.UpdateTax(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Get reports an outage as bad gateway", func(t *testing.T) {
		h, _ := newTestHandler(t, "http://127.0.0.1:1", "http://127.0.0.1:1")

		req := httptest.NewRequest(http.MethodGet, "/api/admin/tax", nil)
		rec := httptest.NewRecorder()

		h.GetTax(rec, req)

		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})
}

func TestHandler_AdminPassthroughPreservesUpstreamStatus(t *testing.T) {
	catalog := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(model.ErrorResponse{
			Error:   model.ErrCodeProductNotFound,
			Message: "Product not found",
		})
	}))
	defer catalog.Close()

	h, _ := newTestHandler(t, catalog.URL, "http://127.0.0.1:1")

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/products/999", nil)
	req.SetPathValue("id", "999")
	rec := httptest.NewRecorder()

	h.DeleteProduct(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var errResp model.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, "Product not found", errResp.Message)
}

func TestHandler_CreateProductPassthrough(t *testing.T) {
	catalog := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/admin/products", r.URL.Path)

		var req model.CreateProductRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(model.Product{ID: 1, Name: req.Name, Price: *req.Price})
	}))
	defer catalog.Close()

	h, _ := newTestHandler(t, catalog.URL, "http://127.0.0.1:1")

	req := httptest.NewRequest(http.MethodPost, "/api/admin/products",
		strings.NewReader(`{"name":"Wireless Mouse","price":29.99}`))
	rec := httptest.NewRecorder()

	h.CreateProduct(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var product model.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &product))
	assert.Equal(t, int64(1), product.ID)
}
