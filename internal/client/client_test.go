package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"shoplite/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_ListProducts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/products", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]model.Product{
			{ID: 1, Name: "Wireless Mouse", Price: 29.99, Variants: []model.Variant{}},
		})
	}))
	defer server.Close()

	c := NewCatalog(server.URL, zerolog.Nop())

	products, err := c.ListProducts(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Wireless Mouse", products[0].Name)
}

func TestCatalog_CreateProduct(t *testing.T) {
	price := 29.99
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/admin/products", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req model.CreateProductRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Wireless Mouse", req.Name)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(model.Product{ID: 1, Name: req.Name, Price: *req.Price})
	}))
	defer server.Close()

	c := NewCatalog(server.URL, zerolog.Nop())

	product, err := c.CreateProduct(context.Background(), &model.CreateProductRequest{
		Name:  "Wireless Mouse",
		Price: &price,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), product.ID)
}

func TestCatalog_DeleteProduct_NoContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/admin/products/7", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	c := NewCatalog(server.URL, zerolog.Nop())

	require.NoError(t, c.DeleteProduct(context.Background(), 7))
}

func TestCatalog_UpstreamErrorBecomesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(model.ErrorResponse{
			Error:   model.ErrCodeProductNotFound,
			Message: "Product not found",
		})
	}))
	defer server.Close()

	c := NewCatalog(server.URL, zerolog.Nop())

	_, err := c.UpdateProduct(context.Background(), 999, &model.ProductPatch{})

	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Product not found", apiErr.Message)
}

func TestCatalog_UpstreamErrorWithoutBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	c := NewCatalog(server.URL, zerolog.Nop())

	_, err := c.ListProducts(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.NotEmpty(t, apiErr.Message)
}

func TestCatalog_UnreachableUpstream(t *testing.T) {
	c := NewCatalog("http://127.0.0.1:1", zerolog.Nop())

	_, err := c.ListProducts(context.Background())

	require.Error(t, err)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestSales_GetTaxRate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/admin/tax", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]float64{"amount": 7.5})
	}))
	defer server.Close()

	c := NewSales(server.URL, zerolog.Nop())

	rate, err := c.GetTaxRate(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 7.5, rate)
}

func TestSales_UpdateTaxRate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/admin/tax", r.URL.Path)

		var payload map[string]float64
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, 9.0, payload["amount"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]float64{"amount": 9.0})
	}))
	defer server.Close()

	c := NewSales(server.URL, zerolog.Nop())

	rate, err := c.UpdateTaxRate(context.Background(), 9.0)

	require.NoError(t, err)
	assert.Equal(t, 9.0, rate)
}

func TestSales_ListOrders(t *testing.T) {
	variantID := int64(3)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]Order{
			{
				ID:           1,
				CustomerName: "Guest",
				Subtotal:     59.98,
				Tax:          3.00,
				Total:        62.98,
				Items: []OrderItem{
					{ID: 1, ProductID: 1, VariantID: &variantID, Qty: 2, UnitPrice: 29.99, TotalPrice: 59.98},
				},
			},
		})
	}))
	defer server.Close()

	c := NewSales(server.URL, zerolog.Nop())

	orders, err := c.ListOrders(context.Background())

	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, 62.98, orders[0].Total)
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, int64(3), *orders[0].Items[0].VariantID)
}

func TestSales_CreateOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)

		var payload struct {
			Items []CheckoutItem `json:"items"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Len(t, payload.Items, 1)
		assert.Equal(t, int64(1), payload.Items[0].ProductID)
		assert.Equal(t, 2, payload.Items[0].Quantity)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(CheckoutResponse{
			Message: "order created",
			OrderID: 42,
			Total:   62.98,
			Items:   1,
		})
	}))
	defer server.Close()

	c := NewSales(server.URL, zerolog.Nop())

	resp, err := c.CreateOrder(context.Background(), []CheckoutItem{
		{ProductID: 1, Quantity: 2, Price: 29.99, Name: "Wireless Mouse"},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.OrderID)
	assert.Equal(t, 1, resp.Items)
}

func TestSales_DeleteOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/orders/42", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	c := NewSales(server.URL, zerolog.Nop())

	require.NoError(t, c.DeleteOrder(context.Background(), 42))
}
