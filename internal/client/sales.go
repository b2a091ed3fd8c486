package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
)

// Order is an order as reported by the sales service.
type Order struct {
	ID           int64       `json:"id"`
	CustomerName string      `json:"customer_name"`
	Subtotal     float64     `json:"subtotal"`
	Tax          float64     `json:"tax"`
	Total        float64     `json:"total"`
	CreatedAt    string      `json:"created_at"`
	Items        []OrderItem `json:"items"`
}

// OrderItem is a line item within a sales order.
type OrderItem struct {
	ID          int64   `json:"id"`
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name,omitempty"`
	VariantID   *int64  `json:"variant_id"`
	Qty         int     `json:"qty"`
	UnitPrice   float64 `json:"unit_price"`
	TotalPrice  float64 `json:"total_price"`
}

// CheckoutItem is a cart line submitted to the sales service at checkout.
type CheckoutItem struct {
	ProductID int64   `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	VariantID *int64  `json:"variantId"`
	Name      string  `json:"name,omitempty"`
}

// CheckoutResponse is the sales service's answer to an order submission.
type CheckoutResponse struct {
	Message string  `json:"message"`
	OrderID int64   `json:"orderId"`
	Total   float64 `json:"total"`
	Items   int     `json:"items"`
}

// taxRate is the tax rate payload exchanged with the sales service.
type taxRate struct {
	Amount float64 `json:"amount"`
}

// Sales is an HTTP client for the external sales service.
type Sales struct {
	apiClient
}

// NewSales creates a sales service client.
func NewSales(baseURL string, logger zerolog.Logger) *Sales {
	return &Sales{
		apiClient: newAPIClient(baseURL, logger.With().Str("client", "sales").Logger()),
	}
}

// GetTaxRate retrieves the current tax rate in percent.
func (c *Sales) GetTaxRate(ctx context.Context) (float64, error) {
	var rate taxRate
	if err := c.do(ctx, http.MethodGet, "/admin/tax", nil, &rate); err != nil {
		return 0, err
	}
	return rate.Amount, nil
}

// UpdateTaxRate sets the tax rate and returns the stored value.
func (c *Sales) UpdateTaxRate(ctx context.Context, amount float64) (float64, error) {
	var rate taxRate
	if err := c.do(ctx, http.MethodPut, "/admin/tax", taxRate{Amount: amount}, &rate); err != nil {
		return 0, err
	}
	return rate.Amount, nil
}

// ListOrders retrieves all orders.
func (c *Sales) ListOrders(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := c.do(ctx, http.MethodGet, "/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// DeleteOrder removes a single order.
func (c *Sales) DeleteOrder(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/orders/%d", id)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// CreateOrder submits the cart items as a new order.
func (c *Sales) CreateOrder(ctx context.Context, items []CheckoutItem) (*CheckoutResponse, error) {
	payload := struct {
		Items []CheckoutItem `json:"items"`
	}{Items: items}

	var resp CheckoutResponse
	if err := c.do(ctx, http.MethodPost, "/orders", payload, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
