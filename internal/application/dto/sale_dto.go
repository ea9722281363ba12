package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea pedida: el precio lo fija el producto al momento de vender.
type SaleItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gt=0"`
}

// PaymentMethodRequest medio de pago de la venta.
type PaymentMethodRequest struct {
	Type      string          `json:"type" validate:"required,oneof=cash credit debit transfer other"`
	Amount    decimal.Decimal `json:"amount"`
	Reference string          `json:"reference,omitempty" validate:"omitempty,max=200"`
}

// CreateSaleRequest entrada de POST /api/sales.
// Items y pagos vacíos los rechaza el caso de uso, después de verificar el cliente.
type CreateSaleRequest struct {
	ClientID       string                 `json:"clientId" validate:"required"`
	Items          []SaleItemRequest      `json:"items" validate:"dive"`
	PaymentMethods []PaymentMethodRequest `json:"paymentMethods" validate:"dive"`
	Status         string                 `json:"status,omitempty" validate:"omitempty,oneof=pending completed cancelled"`
}

// UpdateSaleStatusRequest entrada de PUT /api/sales/:id.
type UpdateSaleStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending completed cancelled"`
}

// ListSalesRequest filtros de GET /api/sales.
type ListSalesRequest struct {
	ClientID  string     `query:"clientId"`
	Status    string     `query:"status" validate:"omitempty,oneof=pending completed cancelled"`
	StartDate *time.Time `query:"-"`
	EndDate   *time.Time `query:"-"`
	PageRequest
}

// SaleItemResponse línea de venta con el precio congelado.
type SaleItemResponse struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// PaymentMethodResponse pago registrado.
type PaymentMethodResponse struct {
	Type      string          `json:"type"`
	Amount    decimal.Decimal `json:"amount"`
	Reference string          `json:"reference,omitempty"`
}

// SaleResponse salida de una venta. Client solo se completa en GET /api/sales/:id.
type SaleResponse struct {
	ID             string                  `json:"id"`
	ClientID       string                  `json:"clientId"`
	Client         *ClientResponse         `json:"client,omitempty"`
	Items          []SaleItemResponse      `json:"items"`
	PaymentMethods []PaymentMethodResponse `json:"paymentMethods"`
	Total          decimal.Decimal         `json:"total"`
	Status         string                  `json:"status"`
	CreatedAt      time.Time               `json:"createdAt"`
	UpdatedAt      time.Time               `json:"updatedAt"`
}

// SaleListResponse lista paginada de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
