package sales

import (
	"github.com/npochettino/sales-management-api/internal/application/dto"
	"github.com/npochettino/sales-management-api/internal/domain/entity"
)

// ToSaleResponse convierte la venta a su DTO. client puede ser nil.
func ToSaleResponse(s *entity.Sale, client *entity.Client) *dto.SaleResponse {
	out := &dto.SaleResponse{
		ID:             s.ID,
		ClientID:       s.ClientID,
		Items:          make([]dto.SaleItemResponse, 0, len(s.Items)),
		PaymentMethods: make([]dto.PaymentMethodResponse, 0, len(s.PaymentMethods)),
		Total:          s.Total,
		Status:         string(s.Status),
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
	for _, it := range s.Items {
		out.Items = append(out.Items, dto.SaleItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal,
		})
	}
	for _, pm := range s.PaymentMethods {
		out.PaymentMethods = append(out.PaymentMethods, dto.PaymentMethodResponse{
			Type:      string(pm.Type),
			Amount:    pm.Amount,
			Reference: pm.Reference,
		})
	}
	if client != nil {
		out.Client = &dto.ClientResponse{
			ID:        client.ID,
			Name:      client.Name,
			Email:     client.Email,
			Phone:     client.Phone,
			Address:   client.Address,
			CreatedAt: client.CreatedAt,
			UpdatedAt: client.UpdatedAt,
		}
	}
	return out
}
