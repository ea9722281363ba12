package sales

import (
	"context"

	"github.com/npochettino/sales-management-api/internal/domain/entity"
)

// ReceiptPDFGenerator genera el comprobante PDF de una venta.
type ReceiptPDFGenerator interface {
	GenerateSaleReceipt(ctx context.Context, sale *entity.Sale, client *entity.Client) ([]byte, error)
}
