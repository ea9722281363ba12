package sales

import (
	"context"
	"fmt"

	"github.com/npochettino/sales-management-api/internal/domain"
	"github.com/npochettino/sales-management-api/internal/domain/repository"
)

// ReceiptUseCase genera el comprobante PDF de una venta.
type ReceiptUseCase struct {
	saleRepo   repository.SaleRepository
	clientRepo repository.ClientRepository
	generator  ReceiptPDFGenerator
}

// NewReceiptUseCase construye el caso de uso inyectando todas sus dependencias.
func NewReceiptUseCase(
	saleRepo repository.SaleRepository,
	clientRepo repository.ClientRepository,
	generator ReceiptPDFGenerator,
) *ReceiptUseCase {
	return &ReceiptUseCase{saleRepo: saleRepo, clientRepo: clientRepo, generator: generator}
}

// DownloadReceipt devuelve los bytes del PDF y el nombre de archivo sugerido.
// Si el cliente fue eliminado el comprobante se emite igual, sin sus datos.
func (uc *ReceiptUseCase) DownloadReceipt(ctx context.Context, saleID string) (pdfBytes []byte, filename string, err error) {
	sale, err := uc.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: obtener venta: %w", err)
	}
	if sale == nil {
		return nil, "", domain.ErrNotFound
	}
	client, err := uc.clientRepo.GetByID(ctx, sale.ClientID)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: obtener cliente: %w", err)
	}

	pdfBytes, err = uc.generator.GenerateSaleReceipt(ctx, sale, client)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("venta_%s.pdf", sale.ID), nil
}
