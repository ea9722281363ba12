package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/npochettino/sales-management-api/internal/application/dto"
	"github.com/npochettino/sales-management-api/internal/domain"
	"github.com/npochettino/sales-management-api/pkg/logger"
)

var statusByCode = map[string]int{
	domain.CodeInvalidRequest:    fiber.StatusBadRequest,
	domain.CodePaymentMismatch:   fiber.StatusBadRequest,
	domain.CodeInsufficientStock: fiber.StatusBadRequest,
	domain.CodeInvalidState:      fiber.StatusBadRequest,
	domain.CodeNotFound:          fiber.StatusNotFound,
	domain.CodeConflict:          fiber.StatusConflict,
	domain.CodeUnauthorized:      fiber.StatusUnauthorized,
	domain.CodeForbidden:         fiber.StatusForbidden,
	domain.CodeInternal:          fiber.StatusInternalServerError,
}

const msgInternal = "error interno del servidor"

// writeError traduce un error de dominio a status + dto.ErrorResponse.
// Los errores internos no exponen su mensaje.
func writeError(c *fiber.Ctx, err error) error {
	code := domain.Code(err)
	resp := dto.ErrorResponse{Code: code, Message: err.Error(), Details: errorDetails(err)}
	if code == domain.CodeInternal {
		resp.Message = msgInternal
	}
	return c.Status(statusByCode[code]).JSON(resp)
}

// StockErrorDetails detalle de INSUFFICIENT_STOCK.
type StockErrorDetails struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Requested   int    `json:"requested"`
	Available   int    `json:"available"`
}

// PaymentErrorDetails detalle de PAYMENT_MISMATCH.
type PaymentErrorDetails struct {
	PaymentTotal string `json:"paymentTotal"`
	SaleTotal    string `json:"saleTotal"`
}

func errorDetails(err error) any {
	var stock *domain.InsufficientStockError
	if errors.As(err, &stock) {
		return StockErrorDetails{
			ProductID:   stock.ProductID,
			ProductName: stock.ProductName,
			Requested:   stock.Requested,
			Available:   stock.Available,
		}
	}
	var pay *domain.PaymentMismatchError
	if errors.As(err, &pay) {
		return PaymentErrorDetails{
			PaymentTotal: pay.PaymentTotal.StringFixed(2),
			SaleTotal:    pay.SaleTotal.StringFixed(2),
		}
	}
	return nil
}

// ErrorHandler handler de errores de la app Fiber: rutas inexistentes, body demasiado grande, pánicos recuperados.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code := domain.CodeInternal
			switch fe.Code {
			case fiber.StatusNotFound:
				code = domain.CodeNotFound
			case fiber.StatusUnauthorized:
				code = domain.CodeUnauthorized
			case fiber.StatusForbidden:
				code = domain.CodeForbidden
			case fiber.StatusTooManyRequests:
				code = "RATE_LIMITED"
			default:
				if fe.Code < fiber.StatusInternalServerError {
					code = domain.CodeInvalidRequest
				}
			}
			return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: code, Message: fe.Message})
		}
		log.Error().Err(err).Str("path", c.Path()).Str("method", c.Method()).Msg("error no manejado")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: domain.CodeInternal, Message: msgInternal})
	}
}
