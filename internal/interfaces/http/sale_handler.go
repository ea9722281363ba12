package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/npochettino/sales-management-api/internal/application/dto"
	"github.com/npochettino/sales-management-api/internal/application/sales"
)

// SaleHandler maneja las peticiones HTTP de ventas (protegido).
type SaleHandler struct {
	create   *sales.CreateSaleUseCase
	sales    *sales.SaleUseCase
	receipts *sales.ReceiptUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(create *sales.CreateSaleUseCase, uc *sales.SaleUseCase, receipts *sales.ReceiptUseCase) *SaleHandler {
	return &SaleHandler{create: create, sales: uc, receipts: receipts}
}

// Create godoc
// @Summary      Registrar venta
// @Description  Valida cliente, stock y pagos; descuenta stock y guarda la venta en una sola transacción.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateSaleRequest  true  "Cliente, líneas y pagos"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if ok, err := BindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.create.CreateSale(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar ventas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        clientId   query  string  false  "ID del cliente"
// @Param        status     query  string  false  "pending | completed | cancelled"
// @Param        startDate  query  string  false  "YYYY-MM-DD o RFC3339"
// @Param        endDate    query  string  false  "YYYY-MM-DD (día completo) o RFC3339"
// @Param        limit      query  int     false  "Límite"  default(50)
// @Param        offset     query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.SaleListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	in := dto.ListSalesRequest{
		ClientID:    c.Query("clientId"),
		Status:      c.Query("status"),
		PageRequest: pageFromQuery(c),
	}
	var ok bool
	if in.StartDate, ok = parseDateQuery(c.Query("startDate"), false); !ok {
		return invalidQuery(c, "startDate", "startDate debe ser YYYY-MM-DD o RFC3339")
	}
	if in.EndDate, ok = parseDateQuery(c.Query("endDate"), true); !ok {
		return invalidQuery(c, "endDate", "endDate debe ser YYYY-MM-DD o RFC3339")
	}
	if ok, err := Validate(c, &in); !ok {
		return err
	}
	out, err := h.sales.ListSales(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener venta con su cliente
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.sales.GetSale(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado de la venta
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                       true  "ID de la venta"
// @Param        body  body      dto.UpdateSaleStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [put]
func (h *SaleHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateSaleStatusRequest
	if ok, err := BindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.sales.UpdateStatus(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar venta pendiente
// @Description  Devuelve al stock las cantidades vendidas y borra la venta.
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la venta"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [delete]
func (h *SaleHandler) Delete(c *fiber.Ctx) error {
	if err := h.sales.DeleteSale(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "venta eliminada"})
}

// Receipt godoc
// @Summary      Descargar comprobante PDF
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/receipt [get]
func (h *SaleHandler) Receipt(c *fiber.Ctx) error {
	pdf, filename, err := h.receipts.DownloadReceipt(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}

// parseDateQuery acepta RFC3339 o YYYY-MM-DD (UTC). Con endOfDay, una fecha sin hora cubre el día entero.
func parseDateQuery(raw string, endOfDay bool) (*time.Time, bool) {
	if raw == "" {
		return nil, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		t = t.UTC()
		return &t, true
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, false
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, true
}

func pageFromQuery(c *fiber.Ctx) dto.PageRequest {
	return dto.PageRequest{Limit: c.QueryInt("limit", 0), Offset: c.QueryInt("offset", 0)}
}
