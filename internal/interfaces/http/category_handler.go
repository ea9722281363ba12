package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/npochettino/sales-management-api/internal/application/dto"
	"github.com/npochettino/sales-management-api/internal/application/usecase"
)

// CategoryHandler maneja categorías. Las lecturas pasan por el middleware de caché;
// toda escritura exitosa vacía el storage de ese caché.
type CategoryHandler struct {
	uc    *usecase.CategoryUseCase
	cache fiber.Storage
}

// NewCategoryHandler cache puede ser nil (sin caché).
func NewCategoryHandler(uc *usecase.CategoryUseCase, cache fiber.Storage) *CategoryHandler {
	return &CategoryHandler{uc: uc, cache: cache}
}

func (h *CategoryHandler) invalidate() {
	if h.cache != nil {
		_ = h.cache.Reset()
	}
}

// List godoc
// @Summary      Listar categorías
// @Description  Si no hay ninguna se crean las categorías por defecto.
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CategoryResponse
// @Router       /api/categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear categoría
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateCategoryRequest  true  "Datos de la categoría"
// @Success      201   {object}  dto.CategoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
	if ok, err := BindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	h.invalidate()
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener categoría
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la categoría"
// @Success      200  {object}  dto.CategoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [get]
func (h *CategoryHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar categoría
// @Description  Un cambio de nombre se propaga a los productos de la categoría.
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                     true  "ID de la categoría"
// @Param        body  body      dto.UpdateCategoryRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.CategoryResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [put]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCategoryRequest
	if ok, err := BindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	h.invalidate()
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar categoría sin productos
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la categoría"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	h.invalidate()
	return c.JSON(dto.MessageResponse{Message: "categoría eliminada"})
}
