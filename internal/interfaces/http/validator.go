package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/npochettino/sales-management-api/internal/application/dto"
	"github.com/npochettino/sales-management-api/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Los errores nombran el campo como lo ve el cliente (tag json).
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			name = strings.SplitN(f.Tag.Get("query"), ",", 2)[0]
		}
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// FieldError un campo inválido dentro de INVALID_REQUEST.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

// BindAndValidate parsea el body JSON en out y aplica sus tags validate.
// Si falla ya escribió la respuesta 400 y devuelve false.
func BindAndValidate(c *fiber.Ctx, out any) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    domain.CodeInvalidRequest,
			Message: "cuerpo inválido: " + err.Error(),
		})
	}
	return Validate(c, out)
}

// Validate aplica los tags validate de in. Si falla ya escribió la respuesta 400 y devuelve false.
func Validate(c *fiber.Ctx, in any) (bool, error) {
	err := validate.Struct(in)
	if err == nil {
		return true, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return false, writeError(c, err)
	}
	fields := make([]FieldError, 0, len(verrs))
	names := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := trimRoot(fe.Namespace())
		fields = append(fields, FieldError{Field: field, Rule: fe.Tag(), Param: fe.Param()})
		names = append(names, field)
	}
	return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Code:    domain.CodeInvalidRequest,
		Message: fmt.Sprintf("campos inválidos: %s", strings.Join(names, ", ")),
		Details: fields,
	})
}

// trimRoot quita el nombre del struct raíz: "CreateSaleRequest.items[0].quantity" -> "items[0].quantity".
func trimRoot(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// invalidQuery respuesta 400 para parámetros de query mal formados.
func invalidQuery(c *fiber.Ctx, param, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Code:    domain.CodeInvalidRequest,
		Message: msg,
		Details: []FieldError{{Field: param, Rule: "format"}},
	})
}
