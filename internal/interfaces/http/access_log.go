package http

import (
	"github.com/gofiber/contrib/fiberzerolog"
	"github.com/gofiber/fiber/v2"
	"github.com/npochettino/sales-management-api/pkg/logger"
)

// accessLogFields campos de cada línea de acceso.
var accessLogFields = []string{
	fiberzerolog.FieldRequestID,
	fiberzerolog.FieldMethod,
	fiberzerolog.FieldPath,
	fiberzerolog.FieldStatus,
	fiberzerolog.FieldLatency,
	fiberzerolog.FieldIP,
	fiberzerolog.FieldError,
}

// AccessLog registra una línea por request con el logger de la app. Va después de requestid
// para incluir el X-Request-ID. 5xx se registra como error, 4xx como warn.
func AccessLog(log *logger.Logger) fiber.Handler {
	zl := log.Zerolog()
	return fiberzerolog.New(fiberzerolog.Config{
		Logger:   &zl,
		Fields:   accessLogFields,
		Messages: []string{"request con error del servidor", "request rechazado", "request"},
	})
}
