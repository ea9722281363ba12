// Package docs registra la especificación OpenAPI de la API en swag.
package docs

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/swaggo/swag"
)

//go:embed template.json
var docTemplate string

// SwaggerInfo metadatos de la especificación; Host y BasePath pueden ajustarse antes de WriteFile.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Sales Management API",
	Description:      "Ventas, productos, clientes y categorías. Los montos viajan como strings decimales.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

// WriteFile renderiza la especificación registrada en dir/swagger.json y devuelve la ruta,
// para que el middleware de Swagger UI la sirva sin depender del directorio de trabajo.
func WriteFile(dir string) (string, error) {
	doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	if err != nil {
		return "", fmt.Errorf("docs: renderizar: %w", err)
	}
	path := filepath.Join(dir, "swagger.json")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return "", fmt.Errorf("docs: escribir %s: %w", path, err)
	}
	return path, nil
}
