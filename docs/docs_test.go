package docs_test

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"

	"github.com/npochettino/sales-management-api/docs"
)

func TestReadDoc_JSONValido(t *testing.T) {
	raw, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	assert.Equal(t, "2.0", doc["swagger"])
	info := doc["info"].(map[string]any)
	assert.Equal(t, docs.SwaggerInfo.Title, info["title"])

	paths := doc["paths"].(map[string]any)
	for _, p := range []string{"/api/sales", "/api/sales/{id}", "/api/sales/{id}/receipt", "/api/products/{id}/price-history", "/health"} {
		assert.Contains(t, paths, p)
	}
}

func TestWriteFile(t *testing.T) {
	path, err := docs.WriteFile(t.TempDir())
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, json.Valid(raw))
}
