package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("cualquiera"))
}

func TestNew_JSONConServicioYComponente(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "info", Service: "sales-api", Output: &buf})
	l.Named("sales").Info().Str("sale_id", "s1").Msg("venta registrada")
	l.Debug().Msg("no se escribe")

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "sales-api", line["service"])
	assert.Equal(t, "sales", line["component"])
	assert.Equal(t, "s1", line["sale_id"])
	assert.Equal(t, "venta registrada", line["message"])
}
