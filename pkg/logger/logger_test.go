package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Conciliacion-api/pkg/logger"
)

func TestNew_JSONConComponente(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "debug", Out: &buf})

	zl := l.Component("billing")
	zl.Info().Str("invoice_id", "i-1").Msg("estado actualizado")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "billing", line["component"])
	assert.Equal(t, "i-1", line["invoice_id"])
	assert.Equal(t, "info", line["level"])
}

func TestNew_NivelFiltra(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "warn", Out: &buf})

	l.Info().Msg("no debe salir")
	assert.Empty(t, buf.String())

	l.Warn().Msg("sí sale")
	assert.Contains(t, buf.String(), "sí sale")
}

func TestNew_NivelInvalidoUsaInfo(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "ruidoso", Out: &buf})

	l.Debug().Msg("debug")
	l.Info().Msg("info")
	assert.NotContains(t, buf.String(), `"debug"`)
	assert.Contains(t, buf.String(), `"info"`)
}

func TestNew_CampoService(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Out: &buf, Service: "conciliacion-api"})
	l.Info().Msg("arranque")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "conciliacion-api", line["service"])
}
