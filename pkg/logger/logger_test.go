package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/financas-casa/pkg/logger"
)

func TestNew_JSONConComponente(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "info", Out: &buf})

	log.Component("recorder").Info().Str("kind", "Compra").Msg("movimiento registrado")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "recorder", line["component"])
	assert.Equal(t, "Compra", line["kind"])
	assert.Equal(t, "info", line["level"])
}

func TestNew_NivelFiltraEventos(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "warn", Out: &buf})

	log.Info().Msg("no debe aparecer")
	assert.Zero(t, buf.Len())

	log.Warn().Msg("sí aparece")
	assert.NotZero(t, buf.Len())
}

func TestNew_NivelInvalidoUsaInfo(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Level: "verbose", Out: &buf})
	log.Debug().Msg("filtrado")
	assert.Zero(t, buf.Len())
	log.Info().Msg("visible")
	assert.NotZero(t, buf.Len())
}
