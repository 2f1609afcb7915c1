package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cultivo-labs/cultivo-api/pkg/logger"
)

func TestNew_CampoServiceEnCadaLinea(t *testing.T) {
	log := logger.New(logger.Config{Env: "production", Level: "info", Service: "cultivo-api"})

	var buf bytes.Buffer
	zl := log.Zerolog().Output(&buf)
	zl.Info().Str("evento", "arranque").Msg("listo")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "cultivo-api", line["service"])
	assert.Equal(t, "arranque", line["evento"])
}

func TestNew_NivelFiltraMensajes(t *testing.T) {
	log := logger.New(logger.Config{Env: "production", Level: "warn", Service: "cultivo-api"})

	var buf bytes.Buffer
	zl := log.Zerolog().Output(&buf)
	zl.Info().Msg("descartado")
	assert.Empty(t, buf.Bytes())

	zl.Warn().Msg("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestNew_NivelDesconocidoUsaInfo(t *testing.T) {
	log := logger.New(logger.Config{Env: "production", Level: "verboso"})

	var buf bytes.Buffer
	zl := log.Zerolog().Output(&buf)
	zl.Debug().Msg("descartado")
	assert.Empty(t, buf.Bytes())

	zl.Info().Msg("visible")
	assert.Contains(t, buf.String(), "visible")
}
