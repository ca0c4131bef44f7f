package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewWritesStructuredEntries(t *testing.T) {
	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "info", Writer: buf, Component: "chartctl"})
	require.NoError(t, err)

	named := Named(log, "echarts")
	named.Info().Str("instance", "i1").Msg("mounted")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "mounted", entry["message"])
	require.Equal(t, "i1", entry["instance"])
	require.Equal(t, "info", entry["level"])
	require.Contains(t, entry, "time")
}

func TestNewRespectsLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "WARN", Writer: buf})
	require.NoError(t, err)

	log.Info().Msg("hidden")
	require.Equal(t, "", strings.TrimSpace(buf.String()))
	log.Warn().Msg("shown")
	require.Contains(t, buf.String(), "shown")
}

func TestNewEnvOverride(t *testing.T) {
	t.Setenv(EnvLevel, "debug")
	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "error", Writer: buf})
	require.NoError(t, err)
	log.Debug().Msg("visible")
	require.Contains(t, buf.String(), "visible")
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(Options{Level: "loud"})
	require.Error(t, err)
}

func TestHumanReadable(t *testing.T) {
	buf := &bytes.Buffer{}
	log, err := New(Options{Writer: buf, HumanReadable: true})
	require.NoError(t, err)
	log.Info().Msg("pretty")
	require.Contains(t, buf.String(), "pretty")
	require.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}
