package chart

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnosticsKeepsNewestEntries(t *testing.T) {
	t.Parallel()

	d := NewDiagnostics(0)
	logger := d.Logger()
	for i := 0; i < 25; i++ {
		logger.Info().Int("n", i).Msg(fmt.Sprintf("entry %d", i))
	}

	entries := d.Entries()
	require.Len(t, entries, DefaultDiagnosticsLimit)
	assert.Equal(t, "entry 5", entries[0].Message)
	assert.Equal(t, "entry 24", entries[len(entries)-1].Message)
	assert.Equal(t, "info", entries[0].Level)
	assert.Equal(t, float64(24), entries[len(entries)-1].Data["n"])
	assert.False(t, entries[0].Timestamp.IsZero())
}

func TestDiagnosticsRecentAndReset(t *testing.T) {
	t.Parallel()

	d := NewDiagnostics(5)
	logger := d.Logger()
	logger.Warn().Msg("one")
	logger.Error().Str("error", "boom").Msg("two")
	logger.Debug().Msg("three")

	recent := d.Recent(2)
	require.Len(t, recent, 2)
	assert.Equal(t, "two", recent[0].Message)
	assert.Equal(t, "boom", recent[0].Data["error"])
	assert.Equal(t, "debug", recent[1].Level)
	assert.Len(t, d.Recent(0), 3)

	d.Reset()
	assert.Empty(t, d.Entries())
}

func TestDiagnosticsAcceptsNonJSON(t *testing.T) {
	t.Parallel()

	d := NewDiagnostics(2)
	n, err := d.Write([]byte("plain text"))
	require.NoError(t, err)
	assert.Equal(t, len("plain text"), n)
	entries := d.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "plain text", entries[0].Message)
	assert.Equal(t, "warn", entries[0].Level)
}
