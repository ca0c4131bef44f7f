package chart

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultDiagnosticsLimit is the number of entries kept per chart.
const DefaultDiagnosticsLimit = 20

// DiagnosticEntry is one retained log record.
type DiagnosticEntry struct {
	Timestamp time.Time      `json:"timestamp"`
	Level     string         `json:"level"`
	Message   string         `json:"message"`
	Data      map[string]any `json:"data,omitempty"`
}

// Diagnostics is a bounded zerolog sink holding the most recent entries.
type Diagnostics struct {
	mu      sync.Mutex
	limit   int
	entries []DiagnosticEntry
	logger  zerolog.Logger
}

// NewDiagnostics creates a sink retaining up to limit entries.
func NewDiagnostics(limit int) *Diagnostics {
	if limit <= 0 {
		limit = DefaultDiagnosticsLimit
	}
	d := &Diagnostics{
		limit:   limit,
		entries: make([]DiagnosticEntry, 0, limit),
	}
	d.logger = zerolog.New(d).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	return d
}

// Logger returns a zerolog logger writing into the sink.
func (d *Diagnostics) Logger() zerolog.Logger {
	return d.logger
}

// Write decodes one zerolog JSON record.
func (d *Diagnostics) Write(p []byte) (int, error) {
	var raw map[string]any
	if err := json.Unmarshal(p, &raw); err != nil {
		d.add(DiagnosticEntry{
			Timestamp: time.Now().UTC(),
			Level:     zerolog.WarnLevel.String(),
			Message:   string(p),
		})
		return len(p), nil
	}
	entry := DiagnosticEntry{Timestamp: time.Now().UTC()}
	if v, ok := raw[zerolog.LevelFieldName].(string); ok {
		entry.Level = v
	}
	if v, ok := raw[zerolog.MessageFieldName].(string); ok {
		entry.Message = v
	}
	if v, ok := raw[zerolog.TimestampFieldName].(string); ok {
		if ts, err := time.Parse(time.RFC3339, v); err == nil {
			entry.Timestamp = ts.UTC()
		}
	}
	for _, key := range []string{zerolog.LevelFieldName, zerolog.MessageFieldName, zerolog.TimestampFieldName} {
		delete(raw, key)
	}
	if len(raw) > 0 {
		entry.Data = raw
	}
	d.add(entry)
	return len(p), nil
}

func (d *Diagnostics) add(entry DiagnosticEntry) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.entries) == d.limit {
		copy(d.entries, d.entries[1:])
		d.entries[len(d.entries)-1] = entry
		return
	}
	d.entries = append(d.entries, entry)
}

// Entries returns a copy of the retained entries, oldest first.
func (d *Diagnostics) Entries() []DiagnosticEntry {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]DiagnosticEntry, len(d.entries))
	copy(out, d.entries)
	return out
}

// Recent returns up to n of the newest entries, oldest first.
func (d *Diagnostics) Recent(n int) []DiagnosticEntry {
	entries := d.Entries()
	if n <= 0 || n >= len(entries) {
		return entries
	}
	return entries[len(entries)-n:]
}

// Reset drops every retained entry.
func (d *Diagnostics) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries = d.entries[:0]
}
