package echarts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// MapRegistrar accepts GeoJSON documents by name.
type MapRegistrar interface {
	RegisterMap(name string, geo json.RawMessage) error
}

// GeoLoader fetches geo boundary documents once per name and registers them
// with the engine.
type GeoLoader struct {
	registrar MapRegistrar
	client    *http.Client
	maxBytes  int64

	mu      sync.Mutex
	entries map[string]*geoEntry
}

// geoEntry serializes loads of one map name. Loads of other names proceed
// independently.
type geoEntry struct {
	mu   sync.Mutex
	done atomic.Bool
}

// GeoOption customizes a GeoLoader.
type GeoOption func(*GeoLoader)

// WithHTTPClient sets the client used for fetches.
func WithHTTPClient(client *http.Client) GeoOption {
	return func(l *GeoLoader) {
		if client != nil {
			l.client = client
		}
	}
}

// WithMaxGeoBytes limits the size of a fetched document.
func WithMaxGeoBytes(n int64) GeoOption {
	return func(l *GeoLoader) {
		if n > 0 {
			l.maxBytes = n
		}
	}
}

// NewGeoLoader builds a loader registering into registrar.
func NewGeoLoader(registrar MapRegistrar, opts ...GeoOption) *GeoLoader {
	l := &GeoLoader{
		registrar: registrar,
		client:    &http.Client{Timeout: 15 * time.Second},
		maxBytes:  8 << 20,
		entries:   map[string]*geoEntry{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load fetches url and registers the document under name. Subsequent calls
// for the same name are no-ops.
func (l *GeoLoader) Load(ctx context.Context, name, url string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("echarts: map name is required")
	}

	entry := l.entry(name)
	entry.mu.Lock()
	defer entry.mu.Unlock()
	if entry.done.Load() {
		return nil
	}

	geo, err := l.fetch(ctx, url)
	if err != nil {
		return fmt.Errorf("echarts: load map %s: %w", name, err)
	}
	if l.registrar != nil {
		if err := l.registrar.RegisterMap(name, geo); err != nil {
			return err
		}
	}
	entry.done.Store(true)
	return nil
}

// Loaded reports whether name was fetched and registered.
func (l *GeoLoader) Loaded(name string) bool {
	l.mu.Lock()
	entry, ok := l.entries[name]
	l.mu.Unlock()
	return ok && entry.done.Load()
}

func (l *GeoLoader) entry(name string) *geoEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry, ok := l.entries[name]
	if !ok {
		entry = &geoEntry{}
		l.entries[name] = entry
	}
	return entry
}

func (l *GeoLoader) fetch(ctx context.Context, url string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, l.maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > l.maxBytes {
		return nil, fmt.Errorf("document exceeds %d bytes", l.maxBytes)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("response is not valid JSON")
	}
	return json.RawMessage(body), nil
}
