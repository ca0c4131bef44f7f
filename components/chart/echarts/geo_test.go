package echarts

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeoLoaderFetchesOnce(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"type":"FeatureCollection","features":[]}`))
	}))
	defer server.Close()

	engine, pub := newTestEngine(t)
	loader := NewGeoLoader(engine, WithHTTPClient(server.Client()))
	ctx := context.Background()

	require.NoError(t, loader.Load(ctx, "pacific", server.URL))
	require.NoError(t, loader.Load(ctx, "pacific", server.URL))

	assert.Equal(t, int32(1), hits.Load())
	assert.True(t, loader.Loaded("pacific"))
	assert.True(t, engine.HasMap("pacific"))
	assert.Equal(t, []Op{OpRegisterMap}, pub.ops())
}

func TestGeoLoaderErrors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/missing":
			http.NotFound(w, r)
		default:
			_, _ = w.Write([]byte("not json"))
		}
	}))
	defer server.Close()

	engine, _ := newTestEngine(t)
	loader := NewGeoLoader(engine)
	ctx := context.Background()

	assert.Error(t, loader.Load(ctx, "", server.URL))
	assert.Error(t, loader.Load(ctx, "a", server.URL+"/missing"))
	assert.Error(t, loader.Load(ctx, "b", server.URL+"/garbage"))
	assert.False(t, loader.Loaded("a"))
	assert.False(t, engine.HasMap("b"))
}

func TestGeoLoaderRejectsOversizeDocuments(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"type":"FeatureCollection","features":[]}`))
	}))
	defer server.Close()

	engine, _ := newTestEngine(t)
	loader := NewGeoLoader(engine, WithMaxGeoBytes(16))
	err := loader.Load(context.Background(), "pacific", server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds 16 bytes")
	assert.False(t, loader.Loaded("pacific"))

	exact := NewGeoLoader(engine, WithMaxGeoBytes(int64(len(`{"type":"FeatureCollection","features":[]}`))))
	assert.NoError(t, exact.Load(context.Background(), "pacific", server.URL))
}

func TestGeoLoaderLoadsNamesIndependently(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/slow" {
			close(started)
			select {
			case <-release:
			case <-time.After(2 * time.Second):
			}
		}
		_, _ = w.Write([]byte(`{"type":"FeatureCollection","features":[]}`))
	}))
	defer server.Close()

	engine, _ := newTestEngine(t)
	loader := NewGeoLoader(engine)
	ctx := context.Background()

	slowDone := make(chan error, 1)
	go func() { slowDone <- loader.Load(ctx, "slow", server.URL+"/slow") }()
	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatalf("slow fetch never started")
	}

	require.NoError(t, loader.Load(ctx, "fast", server.URL+"/fast"))
	select {
	case <-slowDone:
		t.Fatalf("slow load finished before the fast one returned")
	default:
	}
	close(release)
	require.NoError(t, <-slowDone)
	assert.True(t, loader.Loaded("slow"))
	assert.True(t, loader.Loaded("fast"))
}
