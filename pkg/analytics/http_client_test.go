package analytics

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClientFetchSeries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/series/query" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Fatalf("expected auth header, got %s", got)
		}
		var query SeriesQuery
		_ = json.NewDecoder(r.Body).Decode(&query)
		if query.Definition != "chartkit.panel.bar" || query.Range != "7d" {
			t.Fatalf("unexpected query %#v", query)
		}
		_, _ = w.Write([]byte(`{"x_axis":["Mon","Tue"],"series":[{"name":"Online","type":"bar","data":[12,19]}]}`))
	}))
	t.Cleanup(server.Close)

	client, err := NewHTTPClient(HTTPConfig{BaseURL: server.URL, APIKey: "secret"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	report, err := client.FetchSeries(context.Background(), SeriesQuery{Definition: "chartkit.panel.bar", Range: "7d"})
	if err != nil {
		t.Fatalf("fetch series: %v", err)
	}
	if len(report.Series) != 1 || report.Series[0].Name != "Online" {
		t.Fatalf("unexpected report: %#v", report)
	}
	assert.Equal(t, []any{"Mon", "Tue"}, report.XAxis)
	assert.Equal(t, []any{float64(12), float64(19)}, report.Series[0].Data)
}

func TestHTTPClientErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	t.Cleanup(server.Close)

	_, err := NewHTTPClient(HTTPConfig{})
	require.Error(t, err)

	client, err := NewHTTPClient(HTTPConfig{BaseURL: server.URL})
	require.NoError(t, err)
	_, err = client.FetchSeries(context.Background(), SeriesQuery{Definition: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "remote error 502")
}

func TestHTTPClientRejectsUnnamedSeries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"series":[{"data":[1]}]}`))
	}))
	t.Cleanup(server.Close)

	client, err := NewHTTPClient(HTTPConfig{BaseURL: server.URL})
	require.NoError(t, err)
	_, err = client.FetchSeries(context.Background(), SeriesQuery{Definition: "x"})
	assert.ErrorContains(t, err, "has no name")
}
