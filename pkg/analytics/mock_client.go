package analytics

import (
	"context"
	"fmt"
	"sync"

	"github.com/goliatone/go-chartkit/components/chart"
)

// MockClient implements SeriesClient using in-memory fixtures keyed by
// definition code.
type MockClient struct {
	mu      sync.RWMutex
	reports map[string]SeriesReport
	calls   int
}

// NewMockClient builds a mock analytics client from the provided fixtures.
func NewMockClient(reports map[string]SeriesReport) *MockClient {
	c := &MockClient{reports: map[string]SeriesReport{}}
	for code, report := range reports {
		c.reports[code] = cloneReport(report)
	}
	return c
}

// Set replaces the fixture for a definition.
func (c *MockClient) Set(definition string, report SeriesReport) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reports[definition] = cloneReport(report)
}

// Calls reports how many fetches were served.
func (c *MockClient) Calls() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.calls
}

// FetchSeries returns the fixture for the query's definition.
func (c *MockClient) FetchSeries(_ context.Context, query SeriesQuery) (SeriesReport, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	report, ok := c.reports[query.Definition]
	if !ok {
		return SeriesReport{}, fmt.Errorf("analytics: no fixture for %s", query.Definition)
	}
	return cloneReport(report), nil
}

func cloneReport(r SeriesReport) SeriesReport {
	out := SeriesReport{
		XAxis:  append([]any(nil), r.XAxis...),
		YAxis:  append([]any(nil), r.YAxis...),
		Legend: append([]string(nil), r.Legend...),
	}
	if r.Series != nil {
		out.Series = make([]chart.SeriesSpec, len(r.Series))
		for i, s := range r.Series {
			s.Data = append([]any(nil), s.Data...)
			s.Colors = append([]string(nil), s.Colors...)
			out.Series[i] = s
		}
	}
	return out
}
