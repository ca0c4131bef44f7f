package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAreasIdempotent(t *testing.T) {
	store := NewInMemoryPanelStore()
	ctx := context.Background()
	if err := RegisterAreas(ctx, store); err != nil {
		t.Fatalf("RegisterAreas returned error: %v", err)
	}
	firstCount := len(store.areas)
	if firstCount != len(DefaultAreaDefinitions()) {
		t.Fatalf("expected %d areas, got %d", len(DefaultAreaDefinitions()), firstCount)
	}
	if err := RegisterAreas(ctx, store); err != nil {
		t.Fatalf("RegisterAreas second run returned error: %v", err)
	}
	if len(store.areas) != firstCount {
		t.Fatalf("expected idempotent area registration")
	}
}

func TestRegisterAreasRequiresStore(t *testing.T) {
	err := RegisterAreas(context.Background(), nil)
	assert.ErrorIs(t, err, errMissingPanelStore)
}

func TestRegisterDefinitionsCopiesRegistry(t *testing.T) {
	store := NewInMemoryPanelStore()
	reg := NewRegistry()
	if err := RegisterDefinitions(context.Background(), store, reg); err != nil {
		t.Fatalf("RegisterDefinitions returned error: %v", err)
	}
	if len(store.definitions) != len(DefaultPanelDefinitions()) {
		t.Fatalf("expected %d defs, got %d", len(DefaultPanelDefinitions()), len(store.definitions))
	}
}

func TestSeedLayoutAddsPanels(t *testing.T) {
	service, _, store := newTestService()
	require.NoError(t, SeedLayout(context.Background(), service))

	total := 0
	for _, ids := range store.placement {
		total += len(ids)
	}
	assert.Equal(t, len(DefaultSeedPanels()), total)
	assert.Len(t, store.placement[AreaMain], 3)
	assert.Len(t, store.placement[AreaSecondary], 3)
	assert.Len(t, store.placement[AreaFooter], 1)
}

func TestSeedManifestRegistersAndSeeds(t *testing.T) {
	service, _, store := newTestService()
	doc := &PanelManifestDocument{
		Version: ManifestVersion,
		Areas:   []AreaDefinition{{Code: "ops.dashboard", Name: "Ops"}},
		Panels: []ManifestPanel{
			{Definition: PanelDefinition{Code: "ops.latency", Name: "Latency", Kind: "line"}},
		},
		Seeds: []ManifestSeed{
			{
				Definition: "ops.latency",
				Area:       "ops.dashboard",
				Configuration: map[string]any{
					"title":  "p95",
					"x_axis": []any{"a", "b"},
					"series": []any{map[string]any{"name": "p95", "data": []any{12, 18}}},
				},
			},
			{Definition: "ops.missing", Area: "ops.dashboard"},
		},
	}

	err := SeedManifest(context.Background(), service, doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ops.missing")

	_, ok := store.areas["ops.dashboard"]
	assert.True(t, ok)
	_, ok = store.definitions["ops.latency"]
	assert.True(t, ok)
	require.Len(t, store.placement["ops.dashboard"], 1)

	provider, ok := service.Registry().Provider("ops.latency")
	require.True(t, ok)
	assert.NotNil(t, provider)
}
