package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryPreferenceStore(t *testing.T) {
	store := NewInMemoryPreferenceStore()
	viewer := ViewerContext{UserID: "user-1", Locale: "en"}
	prefs := Preferences{
		DarkMode: true,
		AreaOrder: map[string][]string{
			AreaMain: {"p2", "p1"},
		},
		HiddenPanels: map[string]bool{"p3": true},
	}
	if err := store.SavePreferences(context.Background(), viewer, prefs); err != nil {
		t.Fatalf("SavePreferences returned error: %v", err)
	}
	out, err := store.Preferences(context.Background(), viewer)
	if err != nil {
		t.Fatalf("Preferences returned error: %v", err)
	}
	if !out.DarkMode {
		t.Fatalf("expected dark mode persisted")
	}
	if order := out.AreaOrder[AreaMain]; len(order) != 2 || order[0] != "p2" {
		t.Fatalf("expected override order, got %v", order)
	}
	if hidden := out.HiddenPanels["p3"]; !hidden {
		t.Fatalf("expected hidden panel persisted")
	}
}

func TestInMemoryPreferenceStoreDefaultsAndIsolation(t *testing.T) {
	store := NewInMemoryPreferenceStore()
	ctx := context.Background()

	anon, err := store.Preferences(ctx, ViewerContext{})
	require.NoError(t, err)
	assert.False(t, anon.DarkMode)
	assert.NotNil(t, anon.AreaOrder)
	assert.NotNil(t, anon.HiddenPanels)

	require.Error(t, store.SavePreferences(ctx, ViewerContext{}, Preferences{}))

	viewer := ViewerContext{UserID: "user-1"}
	prefs := Preferences{AreaOrder: map[string][]string{AreaMain: {"a"}}}
	require.NoError(t, store.SavePreferences(ctx, viewer, prefs))
	prefs.AreaOrder[AreaMain][0] = "mutated"

	out, err := store.Preferences(ctx, viewer)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, out.AreaOrder[AreaMain])
}
