package dashboard

import (
	"context"
	"fmt"
	"sync"
)

// InMemoryPreferenceStore provides a concurrency-safe default store.
type InMemoryPreferenceStore struct {
	mu   sync.RWMutex
	data map[string]Preferences
}

// NewInMemoryPreferenceStore creates an empty preference store.
func NewInMemoryPreferenceStore() *InMemoryPreferenceStore {
	return &InMemoryPreferenceStore{
		data: make(map[string]Preferences),
	}
}

// Preferences returns stored preferences or light-mode defaults.
func (s *InMemoryPreferenceStore) Preferences(_ context.Context, viewer ViewerContext) (Preferences, error) {
	if viewer.UserID == "" {
		return normalizePreferences(Preferences{}), nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if prefs, ok := s.data[viewer.UserID]; ok {
		return clonePreferences(prefs), nil
	}
	return normalizePreferences(Preferences{}), nil
}

// SavePreferences persists preferences for a viewer.
func (s *InMemoryPreferenceStore) SavePreferences(_ context.Context, viewer ViewerContext, prefs Preferences) error {
	if viewer.UserID == "" {
		return fmt.Errorf("dashboard: preference store requires viewer user id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[viewer.UserID] = clonePreferences(prefs)
	return nil
}

func normalizePreferences(prefs Preferences) Preferences {
	if prefs.AreaOrder == nil {
		prefs.AreaOrder = map[string][]string{}
	}
	if prefs.HiddenPanels == nil {
		prefs.HiddenPanels = map[string]bool{}
	}
	return prefs
}

func clonePreferences(prefs Preferences) Preferences {
	out := Preferences{
		DarkMode:     prefs.DarkMode,
		AreaOrder:    make(map[string][]string, len(prefs.AreaOrder)),
		HiddenPanels: make(map[string]bool, len(prefs.HiddenPanels)),
	}
	for area, ids := range prefs.AreaOrder {
		out.AreaOrder[area] = append([]string(nil), ids...)
	}
	for id, hidden := range prefs.HiddenPanels {
		out.HiddenPanels[id] = hidden
	}
	return out
}
