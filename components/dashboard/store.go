package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// ErrPanelNotFound is returned for unknown panel ids.
var ErrPanelNotFound = errors.New("dashboard: panel not found")

// InMemoryPanelStore is a concurrency-safe PanelStore used by the CLI, tests
// and single-process deployments.
type InMemoryPanelStore struct {
	mu          sync.RWMutex
	areas       map[string]AreaDefinition
	definitions map[string]PanelDefinition
	panels      map[string]Panel
	placement   map[string][]string
	newID       func() string
}

// NewInMemoryPanelStore creates an empty store.
func NewInMemoryPanelStore() *InMemoryPanelStore {
	return &InMemoryPanelStore{
		areas:       map[string]AreaDefinition{},
		definitions: map[string]PanelDefinition{},
		panels:      map[string]Panel{},
		placement:   map[string][]string{},
		newID:       uuid.NewString,
	}
}

// EnsureArea registers an area, reporting whether it was created.
func (s *InMemoryPanelStore) EnsureArea(_ context.Context, def AreaDefinition) (bool, error) {
	if def.Code == "" {
		return false, errInvalidArea
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.areas[def.Code]; ok {
		return false, nil
	}
	s.areas[def.Code] = def
	return true, nil
}

// EnsureDefinition registers a panel definition, reporting whether it was created.
func (s *InMemoryPanelStore) EnsureDefinition(_ context.Context, def PanelDefinition) (bool, error) {
	if def.Code == "" {
		return false, errInvalidDefinition
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, exists := s.definitions[def.Code]
	s.definitions[def.Code] = def
	return !exists, nil
}

// CreatePanel stores a new unassigned panel.
func (s *InMemoryPanelStore) CreatePanel(_ context.Context, input CreatePanelInput) (Panel, error) {
	if input.DefinitionID == "" {
		return Panel{}, errInvalidDefinition
	}
	panel := Panel{
		ID:            s.newID(),
		DefinitionID:  input.DefinitionID,
		Configuration: cloneConfig(input.Configuration),
		Roles:         append([]string(nil), input.Roles...),
		Metadata:      cloneConfig(input.Metadata),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.panels[panel.ID] = panel
	return clonePanel(panel), nil
}

// UpdatePanel replaces the configuration of an existing panel.
func (s *InMemoryPanelStore) UpdatePanel(_ context.Context, input UpdatePanelInput) (Panel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	panel, ok := s.panels[input.PanelID]
	if !ok {
		return Panel{}, fmt.Errorf("%w: %s", ErrPanelNotFound, input.PanelID)
	}
	panel.Configuration = cloneConfig(input.Configuration)
	s.panels[panel.ID] = panel
	return clonePanel(panel), nil
}

// DeletePanel removes a panel and its placement.
func (s *InMemoryPanelStore) DeletePanel(_ context.Context, panelID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	panel, ok := s.panels[panelID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrPanelNotFound, panelID)
	}
	delete(s.panels, panelID)
	if panel.AreaCode != "" {
		s.placement[panel.AreaCode] = removeID(s.placement[panel.AreaCode], panelID)
	}
	return nil
}

// AssignPanel places a panel in an area, optionally at a position.
func (s *InMemoryPanelStore) AssignPanel(_ context.Context, input AssignPanelInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.areas[input.AreaCode]; !ok {
		return fmt.Errorf("dashboard: area %s not registered", input.AreaCode)
	}
	panel, ok := s.panels[input.PanelID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrPanelNotFound, input.PanelID)
	}
	if panel.AreaCode != "" {
		s.placement[panel.AreaCode] = removeID(s.placement[panel.AreaCode], panel.ID)
	}
	panel.AreaCode = input.AreaCode
	s.panels[panel.ID] = panel

	ids := s.placement[input.AreaCode]
	pos := len(ids)
	if input.Position != nil && *input.Position >= 0 && *input.Position < pos {
		pos = *input.Position
	}
	ids = append(ids, "")
	copy(ids[pos+1:], ids[pos:])
	ids[pos] = panel.ID
	s.placement[input.AreaCode] = ids
	return nil
}

// ReorderArea moves the listed panels to the front of the area, in order.
func (s *InMemoryPanelStore) ReorderArea(_ context.Context, input ReorderAreaInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current := s.placement[input.AreaCode]
	members := make(map[string]struct{}, len(current))
	for _, id := range current {
		members[id] = struct{}{}
	}
	for _, id := range input.PanelIDs {
		if _, ok := members[id]; !ok {
			return fmt.Errorf("dashboard: panel %s is not in area %s", id, input.AreaCode)
		}
	}
	panels := make([]Panel, 0, len(current))
	for _, id := range current {
		panels = append(panels, Panel{ID: id})
	}
	ordered := applyOrderOverride(panels, input.PanelIDs)
	ids := make([]string, len(ordered))
	for i, p := range ordered {
		ids[i] = p.ID
	}
	s.placement[input.AreaCode] = ids
	return nil
}

// ResolveArea returns the panels of an area visible to the audience.
func (s *InMemoryPanelStore) ResolveArea(_ context.Context, input ResolveAreaInput) (ResolvedArea, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	resolved := ResolvedArea{AreaCode: input.AreaCode}
	for _, id := range s.placement[input.AreaCode] {
		panel, ok := s.panels[id]
		if !ok || !audienceMatches(panel.Roles, input.Audience) {
			continue
		}
		resolved.Panels = append(resolved.Panels, clonePanel(panel))
	}
	return resolved, nil
}

// Panel fetches a panel by id.
func (s *InMemoryPanelStore) Panel(_ context.Context, panelID string) (Panel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	panel, ok := s.panels[panelID]
	if !ok {
		return Panel{}, fmt.Errorf("%w: %s", ErrPanelNotFound, panelID)
	}
	return clonePanel(panel), nil
}

func audienceMatches(required, audience []string) bool {
	if len(required) == 0 {
		return true
	}
	for _, role := range required {
		for _, have := range audience {
			if role == have {
				return true
			}
		}
	}
	return false
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}

func clonePanel(p Panel) Panel {
	p.Configuration = cloneConfig(p.Configuration)
	p.Metadata = cloneConfig(p.Metadata)
	p.Roles = append([]string(nil), p.Roles...)
	return p
}

func cloneConfig(cfg map[string]any) map[string]any {
	if cfg == nil {
		return nil
	}
	out := make(map[string]any, len(cfg))
	for k, v := range cfg {
		out[k] = cloneConfigValue(v)
	}
	return out
}

func cloneConfigValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return cloneConfig(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneConfigValue(item)
		}
		return out
	default:
		return val
	}
}
