package dashboard

import (
	"context"
	"errors"
	"fmt"
)

// RegisterAreas ensures the dashboard areas exist in the store.
func RegisterAreas(ctx context.Context, store PanelStore, areas ...AreaDefinition) error {
	if store == nil {
		return errMissingPanelStore
	}
	if len(areas) == 0 {
		areas = DefaultAreaDefinitions()
	}
	for _, area := range areas {
		if _, err := store.EnsureArea(ctx, area); err != nil {
			return fmt.Errorf("register area %s: %w", area.Code, err)
		}
	}
	return nil
}

// RegisterDefinitions stores every registry definition in the store.
func RegisterDefinitions(ctx context.Context, store PanelStore, registry ProviderRegistry) error {
	if store == nil {
		return errMissingPanelStore
	}
	if registry == nil {
		return errors.New("dashboard: registry is required to register definitions")
	}
	for _, def := range registry.Definitions() {
		if _, err := store.EnsureDefinition(ctx, def); err != nil {
			return fmt.Errorf("register definition %s: %w", def.Code, err)
		}
	}
	return nil
}

// SeedLayout creates the starter dashboard panels.
func SeedLayout(ctx context.Context, service *Service) error {
	if service == nil {
		return errors.New("dashboard: service is required to seed layout")
	}
	var seedErr error
	for _, req := range DefaultSeedPanels() {
		if _, err := service.AddPanel(ctx, req); err != nil {
			seedErr = errors.Join(seedErr, err)
		}
	}
	return seedErr
}

// SeedManifest registers the manifest areas and definitions, then creates
// its seed panels. Every failing seed is reported.
func SeedManifest(ctx context.Context, service *Service, doc *PanelManifestDocument) error {
	if service == nil {
		return errors.New("dashboard: service is required to seed manifest")
	}
	if doc == nil {
		return errors.New("dashboard: manifest document is nil")
	}
	store, err := service.panelStore()
	if err != nil {
		return err
	}
	if len(doc.Areas) > 0 {
		if err := RegisterAreas(ctx, store, doc.Areas...); err != nil {
			return err
		}
	}
	if reg, ok := service.opts.Providers.(*Registry); ok {
		if err := reg.LoadManifestDocument(doc); err != nil {
			return err
		}
	} else {
		for _, def := range doc.Definitions() {
			if err := service.opts.Providers.RegisterDefinition(def); err != nil {
				return err
			}
		}
	}
	for _, def := range doc.Definitions() {
		if _, err := store.EnsureDefinition(ctx, def); err != nil {
			return fmt.Errorf("register definition %s: %w", def.Code, err)
		}
	}
	var seedErr error
	for idx, seed := range doc.Seeds {
		if _, err := service.AddPanel(ctx, AddPanelRequest{
			DefinitionID:  seed.Definition,
			AreaCode:      seed.Area,
			Configuration: seed.Configuration,
			Roles:         seed.Roles,
		}); err != nil {
			seedErr = errors.Join(seedErr, fmt.Errorf("seed %d (%s): %w", idx, seed.Definition, err))
		}
	}
	return seedErr
}
