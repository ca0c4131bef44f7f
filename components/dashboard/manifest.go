package dashboard

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	manifestVersionV1 = "1"
	// ManifestVersion exposes the current manifest format version for tooling.
	ManifestVersion = manifestVersionV1
)

// PanelManifestDocument models a YAML/JSON manifest describing panels and
// the seed layout built from them.
type PanelManifestDocument struct {
	Version string           `json:"version" yaml:"version"`
	Name    string           `json:"name,omitempty" yaml:"name,omitempty"`
	Package string           `json:"package,omitempty" yaml:"package,omitempty"`
	Areas   []AreaDefinition `json:"areas,omitempty" yaml:"areas,omitempty"`
	Panels  []ManifestPanel  `json:"panels,omitempty" yaml:"panels,omitempty"`
	Seeds   []ManifestSeed   `json:"seeds,omitempty" yaml:"seeds,omitempty"`
	Source  string           `json:"-" yaml:"-"`
}

// ManifestPanel describes a single panel definition within a manifest.
type ManifestPanel struct {
	Definition  PanelDefinition  `json:"definition" yaml:"definition"`
	Provider    ManifestProvider `json:"provider,omitempty" yaml:"provider,omitempty"`
	Maintainers []string         `json:"maintainers,omitempty" yaml:"maintainers,omitempty"`
	Tags        []string         `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// ManifestProvider captures discovery metadata about a provider implementation.
type ManifestProvider struct {
	Name         string   `json:"name,omitempty" yaml:"name,omitempty"`
	Summary      string   `json:"summary,omitempty" yaml:"summary,omitempty"`
	Package      string   `json:"package,omitempty" yaml:"package,omitempty"`
	DocsURL      string   `json:"docs_url,omitempty" yaml:"docs_url,omitempty"`
	Capabilities []string `json:"capabilities,omitempty" yaml:"capabilities,omitempty"`
}

// ManifestSeed places a configured panel in an area when the manifest is seeded.
type ManifestSeed struct {
	Definition    string         `json:"definition" yaml:"definition"`
	Area          string         `json:"area" yaml:"area"`
	Configuration map[string]any `json:"configuration,omitempty" yaml:"configuration,omitempty"`
	Roles         []string       `json:"roles,omitempty" yaml:"roles,omitempty"`
}

// LoadManifestFile reads a manifest from disk, registers it against the registry, and returns the document.
func (r *Registry) LoadManifestFile(path string) (*PanelManifestDocument, error) {
	doc, err := ReadManifest(path)
	if err != nil {
		return nil, err
	}
	if err := r.LoadManifestDocument(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// LoadManifestDocument registers definitions and provider metadata from a
// decoded manifest, then re-runs the panel hooks so new definitions receive
// providers.
func (r *Registry) LoadManifestDocument(doc *PanelManifestDocument) error {
	if doc == nil {
		return fmt.Errorf("dashboard: manifest document is nil")
	}
	for _, panel := range doc.Panels {
		if err := r.RegisterDefinition(panel.Definition); err != nil {
			return fmt.Errorf("dashboard: register panel %s from %s: %w", panel.Definition.Code, doc.Source, err)
		}
		r.recordProviderMetadata(panel.Definition.Code, panel.Provider)
	}
	return r.ApplyHooks()
}

// ReadManifest loads a manifest file from disk without registering it.
func ReadManifest(path string) (*PanelManifestDocument, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("dashboard: open manifest %s: %w", path, err)
	}
	defer f.Close()
	doc, err := DecodeManifest(f)
	if err != nil {
		return nil, fmt.Errorf("dashboard: decode manifest %s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// DecodeManifest reads a manifest from any reader.
func DecodeManifest(r io.Reader) (*PanelManifestDocument, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var doc PanelManifestDocument
	if err := decoder.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("dashboard: manifest is empty")
		}
		return nil, fmt.Errorf("dashboard: parse manifest: %w", err)
	}
	doc.applyDefaults()
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate ensures the manifest satisfies required fields.
func (doc *PanelManifestDocument) Validate() error {
	if doc.Version != manifestVersionV1 {
		return fmt.Errorf("dashboard: unsupported manifest version %q", doc.Version)
	}
	for idx, area := range doc.Areas {
		if area.Code == "" {
			return fmt.Errorf("dashboard: manifest area at index %d is missing code", idx)
		}
	}
	seen := make(map[string]struct{}, len(doc.Panels))
	for idx, panel := range doc.Panels {
		def := panel.Definition
		if def.Code == "" {
			return fmt.Errorf("dashboard: manifest panel at index %d is missing definition.code", idx)
		}
		if def.Name == "" {
			return fmt.Errorf("dashboard: manifest panel %s missing definition.name", def.Code)
		}
		if !def.Kind.Valid() {
			return fmt.Errorf("dashboard: manifest panel %s has unknown kind %q", def.Code, def.Kind)
		}
		if _, exists := seen[def.Code]; exists {
			return fmt.Errorf("dashboard: manifest duplicates panel code %s", def.Code)
		}
		seen[def.Code] = struct{}{}
	}
	for idx, seed := range doc.Seeds {
		if seed.Definition == "" || seed.Area == "" {
			return fmt.Errorf("dashboard: manifest seed at index %d needs definition and area", idx)
		}
	}
	return nil
}

// Definitions returns the panel definitions declared by the manifest.
func (doc *PanelManifestDocument) Definitions() []PanelDefinition {
	defs := make([]PanelDefinition, len(doc.Panels))
	for i, panel := range doc.Panels {
		defs[i] = panel.Definition
	}
	return defs
}

func (doc *PanelManifestDocument) applyDefaults() {
	if doc.Version == "" {
		doc.Version = manifestVersionV1
	}
}

func (p ManifestProvider) isZero() bool {
	return p.Name == "" &&
		p.Summary == "" &&
		p.Package == "" &&
		p.DocsURL == "" &&
		len(p.Capabilities) == 0
}
