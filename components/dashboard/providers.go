package dashboard

import (
	"context"

	"github.com/goliatone/go-chartkit/components/chart"
)

// ConfigProvider builds chart props straight from the panel configuration.
type ConfigProvider struct {
	kind     chart.Kind
	defaults map[string]any
}

// ConfigProviderOption customizes provider behavior.
type ConfigProviderOption func(*ConfigProvider)

// WithProviderKind pins the chart kind regardless of the definition.
func WithProviderKind(kind chart.Kind) ConfigProviderOption {
	return func(p *ConfigProvider) {
		p.kind = kind
	}
}

// WithConfigDefaults supplies top-level configuration keys used when the
// panel does not set them.
func WithConfigDefaults(cfg map[string]any) ConfigProviderOption {
	return func(p *ConfigProvider) {
		p.defaults = cloneConfig(cfg)
	}
}

// NewConfigProvider builds a provider that reads props from configuration.
func NewConfigProvider(opts ...ConfigProviderOption) *ConfigProvider {
	p := &ConfigProvider{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Props converts the panel configuration into chart props for the viewer's mode.
func (p *ConfigProvider) Props(_ context.Context, meta PanelContext) (chart.Props, error) {
	cfg := make(map[string]any, len(p.defaults)+len(meta.Panel.Configuration))
	for k, v := range p.defaults {
		cfg[k] = v
	}
	for k, v := range meta.Panel.Configuration {
		cfg[k] = v
	}
	cfg, err := localizeDateAxis(cfg, ViewerLocale(meta.Viewer))
	if err != nil {
		return chart.Props{}, err
	}
	kind := p.kind
	if kind == "" {
		kind = meta.Definition.Kind
	}
	props, err := PropsFromConfig(kind, cfg)
	if err != nil {
		return chart.Props{}, err
	}
	props.DarkMode = meta.DarkMode
	if props.Height == "" {
		props.Height = meta.Definition.Height
	}
	return props, nil
}

func init() {
	RegisterPanelHook(func(reg *Registry) error {
		for _, def := range reg.Definitions() {
			if _, ok := reg.Provider(def.Code); ok {
				continue
			}
			if !def.Kind.Valid() {
				continue
			}
			if err := reg.RegisterProvider(def.Code, NewConfigProvider()); err != nil {
				return err
			}
		}
		return nil
	})
}
