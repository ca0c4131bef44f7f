package chart

import (
	"fmt"
	"sync"
)

// Builder assembles the default option tree for one chart kind.
type Builder interface {
	Build(props Props, palette Palette) (OptionTree, error)
}

// BuilderFunc adapts a function to the Builder interface.
type BuilderFunc func(props Props, palette Palette) (OptionTree, error)

// Build calls f.
func (f BuilderFunc) Build(props Props, palette Palette) (OptionTree, error) {
	return f(props, palette)
}

// InputValidator is implemented by builders that reject input before any
// option tree is produced.
type InputValidator interface {
	ValidateInput(props Props) []string
}

// Pipeline resolves the palette, runs the kind builder and merges caller
// overrides into the final option tree.
type Pipeline struct {
	mu       sync.RWMutex
	builders map[Kind]Builder
}

// NewPipeline returns a pipeline with every built-in kind registered.
func NewPipeline() *Pipeline {
	p := &Pipeline{builders: map[Kind]Builder{}}
	p.builders[KindBar] = BuilderFunc(buildBar)
	p.builders[KindLine] = BuilderFunc(buildLine)
	p.builders[KindPie] = BuilderFunc(buildPie)
	p.builders[KindScatter] = BuilderFunc(buildScatter)
	p.builders[KindCombo] = comboBuilder{}
	p.builders[KindMap] = BuilderFunc(buildMap)
	return p
}

var (
	defaultPipelineOnce sync.Once
	defaultPipeline     *Pipeline
)

// DefaultPipeline returns the shared pipeline with the built-in builders.
func DefaultPipeline() *Pipeline {
	defaultPipelineOnce.Do(func() {
		defaultPipeline = NewPipeline()
	})
	return defaultPipeline
}

// Register installs or replaces the builder for kind.
func (p *Pipeline) Register(kind Kind, builder Builder) error {
	if kind == "" {
		return fmt.Errorf("chart: builder kind is required")
	}
	if builder == nil {
		return fmt.Errorf("chart: builder for %s cannot be nil", kind)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.builders[kind] = builder
	return nil
}

// Builder returns the registered builder for kind.
func (p *Pipeline) Builder(kind Kind) (Builder, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	b, ok := p.builders[kind]
	return b, ok
}

// Validate runs the kind-specific input checks without building.
func (p *Pipeline) Validate(props Props) error {
	builder, ok := p.Builder(props.Kind)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKind, props.Kind)
	}
	if v, ok := builder.(InputValidator); ok {
		if issues := v.ValidateInput(props); len(issues) > 0 {
			return &ValidationError{Kind: props.Kind, Issues: issues}
		}
	}
	return nil
}

// Compose produces the final option tree for props.
func (p *Pipeline) Compose(props Props) (OptionTree, error) {
	if err := ValidateProps(props); err != nil {
		return nil, err
	}
	if err := p.Validate(props); err != nil {
		return nil, err
	}
	builder, _ := p.Builder(props.Kind)
	defaults, err := builder.Build(props, ResolvePalette(props.DarkMode))
	if err != nil {
		return nil, fmt.Errorf("chart: build %s options: %w", props.Kind, err)
	}
	return Merge(defaults, props.Override), nil
}
