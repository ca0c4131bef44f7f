package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-chartkit/components/chart"
	"github.com/goliatone/go-chartkit/components/dashboard"
)

type validateCmd struct {
	Manifest string `arg:"" type:"existingfile" help:"Panel manifest (YAML) to validate."`
}

func (cmd *validateCmd) Run(_ context.Context, logger zerolog.Logger, stdout io.Writer) error {
	doc, err := dashboard.ReadManifest(cmd.Manifest)
	if err != nil {
		return err
	}
	if err := validateManifest(doc); err != nil {
		logger.Error().Err(err).Str("manifest", cmd.Manifest).Msg("manifest invalid")
		return err
	}
	fmt.Fprintf(stdout, "✓ %s: %d panels, %d seeds\n", cmd.Manifest, len(doc.Panels), len(doc.Seeds))
	return nil
}

// validateManifest checks every seed against its definition schema and the
// chart input rules. Seeds may reference built-in definitions.
func validateManifest(doc *dashboard.PanelManifestDocument) error {
	registry := dashboard.NewRegistry()
	if err := registry.LoadManifestDocument(doc); err != nil {
		return err
	}
	validator := dashboard.NewJSONSchemaValidator()
	pipeline := chart.DefaultPipeline()

	var errs error
	for idx, seed := range doc.Seeds {
		def, ok := registry.Definition(seed.Definition)
		if !ok {
			errs = errors.Join(errs, fmt.Errorf("seed %d: unknown definition %s", idx, seed.Definition))
			continue
		}
		if err := validator.Validate(def, seed.Configuration); err != nil {
			errs = errors.Join(errs, fmt.Errorf("seed %d (%s): %w", idx, def.Code, err))
			continue
		}
		props, err := dashboard.PropsFromConfig(def.Kind, seed.Configuration)
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("seed %d (%s): %w", idx, def.Code, err))
			continue
		}
		if err := chart.ValidateProps(props); err != nil {
			errs = errors.Join(errs, fmt.Errorf("seed %d (%s): %w", idx, def.Code, err))
			continue
		}
		if err := pipeline.Validate(props); err != nil {
			errs = errors.Join(errs, fmt.Errorf("seed %d (%s): %w", idx, def.Code, err))
		}
	}
	return errs
}
