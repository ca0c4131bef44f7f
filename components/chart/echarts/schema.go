package echarts

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/goliatone/go-chartkit/components/chart"
)

// ErrInvalidOption is wrapped by SetOption when a tree fails the option schema.
var ErrInvalidOption = errors.New("echarts: option rejected")

//go:embed schema/option.schema.json
var optionSchema []byte

const optionSchemaName = "option.schema.json"

// OptionValidator checks final option trees before they reach an instance.
type OptionValidator struct {
	schema *jsonschema.Schema
}

var (
	defaultValidatorOnce sync.Once
	defaultValidator     *OptionValidator
	defaultValidatorErr  error
)

// DefaultOptionValidator returns the shared validator compiled from the
// embedded option schema.
func DefaultOptionValidator() (*OptionValidator, error) {
	defaultValidatorOnce.Do(func() {
		defaultValidator, defaultValidatorErr = NewOptionValidator(optionSchema)
	})
	return defaultValidator, defaultValidatorErr
}

// NewOptionValidator compiles a JSON schema document.
func NewOptionValidator(schema []byte) (*OptionValidator, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(optionSchemaName, bytes.NewReader(schema)); err != nil {
		return nil, fmt.Errorf("echarts: load option schema: %w", err)
	}
	compiled, err := compiler.Compile(optionSchemaName)
	if err != nil {
		return nil, fmt.Errorf("echarts: compile option schema: %w", err)
	}
	return &OptionValidator{schema: compiled}, nil
}

// Validate normalizes tree through JSON and validates it.
func (v *OptionValidator) Validate(tree chart.OptionTree) error {
	if v == nil || v.schema == nil {
		return nil
	}
	data, err := json.Marshal(tree)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOption, err)
	}
	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOption, err)
	}
	if payload == nil {
		payload = map[string]any{}
	}
	if err := v.schema.Validate(payload); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOption, err)
	}
	return nil
}
