package chart

import (
	"fmt"
	"strings"

	"github.com/go-echarts/go-echarts/v2/types"
)

// Kind identifies the chart family a builder produces.
type Kind string

const (
	KindBar     Kind = types.ChartBar
	KindLine    Kind = types.ChartLine
	KindPie     Kind = types.ChartPie
	KindScatter Kind = types.ChartScatter
	KindMap     Kind = types.ChartMap
	// KindCombo mixes bar, line and pie series on one grid.
	KindCombo Kind = "combo"
)

var knownKinds = []Kind{KindBar, KindLine, KindPie, KindScatter, KindCombo, KindMap}

// Kinds lists every chart kind understood by the default pipeline.
func Kinds() []Kind {
	out := make([]Kind, len(knownKinds))
	copy(out, knownKinds)
	return out
}

// ParseKind normalizes a kind name.
func ParseKind(value string) (Kind, error) {
	kind := Kind(strings.ToLower(strings.TrimSpace(value)))
	if !kind.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, value)
	}
	return kind, nil
}

// Valid reports whether the kind is one of the built-in kinds.
func (k Kind) Valid() bool {
	for _, known := range knownKinds {
		if k == known {
			return true
		}
	}
	return false
}

func (k Kind) String() string { return string(k) }

// axisTrigger reports whether tooltips follow the axis pointer for this kind.
func (k Kind) axisTrigger() bool {
	switch k {
	case KindBar, KindLine, KindCombo:
		return true
	default:
		return false
	}
}
