package echarts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goliatone/go-chartkit/components/chart"
)

const funcMarker = "__f__"

// funcLiteral matches a JSON string wrapped by opts.FuncOpts markers.
var funcLiteral = regexp.MustCompile(`"__f__((?:[^"\\]|\\.)*)__f__"`)

// Encode renders tree as a JavaScript object literal. Formatter sources marked
// through opts.FuncOpts are emitted unquoted so the browser evaluates them as
// functions; everything else is plain JSON.
func Encode(tree chart.OptionTree) (string, error) {
	if len(tree) == 0 {
		return "{}", nil
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(tree); err != nil {
		return "", fmt.Errorf("echarts: encode option: %w", err)
	}
	out := strings.TrimRight(buf.String(), "\n")
	return funcLiteral.ReplaceAllStringFunc(out, unquoteFunc), nil
}

func unquoteFunc(match string) string {
	body := match[len(`"`+funcMarker) : len(match)-len(funcMarker+`"`)]
	src, err := strconv.Unquote(`"` + body + `"`)
	if err != nil {
		return match
	}
	return src
}

// scriptSafe keeps encoded options from closing the surrounding script tag.
func scriptSafe(src string) string {
	return strings.ReplaceAll(src, "</", `<\/`)
}
