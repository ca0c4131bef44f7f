package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/goodsign/monday"

	"github.com/goliatone/go-chartkit/pkg/format"
)

// Date label formats accepted by the "date_format" panel configuration key.
const (
	DateFormatMonth        = "month"
	DateFormatMonthShort   = "month_short"
	DateFormatWeekday      = "weekday"
	DateFormatWeekdayShort = "weekday_short"
	DateFormatShort        = "short"
	DateFormatLong         = "long"
	DateFormatNumeric      = "numeric"
)

// DateFormats lists every accepted date label format.
func DateFormats() []string {
	return []string{
		DateFormatMonth, DateFormatMonthShort, DateFormatWeekday, DateFormatWeekdayShort,
		DateFormatShort, DateFormatLong, DateFormatNumeric,
	}
}

// languageDefaults maps bare languages to the locale used for their names.
var languageDefaults = map[string]monday.Locale{
	"en": monday.LocaleEnUS,
	"es": monday.LocaleEsES,
	"fr": monday.LocaleFrFR,
	"de": monday.LocaleDeDE,
	"it": monday.LocaleItIT,
	"pt": monday.LocalePtBR,
	"nl": monday.LocaleNlNL,
	"ru": monday.LocaleRuRU,
	"ja": monday.LocaleJaJP,
	"zh": monday.LocaleZhCN,
}

// ViewerLocale resolves the date locale of a viewer. Language-region pairs
// (`es-mx`) keep their region; bare languages (`es`) use a default region.
func ViewerLocale(viewer ViewerContext) monday.Locale {
	locale := normalizeLocale(viewer.Locale)
	if locale == "" {
		return format.DefaultLocale
	}
	if idx := strings.Index(locale, "-"); idx > 0 {
		return monday.Locale(locale[:idx] + "_" + strings.ToUpper(locale[idx+1:]))
	}
	if loc, ok := languageDefaults[locale]; ok {
		return loc
	}
	return format.DefaultLocale
}

// DateLabeler returns the label function of a date format.
func DateLabeler(style string, locale monday.Locale) (func(time.Time) string, error) {
	switch style {
	case DateFormatMonth:
		return func(t time.Time) string { return format.MonthName(t, locale, false) }, nil
	case DateFormatMonthShort:
		return func(t time.Time) string { return format.MonthName(t, locale, true) }, nil
	case DateFormatWeekday:
		return func(t time.Time) string { return format.WeekdayName(t, locale, false) }, nil
	case DateFormatWeekdayShort:
		return func(t time.Time) string { return format.WeekdayName(t, locale, true) }, nil
	case "", DateFormatShort:
		return func(t time.Time) string { return format.FormatDate(t, format.DateShort, locale) }, nil
	case DateFormatLong:
		return func(t time.Time) string { return format.FormatDate(t, format.DateLong, locale) }, nil
	case DateFormatNumeric:
		return func(t time.Time) string { return format.FormatDate(t, format.DateNumeric, locale) }, nil
	}
	return nil, fmt.Errorf("dashboard: unknown date format %q", style)
}

// localizeDateAxis replaces "x_axis_dates" with formatted "x_axis" labels.
// The input map is not modified.
func localizeDateAxis(cfg map[string]any, locale monday.Locale) (map[string]any, error) {
	raw, ok := cfg["x_axis_dates"]
	if !ok {
		return cfg, nil
	}
	labeler, err := DateLabeler(stringValue(cfg["date_format"], ""), locale)
	if err != nil {
		return nil, err
	}
	out := make(map[string]any, len(cfg))
	for k, v := range cfg {
		if k == "x_axis_dates" || k == "date_format" {
			continue
		}
		out[k] = v
	}
	labels := format.Labels(stringSliceValue(raw), labeler)
	axis := make([]any, len(labels))
	for i, label := range labels {
		axis[i] = label
	}
	out["x_axis"] = axis
	return out, nil
}

func normalizeLocale(locale string) string {
	locale = strings.TrimSpace(strings.ToLower(locale))
	return strings.ReplaceAll(locale, "_", "-")
}
