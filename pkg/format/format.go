// Package format renders dashboard figures: grouped numbers, percentages,
// rupee amounts and localized dates.
package format

import (
	"strings"
	"time"

	"github.com/goodsign/monday"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DateStyle selects a FormatDate layout.
type DateStyle string

const (
	DateMonth   DateStyle = "month"
	DateWeekday DateStyle = "weekday"
	DateShort   DateStyle = "short"
	DateLong    DateStyle = "long"
	DateNumeric DateStyle = "numeric"
)

// DefaultLocale is used when callers pass an empty locale.
const DefaultLocale = monday.LocaleEnUS

// SourceLayout is the timestamp layout used by dashboard sample data.
const SourceLayout = "2006-01-02T15:04:05"

var (
	englishPrinter = message.NewPrinter(language.English)
	indianPrinter  = message.NewPrinter(language.MustParse("en-IN"))
)

// Number groups thousands with commas: 1234567 -> "1,234,567".
func Number[T int | int64 | float64](v T) string {
	return englishPrinter.Sprint(number.Decimal(v))
}

// Percentage formats value/total with one decimal; a zero total yields "0.0%".
func Percentage(value, total float64) string {
	if total == 0 {
		return "0.0%"
	}
	return englishPrinter.Sprintf("%.1f%%", value/total*100)
}

// Amount formats a rupee amount with Indian digit grouping.
func Amount(v float64) string {
	return "₹" + indianPrinter.Sprint(number.Decimal(v))
}

// ParseDate reads the sample-data timestamp layout, falling back to RFC 3339.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(SourceLayout, value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

// MonthName returns the localized month name, abbreviated when short is set.
func MonthName(t time.Time, locale monday.Locale, short bool) string {
	if short {
		return monday.Format(t, "Jan", resolveLocale(locale))
	}
	return monday.Format(t, "January", resolveLocale(locale))
}

// WeekdayName returns the localized weekday name, abbreviated when short is set.
func WeekdayName(t time.Time, locale monday.Locale, short bool) string {
	if short {
		return monday.Format(t, "Mon", resolveLocale(locale))
	}
	return monday.Format(t, "Monday", resolveLocale(locale))
}

// FormatDate renders t in one of the dashboard date styles.
func FormatDate(t time.Time, style DateStyle, locale monday.Locale) string {
	loc := resolveLocale(locale)
	switch style {
	case DateMonth:
		return MonthName(t, loc, false)
	case DateWeekday:
		return WeekdayName(t, loc, false)
	case DateLong:
		return monday.Format(t, "January 2, 2006", loc)
	case DateNumeric:
		return t.Format("1/2/2006")
	default:
		return monday.Format(t, "Jan 2", loc)
	}
}

// Labels maps sample-data timestamps to axis labels with fn, keeping the
// raw value for entries that fail to parse.
func Labels(values []string, fn func(time.Time) string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		t, err := ParseDate(v)
		if err != nil {
			out[i] = v
			continue
		}
		out[i] = fn(t)
	}
	return out
}

func resolveLocale(locale monday.Locale) monday.Locale {
	if locale == "" {
		return DefaultLocale
	}
	return locale
}
