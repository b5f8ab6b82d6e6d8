// Package cellvalue holds the closed set of column types and the
// type-directed conversions applied at the edges of the value store. Stored
// cell text is opaque; these helpers only run when text is produced from
// structured input or rendered for display.
package cellvalue

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
)

type ColumnType string

const (
	Text     ColumnType = "text"
	Number   ColumnType = "number"
	Date     ColumnType = "date"
	Link     ColumnType = "link"
	Boolean  ColumnType = "boolean"
	Select   ColumnType = "select"
	LongText ColumnType = "long-text"
)

var allTypes = []ColumnType{Text, Number, Date, Link, Boolean, Select, LongText}

// Types returns every supported column type.
func Types() []ColumnType {
	return slices.Clone(allTypes)
}

func (t ColumnType) Valid() bool {
	return slices.Contains(allTypes, t)
}

func (t ColumnType) String() string { return string(t) }

func ParseColumnType(s string) (ColumnType, error) {
	t := ColumnType(strings.TrimSpace(s))
	if !t.Valid() {
		return "", fmt.Errorf("unknown column type %q", s)
	}
	return t, nil
}

const isoDate = "2006-01-02"

var dateLayouts = []string{
	isoDate,
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
}

// ParseDate accepts the common date spellings and returns the date part.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseBool understands the spellings people type into a yes/no cell.
func ParseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "y", "t", "on":
		return true, true
	case "false", "0", "no", "n", "f", "off", "":
		return false, true
	}
	return false, false
}

// FromAny renders a structured value (as decoded from JSON) into cell text.
// nil stays nil.
func FromAny(v any) (*string, error) {
	var s string
	switch x := v.(type) {
	case nil:
		return nil, nil
	case string:
		s = x
	case bool:
		s = strconv.FormatBool(x)
	case float64:
		s = formatFloat(x)
	case float32:
		s = formatFloat(float64(x))
	case int:
		s = strconv.Itoa(x)
	case int64:
		s = strconv.FormatInt(x, 10)
	case fmt.Stringer:
		s = x.String()
	default:
		b, err := sonic.Marshal(x)
		if err != nil {
			return nil, fmt.Errorf("encode cell value: %w", err)
		}
		s = string(b)
	}
	return &s, nil
}

// Normalize brings text produced for a column of type t into its canonical
// spelling when it can be parsed, and leaves it untouched otherwise.
func Normalize(t ColumnType, raw *string) *string {
	if raw == nil {
		return nil
	}
	s := strings.TrimSpace(*raw)
	switch t {
	case Boolean:
		if b, ok := ParseBool(s); ok && s != "" {
			s = strconv.FormatBool(b)
		}
	case Date:
		if d, ok := ParseDate(s); ok {
			s = d.Format(isoDate)
		}
	case Number:
		if f, ok := parseNumber(s); ok {
			s = formatFloat(f)
		}
	default:
		s = *raw
	}
	return &s
}

// Display renders stored text for a human reader. Booleans become Yes/No,
// dates are shown as YYYY-MM-DD, numbers drop trailing zeros. Select cells
// are matched against options; a value outside the list renders as nil. A
// nil cell stays nil.
func Display(t ColumnType, options []string, raw *string) any {
	if raw == nil {
		return nil
	}
	s := *raw
	switch t {
	case Boolean:
		if b, ok := ParseBool(s); ok {
			if b {
				return "Yes"
			}
			return "No"
		}
		if strings.TrimSpace(s) != "" {
			return "Yes"
		}
		return "No"
	case Date:
		if d, ok := ParseDate(s); ok {
			return d.Format(isoDate)
		}
	case Number:
		if f, ok := parseNumber(s); ok {
			return formatFloat(f)
		}
	case Select:
		return displaySelect(options, s)
	}
	return s
}

func displaySelect(options []string, s string) any {
	if len(options) == 0 || ValidSelect(options, s) {
		return s
	}
	trimmed := strings.TrimSpace(s)
	for _, o := range options {
		if strings.EqualFold(o, trimmed) {
			return o
		}
	}
	return nil
}

// ValidSelect reports whether v is one of options. An empty value is always
// allowed.
func ValidSelect(options []string, v string) bool {
	return v == "" || slices.Contains(options, v)
}

func parseNumber(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
