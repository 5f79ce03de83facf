package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"
	"time"
)

const (
	fieldDelimiter = ","
	listSeparator  = ";"
	lineSeparator  = "\n"
)

// ToDelimitedText renders rows as CSV. The first row's fields form the
// header; every value is quoted. Zero rows render as the empty string.
func ToDelimitedText(rows []Row) string {
	var b strings.Builder
	_ = WriteDelimited(&b, rows)
	return b.String()
}

// WriteDelimited streams the CSV rendering of rows to w. Rows missing a
// header field render it empty and fields absent from the header are
// ignored. Lines are separated by "\n" with no trailing newline.
func WriteDelimited(w io.Writer, rows []Row) error {
	if len(rows) == 0 {
		return nil
	}
	header := rows[0].Fields()
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(strings.Join(header, fieldDelimiter)); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := bw.WriteString(lineSeparator); err != nil {
			return err
		}
		for i, field := range header {
			if i > 0 {
				if _, err := bw.WriteString(fieldDelimiter); err != nil {
					return err
				}
			}
			var text string
			if v, ok := row.Field(field); ok {
				text = renderValue(v)
			}
			if _, err := bw.WriteString(quoteField(text)); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

func quoteField(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func renderValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []string:
		return strings.Join(x, listSeparator)
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case time.Time:
		if x.IsZero() {
			return ""
		}
		return x.UTC().Format(time.RFC3339)
	case json.RawMessage:
		return string(x)
	case []byte:
		return string(x)
	case fmt.Stringer:
		return x.String()
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return ""
		}
		return renderValue(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return ""
		}
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = renderValue(rv.Index(i).Interface())
		}
		return strings.Join(parts, listSeparator)
	case reflect.Map, reflect.Struct:
		if rv.Kind() == reflect.Map && rv.IsNil() {
			return ""
		}
		b, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(b)
	}
	return fmt.Sprint(v)
}

// Metadata describes a generated report alongside its rows.
type Metadata struct {
	Type        Type
	Filters     Filters
	GeneratedAt time.Time
	Summary     any
}

// Document is the structured export: the rows plus report metadata.
type Document struct {
	Data        []Row     `json:"data"`
	Filename    string    `json:"filename"`
	Type        Type      `json:"type"`
	GeneratedAt time.Time `json:"generatedAt"`
	Filters     Filters   `json:"filters"`
	Summary     any       `json:"summary,omitempty"`
}

// ToStructuredDocument wraps rows with metadata for JSON serialization.
func ToStructuredDocument(rows []Row, meta Metadata) Document {
	if rows == nil {
		rows = []Row{}
	}
	return Document{
		Data:        rows,
		Filename:    Filename(meta.Type, FormatJSON, meta.GeneratedAt),
		Type:        meta.Type,
		GeneratedAt: meta.GeneratedAt.UTC(),
		Filters:     meta.Filters,
		Summary:     meta.Summary,
	}
}

// Filename suggests "<type>-report-<YYYY-MM-DD>.<ext>" for the given day (UTC).
func Filename(t Type, f Format, at time.Time) string {
	return fmt.Sprintf("%s-report-%s.%s", t, at.UTC().Format("2006-01-02"), f)
}
