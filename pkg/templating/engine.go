// Package templating substitutes "{{ key.path }}" placeholders in document
// text with values taken from a report.
package templating

import (
	"fmt"
	"regexp"
	"strings"
)

var keyPattern = regexp.MustCompile(`{{ *[A-Za-z0-9_.]+ *}}`)

// Cell is the minimal text holder the engine rewrites.
type Cell interface {
	Text() string
	SetText(string)
}

// Table is anything whose cells can be walked row by row.
type Table interface {
	Cells() [][]Cell
}

// ReplaceText replaces every key in text with its value from values.
// Keys that cannot be resolved are left as they are.
func ReplaceText(text string, values any) string {
	return replace(text, normalize(values))
}

func replace(text string, values any) string {
	return keyPattern.ReplaceAllStringFunc(text, func(key string) string {
		path := strings.TrimSpace(key[2 : len(key)-2])
		return render(lookup(values, path, key))
	})
}

// ReplaceInTable rewrites every cell of table and then passes it to handler.
func ReplaceInTable(table Table, values any, handler func(Cell)) {
	values = normalize(values)
	for _, row := range table.Cells() {
		for _, cell := range row {
			cell.SetText(replace(cell.Text(), values))
			if handler != nil {
				handler(cell)
			}
		}
	}
}

// Key returns the first key found in text without its braces.
func Key(text string) (string, bool) {
	m := keyPattern.FindString(text)
	if m == "" {
		return "", false
	}
	return strings.TrimSpace(m[2 : len(m)-2]), true
}

// lookup follows a dotted path. Walking into a list maps the rest of the
// path over its elements; walking into a scalar yields the scalar itself.
func lookup(obj any, path string, def any) any {
	parts := strings.Split(path, ".")
	for i, part := range parts {
		if part == "" {
			continue
		}
		switch v := obj.(type) {
		case []any:
			rest := strings.Join(parts[i:], ".")
			out := make([]any, len(v))
			for j, el := range v {
				out[j] = lookup(el, rest, def)
			}
			return out
		case map[string]any:
			next, ok := v[part]
			if !ok || next == nil {
				return def
			}
			obj = next
		default:
			return obj
		}
	}
	return obj
}

func render(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []any:
		parts := make([]string, len(t))
		for i, el := range t {
			parts[i] = render(el)
		}
		return strings.Join(parts, "\n")
	case fmt.Stringer:
		return t.String()
	case nil:
		return ""
	}
	return fmt.Sprint(v)
}
