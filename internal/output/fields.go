package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/phyten/phrep/internal/model"
)

type Field struct {
	Key    string
	Header string
}

// FieldSelection は構造化出力 (csv/tsv/markdown) に含める列の選択です。
type FieldSelection struct {
	Fields   []Field
	ShowBody bool
}

type fieldMeta struct {
	header string
	isBody bool
}

var fieldRegistry = map[string]fieldMeta{
	"file":      {header: "FILE"},
	"line":      {header: "LINE"},
	"function":  {header: "FUNCTION"},
	"signature": {header: "SIGNATURE"},
	"text":      {header: "TEXT"},
	"body":      {header: "BODY", isBody: true},
}

// ResolveFields parses a comma-separated field list. An empty list selects
// the default columns, with body appended when bodies were requested.
func ResolveFields(raw string, withBody bool) (FieldSelection, error) {
	raw = strings.TrimSpace(raw)
	sel := FieldSelection{}
	if raw == "" {
		keys := []string{"file", "line", "function", "text"}
		if withBody {
			keys = append(keys, "body")
		}
		sel.Fields = make([]Field, 0, len(keys))
		for _, key := range keys {
			meta := fieldRegistry[key]
			sel.Fields = append(sel.Fields, Field{Key: key, Header: meta.header})
		}
		sel.ShowBody = withBody
		return sel, nil
	}

	parts := strings.Split(raw, ",")
	sel.Fields = make([]Field, 0, len(parts))
	for _, part := range parts {
		name := strings.TrimSpace(part)
		if name == "" {
			return FieldSelection{}, fmt.Errorf("invalid fields: empty entry")
		}
		key := strings.ToLower(name)
		meta, ok := fieldRegistry[key]
		if !ok {
			return FieldSelection{}, fmt.Errorf("unknown field: %s", name)
		}
		sel.Fields = append(sel.Fields, Field{Key: key, Header: meta.header})
		if meta.isBody {
			sel.ShowBody = true
		}
	}
	return sel, nil
}

func Headers(fields []Field) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, f.Header)
	}
	return out
}

func RowValues(m model.Match, fields []Field) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, fieldValue(m, f.Key))
	}
	return out
}

func fieldValue(m model.Match, key string) string {
	switch key {
	case "file":
		return m.File
	case "line":
		return strconv.Itoa(m.Line)
	case "function":
		return m.Function
	case "signature":
		return m.Signature
	case "text":
		return m.Text
	case "body":
		return m.Body
	default:
		return ""
	}
}
