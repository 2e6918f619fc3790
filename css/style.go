package css

import (
	"strings"

	"github.com/aymerick/douceur/parser"
)

// ParseInlineStyle parses the content of a style attribute into
// a property -> value map. Property names are lowercased,
// values keep their case (font family names are case sensitive).
func ParseInlineStyle(style string) (map[string]string, error) {
	decls, err := parser.ParseDeclarations(style)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(decls))
	for _, d := range decls {
		out[strings.ToLower(strings.TrimSpace(d.Property))] = strings.TrimSpace(d.Value)
	}
	return out, nil
}

// MergeStyle merges inline style declarations over presentation
// attributes: for the same property, the style attribute wins.
// The merged map is written into attrs, which is returned.
func MergeStyle(attrs map[string]string, style string) (map[string]string, error) {
	if attrs == nil {
		attrs = make(map[string]string)
	}
	if strings.TrimSpace(style) == "" {
		return attrs, nil
	}
	decls, err := ParseInlineStyle(style)
	if err != nil {
		return attrs, err
	}
	for k, v := range decls {
		attrs[k] = v
	}
	return attrs, nil
}
