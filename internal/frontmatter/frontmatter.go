// Package frontmatter splits documents into YAML metadata and body text.
package frontmatter

import (
	"fmt"
	"maps"
	"reflect"
	"strings"

	"github.com/taigrr/docedit-mcp/internal/types"
	"gopkg.in/yaml.v3"
)

const (
	delimOpen  = "---\n"
	delimClose = "\n---\n"
	delimTail  = "\n---"
)

// Handler parses, renders and validates document metadata.
type Handler struct{}

// New creates a Handler.
func New() *Handler {
	return &Handler{}
}

// Parse splits raw document text into metadata and body. Text without a
// well-formed metadata block is returned whole as the body.
func (h *Handler) Parse(raw string) types.ParsedDocument {
	doc := types.ParsedDocument{
		Metadata:        map[string]any{},
		Content:         raw,
		OriginalContent: raw,
	}
	if !strings.HasPrefix(raw, delimOpen) {
		return doc
	}

	rest := raw[len(delimOpen):]
	var block, body string
	if end := strings.Index(rest, delimClose); end != -1 {
		block, body = rest[:end], rest[end+len(delimClose):]
	} else if strings.HasSuffix(rest, delimTail) {
		block, body = rest[:len(rest)-len(delimTail)], ""
	} else {
		return doc
	}

	var meta map[string]any
	if err := yaml.Unmarshal([]byte(block), &meta); err != nil {
		return doc
	}
	if meta != nil {
		doc.Metadata = meta
	}
	doc.Content = body
	return doc
}

// Stringify renders metadata and body back into document text. Empty
// metadata produces the body unchanged.
func (h *Handler) Stringify(meta map[string]any, body string) (string, error) {
	if len(meta) == 0 {
		return body, nil
	}
	out, err := yaml.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("failed to render metadata: %w", err)
	}
	return delimOpen + string(out) + "---\n" + body, nil
}

// Validate reports values that cannot be stored as YAML metadata.
func (h *Handler) Validate(meta map[string]any) types.MetadataValidation {
	result := types.MetadataValidation{IsValid: true, Errors: []string{}}

	// yaml.Marshal panics on funcs, so walk first.
	walk(meta, "", &result)
	if !result.IsValid {
		return result
	}
	if _, err := yaml.Marshal(meta); err != nil {
		result.IsValid = false
		result.Errors = append(result.Errors, fmt.Sprintf("invalid YAML structure: %v", err))
	}
	return result
}

func walk(v any, path string, result *types.MetadataValidation) {
	if v == nil {
		return
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Func, reflect.Chan:
		result.IsValid = false
		result.Errors = append(result.Errors, fmt.Sprintf("%s values are not allowed at %q", rv.Kind(), path))
	case reflect.Slice, reflect.Array:
		for i := range rv.Len() {
			walk(rv.Index(i).Interface(), fmt.Sprintf("%s[%d]", path, i), result)
		}
	case reflect.Map:
		iter := rv.MapRange()
		for iter.Next() {
			key := iter.Key()
			if key.Kind() != reflect.String {
				result.IsValid = false
				result.Errors = append(result.Errors, fmt.Sprintf("non-string key %v", key.Interface()))
			}
			child := fmt.Sprint(key.Interface())
			if path != "" {
				child = path + "." + child
			}
			walk(iter.Value().Interface(), child, result)
		}
	}
}

// Merge returns a copy of base overlaid with updates.
func Merge(base, updates map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(updates))
	maps.Copy(out, base)
	maps.Copy(out, updates)
	return out
}
