package document

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Transform names a case transformation applied to the selection.
type Transform string

const (
	Lower Transform = "lower"
	Upper Transform = "upper"
	Title Transform = "title"
)

// ParseTransform resolves a transform name, accepting the toolbar labels.
func ParseTransform(name string) (Transform, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "lower", "lowercase":
		return Lower, nil
	case "upper", "uppercase":
		return Upper, nil
	case "title", "title case", "titlecase":
		return Title, nil
	}
	return "", fmt.Errorf("unknown transform %q", name)
}

func (t Transform) caser() cases.Caser {
	switch t {
	case Upper:
		return cases.Upper(language.Und)
	case Title:
		return cases.Title(language.Und)
	default:
		return cases.Lower(language.Und)
	}
}

// Apply returns s with the transform applied.
func (t Transform) Apply(s string) string {
	return t.caser().String(s)
}

// ApplyTransform rewrites the selected text of b. An empty selection is left
// untouched and reported as false.
func ApplyTransform(b *Buffer, t Transform) (bool, error) {
	text := b.SelectedText()
	if text == "" {
		return false, nil
	}
	if err := b.ReplaceSelection(t.Apply(text)); err != nil {
		return false, fmt.Errorf("apply %s transform: %w", t, err)
	}
	return true, nil
}
