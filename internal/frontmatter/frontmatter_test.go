package frontmatter

import (
	"strings"
	"testing"
)

func TestHandler_Parse(t *testing.T) {
	handler := New()

	t.Run("with metadata", func(t *testing.T) {
		raw := "---\ntitle: Quarterly Plan\nowner: user-1\ntags: [plan, q3]\n---\n# Plan\n\nBody text."

		doc := handler.Parse(raw)

		if doc.Metadata["title"] != "Quarterly Plan" {
			t.Errorf("Metadata[title] = %v", doc.Metadata["title"])
		}
		tags, ok := doc.Metadata["tags"].([]any)
		if !ok || len(tags) != 2 || tags[0] != "plan" {
			t.Errorf("Metadata[tags] = %#v", doc.Metadata["tags"])
		}
		if doc.Content != "# Plan\n\nBody text." {
			t.Errorf("Content = %q", doc.Content)
		}
		if doc.OriginalContent != raw {
			t.Error("OriginalContent should hold the raw text")
		}
	})

	t.Run("metadata only", func(t *testing.T) {
		doc := handler.Parse("---\ntitle: Empty\n---")
		if doc.Metadata["title"] != "Empty" || doc.Content != "" {
			t.Errorf("got %v / %q", doc.Metadata, doc.Content)
		}
	})

	tests := []struct {
		name string
		raw  string
	}{
		{"no metadata", "# Heading\n\nText"},
		{"unterminated block", "---\ntitle: x\n# Heading"},
		{"invalid yaml", "---\n: : :\n  - [\n---\nbody"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := handler.Parse(tt.raw)
			if len(doc.Metadata) != 0 {
				t.Errorf("Metadata = %v, want empty", doc.Metadata)
			}
			if doc.Content != tt.raw {
				t.Errorf("Content = %q, want raw text", doc.Content)
			}
		})
	}
}

func TestHandler_Stringify(t *testing.T) {
	handler := New()

	t.Run("round trip", func(t *testing.T) {
		out, err := handler.Stringify(map[string]any{"title": "Notes"}, "Body\n")
		if err != nil {
			t.Fatal(err)
		}
		if out != "---\ntitle: Notes\n---\nBody\n" {
			t.Errorf("Stringify() = %q", out)
		}
		doc := handler.Parse(out)
		if doc.Metadata["title"] != "Notes" || doc.Content != "Body\n" {
			t.Errorf("Parse(Stringify()) = %v / %q", doc.Metadata, doc.Content)
		}
	})

	t.Run("empty metadata", func(t *testing.T) {
		out, err := handler.Stringify(nil, "Body")
		if err != nil || out != "Body" {
			t.Errorf("Stringify() = %q, %v", out, err)
		}
	})
}

func TestHandler_Validate(t *testing.T) {
	handler := New()

	t.Run("valid", func(t *testing.T) {
		v := handler.Validate(map[string]any{
			"title":   "ok",
			"count":   3,
			"tags":    []string{"a"},
			"nested":  map[string]any{"k": true},
			"missing": nil,
		})
		if !v.IsValid || len(v.Errors) != 0 {
			t.Errorf("Validate() = %+v", v)
		}
	})

	t.Run("function value", func(t *testing.T) {
		v := handler.Validate(map[string]any{
			"nested": map[string]any{"fn": func() {}},
		})
		if v.IsValid {
			t.Fatal("IsValid = true, want false")
		}
		if !strings.Contains(v.Errors[0], "nested.fn") {
			t.Errorf("error should name the path: %v", v.Errors)
		}
	})

	t.Run("non-string key", func(t *testing.T) {
		v := handler.Validate(map[string]any{
			"ids": map[int]string{1: "a"},
		})
		if v.IsValid {
			t.Error("IsValid = true, want false")
		}
	})
}

func TestMerge(t *testing.T) {
	base := map[string]any{"a": 1, "b": 2}
	got := Merge(base, map[string]any{"b": 3, "c": 4})
	if got["a"] != 1 || got["b"] != 3 || got["c"] != 4 {
		t.Errorf("Merge() = %v", got)
	}
	if base["b"] != 2 {
		t.Error("Merge() modified base")
	}
}
