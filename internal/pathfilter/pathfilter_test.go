package pathfilter

import (
	"testing"

	"github.com/taigrr/docedit-mcp/internal/types"
)

func TestPathFilter_Defaults(t *testing.T) {
	filter := New(nil)

	tests := []struct {
		path string
		want bool
	}{
		{"docs/plan.md", true},
		{"readme.markdown", true},
		{"drafts/scratch.txt", true},
		{"docs/", true},
		{"docs", true},
		{".md", true},
		{"my docs/quarterly plan.md", true},
		{`drafts\2024\plan.md`, true},
		{"v1.0.0-release.md", true},
		{"notes/(archived)/old.md", true},
		{"[inbox]/task.md", true},
		{"C++/notes.md", true},
		{"FAQ?.md", true},
		{"price$100.md", true},
		{".git/config", false},
		{".git/objects/ab/cdef", false},
		{".docedit/app.json", false},
		{"node_modules/pkg/index.js", false},
		{".DS_Store", false},
		{"Thumbs.db", false},
		{"script.js", false},
		{"image.PNG", false},
		{"report.MD", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := filter.IsAllowed(tt.path); got != tt.want {
				t.Errorf("IsAllowed(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestPathFilter_Config(t *testing.T) {
	tests := []struct {
		name   string
		config types.PathFilterConfig
		path   string
		want   bool
	}{
		{"prefix glob", types.PathFilterConfig{IgnoredPatterns: []string{"temp*/**"}}, "temporary/a.md", false},
		{"prefix glob miss", types.PathFilterConfig{IgnoredPatterns: []string{"temp*/**"}}, "atemp/a.md", true},
		{"nested", types.PathFilterConfig{IgnoredPatterns: []string{"archive/**"}}, "archive/2024/jan/a.md", false},
		{"not anchored elsewhere", types.PathFilterConfig{IgnoredPatterns: []string{"archive/**"}}, "other/archive/a.md", true},
		{"dots are literal", types.PathFilterConfig{IgnoredPatterns: []string{"backup.2024/**"}}, "backup_2024/a.md", true},
		{"brackets are literal", types.PathFilterConfig{IgnoredPatterns: []string{"[trash]/**"}}, "[trash]/a.md", false},
		{"single char", types.PathFilterConfig{IgnoredPatterns: []string{"draft?.md"}}, "draft1.md", false},
		{"single char stays in segment", types.PathFilterConfig{IgnoredPatterns: []string{"a?b.md"}}, "a/b.md", true},
		{"traversal", types.PathFilterConfig{IgnoredPatterns: []string{"../**"}}, "../../etc/passwd", false},
		{"extra extension", types.PathFilterConfig{AllowedExtensions: []string{".html"}}, "import/page.html", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := New(&tt.config)
			if got := filter.IsAllowed(tt.path); got != tt.want {
				t.Errorf("IsAllowed(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestPathFilter_FilterPaths(t *testing.T) {
	filter := New(nil)

	got := filter.FilterPaths([]string{
		"docs/valid.md",
		".docedit/config.json",
		"archive/old.md",
		".git/HEAD",
		"readme.txt",
	})
	want := []string{"docs/valid.md", "archive/old.md", "readme.txt"}

	if len(got) != len(want) {
		t.Fatalf("FilterPaths() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("FilterPaths()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if got := filter.FilterPaths(nil); len(got) != 0 {
		t.Errorf("FilterPaths(nil) = %v, want empty", got)
	}
}

func TestIsFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"a.md", true},
		{"dir/", false},
		{".gitignore", false},
		{"noext", false},
		{"archive.verylongextension", false},
		{"weird.ex-t", false},
	}
	for _, tt := range tests {
		if got := isFile(tt.path); got != tt.want {
			t.Errorf("isFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestPathFilter_IsDocument(t *testing.T) {
	filter := New(nil)
	tests := []struct {
		path string
		want bool
	}{
		{"docs/a.md", true},
		{"docs", false},
		{"LICENSE", false},
		{"app.js", false},
		{".git/x.md", false},
	}
	for _, tt := range tests {
		if got := filter.IsDocument(tt.path); got != tt.want {
			t.Errorf("IsDocument(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
