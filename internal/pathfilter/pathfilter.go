// Package pathfilter decides which paths in the document store are visible.
package pathfilter

import (
	"regexp"
	"strings"

	"github.com/taigrr/docedit-mcp/internal/types"
)

var (
	defaultIgnored = []string{
		".git/**",
		".docedit/**",
		"node_modules/**",
		".DS_Store",
		"Thumbs.db",
	}
	defaultExtensions = []string{".md", ".markdown", ".txt"}

	extensionPattern = regexp.MustCompile(`^[a-zA-Z0-9]{1,10}$`)
)

// PathFilter holds compiled ignore patterns and allowed document extensions.
type PathFilter struct {
	ignored    []*regexp.Regexp
	extensions []string
}

// New creates a PathFilter from the defaults extended by config.
func New(config *types.PathFilterConfig) *PathFilter {
	patterns := append([]string{}, defaultIgnored...)
	extensions := append([]string{}, defaultExtensions...)
	if config != nil {
		patterns = append(patterns, config.IgnoredPatterns...)
		extensions = append(extensions, config.AllowedExtensions...)
	}

	pf := &PathFilter{}
	for _, p := range patterns {
		if re := compileGlob(p); re != nil {
			pf.ignored = append(pf.ignored, re)
		}
	}
	for _, ext := range extensions {
		pf.extensions = append(pf.extensions, strings.ToLower(ext))
	}
	return pf
}

// compileGlob turns a glob into an anchored regexp: ** crosses directories,
// * and ? stay within one path segment.
func compileGlob(pattern string) *regexp.Regexp {
	expr := regexp.QuoteMeta(strings.ReplaceAll(pattern, "\\", "/"))
	expr = strings.ReplaceAll(expr, `\*\*`, ".*")
	expr = strings.ReplaceAll(expr, `\*`, "[^/]*")
	expr = strings.ReplaceAll(expr, `\?`, "[^/]")
	re, err := regexp.Compile("^" + expr + "$")
	if err != nil {
		return nil
	}
	return re
}

// IsAllowed reports whether path may be read or written.
func (pf *PathFilter) IsAllowed(path string) bool {
	path = strings.ReplaceAll(path, "\\", "/")
	for _, re := range pf.ignored {
		if re.MatchString(path) {
			return false
		}
	}

	if len(pf.extensions) == 0 || !isFile(path) {
		return true
	}
	lower := strings.ToLower(path)
	for _, ext := range pf.extensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// IsDocument reports whether path names a visible file with an allowed
// extension.
func (pf *PathFilter) IsDocument(path string) bool {
	path = strings.ReplaceAll(path, "\\", "/")
	return isFile(path) && pf.IsAllowed(path)
}

// isFile treats a path as a file when its last segment has an extension.
// Dotfiles such as .gitignore count as directories.
func isFile(path string) bool {
	if strings.HasSuffix(path, "/") {
		return false
	}
	name := path[strings.LastIndex(path, "/")+1:]
	dot := strings.LastIndex(name, ".")
	if dot <= 0 {
		return false
	}
	return extensionPattern.MatchString(name[dot+1:])
}

// FilterPaths returns the allowed subset of paths.
func (pf *PathFilter) FilterPaths(paths []string) []string {
	var allowed []string
	for _, p := range paths {
		if pf.IsAllowed(p) {
			allowed = append(allowed, p)
		}
	}
	return allowed
}
