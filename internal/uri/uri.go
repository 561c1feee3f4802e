// Package uri builds links to documents.
package uri

import (
	"net/url"
	"path"
	"strings"
)

// DocumentURI returns a link to the document at docPath. With a web base URL
// the link points at the editor route /documents/<id>, where the id is the
// root-relative path without its .md extension. Otherwise it is a file URI
// for the document on disk.
func DocumentURI(baseURL, root, docPath string) string {
	clean := strings.TrimPrefix(strings.ReplaceAll(docPath, "\\", "/"), "/")

	if baseURL != "" {
		id := strings.TrimSuffix(clean, ".md")
		return strings.TrimSuffix(baseURL, "/") + "/documents/" + escapeSegments(id)
	}

	abs := path.Join(strings.ReplaceAll(root, "\\", "/"), clean)
	return "file:///" + strings.TrimPrefix(escapeSegments(abs), "/")
}

func escapeSegments(p string) string {
	parts := strings.Split(p, "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}
