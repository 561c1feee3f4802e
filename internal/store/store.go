// Package store keeps documents as markdown files under a root directory.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/taigrr/docedit-mcp/internal/frontmatter"
	"github.com/taigrr/docedit-mcp/internal/pathfilter"
	"github.com/taigrr/docedit-mcp/internal/types"
)

var (
	ErrNotFound     = errors.New("document not found")
	ErrAccessDenied = errors.New("access denied")
	ErrIsDirectory  = errors.New("path is a directory")
	ErrExists       = errors.New("document already exists")
	ErrTraversal    = errors.New("path traversal not allowed")
	ErrNotConfirmed = errors.New("deletion not confirmed")
)

// Service reads and writes documents below root.
type Service struct {
	root        string
	pathFilter  *pathfilter.PathFilter
	frontmatter *frontmatter.Handler
}

// New creates a Service rooted at root. Nil collaborators get defaults.
func New(root string, pf *pathfilter.PathFilter, fh *frontmatter.Handler) *Service {
	absRoot, _ := filepath.Abs(root)
	if pf == nil {
		pf = pathfilter.New(nil)
	}
	if fh == nil {
		fh = frontmatter.New()
	}
	return &Service{
		root:        absRoot,
		pathFilter:  pf,
		frontmatter: fh,
	}
}

// Root returns the absolute root directory.
func (s *Service) Root() string {
	return s.root
}

// ResolvePath maps a root-relative path to an absolute path inside root.
func (s *Service) ResolvePath(path string) (string, error) {
	rel := strings.TrimPrefix(strings.TrimSpace(path), "/")
	abs, err := filepath.Abs(filepath.Join(s.root, rel))
	if err != nil {
		return "", err
	}

	back, err := filepath.Rel(s.root, abs)
	if err != nil {
		return "", err
	}
	if back == ".." || strings.HasPrefix(back, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrTraversal, path)
	}
	return abs, nil
}

// Canonical returns the clean root-relative form of path with forward
// slashes, so different spellings of one document compare equal.
func (s *Service) Canonical(path string) (string, error) {
	abs, err := s.ResolvePath(path)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(s.root, abs)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// resolve checks access and returns the absolute path for a document.
func (s *Service) resolve(path string) (string, error) {
	abs, err := s.ResolvePath(path)
	if err != nil {
		return "", err
	}
	if !s.pathFilter.IsAllowed(path) {
		return "", fmt.Errorf("%w: %s", ErrAccessDenied, path)
	}
	return abs, nil
}

// ReadDocument reads and parses a document.
func (s *Service) ReadDocument(path string) (types.ParsedDocument, error) {
	abs, err := s.resolve(path)
	if err != nil {
		return types.ParsedDocument{}, err
	}

	if info, err := os.Stat(abs); err == nil && info.IsDir() {
		return types.ParsedDocument{}, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	raw, err := os.ReadFile(abs)
	if err != nil {
		return types.ParsedDocument{}, mapFSError(path, err)
	}
	return s.frontmatter.Parse(string(raw)), nil
}

// WriteDocument writes a document. Append and prepend keep the existing
// metadata, merged with any metadata supplied; if the document does not
// exist they behave like overwrite.
func (s *Service) WriteDocument(params types.DocumentWriteParams) error {
	abs, err := s.resolve(params.Path)
	if err != nil {
		return err
	}

	if params.Metadata != nil {
		if v := s.frontmatter.Validate(params.Metadata); !v.IsValid {
			return fmt.Errorf("invalid metadata: %s", strings.Join(v.Errors, ", "))
		}
	}

	meta, body := params.Metadata, params.Content
	mode := params.Mode
	if mode == "" {
		mode = types.ModeOverwrite
	}

	switch mode {
	case types.ModeOverwrite:
	case types.ModeAppend, types.ModePrepend:
		existing, err := s.ReadDocument(params.Path)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
		if err == nil {
			meta = frontmatter.Merge(existing.Metadata, params.Metadata)
			if mode == types.ModeAppend {
				body = existing.Content + params.Content
			} else {
				body = params.Content + existing.Content
			}
		}
	default:
		return fmt.Errorf("unknown write mode %q", mode)
	}

	out, err := s.frontmatter.Stringify(meta, body)
	if err != nil {
		return err
	}
	return writeFile(abs, out)
}

// DeleteDocument removes a document. confirm must repeat path exactly.
func (s *Service) DeleteDocument(path, confirm string) error {
	if path != confirm {
		return fmt.Errorf("%w: confirmation path does not match", ErrNotConfirmed)
	}
	abs, err := s.resolve(path)
	if err != nil {
		return err
	}
	if info, err := os.Stat(abs); err == nil && info.IsDir() {
		return fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}
	if err := os.Remove(abs); err != nil {
		return mapFSError(path, err)
	}
	return nil
}

// MoveDocument renames oldPath to newPath. An existing target is only
// replaced when overwrite is set.
func (s *Service) MoveDocument(oldPath, newPath string, overwrite bool) error {
	src, err := s.resolve(oldPath)
	if err != nil {
		return err
	}
	dst, err := s.resolve(newPath)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(src)
	if err != nil {
		return mapFSError(oldPath, err)
	}
	if !overwrite {
		if _, err := os.Stat(dst); err == nil {
			return fmt.Errorf("%w: %s", ErrExists, newPath)
		}
	}
	if err := writeFile(dst, string(raw)); err != nil {
		return err
	}
	if err := os.Remove(src); err != nil {
		return fmt.Errorf("failed to remove %s after copy: %w", oldPath, err)
	}
	return nil
}

// ListDirectory lists the visible documents and directories under path.
func (s *Service) ListDirectory(path string) (types.DirectoryListing, error) {
	if path == "." {
		path = ""
	}
	abs, err := s.ResolvePath(path)
	if err != nil {
		return types.DirectoryListing{}, err
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		return types.DirectoryListing{}, mapFSError(path, err)
	}

	listing := types.DirectoryListing{Files: []string{}, Directories: []string{}}
	for _, entry := range entries {
		rel := entry.Name()
		if path != "" {
			rel = strings.TrimSuffix(path, "/") + "/" + rel
		}
		switch {
		case entry.IsDir():
			if s.pathFilter.IsAllowed(rel + "/") {
				listing.Directories = append(listing.Directories, entry.Name())
			}
		case entry.Type().IsRegular():
			if s.pathFilter.IsAllowed(rel) {
				listing.Files = append(listing.Files, entry.Name())
			}
		}
	}
	sort.Strings(listing.Files)
	sort.Strings(listing.Directories)
	return listing, nil
}

// Walk returns every visible document path below root, sorted, relative to
// root with forward slashes.
func (s *Service) Walk() ([]string, error) {
	var paths []string
	err := filepath.WalkDir(s.root, func(abs string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		rel, _ := filepath.Rel(s.root, abs)
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if rel != "." && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() && s.pathFilter.IsDocument(rel) {
			paths = append(paths, rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

// Exists reports whether a visible document or directory exists at path.
func (s *Service) Exists(path string) bool {
	abs, err := s.resolve(path)
	if err != nil {
		return false
	}
	_, err = os.Stat(abs)
	return err == nil
}

func writeFile(abs, content string) error {
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(abs, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", abs, err)
	}
	return nil
}

func mapFSError(path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %s", ErrAccessDenied, path)
	default:
		return fmt.Errorf("failed to access %s: %w", path, err)
	}
}
