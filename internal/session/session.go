// Package session owns open documents. Each Session pairs a document buffer
// with its find/replace engine and serializes every operation on them.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/taigrr/docedit-mcp/internal/document"
	"github.com/taigrr/docedit-mcp/internal/findreplace"
	"github.com/taigrr/docedit-mcp/internal/types"
)

var (
	// ErrSessionNotFound is returned for unknown or closed session ids.
	ErrSessionNotFound = errors.New("session not found")
	// ErrDocumentOpen is returned when a store change targets a document
	// that has an open session.
	ErrDocumentOpen = errors.New("document has an open session")
)

// Store is the part of the document store sessions load from and save to.
type Store interface {
	Canonical(path string) (string, error)
	ReadDocument(path string) (types.ParsedDocument, error)
	WriteDocument(params types.DocumentWriteParams) error
}

// Snapshot is a consistent view of a session's state.
type Snapshot struct {
	ID           string              `json:"id"`
	Path         string              `json:"path"`
	Length       int                 `json:"length"`
	Selection    findreplace.Match   `json:"selection"`
	SelectedText string              `json:"selectedText,omitempty"`
	Query        findreplace.Query   `json:"query"`
	Matches      []findreplace.Match `json:"matches"`
	Cursor       int                 `json:"cursor"`
	Current      *findreplace.Match  `json:"current,omitempty"`
	State        string              `json:"state"`
	Status       string              `json:"status"`
	Dirty        bool                `json:"dirty"`
	Revision     uint64              `json:"revision"`
}

// Session is one open document. All methods are safe for concurrent use and
// run one at a time. Methods that change state return the snapshot taken
// under the same lock.
type Session struct {
	ID     string
	Path   string
	Opened time.Time

	mu       sync.Mutex
	metadata map[string]any
	buf      *document.Buffer
	engine   *findreplace.Engine
	saved    uint64
}

func newSession(path string, doc types.ParsedDocument) *Session {
	buf := document.NewBuffer(doc.Content)
	return &Session{
		ID:       uuid.NewString(),
		Path:     path,
		Opened:   time.Now(),
		metadata: doc.Metadata,
		buf:      buf,
		engine:   findreplace.New(buf),
	}
}

// Find runs a search. The match count is len(Snapshot.Matches).
func (s *Session) Find(text string, matchCase bool) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.Find(text, matchCase)
	return s.snapshot()
}

// Next moves to the next match.
func (s *Session) Next() (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.engine.Next()
	return s.snapshot(), ok
}

// Prev moves to the previous match.
func (s *Session) Prev() (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.engine.Prev()
	return s.snapshot(), ok
}

// Replace replaces the current match.
func (s *Session) Replace(text string) (bool, Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ok, err := s.engine.ReplaceCurrent(text)
	return ok, s.snapshot(), err
}

// ReplaceAll replaces every match of the last search.
func (s *Session) ReplaceAll(text string) (int, Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, err := s.engine.ReplaceAll(text)
	return n, s.snapshot(), err
}

// Clear drops the search state.
func (s *Session) Clear() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.Clear()
	return s.snapshot()
}

// SetSelection selects a range. The match set is discarded first because
// the engine's selection no longer reflects the current match.
func (s *Session) SetSelection(from, to int) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.Clear()
	s.buf.SetSelection(from, to)
	return s.snapshot()
}

// Transform applies a case transform to sel, or to the current selection
// when sel is nil.
func (s *Session) Transform(t document.Transform, sel *findreplace.Match) (bool, Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	from, to := s.buf.Selection()
	if sel != nil {
		from, to = sel.From, sel.To
	}
	s.engine.Clear()
	s.buf.SetSelection(from, to)
	ok, err := document.ApplyTransform(s.buf, t)
	return ok, s.snapshot(), err
}

// InsertText replaces the selection with text, or inserts at the caret when
// the selection is empty.
func (s *Session) InsertText(text string) (findreplace.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	from, to := s.buf.Selection()
	s.engine.Clear()
	s.buf.SetSelection(from, to)
	if err := s.buf.ReplaceSelection(text); err != nil {
		return findreplace.Match{}, err
	}
	from, to = s.buf.Selection()
	return findreplace.Match{From: from, To: to}, nil
}

// Metadata returns a copy of the document metadata loaded at open.
func (s *Session) Metadata() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.metadata)
}

// Text returns the current document text.
func (s *Session) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.FlatText()
}

// Stats computes document statistics.
func (s *Session) Stats() document.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return document.ComputeStats(s.buf.FlatText())
}

// Snapshot returns the session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Session) snapshot() Snapshot {
	from, to := s.buf.Selection()
	snap := Snapshot{
		ID:           s.ID,
		Path:         s.Path,
		Length:       s.buf.Len(),
		Selection:    findreplace.Match{From: from, To: to},
		SelectedText: s.buf.SelectedText(),
		Query:        s.engine.Query(),
		Matches:      s.engine.Matches(),
		Cursor:       s.engine.Cursor(),
		State:        s.engine.State().String(),
		Status:       s.engine.Status(),
		Dirty:        s.buf.Revision() != s.saved,
		Revision:     s.buf.Revision(),
	}
	if m, ok := s.engine.Current(); ok {
		snap.Current = &m
	}
	return snap
}

// Save writes the text back to the store, keeping the document metadata.
func (s *Session) Save(st Store) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := st.WriteDocument(types.DocumentWriteParams{
		Path:     s.Path,
		Content:  s.buf.FlatText(),
		Metadata: s.metadata,
		Mode:     types.ModeOverwrite,
	})
	if err != nil {
		return fmt.Errorf("save %s: %w", s.Path, err)
	}
	s.saved = s.buf.Revision()
	return nil
}

// Manager tracks open sessions, at most one per document path.
type Manager struct {
	store  Store
	logger *slog.Logger

	mu     sync.Mutex
	byID   map[string]*Session
	byPath map[string]*Session
}

// NewManager creates a Manager loading documents from st.
func NewManager(st Store, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		store:  st,
		logger: logger,
		byID:   make(map[string]*Session),
		byPath: make(map[string]*Session),
	}
}

// Open returns the session for path, loading the document if it is not
// open yet. Paths are compared in their canonical form, so "a.md" and
// "./a.md" share one session.
func (m *Manager) Open(path string) (*Session, bool, error) {
	path, err := m.store.Canonical(path)
	if err != nil {
		return nil, false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.byPath[path]; ok {
		return s, false, nil
	}

	doc, err := m.store.ReadDocument(path)
	if err != nil {
		return nil, false, err
	}

	s := newSession(path, doc)
	m.byID[s.ID] = s
	m.byPath[path] = s
	m.logger.Info("session opened", "session", s.ID, "path", path, "length", s.buf.Len())
	return s, true, nil
}

// Lookup returns the open session for path, if any.
func (m *Manager) Lookup(path string) (*Session, bool) {
	path, err := m.store.Canonical(path)
	if err != nil {
		return nil, false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.byPath[path]
	return s, ok
}

// Guard runs fn while no session can be opened, failing with
// ErrDocumentOpen if any of paths already has an open session.
func (m *Manager) Guard(fn func() error, paths ...string) error {
	canonical := make([]string, 0, len(paths))
	for _, p := range paths {
		c, err := m.store.Canonical(p)
		if err != nil {
			return err
		}
		canonical = append(canonical, c)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range canonical {
		if s, ok := m.byPath[p]; ok {
			return fmt.Errorf("%w: %s (session %s)", ErrDocumentOpen, p, s.ID)
		}
	}
	return fn()
}

// Get returns an open session.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return s, nil
}

// Close clears the session's search state and forgets it. Unsaved edits
// are discarded.
func (m *Manager) Close(id string) (Snapshot, error) {
	m.mu.Lock()
	s, ok := m.byID[id]
	if ok {
		delete(m.byID, id)
		delete(m.byPath, s.Path)
	}
	m.mu.Unlock()

	if !ok {
		return Snapshot{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	s.mu.Lock()
	s.engine.Clear()
	snap := s.snapshot()
	s.mu.Unlock()

	if snap.Dirty {
		m.logger.Warn("session closed with unsaved changes", "session", id, "path", s.Path)
	} else {
		m.logger.Info("session closed", "session", id, "path", s.Path)
	}
	return snap, nil
}

// List returns a snapshot of every open session ordered by path.
func (m *Manager) List() []Snapshot {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.byID))
	for _, s := range m.byID {
		sessions = append(sessions, s)
	}
	m.mu.Unlock()

	out := make([]Snapshot, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, s.Snapshot())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}
