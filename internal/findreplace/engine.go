// Package findreplace implements the find-and-replace engine used by the
// document toolbar. The engine searches a flat-text projection of a document,
// keeps a cursor over the resulting matches, and replaces text through a
// narrow document interface.
package findreplace

import (
	"fmt"
)

// Document is the capability the engine needs from a document model.
// Offsets are rune offsets into the string returned by FlatText.
type Document interface {
	FlatText() string
	Selection() (from, to int)
	SetSelection(from, to int)
	DeleteRange(from, to int) error
	InsertAt(offset int, text string) error
}

// State is the engine's lifecycle state.
type State int

const (
	// Idle means no match set is held.
	Idle State = iota
	// Searched means a match set was computed for the current query.
	Searched
)

func (s State) String() string {
	switch s {
	case Searched:
		return "searched"
	default:
		return "idle"
	}
}

// Engine tracks a match set and the current match for one document.
// It is not safe for concurrent use; callers serialize access.
type Engine struct {
	doc     Document
	query   Query
	matches []Match
	cursor  int
	state   State
	status  string
}

// New creates an engine over doc.
func New(doc Document) *Engine {
	return &Engine{
		doc:    doc,
		cursor: -1,
	}
}

// Find scans the document for text and selects the first match.
// It returns the number of matches. Empty text leaves the engine without a
// match set and does not scan.
func (e *Engine) Find(text string, matchCase bool) int {
	e.reset()
	e.status = ""
	e.query = Query{Text: text, MatchCase: matchCase}
	if e.query.Empty() {
		return 0
	}

	e.matches = Scan(e.doc.FlatText(), e.query)
	e.state = Searched

	if len(e.matches) == 0 {
		e.status = "No matches found"
		return 0
	}

	e.cursor = 0
	e.selectCurrent()
	e.status = fmt.Sprintf("Found %d %s", len(e.matches), plural(len(e.matches), "match", "matches"))
	return len(e.matches)
}

// Next advances the cursor to the following match, wrapping at the end.
func (e *Engine) Next() (int, bool) {
	return e.step(1)
}

// Prev moves the cursor to the preceding match, wrapping at the start.
func (e *Engine) Prev() (int, bool) {
	return e.step(-1)
}

func (e *Engine) step(delta int) (int, bool) {
	n := len(e.matches)
	if e.state != Searched || n == 0 || e.cursor < 0 {
		return -1, false
	}
	e.cursor = (e.cursor + delta + n) % n
	e.selectCurrent()
	return e.cursor, true
}

// ReplaceCurrent replaces the current match with text and searches again
// with the same query, since the replacement shifts every later offset.
// It reports false without error when there is no current match.
func (e *Engine) ReplaceCurrent(text string) (bool, error) {
	m, ok := e.Current()
	if !ok {
		return false, nil
	}

	if err := e.replace(m, text); err != nil {
		return false, err
	}

	e.Find(e.query.Text, e.query.MatchCase)
	return true, nil
}

// ReplaceAll replaces every match from the last search with text and
// returns the number replaced. Matches are processed from the end of the
// document backwards so unprocessed offsets stay valid; inserted text is
// never rescanned. If the document rejects a mutation, ReplaceAll stops and
// returns the count applied so far; applied replacements are kept.
func (e *Engine) ReplaceAll(text string) (int, error) {
	if e.state != Searched || len(e.matches) == 0 {
		return 0, nil
	}

	replaced := 0
	for i := len(e.matches) - 1; i >= 0; i-- {
		if err := e.replace(e.matches[i], text); err != nil {
			e.reset()
			e.status = fmt.Sprintf("Replaced %d of %d occurrences", replaced, replaced+i+1)
			return replaced, err
		}
		replaced++
	}

	e.Clear()
	e.status = fmt.Sprintf("Replaced %d %s", replaced, plural(replaced, "occurrence", "occurrences"))
	return replaced, nil
}

// Clear drops the match set and collapses the document selection.
func (e *Engine) Clear() {
	e.reset()
	e.status = ""
	e.doc.SetSelection(0, 0)
}

func (e *Engine) reset() {
	e.matches = nil
	e.cursor = -1
	e.state = Idle
}

func (e *Engine) replace(m Match, text string) error {
	if err := e.doc.DeleteRange(m.From, m.To); err != nil {
		return fmt.Errorf("delete range %d-%d: %w", m.From, m.To, err)
	}
	if text == "" {
		return nil
	}
	if err := e.doc.InsertAt(m.From, text); err != nil {
		return fmt.Errorf("insert at %d: %w", m.From, err)
	}
	return nil
}

func (e *Engine) selectCurrent() {
	m := e.matches[e.cursor]
	e.doc.SetSelection(m.From, m.To)
}

// Current returns the match under the cursor.
func (e *Engine) Current() (Match, bool) {
	if e.state != Searched || e.cursor < 0 || e.cursor >= len(e.matches) {
		return Match{}, false
	}
	return e.matches[e.cursor], true
}

// Matches returns a copy of the current match set.
func (e *Engine) Matches() []Match {
	out := make([]Match, len(e.matches))
	copy(out, e.matches)
	return out
}

// Cursor returns the index of the current match, or -1.
func (e *Engine) Cursor() int { return e.cursor }

// Query returns the last query passed to Find.
func (e *Engine) Query() Query { return e.query }

// State returns the engine state.
func (e *Engine) State() State { return e.state }

// Status returns the last user-facing status message.
func (e *Engine) Status() string { return e.status }

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
