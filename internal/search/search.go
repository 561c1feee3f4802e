// Package search runs the find engine's scanner across every document in
// the store.
package search

import (
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/taigrr/docedit-mcp/internal/findreplace"
	"github.com/taigrr/docedit-mcp/internal/store"
	"github.com/taigrr/docedit-mcp/internal/types"
	"github.com/taigrr/docedit-mcp/internal/uri"
)

const (
	defaultContextLines = 2
	defaultLimit        = 15
)

// Service searches the documents of a store.
type Service struct {
	store   *store.Service
	baseURL string
}

// New creates a search Service. baseURL is used for result links.
func New(st *store.Service, baseURL string) *Service {
	return &Service{store: st, baseURL: baseURL}
}

// Search finds params.Query in every document body. Results are ordered by
// path; totalFiles counts every document with at least one hit before
// pagination is applied.
func (s *Service) Search(params types.SearchParams) ([]types.SearchResult, int, error) {
	if params.Query == "" {
		return nil, 0, &Error{Message: "search query cannot be empty"}
	}

	contextLines := params.ContextLines
	if contextLines <= 0 {
		contextLines = defaultContextLines
	}
	limit := params.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	offset := max(params.Offset, 0)

	paths, err := s.store.Walk()
	if err != nil {
		return nil, 0, err
	}

	pattern := findreplace.Query{Text: params.Query, MatchCase: params.MatchCase}.Pattern()
	numWorkers := max(min(runtime.NumCPU(), len(paths)), 1)

	type indexed struct {
		idx    int
		result types.SearchResult
	}

	jobs := make(chan int, len(paths))
	results := make(chan indexed, len(paths))

	var wg sync.WaitGroup
	for range numWorkers {
		wg.Go(func() {
			for idx := range jobs {
				doc, err := s.store.ReadDocument(paths[idx])
				if err != nil {
					continue
				}
				matches := findreplace.ScanPattern(doc.Content, pattern)
				if len(matches) == 0 {
					continue
				}
				results <- indexed{idx: idx, result: types.SearchResult{
					Path: paths[idx],
					URI:  uri.DocumentURI(s.baseURL, s.store.Root(), paths[idx]),
					Hits: buildHits(doc.Content, matches, contextLines),
				}}
			}
		})
	}

	for i := range paths {
		jobs <- i
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	var collected []indexed
	for r := range results {
		collected = append(collected, r)
	}
	sort.Slice(collected, func(i, j int) bool {
		return collected[i].idx < collected[j].idx
	})

	total := len(collected)
	if offset >= total {
		return []types.SearchResult{}, total, nil
	}
	end := min(offset+limit, total)

	out := make([]types.SearchResult, 0, end-offset)
	for _, c := range collected[offset:end] {
		out = append(out, c.result)
	}
	return out, total, nil
}

// buildHits attaches 1-based line/column positions and surrounding lines to
// each match.
func buildHits(text string, matches []findreplace.Match, contextLines int) []types.SearchHit {
	lines := strings.Split(text, "\n")

	// Rune offset at which each line starts.
	starts := make([]int, len(lines))
	pos := 0
	for i, line := range lines {
		starts[i] = pos
		pos += len([]rune(line)) + 1
	}

	hits := make([]types.SearchHit, 0, len(matches))
	for _, m := range matches {
		line := sort.Search(len(starts), func(i int) bool { return starts[i] > m.From }) - 1
		first := max(line-contextLines, 0)
		last := min(line+contextLines+1, len(lines))
		hits = append(hits, types.SearchHit{
			From:    m.From,
			To:      m.To,
			Line:    line + 1,
			Column:  m.From - starts[line] + 1,
			Context: strings.Join(lines[first:last], "\n"),
		})
	}
	return hits
}

// Error is returned for invalid search requests.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}
