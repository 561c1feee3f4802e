package types

type (
	// SearchParams contains parameters for a store-wide find.
	SearchParams struct {
		Query        string `json:"query"`
		MatchCase    bool   `json:"matchCase,omitempty"`
		ContextLines int    `json:"contextLines,omitempty"`
		Limit        int    `json:"limit,omitempty"`
		Offset       int    `json:"offset,omitempty"`
	}

	// SearchHit is one occurrence of the query inside a document.
	SearchHit struct {
		From    int    `json:"from"`
		To      int    `json:"to"`
		Line    int    `json:"line"`
		Column  int    `json:"column"`
		Context string `json:"context"`
	}

	// SearchResult groups the hits found in one document.
	SearchResult struct {
		Path string      `json:"path"`
		URI  string      `json:"uri,omitempty"`
		Hits []SearchHit `json:"hits"`
	}
)
