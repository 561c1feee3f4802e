package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/taigrr/docedit-mcp/internal/findreplace"
	"github.com/taigrr/docedit-mcp/internal/session"
	"github.com/taigrr/docedit-mcp/internal/types"
)

type (
	// ReadInput contains parameters for reading a document.
	ReadInput struct {
		Path   string `json:"path" jsonschema:"Path to the document relative to the root"`
		Offset int    `json:"offset,omitempty" jsonschema:"Line offset to start reading from (default: 0)"`
		Limit  int    `json:"limit,omitempty" jsonschema:"Maximum number of lines to return (default: all)"`
	}

	// ReadOutput contains the result of reading a document.
	ReadOutput struct {
		Metadata   map[string]any `json:"metadata,omitempty"`
		Content    string         `json:"content"`
		URI        string         `json:"uri"`
		TotalLines int            `json:"totalLines"`
		Truncated  bool           `json:"truncated,omitempty"`
		SessionID  string         `json:"sessionId,omitempty"`
	}

	// WriteInput contains parameters for writing a document.
	WriteInput struct {
		Path     string         `json:"path" jsonschema:"Path to the document relative to the root"`
		Content  string         `json:"content" jsonschema:"Document body"`
		Metadata map[string]any `json:"metadata,omitempty" jsonschema:"YAML metadata object (optional)"`
		Mode     string         `json:"mode,omitempty" jsonschema:"overwrite, append or prepend (default: overwrite)"`
	}

	// PathOutput reports a document operation on a single path.
	PathOutput struct {
		Success bool   `json:"success"`
		Path    string `json:"path"`
		URI     string `json:"uri,omitempty"`
	}

	// DeleteInput contains parameters for deleting a document.
	DeleteInput struct {
		Path    string `json:"path" jsonschema:"Path to the document relative to the root"`
		Confirm string `json:"confirm" jsonschema:"Must repeat path exactly to confirm deletion"`
	}

	// RenameInput contains parameters for moving a document.
	RenameInput struct {
		Path      string `json:"path" jsonschema:"Current path of the document"`
		NewPath   string `json:"newPath" jsonschema:"New path for the document"`
		Overwrite bool   `json:"overwrite,omitempty" jsonschema:"Allow replacing an existing document (default: false)"`
	}

	// RenameOutput contains the result of moving a document.
	RenameOutput struct {
		Success bool   `json:"success"`
		OldPath string `json:"oldPath"`
		NewPath string `json:"newPath"`
	}

	// ListInput contains parameters for listing a directory.
	ListInput struct {
		Path string `json:"path,omitempty" jsonschema:"Directory relative to the root (default: root)"`
	}

	// ListOutput contains a directory listing.
	ListOutput struct {
		Path        string   `json:"path"`
		Files       []string `json:"files"`
		Directories []string `json:"directories"`
	}

	// EditInput contains parameters for a one-shot edit of a stored document.
	EditInput struct {
		Path       string         `json:"path" jsonschema:"Path to the document relative to the root"`
		OldText    string         `json:"oldText,omitempty" jsonschema:"Exact text to replace"`
		NewText    string         `json:"newText,omitempty" jsonschema:"Replacement for oldText"`
		ReplaceAll bool           `json:"replaceAll,omitempty" jsonschema:"Replace every occurrence of oldText"`
		Metadata   map[string]any `json:"metadata,omitempty" jsonschema:"Metadata fields to merge into the existing metadata"`
	}

	// EditOutput contains the result of an edit.
	EditOutput struct {
		Success      bool   `json:"success"`
		Path         string `json:"path"`
		Replacements int    `json:"replacements,omitempty"`
	}

	// SearchInput contains parameters for a store-wide find.
	SearchInput struct {
		Query        string `json:"query" jsonschema:"Literal text to find"`
		MatchCase    bool   `json:"matchCase,omitempty" jsonschema:"Case sensitive search (default: false)"`
		ContextLines int    `json:"contextLines,omitempty" jsonschema:"Lines of context around each hit (default: 2)"`
		Limit        int    `json:"limit,omitempty" jsonschema:"Maximum documents to return (default: 15)"`
		Offset       int    `json:"offset,omitempty" jsonschema:"Skip the first N documents (default: 0)"`
	}

	// SearchOutput contains search results.
	SearchOutput struct {
		Results        []types.SearchResult `json:"results"`
		TotalDocuments int                  `json:"totalDocuments"`
		HasMore        bool                 `json:"hasMore,omitempty"`
	}

	// OpenInput contains parameters for opening an editing session.
	OpenInput struct {
		Path string `json:"path" jsonschema:"Path to the document relative to the root"`
	}

	// OpenOutput describes an opened session.
	OpenOutput struct {
		SessionID string         `json:"sessionId"`
		Path      string         `json:"path"`
		URI       string         `json:"uri"`
		Length    int            `json:"length"`
		Created   bool           `json:"created"`
		Metadata  map[string]any `json:"metadata,omitempty"`
	}

	// SessionInput identifies an editing session.
	SessionInput struct {
		SessionID string `json:"sessionId" jsonschema:"Session id returned by open"`
	}

	// SessionsInput lists the open sessions.
	SessionsInput struct{}

	// SessionsOutput lists the open sessions.
	SessionsOutput struct {
		Sessions []session.Snapshot `json:"sessions"`
	}

	// CloseOutput reports a closed session.
	CloseOutput struct {
		SessionID        string `json:"sessionId"`
		Path             string `json:"path"`
		DiscardedChanges bool   `json:"discardedChanges,omitempty"`
	}

	// FindInput contains parameters for a find in a session.
	FindInput struct {
		SessionID string `json:"sessionId" jsonschema:"Session id returned by open"`
		Query     string `json:"query" jsonschema:"Literal text to find; empty clears the match set"`
		MatchCase bool   `json:"matchCase,omitempty" jsonschema:"Case sensitive search (default: false)"`
	}

	// FindOutput contains the match set summary after a find.
	FindOutput struct {
		MatchCount int                `json:"matchCount"`
		Index      int                `json:"index"`
		Current    *findreplace.Match `json:"current,omitempty"`
		Status     string             `json:"status"`
	}

	// NavigateOutput reports the current match after next or prev.
	NavigateOutput struct {
		Moved      bool               `json:"moved"`
		Index      int                `json:"index"`
		Current    *findreplace.Match `json:"current,omitempty"`
		MatchCount int                `json:"matchCount"`
	}

	// ReplaceInput contains the replacement text.
	ReplaceInput struct {
		SessionID string `json:"sessionId" jsonschema:"Session id returned by open"`
		Text      string `json:"text" jsonschema:"Replacement text (may be empty)"`
	}

	// ReplaceOutput reports a single replacement.
	ReplaceOutput struct {
		Success    bool   `json:"success"`
		MatchCount int    `json:"matchCount"`
		Status     string `json:"status"`
	}

	// ReplaceAllOutput reports a bulk replacement.
	ReplaceAllOutput struct {
		ReplacedCount int    `json:"replacedCount"`
		Status        string `json:"status"`
	}

	// SelectInput contains a selection range in characters.
	SelectInput struct {
		SessionID string `json:"sessionId" jsonschema:"Session id returned by open"`
		From      int    `json:"from" jsonschema:"Selection start offset in characters"`
		To        int    `json:"to" jsonschema:"Selection end offset in characters"`
	}

	// SelectionOutput reports the selection and its text.
	SelectionOutput struct {
		Selection findreplace.Match `json:"selection"`
		Text      string            `json:"text"`
	}

	// TransformInput contains parameters for a case transform.
	TransformInput struct {
		SessionID string `json:"sessionId" jsonschema:"Session id returned by open"`
		Transform string `json:"transform" jsonschema:"lowercase, uppercase or title case"`
		From      *int   `json:"from,omitempty" jsonschema:"Select from this offset first (optional, requires to)"`
		To        *int   `json:"to,omitempty" jsonschema:"Select up to this offset first (optional, requires from)"`
	}

	// TransformOutput reports a case transform.
	TransformOutput struct {
		Changed   bool              `json:"changed"`
		Selection findreplace.Match `json:"selection"`
		Text      string            `json:"text"`
	}

	// StatsOutput contains document statistics.
	StatsOutput struct {
		Words      int `json:"words"`
		Characters int `json:"characters"`
		Paragraphs int `json:"paragraphs"`
	}

	// CompleteInput contains parameters for text generation.
	CompleteInput struct {
		Prompt          string `json:"prompt" jsonschema:"What to generate"`
		SessionID       string `json:"sessionId,omitempty" jsonschema:"Use this session's document as context (optional)"`
		DocumentContent string `json:"documentContent,omitempty" jsonschema:"Context text when no session is given"`
		Insert          bool   `json:"insert,omitempty" jsonschema:"Insert the generated text at the session selection"`
	}

	// CompleteOutput contains generated text.
	CompleteOutput struct {
		Text      string             `json:"text"`
		Inserted  bool               `json:"inserted,omitempty"`
		Selection *findreplace.Match `json:"selection,omitempty"`
	}

	// SaveOutput reports a saved session.
	SaveOutput struct {
		Success bool   `json:"success"`
		Path    string `json:"path"`
		URI     string `json:"uri"`
	}
)

func registerTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "read",
		Description: "Read a document. Returns metadata and body. Supports pagination with offset/limit for large documents.",
	}, handleRead)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "write",
		Description: "Create, overwrite, append to or prepend to a document with optional YAML metadata. Fails while the document has an open session.",
	}, handleWrite)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete",
		Description: "Delete a document. confirm must repeat the path. Fails while the document has an open session.",
	}, handleDelete)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "rename",
		Description: "Move or rename a document to a new path. Fails while either path has an open session.",
	}, handleRename)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list",
		Description: "List the documents and directories under a path.",
	}, handleList)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "edit",
		Description: "Edit a stored document by replacing literal text and/or merging metadata fields. Without replaceAll, oldText must occur exactly once. Fails while the document has an open session.",
	}, handleEdit)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search",
		Description: "Find literal text across all documents. Returns character ranges, line/column and context for each hit.",
	}, handleSearch)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "open",
		Description: "Open an editing session on a document. Reopening an open document returns its existing session.",
	}, handleOpen)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "sessions",
		Description: "List open editing sessions with their find state.",
	}, handleSessions)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "close",
		Description: "Clear the find state and close a session. Unsaved changes are discarded.",
	}, handleClose)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find",
		Description: "Find every occurrence of literal text in the session's document and select the first one.",
	}, handleFind)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "next",
		Description: "Select the next match, wrapping to the first.",
	}, handleNext)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "prev",
		Description: "Select the previous match, wrapping to the last.",
	}, handlePrev)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "replace",
		Description: "Replace the current match and search again.",
	}, handleReplace)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "replace_all",
		Description: "Replace every match of the last find.",
	}, handleReplaceAll)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "clear",
		Description: "Drop the match set and collapse the selection.",
	}, handleClear)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "select",
		Description: "Set the selection to a character range. Clears the find state.",
	}, handleSelect)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "transform",
		Description: "Change the case of the selected text to lowercase, uppercase or title case.",
	}, handleTransform)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "stats",
		Description: "Count words, characters and paragraphs in the session's document.",
	}, handleStats)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "complete",
		Description: "Generate plain text from a prompt using the document as context. With insert=true the text replaces the session selection.",
	}, handleComplete)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "save",
		Description: "Write the session's document back to storage, keeping its metadata.",
	}, handleSave)
}
