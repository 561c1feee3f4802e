package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/taigrr/docedit-mcp/internal/document"
	"github.com/taigrr/docedit-mcp/internal/findreplace"
	"github.com/taigrr/docedit-mcp/internal/frontmatter"
	"github.com/taigrr/docedit-mcp/internal/types"
	"github.com/taigrr/docedit-mcp/internal/uri"
)

func documentURI(path string) string {
	return uri.DocumentURI(baseURL, docStore.Root(), path)
}

func handleRead(ctx context.Context, req *mcp.CallToolRequest, input ReadInput) (*mcp.CallToolResult, ReadOutput, error) {
	path := strings.TrimSpace(input.Path)
	doc, err := docStore.ReadDocument(path)
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, ReadOutput{}, err
	}

	lines := strings.Split(doc.Content, "\n")
	totalLines := len(lines)
	out := ReadOutput{
		Metadata:   doc.Metadata,
		URI:        documentURI(path),
		TotalLines: totalLines,
	}
	if s, ok := sessions.Lookup(path); ok {
		out.SessionID = s.ID
	}

	offset := max(input.Offset, 0)
	if offset >= totalLines {
		out.Truncated = true
		return nil, out, nil
	}

	limit := input.Limit
	if limit <= 0 {
		limit = totalLines
	}
	end := min(offset+limit, totalLines)

	out.Content = strings.Join(lines[offset:end], "\n")
	out.Truncated = end < totalLines
	return nil, out, nil
}

func handleWrite(ctx context.Context, req *mcp.CallToolRequest, input WriteInput) (*mcp.CallToolResult, PathOutput, error) {
	path := strings.TrimSpace(input.Path)
	err := sessions.Guard(func() error {
		return docStore.WriteDocument(types.DocumentWriteParams{
			Path:     path,
			Content:  input.Content,
			Metadata: input.Metadata,
			Mode:     types.WriteMode(strings.TrimSpace(input.Mode)),
		})
	}, path)
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, PathOutput{Success: false, Path: path}, err
	}

	logger.Info("document written", "path", path, "mode", input.Mode)
	return nil, PathOutput{Success: true, Path: path, URI: documentURI(path)}, nil
}

func handleDelete(ctx context.Context, req *mcp.CallToolRequest, input DeleteInput) (*mcp.CallToolResult, PathOutput, error) {
	path := strings.TrimSpace(input.Path)
	err := sessions.Guard(func() error {
		return docStore.DeleteDocument(path, strings.TrimSpace(input.Confirm))
	}, path)
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, PathOutput{Success: false, Path: path}, err
	}

	logger.Info("document deleted", "path", path)
	return nil, PathOutput{Success: true, Path: path}, nil
}

func handleRename(ctx context.Context, req *mcp.CallToolRequest, input RenameInput) (*mcp.CallToolResult, RenameOutput, error) {
	oldPath := strings.TrimSpace(input.Path)
	newPath := strings.TrimSpace(input.NewPath)

	err := sessions.Guard(func() error {
		return docStore.MoveDocument(oldPath, newPath, input.Overwrite)
	}, oldPath, newPath)
	if err != nil {
		return &mcp.CallToolResult{IsError: true},
			RenameOutput{Success: false, OldPath: oldPath, NewPath: newPath}, err
	}

	logger.Info("document moved", "from", oldPath, "to", newPath)
	return nil, RenameOutput{Success: true, OldPath: oldPath, NewPath: newPath}, nil
}

func handleList(ctx context.Context, req *mcp.CallToolRequest, input ListInput) (*mcp.CallToolResult, ListOutput, error) {
	path := strings.Trim(strings.TrimSpace(input.Path), "/")
	if path == "" {
		path = "."
	}

	listing, err := docStore.ListDirectory(path)
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, ListOutput{Path: path}, err
	}

	return nil, ListOutput{
		Path:        path,
		Files:       listing.Files,
		Directories: listing.Directories,
	}, nil
}

func handleEdit(ctx context.Context, req *mcp.CallToolRequest, input EditInput) (*mcp.CallToolResult, EditOutput, error) {
	path := strings.TrimSpace(input.Path)
	if input.OldText == "" && input.Metadata == nil {
		return &mcp.CallToolResult{IsError: true}, EditOutput{Path: path},
			errors.New("nothing to edit: provide oldText or metadata")
	}

	replacements := 0
	err := sessions.Guard(func() error {
		var err error
		replacements, err = editDocument(path, input)
		return err
	}, path)
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, EditOutput{Path: path}, err
	}

	logger.Info("document edited", "path", path, "replacements", replacements)
	return nil, EditOutput{Success: true, Path: path, Replacements: replacements}, nil
}

// editDocument applies an edit through a scratch buffer and engine and
// returns the number of replacements.
func editDocument(path string, input EditInput) (int, error) {
	doc, err := docStore.ReadDocument(path)
	if err != nil {
		return 0, err
	}

	buf := document.NewBuffer(doc.Content)
	replacements := 0

	if input.OldText != "" {
		engine := findreplace.New(buf)
		occurrences := engine.Find(input.OldText, true)
		switch {
		case occurrences == 0:
			return 0, errors.New("oldText not found in document")
		case occurrences > 1 && !input.ReplaceAll:
			return 0, fmt.Errorf("found %d occurrences of oldText; use replaceAll=true or provide more specific text", occurrences)
		}

		if input.ReplaceAll {
			replacements, err = engine.ReplaceAll(input.NewText)
		} else {
			_, err = engine.ReplaceCurrent(input.NewText)
			replacements = 1
		}
		if err != nil {
			return 0, err
		}
	}

	err = docStore.WriteDocument(types.DocumentWriteParams{
		Path:     path,
		Content:  buf.FlatText(),
		Metadata: frontmatter.Merge(doc.Metadata, input.Metadata),
		Mode:     types.ModeOverwrite,
	})
	return replacements, err
}

func handleSearch(ctx context.Context, req *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, SearchOutput, error) {
	offset := max(input.Offset, 0)
	results, total, err := searchService.Search(types.SearchParams{
		Query:        input.Query,
		MatchCase:    input.MatchCase,
		ContextLines: input.ContextLines,
		Limit:        input.Limit,
		Offset:       offset,
	})
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, SearchOutput{}, err
	}

	if results == nil {
		results = []types.SearchResult{}
	}
	return nil, SearchOutput{
		Results:        results,
		TotalDocuments: total,
		HasMore:        total > offset+len(results),
	}, nil
}
