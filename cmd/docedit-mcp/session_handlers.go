package main

import (
	"context"
	"errors"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/taigrr/docedit-mcp/internal/completion"
	"github.com/taigrr/docedit-mcp/internal/document"
	"github.com/taigrr/docedit-mcp/internal/findreplace"
	"github.com/taigrr/docedit-mcp/internal/session"
)

func lookup(id string) (*session.Session, error) {
	return sessions.Get(strings.TrimSpace(id))
}

func handleOpen(ctx context.Context, req *mcp.CallToolRequest, input OpenInput) (*mcp.CallToolResult, OpenOutput, error) {
	path := strings.TrimSpace(input.Path)
	s, created, err := sessions.Open(path)
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, OpenOutput{Path: path}, err
	}

	return nil, OpenOutput{
		SessionID: s.ID,
		Path:      s.Path,
		URI:       documentURI(s.Path),
		Length:    s.Snapshot().Length,
		Created:   created,
		Metadata:  s.Metadata(),
	}, nil
}

func handleSessions(ctx context.Context, req *mcp.CallToolRequest, input SessionsInput) (*mcp.CallToolResult, SessionsOutput, error) {
	return nil, SessionsOutput{Sessions: sessions.List()}, nil
}

func handleClose(ctx context.Context, req *mcp.CallToolRequest, input SessionInput) (*mcp.CallToolResult, CloseOutput, error) {
	snap, err := sessions.Close(strings.TrimSpace(input.SessionID))
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, CloseOutput{SessionID: input.SessionID}, err
	}
	return nil, CloseOutput{
		SessionID:        snap.ID,
		Path:             snap.Path,
		DiscardedChanges: snap.Dirty,
	}, nil
}

func handleFind(ctx context.Context, req *mcp.CallToolRequest, input FindInput) (*mcp.CallToolResult, FindOutput, error) {
	s, err := lookup(input.SessionID)
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, FindOutput{}, err
	}

	snap := s.Find(input.Query, input.MatchCase)
	return nil, FindOutput{
		MatchCount: len(snap.Matches),
		Index:      snap.Cursor,
		Current:    snap.Current,
		Status:     snap.Status,
	}, nil
}

func navigate(id string, step func(*session.Session) (session.Snapshot, bool)) (*mcp.CallToolResult, NavigateOutput, error) {
	s, err := lookup(id)
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, NavigateOutput{Index: -1}, err
	}

	snap, ok := step(s)
	return nil, NavigateOutput{
		Moved:      ok,
		Index:      snap.Cursor,
		Current:    snap.Current,
		MatchCount: len(snap.Matches),
	}, nil
}

func handleNext(ctx context.Context, req *mcp.CallToolRequest, input SessionInput) (*mcp.CallToolResult, NavigateOutput, error) {
	return navigate(input.SessionID, (*session.Session).Next)
}

func handlePrev(ctx context.Context, req *mcp.CallToolRequest, input SessionInput) (*mcp.CallToolResult, NavigateOutput, error) {
	return navigate(input.SessionID, (*session.Session).Prev)
}

func handleReplace(ctx context.Context, req *mcp.CallToolRequest, input ReplaceInput) (*mcp.CallToolResult, ReplaceOutput, error) {
	s, err := lookup(input.SessionID)
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, ReplaceOutput{}, err
	}

	ok, snap, err := s.Replace(input.Text)
	out := ReplaceOutput{Success: ok, MatchCount: len(snap.Matches), Status: snap.Status}
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, out, err
	}
	return nil, out, nil
}

func handleReplaceAll(ctx context.Context, req *mcp.CallToolRequest, input ReplaceInput) (*mcp.CallToolResult, ReplaceAllOutput, error) {
	s, err := lookup(input.SessionID)
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, ReplaceAllOutput{}, err
	}

	n, snap, err := s.ReplaceAll(input.Text)
	out := ReplaceAllOutput{ReplacedCount: n, Status: snap.Status}
	if err != nil {
		logger.Error("replace all stopped early", "session", s.ID, "replaced", n, "error", err)
		return &mcp.CallToolResult{IsError: true}, out, err
	}
	return nil, out, nil
}

func handleClear(ctx context.Context, req *mcp.CallToolRequest, input SessionInput) (*mcp.CallToolResult, session.Snapshot, error) {
	s, err := lookup(input.SessionID)
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, session.Snapshot{}, err
	}
	return nil, s.Clear(), nil
}

func handleSelect(ctx context.Context, req *mcp.CallToolRequest, input SelectInput) (*mcp.CallToolResult, SelectionOutput, error) {
	s, err := lookup(input.SessionID)
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, SelectionOutput{}, err
	}
	snap := s.SetSelection(input.From, input.To)
	return nil, SelectionOutput{Selection: snap.Selection, Text: snap.SelectedText}, nil
}

func handleTransform(ctx context.Context, req *mcp.CallToolRequest, input TransformInput) (*mcp.CallToolResult, TransformOutput, error) {
	s, err := lookup(input.SessionID)
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, TransformOutput{}, err
	}

	t, err := document.ParseTransform(input.Transform)
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, TransformOutput{}, err
	}

	var sel *findreplace.Match
	switch {
	case input.From != nil && input.To != nil:
		sel = &findreplace.Match{From: *input.From, To: *input.To}
	case input.From != nil || input.To != nil:
		return &mcp.CallToolResult{IsError: true}, TransformOutput{},
			errors.New("from and to must be given together")
	}

	changed, snap, err := s.Transform(t, sel)
	out := TransformOutput{Changed: changed, Selection: snap.Selection, Text: snap.SelectedText}
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, out, err
	}
	return nil, out, nil
}

func handleStats(ctx context.Context, req *mcp.CallToolRequest, input SessionInput) (*mcp.CallToolResult, StatsOutput, error) {
	s, err := lookup(input.SessionID)
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, StatsOutput{}, err
	}
	st := s.Stats()
	return nil, StatsOutput{Words: st.Words, Characters: st.Characters, Paragraphs: st.Paragraphs}, nil
}

func handleComplete(ctx context.Context, req *mcp.CallToolRequest, input CompleteInput) (*mcp.CallToolResult, CompleteOutput, error) {
	var s *session.Session
	content := input.DocumentContent
	if id := strings.TrimSpace(input.SessionID); id != "" {
		var err error
		if s, err = sessions.Get(id); err != nil {
			return &mcp.CallToolResult{IsError: true}, CompleteOutput{}, err
		}
		content = s.Text()
	}

	resp, err := completions.Generate(ctx, completion.Request{
		Prompt:          input.Prompt,
		DocumentContent: content,
	})
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, CompleteOutput{}, err
	}

	out := CompleteOutput{Text: resp.Text}
	if input.Insert && s != nil {
		sel, err := s.InsertText(resp.Text)
		if err != nil {
			return &mcp.CallToolResult{IsError: true}, out, err
		}
		out.Inserted = true
		out.Selection = &sel
	}
	return nil, out, nil
}

func handleSave(ctx context.Context, req *mcp.CallToolRequest, input SessionInput) (*mcp.CallToolResult, SaveOutput, error) {
	s, err := lookup(input.SessionID)
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, SaveOutput{}, err
	}
	if err := s.Save(docStore); err != nil {
		return &mcp.CallToolResult{IsError: true}, SaveOutput{Path: s.Path}, err
	}

	logger.Info("session saved", "session", s.ID, "path", s.Path)
	return nil, SaveOutput{Success: true, Path: s.Path, URI: documentURI(s.Path)}, nil
}
