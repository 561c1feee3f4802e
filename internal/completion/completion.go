// Package completion generates text for a document from a user prompt using
// a hosted language model.
package completion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

var (
	// ErrPromptRequired is returned when the request has no prompt.
	ErrPromptRequired = errors.New("prompt is required")
	// ErrNotConfigured is returned when no provider or API key is available.
	ErrNotConfigured = errors.New("completion provider not configured")
)

const emptyDocument = "(Empty document)"

type (
	// Request asks for text given a prompt and the current document.
	Request struct {
		Prompt          string `json:"prompt"`
		DocumentContent string `json:"documentContent"`
	}

	// Response carries the generated text.
	Response struct {
		Text string `json:"text"`
	}
)

// Completer sends a single prompt to a model and returns its text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// BuildPrompt combines the user's prompt with the document used as context.
func BuildPrompt(prompt, documentContent string) string {
	if strings.TrimSpace(documentContent) == "" {
		documentContent = emptyDocument
	}

	var b strings.Builder
	b.WriteString("Document Content for Context:\n")
	b.WriteString(documentContent)
	b.WriteString("\nDO NOT REPLY IN MARKDOWN. ONLY GIVE PLAIN TEXT. YOU ARE INSIDE A RICH TEXT EDITOR.\n")
	b.WriteString("User Request:\n")
	b.WriteString(prompt)
	return b.String()
}

// Service generates completions through a Completer.
type Service struct {
	completer Completer
	logger    *slog.Logger
}

// New creates a Service. A nil completer yields ErrNotConfigured on every
// request.
func New(c Completer, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{completer: c, logger: logger}
}

// Configured reports whether a completer is available.
func (s *Service) Configured() bool {
	return s.completer != nil
}

// Generate produces text for req.
func (s *Service) Generate(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return Response{}, ErrPromptRequired
	}
	if s.completer == nil {
		s.logger.Error("completion requested without a configured provider")
		return Response{}, ErrNotConfigured
	}

	text, err := s.completer.Complete(ctx, BuildPrompt(req.Prompt, req.DocumentContent))
	if err != nil {
		s.logger.Error("completion failed", "error", err)
		return Response{}, fmt.Errorf("generate content: %w", err)
	}

	s.logger.Debug("completion generated", "promptLength", len(req.Prompt), "textLength", len(text))
	return Response{Text: text}, nil
}
