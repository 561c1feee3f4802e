package completion

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	anthropicoption "github.com/anthropics/anthropic-sdk-go/option"
	"github.com/google/generative-ai-go/genai"
	"github.com/openai/openai-go"
	openaioption "github.com/openai/openai-go/option"
	"google.golang.org/api/option"
)

// Provider names.
const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

const defaultMaxTokens = 1024

var errEmptyResponse = errors.New("model returned no text")

// Config selects and tunes a provider.
type Config struct {
	Provider  string `yaml:"provider"`
	Model     string `yaml:"model"`
	APIKeyEnv string `yaml:"apiKeyEnv"`
	MaxTokens int    `yaml:"maxTokens"`
}

type providerDefaults struct {
	model  string
	keyEnv string
}

var defaults = map[string]providerDefaults{
	ProviderGemini:    {model: "gemini-2.0-flash", keyEnv: "GOOGLE_AI_API_KEY"},
	ProviderOpenAI:    {model: "gpt-4o-mini", keyEnv: "OPENAI_API_KEY"},
	ProviderAnthropic: {model: "claude-3-5-haiku-latest", keyEnv: "ANTHROPIC_API_KEY"},
}

// Validate checks the provider name and token limit. An empty provider
// disables completion.
func (c Config) Validate() error {
	if c.MaxTokens < 0 {
		return fmt.Errorf("maxTokens must not be negative: %d", c.MaxTokens)
	}
	if c.Provider == "" {
		return nil
	}
	if _, ok := defaults[c.Provider]; !ok {
		return fmt.Errorf("unknown completion provider %q", c.Provider)
	}
	return nil
}

// withDefaults fills in the model, key variable and token limit.
func (c Config) withDefaults() Config {
	d := defaults[c.Provider]
	if c.Model == "" {
		c.Model = d.model
	}
	if c.APIKeyEnv == "" {
		c.APIKeyEnv = d.keyEnv
	}
	if c.MaxTokens == 0 {
		c.MaxTokens = defaultMaxTokens
	}
	return c
}

// NewCompleter builds the Completer named by cfg. The API key is read from
// the environment; a missing key yields ErrNotConfigured.
func NewCompleter(cfg Config) (Completer, error) {
	return newCompleter(cfg, os.Getenv)
}

func newCompleter(cfg Config, getenv func(string) string) (Completer, error) {
	if cfg.Provider == "" {
		return nil, ErrNotConfigured
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	key := strings.TrimSpace(getenv(cfg.APIKeyEnv))
	if key == "" {
		return nil, fmt.Errorf("%w: %s is not set", ErrNotConfigured, cfg.APIKeyEnv)
	}

	switch cfg.Provider {
	case ProviderOpenAI:
		return &openAICompleter{
			client:    openai.NewClient(openaioption.WithAPIKey(key)),
			model:     cfg.Model,
			maxTokens: cfg.MaxTokens,
		}, nil
	case ProviderAnthropic:
		return &anthropicCompleter{
			client:    anthropic.NewClient(anthropicoption.WithAPIKey(key)),
			model:     cfg.Model,
			maxTokens: cfg.MaxTokens,
		}, nil
	default:
		return &geminiCompleter{apiKey: key, model: cfg.Model, maxTokens: cfg.MaxTokens}, nil
	}
}

// geminiCompleter opens a client per request; genai clients hold a
// connection that must be closed.
type geminiCompleter struct {
	apiKey    string
	model     string
	maxTokens int
}

func (g *geminiCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return "", fmt.Errorf("create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(g.model)
	model.SetMaxOutputTokens(int32(g.maxTokens))

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
		break
	}
	if b.Len() == 0 {
		return "", errEmptyResponse
	}
	return b.String(), nil
}

type openAICompleter struct {
	client    openai.Client
	model     string
	maxTokens int
}

func (o *openAICompleter) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:               openai.ChatModel(o.model),
		Messages:            []openai.ChatCompletionMessageParamUnion{openai.UserMessage(prompt)},
		MaxCompletionTokens: openai.Int(int64(o.maxTokens)),
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", errEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}

type anthropicCompleter struct {
	client    anthropic.Client
	model     string
	maxTokens int
}

func (a *anthropicCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	msg, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: int64(a.maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	if b.Len() == 0 {
		return "", errEmptyResponse
	}
	return b.String(), nil
}
