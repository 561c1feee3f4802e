// Package main implements the MCP server for collaborative document editing.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/fang"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"github.com/taigrr/docedit-mcp/internal/completion"
	"github.com/taigrr/docedit-mcp/internal/config"
	"github.com/taigrr/docedit-mcp/internal/frontmatter"
	"github.com/taigrr/docedit-mcp/internal/pathfilter"
	"github.com/taigrr/docedit-mcp/internal/search"
	"github.com/taigrr/docedit-mcp/internal/session"
	"github.com/taigrr/docedit-mcp/internal/store"
)

var (
	docStore      *store.Service
	searchService *search.Service
	sessions      *session.Manager
	completions   *completion.Service
	baseURL       string
	logger        = slog.Default()
)

type flags struct {
	config    string
	http      string
	baseURL   string
	logLevel  string
	logFormat string
	provider  string
	model     string
}

func main() {
	var f flags

	cmd := &cobra.Command{
		Use:   "docedit-mcp [root]",
		Short: "MCP server for editing a directory of documents",
		Long: `docedit-mcp is a Model Context Protocol (MCP) server for a directory
of markdown and text documents. Clients open editing sessions on a
document and drive find and replace, case transforms, statistics and
AI text generation on it, then save the result. Documents keep their
YAML metadata and never leave the configured root.`,
		Example: `docedit-mcp ~/docs
docedit-mcp --http :8080 --base-url https://docs.example.com ~/docs`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd, args, f)
		},
	}

	cmd.Flags().StringVarP(&f.config, "config", "c", "", "path to a YAML config file")
	cmd.Flags().StringVar(&f.http, "http", "", "serve MCP and the completion route over HTTP on this address instead of stdio")
	cmd.Flags().StringVar(&f.baseURL, "base-url", "", "web editor base URL used for document links")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	cmd.Flags().StringVar(&f.logFormat, "log-format", "text", "log format (text, json)")
	cmd.Flags().StringVar(&f.provider, "provider", "", "completion provider (gemini, openai, anthropic)")
	cmd.Flags().StringVar(&f.model, "model", "", "completion model name")

	if err := fang.Execute(
		context.Background(),
		cmd,
		fang.WithVersion(version),
		fang.WithoutCompletions(),
		fang.WithoutManpage(),
	); err != nil {
		os.Exit(1)
	}
}

// loadConfig merges the config file, flags and positional root. Flags win
// over the file only when set explicitly.
func loadConfig(cmd *cobra.Command, args []string, f flags) (config.Config, error) {
	cfg, err := config.Load(f.config)
	if err != nil {
		return cfg, err
	}

	changed := cmd.Flags().Changed
	if changed("http") {
		cfg.HTTPAddr = f.http
	}
	if changed("base-url") {
		cfg.BaseURL = f.baseURL
	}
	if changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if changed("log-format") {
		cfg.LogFormat = f.logFormat
	}
	if changed("provider") {
		cfg.Completion.Provider = f.provider
	}
	if changed("model") {
		cfg.Completion.Model = f.model
	}

	switch {
	case len(args) > 0:
		cfg.Root = args[0]
	case f.config == "":
		wd, err := os.Getwd()
		if err != nil {
			return cfg, fmt.Errorf("failed to get current directory: %w", err)
		}
		cfg.Root = wd
	}

	return cfg, cfg.Validate()
}

func runServer(cmd *cobra.Command, args []string, f flags) error {
	cfg, err := loadConfig(cmd, args, f)
	if err != nil {
		return err
	}

	logger, err = cfg.NewLogger(os.Stderr)
	if err != nil {
		return err
	}

	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return fmt.Errorf("resolve root: %w", err)
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return fmt.Errorf("root %s is not a directory", root)
	}

	initServices(root, cfg)

	server := newServer()

	if cfg.HTTPAddr != "" {
		return serveHTTP(cmd.Context(), cfg.HTTPAddr, server)
	}

	logger.Info("serving MCP on stdio", "root", root)
	if err := server.Run(cmd.Context(), &mcp.StdioTransport{}); err != nil {
		return fmt.Errorf("error running server: %w", err)
	}
	return nil
}

func initServices(root string, cfg config.Config) {
	pf := pathfilter.New(&cfg.Filter)
	fh := frontmatter.New()
	docStore = store.New(root, pf, fh)
	baseURL = cfg.BaseURL
	searchService = search.New(docStore, baseURL)
	sessions = session.NewManager(docStore, logger)

	completer, err := completion.NewCompleter(cfg.Completion)
	if err != nil {
		logger.Warn("completion disabled", "provider", cfg.Completion.Provider, "reason", err)
		completer = nil
	}
	completions = completion.New(completer, logger)
}

func newServer() *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "docedit-mcp",
		Version: version,
	}, nil)
	registerTools(server)
	return server
}

// newMux routes MCP over streamable HTTP and the completion endpoint.
func newMux(server *mcp.Server) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/mcp", mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil))
	mux.Handle("/api/completion", completion.Handler(completions))
	return mux
}

func serveHTTP(ctx context.Context, addr string, server *mcp.Server) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              addr,
		Handler:           logRequests(newMux(server)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving MCP over HTTP", "addr", addr, "root", docStore.Root())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("error running server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Flush keeps streamed MCP responses working through the recorder.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
