// Package mcp exposes the guarded tool surface over the Model Context
// Protocol. Every tool in the catalog is registered; the enforcement gate
// decides per call whether the request reaches the platform.
package mcp

import (
	"context"
	"time"

	"github.com/google/uuid"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/kestrelsec/xward/internal/article"
	"github.com/kestrelsec/xward/internal/audit"
	"github.com/kestrelsec/xward/internal/config"
	"github.com/kestrelsec/xward/internal/envelope"
	"github.com/kestrelsec/xward/internal/gate"
	"github.com/kestrelsec/xward/internal/registry"
	"github.com/kestrelsec/xward/internal/upstream"
)

// ToolArgs is the free-form argument object for every guarded tool. The
// gatekeeper routes arguments to the platform untouched; schema validation
// belongs upstream.
type ToolArgs map[string]any

// Server wraps the MCP SDK server with access-control enforcement.
type Server struct {
	mcpServer *mcpsdk.Server
	reg       *registry.Registry
	gate      *gate.Gate
	store     *config.Store
	invoker   upstream.Invoker
	articles  *article.Fetcher
	auditLog  *audit.Log
	logger    *zap.Logger
}

// Options carries the collaborators for a Server. AuditLog may be nil to
// disable decision logging; Logger may be nil.
type Options struct {
	Registry *registry.Registry
	Gate     *gate.Gate
	Store    *config.Store
	Invoker  upstream.Invoker
	Articles *article.Fetcher
	AuditLog *audit.Log
	Logger   *zap.Logger
}

// New creates an MCP server with every catalog tool registered.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Articles == nil {
		opts.Articles = article.NewFetcher(opts.Logger)
	}

	s := &Server{
		reg:      opts.Registry,
		gate:     opts.Gate,
		store:    opts.Store,
		invoker:  opts.Invoker,
		articles: opts.Articles,
		auditLog: opts.AuditLog,
		logger:   opts.Logger,
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    "xward",
			Version: "0.1.0",
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport. Blocks until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

// Close closes the decision log if configured.
func (s *Server) Close() error {
	if s.auditLog != nil {
		return s.auditLog.Close()
	}
	return nil
}

// registerTools adds one MCP tool per catalog entry. Unsupported and
// unauthorized tools are still registered: callers get a structured refusal
// instead of a missing-tool error, and the advertised surface stays stable
// across profile changes.
func (s *Server) registerTools() {
	for _, name := range s.reg.Names() {
		desc, _ := s.reg.Describe(name)
		mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
			Name:        desc.Name,
			Description: desc.Description,
		}, s.handler(desc))
	}
}

func (s *Server) handler(desc registry.Descriptor) func(context.Context, *mcpsdk.CallToolRequest, ToolArgs) (*mcpsdk.CallToolResult, envelope.Envelope, error) {
	return func(ctx context.Context, req *mcpsdk.CallToolRequest, args ToolArgs) (*mcpsdk.CallToolResult, envelope.Envelope, error) {
		traceID := uuid.NewString()
		cfg := s.store.Snapshot()

		res := s.gate.Authorize(desc.Name, cfg.PolicySpec(), time.Now().UTC())
		s.recordDecision(traceID, res)

		if res.Verdict != gate.Proceed {
			s.logger.Info("tool call denied",
				zap.String("trace_id", traceID),
				zap.String("tool", desc.Name),
				zap.String("reason", denialReason(res)))
			return &mcpsdk.CallToolResult{IsError: true}, envelope.Denial(res), nil
		}

		payload, err := s.execute(ctx, desc, args)
		if err != nil {
			s.logger.Warn("tool call failed",
				zap.String("trace_id", traceID),
				zap.String("tool", desc.Name),
				zap.Error(err))
			return &mcpsdk.CallToolResult{IsError: true}, envelope.Failure(desc.Name, err), nil
		}

		s.logger.Debug("tool call succeeded",
			zap.String("trace_id", traceID),
			zap.String("tool", desc.Name))
		return nil, envelope.Success(res.Descriptor, payload), nil
	}
}

// execute forwards an admitted call. Article extraction is the one tool
// served locally; everything else goes to the platform invoker.
func (s *Server) execute(ctx context.Context, desc registry.Descriptor, args ToolArgs) (any, error) {
	if desc.Name == "get_article" {
		url, _ := args["url"].(string)
		art, err := s.articles.Fetch(ctx, url)
		if err != nil {
			return nil, err
		}
		return art, nil
	}
	return s.invoker.Invoke(ctx, desc.Name, args)
}

func (s *Server) recordDecision(traceID string, res gate.Result) {
	if s.auditLog == nil {
		return
	}
	if err := s.auditLog.Record(audit.FromResult(traceID, res)); err != nil {
		// Decision logging is best-effort; enforcement already happened.
		s.logger.Error("audit record failed", zap.Error(err))
	}
}

func denialReason(res gate.Result) string {
	if res.Err != nil {
		return string(res.Err.Type)
	}
	return "denied"
}
