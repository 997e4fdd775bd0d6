package mcp

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/chatgraph"
	"github.com/aretw0/chatgraph/internal/logging"
	"github.com/aretw0/chatgraph/internal/presentation/graph"
	"github.com/aretw0/chatgraph/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	GraphURI  = "chatgraph://graph"
	AvatarURI = "chatgraph://avatar"
)

// Server exposes a conversation service as an MCP server.
type Server struct {
	conv      ports.Conversation
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance. A nil logger discards output.
func NewServer(conv ports.Conversation, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{
		conv:      conv,
		logger:    logger,
		mcpServer: server.NewMCPServer("chatgraph-mcp", strings.TrimSpace(chatgraph.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer { return s.mcpServer }

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves MCP over SSE on addr until ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, addr, baseURL string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("send_message",
		mcp.WithDescription("Send a user message to a conversation session. The session starts at the root on first use."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Conversation session ID")),
		mcp.WithString("text", mcp.Required(), mcp.Description("User message")),
	), s.handleSendMessage)

	s.mcpServer.AddTool(mcp.NewTool("reset_session",
		mcp.WithDescription("Move a conversation session back to the root node."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Conversation session ID")),
	), s.handleResetSession)

	s.mcpServer.AddTool(mcp.NewTool("get_graph",
		mcp.WithDescription("Get the conversation graph (nodes, answers, edges, keywords) for introspection."),
		mcp.WithString("format", mcp.Description("json (default) or mermaid")),
	), s.handleGetGraph)
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(GraphURI, "Conversation Graph",
		mcp.WithResourceDescription("Nodes, answers, edges and keywords of the loaded graph"),
		mcp.WithMIMEType("application/json"),
	), s.handleReadGraph)

	if avatar := s.conv.Avatar(); avatar != nil {
		s.mcpServer.AddResource(mcp.NewResource(AvatarURI, "Agent Avatar",
			mcp.WithResourceDescription("Image shown next to every answer"),
			mcp.WithMIMEType(avatar.MediaType()),
		), s.handleReadAvatar)
	}
}

func (s *Server) handleSendMessage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := mcp.ParseString(request, "session_id", "")
	text := mcp.ParseString(request, "text", "")

	reply, err := s.conv.Send(ctx, sessionID, text)
	if err != nil {
		s.logger.Warn("MCP send_message failed", "session_id", sessionID, "err", err)
		return mcp.NewToolResultError(fmt.Sprintf("send failed: %v", err)), nil
	}
	return jsonResult(reply)
}

func (s *Server) handleResetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := mcp.ParseString(request, "session_id", "")

	reply, err := s.conv.Reset(ctx, sessionID)
	if err != nil {
		s.logger.Warn("MCP reset_session failed", "session_id", sessionID, "err", err)
		return mcp.NewToolResultError(fmt.Sprintf("reset failed: %v", err)), nil
	}
	return jsonResult(reply)
}

func (s *Server) handleGetGraph(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	switch format := mcp.ParseString(request, "format", "json"); format {
	case "json":
		return jsonResult(graph.NewView(s.conv.Graph()))
	case "mermaid":
		return mcp.NewToolResultText(graph.GenerateMermaid(s.conv.Graph(), nil)), nil
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown format %q", format)), nil
	}
}

func (s *Server) handleReadGraph(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(graph.NewView(s.conv.Graph()))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal graph: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      GraphURI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (s *Server) handleReadAvatar(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	avatar := s.conv.Avatar()
	return []mcp.ResourceContents{
		mcp.BlobResourceContents{
			URI:      AvatarURI,
			MIMEType: avatar.MediaType(),
			Blob:     base64.StdEncoding.EncodeToString(avatar.Bytes()),
		},
	}, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
