package mcp

import (
	"bufio"
	"io"
	"os"
	"time"

	"gitscout/internal/config"
	"gitscout/internal/logging"
	"gitscout/internal/progress"
	"gitscout/internal/session"
	"gitscout/internal/workspace"
)

// Server speaks MCP over line-delimited JSON-RPC on stdin/stdout. It owns
// one exploration session: cloneRepository replaces the session's working
// root, and the other tools operate inside it. Close removes whatever
// checkout the session still holds.
type Server struct {
	stdin   io.Reader
	stdout  io.Writer
	scanner *bufio.Scanner
	logger  *logging.Logger
	version string
	cfg     *config.Config
	tools   map[string]ToolHandler

	session *session.Session
}

// NewServer creates a new MCP server with a fresh session
func NewServer(version string, cfg *config.Config, logger *logging.Logger) *Server {
	server := &Server{
		stdin:   os.Stdin,
		stdout:  os.Stdout,
		logger:  logger,
		version: version,
		cfg:     cfg,
		tools:   make(map[string]ToolHandler),
	}

	manager := workspace.NewManager(time.Duration(cfg.Clone.TimeoutSeconds)*time.Second, logger)
	manager.ScratchDir = cfg.Clone.ScratchDir
	server.session = session.New(manager, server.reporter())

	server.RegisterTools()

	return server
}

// reporter returns a progress sink that forwards messages to the client
// as notifications/message. Write failures are swallowed; progress is
// advisory and must never fail a tool call.
func (s *Server) reporter() progress.Reporter {
	return progress.Func(func(message string) {
		params := map[string]interface{}{
			"level":  "info",
			"logger": "gitscout",
			"data":   message,
		}
		if err := s.writeMessage(NewNotificationMessage("notifications/message", params)); err != nil {
			s.logger.Warn("Failed to send progress notification", map[string]interface{}{
				"error": err.Error(),
			})
		}
	})
}

// Start starts the MCP server and begins processing messages
func (s *Server) Start() error {
	s.logger.Info("MCP server starting", map[string]interface{}{
		"version": s.version,
	})

	for {
		msg, err := s.readMessage()
		if err != nil {
			if err == io.EOF {
				s.logger.Info("MCP server shutting down (EOF)", nil)
				s.Close()
				return nil
			}
			s.logger.Error("Error reading message", map[string]interface{}{
				"error": err.Error(),
			})

			// Try to send error response if we can extract an ID
			if msg != nil && msg.Id != nil {
				_ = s.writeError(msg.Id, ParseError, "Failed to parse message: "+err.Error())
			}
			continue
		}

		// Process the message
		response := s.handleMessage(msg)

		// Notifications don't generate responses
		if response != nil {
			if err := s.writeMessage(response); err != nil {
				s.logger.Error("Error writing response", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}
	}
}

// Close releases the session's checkout, if any
func (s *Server) Close() {
	s.session.Release()
}

// SetStdin sets the input stream (for testing)
func (s *Server) SetStdin(r io.Reader) {
	s.stdin = r
	s.scanner = nil // Reset scanner so it will be recreated with new reader
}

// SetStdout sets the output stream (for testing)
func (s *Server) SetStdout(w io.Writer) {
	s.stdout = w
}
