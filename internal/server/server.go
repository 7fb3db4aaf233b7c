package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nvhoang/jira-assistant/internal/assistant"
	"github.com/nvhoang/jira-assistant/internal/config"
	log "github.com/nvhoang/jira-assistant/internal/logging"
)

// ProcessRequest is the inbound payload of the process-input endpoint.
type ProcessRequest struct {
	Input string `json:"input"`
}

// ProcessResponse is the outbound payload of the process-input endpoint.
type ProcessResponse struct {
	Response string `json:"response"`
}

// Server is the HTTP surface of the assistant. The dispatcher is stateless,
// so concurrent requests are handled independently.
type Server struct {
	cfg       *config.Config
	assistant *assistant.Assistant
	engine    *gin.Engine
}

// New creates the HTTP server and registers its routes.
func New(cfg *config.Config, asst *assistant.Assistant) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware(cfg.CORSOrigins))

	s := &Server{
		cfg:       cfg,
		assistant: asst,
		engine:    engine,
	}

	engine.POST("/process-input", s.handleProcessInput)
	engine.GET("/healthz", s.handleHealth)

	return s
}

// Handler exposes the underlying handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run starts the HTTP server and blocks until the context is canceled,
// then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.ServerHost, s.cfg.ServerPort)
	srv := &http.Server{
		Addr:    addr,
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting HTTP server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	log.Infof("Shutting down HTTP server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}

// handleProcessInput accepts {"input": string} and returns {"response": string}.
func (s *Server) handleProcessInput(c *gin.Context) {
	requestID := uuid.NewString()

	var req ProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("[%s] Failed to parse request body: %v", requestID, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be JSON with an \"input\" field"})
		return
	}

	if req.Input == "" {
		c.JSON(http.StatusOK, ProcessResponse{Response: "No input provided. Please try again."})
		return
	}

	start := time.Now()
	response := s.assistant.HandleInput(c.Request.Context(), req.Input)
	log.Infof("[%s] Processed utterance in %v", requestID, time.Since(start))

	c.JSON(http.StatusOK, ProcessResponse{Response: response})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// corsMiddleware allows cross-origin requests from the configured origins.
func corsMiddleware(origins []string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && allowed[origin] {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
