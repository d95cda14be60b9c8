// Package httpapi exposes the engine over a REST API using Gin. Routes are
// grouped under /api/v1 into calls, conversations, and knowledge.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/switchboard-labs/switchboard/internal/core/ports/driven"
	"github.com/switchboard-labs/switchboard/internal/core/ports/driving"
	"github.com/switchboard-labs/switchboard/internal/logger"
)

// Server wires the driving services into an HTTP engine.
type Server struct {
	calls     driving.CallService
	knowledge driving.KnowledgeService
	embedder  driven.EmbeddingService
	llm       driven.LLMService
	engine    *gin.Engine
}

// NewServer creates the HTTP server. The embedder and llm are only used for
// health reporting and may be nil.
func NewServer(
	calls driving.CallService,
	knowledge driving.KnowledgeService,
	embedder driven.EmbeddingService,
	llm driven.LLMService,
) *Server {
	if !logger.IsVerbose() {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		calls:     calls,
		knowledge: knowledge,
		embedder:  embedder,
		llm:       llm,
		engine:    gin.New(),
	}
	s.engine.Use(gin.Recovery())
	s.routes()
	return s
}

// Handler returns the underlying HTTP handler, used directly by tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run starts the server and blocks until the context is cancelled, then
// drains in-flight requests.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP API listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) routes() {
	s.engine.GET("/", s.root)
	s.engine.GET("/health", s.health)

	v1 := s.engine.Group("/api/v1")

	calls := v1.Group("/calls")
	calls.POST("/initiate", s.initiateCall)
	calls.GET("/status/:id", s.callStatus)
	calls.POST("/end/:id", s.endCall)
	calls.GET("/active", s.activeCalls)

	conversations := v1.Group("/conversations")
	conversations.POST("/message", s.processMessage)
	conversations.GET("/history/:id", s.conversationHistory)

	knowledge := v1.Group("/knowledge")
	knowledge.POST("/documents", s.addDocument)
	knowledge.GET("/documents", s.listDocuments)
	knowledge.GET("/documents/:id", s.getDocument)
	knowledge.PUT("/documents/:id", s.updateDocument)
	knowledge.DELETE("/documents/:id", s.deleteDocument)
	knowledge.POST("/search", s.search)
}

func (s *Server) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "switchboard",
		"status":  "running",
	})
}

// health reports the engine and collaborator status. Collaborator outages
// degrade the report but never fail the endpoint.
func (s *Server) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	embeddingStatus := "unconfigured"
	if s.embedder != nil {
		embeddingStatus = "ok"
		if err := s.embedder.Ping(ctx); err != nil {
			embeddingStatus = "unavailable"
		}
	}

	llmStatus := "unconfigured"
	if s.llm != nil {
		llmStatus = "ok"
		if err := s.llm.Ping(ctx); err != nil {
			llmStatus = "unavailable"
		}
	}

	status := "healthy"
	if embeddingStatus == "unavailable" || llmStatus == "unavailable" {
		status = "degraded"
	}

	c.JSON(http.StatusOK, healthResponse{
		Status:    status,
		Embedding: embeddingStatus,
		LLM:       llmStatus,
	})
}
