package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/switchboard-labs/switchboard/internal/core/domain"
	"github.com/switchboard-labs/switchboard/internal/core/ports/driving"
)

// addDocument handles POST /api/v1/knowledge/documents.
func (s *Server) addDocument(c *gin.Context) {
	var req documentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	doc, err := s.knowledge.AddDocument(c.Request.Context(), driving.DocumentInput{
		Title:    req.Title,
		Category: req.Category,
		Content:  req.Content,
		Tags:     req.Tags,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toDocumentResponse(doc, false))
}

// listDocuments handles GET /api/v1/knowledge/documents.
func (s *Server) listDocuments(c *gin.Context) {
	docs, err := s.knowledge.ListDocuments(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]documentResponse, len(docs))
	for i := range docs {
		out[i] = toDocumentResponse(&docs[i], false)
	}
	c.JSON(http.StatusOK, gin.H{"documents": out, "count": len(out)})
}

// getDocument handles GET /api/v1/knowledge/documents/:id.
func (s *Server) getDocument(c *gin.Context) {
	doc, err := s.knowledge.GetDocument(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDocumentResponse(doc, true))
}

// updateDocument handles PUT /api/v1/knowledge/documents/:id.
func (s *Server) updateDocument(c *gin.Context) {
	var req documentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	doc, err := s.knowledge.UpdateDocument(c.Request.Context(), c.Param("id"), domain.DocumentUpdate{
		Title:    req.Title,
		Category: req.Category,
		Content:  req.Content,
		Tags:     req.Tags,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDocumentResponse(doc, false))
}

// deleteDocument handles DELETE /api/v1/knowledge/documents/:id.
func (s *Server) deleteDocument(c *gin.Context) {
	if err := s.knowledge.DeleteDocument(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "document deleted"})
}

// search handles POST /api/v1/knowledge/search.
func (s *Server) search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	results, err := s.knowledge.Search(c.Request.Context(), req.Query, req.TopK)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"query":   req.Query,
		"results": toRetrievalResults(results),
		"count":   len(results),
	})
}
