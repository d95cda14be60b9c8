package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// processMessage handles POST /api/v1/conversations/message.
func (s *Server) processMessage(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	result, err := s.calls.ProcessMessage(c.Request.Context(), req.CallID, req.Message)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTurnResponse(result))
}

// conversationHistory handles GET /api/v1/conversations/history/:id.
func (s *Server) conversationHistory(c *gin.Context) {
	history, err := s.calls.GetHistory(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	resp := historyResponse{
		Call:  toCallResponse(&history.Call),
		Turns: toTurnPayloads(history.Turns),
	}
	if history.Summary != nil {
		resp.Summary = toSummaryPayload(history.Summary)
	}
	c.JSON(http.StatusOK, resp)
}
