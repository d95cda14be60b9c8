package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/switchboard-labs/switchboard/internal/core/domain"
	"github.com/switchboard-labs/switchboard/internal/core/ports/driving"
)

// initiateCall handles POST /api/v1/calls/initiate.
func (s *Server) initiateCall(c *gin.Context) {
	var req initiateCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	call, err := s.calls.InitiateCall(c.Request.Context(), driving.CallRequest{
		UserName:  req.UserName,
		UserPhone: req.UserPhone,
		Topic:     req.Topic,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	resp := toCallResponse(call)
	if len(call.Transcript) > 0 && call.Transcript[0].Role == domain.RoleAgent {
		resp.Greeting = call.Transcript[0].Text
	}
	c.JSON(http.StatusCreated, resp)
}

// callStatus handles GET /api/v1/calls/status/:id.
func (s *Server) callStatus(c *gin.Context) {
	call, err := s.calls.GetCall(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCallResponse(call))
}

// endCall handles POST /api/v1/calls/end/:id.
func (s *Server) endCall(c *gin.Context) {
	call, err := s.calls.EndCall(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCallResponse(call))
}

// activeCalls handles GET /api/v1/calls/active.
func (s *Server) activeCalls(c *gin.Context) {
	calls, err := s.calls.ActiveCalls(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]callResponse, len(calls))
	for i := range calls {
		out[i] = toCallResponse(&calls[i])
	}
	c.JSON(http.StatusOK, gin.H{"calls": out, "count": len(out)})
}
