package httpapi

import (
	"time"

	"github.com/switchboard-labs/switchboard/internal/core/domain"
	"github.com/switchboard-labs/switchboard/internal/core/ports/driving"
)

// initiateCallRequest is the POST /calls/initiate payload.
type initiateCallRequest struct {
	UserName  string `json:"user_name" binding:"required"`
	UserPhone string `json:"user_phone"`
	Topic     string `json:"topic"`
}

// messageRequest is the POST /conversations/message payload.
type messageRequest struct {
	CallID  string `json:"call_id" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// documentRequest is the POST /knowledge/documents payload.
type documentRequest struct {
	Title    string   `json:"title" binding:"required"`
	Category string   `json:"category"`
	Content  string   `json:"content" binding:"required"`
	Tags     []string `json:"tags"`
}

// documentUpdateRequest is the PUT /knowledge/documents/:id payload. Absent
// fields are left unchanged.
type documentUpdateRequest struct {
	Title    *string   `json:"title"`
	Category *string   `json:"category"`
	Content  *string   `json:"content"`
	Tags     *[]string `json:"tags"`
}

// searchRequest is the POST /knowledge/search payload.
type searchRequest struct {
	Query string `json:"query" binding:"required"`
	TopK  int    `json:"top_k"`
}

// callResponse describes one call.
type callResponse struct {
	CallID       string              `json:"call_id"`
	UserName     string              `json:"user_name"`
	UserPhone    string              `json:"user_phone,omitempty"`
	Topic        string              `json:"topic,omitempty"`
	State        domain.CallState    `json:"state"`
	CreatedAt    time.Time           `json:"created_at"`
	StartedAt    *time.Time          `json:"started_at,omitempty"`
	EndedAt      *time.Time          `json:"ended_at,omitempty"`
	MessageCount int                 `json:"message_count"`
	Greeting     string              `json:"greeting,omitempty"`
	Summary      *callSummaryPayload `json:"summary,omitempty"`
}

// callSummaryPayload describes an ended call.
type callSummaryPayload struct {
	DominantIntent  domain.Intent `json:"dominant_intent"`
	TurnCount       int           `json:"turn_count"`
	DurationSeconds float64       `json:"duration_seconds"`
}

// turnResponse is the outcome of one processed message.
type turnResponse struct {
	CallID           string            `json:"call_id"`
	Response         string            `json:"response"`
	Intent           domain.Intent     `json:"intent"`
	Confidence       float64           `json:"confidence"`
	RequiresTransfer bool              `json:"requires_transfer"`
	TransferReason   string            `json:"transfer_reason,omitempty"`
	Degraded         bool              `json:"degraded,omitempty"`
	Retrieved        []retrievalResult `json:"retrieved,omitempty"`
	Timestamp        time.Time         `json:"timestamp"`
}

// turnPayload is one transcript entry.
type turnPayload struct {
	Role       domain.Role   `json:"role"`
	Text       string        `json:"text"`
	Timestamp  time.Time     `json:"timestamp"`
	Intent     domain.Intent `json:"intent,omitempty"`
	Confidence float64       `json:"confidence,omitempty"`
}

// historyResponse is the GET /conversations/history/:id payload.
type historyResponse struct {
	Call    callResponse        `json:"call"`
	Turns   []turnPayload       `json:"turns"`
	Summary *callSummaryPayload `json:"summary,omitempty"`
}

// documentResponse describes one knowledge document.
type documentResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Category  string    `json:"category,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
	Content   string    `json:"content,omitempty"`
	Preview   string    `json:"preview,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// retrievalResult is one search hit.
type retrievalResult struct {
	ChunkID       string  `json:"chunk_id"`
	DocumentID    string  `json:"document_id"`
	DocumentTitle string  `json:"document_title"`
	Category      string  `json:"category,omitempty"`
	Text          string  `json:"text"`
	Score         float64 `json:"score"`
	Rank          int     `json:"rank"`
}

// healthResponse is the GET /health payload.
type healthResponse struct {
	Status    string `json:"status"`
	Embedding string `json:"embedding"`
	LLM       string `json:"llm"`
}

func toCallResponse(call *domain.Call) callResponse {
	resp := callResponse{
		CallID:       call.ID,
		UserName:     call.UserName,
		UserPhone:    call.UserPhone,
		Topic:        call.Topic,
		State:        call.State,
		CreatedAt:    call.CreatedAt,
		EndedAt:      call.EndedAt,
		MessageCount: call.MessageCount,
	}
	if !call.StartedAt.IsZero() {
		started := call.StartedAt
		resp.StartedAt = &started
	}
	if call.Summary != nil {
		resp.Summary = toSummaryPayload(call.Summary)
	}
	return resp
}

func toSummaryPayload(s *domain.CallSummary) *callSummaryPayload {
	return &callSummaryPayload{
		DominantIntent:  s.DominantIntent,
		TurnCount:       s.TurnCount,
		DurationSeconds: s.Duration.Seconds(),
	}
}

func toTurnPayloads(turns []domain.ConversationTurn) []turnPayload {
	out := make([]turnPayload, len(turns))
	for i, t := range turns {
		out[i] = turnPayload{
			Role:       t.Role,
			Text:       t.Text,
			Timestamp:  t.Timestamp,
			Intent:     t.Intent,
			Confidence: t.Confidence,
		}
	}
	return out
}

func toRetrievalResults(results []domain.RetrievalResult) []retrievalResult {
	out := make([]retrievalResult, len(results))
	for i, r := range results {
		out[i] = retrievalResult{
			ChunkID:       r.ChunkID,
			DocumentID:    r.DocumentID,
			DocumentTitle: r.DocumentTitle,
			Category:      r.Category,
			Text:          r.Text,
			Score:         r.Score,
			Rank:          r.Rank,
		}
	}
	return out
}

func toTurnResponse(result *driving.TurnResult) turnResponse {
	return turnResponse{
		CallID:           result.CallID,
		Response:         result.AgentResponse,
		Intent:           result.Intent,
		Confidence:       result.Confidence,
		RequiresTransfer: result.RequiresTransfer,
		TransferReason:   result.TransferReason,
		Degraded:         result.Degraded,
		Retrieved:        toRetrievalResults(result.Retrieved),
		Timestamp:        result.Timestamp,
	}
}

func toDocumentResponse(doc *domain.Document, includeContent bool) documentResponse {
	resp := documentResponse{
		ID:        doc.ID,
		Title:     doc.Title,
		Category:  doc.Category,
		Tags:      doc.Tags,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
	if includeContent {
		resp.Content = doc.Content
	} else {
		resp.Preview = doc.Preview(200)
	}
	return resp
}
