package web

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/koopa0/studybot/internal/chat"
	"github.com/koopa0/studybot/internal/log"
)

// maxChatBodyBytes caps the request body so a single request cannot ask
// the server to buffer an arbitrarily long history.
const maxChatBodyBytes = 1 << 20 // 1 MiB

// chatHandler handles the chat HTTP endpoint.
//
// The endpoint is stateless: the client sends the full conversation history
// with every request and appends the returned reply itself.
type chatHandler struct {
	responder *chat.Responder
	logger    log.Logger
}

// newChatHandler creates a new chat handler.
func newChatHandler(responder *chat.Responder, logger log.Logger) *chatHandler {
	return &chatHandler{responder: responder, logger: logger}
}

// ChatRequest is the request body for POST /api/chat.
type ChatRequest struct {
	Message string      `json:"message"`
	History []chat.Turn `json:"history,omitempty"`
}

// ChatResponse is the response body for POST /api/chat.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// send handles one chat turn.
//
// Request body:  {"message": "...", "history": [{"user": "...", "bot": "..."}]}
// Response body: {"reply": "..."}
//
// Generation failures return a generic 502 so provider details never leak
// to the client.
func (h *chatHandler) send(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxChatBodyBytes)

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid request body", h.logger)
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "missing_message", "message is required", h.logger)
		return
	}

	reply, err := h.responder.Respond(r.Context(), req.Message, req.History)
	if err != nil {
		h.logger.Error("chat turn failed", "error", err, "message_len", len(req.Message))
		writeError(w, http.StatusBadGateway, "generation_failed",
			"the model could not produce a reply", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, ChatResponse{Reply: reply}, h.logger)
}
