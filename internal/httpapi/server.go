// Package httpapi exposes the pipeline over HTTP. Handlers are thin: they
// decode, validate field presence, call the pipeline and encode the result.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/apietra/deskpilot/internal/chat"
	"github.com/apietra/deskpilot/internal/config"
	"github.com/apietra/deskpilot/internal/observability"
	"github.com/apietra/deskpilot/internal/pipeline"
)

type Server struct {
	cfg      config.Config
	pipeline *pipeline.Service
	sinkMode string
	idxMode  string
}

func New(cfg config.Config, svc *pipeline.Service, sinkMode, indexMode string) *Server {
	return &Server{
		cfg:      cfg,
		pipeline: svc,
		sinkMode: sinkMode,
		idxMode:  indexMode,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(corsMiddleware(s.cfg.AllowAnyOrigin))

	r.Get("/healthz", s.handleHealth)
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		observability.MetricsHandler().ServeHTTP(w, r)
	})

	r.Post("/chatbot/query", s.handleChatQuery)
	r.Post("/chatbot/query-baseline", s.handleChatQueryBaseline)
	r.Post("/copilot/suggest-reply", s.handleSuggestReply)
	r.Post("/copilot/summarize-case", s.handleSummarizeCase)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":        "ok",
		"call_log_mode": s.sinkMode,
		"index_mode":    s.idxMode,
	})
}

type chatRequest struct {
	Query   string         `json:"query"`
	History []chat.Message `json:"history"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

func (s *Server) handleChatQuery(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeChatRequest(w, r)
	if !ok {
		return
	}

	reply, err := s.pipeline.AnswerChat(r.Context(), pipeline.ChatRequest{Query: req.Query, History: req.History})
	if err != nil {
		s.respondPipelineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, chatResponse{Reply: reply})
}

func (s *Server) handleChatQueryBaseline(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeChatRequest(w, r)
	if !ok {
		return
	}

	reply, err := s.pipeline.AnswerChatBaseline(r.Context(), pipeline.ChatRequest{Query: req.Query, History: req.History})
	if err != nil {
		s.respondPipelineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, chatResponse{Reply: reply})
}

type suggestReplyRequest struct {
	CustomerMessage     string         `json:"customer_message"`
	ConversationHistory []chat.Message `json:"conversation_history"`
	TopicHint           string         `json:"topic_hint"`
}

type suggestReplyResponse struct {
	SuggestedReply string `json:"suggested_reply"`
}

func (s *Server) handleSuggestReply(w http.ResponseWriter, r *http.Request) {
	var req suggestReplyRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if strings.TrimSpace(req.CustomerMessage) == "" {
		respondError(w, http.StatusBadRequest, "missing_customer_message", "customer_message is required")
		return
	}
	if !validMessages(req.ConversationHistory) {
		respondError(w, http.StatusBadRequest, "invalid_history", "history roles must be user or assistant")
		return
	}

	reply, err := s.pipeline.SuggestAgentReply(r.Context(), pipeline.SuggestReplyRequest{
		CustomerMessage: req.CustomerMessage,
		History:         req.ConversationHistory,
		TopicHint:       strings.TrimSpace(req.TopicHint),
	})
	if err != nil {
		s.respondPipelineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, suggestReplyResponse{SuggestedReply: reply})
}

type summarizeCaseRequest struct {
	Conversation []chat.Message `json:"conversation"`
}

func (s *Server) handleSummarizeCase(w http.ResponseWriter, r *http.Request) {
	var req summarizeCaseRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if len(req.Conversation) == 0 {
		respondError(w, http.StatusBadRequest, "missing_conversation", "conversation is required")
		return
	}
	if !validMessages(req.Conversation) {
		respondError(w, http.StatusBadRequest, "invalid_conversation", "conversation roles must be user or assistant")
		return
	}

	out, err := s.pipeline.SummarizeCase(r.Context(), pipeline.SummarizeRequest{Conversation: req.Conversation})
	if err != nil {
		s.respondPipelineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) decodeChatRequest(w http.ResponseWriter, r *http.Request) (chatRequest, bool) {
	var req chatRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return chatRequest{}, false
	}
	if strings.TrimSpace(req.Query) == "" {
		respondError(w, http.StatusBadRequest, "missing_query", "query is required")
		return chatRequest{}, false
	}
	if !validMessages(req.History) {
		respondError(w, http.StatusBadRequest, "invalid_history", "history roles must be user or assistant")
		return chatRequest{}, false
	}
	return req, true
}

func (s *Server) respondPipelineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, pipeline.ErrEmptyQuery),
		errors.Is(err, pipeline.ErrEmptyCustomerMessage),
		errors.Is(err, pipeline.ErrEmptyConversation):
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		respondError(w, http.StatusBadGateway, "generation_failed", err.Error())
	}
}

func validMessages(msgs []chat.Message) bool {
	for _, m := range msgs {
		if !chat.ValidRole(m.Role) {
			return false
		}
	}
	return true
}

func corsMiddleware(allowAnyOrigin bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && allowAnyOrigin {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			}
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

var errEmptyBody = errors.New("empty body")

func decodeJSON(r *http.Request, out any) error {
	if r.Body == nil {
		return errEmptyBody
	}
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(out); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "eof") {
			return errEmptyBody
		}
		return err
	}
	return nil
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, errorResponse{Error: message, Code: code})
}
