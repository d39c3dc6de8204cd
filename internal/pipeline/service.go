// Package pipeline sequences risk classification, PII redaction, knowledge
// retrieval, prompt composition, generation and call logging for the four
// supported use cases.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/apietra/deskpilot/internal/calllog"
	"github.com/apietra/deskpilot/internal/chat"
	"github.com/apietra/deskpilot/internal/knowledge"
	"github.com/apietra/deskpilot/internal/llm"
	"github.com/apietra/deskpilot/internal/observability"
	"github.com/apietra/deskpilot/internal/policy"
	"github.com/apietra/deskpilot/internal/prompt"
)

const defaultMaxSnippets = 3

// Input validation errors, surfaced before any pipeline stage runs.
var (
	ErrEmptyQuery           = errors.New("query must not be empty")
	ErrEmptyCustomerMessage = errors.New("customer_message must not be empty")
	ErrEmptyConversation    = errors.New("conversation must not be empty")
)

// Retriever is the nearest-neighbor lookup the pipeline consumes. An empty
// result is the designated "no relevant context" signal; implementations
// never surface errors.
type Retriever interface {
	Retrieve(ctx context.Context, query string, k int) []knowledge.Snippet
}

// ChatRequest is a customer chat turn.
type ChatRequest struct {
	Query   string
	History []chat.Message
}

// SuggestReplyRequest asks for one draft reply a support agent can edit.
type SuggestReplyRequest struct {
	CustomerMessage string
	History         []chat.Message
	TopicHint       string
}

// SummarizeRequest asks for a case summary over a full conversation.
type SummarizeRequest struct {
	Conversation []chat.Message
}

// SummarizeResult carries the generated summary. KeyPoints is always empty:
// the service does not parse bullets out of the generated text. The field is
// a placeholder contract for callers, kept deliberately.
type SummarizeResult struct {
	Summary   string   `json:"summary"`
	KeyPoints []string `json:"key_points"`
}

// Service orchestrates one pipeline invocation per request. It holds no
// per-request state; a single instance serves concurrent requests.
type Service struct {
	retriever   Retriever
	generator   llm.Generator
	sink        calllog.Sink
	metrics     *observability.Metrics
	maxSnippets int
}

func NewService(retriever Retriever, generator llm.Generator, sink calllog.Sink, metrics *observability.Metrics, maxSnippets int) *Service {
	if maxSnippets <= 0 {
		maxSnippets = defaultMaxSnippets
	}
	return &Service{
		retriever:   retriever,
		generator:   generator,
		sink:        sink,
		metrics:     metrics,
		maxSnippets: maxSnippets,
	}
}

// AnswerChat answers a customer query with retrieval-augmented generation.
func (s *Service) AnswerChat(ctx context.Context, req ChatRequest) (string, error) {
	if strings.TrimSpace(req.Query) == "" {
		return "", ErrEmptyQuery
	}

	// Classification reads the raw text; redaction must not hide risk cues.
	risk := policy.ClassifyRisk(req.Query)
	maskedQuery, maskedHistory, piiMasked := s.redactRequest(req.Query, req.History)

	if g, ok := chatGuardrails[risk]; ok {
		s.finish(ctx, calllog.Record{
			UseCase:    calllog.UseCaseChat,
			Query:      maskedQuery,
			History:    maskedHistory,
			Output:     g.text,
			SafetyFlag: risk,
			PIIMasked:  piiMasked,
			HandledBy:  g.handledBy,
		})
		return g.text, nil
	}

	snippets := s.retriever.Retrieve(ctx, maskedQuery, s.maxSnippets)
	s.metrics.ObserveRetrievedSnippets(len(snippets))

	reply, err := s.generate(ctx, prompt.Chat(maskedHistory, maskedQuery, snippets))
	if err != nil {
		return "", fmt.Errorf("chat generation: %w", err)
	}

	s.finish(ctx, calllog.Record{
		UseCase:    calllog.UseCaseChat,
		Query:      maskedQuery,
		History:    maskedHistory,
		Output:     reply,
		SafetyFlag: risk,
		PIIMasked:  piiMasked,
		HandledBy:  "rag_chatbot",
		Contexts:   snippets,
	})
	return reply, nil
}

// AnswerChatBaseline answers without retrieval. It exists for quality
// comparison against AnswerChat and shares its guardrail behavior.
func (s *Service) AnswerChatBaseline(ctx context.Context, req ChatRequest) (string, error) {
	if strings.TrimSpace(req.Query) == "" {
		return "", ErrEmptyQuery
	}

	risk := policy.ClassifyRisk(req.Query)
	maskedQuery, maskedHistory, piiMasked := s.redactRequest(req.Query, req.History)

	if g, ok := baselineGuardrails[risk]; ok {
		s.finish(ctx, calllog.Record{
			UseCase:    calllog.UseCaseChatBaseline,
			Query:      maskedQuery,
			History:    maskedHistory,
			Output:     g.text,
			SafetyFlag: risk,
			PIIMasked:  piiMasked,
			HandledBy:  g.handledBy,
		})
		return g.text, nil
	}

	reply, err := s.generate(ctx, prompt.ChatBaseline(maskedHistory, maskedQuery))
	if err != nil {
		return "", fmt.Errorf("baseline chat generation: %w", err)
	}

	s.finish(ctx, calllog.Record{
		UseCase:    calllog.UseCaseChatBaseline,
		Query:      maskedQuery,
		History:    maskedHistory,
		Output:     reply,
		SafetyFlag: risk,
		PIIMasked:  piiMasked,
		HandledBy:  "baseline_chatbot",
	})
	return reply, nil
}

// SuggestAgentReply drafts one reply a support agent can edit before sending.
func (s *Service) SuggestAgentReply(ctx context.Context, req SuggestReplyRequest) (string, error) {
	if strings.TrimSpace(req.CustomerMessage) == "" {
		return "", ErrEmptyCustomerMessage
	}

	risk := policy.ClassifyRisk(req.CustomerMessage)
	maskedMessage, maskedHistory, piiMasked := s.redactRequest(req.CustomerMessage, req.History)

	if g, ok := suggestGuardrails[risk]; ok {
		s.finish(ctx, calllog.Record{
			UseCase:    calllog.UseCaseSuggestReply,
			Query:      maskedMessage,
			History:    maskedHistory,
			Output:     g.text,
			SafetyFlag: risk,
			PIIMasked:  piiMasked,
			HandledBy:  g.handledBy,
		})
		return g.text, nil
	}

	ragQuery := maskedMessage
	if req.TopicHint != "" {
		ragQuery = fmt.Sprintf("%s: %s", req.TopicHint, maskedMessage)
	}
	snippets := s.retriever.Retrieve(ctx, ragQuery, s.maxSnippets)
	s.metrics.ObserveRetrievedSnippets(len(snippets))

	reply, err := s.generate(ctx, prompt.SuggestReply(maskedHistory, maskedMessage, snippets, req.TopicHint))
	if err != nil {
		return "", fmt.Errorf("suggest reply generation: %w", err)
	}

	s.finish(ctx, calllog.Record{
		UseCase:    calllog.UseCaseSuggestReply,
		Query:      maskedMessage,
		History:    maskedHistory,
		Output:     reply,
		SafetyFlag: risk,
		PIIMasked:  piiMasked,
		HandledBy:  "rag_copilot",
		Contexts:   snippets,
	})
	return reply, nil
}

// SummarizeCase produces a free-text summary of a full conversation.
func (s *Service) SummarizeCase(ctx context.Context, req SummarizeRequest) (SummarizeResult, error) {
	if len(req.Conversation) == 0 {
		return SummarizeResult{}, ErrEmptyConversation
	}

	// For summarization the risk input is the whole conversation, not a
	// single message.
	joined := make([]string, 0, len(req.Conversation))
	for _, msg := range req.Conversation {
		joined = append(joined, msg.Content)
	}
	risk := policy.ClassifyRisk(strings.Join(joined, " "))

	maskedConversation, piiMasked := redactHistory(req.Conversation)
	if piiMasked {
		s.metrics.ObservePIIRedaction()
	}

	if g, ok := summaryGuardrails[risk]; ok {
		s.finish(ctx, calllog.Record{
			UseCase:    calllog.UseCaseSummarizeCase,
			History:    maskedConversation,
			Output:     g.text,
			SafetyFlag: risk,
			PIIMasked:  piiMasked,
			HandledBy:  g.handledBy,
		})
		return SummarizeResult{Summary: g.text, KeyPoints: []string{}}, nil
	}

	text, err := s.generate(ctx, prompt.Summary(maskedConversation))
	if err != nil {
		return SummarizeResult{}, fmt.Errorf("summary generation: %w", err)
	}

	s.finish(ctx, calllog.Record{
		UseCase:    calllog.UseCaseSummarizeCase,
		History:    maskedConversation,
		Output:     text,
		SafetyFlag: risk,
		PIIMasked:  piiMasked,
		HandledBy:  "summary_copilot",
	})
	return SummarizeResult{Summary: text, KeyPoints: []string{}}, nil
}

// redactRequest masks the primary text and every history message. The
// aggregated flag is true iff at least one of them triggered redaction.
func (s *Service) redactRequest(primary string, history []chat.Message) (string, []chat.Message, bool) {
	maskedPrimary, primaryHadPII := policy.RedactPII(primary)
	maskedHistory, historyHadPII := redactHistory(history)
	piiMasked := primaryHadPII || historyHadPII
	if piiMasked {
		s.metrics.ObservePIIRedaction()
	}
	return maskedPrimary, maskedHistory, piiMasked
}

// redactHistory masks every message and reports whether any triggered
// redaction.
func redactHistory(history []chat.Message) ([]chat.Message, bool) {
	if len(history) == 0 {
		return nil, false
	}
	hadPII := false
	masked := make([]chat.Message, len(history))
	for i, msg := range history {
		content, msgHadPII := policy.RedactPII(msg.Content)
		if msgHadPII {
			hadPII = true
		}
		masked[i] = chat.Message{Role: msg.Role, Content: content}
	}
	return masked, hadPII
}

func (s *Service) generate(ctx context.Context, promptText string) (string, error) {
	start := time.Now()
	text, err := s.generator.Generate(ctx, promptText)
	s.metrics.ObserveGenerationLatency(time.Since(start))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// finish appends the single call record for a completed invocation. A sink
// failure must not turn a finished request into an error, so it is logged
// and swallowed here.
func (s *Service) finish(ctx context.Context, record calllog.Record) {
	s.metrics.ObserveRequest(record.UseCase, record.HandledBy)
	if record.SafetyFlag != policy.RiskNormal {
		s.metrics.ObserveGuardrail(string(record.SafetyFlag))
	}
	if err := s.sink.Append(ctx, record); err != nil {
		log.Printf("call log append failed for %s: %v", record.UseCase, err)
	}
}
