// Package calllog persists one append-only audit record per completed
// pipeline invocation.
package calllog

import (
	"context"
	"time"

	"github.com/apietra/deskpilot/internal/chat"
	"github.com/apietra/deskpilot/internal/knowledge"
	"github.com/apietra/deskpilot/internal/policy"
)

// Use-case discriminators stored on each record.
const (
	UseCaseChat          = "chat"
	UseCaseChatBaseline  = "chat_baseline"
	UseCaseSuggestReply  = "suggest_reply"
	UseCaseSummarizeCase = "summarize_case"
)

// Record is the audit snapshot of one pipeline invocation. Query and History
// hold the masked input, never the raw one.
type Record struct {
	ID         string              `json:"id"`
	Timestamp  time.Time           `json:"timestamp"`
	UseCase    string              `json:"use_case"`
	Query      string              `json:"query"`
	History    []chat.Message      `json:"history,omitempty"`
	Output     string              `json:"output"`
	SafetyFlag policy.RiskCategory `json:"safety_flag"`
	PIIMasked  bool                `json:"pii_masked"`
	HandledBy  string              `json:"handled_by"`
	Contexts   []knowledge.Snippet `json:"contexts,omitempty"`
}

// Sink is a durable, ordered record store. Append must be atomic at record
// granularity: concurrent appends never interleave mid-record.
type Sink interface {
	Append(ctx context.Context, record Record) error
	Close() error
}
