// Package chat holds the conversation types shared by the prompt composer,
// the pipeline and the HTTP surface.
package chat

// Role identifies who produced a message.
type Role string

const (
	// RoleUser is the end customer in chat, or the customer in copilot flows.
	RoleUser Role = "user"
	// RoleAssistant is the bot in chat flows, or the human agent in copilot flows.
	RoleAssistant Role = "assistant"
)

// Message is one turn of a conversation. The slice order of a conversation is
// its chronological order; messages are never mutated after construction.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ValidRole reports whether r is one of the two accepted roles.
func ValidRole(r Role) bool {
	return r == RoleUser || r == RoleAssistant
}
