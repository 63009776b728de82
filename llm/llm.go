package llm

import "context"

// Role is the author of a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single chat message sent to or received from a model.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

func NewSystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

func NewUserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// Generation is the output of a single model call.
type Generation struct {
	Content     string
	TotalTokens int
}

// LLM is the interface all chat model providers must implement.
type LLM interface {
	GenerateContent(ctx context.Context, messages []Message, opts ...GenerateOption) (*Generation, error)
}
