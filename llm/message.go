package llm

type MessageRole string

const (
	RoleSystem    MessageRole = "system"
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

type Message struct {
	Role    MessageRole `json:"role"`
	Name    string      `json:"name,omitempty"`
	Content string      `json:"content"`
}

func NewSystemMessage(name, content string) Message {
	return Message{Role: RoleSystem, Name: name, Content: content}
}

func NewUserMessage(name, content string) Message {
	return Message{Role: RoleUser, Name: name, Content: content}
}

func NewAssistantMessage(name, content string) Message {
	return Message{Role: RoleAssistant, Name: name, Content: content}
}
