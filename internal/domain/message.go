package domain

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string
	Content string
}

// Exchange builds the two-message sequence sent for a single consultation:
// the persona's system instruction followed by the user's text as typed.
func Exchange(p Persona, text string) []Message {
	return []Message{
		{Role: RoleSystem, Content: SystemPrompt(p)},
		{Role: RoleUser, Content: text},
	}
}
