package llm

import (
	"fmt"
	"strings"

	"github.com/niyarrbarman/automanim/internal/model"
)

const promptTemplate = `SYSTEM:
%s

USER:
%s

ASSISTANT:
`

// BuildPrompt renders a single system/user pair in instruct style for flat
// (non-chat) backends.
func BuildPrompt(systemPrompt, userPrompt string) string {
	return fmt.Sprintf(promptTemplate, systemPrompt, userPrompt)
}

// BuildPromptFromMessages flattens a message list into a role-tagged text
// block in history order, terminated by an assistant marker inviting the
// model to complete.
func BuildPromptFromMessages(messages []model.Message) string {
	var b strings.Builder
	for _, m := range messages {
		b.WriteString(strings.ToUpper(m.Role))
		b.WriteString(":\n")
		b.WriteString(m.Content)
		b.WriteString("\n\n")
	}
	b.WriteString("ASSISTANT:\n")
	return b.String()
}

// withSystem logically prepends the system instruction as a synthetic first
// turn ahead of the history.
func withSystem(systemPrompt string, history []model.Message) []model.Message {
	msgs := make([]model.Message, 0, len(history)+1)
	msgs = append(msgs, model.Message{Role: model.RoleSystem, Content: systemPrompt})
	msgs = append(msgs, history...)
	return msgs
}
