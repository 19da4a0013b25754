package chat

import (
	"fmt"
	"strings"
)

// Turn is one (user message, bot message) pair of the conversation history.
// History is supplied fresh on every call by the UI layer; the system holds
// no session state of its own between calls.
type Turn struct {
	User string `json:"user"`
	Bot  string `json:"bot"`
}

// botMarker is the cue the model continues from, and the marker replies are
// extracted after.
const botMarker = "Bot:"

// BuildPrompt assembles the complete generation input: an optional Context
// section with the retrieved passages, each historical turn as a User/Bot
// line pair, and the new user line followed by a trailing "Bot: " cue.
//
// No truncation, token-budget check, or deduplication is performed.
func BuildPrompt(passages []string, history []Turn, message string) string {
	var b strings.Builder

	if len(passages) > 0 {
		b.WriteString("Context:\n")
		b.WriteString(strings.Join(passages, "\n"))
		b.WriteString("\n\n")
	}

	for _, turn := range history {
		fmt.Fprintf(&b, "User: %s\n%s %s\n", turn.User, botMarker, turn.Bot)
	}

	fmt.Fprintf(&b, "User: %s\n%s ", message, botMarker)
	return b.String()
}

// ExtractReply returns the text following the last occurrence of the "Bot:"
// marker in the decoded model output, trimmed. If the marker is absent the
// entire text is returned trimmed.
//
// This is a heuristic substring search, not a structured parse: a retrieved
// passage that itself contains the literal marker can cause mis-extraction.
// The behavior is kept for compatibility with the reference deployment.
func ExtractReply(decoded string) string {
	idx := strings.LastIndex(decoded, botMarker)
	if idx < 0 {
		return strings.TrimSpace(decoded)
	}
	return strings.TrimSpace(decoded[idx+len(botMarker):])
}
