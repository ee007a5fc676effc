package llm

import "strings"

// MockBackend is the sentinel backend identifier for the deterministic
// fallback responder.
const MockBackend = "mock"

// mockAnswer synthesizes a templated answer purely from the retrieved
// context. It is the router's last resort: with it, Generate always returns
// some answer no matter how many backends failed.
func mockAnswer(contextBlock string) string {
	first := firstLine(contextBlock)
	if first == "" {
		return "I couldn't find any relevant information to answer your question."
	}
	return "Based on the retrieved information: " + first
}

func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}
