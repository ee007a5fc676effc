package ragduel

import "fmt"

const systemPrompt = "You are a precise assistant that answers questions " +
	"strictly from the provided context. If the context does not contain " +
	"the answer, say so plainly instead of guessing."

const traditionalPromptFmt = `CONTEXT INFORMATION (ranked text facts):
%s

QUESTION: %s

INSTRUCTIONS: Answer using only the facts above. Cite the fact you relied on. If the facts are insufficient, say you could not find the answer.`

const graphPromptFmt = `CONTEXT INFORMATION (entity-relationship subgraph):
%s

QUESTION: %s

INSTRUCTIONS: Answer using only the entities and relationships above. Mention the relationship path that supports your answer. If the subgraph is insufficient, say you could not find the answer.`

const emptyContextNote = "No relevant information was retrieved for this question."

func traditionalPrompt(contextBlock, query string) string {
	if contextBlock == "" {
		contextBlock = emptyContextNote
	}
	return fmt.Sprintf(traditionalPromptFmt, contextBlock, query)
}

func graphPrompt(contextBlock, query string) string {
	if contextBlock == "" {
		contextBlock = emptyContextNote
	}
	return fmt.Sprintf(graphPromptFmt, contextBlock, query)
}
