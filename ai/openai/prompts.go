package openai

import (
	"fmt"
	"strings"

	"github.com/poiesic/recall/ai"
)

const routingResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "category": {
      "type": "string"
    },
    "keywords": {
      "type": "array",
      "items": {
        "type": "string",
        "pattern": "^[a-z0-9]+$"
      }
    }
  },
  "required": ["category", "keywords"],
  "additionalProperties": false
}`

const routingPromptTemplate = `You match a user's search query against their note categories and return JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- The category field must be exactly one name from this list: %s.
- Pick the single category most likely to contain notes answering the query. Never invent a category.
- Keywords are single lowercase words from or implied by the query, most specific first, at most %d.
- Do not include articles, pronouns, or other function words as keywords.
- If no keyword can be identified, return "keywords": [].
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example:
Categories: Pets, Work, Travel
Query: "which animal is best"
Output:
{
  "category": "Pets",
  "keywords": ["animal", "best"]
}

Example (informal, no punctuation):
Categories: Pets, Work, Travel
Query: "stuff i wrote about the tokyo trip"
Output:
{
  "category": "Travel",
  "keywords": ["tokyo", "trip"]
}`

const synthesisPromptTemplate = `You answer a user's question using only their own notes.

You will receive the question and a numbered list of note excerpts. Respond with exactly one sentence that
answers the question by inference from the notes. Do not quote the notes verbatim unless no paraphrase is
possible. Do not mention the notes, the list, or yourself. If the notes do not contain an answer, respond
with one sentence saying nothing relevant was found.`

const emotionPromptTemplate = `Classify the emotional tone of the given text.

Respond with exactly one word from this list and nothing else: %s.
Pick "calm" only when no other label clearly applies.`

// buildRoutingPrompt creates the routing system prompt with the active
// category names and keyword cap embedded.
func buildRoutingPrompt(categories []string, maxKeywords int) string {
	return fmt.Sprintf(routingPromptTemplate,
		routingResponseSchema,
		strings.Join(categories, ", "),
		maxKeywords)
}

// buildSynthesisInput renders the query and note excerpts for the synthesizer.
func buildSynthesisInput(query string, contents []string) string {
	var b strings.Builder
	b.WriteString("Question: ")
	b.WriteString(query)
	b.WriteString("\n\nNotes:\n")
	for i, content := range contents {
		fmt.Fprintf(&b, "%d. %s\n", i+1, content)
	}
	return b.String()
}

// buildEmotionPrompt creates the emotion classification system prompt.
func buildEmotionPrompt() string {
	return fmt.Sprintf(emotionPromptTemplate, strings.Join(ai.EmotionLabels, ", "))
}
