package prompt

import "fmt"

// GetSystemPrompt provides strict directions and schema for JSON output.
func GetSystemPrompt() string {
	return `Analyze the text provided by the user and respond with a JSON object with these exact fields:
{
  "summary": "A 2-3 sentence summary of the text",
  "title": "A concise title for the text (or null if no clear title can be determined)",
  "topics": ["topic1", "topic2", "topic3"],
  "sentiment": "positive, neutral, or negative"
}

Guidelines:
- summary: Should be 1-2 sentences maximum
- title: Extract or create a short, descriptive title (max 10 words). Return null if the text is too fragmented or unclear.
- topics: Identify exactly 3 key topics or themes
- sentiment: Analyze the overall tone and return one of: positive, neutral, negative

Return ONLY the JSON object, no additional text or formatting.`
}

// GetUserPrompt wraps the raw input text into the user message.
func GetUserPrompt(text string) string {
	return fmt.Sprintf("Text to analyze:\n%s", text)
}
