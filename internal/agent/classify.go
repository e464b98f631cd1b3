package agent

import (
	"regexp"
	"strings"

	"github.com/Mr-XX23/quiz-agentic/internal/session"
)

// operationKeywords is the ordered classification table. The first group
// with a keyword match wins, so "search for quiz questions" classifies as
// search, not generate_quiz.
var operationKeywords = []struct {
	op       session.OperationType
	keywords []string
}{
	{session.OpSearch, []string{"search", "find", "lookup"}},
	{session.OpExtract, []string{"extract", "content", "url"}},
	{session.OpGenerateQuiz, []string{"create quiz", "generate quiz", "make quiz"}},
	{session.OpGenerateQuestion, []string{"question", "generate question"}},
	{session.OpValidate, []string{"validate", "check", "verify"}},
	{session.OpA2A, []string{"a2a", "agent", "communicate"}},
	{session.OpMCP, []string{"mcp", "context", "protocol"}},
}

// Classify maps an instruction to an operation by keyword priority.
// Unmatched input defaults to quiz generation.
func Classify(userInput string) session.OperationType {
	input := strings.ToLower(userInput)
	for _, group := range operationKeywords {
		for _, keyword := range group.keywords {
			if strings.Contains(input, keyword) {
				return group.op
			}
		}
	}
	return session.OpGenerateQuiz
}

// searchStopWords are instruction words stripped when deriving a search
// query from the raw input.
var searchStopWords = map[string]bool{
	"search": true, "for": true, "find": true, "lookup": true,
	"about": true, "on": true, "the": true, "a": true, "an": true,
}

// ExtractSearchQuery strips instruction words from the input to leave the
// topic. Falls back to the full input when everything was stripped.
func ExtractSearchQuery(userInput string) string {
	words := strings.Fields(userInput)
	query := make([]string, 0, len(words))
	for _, word := range words {
		if !searchStopWords[strings.ToLower(word)] {
			query = append(query, word)
		}
	}
	if len(query) == 0 {
		return userInput
	}
	return strings.Join(query, " ")
}

var urlRe = regexp.MustCompile(`https?://[^\s"'<>]+`)

// ExtractURLs returns every http(s) URL appearing in the text, in order.
func ExtractURLs(text string) []string {
	return urlRe.FindAllString(text, -1)
}
