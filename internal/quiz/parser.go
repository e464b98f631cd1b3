package quiz

import (
	"regexp"
	"strings"
	"time"

	"github.com/Mr-XX23/quiz-agentic/internal/types"
)

// questionStartRe marks the start of a question block, e.g. "Question 1:"
// or "Question 3 (History):".
var questionStartRe = regexp.MustCompile(`^Question\s*\d+.*:`)

// choiceLabels are the recognized option prefixes, in order.
var choiceLabels = []string{"A)", "B)", "C)", "D)"}

// ParseQuiz parses generator free text into a Quiz using a line-oriented
// grammar. The parse is deliberately lenient: a question block missing
// either its prompt or its correct answer is dropped silently, so a quiz
// may end up with fewer questions than requested, or none at all, when
// the generator's output is malformed. Callers must not assume a minimum
// question count.
func ParseQuiz(responseText, userInput string) *Quiz {
	lines := strings.Split(strings.TrimSpace(responseText), "\n")

	title := "Generated Quiz"
	description := ""
	for _, line := range lines {
		if after, ok := cutLabel(line, "Title:"); ok {
			title = after
		} else if after, ok := cutLabel(line, "Description:"); ok {
			description = after
		}
	}

	q := &Quiz{
		ID:          types.NewID(),
		Title:       title,
		Description: description,
		Questions:   []Question{},
		Metadata: map[string]any{
			"created_at": time.Now().Format(time.RFC3339),
			"source":     "llm_generation",
			"user_input": userInput,
		},
	}

	var block []string
	inBlock := false
	flush := func() {
		if !inBlock || len(block) == 0 {
			return
		}
		if question, ok := parseQuestionLines(block); ok {
			q.AddQuestion(question)
		}
	}

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if questionStartRe.MatchString(line) {
			flush()
			block = []string{line}
			inBlock = true
		} else if inBlock && line != "" {
			block = append(block, line)
		}
	}
	flush()

	return q
}

// ParseQuestion parses generator free text holding a single question. It
// returns false when the text yields no valid question.
func ParseQuestion(responseText string) (Question, bool) {
	var lines []string
	for _, raw := range strings.Split(strings.TrimSpace(responseText), "\n") {
		if line := strings.TrimSpace(raw); line != "" {
			lines = append(lines, line)
		}
	}
	return parseQuestionLines(lines)
}

// parseQuestionLines extracts a question from a block of trimmed lines.
// A block missing prompt text or a correct answer yields ok=false.
func parseQuestionLines(lines []string) (Question, bool) {
	var (
		prompt        string
		choices       []string
		correctAnswer string
		explanation   string
		difficulty    = DifficultyMedium
		kind          = KindMultipleChoice
	)

	for _, line := range lines {
		switch {
		case hasLabel(line, "Question:"):
			prompt, _ = cutLabel(line, "Question:")
		case hasLabel(line, "Type:"):
			if v, _ := cutLabel(line, "Type:"); QuestionKind(v).IsValid() {
				kind = QuestionKind(v)
			}
		case hasLabel(line, "Difficulty:"):
			if v, _ := cutLabel(line, "Difficulty:"); Difficulty(strings.ToLower(v)).IsValid() {
				difficulty = Difficulty(strings.ToLower(v))
			}
		case hasLabel(line, "Correct Answer:"):
			correctAnswer, _ = cutLabel(line, "Correct Answer:")
		case hasLabel(line, "Explanation:"):
			explanation, _ = cutLabel(line, "Explanation:")
		default:
			for _, label := range choiceLabels {
				if strings.HasPrefix(line, label) {
					choices = append(choices, strings.TrimSpace(line[len(label):]))
					break
				}
			}
		}
	}

	// Blocks may carry the prompt on the "Question N:" line itself when
	// the generator skips the separate "Question:" label.
	if prompt == "" && len(lines) > 0 && questionStartRe.MatchString(lines[0]) {
		if idx := strings.Index(lines[0], ":"); idx >= 0 {
			prompt = strings.TrimSpace(lines[0][idx+1:])
		}
	}

	if prompt == "" || correctAnswer == "" {
		return Question{}, false
	}

	return Question{
		ID:            types.NewID(),
		Prompt:        prompt,
		Kind:          kind,
		Choices:       choices,
		CorrectAnswer: correctAnswer,
		Explanation:   explanation,
		Difficulty:    difficulty,
	}, true
}

func hasLabel(line, label string) bool {
	return strings.HasPrefix(line, label)
}

func cutLabel(line, label string) (string, bool) {
	if !strings.HasPrefix(line, label) {
		return "", false
	}
	return strings.TrimSpace(line[len(label):]), true
}
