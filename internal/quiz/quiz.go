// Package quiz defines the artifact data model produced by the generation
// node: quizzes and their questions, plus the free-text parser that turns
// generator output into structured objects.
package quiz

import (
	"encoding/json"
	"fmt"

	"github.com/Mr-XX23/quiz-agentic/internal/types"
)

// QuestionKind identifies the question format.
type QuestionKind string

const (
	KindMultipleChoice QuestionKind = "multiple_choice"
	KindTrueFalse      QuestionKind = "true_false"
	KindShortAnswer    QuestionKind = "short_answer"
	KindEssay          QuestionKind = "essay"
)

func (k QuestionKind) String() string { return string(k) }

// IsValid checks if the QuestionKind is a known value.
func (k QuestionKind) IsValid() bool {
	switch k {
	case KindMultipleChoice, KindTrueFalse, KindShortAnswer, KindEssay:
		return true
	default:
		return false
	}
}

// UnmarshalJSON validates the kind on decode.
func (k *QuestionKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	kind := QuestionKind(s)
	if !kind.IsValid() {
		return fmt.Errorf("invalid question kind: %s", s)
	}
	*k = kind
	return nil
}

// Difficulty grades a question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) String() string { return string(d) }

// IsValid checks if the Difficulty is a known value.
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	default:
		return false
	}
}

// Question is a single quiz item. For multiple-choice questions Choices is
// non-empty and CorrectAnswer should match one choice's label or text; the
// match is documented but deliberately not enforced, tolerating generator
// output that labels answers loosely.
type Question struct {
	ID            types.ID     `json:"id"`
	Prompt        string       `json:"question"`
	Kind          QuestionKind `json:"type"`
	Choices       []string     `json:"options,omitempty"`
	CorrectAnswer string       `json:"correct_answer"`
	Explanation   string       `json:"explanation,omitempty"`
	Difficulty    Difficulty   `json:"difficulty"`
	Category      string       `json:"category,omitempty"`
	Source        string       `json:"source,omitempty"`
}

// Clone returns a deep copy of the question.
func (q Question) Clone() Question {
	out := q
	if q.Choices != nil {
		out.Choices = make([]string, len(q.Choices))
		copy(out.Choices, q.Choices)
	}
	return out
}

// Quiz is the structured artifact produced by the generation node. A quiz
// is owned by the session turn that created it until it is copied into the
// session history; history entries are always deep copies.
type Quiz struct {
	ID          types.ID       `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Questions   []Question     `json:"questions"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// AddQuestion appends a question to the quiz.
func (q *Quiz) AddQuestion(question Question) {
	q.Questions = append(q.Questions, question)
}

// QuestionByID returns the question with the given id, or nil.
func (q *Quiz) QuestionByID(id types.ID) *Question {
	for i := range q.Questions {
		if q.Questions[i].ID == id {
			return &q.Questions[i]
		}
	}
	return nil
}

// Clone returns a deep structural copy. Mutating the original after cloning
// never affects the copy, which is what keeps history entries immutable.
func (q *Quiz) Clone() *Quiz {
	if q == nil {
		return nil
	}
	out := &Quiz{
		ID:          q.ID,
		Title:       q.Title,
		Description: q.Description,
	}
	if q.Questions != nil {
		out.Questions = make([]Question, 0, len(q.Questions))
		for _, question := range q.Questions {
			out.Questions = append(out.Questions, question.Clone())
		}
	}
	if q.Metadata != nil {
		out.Metadata = make(map[string]any, len(q.Metadata))
		for k, v := range q.Metadata {
			out.Metadata[k] = v
		}
	}
	return out
}
