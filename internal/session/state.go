// Package session holds the per-conversation state record threaded through
// the workflow, and a store that lets independent sessions be processed
// concurrently under a single-writer-per-turn discipline.
package session

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Mr-XX23/quiz-agentic/internal/quiz"
	"github.com/Mr-XX23/quiz-agentic/internal/tool"
)

// OperationType classifies a turn's instruction. Set exactly once per turn
// by the router and never re-evaluated mid-turn.
type OperationType string

const (
	OpSearch           OperationType = "search"
	OpExtract          OperationType = "extract"
	OpGenerateQuiz     OperationType = "generate_quiz"
	OpGenerateQuestion OperationType = "generate_question"
	OpValidate         OperationType = "validate"
	OpA2A              OperationType = "a2a"
	OpMCP              OperationType = "mcp"
	OpUnknown          OperationType = "unknown"
)

func (o OperationType) String() string { return string(o) }

// Status is the lifecycle state of a session.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusError      Status = "error"
)

func (s Status) String() string { return string(s) }

// legalTransitions encodes the only permitted status moves:
// idle -> processing (turn start), processing -> completed|error (turn
// end), completed|error -> idle (finalize / next turn start).
var legalTransitions = map[Status][]Status{
	StatusIdle:       {StatusProcessing},
	StatusProcessing: {StatusCompleted, StatusError},
	StatusCompleted:  {StatusIdle},
	StatusError:      {StatusIdle},
}

// CanTransition reports whether moving from s to next is legal.
func (s Status) CanTransition(next Status) bool {
	for _, allowed := range legalTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ToolOutput is one entry in the session's append-only audit trail.
type ToolOutput struct {
	Tool      string         `json:"tool"`
	Timestamp time.Time      `json:"timestamp"`
	Payload   map[string]any `json:"payload,omitempty"`
}

// State is the record for one conversation session. It is exclusively
// owned by the turn processing it; the Store enforces single-writer access.
// History and result fields accumulate by append across turns and are never
// truncated, reordered, or cleared mid-session.
type State struct {
	SessionID string `json:"session_id"`

	// UserInput is the triggering instruction, immutable once set for a turn.
	UserInput     string        `json:"user_input"`
	OperationType OperationType `json:"operation_type"`

	// CurrentQuiz is the most recently produced artifact, owned by the
	// turn that created it until appended to QuizHistory.
	CurrentQuiz *quiz.Quiz  `json:"current_quiz,omitempty"`
	QuizHistory []quiz.Quiz `json:"quiz_history"`

	SearchQuery      string              `json:"search_query,omitempty"`
	SearchResults    []tool.SearchResult `json:"search_results"`
	ExtractedContent []string            `json:"extracted_content"`
	ToolOutputs      []ToolOutput        `json:"tool_outputs"`

	Status       Status `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`

	CreatedAt   time.Time `json:"created_at"`
	LastUpdated time.Time `json:"last_updated"`
}

// New creates an idle session state.
func New(sessionID string) *State {
	now := time.Now()
	return &State{
		SessionID:        sessionID,
		QuizHistory:      []quiz.Quiz{},
		SearchResults:    []tool.SearchResult{},
		ExtractedContent: []string{},
		ToolOutputs:      []ToolOutput{},
		Status:           StatusIdle,
		CreatedAt:        now,
		LastUpdated:      now,
	}
}

// touch stamps LastUpdated; called on every mutation.
func (s *State) touch() {
	s.LastUpdated = time.Now()
}

// SetStatus transitions the session status, rejecting illegal moves.
// Transitioning to idle clears ErrorMessage; nothing else clears it.
func (s *State) SetStatus(next Status) error {
	if s.Status == next {
		return nil
	}
	if !s.Status.CanTransition(next) {
		return fmt.Errorf("illegal status transition %s -> %s", s.Status, next)
	}
	s.Status = next
	if next == StatusIdle {
		s.ErrorMessage = ""
	}
	s.touch()
	return nil
}

// BeginTurn starts a new turn: a sticky error from the previous turn is
// reset through idle (clearing the message), the new instruction is set,
// and the session moves to processing.
func (s *State) BeginTurn(userInput string) error {
	if s.Status == StatusError || s.Status == StatusCompleted {
		if err := s.SetStatus(StatusIdle); err != nil {
			return err
		}
	}
	if err := s.SetStatus(StatusProcessing); err != nil {
		return err
	}
	s.UserInput = userInput
	s.OperationType = ""
	s.CurrentQuiz = nil
	s.SearchQuery = ""
	s.touch()
	return nil
}

// Fail records a node-local failure: the message is stored and the session
// moves to error. Error status is sticky across finalize.
func (s *State) Fail(message string) {
	s.ErrorMessage = message
	if s.Status == StatusProcessing {
		s.Status = StatusError
	}
	s.touch()
}

// Finalize ends the turn: completed sessions return to idle, error is
// sticky and survives finalize so callers can observe it.
func (s *State) Finalize() {
	if s.Status == StatusProcessing {
		s.Status = StatusCompleted
	}
	if s.Status == StatusCompleted {
		s.Status = StatusIdle
	}
	s.touch()
}

// SetOperation records the turn's classified operation.
func (s *State) SetOperation(op OperationType) {
	s.OperationType = op
	s.touch()
}

// AppendSearchResults merges new hits into the accumulated result log.
func (s *State) AppendSearchResults(results []tool.SearchResult) {
	s.SearchResults = append(s.SearchResults, results...)
	s.touch()
}

// AppendExtractedContent merges newly extracted text into the session.
func (s *State) AppendExtractedContent(content ...string) {
	s.ExtractedContent = append(s.ExtractedContent, content...)
	s.touch()
}

// AppendToolOutput records an audit-trail entry.
func (s *State) AppendToolOutput(toolName string, payload map[string]any) {
	s.ToolOutputs = append(s.ToolOutputs, ToolOutput{
		Tool:      toolName,
		Timestamp: time.Now(),
		Payload:   payload,
	})
	s.touch()
}

// AppendHistory appends a deep copy of the quiz to the session history, so
// later mutation of the current artifact never rewrites history.
func (s *State) AppendHistory(q *quiz.Quiz) {
	if q == nil {
		return
	}
	s.QuizHistory = append(s.QuizHistory, *q.Clone())
	s.touch()
}

// MarshalIndent renders the state for CLI output.
func (s *State) MarshalIndent() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}
