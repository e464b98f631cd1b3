package agent

import (
	"context"
	"fmt"

	"github.com/Mr-XX23/quiz-agentic/internal/protocol/a2a"
	"github.com/Mr-XX23/quiz-agentic/internal/quiz"
	"github.com/Mr-XX23/quiz-agentic/internal/types"
)

// registerPeerHandlers installs the request kinds this agent can serve
// for its peers. Responses and control kinds are handled by the protocol
// itself.
func (a *Agent) registerPeerHandlers() {
	a.peers.RegisterHandler(a2a.KindQuizRequest, a.handlePeerQuizRequest)
	a.peers.RegisterHandler(a2a.KindQuestionRequest, a.handlePeerQuestionRequest)
}

// handlePeerQuizRequest generates a quiz for the requesting peer and
// answers with a quiz_response carrying the full quiz.
func (a *Agent) handlePeerQuizRequest(ctx context.Context, msg *a2a.Message) (*a2a.Message, error) {
	topic := stringParam(msg.Payload, "topic", "general")
	difficulty := stringParam(msg.Payload, "difficulty", "medium")

	generated, err := a.generateQuizForTopic(ctx, topic, difficulty)
	if err != nil {
		return nil, err
	}

	return msg.Reply(a.cfg.A2A.AgentID, a2a.KindQuizResponse, map[string]any{
		"quiz_id":       generated.ID.String(),
		"topic":         topic,
		"difficulty":    difficulty,
		"num_questions": len(generated.Questions),
		"quiz":          generated,
		"status":        "generated",
	}), nil
}

// handlePeerQuestionRequest generates a single question for the
// requesting peer.
func (a *Agent) handlePeerQuestionRequest(ctx context.Context, msg *a2a.Message) (*a2a.Message, error) {
	topic := stringParam(msg.Payload, "topic", "general")
	difficulty := stringParam(msg.Payload, "difficulty", "medium")

	question, err := a.generateQuestionForTopic(ctx, topic, difficulty)
	if err != nil {
		return nil, err
	}

	return msg.Reply(a.cfg.A2A.AgentID, a2a.KindQuestionResponse, map[string]any{
		"question_id":    question.ID.String(),
		"topic":          topic,
		"difficulty":     difficulty,
		"question":       question.Prompt,
		"options":        question.Choices,
		"correct_answer": question.CorrectAnswer,
	}), nil
}

// generateQuizForTopic runs the generation pipeline outside a session
// turn, for protocol-driven requests. The result is recorded in the
// default session's history so quiz/get and quiz/list can find it.
func (a *Agent) generateQuizForTopic(ctx context.Context, topic, difficulty string) (*quiz.Quiz, error) {
	input := fmt.Sprintf("create quiz about %s (difficulty: %s)", topic, difficulty)

	response, err := a.generator.Generate(ctx, quizPrompt(input, ""))
	if err != nil {
		return nil, types.WrapError(types.GENERATION_FAILED, "quiz generation failed", err)
	}

	generated := quiz.ParseQuiz(response, input)
	if len(generated.Questions) == 0 {
		return nil, types.NewError(types.QUIZ_PARSE_FAILED, "no parsable questions in generated quiz")
	}

	state, release := a.store.Acquire(a.cfg.Agent.DefaultSession)
	state.AppendHistory(generated)
	release()

	return generated, nil
}

// generateQuestionForTopic generates one question outside a session turn.
func (a *Agent) generateQuestionForTopic(ctx context.Context, topic, difficulty string) (quiz.Question, error) {
	input := fmt.Sprintf("generate a %s question about %s", difficulty, topic)

	response, err := a.generator.Generate(ctx, questionPrompt(input))
	if err != nil {
		return quiz.Question{}, types.WrapError(types.GENERATION_FAILED, "question generation failed", err)
	}

	question, ok := quiz.ParseQuestion(response)
	if !ok {
		return quiz.Question{}, types.NewError(types.QUIZ_PARSE_FAILED, "failed to parse generated question")
	}
	return question, nil
}

// stringParam reads a string field from a payload with a fallback.
func stringParam(payload map[string]any, key, fallback string) string {
	if value, ok := payload[key].(string); ok && value != "" {
		return value
	}
	return fallback
}
