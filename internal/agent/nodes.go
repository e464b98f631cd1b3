package agent

import (
	"context"
	"strings"

	"github.com/Mr-XX23/quiz-agentic/internal/quiz"
	"github.com/Mr-XX23/quiz-agentic/internal/schema"
	"github.com/Mr-XX23/quiz-agentic/internal/session"
	"github.com/Mr-XX23/quiz-agentic/internal/types"
	"github.com/Mr-XX23/quiz-agentic/internal/workflow"
)

// handlers binds every workflow node to its implementation.
func (a *Agent) handlers() workflow.HandlerMap {
	return workflow.HandlerMap{
		workflow.NodeClassify:         a.classifyNode,
		workflow.NodeSearch:           a.searchNode,
		workflow.NodeExtract:          a.extractNode,
		workflow.NodeGenerateQuiz:     a.generateQuizNode,
		workflow.NodeGenerateQuestion: a.generateQuestionNode,
		workflow.NodeValidate:         a.validateNode,
		workflow.NodeA2A:              a.peerProtocolNode,
		workflow.NodeMCP:              a.toolProtocolNode,
		workflow.NodeFinalize:         a.finalizeNode,
	}
}

func (a *Agent) classifyNode(ctx context.Context, state *session.State) error {
	op := Classify(state.UserInput)
	state.SetOperation(op)
	a.logger.WithSession(state.SessionID).Debug(ctx, "classified instruction", "operation", op.String())
	return nil
}

func (a *Agent) searchNode(ctx context.Context, state *session.State) error {
	if a.searcher == nil {
		return types.NewError(types.SEARCH_FAILED, "search tool not configured")
	}

	query := ExtractSearchQuery(state.UserInput)
	state.SearchQuery = query

	results, err := a.searcher.Search(ctx, query, a.cfg.Search.MaxResults)
	if err != nil {
		return types.WrapError(types.SEARCH_FAILED, "search failed", err)
	}

	state.AppendSearchResults(results)
	state.AppendToolOutput("web_search", map[string]any{
		"query":   query,
		"results": len(results),
	})
	return nil
}

func (a *Agent) extractNode(ctx context.Context, state *session.State) error {
	if a.extractor == nil {
		return types.NewError(types.EXTRACTION_FAILED, "extraction tool not configured")
	}

	urls := ExtractURLs(state.UserInput)
	if len(urls) == 0 {
		return types.NewError(types.EXTRACTION_FAILED, "no URLs found in input")
	}

	items, err := a.extractor.Extract(ctx, urls, a.cfg.Extract.MaxContentLength)
	if err != nil {
		return types.WrapError(types.EXTRACTION_FAILED, "content extraction failed", err)
	}

	extracted := 0
	for _, item := range items {
		if item.Err == "" && item.Content != "" {
			state.AppendExtractedContent(item.Content)
			extracted++
		}
	}
	state.AppendToolOutput("content_extraction", map[string]any{
		"urls":      urls,
		"extracted": extracted,
	})
	return nil
}

func (a *Agent) generateQuizNode(ctx context.Context, state *session.State) error {
	prompt := quizPrompt(state.UserInput, a.gatherContext(state))

	response, err := a.generator.Generate(ctx, prompt)
	if err != nil {
		return types.WrapError(types.GENERATION_FAILED, "quiz generation failed", err)
	}

	q := quiz.ParseQuiz(response, state.UserInput)
	state.CurrentQuiz = q
	state.AppendToolOutput("quiz_generation", map[string]any{
		"input":         state.UserInput,
		"quiz_id":       q.ID.String(),
		"num_questions": len(q.Questions),
	})
	return nil
}

// gatherContext concatenates everything the session has researched so far
// for the generation prompt.
func (a *Agent) gatherContext(state *session.State) string {
	parts := make([]string, 0, len(state.SearchResults)+len(state.ExtractedContent))
	for _, result := range state.SearchResults {
		if result.Content != "" {
			parts = append(parts, result.Content)
		}
	}
	parts = append(parts, state.ExtractedContent...)
	return strings.Join(parts, "\n\n")
}

func (a *Agent) generateQuestionNode(ctx context.Context, state *session.State) error {
	response, err := a.generator.Generate(ctx, questionPrompt(state.UserInput))
	if err != nil {
		return types.WrapError(types.GENERATION_FAILED, "question generation failed", err)
	}

	question, ok := quiz.ParseQuestion(response)
	if !ok {
		return types.NewError(types.QUIZ_PARSE_FAILED, "failed to parse generated question")
	}

	state.AppendToolOutput("question_generation", map[string]any{
		"input":       state.UserInput,
		"question_id": question.ID.String(),
		"question":    question.Prompt,
		"type":        question.Kind.String(),
		"difficulty":  question.Difficulty.String(),
	})
	return nil
}

func (a *Agent) validateNode(ctx context.Context, state *session.State) error {
	current := state.CurrentQuiz
	if current == nil {
		return types.NewError(types.QUIZ_VALIDATION_FAILED, "no quiz to validate")
	}

	violations, err := schema.ValidateDocument(current, schema.SchemaQuiz)
	if err != nil {
		return types.WrapError(types.QUIZ_VALIDATION_FAILED, "validating quiz", err)
	}

	var problems []string
	if len(current.Questions) == 0 {
		problems = append(problems, "Quiz must have at least one question")
	}
	for _, v := range violations {
		problems = append(problems, v.Error())
	}
	if len(problems) > 0 {
		return types.NewError(types.QUIZ_VALIDATION_FAILED, strings.Join(problems, "; "))
	}

	state.AppendHistory(current)
	state.AppendToolOutput("quiz_validation", map[string]any{
		"quiz_id":       current.ID.String(),
		"valid":         true,
		"num_questions": len(current.Questions),
	})
	return nil
}

func (a *Agent) peerProtocolNode(ctx context.Context, state *session.State) error {
	if a.peers == nil || !a.cfg.A2A.Enabled {
		return types.NewError(types.PROTOCOL_DISABLED, "a2a protocol not enabled")
	}

	info := a.peers.Info()
	state.AppendToolOutput("a2a_handler", map[string]any{
		"protocol":  "a2a",
		"status":    "handled",
		"agent_id":  info.AgentID,
		"endpoints": info.Endpoints,
	})
	return nil
}

func (a *Agent) toolProtocolNode(ctx context.Context, state *session.State) error {
	if a.rpc == nil || !a.cfg.MCP.Enabled {
		return types.NewError(types.PROTOCOL_DISABLED, "mcp protocol not enabled")
	}

	info := a.rpc.Info()
	state.AppendToolOutput("mcp_handler", map[string]any{
		"protocol":  "mcp",
		"status":    "handled",
		"server_id": info.ServerID,
		"methods":   len(info.Methods),
	})
	return nil
}

func (a *Agent) finalizeNode(ctx context.Context, state *session.State) error {
	state.Finalize()
	return nil
}
