package agent

import (
	"context"
	"strings"

	"github.com/Mr-XX23/quiz-agentic/internal/protocol/mcp"
	"github.com/Mr-XX23/quiz-agentic/internal/quiz"
	"github.com/Mr-XX23/quiz-agentic/internal/schema"
	"github.com/Mr-XX23/quiz-agentic/internal/types"
)

// registerRPCMethods installs the quiz-domain JSON-RPC surface. Each
// method is registered together with its capability entry so the
// advertised catalogue always matches what is callable.
func (a *Agent) registerRPCMethods() {
	a.rpc.Register(mcp.Capability{
		Name:        "quiz/create",
		Description: "Generate a quiz about a topic",
		Parameters: schema.Object(map[string]*schema.Schema{
			"topic":      schema.String("Topic to generate the quiz about"),
			"difficulty": schema.String("Target difficulty").WithEnum("easy", "medium", "hard"),
		}, "topic"),
		Returns: schema.Object(map[string]*schema.Schema{
			"quiz_id": schema.String("Identifier of the generated quiz"),
		}, "quiz_id"),
	}, a.rpcQuizCreate)

	a.rpc.Register(mcp.Capability{
		Name:        "quiz/get",
		Description: "Retrieve a previously generated quiz by id",
		Parameters: schema.Object(map[string]*schema.Schema{
			"quiz_id": schema.String("Quiz identifier"),
		}, "quiz_id"),
	}, a.rpcQuizGet)

	a.rpc.Register(mcp.Capability{
		Name:        "quiz/list",
		Description: "List generated quizzes across all sessions",
		Parameters: schema.Object(map[string]*schema.Schema{
			"limit":  {Type: "integer", Description: "Maximum entries to return"},
			"offset": {Type: "integer", Description: "Entries to skip"},
		}),
	}, a.rpcQuizList)

	a.rpc.Register(mcp.Capability{
		Name:        "quiz/search",
		Description: "Search generated quizzes by title or description",
		Parameters: schema.Object(map[string]*schema.Schema{
			"query": schema.String("Search text"),
			"limit": {Type: "integer", Description: "Maximum entries to return"},
		}, "query"),
	}, a.rpcQuizSearch)

	a.rpc.Register(mcp.Capability{
		Name:        "question/generate",
		Description: "Generate standalone quiz questions about a topic",
		Parameters: schema.Object(map[string]*schema.Schema{
			"topic":      schema.String("Topic to generate questions about"),
			"difficulty": schema.String("Target difficulty").WithEnum("easy", "medium", "hard"),
		}, "topic"),
	}, a.rpcQuestionGenerate)

	a.rpc.Register(mcp.Capability{
		Name:        "question/validate",
		Description: "Validate the shape of a quiz question",
		Parameters: schema.Object(map[string]*schema.Schema{
			"question": {Type: "object", Description: "Question document to validate"},
		}, "question"),
	}, a.rpcQuestionValidate)

	a.rpc.Register(mcp.Capability{
		Name:        "content/extract",
		Description: "Extract readable text from web pages",
		Parameters: schema.Object(map[string]*schema.Schema{
			"urls":               schema.Array(schema.String("Page URL")),
			"max_content_length": {Type: "integer", Description: "Per-page content cap"},
		}, "urls"),
	}, a.rpcContentExtract)

	a.rpc.Register(mcp.Capability{
		Name:        "content/search",
		Description: "Search the web for quiz source material",
		Parameters: schema.Object(map[string]*schema.Schema{
			"query":       schema.String("Search query"),
			"max_results": {Type: "integer", Description: "Maximum hits to return"},
		}, "query"),
	}, a.rpcContentSearch)
}

func (a *Agent) rpcQuizCreate(ctx context.Context, params map[string]any) (map[string]any, error) {
	topic := stringParam(params, "topic", "")
	if topic == "" {
		return nil, types.NewError(types.QUIZ_VALIDATION_FAILED, "topic is required")
	}
	difficulty := stringParam(params, "difficulty", "medium")

	generated, err := a.generateQuizForTopic(ctx, topic, difficulty)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"quiz_id":       generated.ID.String(),
		"title":         generated.Title,
		"topic":         topic,
		"difficulty":    difficulty,
		"num_questions": len(generated.Questions),
		"status":        "created",
	}, nil
}

func (a *Agent) rpcQuizGet(ctx context.Context, params map[string]any) (map[string]any, error) {
	quizID := stringParam(params, "quiz_id", "")
	if quizID == "" {
		return nil, types.NewError(types.QUIZ_NOT_FOUND, "quiz_id is required")
	}

	found, ok := a.findQuiz(types.ID(quizID))
	if !ok {
		return nil, types.NewError(types.QUIZ_NOT_FOUND, "quiz not found: "+quizID)
	}
	return map[string]any{"quiz": found, "status": "found"}, nil
}

func (a *Agent) rpcQuizList(ctx context.Context, params map[string]any) (map[string]any, error) {
	limit := intParam(params, "limit", 10)
	offset := intParam(params, "offset", 0)

	all := a.allQuizzes()
	total := len(all)

	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	entries := make([]map[string]any, 0, end-offset)
	for _, q := range all[offset:end] {
		entries = append(entries, quizSummary(q))
	}
	return map[string]any{
		"quizzes": entries,
		"total":   total,
		"limit":   limit,
		"offset":  offset,
	}, nil
}

func (a *Agent) rpcQuizSearch(ctx context.Context, params map[string]any) (map[string]any, error) {
	query := stringParam(params, "query", "")
	if query == "" {
		return nil, types.NewError(types.QUIZ_NOT_FOUND, "query is required")
	}
	limit := intParam(params, "limit", 10)

	needle := strings.ToLower(query)
	matches := make([]map[string]any, 0, limit)
	for _, q := range a.allQuizzes() {
		if len(matches) >= limit {
			break
		}
		if strings.Contains(strings.ToLower(q.Title), needle) ||
			strings.Contains(strings.ToLower(q.Description), needle) {
			matches = append(matches, quizSummary(q))
		}
	}
	return map[string]any{
		"query":   query,
		"results": matches,
		"total":   len(matches),
		"limit":   limit,
	}, nil
}

func (a *Agent) rpcQuestionGenerate(ctx context.Context, params map[string]any) (map[string]any, error) {
	topic := stringParam(params, "topic", "")
	if topic == "" {
		return nil, types.NewError(types.QUIZ_VALIDATION_FAILED, "topic is required")
	}
	difficulty := stringParam(params, "difficulty", "medium")

	question, err := a.generateQuestionForTopic(ctx, topic, difficulty)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"question":        question,
		"topic":           topic,
		"difficulty":      difficulty,
		"generated_count": 1,
	}, nil
}

func (a *Agent) rpcQuestionValidate(ctx context.Context, params map[string]any) (map[string]any, error) {
	question, _ := params["question"].(map[string]any)

	var errs []string
	if text, _ := question["question"].(string); text == "" {
		errs = append(errs, "Question text is required")
	}
	if answer, _ := question["correct_answer"].(string); answer == "" {
		errs = append(errs, "Correct answer is required")
	}

	result := map[string]any{
		"valid":  len(errs) == 0,
		"errors": errs,
	}
	if id, ok := question["id"].(string); ok {
		result["question_id"] = id
	}
	return result, nil
}

func (a *Agent) rpcContentExtract(ctx context.Context, params map[string]any) (map[string]any, error) {
	if a.extractor == nil {
		return nil, types.NewError(types.EXTRACTION_FAILED, "extraction tool not configured")
	}

	urls := stringSliceParam(params, "urls")
	if len(urls) == 0 {
		return nil, types.NewError(types.EXTRACTION_FAILED, "urls is required")
	}
	maxLen := intParam(params, "max_content_length", a.cfg.Extract.MaxContentLength)

	items, err := a.extractor.Extract(ctx, urls, maxLen)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"extracted_content":  items,
		"total_urls":         len(urls),
		"max_content_length": maxLen,
	}, nil
}

func (a *Agent) rpcContentSearch(ctx context.Context, params map[string]any) (map[string]any, error) {
	if a.searcher == nil {
		return nil, types.NewError(types.SEARCH_FAILED, "search tool not configured")
	}

	query := stringParam(params, "query", "")
	if query == "" {
		return nil, types.NewError(types.SEARCH_FAILED, "query is required")
	}
	maxResults := intParam(params, "max_results", a.cfg.Search.MaxResults)

	results, err := a.searcher.Search(ctx, query, maxResults)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"query":   query,
		"results": results,
		"total":   len(results),
	}, nil
}

// findQuiz scans every session's history for the quiz id. Each session's
// turn lock is held while its history is read, so the scan never races an
// in-flight turn appending to it.
func (a *Agent) findQuiz(id types.ID) (*quiz.Quiz, bool) {
	for _, sessionID := range a.store.Sessions() {
		state, release := a.store.Acquire(sessionID)
		for i := range state.QuizHistory {
			if state.QuizHistory[i].ID == id {
				found := state.QuizHistory[i].Clone()
				release()
				return found, true
			}
		}
		release()
	}
	return nil, false
}

// allQuizzes returns clones of every quiz in every session's history,
// taking each session's turn lock for the duration of its read.
func (a *Agent) allQuizzes() []*quiz.Quiz {
	var all []*quiz.Quiz
	for _, sessionID := range a.store.Sessions() {
		state, release := a.store.Acquire(sessionID)
		for i := range state.QuizHistory {
			all = append(all, state.QuizHistory[i].Clone())
		}
		release()
	}
	return all
}

func quizSummary(q *quiz.Quiz) map[string]any {
	return map[string]any{
		"quiz_id":       q.ID.String(),
		"title":         q.Title,
		"description":   q.Description,
		"num_questions": len(q.Questions),
	}
}

// intParam reads an integer field from JSON-decoded params, where numbers
// arrive as float64.
func intParam(params map[string]any, key string, fallback int) int {
	switch v := params[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return fallback
	}
}

func stringSliceParam(params map[string]any, key string) []string {
	raw, ok := params[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
