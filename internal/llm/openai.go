package llm

import (
	"context"
	"errors"
	"os"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/Mr-XX23/quiz-agentic/internal/types"
)

// OpenAI is a Generator backed by an OpenAI-compatible chat endpoint.
type OpenAI struct {
	client *openai.LLM
	config Config
}

// NewOpenAI creates an OpenAI generator. A missing API key is fatal at
// construction time rather than on first use.
func NewOpenAI(cfg Config) (*OpenAI, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return nil, types.NewError(types.CONFIG_MISSING_API_KEY,
			"openai api key not configured (set llm.api_key or OPENAI_API_KEY)")
	}

	opts := []openai.Option{
		openai.WithToken(apiKey),
	}
	if cfg.Model != "" {
		opts = append(opts, openai.WithModel(cfg.Model))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}

	client, err := openai.New(opts...)
	if err != nil {
		return nil, types.WrapError(types.CONFIG_LOAD_FAILED, "creating openai client", err)
	}

	return &OpenAI{client: client, config: cfg}, nil
}

// Name returns the provider name.
func (o *OpenAI) Name() string {
	return "openai"
}

// Generate sends the prompt as a single human message and returns the
// model's text. Each call gets its own timeout so a stalled provider fails
// the turn instead of hanging it.
func (o *OpenAI) Generate(ctx context.Context, prompt string) (string, error) {
	if o.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.config.Timeout)
		defer cancel()
	}

	callOpts := []llms.CallOption{
		llms.WithTemperature(o.config.Temperature),
	}

	out, err := llms.GenerateFromSinglePrompt(ctx, o.client, prompt, callOpts...)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", types.WrapError(types.COLLABORATOR_TIMEOUT, "llm generation timed out", err)
		}
		return "", types.WrapError(types.GENERATION_FAILED, "llm generation failed", err)
	}
	return out, nil
}
