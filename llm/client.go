// Package llm wraps a langchaingo chat model as a single-shot text completion client.
package llm

import (
	"context"
	"strings"

	"github.com/priyanshu14077/NeuronPress/config"
	"github.com/priyanshu14077/NeuronPress/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

const DefaultModel = "gpt-4-turbo-preview"

// Request is one system + user exchange with its sampling parameters.
type Request struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float64
}

// Usage holds token counters as reported by the service.
type Usage struct {
	PromptTokens     int `json:"promptTokens"`
	CompletionTokens int `json:"completionTokens"`
	TotalTokens      int `json:"totalTokens"`
}

type Completion struct {
	Text  string
	Usage *Usage // nil when the service did not report usage
}

// Client holds the credentials-bearing model. It is safe for concurrent use.
type Client struct {
	model     llms.Model
	modelName string
	logger    zerolog.Logger
}

// New builds an OpenAI backed client from OPENAI_API_KEY, OPENAI_MODEL and OPENAI_BASE_URL.
func New(cfg map[string]string) (*Client, error) {
	apiKey := config.GetString(cfg, "OPENAI_API_KEY", "")
	if apiKey == "" {
		return nil, errs.NewEnvironmentVariableError("OPENAI_API_KEY")
	}

	modelName := config.GetString(cfg, "OPENAI_MODEL", DefaultModel)
	opts := []openai.Option{
		openai.WithToken(apiKey),
		openai.WithModel(modelName),
	}
	if baseURL := config.GetString(cfg, "OPENAI_BASE_URL", ""); baseURL != "" {
		opts = append(opts, openai.WithBaseURL(baseURL))
	}

	model, err := openai.New(opts...)
	if err != nil {
		return nil, errs.NewConfigError("OPENAI_API_KEY", err)
	}

	return NewWithModel(model, modelName), nil
}

// NewWithModel wraps an already constructed model.
func NewWithModel(model llms.Model, modelName string) *Client {
	return &Client{
		model:     model,
		modelName: modelName,
		logger:    log.With().Str("component", "llm").Str("model", modelName).Logger(),
	}
}

// ModelName is the identifier recorded in generation history.
func (c *Client) ModelName() string {
	return c.modelName
}

// Complete issues exactly one completion call. Any failure, including an empty
// reply, is returned as a completion error. There is no retry.
func (c *Client) Complete(ctx context.Context, req Request) (Completion, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, req.System),
		llms.TextParts(llms.ChatMessageTypeHuman, req.User),
	}

	resp, err := c.model.GenerateContent(ctx, messages,
		llms.WithModel(c.modelName),
		llms.WithMaxTokens(req.MaxTokens),
		llms.WithTemperature(req.Temperature),
	)
	if err != nil {
		c.logger.Error().Err(err).Msg("completion call failed")
		return Completion{}, errs.NewCompletionError(err)
	}

	if resp == nil || len(resp.Choices) == 0 || resp.Choices[0] == nil || strings.TrimSpace(resp.Choices[0].Content) == "" {
		c.logger.Warn().Msg("completion returned no content")
		return Completion{}, errs.NewCompletionError(errs.ErrEmptyCompletion)
	}

	choice := resp.Choices[0]
	return Completion{
		Text:  choice.Content,
		Usage: usageFrom(choice.GenerationInfo),
	}, nil
}

// usageFrom reads the token counters providers put in GenerationInfo.
func usageFrom(info map[string]any) *Usage {
	total, ok := intValue(info["TotalTokens"])
	if !ok {
		return nil
	}
	prompt, _ := intValue(info["PromptTokens"])
	completion, _ := intValue(info["CompletionTokens"])
	return &Usage{
		PromptTokens:     prompt,
		CompletionTokens: completion,
		TotalTokens:      total,
	}
}

func intValue(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}
