package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/priyanshu14077/NeuronPress/errs"
	"github.com/priyanshu14077/NeuronPress/llm"
	"github.com/priyanshu14077/NeuronPress/models"
	"github.com/priyanshu14077/NeuronPress/validation"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const DefaultCostPerToken = 0.00003

type Outline struct {
	Title    string           `json:"title"`
	Sections []OutlineSection `json:"sections"`
}

type OutlineSection struct {
	Heading   string   `json:"heading"`
	Subpoints []string `json:"subpoints"`
}

type AIServiceConfig struct {
	// CostPerToken prices a completion by its total token count.
	CostPerToken float64
	// RecordAll also records titles, excerpts and keywords in the history.
	RecordAll bool
}

// AIService runs the generation flow: validate, complete, shape the reply and,
// for content, outline and improvement, append a history record.
type AIService struct {
	completer    Completer
	history      GenerationStore
	costPerToken float64
	recordAll    bool
	logger       zerolog.Logger
}

func NewAIService(completer Completer, history GenerationStore, cfg AIServiceConfig) *AIService {
	if cfg.CostPerToken <= 0 {
		cfg.CostPerToken = DefaultCostPerToken
	}
	return &AIService{
		completer:    completer,
		history:      history,
		costPerToken: cfg.CostPerToken,
		recordAll:    cfg.RecordAll,
		logger:       log.With().Str("component", "aiService").Logger(),
	}
}

func (s *AIService) GenerateContent(ctx context.Context, p Principal, in *validation.AIGenerateInput) Result[string] {
	const fallback = "Failed to generate content"

	if err := s.precheck(p, in); err != nil {
		return Fail[string](err, fallback)
	}

	completion, err := s.completer.Complete(ctx, llm.Request{
		System:      contentSystemPrompt(in.Type, in.Tone),
		User:        contentUserPrompt(in),
		MaxTokens:   2000,
		Temperature: 0.7,
	})
	if err != nil {
		logFailure(s.logger, "generateContent", err)
		return Fail[string](err, fallback)
	}

	if err := s.record(ctx, p, in.Type, in.Prompt, completion.Text, completion.Usage, in.PostID); err != nil {
		return historyFailure[string](s.logger, "generateContent", "Content", err)
	}
	return ok(completion.Text)
}

func (s *AIService) GenerateTitles(ctx context.Context, p Principal, in *validation.AIGenerateTitleInput) Result[[]string] {
	const fallback = "Failed to generate titles"

	if err := s.precheck(p, in); err != nil {
		return Fail[[]string](err, fallback)
	}

	prompt := titleUserPrompt(in)
	completion, err := s.completer.Complete(ctx, llm.Request{
		System:      titleSystemPrompt,
		User:        prompt,
		MaxTokens:   300,
		Temperature: 0.8,
	})
	if err != nil {
		logFailure(s.logger, "generateTitles", err)
		return Fail[[]string](err, fallback)
	}

	if s.recordAll {
		if err := s.record(ctx, p, models.GenerationTitle, strings.TrimSpace(prompt), completion.Text, completion.Usage, nil); err != nil {
			return historyFailure[[]string](s.logger, "generateTitles", "Titles", err)
		}
	}
	return ok(splitLines(completion.Text))
}

// GenerateOutline records the generation only once the reply parses as an outline.
func (s *AIService) GenerateOutline(ctx context.Context, p Principal, in *validation.AIGenerateOutlineInput) Result[*Outline] {
	const fallback = "Failed to generate outline"

	if err := s.precheck(p, in); err != nil {
		return Fail[*Outline](err, fallback)
	}

	completion, err := s.completer.Complete(ctx, llm.Request{
		System:      outlineSystemPrompt,
		User:        outlineUserPrompt(in),
		MaxTokens:   1000,
		Temperature: 0.7,
	})
	if err != nil {
		logFailure(s.logger, "generateOutline", err)
		return Fail[*Outline](err, fallback)
	}

	outline, err := parseOutline(completion.Text)
	if err != nil {
		s.logger.Warn().Err(err).Str("operation", "generateOutline").Msg("completion is not a valid outline")
		return Fail[*Outline](errs.NewInvalidFormatError("outline", err), fallback)
	}

	encoded, err := json.Marshal(outline)
	if err != nil {
		return Fail[*Outline](errs.NewInternalErrorWithCause("could not encode outline", err), fallback)
	}
	prompt := fmt.Sprintf("Topic: %s, Audience: %s, Tone: %s", in.Topic, orDefault(in.TargetAudience, "General"), in.Tone)
	if err := s.record(ctx, p, models.GenerationOutline, prompt, string(encoded), completion.Usage, nil); err != nil {
		return historyFailure[*Outline](s.logger, "generateOutline", "Outline", err)
	}
	return ok(outline)
}

func (s *AIService) GenerateExcerpt(ctx context.Context, p Principal, in *validation.AIGenerateExcerptInput) Result[string] {
	const fallback = "Failed to generate excerpt"

	if err := s.precheck(p, in); err != nil {
		return Fail[string](err, fallback)
	}

	prompt := excerptUserPrompt(in)
	completion, err := s.completer.Complete(ctx, llm.Request{
		System:      excerptSystemPrompt,
		User:        prompt,
		MaxTokens:   200,
		Temperature: 0.7,
	})
	if err != nil {
		logFailure(s.logger, "generateExcerpt", err)
		return Fail[string](err, fallback)
	}

	excerpt := strings.TrimSpace(completion.Text)
	if s.recordAll {
		if err := s.record(ctx, p, models.GenerationExcerpt, strings.TrimSpace(prompt), excerpt, completion.Usage, nil); err != nil {
			return historyFailure[string](s.logger, "generateExcerpt", "Excerpt", err)
		}
	}
	return ok(excerpt)
}

func (s *AIService) GenerateKeywords(ctx context.Context, p Principal, in *validation.AIGenerateKeywordsInput) Result[[]string] {
	const fallback = "Failed to generate keywords"

	if err := s.precheck(p, in); err != nil {
		return Fail[[]string](err, fallback)
	}

	prompt := keywordsUserPrompt(in)
	completion, err := s.completer.Complete(ctx, llm.Request{
		System:      keywordsSystemPrompt,
		User:        prompt,
		MaxTokens:   200,
		Temperature: 0.5,
	})
	if err != nil {
		logFailure(s.logger, "generateKeywords", err)
		return Fail[[]string](err, fallback)
	}

	if s.recordAll {
		if err := s.record(ctx, p, models.GenerationSEOKeywords, strings.TrimSpace(prompt), completion.Text, completion.Usage, nil); err != nil {
			return historyFailure[[]string](s.logger, "generateKeywords", "Keywords", err)
		}
	}
	return ok(splitKeywords(completion.Text))
}

// ImproveContent returns a full replacement of the submitted content.
func (s *AIService) ImproveContent(ctx context.Context, p Principal, in *validation.AIImproveContentInput) Result[string] {
	const fallback = "Failed to improve content"

	if err := s.precheck(p, in); err != nil {
		return Fail[string](err, fallback)
	}

	completion, err := s.completer.Complete(ctx, llm.Request{
		System:      improveSystemPrompt,
		User:        improveUserPrompt(in),
		MaxTokens:   2000,
		Temperature: 0.3,
	})
	if err != nil {
		logFailure(s.logger, "improveContent", err)
		return Fail[string](err, fallback)
	}

	improved := strings.TrimSpace(completion.Text)
	prompt := fmt.Sprintf("Improve for: %s. Instructions: %s", in.ImprovementType, orDefault(in.Instructions, "None"))
	if err := s.record(ctx, p, models.GenerationImprovement, prompt, improved, completion.Usage, nil); err != nil {
		return historyFailure[string](s.logger, "improveContent", "Improved content", err)
	}
	return ok(improved)
}

// History lists the principal's generations, newest first.
func (s *AIService) History(ctx context.Context, p Principal, in *validation.GenerationHistoryInput) Result[[]models.AIGeneration] {
	const fallback = "Failed to fetch AI generations"

	if err := s.precheck(p, in); err != nil {
		return Fail[[]models.AIGeneration](err, fallback)
	}

	generations, err := s.history.ListByUser(ctx, p.ID, in.Limit)
	if err != nil {
		logFailure(s.logger, "listGenerations", err)
		return Fail[[]models.AIGeneration](err, fallback)
	}
	if generations == nil {
		generations = []models.AIGeneration{}
	}
	return ok(generations)
}

func (s *AIService) precheck(p Principal, in validation.Input) error {
	if err := validation.Validate(in); err != nil {
		return err
	}
	return requirePrincipal(p)
}

func (s *AIService) record(ctx context.Context, p Principal, kind models.GenerationType, prompt, response string, usage *llm.Usage, postID *uuid.UUID) error {
	generation := &models.AIGeneration{
		Type:     kind,
		Prompt:   prompt,
		Response: response,
		Model:    s.completer.ModelName(),
		UserID:   p.ID,
		PostID:   postID,
	}
	if usage != nil {
		tokens := usage.TotalTokens
		generation.Tokens = &tokens
		if tokens > 0 {
			cost := float64(tokens) * s.costPerToken
			generation.Cost = &cost
		}
	}
	return s.history.Create(ctx, generation)
}

// historyFailure reports output that was generated but could not be recorded.
func historyFailure[T any](logger zerolog.Logger, operation, kind string, err error) Result[T] {
	logger.Error().Err(err).Str("operation", operation).Msg("failed to record AI generation")
	return Fail[T](errs.NewHistoryNotRecordedError(kind, err), "")
}

// parseOutline accepts the JSON object alone or wrapped in a markdown code fence.
func parseOutline(text string) (*Outline, error) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	}

	var outline Outline
	if err := json.Unmarshal([]byte(text), &outline); err != nil {
		return nil, err
	}
	if outline.Title == "" && len(outline.Sections) == 0 {
		return nil, fmt.Errorf("outline has neither a title nor sections")
	}
	if outline.Sections == nil {
		outline.Sections = []OutlineSection{}
	}
	return &outline, nil
}
