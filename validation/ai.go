package validation

import (
	"github.com/google/uuid"
	"github.com/priyanshu14077/NeuronPress/models"
)

type AIGenerateInput struct {
	Type           models.GenerationType `json:"type" validate:"required,oneof=OUTLINE CONTENT TITLE EXCERPT SEO_KEYWORDS IMPROVEMENT"`
	Prompt         string                `json:"prompt" validate:"required,max=2000"`
	Context        string                `json:"context,omitempty"`
	Tone           string                `json:"tone,omitempty" validate:"oneof=professional casual friendly authoritative conversational"`
	TargetAudience string                `json:"targetAudience,omitempty"`
	Keywords       []string              `json:"keywords,omitempty" validate:"max=10"`
	PostID         *uuid.UUID            `json:"postId,omitempty"`
}

func (in *AIGenerateInput) applyDefaults() {
	if in.Tone == "" {
		in.Tone = "professional"
	}
}

type AIImproveContentInput struct {
	Content         string `json:"content" validate:"required"`
	ImprovementType string `json:"improvementType" validate:"required,oneof=grammar seo readability engagement structure"`
	Instructions    string `json:"instructions,omitempty"`
}

func (in *AIImproveContentInput) applyDefaults() {}

type AIGenerateTitleInput struct {
	Content   string   `json:"content" validate:"required"`
	Keywords  []string `json:"keywords,omitempty" validate:"max=5"`
	Tone      string   `json:"tone,omitempty" validate:"oneof=professional casual clickbait informative question"`
	MaxLength int      `json:"maxLength,omitempty" validate:"min=10,max=100"`
}

func (in *AIGenerateTitleInput) applyDefaults() {
	if in.Tone == "" {
		in.Tone = "professional"
	}
	if in.MaxLength == 0 {
		in.MaxLength = 60
	}
}

type AIGenerateOutlineInput struct {
	Topic          string `json:"topic" validate:"required"`
	TargetAudience string `json:"targetAudience,omitempty"`
	Tone           string `json:"tone,omitempty" validate:"oneof=professional casual friendly authoritative"`
	Depth          string `json:"depth,omitempty" validate:"oneof=basic intermediate advanced"`
	Sections       int    `json:"sections,omitempty" validate:"min=3,max=10"`
}

func (in *AIGenerateOutlineInput) applyDefaults() {
	if in.Tone == "" {
		in.Tone = "professional"
	}
	if in.Depth == "" {
		in.Depth = "intermediate"
	}
	if in.Sections == 0 {
		in.Sections = 5
	}
}

type AIGenerateExcerptInput struct {
	Title     string `json:"title" validate:"required"`
	Content   string `json:"content" validate:"required"`
	MaxLength int    `json:"maxLength,omitempty" validate:"min=50,max=300"`
}

func (in *AIGenerateExcerptInput) applyDefaults() {
	if in.MaxLength == 0 {
		in.MaxLength = 150
	}
}

type AIGenerateKeywordsInput struct {
	Title          string `json:"title" validate:"required"`
	Content        string `json:"content" validate:"required"`
	Industry       string `json:"industry,omitempty"`
	TargetAudience string `json:"targetAudience,omitempty"`
	MaxKeywords    int    `json:"maxKeywords,omitempty" validate:"min=1,max=20"`
}

func (in *AIGenerateKeywordsInput) applyDefaults() {
	if in.MaxKeywords == 0 {
		in.MaxKeywords = 10
	}
}

type GenerationHistoryInput struct {
	Limit int `json:"limit,omitempty" validate:"min=1,max=100"`
}

func (in *GenerationHistoryInput) applyDefaults() {
	if in.Limit == 0 {
		in.Limit = 10
	}
}
