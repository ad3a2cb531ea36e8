package services

import (
	"fmt"
	"strings"

	"github.com/priyanshu14077/NeuronPress/models"
	"github.com/priyanshu14077/NeuronPress/validation"
)

const (
	titleSystemPrompt    = "You are an expert copywriter and SEO specialist."
	outlineSystemPrompt  = "You are an expert content strategist. Return only valid JSON."
	excerptSystemPrompt  = "You are an expert copywriter specializing in compelling excerpts."
	keywordsSystemPrompt = "You are an SEO expert specializing in keyword research."
	improveSystemPrompt  = "You are an expert content editor and SEO specialist."
)

var contentSystemSuffix = map[models.GenerationType]string{
	models.GenerationOutline:     " Create detailed, well-structured outlines for blog posts.",
	models.GenerationContent:     " Write comprehensive, engaging blog content that provides real value.",
	models.GenerationTitle:       " Create compelling, SEO-friendly titles that drive clicks.",
	models.GenerationExcerpt:     " Write compelling excerpts that hook readers immediately.",
	models.GenerationSEOKeywords: " You are also an SEO expert. Generate relevant, high-impact keywords.",
	models.GenerationImprovement: " You are also an editor. Improve content while maintaining its voice.",
}

func contentSystemPrompt(kind models.GenerationType, tone string) string {
	return fmt.Sprintf("You are an expert content creator and copywriter. Write in a %s tone.", tone) + contentSystemSuffix[kind]
}

func contentUserPrompt(in *validation.AIGenerateInput) string {
	var b strings.Builder
	b.WriteString(in.Prompt + "\n\n")
	if in.Context != "" {
		b.WriteString("Context: " + in.Context + "\n\n")
	}
	if in.TargetAudience != "" {
		b.WriteString("Target audience: " + in.TargetAudience + "\n\n")
	}
	if len(in.Keywords) > 0 {
		b.WriteString("Keywords to include: " + strings.Join(in.Keywords, ", ") + "\n\n")
	}
	return b.String()
}

func titleUserPrompt(in *validation.AIGenerateTitleInput) string {
	keywords := strings.Join(in.Keywords, ", ")
	if keywords == "" {
		keywords = "N/A"
	}
	return fmt.Sprintf(`
Generate 5 engaging blog post titles based on this content. 

Content preview: %s...

Requirements:
- Tone: %s
- Maximum length: %d characters
- Include these keywords if provided: %s
- Make them SEO-friendly and clickable

Return only the titles, one per line.
`, preview(in.Content, 500), in.Tone, in.MaxLength, keywords)
}

func outlineUserPrompt(in *validation.AIGenerateOutlineInput) string {
	return fmt.Sprintf(`
Create a detailed blog post outline for the topic: "%s"

Requirements:
- Target audience: %s
- Tone: %s
- Depth level: %s
- Number of main sections: %d

Return a JSON object with:
- title: A compelling blog post title
- sections: Array of objects with "heading" and "subpoints" (3-5 bullet points each)

Make it comprehensive and engaging.
`, in.Topic, orDefault(in.TargetAudience, "General audience"), in.Tone, in.Depth, in.Sections)
}

func excerptUserPrompt(in *validation.AIGenerateExcerptInput) string {
	return fmt.Sprintf(`
Write a compelling excerpt for this blog post:

Title: %s
Content preview: %s...

Requirements:
- Maximum %d characters
- Hook the reader immediately
- Include the main benefit or value proposition
- Make it SEO-friendly

Return only the excerpt text.
`, in.Title, preview(in.Content, 800), in.MaxLength)
}

func keywordsUserPrompt(in *validation.AIGenerateKeywordsInput) string {
	return fmt.Sprintf(`
Generate SEO keywords for this blog post:

Title: %s
Content preview: %s...
Industry: %s
Target audience: %s

Requirements:
- Maximum %d keywords
- Mix of short-tail and long-tail keywords
- Focus on search intent and relevance
- Include primary and secondary keywords

Return only the keywords as a comma-separated list.
`, in.Title, preview(in.Content, 1000), orDefault(in.Industry, "General"),
		orDefault(in.TargetAudience, "General audience"), in.MaxKeywords)
}

func improveUserPrompt(in *validation.AIImproveContentInput) string {
	instructions := ""
	if in.Instructions != "" {
		instructions = "Additional instructions: " + in.Instructions
	}
	return fmt.Sprintf(`
Improve this content for %s:

%s

%s

Requirements based on improvement type:
- grammar: Fix grammar, spelling, and punctuation errors
- seo: Optimize for search engines while maintaining readability
- readability: Improve clarity, flow, and sentence structure
- engagement: Make it more engaging and compelling
- structure: Better organize and format the content

Return the improved content only.
`, in.ImprovementType, in.Content, instructions)
}

// preview returns at most n runes of s.
func preview(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// splitLines keeps the non-blank lines of a reply, trimmed.
func splitLines(text string) []string {
	lines := []string{}
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// splitKeywords splits a comma separated reply, keeping order and duplicates.
func splitKeywords(text string) []string {
	keywords := []string{}
	for _, keyword := range strings.Split(text, ",") {
		if keyword = strings.TrimSpace(keyword); keyword != "" {
			keywords = append(keywords, keyword)
		}
	}
	return keywords
}
