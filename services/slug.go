package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/priyanshu14077/NeuronPress/errs"
)

const (
	DefaultSlugMaxAttempts = 100
	randomSlugAttempts     = 3
)

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9 -]`)
	whitespace   = regexp.MustCompile(`\s+`)
	hyphenRuns   = regexp.MustCompile(`-+`)
)

// Slugify lowercases title and keeps only [a-z0-9] words joined by single hyphens.
// Characters outside ASCII letters and digits are dropped, not transliterated.
func Slugify(title string) string {
	slug := strings.ToLower(title)
	slug = nonSlugChars.ReplaceAllString(slug, "")
	slug = whitespace.ReplaceAllString(slug, "-")
	slug = hyphenRuns.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

type slugChecker interface {
	SlugExists(ctx context.Context, slug string) (bool, error)
}

// uniqueSlug checks base, base-1, ... base-(maxAttempts-1) one at a time, then a few
// random suffixes before giving up.
func uniqueSlug(ctx context.Context, store slugChecker, base string, maxAttempts int) (string, error) {
	if maxAttempts <= 0 {
		maxAttempts = DefaultSlugMaxAttempts
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		candidate := base
		if attempt > 0 {
			candidate = fmt.Sprintf("%s-%d", base, attempt)
		}
		taken, err := store.SlugExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}

	for i := 0; i < randomSlugAttempts; i++ {
		candidate := base + "-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
		taken, err := store.SlugExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}

	return "", errs.NewSlugExhaustedError(base, maxAttempts+randomSlugAttempts)
}
