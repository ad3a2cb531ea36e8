package services

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"testing"

	"github.com/priyanshu14077/NeuronPress/errs"
	"github.com/priyanshu14077/NeuronPress/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Hello, World!", "hello-world"},
		{"  Go   1.22  released ", "go-122-released"},
		{"Already-hyphenated--title", "already-hyphenated-title"},
		{"Café au lait", "caf-au-lait"},
		{"- leading and trailing -", "leading-and-trailing"},
		{"!!!", ""},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			got := Slugify(tt.title)
			assert.Equal(t, tt.want, got)
			if got != "" {
				assert.True(t, validation.SlugPattern.MatchString(got))
			}
		})
	}
}

func takenSlugs(taken ...string) *fakePostStore {
	set := map[string]bool{}
	for _, s := range taken {
		set[s] = true
	}
	return &fakePostStore{slugExistsFunc: func(_ context.Context, slug string) (bool, error) {
		return set[slug], nil
	}}
}

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		name  string
		taken []string
		want  string
	}{
		{"free", nil, "hello-world"},
		{"first suffix", []string{"hello-world"}, "hello-world-1"},
		{"next suffix", []string{"hello-world", "hello-world-1"}, "hello-world-2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newPostService(takenSlugs(tt.taken...))

			res := svc.GenerateSlug(context.Background(), &validation.SlugInput{Title: "Hello, World!"})

			require.True(t, res.Success, res.Error)
			assert.Equal(t, tt.want, res.Data)
		})
	}
}

func TestGenerateSlug_EmptyBaseIsValidationError(t *testing.T) {
	store := takenSlugs()
	svc, _, _ := newPostService(store)

	res := svc.GenerateSlug(context.Background(), &validation.SlugInput{Title: "???"})

	assert.True(t, errs.IsValidation(res.Err()))
	assert.Equal(t, "title", res.Fields[0].Field)
	assert.Empty(t, store.calls)
}

func TestUniqueSlug_FallsBackToRandomSuffix(t *testing.T) {
	store := &fakePostStore{slugExistsFunc: func(_ context.Context, slug string) (bool, error) {
		return slug == "busy" || regexp.MustCompile(`^busy-\d+$`).MatchString(slug), nil
	}}

	slug, err := uniqueSlug(context.Background(), store, "busy", 5)

	require.NoError(t, err)
	assert.Regexp(t, `^busy-[0-9a-f]{8}$`, slug)
	assert.Len(t, store.calls, 6)
}

func TestUniqueSlug_ChecksEachNumberedCandidateOnce(t *testing.T) {
	var checked []string
	store := &fakePostStore{slugExistsFunc: func(_ context.Context, slug string) (bool, error) {
		checked = append(checked, slug)
		return len(checked) <= 3, nil
	}}

	slug, err := uniqueSlug(context.Background(), store, "busy", 3)

	require.NoError(t, err)
	require.Len(t, checked, 4)
	assert.Equal(t, []string{"busy", "busy-1", "busy-2"}, checked[:3])
	assert.Regexp(t, `^busy-[0-9a-f]{8}$`, checked[3])
	assert.Equal(t, checked[3], slug)
	assert.NotContains(t, checked, "busy-3")
}

func TestUniqueSlug_Exhausted(t *testing.T) {
	store := &fakePostStore{slugExistsFunc: func(context.Context, string) (bool, error) { return true, nil }}

	_, err := uniqueSlug(context.Background(), store, "busy", 4)

	assert.True(t, errors.Is(err, errs.ErrSlugExhausted))
	assert.Equal(t, http.StatusConflict, errs.StatusOf(err))
	assert.Len(t, store.calls, 4+randomSlugAttempts)
}

func TestUniqueSlug_StoreError(t *testing.T) {
	boom := errs.NewDatabaseError("check", "slug", errors.New("connection reset"))
	store := &fakePostStore{slugExistsFunc: func(context.Context, string) (bool, error) { return false, boom }}

	_, err := uniqueSlug(context.Background(), store, "x", 3)

	assert.Equal(t, boom, err)
	assert.Len(t, store.calls, 1)
}
