package validation

// TaxonomyInput creates a category or a tag. An empty slug is derived from the name.
type TaxonomyInput struct {
	Name string `json:"name" validate:"required,max=100"`
	Slug string `json:"slug,omitempty" validate:"omitempty,slug"`
}

func (in *TaxonomyInput) applyDefaults() {}
