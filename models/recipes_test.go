package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jsonLD = `{
  "@context": "https://schema.org",
  "@graph": [
    {"@type": "WebPage", "name": "not me"},
    {
      "@type": ["Recipe"],
      "name": "Mom's Cornbread Stuffing",
      "image": [{"url": "https://example.com/stuffing.jpg"}],
      "author": [{"@type": "Person", "name": "Ann"}, {"name": "Bo"}],
      "url": "https://example.com/stuffing",
      "aggregateRating": {"ratingValue": "4.5", "ratingCount": 1234},
      "totalTime": "PT1H30M",
      "recipeIngredient": ["bread", "butter", "onion"]
    }
  ]
}`

func decode(t *testing.T, s string) Recipe {
	t.Helper()
	var r Recipe
	require.NoError(t, json.Unmarshal([]byte(s), &r))
	return r
}

func TestSummary(t *testing.T) {
	tests := []struct {
		name string
		data string
		want Summary
	}{
		{
			name: "json-ld graph",
			data: jsonLD,
			want: Summary{
				Name:        "Mom's Cornbread Stuffing",
				ImageURL:    "https://example.com/stuffing.jpg",
				Author:      "Ann, Bo",
				URL:         "https://example.com/stuffing",
				Rating:      4.5,
				RatingCount: 1234,
				TotalTime:   "1 hr 30 min",
				Ingredients: 3,
			},
		},
		{
			name: "flat object",
			data: `{"name": "Turkey", "image": "t.png", "author": "Cal", "totalTime": "PT45M"}`,
			want: Summary{Name: "Turkey", ImageURL: "t.png", Author: "Cal", TotalTime: "45 min"},
		},
		{
			name: "empty object",
			data: `{}`,
			want: Summary{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, decode(t, tt.data).Summary())
		})
	}
}

func TestSummaryDoesNotMutate(t *testing.T) {
	r := decode(t, jsonLD)
	before, err := json.Marshal(r)
	require.NoError(t, err)

	_ = r.Summary()

	after, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after))
}

func TestFormatDuration(t *testing.T) {
	tests := map[string]string{
		"PT1H30M": "1 hr 30 min",
		"PT20M":   "20 min",
		"P2DT3H":  "2 days 3 hr",
		"PT0H5M":  "5 min",
		"soon":    "soon",
		"":        "",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatDuration(in), "input %q", in)
	}
}

func TestRecipesRoundTrip(t *testing.T) {
	orig := Recipes{decode(t, jsonLD), decode(t, `{"name": "Pie", "servings": 8}`)}

	raw, err := json.Marshal(orig)
	require.NoError(t, err)

	var got Recipes
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, orig, got)
}
