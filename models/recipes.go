package models

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Recipe is an opaque record. Fields are kept exactly as they were decoded
// and are never modified after construction.
type Recipe map[string]interface{}

// Recipes is the ordered collection of every recipe, in source order.
type Recipes []Recipe

// Summary holds the fields a card displays. Missing fields are zero values.
type Summary struct {
	Name        string
	ImageURL    string
	Author      string
	URL         string
	Rating      float64
	RatingCount int64
	TotalTime   string
	Ingredients int
}

// Summary extracts display fields. It understands both flat objects and
// schema.org JSON-LD documents where the recipe lives inside "@graph".
func (r Recipe) Summary() Summary {
	raw, err := json.Marshal(r)
	if err != nil {
		return Summary{}
	}
	node := recipeNode(gjson.ParseBytes(raw))

	return Summary{
		Name:        node.Get("name").String(),
		ImageURL:    firstURL(node.Get("image")),
		Author:      authorName(node.Get("author")),
		URL:         node.Get("url").String(),
		Rating:      node.Get("aggregateRating.ratingValue").Float(),
		RatingCount: node.Get("aggregateRating.ratingCount").Int(),
		TotalTime:   FormatDuration(node.Get("totalTime").String()),
		Ingredients: len(node.Get("recipeIngredient").Array()),
	}
}

// recipeNode returns the "@graph" entry typed Recipe, or the document itself.
func recipeNode(doc gjson.Result) gjson.Result {
	graph := member(doc, "@graph")
	if !graph.IsArray() {
		return doc
	}
	for _, item := range graph.Array() {
		if isRecipe(member(item, "@type")) {
			return item
		}
	}
	return doc
}

// member looks a key up literally, so keys starting with '@' are not read as
// gjson modifiers.
func member(obj gjson.Result, key string) gjson.Result {
	var found gjson.Result
	obj.ForEach(func(k, v gjson.Result) bool {
		if k.String() == key {
			found = v
			return false
		}
		return true
	})
	return found
}

func isRecipe(typ gjson.Result) bool {
	if typ.IsArray() {
		for _, t := range typ.Array() {
			if t.String() == "Recipe" {
				return true
			}
		}
		return false
	}
	return typ.String() == "Recipe"
}

func firstURL(v gjson.Result) string {
	switch {
	case v.IsArray():
		for _, item := range v.Array() {
			if u := firstURL(item); u != "" {
				return u
			}
		}
		return ""
	case v.IsObject():
		return v.Get("url").String()
	default:
		return v.String()
	}
}

func authorName(v gjson.Result) string {
	switch {
	case v.IsArray():
		names := make([]string, 0, len(v.Array()))
		for _, item := range v.Array() {
			if n := authorName(item); n != "" {
				names = append(names, n)
			}
		}
		return strings.Join(names, ", ")
	case v.IsObject():
		return v.Get("name").String()
	default:
		return v.String()
	}
}

var isoDuration = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:\d+S)?)?$`)

// FormatDuration turns an ISO 8601 duration such as "PT1H30M" into
// "1 hr 30 min". Unparseable input is returned unchanged.
func FormatDuration(iso string) string {
	m := isoDuration.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(iso)))
	if m == nil {
		return iso
	}

	var parts []string
	for i, unit := range []string{"day", "hr", "min"} {
		if m[i+1] == "" {
			continue
		}
		n, err := strconv.Atoi(m[i+1])
		if err != nil || n == 0 {
			continue
		}
		if unit == "day" && n > 1 {
			unit = "days"
		}
		parts = append(parts, fmt.Sprintf("%d %s", n, unit))
	}
	return strings.Join(parts, " ")
}
