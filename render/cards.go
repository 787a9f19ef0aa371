// Package render turns the recipe collection into cards: an HTML page for the
// browser and a plain listing for the terminal.
package render

import (
	"encoding/json"

	"eTEats_web/models"
)

// Card is one visual element. Recipe is the record exactly as loaded.
type Card struct {
	Recipe  models.Recipe
	Summary models.Summary
}

// Cards builds one card per recipe, in order. No filtering or sorting.
func Cards(recipes models.Recipes) []Card {
	cards := make([]Card, 0, len(recipes))
	for _, recipe := range recipes {
		cards = append(cards, Card{Recipe: recipe, Summary: recipe.Summary()})
	}
	return cards
}

// Data returns the record serialized for the card's data attribute.
func (c Card) Data() string {
	raw, err := json.Marshal(c.Recipe)
	if err != nil {
		return "{}"
	}
	return string(raw)
}
