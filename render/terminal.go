package render

import (
	"fmt"
	"io"
	"strings"

	"eTEats_web/models"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("208")).
			Padding(0, 1).
			Width(60)
	titleStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// Terminal writes one boxed card per recipe. Nothing is written for an
// empty collection.
func Terminal(w io.Writer, recipes models.Recipes) error {
	for _, card := range Cards(recipes) {
		if _, err := fmt.Fprintln(w, cardStyle.Render(terminalCard(card.Summary))); err != nil {
			return err
		}
	}
	return nil
}

func terminalCard(s models.Summary) string {
	name := s.Name
	if name == "" {
		name = "(untitled)"
	}
	lines := []string{titleStyle.Render(name)}
	if s.Author != "" {
		lines = append(lines, mutedStyle.Render(s.Author))
	}
	if s.RatingCount > 0 {
		lines = append(lines, fmt.Sprintf("%s %s (%s)", formatRating(s.Rating), Stars(s.Rating), humanize.Comma(s.RatingCount)))
	} else {
		lines = append(lines, "No Reviews")
	}
	var meta []string
	if s.TotalTime != "" {
		meta = append(meta, s.TotalTime)
	}
	if s.Ingredients > 0 {
		meta = append(meta, fmt.Sprintf("%d ingredients", s.Ingredients))
	}
	if len(meta) > 0 {
		lines = append(lines, mutedStyle.Render(strings.Join(meta, " · ")))
	}
	return strings.Join(lines, "\n")
}
