package render

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/url"
	"strings"

	"eTEats_web/models"
	"eTEats_web/offline"

	"github.com/a-h/templ"
	"github.com/dustin/go-humanize"
)

const (
	AppName    = "eTEats"
	Stylesheet = "/static/styles.css"
)

// Page renders the full document: a <main> holding one <recipe-card> per
// recipe and the service worker registration snippet.
func Page(recipes models.Recipes) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &printer{w: w}
		p.printf("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
		p.printf("<meta charset=\"utf-8\">\n<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
		p.printf("<title>%s</title>\n", templ.EscapeString(AppName))
		p.printf("<link rel=\"stylesheet\" href=\"%s\">\n", Stylesheet)
		p.printf("</head>\n<body>\n<header><h1>%s</h1></header>\n<main>\n", templ.EscapeString(AppName))
		if p.err != nil {
			return p.err
		}
		for _, card := range Cards(recipes) {
			if err := CardView(card).Render(ctx, w); err != nil {
				return err
			}
		}
		p.printf("</main>\n<script>\n%s\n</script>\n</body>\n</html>\n", offline.RegistrationScript)
		return p.err
	})
}

// CardView renders a single <recipe-card> element.
func CardView(card Card) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		s := card.Summary
		p := &printer{w: w}

		p.printf("<recipe-card data-recipe=\"%s\">\n<article>\n", templ.EscapeString(card.Data()))
		if s.ImageURL != "" {
			p.printf("<img src=\"%s\" alt=\"%s\">\n", templ.EscapeString(thumbnailURL(s.ImageURL)), templ.EscapeString(s.Name))
		}
		if s.URL != "" {
			p.printf("<p class=\"title\"><a href=\"%s\">%s</a></p>\n", templ.EscapeString(string(templ.URL(s.URL))), templ.EscapeString(s.Name))
		} else {
			p.printf("<p class=\"title\">%s</p>\n", templ.EscapeString(s.Name))
		}
		if s.Author != "" {
			p.printf("<p class=\"organization\">%s</p>\n", templ.EscapeString(s.Author))
		}
		p.printf("<div class=\"rating\">\n")
		if s.RatingCount > 0 {
			p.printf("<span>%s</span>\n<span class=\"stars\">%s</span>\n<span>(%s)</span>\n",
				templ.EscapeString(formatRating(s.Rating)), Stars(s.Rating), humanize.Comma(s.RatingCount))
		} else {
			p.printf("<span>No Reviews</span>\n")
		}
		p.printf("</div>\n")
		if s.TotalTime != "" {
			p.printf("<time>%s</time>\n", templ.EscapeString(s.TotalTime))
		}
		if s.Ingredients > 0 {
			p.printf("<p class=\"ingredients\">%d ingredients</p>\n", s.Ingredients)
		}
		p.printf("</article>\n</recipe-card>\n")
		return p.err
	})
}

// Stars returns five characters with the rating rounded to a whole star.
func Stars(rating float64) string {
	n := int(math.Round(rating))
	n = max(0, min(5, n))
	return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
}

func formatRating(rating float64) string {
	return humanize.FtoaWithDigits(rating, 1)
}

func thumbnailURL(imageURL string) string {
	return "/image?url=" + url.QueryEscape(imageURL)
}

// printer keeps the first write error and drops later writes.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}
