// Package generator produces templated marketing copy for a product and
// fits it into the word-count band of the requested length.
package generator

import (
	"strings"
	"unicode/utf8"

	"github.com/BerylCAtieno/content-studio-agent/internal/models"
)

type Request struct {
	Product     models.Product `json:"product"`
	Platform    Platform       `json:"platform"`
	ContentType ContentType    `json:"content_type"`
	Tone        Tone           `json:"tone"`
	Length      Length         `json:"length"`
}

// Result describes a finished piece of copy.
type Result struct {
	Content   string `json:"content"`
	Words     int    `json:"word_count"`
	Chars     int    `json:"char_count"`
	Band      Band   `json:"band"`
	Shortfall bool   `json:"shortfall"`
}

// Generate selects the base template for the request and pads or truncates
// it to the band of req.Length. The platform does not affect the text.
func Generate(req Request) string {
	band := BandFor(req.Length)
	content := baseContent(req.Product.Name, req.Product.Description, req.ContentType, req.Tone)

	words := strings.Fields(content)
	switch {
	case len(words) < band.Min:
		count := len(words)
		pool := expansions(req.Product.Category)
		for count < band.Min && len(pool) > 0 {
			next := pool[0]
			pool = pool[1:]
			content += " " + next
			count += CountWords(next)
		}
	case len(words) > band.Max:
		content = strings.Join(words[:band.Max], " ")
	}

	return content
}

// Describe wraps content produced for length l with its counts.
func Describe(content string, l Length) Result {
	band := BandFor(l)
	words := CountWords(content)
	return Result{
		Content:   content,
		Words:     words,
		Chars:     utf8.RuneCountInString(content),
		Band:      band,
		Shortfall: words < band.Min,
	}
}

func CountWords(s string) int {
	return len(strings.Fields(s))
}
