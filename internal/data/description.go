package data

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var lineBreaks = strings.NewReplacer("<br>", "\n", "<br/>", "\n", "<br />", "\n", "<BR>", "\n")

// parseDescription loads a Data Dragon description fragment. Descriptions use
// custom tags (<mainText>, <stats>, <passive>, ...) with <br> line breaks.
func parseDescription(desc string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(lineBreaks.Replace(desc)))
}

// StatLines returns the stat block of the item, one stat per line,
// e.g. "40 Attack Damage".
func (it Item) StatLines() []string {
	if it.Description == "" {
		return nil
	}
	doc, err := parseDescription(it.Description)
	if err != nil {
		return nil
	}

	var lines []string
	doc.Find("stats").Each(func(_ int, s *goquery.Selection) {
		lines = append(lines, splitLines(s.Text())...)
	})
	return lines
}

// DescriptionText returns the whole description as plain text lines.
func (it Item) DescriptionText() string {
	if it.Description == "" {
		return it.Plaintext
	}
	doc, err := parseDescription(it.Description)
	if err != nil {
		return it.Plaintext
	}
	return strings.Join(splitLines(doc.Text()), "\n")
}

func splitLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
