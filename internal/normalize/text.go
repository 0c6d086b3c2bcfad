package normalize

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

var (
	slugStrip    = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)
	slugSpaces   = regexp.MustCompile(`[\s_]+`)
	slugHyphens  = regexp.MustCompile(`^-+|-+$`)
	tagPattern   = regexp.MustCompile(`<[^>]+>`)
	blankRunsPat = regexp.MustCompile(`\n{3,}`)
)

// Slugify lowercases text, drops anything that is not a word character,
// space or hyphen, turns whitespace and underscores into hyphens and trims
// hyphens from both ends.
func Slugify(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = slugStrip.ReplaceAllString(s, "")
	s = slugSpaces.ReplaceAllString(s, "-")
	return slugHyphens.ReplaceAllString(s, "")
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// PlainText strips markup from a description.
func PlainText(description string) string {
	if strings.TrimSpace(description) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(description))
	if err != nil {
		return strings.TrimSpace(tagPattern.ReplaceAllString(description, ""))
	}
	text := doc.Text()
	text = blankRunsPat.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
