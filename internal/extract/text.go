package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// extractText decodes plain text as UTF-8, falling back to Latin-1 for
// legacy exports. Latin-1 is total over bytes, so this never fails.
func extractText(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", &ExtractionError{Format: "txt", Err: err}
	}
	return string(decoded), nil
}

var (
	multiNewline = regexp.MustCompile(`\n{3,}`)
	multiSpace   = regexp.MustCompile(`[ \t]{2,}`)
)

// clean normalizes whitespace: at most one blank line between blocks,
// runs of spaces and tabs collapsed to a single space.
func clean(text string) string {
	text = multiNewline.ReplaceAllString(text, "\n\n")
	text = multiSpace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// Truncate caps text at limit runes, marking the cut so prompts show the
// material was shortened rather than silently incomplete.
func Truncate(text string, limit int) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	return string([]rune(text)[:limit]) + "\n[truncated]"
}
