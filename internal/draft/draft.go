// Package draft implements the draft store: an in-memory registry of writing
// documents backed by the persistence layer. Each draft is one content file
// plus a metadata sidecar; the store owns both.
package draft

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Draft is a single persisted writing document.
// The ID is unique and immutable after creation; the title may be renamed
// independently of the ID.
type Draft struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`

	// Body is populated by Load; List returns metadata only.
	Body string `json:"-"`
}

// WordCount returns the whitespace-separated word count of the body.
func (d Draft) WordCount() int {
	return CountWords(d.Body)
}

// CountWords counts whitespace-separated words in text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// utf8Valid reports whether a loaded body is valid UTF-8. Draft files are
// plain text; anything else is treated as corrupt rather than rendered.
func utf8Valid(body string) bool {
	return utf8.ValidString(body)
}

// TitleFromBody derives a display title from the first non-blank line of a
// body, stripping markdown heading markers. Used for default titles and for
// recovering drafts whose sidecar is missing.
func TitleFromBody(body string) string {
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = strings.TrimSpace(strings.TrimLeft(line, "#"))
		if line == "" {
			continue
		}
		const maxTitle = 60
		if runes := []rune(line); len(runes) > maxTitle {
			line = string(runes[:maxTitle])
		}
		return line
	}
	return ""
}
