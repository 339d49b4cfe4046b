package journey

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrBlankText is returned when the submitted text is empty or whitespace only.
var ErrBlankText = errors.New("journey: text is blank")

// Entry is one submitted story together with the generated reply.
type Entry struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	Timestamp  time.Time `json:"timestamp"`
	AIResponse string    `json:"ai_response,omitempty"`
	Category   Category  `json:"category"`
}

// NewEntry builds an entry with a fresh ID and the current time. The text is
// kept verbatim; only the blank check trims it.
func NewEntry(text, aiResponse string, c Categorizer) (Entry, error) {
	if IsBlank(text) {
		return Entry{}, ErrBlankText
	}
	if c == nil {
		c = RandomCategorizer(nil)
	}
	return Entry{
		ID:         uuid.NewString(),
		Text:       text,
		Timestamp:  time.Now(),
		AIResponse: aiResponse,
		Category:   c.Categorize(text),
	}, nil
}

// IsBlank reports whether text has no non-space characters.
func IsBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}
