package filename

import (
	"strings"
	"unicode"
)

const (
	// Extension is appended to every generated name.
	Extension = ".mp3"
	// Fallback is used when the text contains no usable keyword.
	Fallback = "speech"
	// MaxKeywords caps the number of words taken from the text.
	MaxKeywords = 3
)

// FromText derives an audio filename from the first few non-stopword words
// of text. The result only contains lowercase ASCII letters, underscores and
// the extension, and is the same for the same inputs.
func FromText(text, languageCode string) string {
	keywords := Keywords(text, languageCode)
	if len(keywords) == 0 {
		return Fallback + Extension
	}
	return strings.Join(keywords, "_") + Extension
}

// Keywords returns up to MaxKeywords words of text, lowercased and stripped
// of everything but ASCII letters, with the language's stopwords removed.
func Keywords(text, languageCode string) []string {
	stop := Stopwords(languageCode)

	var keywords []string
	for _, word := range strings.Fields(clean(text)) {
		if _, ok := stop[word]; ok {
			continue
		}
		keywords = append(keywords, word)
		if len(keywords) == MaxKeywords {
			break
		}
	}
	return keywords
}

// clean lowercases s and drops every rune that is neither an ASCII letter
// nor whitespace.
func clean(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(r)
		}
	}
	return b.String()
}
