package filename

import (
	"bufio"
	"embed"
	"log/slog"
	"strings"
	"sync"
)

//go:embed stopwords/*.txt
var stopwordFS embed.FS

// languageFiles maps ISO 639-1 codes to the embedded stopword lists.
var languageFiles = map[string]string{
	"de": "german",
	"en": "english",
	"es": "spanish",
	"fr": "french",
	"it": "italian",
	"nl": "dutch",
	"pt": "portuguese",
}

var (
	setupOnce sync.Once
	stopwords map[string]map[string]struct{}
)

// Setup loads the stopword lists. It is safe to call more than once and
// never fails: a list that cannot be read is treated as empty.
func Setup() {
	setupOnce.Do(func() {
		stopwords = make(map[string]map[string]struct{}, len(languageFiles))
		for code, name := range languageFiles {
			words, err := readList(name)
			if err != nil {
				slog.Warn("failed to load stopwords, continuing without them", "language", code, "error", err)
				continue
			}
			stopwords[code] = words
		}
	})
}

func readList(name string) (map[string]struct{}, error) {
	f, err := stopwordFS.Open("stopwords/" + name + ".txt")
	if err != nil {
		return nil, err
	}
	defer f.Close()

	words := make(map[string]struct{})
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if w := strings.TrimSpace(scanner.Text()); w != "" {
			words[w] = struct{}{}
		}
	}
	return words, scanner.Err()
}

// BaseLanguage returns the language part of a region-qualified code,
// e.g. "en" for "en-US".
func BaseLanguage(code string) string {
	if i := strings.IndexAny(code, "-_"); i >= 0 {
		code = code[:i]
	}
	return strings.ToLower(code)
}

// Stopwords returns the stopword set for the base language of code. Unknown
// languages yield an empty set.
func Stopwords(code string) map[string]struct{} {
	Setup()
	if words, ok := stopwords[BaseLanguage(code)]; ok {
		return words
	}
	return map[string]struct{}{}
}
