package voice

import (
	"context"
	"fmt"
	"strings"
)

// Gender is the SSML gender classification of a voice.
type Gender int

const (
	// Unspecified is reported for catalog voices without a gender. It never
	// matches a user query.
	Unspecified Gender = iota
	Male
	Female
	Neutral
)

func (g Gender) String() string {
	switch g {
	case Male:
		return "male"
	case Female:
		return "female"
	case Neutral:
		return "neutral"
	default:
		return "unspecified"
	}
}

// ParseGender converts a lowercase gender name into a Gender. Names are
// matched exactly, like the voice type.
func ParseGender(s string) (Gender, error) {
	switch s {
	case "male":
		return Male, nil
	case "female":
		return Female, nil
	case "neutral":
		return Neutral, nil
	}
	return Unspecified, fmt.Errorf("invalid gender %q: must be one of male, female, neutral", s)
}

// Descriptor describes one voice offered by the speech service.
type Descriptor struct {
	Name          string
	LanguageCodes []string
	Gender        Gender
}

// Query holds the user's voice preferences for one invocation. Type is the
// voice type keyword used by SelectVoice.
type Query struct {
	LanguagePrefix string
	Gender         Gender
	Type           string
}

// Catalog lists the voices a speech service offers.
type Catalog interface {
	ListVoices(ctx context.Context) ([]Descriptor, error)
}

// matches reports whether the voice serves a language starting with the
// query's prefix and has the requested gender.
func (d Descriptor) matches(q Query) bool {
	if q.Gender == Unspecified || d.Gender != q.Gender {
		return false
	}
	for _, code := range d.LanguageCodes {
		if strings.HasPrefix(code, q.LanguagePrefix) {
			return true
		}
	}
	return false
}

// FetchVoices returns the names of all catalog voices matching the query's
// language prefix and gender, in catalog order. It fails with a *NoMatchError
// when no voice qualifies.
func FetchVoices(ctx context.Context, catalog Catalog, q Query) ([]string, error) {
	voices, err := catalog.ListVoices(ctx)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, v := range voices {
		if v.matches(q) {
			names = append(names, v.Name)
		}
	}

	if len(names) == 0 {
		return nil, &NoMatchError{Prefix: q.LanguagePrefix, Gender: q.Gender}
	}
	return names, nil
}
