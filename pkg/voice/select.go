package voice

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// SelectVoice narrows candidates down to one voice name.
//
// Candidates containing typeKeyword (case-insensitive) are preferred. If
// none contain it the first candidate is used; if exactly one does it is
// returned directly; otherwise chooser decides between them.
func SelectVoice(candidates []string, typeKeyword string, chooser Chooser) (string, error) {
	if len(candidates) == 0 {
		return "", ErrNoCandidates
	}

	keyword := strings.ToLower(typeKeyword)
	var matched []string
	for _, name := range candidates {
		if strings.Contains(strings.ToLower(name), keyword) {
			matched = append(matched, name)
		}
	}

	switch len(matched) {
	case 0:
		slog.Warn("no voice matches type, falling back to first available voice",
			"type", typeKeyword, "voice", candidates[0])
		return candidates[0], nil
	case 1:
		return matched[0], nil
	}

	if chooser == nil {
		return "", &InvalidSelectionError{Count: len(matched), Err: errors.New("no chooser configured")}
	}

	idx, err := chooser.Choose(typeKeyword, matched)
	if err != nil {
		var selErr *InvalidSelectionError
		if errors.As(err, &selErr) {
			return "", err
		}
		return "", &InvalidSelectionError{Count: len(matched), Err: err}
	}
	if idx < 0 || idx >= len(matched) {
		return "", &InvalidSelectionError{Input: strconv.Itoa(idx + 1), Count: len(matched)}
	}
	return matched[idx], nil
}
