package audio

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/hajimehoshi/go-mp3"
)

// MIMEMPEG is the MIME type of MP3 audio.
const MIMEMPEG = "audio/mpeg"

// Info summarises an encoded audio payload.
type Info struct {
	MIME       string
	SampleRate int
	Duration   time.Duration
}

// IsMP3 reports whether the payload was recognised as MP3.
func (i Info) IsMP3() bool {
	return i.MIME == MIMEMPEG
}

// Inspect sniffs the content type of data and, for MP3 payloads, decodes the
// stream header to work out sample rate and duration.
func Inspect(data []byte) (Info, error) {
	mt := mimetype.Detect(data)
	info := Info{MIME: mt.String()}
	if !mt.Is(MIMEMPEG) {
		return info, nil
	}
	info.MIME = MIMEMPEG

	decoder, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return info, fmt.Errorf("failed to create mp3 decoder: %w", err)
	}
	info.SampleRate = decoder.SampleRate()

	// go-mp3 always decodes to 16-bit stereo.
	const bytesPerFrame = 4
	if length := decoder.Length(); length > 0 && info.SampleRate > 0 {
		frames := length / bytesPerFrame
		info.Duration = time.Duration(frames) * time.Second / time.Duration(info.SampleRate)
	}
	return info, nil
}
