package tts

import (
	"context"

	"github.com/wachiwi/gcloud-tts/pkg/voice"
)

// Encoding is the audio container requested from the speech service.
type Encoding string

const EncodingMP3 Encoding = "mp3"

// Document is the text to be spoken and the language it is written in.
type Document struct {
	Text         string
	LanguageCode string
}

// Request is everything the speech service needs for one synthesis call.
type Request struct {
	Document
	Voice        string
	Gender       voice.Gender
	Pitch        float64
	SpeakingRate float64
	Encoding     Encoding
}

// Synthesizer turns a Request into encoded audio bytes.
type Synthesizer interface {
	Synthesize(ctx context.Context, req Request) ([]byte, error)
}

// Service is a speech backend offering both a voice catalog and synthesis.
type Service interface {
	voice.Catalog
	Synthesizer
}

// Player plays back an audio file that has already been written.
type Player interface {
	PlayFile(ctx context.Context, path string) error
}
