package googletts

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"github.com/wachiwi/gcloud-tts/pkg/tts"
	"github.com/wachiwi/gcloud-tts/pkg/voice"
	"google.golang.org/api/option"
)

// Client talks to Google Cloud Text-to-Speech. It implements tts.Service.
type Client struct {
	tts *texttospeech.Client
}

// Settings configures how the client connects and authenticates.
type Settings struct {
	CredentialsFile string
	Endpoint        string
	QuotaProject    string
}

// Options converts the settings into client options. Empty fields fall back
// to Application Default Credentials and the public endpoint.
func (s Settings) Options() []option.ClientOption {
	var opts []option.ClientOption
	if s.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(s.CredentialsFile))
	}
	if s.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(s.Endpoint))
	}
	if s.QuotaProject != "" {
		opts = append(opts, option.WithQuotaProject(s.QuotaProject))
	}
	return opts
}

// New dials the Text-to-Speech API.
func New(ctx context.Context, opts ...option.ClientOption) (*Client, error) {
	c, err := texttospeech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("texttospeech.NewClient: %w", err)
	}
	return &Client{tts: c}, nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.tts.Close()
}

// ListVoices returns every voice the service offers.
func (c *Client) ListVoices(ctx context.Context) ([]voice.Descriptor, error) {
	resp, err := c.tts.ListVoices(ctx, &texttospeechpb.ListVoicesRequest{})
	if err != nil {
		return nil, fmt.Errorf("ListVoices: %w", err)
	}

	voices := make([]voice.Descriptor, 0, len(resp.GetVoices()))
	for _, v := range resp.GetVoices() {
		voices = append(voices, voice.Descriptor{
			Name:          v.GetName(),
			LanguageCodes: v.GetLanguageCodes(),
			Gender:        fromSSMLGender(v.GetSsmlGender()),
		})
	}
	slog.Debug("listed voices", "count", len(voices))
	return voices, nil
}

// Synthesize performs one SynthesizeSpeech call and returns the audio bytes.
func (c *Client) Synthesize(ctx context.Context, req tts.Request) ([]byte, error) {
	encoding, err := toAudioEncoding(req.Encoding)
	if err != nil {
		return nil, err
	}

	slog.Info("sending synthesis request",
		"voice", req.Voice,
		"language", req.LanguageCode,
		"pitch", req.Pitch,
		"rate", req.SpeakingRate,
		"characters", len([]rune(req.Text)),
	)
	start := time.Now()

	resp, err := c.tts.SynthesizeSpeech(ctx, &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: req.Text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: req.LanguageCode,
			Name:         req.Voice,
			SsmlGender:   toSSMLGender(req.Gender),
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: encoding,
			Pitch:         req.Pitch,
			SpeakingRate:  req.SpeakingRate,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("SynthesizeSpeech: %w", err)
	}

	slog.Info("synthesis completed",
		"bytes", len(resp.GetAudioContent()),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	return resp.GetAudioContent(), nil
}

func toSSMLGender(g voice.Gender) texttospeechpb.SsmlVoiceGender {
	switch g {
	case voice.Male:
		return texttospeechpb.SsmlVoiceGender_MALE
	case voice.Female:
		return texttospeechpb.SsmlVoiceGender_FEMALE
	case voice.Neutral:
		return texttospeechpb.SsmlVoiceGender_NEUTRAL
	default:
		return texttospeechpb.SsmlVoiceGender_SSML_VOICE_GENDER_UNSPECIFIED
	}
}

func fromSSMLGender(g texttospeechpb.SsmlVoiceGender) voice.Gender {
	switch g {
	case texttospeechpb.SsmlVoiceGender_MALE:
		return voice.Male
	case texttospeechpb.SsmlVoiceGender_FEMALE:
		return voice.Female
	case texttospeechpb.SsmlVoiceGender_NEUTRAL:
		return voice.Neutral
	default:
		return voice.Unspecified
	}
}

func toAudioEncoding(e tts.Encoding) (texttospeechpb.AudioEncoding, error) {
	switch e {
	case tts.EncodingMP3, "":
		return texttospeechpb.AudioEncoding_MP3, nil
	}
	return texttospeechpb.AudioEncoding_AUDIO_ENCODING_UNSPECIFIED, fmt.Errorf("unsupported audio encoding %q", e)
}
