package tts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/wachiwi/gcloud-tts/pkg/audio"
	"github.com/wachiwi/gcloud-tts/pkg/filename"
	"github.com/wachiwi/gcloud-tts/pkg/voice"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/wachiwi/gcloud-tts/pkg/tts"

// Options describe a single text-to-speech invocation.
type Options struct {
	Text string
	// TextSet distinguishes an explicitly empty Text from no text at all.
	TextSet bool
	File    string
	Output  string

	Language  string
	Gender    voice.Gender
	VoiceType string
	Pitch     float64
	Rate      float64

	Play bool
}

// Runner wires the voice catalog, the voice chooser and the synthesizer
// together and writes the result to disk.
type Runner struct {
	service Service
	chooser voice.Chooser
	player  Player

	tracer     trace.Tracer
	characters metric.Int64Counter
	bytes      metric.Int64Counter
}

// NewRunner creates a Runner. player may be nil if playback is never requested.
func NewRunner(service Service, chooser voice.Chooser, player Player) *Runner {
	meter := otel.Meter(instrumentationName)
	characters, err := meter.Int64Counter("tts.synthesized.characters",
		metric.WithDescription("Characters of text sent for synthesis"))
	if err != nil {
		otel.Handle(err)
	}
	bytes, err := meter.Int64Counter("tts.synthesized.bytes",
		metric.WithDescription("Bytes of audio written"),
		metric.WithUnit("By"))
	if err != nil {
		otel.Handle(err)
	}

	return &Runner{
		service:    service,
		chooser:    chooser,
		player:     player,
		tracer:     otel.Tracer(instrumentationName),
		characters: characters,
		bytes:      bytes,
	}
}

// Run synthesizes the configured text and returns the path of the written
// audio file.
func (r *Runner) Run(ctx context.Context, opts Options) (path string, err error) {
	ctx, span := r.tracer.Start(ctx, "tts.run")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	text, err := resolveText(opts)
	if err != nil {
		return "", err
	}

	path = opts.Output
	if path == "" {
		path = filename.FromText(text, opts.Language)
	}
	span.SetAttributes(
		attribute.String("tts.language", opts.Language),
		attribute.String("tts.gender", opts.Gender.String()),
		attribute.String("tts.output", path),
	)

	voiceName, err := r.chooseVoice(ctx, opts)
	if err != nil {
		return "", err
	}
	span.SetAttributes(attribute.String("tts.voice", voiceName))

	req := Request{
		Document:     Document{Text: text, LanguageCode: opts.Language},
		Voice:        voiceName,
		Gender:       opts.Gender,
		Pitch:        opts.Pitch,
		SpeakingRate: opts.Rate,
		Encoding:     EncodingMP3,
	}

	data, err := r.synthesize(ctx, req)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write audio to file: %w", err)
	}
	r.bytes.Add(ctx, int64(len(data)))
	r.logAudioInfo(path, data)

	if opts.Play {
		if r.player == nil {
			return path, errors.New("playback requested but no player is configured")
		}
		if err := r.player.PlayFile(ctx, path); err != nil {
			return path, fmt.Errorf("failed to play audio: %w", err)
		}
	}

	return path, nil
}

// resolveText picks the input text: explicit text first, then the file.
func resolveText(opts Options) (string, error) {
	if opts.TextSet {
		return opts.Text, nil
	}
	if opts.File == "" {
		return "", ErrMissingInput
	}
	data, err := os.ReadFile(opts.File)
	if err != nil {
		return "", fmt.Errorf("failed to read input file: %w", err)
	}
	return string(data), nil
}

func (r *Runner) chooseVoice(ctx context.Context, opts Options) (string, error) {
	query := voice.Query{LanguagePrefix: opts.Language, Gender: opts.Gender, Type: opts.VoiceType}

	ctx, span := r.tracer.Start(ctx, "tts.list_voices")
	candidates, err := voice.FetchVoices(ctx, r.service, query)
	span.SetAttributes(attribute.Int("tts.candidates", len(candidates)))
	span.End()
	if err != nil {
		var noMatch *voice.NoMatchError
		if errors.As(err, &noMatch) {
			return "", err
		}
		return "", &ServiceError{Op: "list voices", Err: err}
	}
	slog.Debug("found matching voices", "count", len(candidates), "voices", candidates)

	name, err := voice.SelectVoice(candidates, query.Type, r.chooser)
	if err != nil {
		return "", err
	}
	slog.Info("selected voice", "voice", name)
	return name, nil
}

func (r *Runner) synthesize(ctx context.Context, req Request) ([]byte, error) {
	ctx, span := r.tracer.Start(ctx, "tts.synthesize", trace.WithAttributes(
		attribute.String("tts.voice", req.Voice),
		attribute.Float64("tts.pitch", req.Pitch),
		attribute.Float64("tts.rate", req.SpeakingRate),
		attribute.Int("tts.text_length", len([]rune(req.Text))),
	))
	defer span.End()

	data, err := r.service.Synthesize(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, &ServiceError{Op: "synthesize", Err: err}
	}
	r.characters.Add(ctx, int64(len([]rune(req.Text))))
	return data, nil
}

func (r *Runner) logAudioInfo(path string, data []byte) {
	info, err := audio.Inspect(data)
	if err != nil {
		slog.Warn("failed to inspect written audio", "file", path, "error", err)
		return
	}
	if !info.IsMP3() {
		slog.Warn("speech service returned unexpected content type", "file", path, "mime", info.MIME)
		return
	}
	slog.Info("audio written",
		"file", path,
		"bytes", len(data),
		"sample_rate", info.SampleRate,
		"duration", info.Duration.Round(10*time.Millisecond),
	)
}
