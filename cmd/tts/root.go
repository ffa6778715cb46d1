package main

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/spf13/cobra"
	"github.com/wachiwi/gcloud-tts/pkg/audio/playback"
	"github.com/wachiwi/gcloud-tts/pkg/config"
	"github.com/wachiwi/gcloud-tts/pkg/filename"
	"github.com/wachiwi/gcloud-tts/pkg/logger"
	"github.com/wachiwi/gcloud-tts/pkg/telemetry"
	"github.com/wachiwi/gcloud-tts/pkg/tts"
	"github.com/wachiwi/gcloud-tts/pkg/voice"
)

// serviceFactory creates the speech backend and a function releasing it.
type serviceFactory func(ctx context.Context, cfg *config.Config) (tts.Service, func() error, error)

// usageError marks invalid command-line input.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

var voiceTypes = []string{"standard", "wavenet"}

type flags struct {
	text      string
	file      string
	output    string
	lang      string
	gender    string
	voiceType string
	pitch     float64
	rate      float64
	choice    int
	play      bool
	logLevel  string
}

func newRootCommand(cfg *config.Config, newService serviceFactory) *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:   "tts",
		Short: "Convert text to speech using Google Cloud Text-to-Speech",
		Long: `Convert text to speech using Google Cloud Text-to-Speech in any language.

The voice is picked from the voices available for --lang and --gender,
preferring those of --voice-type. When several voices qualify you are asked
to choose one. Without --output the file is named after the first keywords
of the text.`,
		Example: `  tts --text "Hola, ¿qué tal?"
  tts --file story.txt --lang en-US --gender female --pitch 7 --rate 1.2`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := logger.Setup(f.logLevel, cmd.ErrOrStderr()); err != nil {
				return &usageError{err: err}
			}
			filename.Setup()
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, cfg, f, newService)
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	fs := cmd.Flags()
	fs.StringVar(&f.text, "text", "", "Text to convert to speech (overrides file input)")
	fs.StringVar(&f.file, "file", "", "File containing text to convert to speech")
	fs.StringVar(&f.output, "output", "", "Output MP3 file path (generated from text if not provided)")
	fs.StringVar(&f.lang, "lang", cfg.Language, "Language prefix (e.g. es for Spanish, en for English)")
	fs.StringVar(&f.gender, "gender", cfg.Gender, "Voice gender: male, female or neutral")
	fs.StringVar(&f.voiceType, "voice-type", cfg.VoiceType, "Voice type: standard or wavenet")
	fs.Float64Var(&f.pitch, "pitch", cfg.Pitch, "Pitch of the voice, set to 7 for a child-like voice")
	fs.Float64Var(&f.rate, "rate", cfg.Rate, "Speaking rate, set to 1.2 for a child-like voice")
	fs.IntVar(&f.choice, "choice", 0, "Pre-select the Nth voice when several match instead of prompting")
	fs.BoolVar(&f.play, "play", false, "Play the audio file after writing it")
	fs.StringVar(&f.logLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn or error")

	return cmd
}

func run(cmd *cobra.Command, cfg *config.Config, f *flags, newService serviceFactory) error {
	ctx := cmd.Context()

	opts, err := f.options(cmd)
	if err != nil {
		return err
	}

	// Fail on missing input before credentials are looked up or anything is dialled.
	if !opts.TextSet && opts.File == "" {
		return tts.ErrMissingInput
	}

	shutdown, err := telemetry.Setup(ctx, "tts", version, cfg.OTLPEndpoint)
	if err != nil {
		slog.Warn("telemetry disabled", "error", err)
	} else {
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(sctx); err != nil {
				slog.Warn("failed to flush telemetry", "error", err)
			}
		}()
	}

	service, closeService, err := newService(ctx, cfg)
	if err != nil {
		return &tts.ServiceError{Op: "connect", Err: err}
	}
	defer func() {
		if err := closeService(); err != nil {
			slog.Warn("failed to close speech client", "error", err)
		}
	}()

	var chooser voice.Chooser = &voice.PromptChooser{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}
	if f.choice > 0 {
		chooser = voice.FixedChooser(f.choice)
	}
	var player tts.Player
	if opts.Play {
		player = playback.NewPlayer()
	}

	path, err := tts.NewRunner(service, chooser, player).Run(ctx, opts)
	if path != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Audio content written to file '%s'\n", path)
	}
	return err
}

func (f *flags) options(cmd *cobra.Command) (tts.Options, error) {
	gender, err := voice.ParseGender(f.gender)
	if err != nil {
		return tts.Options{}, &usageError{err: err}
	}
	if !slices.Contains(voiceTypes, f.voiceType) {
		return tts.Options{}, &usageError{err: fmt.Errorf("invalid voice type %q: must be one of standard, wavenet", f.voiceType)}
	}

	return tts.Options{
		Text:      f.text,
		TextSet:   cmd.Flags().Changed("text"),
		File:      f.file,
		Output:    f.output,
		Language:  f.lang,
		Gender:    gender,
		VoiceType: f.voiceType,
		Pitch:     f.pitch,
		Rate:      f.rate,
		Play:      f.play,
	}, nil
}
