package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wachiwi/gcloud-tts/pkg/config"
	"github.com/wachiwi/gcloud-tts/pkg/tts"
	"github.com/wachiwi/gcloud-tts/pkg/voice"
)

type stubService struct {
	voices []voice.Descriptor
	last   tts.Request
}

func (s *stubService) ListVoices(context.Context) ([]voice.Descriptor, error) {
	return s.voices, nil
}

func (s *stubService) Synthesize(_ context.Context, req tts.Request) ([]byte, error) {
	s.last = req
	return []byte("mock-audio-data"), nil
}

func defaultConfig() *config.Config {
	return &config.Config{
		Language:  "es",
		Gender:    "neutral",
		VoiceType: "wavenet",
		Pitch:     1.0,
		Rate:      1.0,
		LogLevel:  "error",
	}
}

type harness struct {
	svc    *stubService
	dialed int
	stdout bytes.Buffer
	stderr bytes.Buffer
}

func newHarness() *harness {
	return &harness{svc: &stubService{voices: []voice.Descriptor{
		{Name: "es-ES-Standard-A", LanguageCodes: []string{"es-ES"}, Gender: voice.Neutral},
		{Name: "es-ES-Wavenet-A", LanguageCodes: []string{"es-ES"}, Gender: voice.Neutral},
		{Name: "es-US-Wavenet-B", LanguageCodes: []string{"es-US"}, Gender: voice.Neutral},
		{Name: "en-US-Wavenet-F", LanguageCodes: []string{"en-US"}, Gender: voice.Female},
	}}}
}

func (h *harness) execute(t *testing.T, stdin string, args ...string) error {
	t.Helper()
	factory := func(context.Context, *config.Config) (tts.Service, func() error, error) {
		h.dialed++
		return h.svc, func() error { return nil }, nil
	}
	cmd := newRootCommand(defaultConfig(), factory)
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&h.stdout)
	cmd.SetErr(&h.stderr)
	return cmd.ExecuteContext(context.Background())
}

func TestMissingInput(t *testing.T) {
	h := newHarness()
	err := h.execute(t, "")

	require.ErrorIs(t, err, tts.ErrMissingInput)
	assert.Equal(t, exitUsage, exitCode(err))
	assert.Zero(t, h.dialed, "no connection may be made without input")
}

func TestInvalidFlags(t *testing.T) {
	for name, args := range map[string][]string{
		"gender":          {"--text", "hola", "--gender", "robot"},
		"voice type":      {"--text", "hola", "--voice-type", "neural"},
		"unknown":         {"--text", "hola", "--loud"},
		"log level":       {"--text", "hola", "--log-level", "chatty"},
		"pitch":           {"--text", "hola", "--pitch", "high"},
		"gender case":     {"--text", "hola", "--gender", "NEUTRAL"},
		"voice type case": {"--text", "hola", "--voice-type", "WaveNet"},
	} {
		t.Run(name, func(t *testing.T) {
			h := newHarness()
			err := h.execute(t, "", args...)
			require.Error(t, err)
			assert.Equal(t, exitUsage, exitCode(err))
			assert.Zero(t, h.dialed)
		})
	}
}

func TestWritesFileWithPromptedVoice(t *testing.T) {
	t.Chdir(t.TempDir())
	h := newHarness()

	err := h.execute(t, "2\n", "--text", "El perro de la casa come mucho")
	require.NoError(t, err)

	assert.Equal(t, "es-US-Wavenet-B", h.svc.last.Voice)
	assert.Equal(t, voice.Neutral, h.svc.last.Gender)
	assert.Equal(t, 1.0, h.svc.last.Pitch)
	assert.Equal(t, 1.0, h.svc.last.SpeakingRate)
	assert.Contains(t, h.stdout.String(), "1. es-ES-Wavenet-A\n2. es-US-Wavenet-B\n")
	assert.Contains(t, h.stdout.String(), "Audio content written to file 'perro_casa_come.mp3'")

	data, err := os.ReadFile("perro_casa_come.mp3")
	require.NoError(t, err)
	assert.Equal(t, "mock-audio-data", string(data))
}

func TestInvalidMenuChoice(t *testing.T) {
	h := newHarness()
	out := filepath.Join(t.TempDir(), "out.mp3")

	err := h.execute(t, "abc\n", "--text", "hola", "--output", out)

	var selErr *voice.InvalidSelectionError
	require.ErrorAs(t, err, &selErr)
	assert.Equal(t, exitUsage, exitCode(err))
	assert.NoFileExists(t, out)
}

func TestChoiceFlagSkipsPrompt(t *testing.T) {
	h := newHarness()
	out := filepath.Join(t.TempDir(), "out.mp3")

	err := h.execute(t, "", "--text", "hola", "--output", out, "--choice", "1", "--pitch", "7", "--rate", "1.2")
	require.NoError(t, err)
	assert.Equal(t, "es-ES-Wavenet-A", h.svc.last.Voice)
	assert.Equal(t, 7.0, h.svc.last.Pitch)
	assert.Equal(t, 1.2, h.svc.last.SpeakingRate)
	assert.NotContains(t, h.stdout.String(), "Multiple voices")
}

func TestFileInput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.txt")
	out := filepath.Join(dir, "out.mp3")
	require.NoError(t, os.WriteFile(input, []byte("Hello from a file"), 0o644))

	h := newHarness()
	err := h.execute(t, "", "--file", input, "--output", out, "--lang", "en", "--gender", "female")
	require.NoError(t, err)
	assert.Equal(t, "Hello from a file", h.svc.last.Text)
	assert.Equal(t, "en-US-Wavenet-F", h.svc.last.Voice)
	assert.Equal(t, "en", h.svc.last.LanguageCode)
}

func TestNoMatchingVoice(t *testing.T) {
	h := newHarness()
	err := h.execute(t, "", "--text", "hallo", "--lang", "de")

	var noMatch *voice.NoMatchError
	require.ErrorAs(t, err, &noMatch)
	assert.Equal(t, exitUsage, exitCode(err))
}

func TestConnectFailure(t *testing.T) {
	factory := func(context.Context, *config.Config) (tts.Service, func() error, error) {
		return nil, nil, errors.New("could not find default credentials")
	}
	cmd := newRootCommand(defaultConfig(), factory)
	cmd.SetArgs([]string{"--text", "hola"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.ExecuteContext(context.Background())

	var svcErr *tts.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, exitFailure, exitCode(err))
}
