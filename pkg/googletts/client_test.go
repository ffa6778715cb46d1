package googletts

import (
	"context"
	"net"
	"testing"

	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wachiwi/gcloud-tts/pkg/tts"
	"github.com/wachiwi/gcloud-tts/pkg/voice"
	"google.golang.org/api/option"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

// mockServer is an in-memory Text-to-Speech backend.
type mockServer struct {
	texttospeechpb.UnimplementedTextToSpeechServer

	voices    []*texttospeechpb.Voice
	audio     []byte
	synthErr  error
	lastSynth *texttospeechpb.SynthesizeSpeechRequest
}

func (m *mockServer) ListVoices(context.Context, *texttospeechpb.ListVoicesRequest) (*texttospeechpb.ListVoicesResponse, error) {
	return &texttospeechpb.ListVoicesResponse{Voices: m.voices}, nil
}

func (m *mockServer) SynthesizeSpeech(_ context.Context, req *texttospeechpb.SynthesizeSpeechRequest) (*texttospeechpb.SynthesizeSpeechResponse, error) {
	m.lastSynth = req
	if m.synthErr != nil {
		return nil, m.synthErr
	}
	return &texttospeechpb.SynthesizeSpeechResponse{AudioContent: m.audio}, nil
}

func newTestClient(t *testing.T, srv *mockServer) *Client {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	s := grpc.NewServer()
	texttospeechpb.RegisterTextToSpeechServer(s, srv)
	go func() {
		_ = s.Serve(lis)
	}()
	t.Cleanup(s.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	client, err := New(context.Background(), option.WithGRPCConn(conn))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestListVoices(t *testing.T) {
	srv := &mockServer{voices: []*texttospeechpb.Voice{
		{Name: "es-ES-Wavenet-B", LanguageCodes: []string{"es-ES"}, SsmlGender: texttospeechpb.SsmlVoiceGender_MALE, NaturalSampleRateHertz: 24000},
		{Name: "es-ES-Standard-C", LanguageCodes: []string{"es-ES"}, SsmlGender: texttospeechpb.SsmlVoiceGender_FEMALE},
		{Name: "en-US-Neutral", LanguageCodes: []string{"en-US"}, SsmlGender: texttospeechpb.SsmlVoiceGender_NEUTRAL},
		{Name: "xx-Unknown", LanguageCodes: []string{"xx"}},
	}}
	client := newTestClient(t, srv)

	voices, err := client.ListVoices(context.Background())
	require.NoError(t, err)
	require.Len(t, voices, 4)

	assert.Equal(t, voice.Descriptor{
		Name:          "es-ES-Wavenet-B",
		LanguageCodes: []string{"es-ES"},
		Gender:        voice.Male,
	}, voices[0])
	assert.Equal(t, voice.Female, voices[1].Gender)
	assert.Equal(t, voice.Neutral, voices[2].Gender)
	assert.Equal(t, voice.Unspecified, voices[3].Gender)
}

func TestSynthesize(t *testing.T) {
	srv := &mockServer{audio: []byte("mock-audio-data")}
	client := newTestClient(t, srv)

	data, err := client.Synthesize(context.Background(), tts.Request{
		Document:     tts.Document{Text: "Hola mundo", LanguageCode: "es"},
		Voice:        "es-ES-Wavenet-B",
		Gender:       voice.Male,
		Pitch:        7,
		SpeakingRate: 1.2,
		Encoding:     tts.EncodingMP3,
	})
	require.NoError(t, err)
	assert.Equal(t, "mock-audio-data", string(data))

	req := srv.lastSynth
	require.NotNil(t, req)
	assert.Equal(t, "Hola mundo", req.GetInput().GetText())
	assert.Equal(t, "es", req.GetVoice().GetLanguageCode())
	assert.Equal(t, "es-ES-Wavenet-B", req.GetVoice().GetName())
	assert.Equal(t, texttospeechpb.SsmlVoiceGender_MALE, req.GetVoice().GetSsmlGender())
	assert.Equal(t, texttospeechpb.AudioEncoding_MP3, req.GetAudioConfig().GetAudioEncoding())
	assert.Equal(t, 7.0, req.GetAudioConfig().GetPitch())
	assert.Equal(t, 1.2, req.GetAudioConfig().GetSpeakingRate())
}

func TestSynthesize_ServiceError(t *testing.T) {
	srv := &mockServer{synthErr: status.Error(codes.InvalidArgument, "pitch out of range")}
	client := newTestClient(t, srv)

	_, err := client.Synthesize(context.Background(), tts.Request{
		Document: tts.Document{Text: "hi", LanguageCode: "en"},
		Voice:    "en-US-Wavenet-A",
		Gender:   voice.Neutral,
		Pitch:    99,
	})
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestSynthesize_UnsupportedEncoding(t *testing.T) {
	srv := &mockServer{}
	client := newTestClient(t, srv)

	_, err := client.Synthesize(context.Background(), tts.Request{Encoding: "flac"})
	assert.Error(t, err)
	assert.Nil(t, srv.lastSynth)
}

func TestSettingsOptions(t *testing.T) {
	assert.Empty(t, Settings{}.Options())
	assert.Len(t, Settings{
		CredentialsFile: "/tmp/key.json",
		Endpoint:        "texttospeech.example.com:443",
		QuotaProject:    "my-project",
	}.Options(), 3)
}

func TestGenderMapping(t *testing.T) {
	for _, g := range []voice.Gender{voice.Male, voice.Female, voice.Neutral, voice.Unspecified} {
		assert.Equal(t, g, fromSSMLGender(toSSMLGender(g)))
	}
}
