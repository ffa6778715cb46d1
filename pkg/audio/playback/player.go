// Package playback plays MP3 files on the local sound device through oto.
package playback

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/hajimehoshi/go-mp3"
)

const (
	playbackSampleRate   = 44100
	playbackChannelCount = 2
)

// Player plays MP3 files through the default audio device.
type Player struct {
	once   sync.Once
	otoCtx *oto.Context
	err    error
}

func NewPlayer() *Player {
	return &Player{}
}

// init creates the oto context on first use; oto allows only one per process.
func (p *Player) init() error {
	p.once.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   playbackSampleRate,
			ChannelCount: playbackChannelCount,
			Format:       oto.FormatSignedInt16LE,
		}
		otoCtx, ready, err := oto.NewContext(op)
		if err != nil {
			p.err = fmt.Errorf("failed to create oto context: %w", err)
			return
		}
		<-ready
		p.otoCtx = otoCtx
	})
	return p.err
}

// PlayFile decodes the MP3 file at path and blocks until playback finishes
// or ctx is cancelled.
func (p *Player) PlayFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read audio file: %w", err)
	}

	decoder, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create mp3 decoder: %w", err)
	}
	pcmData, err := io.ReadAll(decoder)
	if err != nil {
		return fmt.Errorf("failed to decode mp3 data: %w", err)
	}
	if decoder.SampleRate() != playbackSampleRate {
		pcmData = resample(pcmData, decoder.SampleRate(), playbackSampleRate)
	}

	if err := p.init(); err != nil {
		return err
	}

	slog.Info("playing", "file", path)
	player := p.otoCtx.NewPlayer(bytes.NewReader(pcmData))
	defer player.Close()
	player.Play()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for player.IsPlaying() {
		select {
		case <-ctx.Done():
			player.Pause()
			return ctx.Err()
		case <-ticker.C:
		}
	}
	slog.Info("finished playing", "file", path)
	return nil
}

// resample converts interleaved 16-bit stereo PCM between sample rates using
// linear interpolation per channel.
func resample(pcmData []byte, fromRate, toRate int) []byte {
	if fromRate == toRate || fromRate <= 0 || toRate <= 0 {
		return pcmData
	}

	frameCount := len(pcmData) / (2 * playbackChannelCount)
	if frameCount == 0 {
		return nil
	}
	samples := make([]int16, frameCount*playbackChannelCount)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(pcmData[i*2 : i*2+2]))
	}

	ratio := float64(toRate) / float64(fromRate)
	newFrameCount := int(float64(frameCount) * ratio)
	result := make([]byte, newFrameCount*playbackChannelCount*2)

	for i := 0; i < newFrameCount; i++ {
		srcPos := float64(i) / ratio
		srcIdx := int(srcPos)
		frac := srcPos - float64(srcIdx)
		for ch := 0; ch < playbackChannelCount; ch++ {
			var sample int16
			if srcIdx >= frameCount-1 {
				sample = samples[(frameCount-1)*playbackChannelCount+ch]
			} else {
				s1 := float64(samples[srcIdx*playbackChannelCount+ch])
				s2 := float64(samples[(srcIdx+1)*playbackChannelCount+ch])
				sample = int16(s1 + (s2-s1)*frac)
			}
			off := (i*playbackChannelCount + ch) * 2
			binary.LittleEndian.PutUint16(result[off:off+2], uint16(sample))
		}
	}
	return result
}
