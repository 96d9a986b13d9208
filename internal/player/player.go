// SPDX-License-Identifier: EPL-2.0

// Package player auditions rendered samples on the default audio device.
package player

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/rs/zerolog"
)

const (
	// SampleRate of the output device; sounds are rendered to it first.
	SampleRate = 48000
	// ChannelCount is mono: every sound is already mixed down.
	ChannelCount = 1
)

// Player plays mono float samples at SampleRate.
type Player interface {
	Play(name string, samples []float32) error
	Close() error
}

var (
	otoCtx *oto.Context
	once   sync.Once
	ctxErr error
)

// initOtoContext creates the process-wide oto context. oto allows only
// one per process.
func initOtoContext() (*oto.Context, error) {
	once.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   SampleRate,
			ChannelCount: ChannelCount,
			Format:       oto.FormatFloat32LE,
		}

		var ready chan struct{}
		otoCtx, ready, ctxErr = oto.NewContext(op)
		if ctxErr == nil {
			<-ready
		}
	})

	return otoCtx, ctxErr
}

// Encode lays samples out as little-endian float32 PCM.
func Encode(samples []float32) []byte {
	out := make([]byte, 4*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint32(out[4*i:], math.Float32bits(s))
	}

	return out
}

// OtoPlayer plays through github.com/ebitengine/oto/v3.
type OtoPlayer struct {
	log zerolog.Logger
	ctx *oto.Context
}

func NewOtoPlayer(log zerolog.Logger) (*OtoPlayer, error) {
	ctx, err := initOtoContext()
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize Oto audio context")
		return nil, fmt.Errorf("failed to initialize audio context: %w", err)
	}
	log.Debug().Msg("Oto audio context initialized")

	return &OtoPlayer{
		log: log.With().Str("player_type", "oto").Logger(),
		ctx: ctx,
	}, nil
}

// Play blocks until the samples have been played.
func (p *OtoPlayer) Play(name string, samples []float32) error {
	if len(samples) == 0 {
		return nil
	}

	p.log.Debug().Str("sample_name", name).Int("frames", len(samples)).Msg("Playing sample")

	if err := p.playReader(bytes.NewReader(Encode(samples))); err != nil {
		p.log.Error().Err(err).Str("sample_name", name).Msg("Failed to play sound")
		return fmt.Errorf("failed to play %q: %w", name, err)
	}

	return nil
}

func (p *OtoPlayer) playReader(r io.Reader) error {
	pl := p.ctx.NewPlayer(r)
	defer pl.Close()

	pl.Play()
	for pl.IsPlaying() {
		time.Sleep(time.Millisecond)
	}

	if err := pl.Err(); err != nil {
		return fmt.Errorf("oto player error: %w", err)
	}

	return nil
}

// Close is a no-op; the oto context lives as long as the process.
func (p *OtoPlayer) Close() error {
	p.log.Debug().Msg("Closing OtoPlayer")
	return nil
}

// StubPlayer logs instead of playing, for machines without audio.
type StubPlayer struct {
	log    zerolog.Logger
	Played []string
}

func NewStubPlayer(log zerolog.Logger) *StubPlayer {
	return &StubPlayer{log: log.With().Str("player_type", "stub").Logger()}
}

func (p *StubPlayer) Play(name string, samples []float32) error {
	p.log.Info().
		Str("sample_name", name).
		Dur("duration", time.Duration(len(samples))*time.Second/SampleRate).
		Msg("Simulating playing sample")
	p.Played = append(p.Played, name)

	return nil
}

func (p *StubPlayer) Close() error { return nil }
