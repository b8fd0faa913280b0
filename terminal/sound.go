package terminal

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Sounder plays the feedback sounds of play mode.
type Sounder interface {
	Blocked()
	Finished()
	Close()
}

// Silent is a Sounder that plays nothing.
type Silent struct{}

func (Silent) Blocked()  {}
func (Silent) Finished() {}
func (Silent) Close()    {}

// Speaker plays tones on the default audio device.
type Speaker struct {
	rate beep.SampleRate
}

// NewSpeaker opens the audio device. Callers fall back to Silent on error.
func NewSpeaker() (*Speaker, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("initializing speaker: %w", err)
	}
	return &Speaker{rate: sampleRate}, nil
}

// Blocked plays a short low buzz.
func (s *Speaker) Blocked() {
	if st, err := blockedTone(s.rate); err == nil {
		speaker.Play(st)
	}
}

// Finished plays a rising three note chime.
func (s *Speaker) Finished() {
	if st, err := chime(s.rate); err == nil {
		speaker.Play(st)
	}
}

func (s *Speaker) Close() {
	speaker.Clear()
	speaker.Close()
}

func blockedTone(rate beep.SampleRate) (beep.Streamer, error) {
	return tone(rate, 220, 80*time.Millisecond)
}

func chime(rate beep.SampleRate) (beep.Streamer, error) {
	notes := []struct {
		freq float64
		dur  time.Duration
	}{
		{523.25, 120 * time.Millisecond},
		{659.25, 120 * time.Millisecond},
		{783.99, 200 * time.Millisecond},
	}

	streamers := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		st, err := tone(rate, n.freq, n.dur)
		if err != nil {
			return nil, err
		}
		streamers = append(streamers, st)
	}
	return beep.Seq(streamers...), nil
}

func tone(rate beep.SampleRate, freq float64, d time.Duration) (beep.Streamer, error) {
	sine, err := generators.SineTone(rate, freq)
	if err != nil {
		return nil, err
	}
	return &effects.Volume{
		Streamer: beep.Take(rate.N(d), sine),
		Base:     2,
		Volume:   -2,
	}, nil
}
