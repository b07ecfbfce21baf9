package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
)

// drain streams s to completion and returns the number of samples.
func drain(t *testing.T, s beep.Streamer, limit int) int {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	for total < limit {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			for _, v := range buf[i] {
				if math.IsNaN(v) || v < -1 || v > 1 {
					t.Fatalf("sample %d out of range: %v", total+i, v)
				}
			}
		}
		total += n
		if !ok {
			return total
		}
	}
	t.Fatalf("stream did not end within %d samples", limit)
	return total
}

func TestOscillatorLength(t *testing.T) {
	rate := beep.SampleRate(44100)
	for _, wave := range []WaveType{WaveSine, WaveSquare, WaveSaw, WaveNoise} {
		osc := NewOscillator(440, 100*time.Millisecond, wave, rate)
		if got := drain(t, osc, rate.N(time.Second)); got != rate.N(100*time.Millisecond) {
			t.Errorf("wave %d streamed %d samples, want %d", wave, got, rate.N(100*time.Millisecond))
		}
		if osc.Err() != nil {
			t.Errorf("wave %d: unexpected error %v", wave, osc.Err())
		}
	}
}

func TestEnvelopeRamps(t *testing.T) {
	rate := beep.SampleRate(1000)
	osc := NewOscillator(0, 100*time.Millisecond, WaveSquare, rate) // constant +1
	env := NewEnvelope(osc, 100*time.Millisecond, 10*time.Millisecond, 10*time.Millisecond, rate)

	buf := make([][2]float64, 100)
	n, _ := env.Stream(buf)
	if n != 100 {
		t.Fatalf("streamed %d samples, want 100", n)
	}
	if buf[0][0] != 0 {
		t.Errorf("attack should start silent, got %v", buf[0][0])
	}
	if buf[50][0] != 1 {
		t.Errorf("sustain should be full volume, got %v", buf[50][0])
	}
	if buf[99][0] >= buf[90][0] {
		t.Errorf("release should fade: %v >= %v", buf[99][0], buf[90][0])
	}
}

func TestCueSoundsEnd(t *testing.T) {
	for _, c := range []breakout.Cue{breakout.CueBleep, breakout.CueSolid, breakout.CuePaddle, breakout.CuePowerUp} {
		t.Run(c.String(), func(t *testing.T) {
			n := drain(t, CueSound(c, sampleRate), sampleRate.N(time.Second))
			if n == 0 {
				t.Error("cue produced no samples")
			}
		})
	}
}

func TestPlayBeforeInitialize(t *testing.T) {
	sm := NewSoundManager(config.BreakoutAudio{Enabled: true})
	sm.Play(breakout.CueBleep)
	if got := sm.Voices(); got != 0 {
		t.Errorf("Voices() = %d before Initialize, want 0", got)
	}
}

func TestPlayCapsVoices(t *testing.T) {
	sm := NewSoundManager(config.BreakoutAudio{Enabled: true})
	sm.initialized = true // mixer only; no speaker in tests
	for range maxVoices + 4 {
		sm.Play(breakout.CuePaddle)
	}
	if got := sm.Voices(); got != maxVoices {
		t.Errorf("Voices() = %d, want %d", got, maxVoices)
	}
}

func TestDisabledInitializeIsNoop(t *testing.T) {
	sm := NewSoundManager(config.BreakoutAudio{Enabled: false})
	if err := sm.Initialize(); err != nil {
		t.Fatalf("Initialize() = %v", err)
	}
	sm.Play(breakout.CueSolid)
	if sm.Voices() != 0 {
		t.Error("disabled manager should not play")
	}
	sm.Cleanup()
}

func TestNopImplementsAudio(t *testing.T) {
	var a breakout.Audio = Nop{}
	a.Play(breakout.CuePowerUp)
}
