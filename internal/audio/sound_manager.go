// Package audio plays the game's sound cues through the system speaker.
// Every cue is synthesized; there are no sample files.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
)

const sampleRate = beep.SampleRate(44100)

// maxVoices caps overlapping cues so a brick cascade cannot pile up.
const maxVoices = 8

// SoundManager mixes cue sounds into the speaker.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      *effects.Volume
	enabled     bool
	initialized bool
}

// NewSoundManager creates a manager. Call Initialize before playing.
func NewSoundManager(cfg config.BreakoutAudio) *SoundManager {
	mixer := &beep.Mixer{}
	return &SoundManager{
		mixer:   mixer,
		volume:  &effects.Volume{Streamer: mixer, Base: 2, Volume: cfg.Volume},
		enabled: cfg.Enabled,
	}
}

// Initialize opens the speaker.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized || !sm.enabled {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: init speaker: %w", err)
	}
	speaker.Play(sm.volume)
	sm.initialized = true
	return nil
}

// Play starts a cue. It never blocks on playback and is a no-op until
// Initialize succeeds.
func (sm *SoundManager) Play(c breakout.Cue) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	s := CueSound(c, sampleRate)

	speaker.Lock()
	if sm.mixer.Len() < maxVoices {
		sm.mixer.Add(s)
	}
	speaker.Unlock()
}

// Voices returns the number of cues still playing.
func (sm *SoundManager) Voices() int {
	speaker.Lock()
	defer speaker.Unlock()
	return sm.mixer.Len()
}

// Cleanup stops all sounds and closes the speaker.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Clear()
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	sm.initialized = false
}

// Nop discards every cue. Used when muted and for SSH sessions.
type Nop struct{}

// Play does nothing.
func (Nop) Play(breakout.Cue) {}
