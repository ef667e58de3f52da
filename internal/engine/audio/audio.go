// Package audio plays the looping ambience track behind the scene.
package audio

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
	"go.uber.org/zap"

	"github.com/Faultbox/witchhut/internal/logger"
)

// DefaultSampleRate is the speaker rate; tracks at other rates are resampled.
const DefaultSampleRate = beep.SampleRate(44100)

// ErrNotInitialized is returned when playback is requested before Init.
var ErrNotInitialized = errors.New("audio not initialized")

// Manager owns the speaker and a single looping background track.
type Manager struct {
	mu sync.Mutex

	initialized bool
	sampleRate  beep.SampleRate

	source beep.StreamSeekCloser
	ctrl   *beep.Ctrl
	volume *effects.Volume

	masterVolume float64
}

// New creates a manager at full volume. Nothing is opened until Init.
func New() *Manager {
	return &Manager{masterVolume: 1.0}
}

// Init opens the speaker. Calling it twice is a no-op.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	m.sampleRate = DefaultSampleRate
	if err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}

	m.initialized = true
	return nil
}

// Close stops playback and releases the track.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopInternal()
	m.initialized = false
}

// SetMasterVolume sets the volume in [0, 1]; out-of-range values are clamped.
func (m *Manager) SetMasterVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.masterVolume = clamp(vol, 0, 1)
	m.applyVolume()
}

// applyVolume must be called with mu held.
func (m *Manager) applyVolume() {
	if m.volume == nil {
		return
	}
	speaker.Lock()
	defer speaker.Unlock()
	if m.masterVolume <= 0 {
		m.volume.Silent = true
		return
	}
	m.volume.Silent = false
	m.volume.Volume = volumeToDb(m.masterVolume)
}

// volumeToDb maps a linear gain to decibels; 1 is 0 dB, 0.5 is about -6 dB.
func volumeToDb(vol float64) float64 {
	if vol <= 0 {
		return -100
	}
	return 20 * math.Log10(vol)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// PlayLooping replaces the current track with the WAV file at path and
// loops it until the next PlayLooping or Close.
func (m *Manager) PlayLooping(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return ErrNotInitialized
	}

	m.stopInternal()

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open track: %w", err)
	}
	source, looped, err := decodeLoop(f, m.sampleRate)
	if err != nil {
		f.Close()
		return err
	}

	m.ctrl = &beep.Ctrl{Streamer: looped}
	m.volume = &effects.Volume{Streamer: m.ctrl, Base: 2}
	m.source = source
	m.applyVolume()

	speaker.Play(m.volume)

	logger.Named("audio").Info("playing background track", zap.String("path", path))
	return nil
}

// decodeLoop decodes a WAV stream and wraps it so it restarts at the end.
// The returned source must be closed by the caller.
func decodeLoop(f *os.File, rate beep.SampleRate) (beep.StreamSeekCloser, beep.Streamer, error) {
	source, format, err := wav.Decode(f)
	if err != nil {
		return nil, nil, fmt.Errorf("decode wav: %w", err)
	}

	var resampled beep.Streamer = source
	if format.SampleRate != rate {
		resampled = beep.Resample(4, format.SampleRate, rate, source)
	}
	return source, &loopStreamer{source: source, resampled: resampled}, nil
}

func (m *Manager) stopInternal() {
	if m.ctrl != nil {
		speaker.Lock()
		m.ctrl.Paused = true
		speaker.Unlock()
	}
	if m.initialized {
		speaker.Clear()
	}
	if m.source != nil {
		m.source.Close()
		m.source = nil
	}
	m.ctrl = nil
	m.volume = nil
}

// loopStreamer rewinds source whenever the wrapped stream runs dry.
type loopStreamer struct {
	source    beep.StreamSeekCloser
	resampled beep.Streamer
}

func (l *loopStreamer) Stream(samples [][2]float64) (int, bool) {
	filled := 0
	for filled < len(samples) {
		n, ok := l.resampled.Stream(samples[filled:])
		filled += n
		if ok {
			continue
		}
		if err := l.source.Seek(0); err != nil {
			return filled, filled > 0
		}
		if n == 0 && l.source.Len() == 0 {
			// Empty track; looping would spin forever.
			return filled, filled > 0
		}
	}
	return filled, true
}

func (l *loopStreamer) Err() error {
	return l.source.Err()
}
