// Package mixer plays audio clips through the system speaker with beep.
// It needs cgo and the platform sound headers.
package mixer

import (
	"bytes"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
	"github.com/sirupsen/logrus"

	"worship/pkg/engine/audio"
	"worship/pkg/engine/logger"
)

const sampleRate = beep.SampleRate(44100)

// ClipLoader returns the encoded wav bytes for a clip.
type ClipLoader func(clip audio.Clip) ([]byte, error)

// Mixer plays clips through the system speaker.
type Mixer struct {
	mu          sync.Mutex
	load        ClipLoader
	mixer       *beep.Mixer
	buffers     map[audio.Clip]*beep.Buffer
	failed      map[audio.Clip]bool
	listener    mgl32.Vec3
	orientation mgl32.Quat
	initialized bool
	log         *logrus.Entry
}

// New creates a mixer that decodes clips on first use.
func New(load ClipLoader) *Mixer {
	return &Mixer{
		load:        load,
		mixer:       &beep.Mixer{},
		buffers:     make(map[audio.Clip]*beep.Buffer),
		failed:      make(map[audio.Clip]bool),
		orientation: mgl32.QuatIdent(),
		log:         logger.For("audio"),
	}
}

// Initialize opens the speaker and starts the mix.
func (m *Mixer) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(m.mixer)
	m.initialized = true
	return nil
}

// Close stops every playing clip.
func (m *Mixer) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Lock()
	m.mixer.Clear()
	speaker.Unlock()
	m.initialized = false
}

// SetListener moves the ear positioned clips are heard from.
func (m *Mixer) SetListener(pos mgl32.Vec3, orientation mgl32.Quat) {
	m.mu.Lock()
	m.listener = pos
	m.orientation = orientation
	m.mu.Unlock()
}

func (m *Mixer) Play(clip audio.Clip) {
	m.play(clip, 1, 0)
}

func (m *Mixer) PlayAt(clip audio.Clip, pos mgl32.Vec3) {
	m.mu.Lock()
	gain := audio.Gain(m.listener, pos)
	pan := audio.Pan(m.listener, m.orientation, pos)
	m.mu.Unlock()
	m.play(clip, gain, pan)
}

var _ audio.Player = (*Mixer)(nil)

func (m *Mixer) play(clip audio.Clip, gain, pan float64) {
	if clip == "" {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	buf := m.buffer(clip)
	if buf == nil {
		return
	}

	var s beep.Streamer = buf.Streamer(0, buf.Len())
	s = &effects.Pan{Streamer: s, Pan: pan}
	s = volume(s, gain)

	speaker.Lock()
	m.mixer.Add(s)
	speaker.Unlock()
}

// buffer decodes a clip once. Clips that fail to load are remembered and
// stay silent. Callers hold m.mu.
func (m *Mixer) buffer(clip audio.Clip) *beep.Buffer {
	if buf, ok := m.buffers[clip]; ok {
		return buf
	}
	if m.failed[clip] {
		return nil
	}

	buf, err := m.decode(clip)
	if err != nil {
		m.log.WithError(err).WithField("clip", clip).Warn("Sound disabled")
		m.failed[clip] = true
		return nil
	}
	m.buffers[clip] = buf
	return buf
}

func (m *Mixer) decode(clip audio.Clip) (*beep.Buffer, error) {
	data, err := m.load(clip)
	if err != nil {
		return nil, err
	}
	streamer, format, err := wav.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", clip, err)
	}
	defer streamer.Close()

	var s beep.Streamer = streamer
	if format.SampleRate != sampleRate {
		s = beep.Resample(4, format.SampleRate, sampleRate, streamer)
	}
	buf := beep.NewBuffer(beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2})
	buf.Append(s)
	return buf, nil
}

func volume(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}
