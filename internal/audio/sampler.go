// Package audio plays drum samples through the system speaker using beep.
// Samples are loaded once into memory buffers; a strike plays a fresh
// streamer over the buffer, so overlapping hits mix naturally.
package audio

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
)

// SampleRate is the playback sample rate. Decoded WAV files at other rates
// are resampled on load.
const SampleRate = beep.SampleRate(44100)

// speakerBufferLen is the speaker buffer duration; short enough that a
// strike is heard with no perceptible lag.
const speakerBufferLen = 50 * time.Millisecond

// Sampler holds one in-memory buffer per sample name and plays them on
// demand. Play before Initialize is a no-op, so the frame loop never has to
// care whether audio came up.
type Sampler struct {
	mu          sync.Mutex
	buffers     map[string]*beep.Buffer
	initialized bool
}

// NewSampler creates an empty Sampler.
func NewSampler() *Sampler {
	return &Sampler{
		buffers: make(map[string]*beep.Buffer),
	}
}

// Initialize opens the speaker. Safe to call more than once.
func (s *Sampler) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}

	if err := speaker.Init(SampleRate, SampleRate.N(speakerBufferLen)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}

	s.initialized = true
	return nil
}

// Load prepares a buffer for each sample name, reading <name>.wav from dir
// when present and falling back to a synthesized voice otherwise. Loading
// does not require the speaker to be initialized.
func (s *Sampler) Load(dir string, names []string) {
	for _, name := range names {
		path := filepath.Join(dir, name+".wav")
		buf, err := loadWAV(path)
		if err != nil {
			log.Printf("Sample %s unavailable (%v), using synthesized voice", name, err)
			buf = bufferFromSamples(synthVoice(name))
		}

		s.mu.Lock()
		s.buffers[name] = buf
		s.mu.Unlock()
	}
}

// Play triggers the named sample. Unknown names and an uninitialized speaker
// are both silent no-ops.
func (s *Sampler) Play(name string) {
	s.mu.Lock()
	buf, ok := s.buffers[name]
	ready := s.initialized
	s.mu.Unlock()

	if !ok || !ready {
		return
	}

	speaker.Play(buf.Streamer(0, buf.Len()))
}

// Has reports whether a buffer exists for the sample name.
func (s *Sampler) Has(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.buffers[name]
	return ok
}

// Close silences the speaker. The speaker itself stays open; beep does not
// expose a close, and clearing pending streamers is enough on shutdown.
func (s *Sampler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		speaker.Clear()
	}
	s.initialized = false
}

// loadWAV decodes a WAV file into a memory buffer at the playback rate.
func loadWAV(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	streamer, format, err := wav.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	defer streamer.Close()

	buf := beep.NewBuffer(bufferFormat())
	if format.SampleRate != SampleRate {
		buf.Append(beep.Resample(4, format.SampleRate, SampleRate, streamer))
	} else {
		buf.Append(streamer)
	}

	return buf, nil
}

// bufferFromSamples wraps mono float samples into a stereo playback buffer.
func bufferFromSamples(samples floatBuffer) *beep.Buffer {
	buf := beep.NewBuffer(bufferFormat())
	buf.Append(&monoStreamer{samples: samples})
	return buf
}

func bufferFormat() beep.Format {
	return beep.Format{
		SampleRate:  SampleRate,
		NumChannels: 2,
		Precision:   2,
	}
}

// monoStreamer streams a mono sample slice to both output channels.
type monoStreamer struct {
	samples floatBuffer
	pos     int
}

func (m *monoStreamer) Stream(out [][2]float64) (int, bool) {
	if m.pos >= len(m.samples) {
		return 0, false
	}

	n := 0
	for i := range out {
		if m.pos >= len(m.samples) {
			break
		}
		v := m.samples[m.pos]
		out[i][0] = v
		out[i][1] = v
		m.pos++
		n++
	}
	return n, true
}

func (m *monoStreamer) Err() error {
	return nil
}
