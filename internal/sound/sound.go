//go:build !ci

// Package sound plays short notification sounds in the terminal client.
package sound

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// NewTurn is played when the server starts a new turn.
const NewTurn = "new_turn"

const sampleRate = beep.SampleRate(44100)

type SoundManager struct {
	dir     string
	buffers map[string]*beep.Buffer
	enabled bool
}

// NewSoundManager loads sounds from dir when Init is called. Missing files
// fall back to a generated tone for NewTurn.
func NewSoundManager(dir string) *SoundManager {
	return &SoundManager{
		dir:     dir,
		buffers: make(map[string]*beep.Buffer),
	}
}

func (sm *SoundManager) Init() error {
	// smaller buffer for lower latency
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("failed to initialize speaker: %w", err)
	}
	sm.enabled = true

	if err := sm.loadSoundFiles(); err != nil {
		return err
	}
	if _, ok := sm.buffers[NewTurn]; !ok {
		buf, err := chime()
		if err != nil {
			return err
		}
		sm.buffers[NewTurn] = buf
	}
	return nil
}

func standardFormat() beep.Format {
	return beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 4}
}

// chime renders two short sine tones.
func chime() (*beep.Buffer, error) {
	buf := beep.NewBuffer(standardFormat())
	for _, freq := range []float64{660, 880} {
		tone, err := generators.SineTone(sampleRate, freq)
		if err != nil {
			return nil, fmt.Errorf("generate tone: %w", err)
		}
		buf.Append(beep.Take(sampleRate.N(120*time.Millisecond), tone))
	}
	return buf, nil
}

// loadSoundFiles loads every mp3 and wav file in the sound directory
func (sm *SoundManager) loadSoundFiles() error {
	if sm.dir == "" {
		return nil
	}
	files, err := os.ReadDir(sm.dir)
	if err != nil {
		// no directory, no custom sounds
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read sound directory: %w", err)
	}

	for _, file := range files {
		if file.IsDir() {
			continue
		}
		name := file.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".mp3" && ext != ".wav" {
			continue
		}
		// keep loading the rest if one file is broken
		_ = sm.loadSoundFile(name, strings.TrimSuffix(name, filepath.Ext(name)), ext)
	}
	return nil
}

func (sm *SoundManager) loadSoundFile(name, baseName, ext string) error {
	f, err := os.Open(filepath.Clean(filepath.Join(sm.dir, name)))
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	var streamer beep.StreamSeekCloser
	var format beep.Format
	switch ext {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	}
	if err != nil {
		return err
	}
	defer func() { _ = streamer.Close() }()

	var resampled beep.Streamer = streamer
	if format.SampleRate != sampleRate {
		resampled = beep.Resample(4, format.SampleRate, sampleRate, streamer)
	}

	buffer := beep.NewBuffer(standardFormat())
	buffer.Append(resampled)
	sm.buffers[baseName] = buffer
	return nil
}

func (sm *SoundManager) Play(name string) {
	if !sm.enabled {
		return
	}
	buffer, ok := sm.buffers[name]
	if !ok {
		return
	}
	speaker.Play(buffer.Streamer(0, buffer.Len()))
}

func (sm *SoundManager) Close() {
	sm.enabled = false
}
