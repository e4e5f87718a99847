package audio

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/udisondev/cavern/internal/event"
)

// SampleRate is the output rate of every cue.
const SampleRate = beep.SampleRate(44100)

// Player mixes event cues onto the system speaker.
// Safe for concurrent use; a Player that failed to open stays silent.
type Player struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	open   bool
	volume float64
}

// NewPlayer creates a closed player. volume is a linear gain in [0, 1].
func NewPlayer(volume float64) *Player {
	return &Player{
		mixer:  &beep.Mixer{},
		volume: min(max(volume, 0), 1),
	}
}

// Open initializes the speaker and starts the mixer.
func (p *Player) Open() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.open {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(50*time.Millisecond)); err != nil {
		return fmt.Errorf("initializing speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.open = true
	slog.Debug("audio opened", "rate", int(SampleRate))
	return nil
}

// Close silences the mixer and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.open {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.open = false
}

// Play queues the cues for a tick's events.
func (p *Player) Play(events []event.Event) {
	cues := Cues(events)
	if len(cues) == 0 {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.open {
		return
	}
	speaker.Lock()
	for _, c := range cues {
		p.mixer.Add(withVolume(Sound(c, SampleRate), p.volume))
	}
	speaker.Unlock()
}
