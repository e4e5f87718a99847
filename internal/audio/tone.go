package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// Wave is an oscillator shape.
type Wave uint8

const (
	WaveSine Wave = iota
	WaveSquare
	WaveTriangle
)

// tone is a fixed-length oscillator with a linear attack and release.
type tone struct {
	freq    float64
	slide   float64 // Hz per second
	wave    Wave
	rate    beep.SampleRate
	total   int
	attack  int
	release int

	phase float64
	pos   int
}

// Tone returns a streamer playing freq for d, sliding by slide Hz per second.
func Tone(freq, slide float64, wave Wave, d time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(d)
	return &tone{
		freq:    freq,
		slide:   slide,
		wave:    wave,
		rate:    rate,
		total:   total,
		attack:  min(rate.N(5*time.Millisecond), total/2),
		release: min(rate.N(30*time.Millisecond), total/2),
	}
}

func (t *tone) Stream(samples [][2]float64) (int, bool) {
	if t.pos >= t.total {
		return 0, false
	}
	for i := range samples {
		if t.pos >= t.total {
			return i, true
		}

		var v float64
		switch t.wave {
		case WaveSquare:
			v = 1
			if t.phase >= 0.5 {
				v = -1
			}
		case WaveTriangle:
			v = 4*math.Abs(t.phase-0.5) - 1
		default:
			v = math.Sin(2 * math.Pi * t.phase)
		}
		v *= t.envelope()

		samples[i][0] = v
		samples[i][1] = v

		f := t.freq + t.slide*float64(t.pos)/float64(t.rate)
		t.phase += f / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

func (t *tone) envelope() float64 {
	switch {
	case t.attack > 0 && t.pos < t.attack:
		return float64(t.pos) / float64(t.attack)
	case t.release > 0 && t.pos >= t.total-t.release:
		return float64(t.total-t.pos) / float64(t.release)
	default:
		return 1
	}
}

// withVolume scales s linearly; 0 silences it.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// pip is a plain sine of length d with no envelope.
func pip(freq float64, d time.Duration, rate beep.SampleRate) beep.Streamer {
	sine, err := generators.SineTone(rate, freq)
	if err != nil {
		// freq is above the Nyquist limit of rate
		return Tone(freq, 0, WaveSine, d, rate)
	}
	return beep.Take(rate.N(d), sine)
}

// Sound builds the streamer for a cue.
func Sound(c Cue, rate beep.SampleRate) beep.Streamer {
	ms := func(n int) time.Duration { return time.Duration(n) * time.Millisecond }
	switch c {
	case CueJump:
		return withVolume(Tone(330, 900, WaveSquare, ms(90), rate), 0.25)
	case CueLand:
		return withVolume(Tone(110, -200, WaveTriangle, ms(50), rate), 0.4)
	case CueHurt:
		return withVolume(Tone(180, -400, WaveSquare, ms(200), rate), 0.3)
	case CueStomp:
		return withVolume(beep.Seq(
			Tone(220, 0, WaveSquare, ms(40), rate),
			Tone(440, 0, WaveSquare, ms(60), rate),
		), 0.3)
	case CueBreak:
		return withVolume(beep.Seq(
			Tone(140, -300, WaveSquare, ms(60), rate),
			Tone(90, -150, WaveTriangle, ms(140), rate),
		), 0.3)
	case CueCoin:
		return withVolume(beep.Seq(
			pip(988, ms(60), rate),
			pip(1319, ms(140), rate),
		), 0.35)
	case CueDoor:
		return withVolume(Tone(196, 300, WaveTriangle, ms(220), rate), 0.35)
	default:
		return withVolume(Tone(70, 0, WaveSquare, ms(150), rate), 0.25)
	}
}
