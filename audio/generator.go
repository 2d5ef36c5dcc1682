package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/trailfx/parameter"
)

// CueFrequency maps pointer speed to cue pitch, rising from the base frequency and capped
func CueFrequency(speed float64) float64 {
	over := math.Max(speed-parameter.SpawnSpeedThreshold, 0)
	freq := parameter.AudioBaseFrequency * (1 + over/parameter.SpawnSpeedDivisor/4)
	return math.Min(freq, parameter.AudioMaxFrequency)
}

// SweepGenerator is a finite sine sweep with a fast attack and exponential tail
type SweepGenerator struct {
	sr      beep.SampleRate
	from    float64
	to      float64
	pos     int
	samples int
	phase   float64
}

// NewSweepGenerator creates a sweep from one frequency to another over d
func NewSweepGenerator(sr beep.SampleRate, from, to float64, d time.Duration) *SweepGenerator {
	return &SweepGenerator{
		sr:      sr,
		from:    from,
		to:      to,
		samples: max(sr.N(d), 1),
	}
}

func (g *SweepGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	if g.pos >= g.samples {
		return 0, false
	}
	for i := range samples {
		if g.pos >= g.samples {
			return i, true
		}
		p := float64(g.pos) / float64(g.samples)
		freq := g.from + (g.to-g.from)*p

		// Phase accumulation keeps the sweep continuous
		g.phase += 2 * math.Pi * freq / float64(g.sr)

		attack := math.Min(p/0.1, 1)
		envelope := attack * math.Exp(-p*4)
		sample := 0.12 * envelope * math.Sin(g.phase)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *SweepGenerator) Err() error {
	return nil
}
