package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/lixenwraith/needle-insert/constants"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// sweep is an oscillator whose frequency glides linearly from one value to another
type sweep struct {
	from, to float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewSweep creates an oscillator gliding from one frequency to another over duration
// A constant tone is a sweep with equal endpoints
func NewSweep(from, to float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &sweep{
		from:     from,
		to:       to,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      rand.New(rand.NewSource(int64(from*1000 + to))),
	}
}

func (o *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		progress := float64(o.position) / float64(o.duration)
		freq := o.from + (o.to-o.from)*progress
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *sweep) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope wraps s with a linear attack and release and cuts it at duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := min(rate.N(attack), total)
	rel := min(rate.N(release), total-att)

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	if e.position >= e.totalSamples {
		return 0, false
	}
	if remaining := e.totalSamples - e.position; len(samples) > remaining {
		samples = samples[:remaining]
	}

	n, ok = e.streamer.Stream(samples)
	releaseStart := e.totalSamples - e.releaseSamples

	for i := 0; i < n; i++ {
		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		} else if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = float64(e.totalSamples-e.position) / float64(e.releaseSamples)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s in a linear volume in [0, 1]
// math.Log2(0) is -Inf, so zero volume is expressed as silent
func newVolume(s beep.Streamer, vol float64) *effects.Volume {
	v := &effects.Volume{Streamer: s, Base: 2}
	setVolume(v, vol)
	return v
}

func setVolume(v *effects.Volume, vol float64) {
	if vol <= 0 {
		v.Volume, v.Silent = 0, true
		return
	}
	v.Volume, v.Silent = math.Log2(min(vol, 1)), false
}

func shaped(s beep.Streamer, d time.Duration, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(s, d, constants.EffectAttack, constants.EffectRelease, rate)
}

// CreateLaunchSound is a short rising chirp played when a needle is fired
func CreateLaunchSound(rate beep.SampleRate) beep.Streamer {
	osc := NewSweep(constants.LaunchSweepFrom, constants.LaunchSweepTo, constants.LaunchSoundDuration, WaveSine, rate)
	return newVolume(shaped(osc, constants.LaunchSoundDuration, rate), 0.6)
}

// CreateHitSound is a dull thunk played when a needle lodges
func CreateHitSound(rate beep.SampleRate) beep.Streamer {
	d := constants.HitSoundDuration
	body := NewSweep(constants.HitFrequency, constants.HitFrequency*0.6, d, WaveSquare, rate)
	click := NewSweep(0, 0, d/3, WaveNoise, rate)

	mix := beep.Mix(newVolume(body, 0.5), newVolume(click, 0.25))
	return shaped(mix, d, rate)
}

// CreateGameOverSound is a descending saw buzz played on collision
func CreateGameOverSound(rate beep.SampleRate) beep.Streamer {
	osc := NewSweep(constants.GameOverFrom, constants.GameOverTo, constants.GameOverSoundDuration, WaveSaw, rate)
	return newVolume(shaped(osc, constants.GameOverSoundDuration, rate), 0.5)
}

// CreateLevelCompleteSound is a rising sine arpeggio played when a level is cleared
func CreateLevelCompleteSound(rate beep.SampleRate) (beep.Streamer, error) {
	notes := make([]beep.Streamer, 0, len(constants.LevelArpeggio))
	for _, freq := range constants.LevelArpeggio {
		tone, err := generators.SineTone(rate, freq)
		if err != nil {
			return nil, err
		}
		notes = append(notes, shaped(tone, constants.LevelNoteDuration, rate))
	}
	return newVolume(beep.Seq(notes...), 0.5), nil
}
