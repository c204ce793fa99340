// Package audio turns simulation events into synthesized sound cues
package audio

import (
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/starfall/event"
	"github.com/lixenwraith/starfall/parameter"
	"github.com/lixenwraith/starfall/status"
	"github.com/lixenwraith/starfall/vmath"
)

// Output receives finished cue streamers
type Output interface {
	Play(s beep.Streamer) bool
}

// MixerOutput adds cues to a mixer owned by the caller, capped at MaxVoices
type MixerOutput struct {
	Mixer     *beep.Mixer
	MaxVoices int
}

func NewMixerOutput() *MixerOutput {
	return &MixerOutput{Mixer: &beep.Mixer{}, MaxVoices: parameter.AudioMaxVoices}
}

func (m *MixerOutput) Play(s beep.Streamer) bool {
	if m.MaxVoices > 0 && m.Mixer.Len() >= m.MaxVoices {
		return false
	}
	m.Mixer.Add(s)
	return true
}

// Speaker plays cues on the system audio device
type Speaker struct {
	mu          sync.Mutex
	out         *MixerOutput
	initialized bool
}

func NewSpeaker() *Speaker {
	return &Speaker{out: NewMixerOutput()}
}

// Init opens the device and starts the mixer
func (s *Speaker) Init(rate beep.SampleRate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := speaker.Init(rate, rate.N(parameter.AudioBufferDuration)); err != nil {
		return err
	}
	speaker.Play(s.out.Mixer)
	s.initialized = true
	return nil
}

func (s *Speaker) Play(st beep.Streamer) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return false
	}
	speaker.Lock()
	defer speaker.Unlock()
	return s.out.Play(st)
}

// Close silences the mixer and releases the device
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	speaker.Lock()
	s.out.Mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	s.initialized = false
}

// Options configures a CuePlayer
type Options struct {
	Volume     float64
	SampleRate beep.SampleRate
	Status     *status.Registry
	Logger     *zerolog.Logger
}

// DefaultOptions returns options at the default volume and rate
func DefaultOptions() Options {
	return Options{
		Volume:     parameter.AudioDefaultVolume,
		SampleRate: beep.SampleRate(parameter.AudioSampleRate),
	}
}

// CuePlayer is an event handler that plays one cue per event
// A cue fires at most once per frame so volleys and chain explosions do not stack
type CuePlayer struct {
	out       Output
	volume    float64
	rate      beep.SampleRate
	muted     bool
	lastFrame [cueCount]int64

	statPlayed  *atomic.Int64
	statDropped *atomic.Int64
	log         zerolog.Logger
}

// NewCuePlayer creates a player writing to out
func NewCuePlayer(out Output, opts Options) *CuePlayer {
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = opts.Logger.With().Str("component", "audio").Logger()
	}
	reg := opts.Status
	if reg == nil {
		reg = status.NewRegistry()
	}
	if opts.SampleRate <= 0 {
		opts.SampleRate = beep.SampleRate(parameter.AudioSampleRate)
	}

	p := &CuePlayer{
		out:         out,
		volume:      vmath.Clamp01(opts.Volume),
		rate:        opts.SampleRate,
		statPlayed:  reg.Ints.Get("audio.played"),
		statDropped: reg.Ints.Get("audio.dropped"),
		log:         log,
	}
	for i := range p.lastFrame {
		p.lastFrame[i] = -1
	}
	return p
}

// SetMuted toggles all output
func (p *CuePlayer) SetMuted(muted bool) {
	p.muted = muted
}

func (p *CuePlayer) Muted() bool {
	return p.muted
}

// SetVolume sets master volume in [0, 1]
func (p *CuePlayer) SetVolume(v float64) {
	p.volume = vmath.Clamp01(v)
}

// Play synthesizes and outputs c scaled by gain, returns false if suppressed
func (p *CuePlayer) Play(c Cue, gain float64, frame int64) bool {
	if p.muted || p.out == nil || c < 0 || c >= cueCount {
		return false
	}
	if p.lastFrame[c] == frame {
		return false
	}
	p.lastFrame[c] = frame

	s := Synthesize(c, p.volume*gain, p.rate)
	if s == nil || !p.out.Play(s) {
		p.statDropped.Add(1)
		p.log.Debug().Str("cue", c.String()).Msg("cue dropped")
		return false
	}
	p.statPlayed.Add(1)
	return true
}

// EventTypes implements event.Handler
func (p *CuePlayer) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventWeaponFired,
		event.EventFireRejected,
		event.EventProjectileImpact,
		event.EventEntityDestroyed,
		event.EventUpgradePurchased,
		event.EventCollision,
	}
}

// HandleEvent implements event.Handler
func (p *CuePlayer) HandleEvent(ev event.GameEvent) {
	switch ev.Type {
	case event.EventWeaponFired:
		if pl, ok := ev.Payload.(*event.WeaponFiredPayload); ok {
			p.Play(CueForEffect(pl.Effect), sideGain(pl.Player), ev.Frame)
		}
	case event.EventFireRejected:
		if pl, ok := ev.Payload.(*event.FireRejectedPayload); ok && pl.Player {
			p.Play(CueDenied, 1, ev.Frame)
		}
	case event.EventProjectileImpact:
		p.Play(CueImpact, 1, ev.Frame)
	case event.EventEntityDestroyed:
		p.Play(CueExplosion, 1, ev.Frame)
	case event.EventUpgradePurchased:
		p.Play(CuePurchase, 1, ev.Frame)
	case event.EventCollision:
		p.Play(CueCollision, 1, ev.Frame)
	}
}

func sideGain(player bool) float64 {
	if player {
		return 1
	}
	return parameter.AudioHostileVolume
}
