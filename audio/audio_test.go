package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/starfall/event"
	"github.com/lixenwraith/starfall/status"
)

const testRate = beep.SampleRate(44100)

// drain streams s to exhaustion and returns sample count and peak amplitude
func drain(t *testing.T, s beep.Streamer) (int, float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	total, peak := 0, 0.0
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		for j := 0; j < n; j++ {
			v := math.Abs(buf[j][0])
			require.False(t, math.IsNaN(v))
			if v > peak {
				peak = v
			}
		}
		total += n
		if !ok {
			return total, peak
		}
	}
	t.Fatal("streamer never drained")
	return 0, 0
}

func TestOscillatorWaves(t *testing.T) {
	for _, w := range []WaveType{WaveSine, WaveSquare, WaveSaw, WaveNoise} {
		osc := NewOscillator(440, 50*time.Millisecond, w, testRate)
		n, peak := drain(t, osc)
		assert.Equal(t, testRate.N(50*time.Millisecond), n)
		assert.LessOrEqual(t, peak, 1.0)
		assert.Greater(t, peak, 0.0)
		assert.NoError(t, osc.Err())
	}
}

func TestEnvelopeRamps(t *testing.T) {
	d := 100 * time.Millisecond
	env := NewEnvelope(NewOscillator(0, d, WaveSquare, testRate), d, 10*time.Millisecond, 10*time.Millisecond, testRate)

	buf := make([][2]float64, testRate.N(d))
	n, _ := env.Stream(buf)
	require.Equal(t, len(buf), n)

	assert.Equal(t, 0.0, buf[0][0], "attack starts silent")
	assert.Equal(t, 1.0, buf[n/2][0], "sustain at full level")
	assert.Less(t, math.Abs(buf[n-1][0]), 0.01, "release ends near silence")
}

func TestNewVolumeSilent(t *testing.T) {
	s := newVolume(NewOscillator(440, 10*time.Millisecond, WaveSquare, testRate), 0)
	_, peak := drain(t, s)
	assert.Equal(t, 0.0, peak)
}

func TestSynthesizeAllCues(t *testing.T) {
	for c := Cue(0); c < cueCount; c++ {
		t.Run(c.String(), func(t *testing.T) {
			s := Synthesize(c, 1, testRate)
			require.NotNil(t, s)
			n, peak := drain(t, s)
			assert.Greater(t, n, 0)
			assert.Greater(t, peak, 0.0)
		})
	}
	assert.Nil(t, Synthesize(cueCount, 1, testRate))
	assert.Equal(t, "unknown", Cue(-1).String())
}

func TestCueForEffect(t *testing.T) {
	assert.Equal(t, CueBeam, CueForEffect("beam"))
	assert.Equal(t, CueEnergy, CueForEffect("energy"))
	assert.Equal(t, CueMissile, CueForEffect("missile"))
	assert.Equal(t, CueBeam, CueForEffect(""))
}

type recordingOutput struct {
	played int
	full   bool
}

func (r *recordingOutput) Play(s beep.Streamer) bool {
	if r.full {
		return false
	}
	r.played++
	return true
}

func TestCuePlayerOncePerFrame(t *testing.T) {
	out := &recordingOutput{}
	reg := status.NewRegistry()
	p := NewCuePlayer(out, Options{Volume: 1, Status: reg})

	assert.True(t, p.Play(CueImpact, 1, 3))
	assert.False(t, p.Play(CueImpact, 1, 3))
	assert.True(t, p.Play(CueExplosion, 1, 3))
	assert.True(t, p.Play(CueImpact, 1, 4))

	assert.Equal(t, 3, out.played)
	assert.Equal(t, int64(3), reg.Ints.Get("audio.played").Load())
}

func TestCuePlayerMuteAndDrop(t *testing.T) {
	out := &recordingOutput{}
	reg := status.NewRegistry()
	p := NewCuePlayer(out, Options{Volume: 1, Status: reg})

	p.SetMuted(true)
	assert.True(t, p.Muted())
	assert.False(t, p.Play(CueBeam, 1, 0))
	assert.Zero(t, out.played)

	p.SetMuted(false)
	out.full = true
	assert.False(t, p.Play(CueBeam, 1, 1))
	assert.Equal(t, int64(1), reg.Ints.Get("audio.dropped").Load())
}

func TestSpeakerCloseIdempotent(t *testing.T) {
	spk := NewSpeaker()
	assert.NotPanics(t, func() {
		spk.Close()
		spk.Close()
	}, "closing a speaker that never opened a device is a no-op")
}

func TestCuePlayerVolumeClamped(t *testing.T) {
	p := NewCuePlayer(&recordingOutput{}, Options{Volume: 3})
	assert.Equal(t, 1.0, p.volume)

	p.SetVolume(-1)
	assert.Equal(t, 0.0, p.volume)
	p.SetVolume(math.NaN())
	assert.Equal(t, 0.0, p.volume)
	p.SetVolume(0.4)
	assert.Equal(t, 0.4, p.volume)
}

func TestCuePlayerHandleEvent(t *testing.T) {
	out := &recordingOutput{}
	p := NewCuePlayer(out, DefaultOptions())

	events := []event.GameEvent{
		{Type: event.EventWeaponFired, Frame: 1, Payload: &event.WeaponFiredPayload{Effect: "missile", Player: true}},
		{Type: event.EventFireRejected, Frame: 1, Payload: &event.FireRejectedPayload{Player: false}},
		{Type: event.EventFireRejected, Frame: 1, Payload: &event.FireRejectedPayload{Player: true}},
		{Type: event.EventProjectileImpact, Frame: 1},
		{Type: event.EventEntityDestroyed, Frame: 1},
		{Type: event.EventUpgradePurchased, Frame: 1},
		{Type: event.EventCollision, Frame: 1},
		{Type: event.EventTargetChanged, Frame: 1},
	}
	for _, ev := range events {
		p.HandleEvent(ev)
	}

	assert.Equal(t, 6, out.played)
	assert.Len(t, p.EventTypes(), 6)
}

func TestMixerOutputVoiceCap(t *testing.T) {
	out := &MixerOutput{Mixer: &beep.Mixer{}, MaxVoices: 2}
	p := NewCuePlayer(out, Options{Volume: 1})

	assert.True(t, p.Play(CueBeam, 1, 0))
	assert.True(t, p.Play(CueImpact, 1, 0))
	assert.False(t, p.Play(CueExplosion, 1, 0))
	assert.Equal(t, 2, out.Mixer.Len())

	buf := make([][2]float64, 256)
	n, ok := out.Mixer.Stream(buf)
	assert.Equal(t, len(buf), n)
	assert.True(t, ok)
}
