package parameter

import "time"

// Audio output
const (
	// AudioSampleRate is the synthesis and speaker rate
	AudioSampleRate = 44100

	// AudioBufferDuration is the speaker buffer length, trades latency for underrun safety
	AudioBufferDuration = 50 * time.Millisecond

	// AudioDefaultVolume is the master volume when none is configured
	AudioDefaultVolume = 0.5

	// AudioHostileVolume scales cues triggered by hostile ships
	AudioHostileVolume = 0.4

	// AudioMaxVoices caps simultaneous cues in the mixer, extra cues are dropped
	AudioMaxVoices = 16
)

// Beam shot: falling square sweep
const (
	BeamCueDuration  = 90 * time.Millisecond
	BeamCueAttack    = 2 * time.Millisecond
	BeamCueRelease   = 60 * time.Millisecond
	BeamCueStartFreq = 1800.0
	BeamCueEndFreq   = 600.0
)

// Energy shot: rising saw sweep
const (
	EnergyCueDuration  = 160 * time.Millisecond
	EnergyCueAttack    = 10 * time.Millisecond
	EnergyCueRelease   = 100 * time.Millisecond
	EnergyCueStartFreq = 220.0
	EnergyCueEndFreq   = 440.0
)

// Missile launch: filtered noise whoosh
const (
	MissileCueDuration = 300 * time.Millisecond
	MissileCueAttack   = 120 * time.Millisecond
	MissileCueRelease  = 150 * time.Millisecond
)

// Impact: short low thump
const (
	ImpactCueDuration = 80 * time.Millisecond
	ImpactCueAttack   = 2 * time.Millisecond
	ImpactCueRelease  = 60 * time.Millisecond
	ImpactCueFreq     = 140.0
)

// Explosion: noise burst over a falling rumble
const (
	ExplosionCueDuration  = 600 * time.Millisecond
	ExplosionCueAttack    = 5 * time.Millisecond
	ExplosionCueRelease   = 500 * time.Millisecond
	ExplosionCueStartFreq = 90.0
	ExplosionCueEndFreq   = 30.0
)

// Denied: harsh buzz for gated fire
const (
	DeniedCueDuration = 80 * time.Millisecond
	DeniedCueAttack   = 5 * time.Millisecond
	DeniedCueRelease  = 20 * time.Millisecond
	DeniedCueFreq     = 100.0
)

// Purchase: two-note chime
const (
	PurchaseCueNote1Duration = 80 * time.Millisecond
	PurchaseCueNote2Duration = 280 * time.Millisecond
	PurchaseCueAttack        = 5 * time.Millisecond
	PurchaseCueNote1Release  = 40 * time.Millisecond
	PurchaseCueNote2Release  = 200 * time.Millisecond
	PurchaseCueNote1Freq     = 987.77
	PurchaseCueNote2Freq     = 1318.51
)

// Collision: dull knock
const (
	CollisionCueDuration = 120 * time.Millisecond
	CollisionCueAttack   = 2 * time.Millisecond
	CollisionCueRelease  = 100 * time.Millisecond
	CollisionCueFreq     = 70.0
)
