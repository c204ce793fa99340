package audio

import (
	"github.com/gopxl/beep"

	"github.com/lixenwraith/starfall/parameter"
)

// Cue identifies a synthesized sound effect
type Cue int

const (
	CueBeam Cue = iota
	CueEnergy
	CueMissile
	CueImpact
	CueExplosion
	CueDenied
	CuePurchase
	CueCollision
	cueCount
)

var cueNames = [cueCount]string{
	CueBeam:      "beam",
	CueEnergy:    "energy",
	CueMissile:   "missile",
	CueImpact:    "impact",
	CueExplosion: "explosion",
	CueDenied:    "denied",
	CuePurchase:  "purchase",
	CueCollision: "collision",
}

func (c Cue) String() string {
	if c < 0 || c >= cueCount {
		return "unknown"
	}
	return cueNames[c]
}

// CueForEffect maps a weapon effect name to its firing cue
func CueForEffect(effect string) Cue {
	switch effect {
	case "missile":
		return CueMissile
	case "energy":
		return CueEnergy
	default:
		return CueBeam
	}
}

// Synthesize builds a fresh streamer for c at the given linear volume
func Synthesize(c Cue, vol float64, rate beep.SampleRate) beep.Streamer {
	var s beep.Streamer
	switch c {
	case CueBeam:
		s = tone(parameter.BeamCueStartFreq, parameter.BeamCueEndFreq, WaveSquare,
			parameter.BeamCueDuration, parameter.BeamCueAttack, parameter.BeamCueRelease, rate)
	case CueEnergy:
		s = tone(parameter.EnergyCueStartFreq, parameter.EnergyCueEndFreq, WaveSaw,
			parameter.EnergyCueDuration, parameter.EnergyCueAttack, parameter.EnergyCueRelease, rate)
	case CueMissile:
		s = tone(0, 0, WaveNoise,
			parameter.MissileCueDuration, parameter.MissileCueAttack, parameter.MissileCueRelease, rate)
	case CueImpact:
		s = tone(parameter.ImpactCueFreq, parameter.ImpactCueFreq/2, WaveSine,
			parameter.ImpactCueDuration, parameter.ImpactCueAttack, parameter.ImpactCueRelease, rate)
	case CueExplosion:
		noise := tone(0, 0, WaveNoise,
			parameter.ExplosionCueDuration, parameter.ExplosionCueAttack, parameter.ExplosionCueRelease, rate)
		rumble := tone(parameter.ExplosionCueStartFreq, parameter.ExplosionCueEndFreq, WaveSine,
			parameter.ExplosionCueDuration, parameter.ExplosionCueAttack, parameter.ExplosionCueRelease, rate)
		s = beep.Mix(newVolume(noise, 0.4), newVolume(rumble, 0.6))
	case CueDenied:
		s = tone(parameter.DeniedCueFreq, parameter.DeniedCueFreq, WaveSaw,
			parameter.DeniedCueDuration, parameter.DeniedCueAttack, parameter.DeniedCueRelease, rate)
	case CuePurchase:
		n1 := tone(parameter.PurchaseCueNote1Freq, parameter.PurchaseCueNote1Freq, WaveSquare,
			parameter.PurchaseCueNote1Duration, parameter.PurchaseCueAttack, parameter.PurchaseCueNote1Release, rate)
		n2 := tone(parameter.PurchaseCueNote2Freq, parameter.PurchaseCueNote2Freq, WaveSquare,
			parameter.PurchaseCueNote2Duration, parameter.PurchaseCueAttack, parameter.PurchaseCueNote2Release, rate)
		s = beep.Seq(n1, n2)
	case CueCollision:
		s = tone(parameter.CollisionCueFreq, parameter.CollisionCueFreq*0.7, WaveSine,
			parameter.CollisionCueDuration, parameter.CollisionCueAttack, parameter.CollisionCueRelease, rate)
	default:
		return nil
	}
	return newVolume(s, vol)
}
