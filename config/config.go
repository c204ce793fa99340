// Package config loads simulation tunables through viper
// Defaults come from the parameter package; a config file and STARFALL_ environment
// variables override them
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/lixenwraith/starfall/combat"
	"github.com/lixenwraith/starfall/parameter"
)

// EnvPrefix namespaces environment overrides, e.g. STARFALL_PHYSICS_RESTITUTION
const EnvPrefix = "STARFALL"

type PhysicsConfig struct {
	Restitution      float64 `mapstructure:"restitution"`
	StaticDamping    float64 `mapstructure:"staticDamping"`
	DamageThreshold  float64 `mapstructure:"damageThreshold"`
	DamageMultiplier float64 `mapstructure:"damageMultiplier"`
}

type CombatConfig struct {
	MaxTargetingDistance float64 `mapstructure:"maxTargetingDistance"`
	ExplosionPoolSize    int     `mapstructure:"explosionPoolSize"`
	ImpactPoolSize       int     `mapstructure:"impactPoolSize"`
}

type LODConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	Interval    time.Duration `mapstructure:"interval"`
	MaxDistance float64       `mapstructure:"maxDistance"`
}

type EconomyConfig struct {
	StartingCredits int `mapstructure:"startingCredits"`
	AlienBounty     int `mapstructure:"alienBounty"`
	SatelliteBounty int `mapstructure:"satelliteBounty"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
	Path    string `mapstructure:"path"`
}

type AudioConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	Volume  float64 `mapstructure:"volume"`
}

// Config is the fully resolved configuration
type Config struct {
	Tick    time.Duration   `mapstructure:"tick"`
	Physics PhysicsConfig   `mapstructure:"physics"`
	Combat  CombatConfig    `mapstructure:"combat"`
	LOD     LODConfig       `mapstructure:"lod"`
	Economy EconomyConfig   `mapstructure:"economy"`
	Log     LogConfig       `mapstructure:"log"`
	Metrics MetricsConfig   `mapstructure:"metrics"`
	Audio   AudioConfig     `mapstructure:"audio"`

	// Weapons overrides numeric fields of arsenal entries by weapon id
	Weapons map[string]combat.Override `mapstructure:"weapons"`

	// Keys maps key names to input action names
	Keys map[string]string `mapstructure:"keys"`
}

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid config")

// SetDefaults registers every default on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("tick", parameter.TickInterval)

	v.SetDefault("physics.restitution", parameter.Restitution)
	v.SetDefault("physics.staticDamping", parameter.StaticBounceDamping)
	v.SetDefault("physics.damageThreshold", parameter.CollisionDamageThreshold)
	v.SetDefault("physics.damageMultiplier", parameter.CollisionDamageMultiplier)

	v.SetDefault("combat.maxTargetingDistance", parameter.MaxTargetingDistance)
	v.SetDefault("combat.explosionPoolSize", parameter.ExplosionPoolSize)
	v.SetDefault("combat.impactPoolSize", parameter.ImpactPoolSize)

	v.SetDefault("lod.enabled", true)
	v.SetDefault("lod.interval", time.Duration(parameter.LODUpdateInterval*float64(time.Second)))
	v.SetDefault("lod.maxDistance", parameter.LODMaxDistance)

	v.SetDefault("economy.startingCredits", parameter.StartingCredits)
	v.SetDefault("economy.alienBounty", parameter.AlienBounty)
	v.SetDefault("economy.satelliteBounty", parameter.SatelliteBounty)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.address", ":9090")
	v.SetDefault("metrics.path", "/metrics")

	v.SetDefault("audio.enabled", true)
	v.SetDefault("audio.volume", 0.5)
}

// Load resolves configuration from defaults, an optional file and the environment
// An empty path skips the file; the file type follows its extension (json, toml, yaml)
func Load(path string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if ext := strings.TrimPrefix(filepath.Ext(path), "."); ext != "" {
			v.SetConfigType(ext)
		}
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return Decode(v)
}

// Decode unmarshals and validates the settings held by v
func Decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the simulation cannot run with
func (c *Config) Validate() error {
	switch {
	case c.Tick <= 0:
		return fmt.Errorf("%w: tick must be positive, got %v", ErrInvalid, c.Tick)
	case c.Physics.Restitution < 0 || c.Physics.Restitution > 1:
		return fmt.Errorf("%w: physics.restitution %v outside [0,1]", ErrInvalid, c.Physics.Restitution)
	case c.Combat.ExplosionPoolSize <= 0 || c.Combat.ImpactPoolSize <= 0:
		return fmt.Errorf("%w: effect pool sizes must be positive", ErrInvalid)
	case c.LOD.Interval < 0:
		return fmt.Errorf("%w: lod.interval must not be negative", ErrInvalid)
	case c.Economy.StartingCredits < 0:
		return fmt.Errorf("%w: economy.startingCredits must not be negative", ErrInvalid)
	case c.Audio.Volume < 0 || c.Audio.Volume > 1:
		return fmt.Errorf("%w: audio.volume %v outside [0,1]", ErrInvalid, c.Audio.Volume)
	}
	return nil
}
