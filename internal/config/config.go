package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
)

const (
	WindowWidth  = 1280
	WindowHeight = 720
	WindowTitle  = "Abyss Dive"

	// Player
	PlayerRadius       = 35.0
	PlayerAccelGain    = 1.3
	PlayerFriction     = 0.911
	PlayerTrackLerp    = 0.01
	BuoyancyOffsetY    = 100.0
	BuoyancyLerp       = 0.007
	PlayerStartOffsetY = 100.0

	// Scroll channel
	ScrollAccelGain = 1.7
	ScrollFriction  = 0.97
	DepthScale      = 0.1
	TotalDepth      = 10000.0

	// Collision response
	LagDuration   = 1.5
	ImpactDamping = 0.3

	// Obstacles
	ObstacleBaseRadius  = 40.0
	ObstacleGrowth      = 2.5
	ProximityRange      = 1000.0
	ObstacleDriftSpeed  = 20.0
	WobbleFrequency     = 1.5
	WobbleAmplitude     = 0.2
	BlinkDuration       = 0.3
	BlinkIntervalMin    = 0.5
	BlinkIntervalMax    = 4.0
	ExplosionDuration   = 0.4
	ExplosionRingGrowth = 100.0

	// Spawning
	StageWidthRatio    = 1.0 / 3.0
	SpawnInset         = 50.0
	SpawnMinSeparation = 150.0
	SpawnAttempts      = 15
	SpawnIntervalMin   = 150.0
	SpawnIntervalMax   = 500.0
	FirstSpawnMin      = 300.0
	FirstSpawnMax      = 800.0

	// Bubbles
	BubbleSpeedThreshold = 1.0
	BubblePerSpeed       = 0.1
	BubbleMaxPerTick     = 5
	BubbleJitter         = 8.0
	BubbleRadiusMin      = 2.0
	BubbleRadiusMax      = 6.0
	BubbleSpeedMin       = 60.0
	BubbleSpeedMax       = 100.0
	BubbleLife           = 1.5
	BubbleScrollGain     = 15.0

	// Presentation
	TraceSize     = 120
	MapOffsetX    = 40.0
	MapMarginY    = 100.0
	MapBarWidth   = 20.0
	DefaultConfig = "config/abyss.toml"
)

type Config struct {
	Window      WindowConfig  `toml:"window"`
	Logging     LoggingConfig `toml:"logging"`
	Tuning      Tuning        `toml:"tuning"`
	Preset      string        `toml:"preset"`
	PresetsPath string        `toml:"presets_path"`
	Seed        int64         `toml:"seed"` // 0 = seed from clock
}

type WindowConfig struct {
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Fullscreen bool   `toml:"fullscreen"`
	Title      string `toml:"title"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// Tuning holds every gameplay constant. Gains, frictions and lerp factors
// apply once per frame; durations, drift and bubble speeds are in seconds.
type Tuning struct {
	PlayerRadius       float64 `toml:"player_radius" yaml:"player_radius"`
	PlayerAccelGain    float64 `toml:"player_accel_gain" yaml:"player_accel_gain"`
	PlayerFriction     float64 `toml:"player_friction" yaml:"player_friction"`
	PlayerTrackLerp    float64 `toml:"player_track_lerp" yaml:"player_track_lerp"`
	BuoyancyOffsetY    float64 `toml:"buoyancy_offset_y" yaml:"buoyancy_offset_y"`
	BuoyancyLerp       float64 `toml:"buoyancy_lerp" yaml:"buoyancy_lerp"`
	PlayerStartOffsetY float64 `toml:"player_start_offset_y" yaml:"player_start_offset_y"`

	ScrollAccelGain float64 `toml:"scroll_accel_gain" yaml:"scroll_accel_gain"`
	ScrollFriction  float64 `toml:"scroll_friction" yaml:"scroll_friction"`
	DepthScale      float64 `toml:"depth_scale" yaml:"depth_scale"`
	TotalDepth      float64 `toml:"total_depth" yaml:"total_depth"`

	LagDuration   float64 `toml:"lag_duration" yaml:"lag_duration"`
	ImpactDamping float64 `toml:"impact_damping" yaml:"impact_damping"`

	ObstacleBaseRadius float64 `toml:"obstacle_base_radius" yaml:"obstacle_base_radius"`
	ObstacleGrowth     float64 `toml:"obstacle_growth" yaml:"obstacle_growth"`
	ProximityRange     float64 `toml:"proximity_range" yaml:"proximity_range"`
	ObstacleDriftSpeed float64 `toml:"obstacle_drift_speed" yaml:"obstacle_drift_speed"`
	WobbleFrequency    float64 `toml:"wobble_frequency" yaml:"wobble_frequency"`
	WobbleAmplitude    float64 `toml:"wobble_amplitude" yaml:"wobble_amplitude"`
	BlinkDuration      float64 `toml:"blink_duration" yaml:"blink_duration"`
	BlinkIntervalMin   float64 `toml:"blink_interval_min" yaml:"blink_interval_min"`
	BlinkIntervalMax   float64 `toml:"blink_interval_max" yaml:"blink_interval_max"`
	ExplosionDuration  float64 `toml:"explosion_duration" yaml:"explosion_duration"`

	StageWidthRatio    float64 `toml:"stage_width_ratio" yaml:"stage_width_ratio"`
	SpawnInset         float64 `toml:"spawn_inset" yaml:"spawn_inset"`
	SpawnMinSeparation float64 `toml:"spawn_min_separation" yaml:"spawn_min_separation"`
	SpawnAttempts      int     `toml:"spawn_attempts" yaml:"spawn_attempts"`
	SpawnIntervalMin   float64 `toml:"spawn_interval_min" yaml:"spawn_interval_min"`
	SpawnIntervalMax   float64 `toml:"spawn_interval_max" yaml:"spawn_interval_max"`
	FirstSpawnMin      float64 `toml:"first_spawn_min" yaml:"first_spawn_min"`
	FirstSpawnMax      float64 `toml:"first_spawn_max" yaml:"first_spawn_max"`

	BubbleSpeedThreshold float64 `toml:"bubble_speed_threshold" yaml:"bubble_speed_threshold"`
	BubblePerSpeed       float64 `toml:"bubble_per_speed" yaml:"bubble_per_speed"`
	BubbleMaxPerTick     int     `toml:"bubble_max_per_tick" yaml:"bubble_max_per_tick"`
	BubbleJitter         float64 `toml:"bubble_jitter" yaml:"bubble_jitter"`
	BubbleRadiusMin      float64 `toml:"bubble_radius_min" yaml:"bubble_radius_min"`
	BubbleRadiusMax      float64 `toml:"bubble_radius_max" yaml:"bubble_radius_max"`
	BubbleSpeedMin       float64 `toml:"bubble_speed_min" yaml:"bubble_speed_min"`
	BubbleSpeedMax       float64 `toml:"bubble_speed_max" yaml:"bubble_speed_max"`
	BubbleLife           float64 `toml:"bubble_life" yaml:"bubble_life"`
	BubbleScrollGain     float64 `toml:"bubble_scroll_gain" yaml:"bubble_scroll_gain"`
}

// Load reads a TOML config over the defaults. A missing file yields the
// defaults when allowMissing is set, so a fresh checkout runs without one.
func Load(path string, allowMissing bool) (*Config, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		if allowMissing && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func Defaults() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  WindowWidth,
			Height: WindowHeight,
			Title:  WindowTitle,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Tuning: DefaultTuning(),
	}
}

func DefaultTuning() Tuning {
	return Tuning{
		PlayerRadius:       PlayerRadius,
		PlayerAccelGain:    PlayerAccelGain,
		PlayerFriction:     PlayerFriction,
		PlayerTrackLerp:    PlayerTrackLerp,
		BuoyancyOffsetY:    BuoyancyOffsetY,
		BuoyancyLerp:       BuoyancyLerp,
		PlayerStartOffsetY: PlayerStartOffsetY,

		ScrollAccelGain: ScrollAccelGain,
		ScrollFriction:  ScrollFriction,
		DepthScale:      DepthScale,
		TotalDepth:      TotalDepth,

		LagDuration:   LagDuration,
		ImpactDamping: ImpactDamping,

		ObstacleBaseRadius: ObstacleBaseRadius,
		ObstacleGrowth:     ObstacleGrowth,
		ProximityRange:     ProximityRange,
		ObstacleDriftSpeed: ObstacleDriftSpeed,
		WobbleFrequency:    WobbleFrequency,
		WobbleAmplitude:    WobbleAmplitude,
		BlinkDuration:      BlinkDuration,
		BlinkIntervalMin:   BlinkIntervalMin,
		BlinkIntervalMax:   BlinkIntervalMax,
		ExplosionDuration:  ExplosionDuration,

		StageWidthRatio:    StageWidthRatio,
		SpawnInset:         SpawnInset,
		SpawnMinSeparation: SpawnMinSeparation,
		SpawnAttempts:      SpawnAttempts,
		SpawnIntervalMin:   SpawnIntervalMin,
		SpawnIntervalMax:   SpawnIntervalMax,
		FirstSpawnMin:      FirstSpawnMin,
		FirstSpawnMax:      FirstSpawnMax,

		BubbleSpeedThreshold: BubbleSpeedThreshold,
		BubblePerSpeed:       BubblePerSpeed,
		BubbleMaxPerTick:     BubbleMaxPerTick,
		BubbleJitter:         BubbleJitter,
		BubbleRadiusMin:      BubbleRadiusMin,
		BubbleRadiusMax:      BubbleRadiusMax,
		BubbleSpeedMin:       BubbleSpeedMin,
		BubbleSpeedMax:       BubbleSpeedMax,
		BubbleLife:           BubbleLife,
		BubbleScrollGain:     BubbleScrollGain,
	}
}
