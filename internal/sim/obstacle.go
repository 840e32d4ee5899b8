package sim

import (
	"math"
	"math/rand"

	"github.com/iburimskiy/abyss-dive/internal/config"
)

// ObstacleState is the lifecycle of an eye.
type ObstacleState uint8

const (
	ObstacleAlive ObstacleState = iota
	ObstacleExploding
	ObstacleDead
)

func (s ObstacleState) String() string {
	switch s {
	case ObstacleAlive:
		return "alive"
	case ObstacleExploding:
		return "exploding"
	case ObstacleDead:
		return "dead"
	}
	return "unknown"
}

// BlinkPhase is the eye animation sub-state, independent of the lifecycle.
type BlinkPhase uint8

const (
	EyesOpen BlinkPhase = iota
	Blinking
)

// Obstacle is a pulsing eye. Radius is derived each frame from BaseRadius
// and vertical proximity to the player.
type Obstacle struct {
	Pos        Vec2
	BaseRadius float64
	Radius     float64

	State     ObstacleState
	Explosion float64 // seconds since explode; meaningful only while Exploding

	phase float64
	clock float64

	Blink         BlinkPhase
	BlinkTimer    float64 // countdown to next blink while EyesOpen
	BlinkProgress float64 // 0..1 while Blinking
}

func newObstacle(pos Vec2, baseRadius float64, rng *rand.Rand, t *config.Tuning) *Obstacle {
	return &Obstacle{
		Pos:        pos,
		BaseRadius: baseRadius,
		Radius:     baseRadius,
		phase:      rng.Float64() * 2 * math.Pi,
		BlinkTimer: randRange(rng, t.BlinkIntervalMin, t.BlinkIntervalMax),
	}
}

// Update advances one frame. Exploding eyes are frozen apart from the
// explosion clock.
func (o *Obstacle) Update(dt, scrollVel, playerY, screenH float64, rng *rand.Rand, t *config.Tuning) {
	switch o.State {
	case ObstacleDead:
		return
	case ObstacleExploding:
		o.Explosion += dt
		if o.Explosion > t.ExplosionDuration {
			o.State = ObstacleDead
		}
		return
	}

	o.Pos.Y -= scrollVel + t.ObstacleDriftSpeed*dt

	o.clock += dt
	o.Pos.X += math.Sin(o.clock*t.WobbleFrequency+o.phase) * t.WobbleAmplitude

	o.Radius = lerp(o.BaseRadius, o.BaseRadius*t.ObstacleGrowth, o.proximity(playerY, t.ProximityRange))

	o.updateBlink(dt, rng, t)

	if o.Pos.Y > screenH+o.Radius || o.Pos.Y < -o.Radius {
		o.State = ObstacleDead
	}
}

func (o *Obstacle) proximity(playerY, rangeY float64) float64 {
	if rangeY <= 0 {
		return 0
	}
	return clamp01(1 - math.Abs(playerY-o.Pos.Y)/rangeY)
}

func (o *Obstacle) updateBlink(dt float64, rng *rand.Rand, t *config.Tuning) {
	if o.Blink == EyesOpen {
		o.BlinkTimer -= dt
		if o.BlinkTimer <= 0 {
			o.Blink = Blinking
			o.BlinkProgress = 0
		}
		return
	}

	if t.BlinkDuration > 0 {
		o.BlinkProgress += dt / t.BlinkDuration
	} else {
		o.BlinkProgress = 1
	}
	if o.BlinkProgress >= 1 {
		o.Blink = EyesOpen
		o.BlinkProgress = 0
		o.BlinkTimer = randRange(rng, t.BlinkIntervalMin, t.BlinkIntervalMax)
	}
}

// Explode starts the explosion. Only live eyes can explode; the return
// reports whether the transition happened.
func (o *Obstacle) Explode() bool {
	if o.State != ObstacleAlive {
		return false
	}
	o.State = ObstacleExploding
	o.Explosion = 0
	return true
}

// BlinkRatio is the eyelid opening: 1 open, 0 shut.
func (o *Obstacle) BlinkRatio() float64 {
	if o.Blink != Blinking {
		return 1
	}
	if o.BlinkProgress < 0.5 {
		return clamp01(1 - o.BlinkProgress*2)
	}
	return clamp01((o.BlinkProgress - 0.5) * 2)
}

func randRange(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
