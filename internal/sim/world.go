package sim

import (
	"math"
	"math/rand"

	"go.uber.org/zap"

	"github.com/iburimskiy/abyss-dive/internal/config"
)

// Input is one frame of abstract input.
type Input struct {
	Wheel   float64 // scroll magnitude; sign is ignored
	CursorX float64
	Restart bool // only honoured once the goal is reached
	DT      float64
}

// World owns every entity and the shared scroll state. It is stepped once
// per frame from a single goroutine.
type World struct {
	tune   config.Tuning
	screen Vec2
	stage  Rect
	rng    *rand.Rand
	log    *zap.Logger

	player    Player
	obstacles []*Obstacle
	bubbles   []Bubble
	spawner   SpawnController

	scrollY   float64
	scrollVel float64
	depth     float64
	lag       float64
	elapsed   float64
	goal      bool
}

func NewWorld(t config.Tuning, screenW, screenH float64, rng *rand.Rand, log *zap.Logger) *World {
	if log == nil {
		log = zap.NewNop()
	}
	stageW := screenW * t.StageWidthRatio
	w := &World{
		tune:   t,
		screen: Vec2{screenW, screenH},
		stage:  Rect{X: (screenW - stageW) / 2, Y: 0, W: stageW, H: screenH},
		rng:    rng,
		log:    log,
	}
	for _, msg := range StageWarnings(screenW, screenH, w.stage, &w.tune) {
		log.Warn("degenerate configuration", zap.String("detail", msg))
	}
	w.Reset()
	return w
}

// Reset returns the world to its initial state.
func (w *World) Reset() {
	w.player = newPlayer(w.stage, &w.tune)
	w.obstacles = nil
	w.bubbles = w.bubbles[:0]
	w.spawner = newSpawnController(w.screen.X/2, w.rng, &w.tune)
	w.scrollY = 0
	w.scrollVel = 0
	w.depth = 0
	w.lag = 0
	w.elapsed = 0
	w.goal = false
}

// Step advances the world by one frame.
func (w *World) Step(in Input) {
	dt := sanitizeDelta(in.DT)

	if w.goal {
		if in.Restart {
			w.log.Info("restart", zap.Float64("previous_time", w.elapsed))
			w.Reset()
		}
		return
	}

	w.elapsed += dt

	if w.lag > 0 {
		w.lag -= dt
	}
	lagging := w.lag > 0

	wheel := math.Abs(in.Wheel)
	if lagging || math.IsNaN(wheel) || math.IsInf(wheel, 0) {
		wheel = 0
	}

	w.player.Update(wheel, in.CursorX, lagging, w.stage, &w.tune)

	w.scrollY, w.scrollVel = Integrate(w.scrollY, w.scrollVel, wheel*w.tune.ScrollAccelGain, w.tune.ScrollFriction)

	w.depth = clamp(w.depth+w.scrollVel*w.tune.DepthScale, 0, math.Max(w.tune.TotalDepth, 0))
	if w.depth >= w.tune.TotalDepth {
		w.goal = true
		w.log.Info("goal reached", zap.Float64("time", w.elapsed), zap.Float64("depth", w.depth))
	}

	w.updateBubbles(dt)
	w.spawn()
	w.updateObstacles(dt)
	w.collide()
	w.sweep()
}

func (w *World) updateBubbles(dt float64) {
	for n := bubbleCount(math.Abs(w.scrollVel), &w.tune); n > 0; n-- {
		w.bubbles = append(w.bubbles, newBubble(w.player.Pos, w.rng, &w.tune))
	}
	for i := range w.bubbles {
		w.bubbles[i].Update(dt, w.scrollVel, &w.tune)
	}
}

func (w *World) spawn() {
	if !w.spawner.Due(w.scrollY) {
		return
	}
	x := w.spawner.Spawn(w.scrollY, w.stage, w.rng, &w.tune)
	w.obstacles = append(w.obstacles, newObstacle(Vec2{x, w.screen.Y}, w.tune.ObstacleBaseRadius, w.rng, &w.tune))
	w.log.Debug("spawn",
		zap.Float64("x", x),
		zap.Float64("scroll", w.scrollY),
		zap.Float64("next_interval", w.spawner.Interval))
}

func (w *World) updateObstacles(dt float64) {
	for _, o := range w.obstacles {
		o.Update(dt, w.scrollVel, w.player.Pos.Y, w.screen.Y, w.rng, &w.tune)
	}
}

// collide explodes every live eye touching the player and applies the
// impact penalty once per hit.
func (w *World) collide() {
	for _, o := range w.obstacles {
		if o.State != ObstacleAlive {
			continue
		}
		if !circlesIntersect(w.player.Pos, w.player.Radius, o.Pos, o.Radius) {
			continue
		}
		if !o.Explode() {
			continue
		}
		w.lag = w.tune.LagDuration
		w.scrollVel *= w.tune.ImpactDamping
		w.log.Debug("collision",
			zap.Float64("x", o.Pos.X),
			zap.Float64("y", o.Pos.Y),
			zap.Float64("scroll_velocity", w.scrollVel))
	}
}

// sweep drops dead eyes and expired bubbles after the update pass.
func (w *World) sweep() {
	live := w.obstacles[:0]
	for _, o := range w.obstacles {
		if o.State != ObstacleDead {
			live = append(live, o)
		}
	}
	for i := len(live); i < len(w.obstacles); i++ {
		w.obstacles[i] = nil
	}
	w.obstacles = live

	bubbles := w.bubbles[:0]
	for _, b := range w.bubbles {
		if b.Life > 0 {
			bubbles = append(bubbles, b)
		}
	}
	w.bubbles = bubbles
}

func (w *World) Stage() Rect { return w.stage }
func (w *World) GoalReached() bool { return w.goal }
func (w *World) ScrollVelocity() float64 { return w.scrollVel }
func (w *World) Depth() float64 { return w.depth }
func (w *World) LagActive() bool { return w.lag > 0 }
func (w *World) Player() Player { return w.player }
