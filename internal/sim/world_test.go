package sim

import (
	"math/rand"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/iburimskiy/abyss-dive/internal/config"
)

const frame = 1.0 / 60

func newTestWorld(t *testing.T, tune config.Tuning) *World {
	t.Helper()
	return NewWorld(tune, 1280, 720, rand.New(rand.NewSource(1)), nil)
}

func TestWorldStageLayout(t *testing.T) {
	w := newTestWorld(t, config.DefaultTuning())
	stage := w.Stage()
	if !near(stage.W, 1280.0/3) || !near(stage.X, (1280-1280.0/3)/2) || stage.H != 720 {
		t.Fatalf("stage = %+v", stage)
	}
	p := w.Player()
	if !near(p.Pos.X, stage.Center().X) || p.Pos.Y != 100 {
		t.Fatalf("player starts at %+v", p.Pos)
	}
}

func TestCollisionExplodesAndDampens(t *testing.T) {
	w := newTestWorld(t, config.DefaultTuning())
	w.player.Pos = Vec2{100, 100}
	w.player.Radius = 35
	o := &Obstacle{Pos: Vec2{110, 100}, BaseRadius: 40, Radius: 40, BlinkTimer: 1}
	w.obstacles = []*Obstacle{o}
	w.scrollVel = 10

	w.collide()

	if o.State != ObstacleExploding {
		t.Fatalf("obstacle state = %v, want exploding", o.State)
	}
	if !near(w.lag, 1.5) {
		t.Fatalf("lag = %v, want 1.5", w.lag)
	}
	if !near(w.scrollVel, 3.0) {
		t.Fatalf("scroll velocity = %v, want 3.0", w.scrollVel)
	}

	// Already exploding: no second penalty.
	w.lag = 0.2
	w.collide()
	if !near(w.scrollVel, 3.0) || !near(w.lag, 0.2) {
		t.Fatalf("penalty applied twice: vel=%v lag=%v", w.scrollVel, w.lag)
	}
}

func TestCollisionThroughStep(t *testing.T) {
	w := newTestWorld(t, config.DefaultTuning())
	p := w.player.Pos
	o := &Obstacle{Pos: p.Add(Vec2{10, 0}), BaseRadius: 40, Radius: 40, BlinkTimer: 5}
	w.obstacles = []*Obstacle{o}
	w.scrollVel = 10

	w.Step(Input{CursorX: p.X, DT: frame})

	if o.State != ObstacleExploding {
		t.Fatalf("obstacle state = %v, want exploding", o.State)
	}
	if !w.LagActive() {
		t.Fatalf("lag should be active")
	}
	// friction first, then impact damping
	want := 10 * w.tune.ScrollFriction * w.tune.ImpactDamping
	if !near(w.ScrollVelocity(), want) {
		t.Fatalf("scroll velocity = %v, want %v", w.ScrollVelocity(), want)
	}
}

func TestLagSuppressesWheelAndExpires(t *testing.T) {
	w := newTestWorld(t, config.DefaultTuning())
	w.lag = 0.5

	w.Step(Input{Wheel: 20, CursorX: 0, DT: 0.25})
	if w.ScrollVelocity() != 0 {
		t.Fatalf("wheel accepted during lag: vel=%v", w.ScrollVelocity())
	}
	w.Step(Input{Wheel: 20, CursorX: 0, DT: 0.25})
	if w.LagActive() {
		t.Fatalf("lag should have expired, lag=%v", w.lag)
	}
	if w.ScrollVelocity() <= 0 {
		t.Fatalf("wheel ignored after lag expired")
	}
}

func TestDepthMonotonicAndClamped(t *testing.T) {
	tune := config.DefaultTuning()
	tune.TotalDepth = 3000
	w := newTestWorld(t, tune)
	rng := rand.New(rand.NewSource(99))

	prev := w.Depth()
	for i := 0; i < 20000 && !w.GoalReached(); i++ {
		w.Step(Input{Wheel: rng.Float64() * 8, CursorX: rng.Float64() * 1280, DT: frame})
		d := w.Depth()
		if d < prev {
			t.Fatalf("frame %d: depth decreased %v -> %v", i, prev, d)
		}
		if d < 0 || d > tune.TotalDepth {
			t.Fatalf("frame %d: depth %v outside [0, %v]", i, d, tune.TotalDepth)
		}
		for _, o := range w.obstacles {
			if o.State == ObstacleAlive && (o.Radius < o.BaseRadius-eps || o.Radius > o.BaseRadius*tune.ObstacleGrowth+eps) {
				t.Fatalf("frame %d: obstacle radius %v out of bounds", i, o.Radius)
			}
		}
		prev = d
	}
	if !w.GoalReached() {
		t.Fatalf("goal never reached, depth=%v", w.Depth())
	}
	if w.Depth() != tune.TotalDepth {
		t.Fatalf("depth at goal = %v, want %v", w.Depth(), tune.TotalDepth)
	}
}

func TestGoalFreezesUntilRestart(t *testing.T) {
	tune := config.DefaultTuning()
	tune.TotalDepth = 50
	w := newTestWorld(t, tune)

	for i := 0; i < 1000 && !w.GoalReached(); i++ {
		w.Step(Input{Wheel: 10, DT: frame})
	}
	if !w.GoalReached() {
		t.Fatalf("goal not reached")
	}

	before := w.Snapshot()
	w.Step(Input{Wheel: 10, DT: frame})
	after := w.Snapshot()
	if after.Elapsed != before.Elapsed || after.ScrollOffset != before.ScrollOffset {
		t.Fatalf("world advanced after goal")
	}

	w.obstacles = append(w.obstacles, &Obstacle{Pos: Vec2{1, 1}, BaseRadius: 40, Radius: 40})
	w.Step(Input{Restart: true, DT: frame})

	if w.GoalReached() {
		t.Fatalf("restart did not clear goal")
	}
	s := w.Snapshot()
	if s.Depth != 0 || s.ScrollOffset != 0 || s.ScrollVel != 0 || s.Elapsed != 0 {
		t.Fatalf("restart left state: %+v", s)
	}
	if len(s.Obstacles) != 0 || len(s.Bubbles) != 0 {
		t.Fatalf("restart left %d obstacles, %d bubbles", len(s.Obstacles), len(s.Bubbles))
	}
	if w.LagActive() {
		t.Fatalf("restart left lag active")
	}
}

func TestRestartIgnoredWhileRunning(t *testing.T) {
	w := newTestWorld(t, config.DefaultTuning())
	w.Step(Input{Wheel: 10, DT: frame})
	w.Step(Input{Restart: true, DT: frame})
	if w.Snapshot().ScrollOffset == 0 {
		t.Fatalf("restart honoured before goal")
	}
}

func TestNegativeDeltaIsClamped(t *testing.T) {
	w := newTestWorld(t, config.DefaultTuning())
	w.Step(Input{DT: -5})
	if s := w.Snapshot(); s.Elapsed != 0 {
		t.Fatalf("elapsed = %v after negative delta", s.Elapsed)
	}
}

func TestSpawningAndCulling(t *testing.T) {
	w := newTestWorld(t, config.DefaultTuning())
	spawned := 0
	for i := 0; i < 3000; i++ {
		before := len(w.obstacles)
		w.Step(Input{Wheel: 3, CursorX: 0, DT: frame})
		if len(w.obstacles) > before {
			spawned++
		}
		for _, o := range w.obstacles {
			if o.State == ObstacleDead {
				t.Fatalf("dead obstacle survived sweep")
			}
		}
		if w.GoalReached() {
			break
		}
	}
	if spawned == 0 {
		t.Fatalf("no obstacles spawned")
	}
	if len(w.obstacles) > 40 {
		t.Fatalf("obstacles are not culled: %d live", len(w.obstacles))
	}
}

func TestBubblesFollowSpeed(t *testing.T) {
	w := newTestWorld(t, config.DefaultTuning())
	w.Step(Input{DT: frame})
	if n := len(w.Snapshot().Bubbles); n != 0 {
		t.Fatalf("bubbles at rest: %d", n)
	}
	w.scrollVel = 40
	w.Step(Input{DT: frame})
	s := w.Snapshot()
	if len(s.Bubbles) == 0 {
		t.Fatalf("no bubbles at speed")
	}
	for _, b := range s.Bubbles {
		if b.Life <= 0 || b.Life > 1 {
			t.Fatalf("bubble life fraction %v", b.Life)
		}
	}
	for i := 0; i < 200; i++ {
		w.scrollVel = 0
		w.Step(Input{DT: frame})
	}
	if n := len(w.Snapshot().Bubbles); n != 0 {
		t.Fatalf("bubbles never expired: %d", n)
	}
}

func TestSnapshotReportsExplosion(t *testing.T) {
	w := newTestWorld(t, config.DefaultTuning())
	o := &Obstacle{Pos: Vec2{600, 500}, BaseRadius: 40, Radius: 40, BlinkTimer: 2}
	w.obstacles = []*Obstacle{o}
	o.Explode()
	o.Explosion = 0.25

	s := w.Snapshot()
	if len(s.Obstacles) != 1 {
		t.Fatalf("obstacles = %d", len(s.Obstacles))
	}
	v := s.Obstacles[0]
	if !v.Exploding || v.Explosion != 0.25 || v.BlinkRatio != 1 {
		t.Fatalf("view = %+v", v)
	}
}

func TestTileOffset(t *testing.T) {
	tests := []struct {
		scroll, tile, want float64
	}{
		{0, 720, 0},
		{100, 720, 100},
		{1500, 720, 60},
		{-100, 720, 620},
		{50, 0, 0},
	}
	for _, tc := range tests {
		s := Snapshot{ScrollOffset: tc.scroll}
		if got := s.TileOffset(tc.tile); !near(got, tc.want) {
			t.Errorf("TileOffset(%v, %v) = %v, want %v", tc.scroll, tc.tile, got, tc.want)
		}
	}
}

func TestDegenerateConfigIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	NewWorld(config.DefaultTuning(), 300, 720, rand.New(rand.NewSource(1)), zap.New(core))

	if logs.FilterMessage("degenerate configuration").Len() == 0 {
		t.Fatalf("expected a degenerate configuration warning, got %v", logs.All())
	}
}
