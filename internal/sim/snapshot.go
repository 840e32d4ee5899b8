package sim

import "math"

// Snapshot is a read-only copy of the world for presentation.
type Snapshot struct {
	Player    PlayerView
	Obstacles []ObstacleView
	Bubbles   []BubbleView

	Stage        Rect
	Screen       Vec2
	ScrollOffset float64
	ScrollVel    float64
	Depth        float64
	TotalDepth   float64
	Elapsed      float64
	LagActive    bool
	GoalReached  bool
}

type PlayerView struct {
	Pos    Vec2
	Radius float64
}

type ObstacleView struct {
	Pos        Vec2
	Radius     float64
	BlinkRatio float64
	Exploding  bool
	Explosion  float64 // 0 unless Exploding
}

type BubbleView struct {
	Pos    Vec2
	Radius float64
	Life   float64 // remaining fraction, 1 at birth
}

// Snapshot copies the current state. The returned slices are owned by the
// caller.
func (w *World) Snapshot() Snapshot {
	s := Snapshot{
		Player:       PlayerView{Pos: w.player.Pos, Radius: w.player.Radius},
		Obstacles:    make([]ObstacleView, 0, len(w.obstacles)),
		Bubbles:      make([]BubbleView, 0, len(w.bubbles)),
		Stage:        w.stage,
		Screen:       w.screen,
		ScrollOffset: w.scrollY,
		ScrollVel:    w.scrollVel,
		Depth:        w.depth,
		TotalDepth:   w.tune.TotalDepth,
		Elapsed:      w.elapsed,
		LagActive:    w.lag > 0,
		GoalReached:  w.goal,
	}
	for _, o := range w.obstacles {
		v := ObstacleView{Pos: o.Pos, Radius: o.Radius, BlinkRatio: o.BlinkRatio()}
		if o.State == ObstacleExploding {
			v.Exploding = true
			v.Explosion = o.Explosion
		}
		s.Obstacles = append(s.Obstacles, v)
	}
	for _, b := range w.bubbles {
		life := 0.0
		if w.tune.BubbleLife > 0 {
			life = clamp01(b.Life / w.tune.BubbleLife)
		}
		s.Bubbles = append(s.Bubbles, BubbleView{Pos: b.Pos, Radius: b.Radius, Life: life})
	}
	return s
}

// TileOffset maps the scroll offset into [0, tile) for background tiling.
func (s Snapshot) TileOffset(tile float64) float64 {
	if tile <= 0 {
		return 0
	}
	off := math.Mod(s.ScrollOffset, tile)
	if off < 0 {
		off += tile
	}
	return off
}
