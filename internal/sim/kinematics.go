package sim

import "math"

type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Center() Vec2 { return Vec2{r.X + r.W/2, r.Y + r.H/2} }
func (r Rect) Right() float64 { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// ClampInset clamps p into r shrunk by inset on every side.
func (r Rect) ClampInset(p Vec2, inset float64) Vec2 {
	return Vec2{
		X: clamp(p.X, r.X+inset, r.Right()-inset),
		Y: clamp(p.Y, r.Y+inset, r.Bottom()-inset),
	}
}

// Integrate advances one damped channel by a single frame:
// vel' = (vel + accel) * friction, pos' = pos + vel'.
func Integrate(pos, vel, accel, friction float64) (float64, float64) {
	vel = (vel + accel) * friction
	return pos + vel, vel
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// clamp pins v into [lo, hi]; lo wins when the range is inverted.
func clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}

func circlesIntersect(a Vec2, ra float64, b Vec2, rb float64) bool {
	dx := a.X - b.X
	dy := a.Y - b.Y
	r := ra + rb
	return dx*dx+dy*dy <= r*r
}

// sanitizeDelta rejects negative or non-finite frame time.
func sanitizeDelta(dt float64) float64 {
	if math.IsNaN(dt) || math.IsInf(dt, 0) || dt < 0 {
		return 0
	}
	return dt
}
