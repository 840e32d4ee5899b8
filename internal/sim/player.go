package sim

import "github.com/iburimskiy/abyss-dive/internal/config"

// Player is the descending disc. Vertical motion is inertial, horizontal
// motion tracks the cursor directly.
type Player struct {
	Pos    Vec2
	Vel    Vec2
	Radius float64
}

func newPlayer(stage Rect, t *config.Tuning) Player {
	return Player{
		Pos:    Vec2{X: stage.Center().X, Y: stage.Y + t.PlayerStartOffsetY},
		Radius: t.PlayerRadius,
	}
}

// Update applies one frame of input. wheel is the rectified scroll
// magnitude; lag suppresses cursor tracking.
func (p *Player) Update(wheel, cursorX float64, lag bool, stage Rect, t *config.Tuning) {
	p.Pos.Y, p.Vel.Y = Integrate(p.Pos.Y, p.Vel.Y, wheel*t.PlayerAccelGain, t.PlayerFriction)

	if !lag {
		p.Pos.X = lerp(p.Pos.X, cursorX, t.PlayerTrackLerp)
	}

	// Buoyancy runs after the scroll motion so the disc always drifts back.
	p.Pos.Y = lerp(p.Pos.Y, stage.Y+t.BuoyancyOffsetY, t.BuoyancyLerp)

	p.Pos = stage.ClampInset(p.Pos, p.Radius)
}
