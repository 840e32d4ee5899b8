package sim

import (
	"math/rand"

	"github.com/iburimskiy/abyss-dive/internal/config"
)

// Bubble is a decorative particle rising away from the player.
type Bubble struct {
	Pos    Vec2
	Radius float64
	Speed  float64
	Life   float64
}

func newBubble(origin Vec2, rng *rand.Rand, t *config.Tuning) Bubble {
	j := t.BubbleJitter
	return Bubble{
		Pos:    origin.Add(Vec2{randRange(rng, -j, j), randRange(rng, -j, j)}),
		Radius: randRange(rng, t.BubbleRadiusMin, t.BubbleRadiusMax),
		Speed:  randRange(rng, t.BubbleSpeedMin, t.BubbleSpeedMax),
		Life:   t.BubbleLife,
	}
}

// Update moves the bubble and reports whether it is still alive.
func (b *Bubble) Update(dt, scrollVel float64, t *config.Tuning) bool {
	b.Pos.Y -= (b.Speed + scrollVel*t.BubbleScrollGain) * dt
	b.Life -= dt
	return b.Life > 0
}

func bubbleCount(speed float64, t *config.Tuning) int {
	if speed <= t.BubbleSpeedThreshold {
		return 0
	}
	n := speed * t.BubblePerSpeed
	if limit := float64(t.BubbleMaxPerTick); n > limit {
		n = limit
	}
	return int(n)
}
