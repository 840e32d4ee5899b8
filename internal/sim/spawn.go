package sim

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/iburimskiy/abyss-dive/internal/config"
)

// SpawnController decides when and where the next eye appears. Distance is
// measured on the accumulated scroll offset.
type SpawnController struct {
	LastY    float64 // scroll offset at the previous spawn
	LastX    float64 // horizontal position of the previous spawn
	Interval float64 // scroll distance until the next spawn
}

func newSpawnController(firstX float64, rng *rand.Rand, t *config.Tuning) SpawnController {
	return SpawnController{
		LastX:    firstX,
		Interval: randRange(rng, t.FirstSpawnMin, t.FirstSpawnMax),
	}
}

func (s *SpawnController) Due(scrollY float64) bool {
	return s.Interval <= scrollY-s.LastY
}

// PlaceX draws up to attempts candidates in [lo, hi] and returns the first one
// at least minSep away from the previous spawn. The final draw is accepted
// unconditionally so the loop always terminates.
func (s *SpawnController) PlaceX(lo, hi, minSep float64, attempts int, rng *rand.Rand) float64 {
	if attempts < 1 {
		attempts = 1
	}
	var x float64
	for i := 0; i < attempts; i++ {
		x = randRange(rng, lo, hi)
		if math.Abs(x-s.LastX) >= minSep {
			break
		}
	}
	return x
}

// Spawn records a spawn at the current scroll offset and returns its X.
func (s *SpawnController) Spawn(scrollY float64, stage Rect, rng *rand.Rand, t *config.Tuning) float64 {
	x := s.PlaceX(stage.X+t.SpawnInset, stage.Right()-t.SpawnInset, t.SpawnMinSeparation, t.SpawnAttempts, rng)
	s.LastX = x
	s.LastY = scrollY
	s.Interval = randRange(rng, t.SpawnIntervalMin, t.SpawnIntervalMax)
	return x
}

// StageWarnings lists configuration that is legal but degenerate: the
// simulation still runs, some guarantees just stop holding.
func StageWarnings(screenW, screenH float64, stage Rect, t *config.Tuning) []string {
	var out []string
	if screenW <= 0 || screenH <= 0 {
		out = append(out, fmt.Sprintf("screen size %.0fx%.0f is not positive", screenW, screenH))
	}
	if stage.W <= 0 || stage.H <= 0 {
		out = append(out, fmt.Sprintf("stage size %.1fx%.1f is not positive", stage.W, stage.H))
	}
	if usable := stage.W - 2*t.SpawnInset; usable < t.SpawnMinSeparation {
		out = append(out, fmt.Sprintf("spawn range %.1f is narrower than min separation %.1f; placement falls back to the last draw", usable, t.SpawnMinSeparation))
	}
	if stage.W < 2*t.PlayerRadius {
		out = append(out, fmt.Sprintf("stage width %.1f cannot hold player radius %.1f", stage.W, t.PlayerRadius))
	}
	if t.SpawnIntervalMax < t.SpawnIntervalMin {
		out = append(out, fmt.Sprintf("spawn interval range [%.1f, %.1f] is inverted", t.SpawnIntervalMin, t.SpawnIntervalMax))
	}
	if t.TotalDepth <= 0 {
		out = append(out, fmt.Sprintf("total depth %.1f is not positive; the goal is reached immediately", t.TotalDepth))
	}
	return out
}
