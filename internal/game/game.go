package game

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"
	"golang.org/x/image/font/basicfont"

	"github.com/iburimskiy/abyss-dive/internal/config"
	"github.com/iburimskiy/abyss-dive/internal/sim"
)

const discSize = 64

var (
	backgroundColor = color.RGBA{R: 26, G: 38, B: 51, A: 255}
	playerColor     = color.RGBA{R: 255, G: 165, B: 0, A: 255}
	goalColor       = color.RGBA{R: 255, G: 230, B: 76, A: 255}
	mapColor        = color.NRGBA{R: 26, G: 102, B: 153, A: 76}
	hudColor        = color.RGBA{R: 230, G: 230, B: 230, A: 255}
)

// Game adapts the simulation to ebiten: it samples input, steps the world
// once per tick and draws the resulting snapshot.
type Game struct {
	cfg   *config.Config
	world *sim.World
	log   *zap.Logger
	trace *speedTrace

	background *ebiten.Image
	disc       *ebiten.Image
	face       *text.GoXFace

	// input edge detection
	prevKey map[ebiten.Key]bool

	paused bool
}

func New(cfg *config.Config, tune config.Tuning, rng *rand.Rand, log *zap.Logger) *Game {
	if log == nil {
		log = zap.NewNop()
	}
	w, h := cfg.Window.Width, cfg.Window.Height
	g := &Game{
		cfg:        cfg,
		world:      sim.NewWorld(tune, float64(w), float64(h), rng, log),
		log:        log,
		trace:      newSpeedTrace(config.TraceSize),
		background: newGradientTile(h),
		disc:       newDisc(),
		face:       text.NewGoXFace(basicfont.Face7x13),
		prevKey:    map[ebiten.Key]bool{},
	}
	return g
}

// newGradientTile renders the 1px-wide hue strip that is stretched over the
// stage and tiled vertically.
func newGradientTile(height int) *ebiten.Image {
	if height < 1 {
		height = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, 1, height))
	for y := 0; y < height; y++ {
		img.SetRGBA(0, y, hsvColor(float64(y)*360/float64(height), 0.6, 0.5))
	}
	return ebiten.NewImageFromImage(img)
}

// newDisc is a white circle sprite; scaling it per axis gives ellipses.
func newDisc() *ebiten.Image {
	img := ebiten.NewImage(discSize, discSize)
	vector.DrawFilledCircle(img, discSize/2, discSize/2, discSize/2, color.White, true)
	return img
}

func (g *Game) Update() error {
	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		return jp
	}

	if justPressed(ebiten.KeyEscape) || justPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if justPressed(ebiten.KeySpace) {
		g.paused = !g.paused
		g.log.Debug("pause toggled", zap.Bool("paused", g.paused))
	}
	if g.paused {
		return nil
	}

	_, wheel := ebiten.Wheel()
	mouseX, _ := ebiten.CursorPosition()
	wasGoal := g.world.GoalReached()

	g.world.Step(sim.Input{
		Wheel:   math.Abs(wheel),
		CursorX: float64(mouseX),
		Restart: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		DT:      frameDelta(),
	})

	if wasGoal && !g.world.GoalReached() {
		g.trace.reset()
	}
	if !g.world.GoalReached() {
		g.trace.push(g.world.ScrollVelocity())
	}
	return nil
}

// frameDelta is the fixed tick length; the tuning constants assume it.
func frameDelta() float64 {
	tps := ebiten.TPS()
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	return 1 / float64(tps)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	s := g.world.Snapshot()

	if s.GoalReached {
		g.drawGoal(screen, s)
		return
	}

	g.drawBackground(screen, s)
	g.drawBubbles(screen, s)
	g.drawObstacles(screen, s)
	vector.DrawFilledCircle(screen, float32(s.Player.Pos.X), float32(s.Player.Pos.Y), float32(s.Player.Radius), playerColor, true)
	g.drawDepthMap(screen, s)
	g.drawSpeedTrace(screen, s)
	g.drawText(screen, formatRunTime(s.Elapsed), 60, 20, 2, hudColor, text.AlignStart)

	if g.paused {
		ebitenutil.DebugPrintAt(screen, "Paused - Space to resume, Esc/Q to quit", 12, g.cfg.Window.Height-20)
	}
}

func (g *Game) drawBackground(screen *ebiten.Image, s sim.Snapshot) {
	tile := float64(g.background.Bounds().Dy())
	offset := s.TileOffset(tile)
	// two tiles cover the stage at any offset
	for i := 0; i < 2; i++ {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(s.Stage.W, 1)
		op.GeoM.Translate(s.Stage.X, -offset+float64(i)*tile)
		screen.DrawImage(g.background, op)
	}
}

func (g *Game) drawBubbles(screen *ebiten.Image, s sim.Snapshot) {
	for _, b := range s.Bubbles {
		// full life maps to 0.15 alpha
		a := uint8(clamp01(b.Life*0.15) * 255)
		c := color.NRGBA{R: 204, G: 230, B: 255, A: a}
		vector.DrawFilledCircle(screen, float32(b.Pos.X), float32(b.Pos.Y), float32(b.Radius), c, true)
	}
}

func (g *Game) drawObstacles(screen *ebiten.Image, s sim.Snapshot) {
	for _, o := range s.Obstacles {
		if o.Exploding {
			size := o.Radius + o.Explosion*config.ExplosionRingGrowth
			ring := hsvColor(rand.Float64()*360, 0.7, 1.0)
			vector.StrokeCircle(screen, float32(o.Pos.X), float32(o.Pos.Y), float32(size), 6, ring, true)
			continue
		}
		vector.DrawFilledCircle(screen, float32(o.Pos.X), float32(o.Pos.Y), float32(o.Radius), greyColor(0.5), true)
		g.drawEye(screen, o, s.Player.Pos)
	}
}

func (g *Game) drawEye(screen *ebiten.Image, o sim.ObstacleView, player sim.Vec2) {
	eye := o.Pos.Add(sim.Vec2{Y: -o.Radius * 0.3})
	outer := o.Radius * 0.35
	inner := outer * 0.5

	scaleY := math.Max(0.05, o.BlinkRatio)
	g.drawEllipse(screen, eye, outer, outer*scaleY, greyColor(1.0))

	if scaleY <= 0.2 {
		return
	}
	// pupil leans toward the player
	d := player.Sub(eye)
	if l := math.Hypot(d.X, d.Y); l > 0 {
		d = sim.Vec2{X: d.X / l, Y: d.Y / l}
	}
	reach := outer * 0.4
	pupil := eye.Add(sim.Vec2{X: d.X * reach, Y: d.Y * reach})
	g.drawEllipse(screen, pupil, inner, inner*scaleY, greyColor(0.1))
}

func (g *Game) drawEllipse(screen *ebiten.Image, c sim.Vec2, rx, ry float64, clr color.Color) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-discSize/2, -discSize/2)
	op.GeoM.Scale(2*rx/discSize, 2*ry/discSize)
	op.GeoM.Translate(c.X, c.Y)
	op.ColorScale.ScaleWithColor(clr)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(g.disc, op)
}

func (g *Game) drawDepthMap(screen *ebiten.Image, s sim.Snapshot) {
	x := s.Stage.Right() + config.MapOffsetX
	top := config.MapMarginY
	height := s.Screen.Y - 2*config.MapMarginY
	if height <= 0 {
		return
	}
	vector.DrawFilledRect(screen, float32(x), float32(top), config.MapBarWidth, float32(height), mapColor, false)

	ratio := 0.0
	if s.TotalDepth > 0 {
		ratio = clamp01(s.Depth / s.TotalDepth)
	}
	markerY := top + ratio*height
	vector.DrawFilledRect(screen, float32(x), float32(markerY-5), config.MapBarWidth, 10, goalColor, false)

	g.drawText(screen, fmt.Sprintf("%d m", int(s.Depth)), x+config.MapBarWidth+10, markerY-10, 2, hudColor, text.AlignStart)
}

func (g *Game) drawSpeedTrace(screen *ebiten.Image, s sim.Snapshot) {
	samples := g.trace.snapshot(config.TraceSize)
	peak := g.trace.peak()
	if len(samples) == 0 || peak <= 0 {
		return
	}
	const traceHeight = 40.0
	x0 := s.Stage.Right() + config.MapOffsetX
	y0 := s.Screen.Y - config.MapMarginY/2
	for i, v := range samples {
		h := traceHeight * clamp01(v/peak)
		hue := 200 + 160*float64(i)/float64(len(samples))
		vector.DrawFilledRect(screen, float32(x0+float64(i)), float32(y0-h), 1, float32(h), hsvColor(hue, 0.6, 0.9), false)
	}
}

func (g *Game) drawGoal(screen *ebiten.Image, s sim.Snapshot) {
	cx := s.Screen.X / 2
	cy := s.Screen.Y / 2
	g.drawText(screen, "GOAL!", cx, cy-40, 8, goalColor, text.AlignCenter)
	g.drawText(screen, formatRunTime(s.Elapsed), cx, cy+100, 3, hudColor, text.AlignCenter)
	g.drawText(screen, "click to dive again", cx, cy+150, 2, hudColor, text.AlignCenter)
}

func (g *Game) drawText(screen *ebiten.Image, str string, x, y, scale float64, clr color.Color, align text.Align) {
	op := &text.DrawOptions{}
	op.PrimaryAlign = align
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, str, g.face, op)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Window.Width, g.cfg.Window.Height
}
