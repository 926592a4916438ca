package main

import (
	"bytes"
	"image/color"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/milk9111/strider/common"
	"github.com/milk9111/strider/controller"
	"github.com/milk9111/strider/ecs"
	"github.com/milk9111/strider/ecs/component"
	"github.com/milk9111/strider/levels"
)

const (
	cameraFollow = 0.15
	hudFontSize  = 14
)

var (
	backgroundColor = color.RGBA{R: 24, G: 26, B: 33, A: 255}
	groundColor     = colornames.Dimgray
	slopeColor      = colornames.Slategray
	playerColor     = colornames.Crimson
	npcColor        = colornames.Steelblue
	airborneColor   = colornames.Gold
	probeColor      = colornames.Lightgrey
)

// camera looks at the X/Y plane. Z, the forward axis, is not drawn.
type camera struct {
	x, y float64
}

func (c *camera) snap(p mgl64.Vec3) {
	c.x, c.y = p.X(), p.Y()
}

func (c *camera) follow(p mgl64.Vec3) {
	c.x = common.Lerp(c.x, p.X(), cameraFollow)
	c.y = common.Lerp(c.y, p.Y(), cameraFollow)
}

func (c camera) toScreen(x, y float64) (float32, float32) {
	sx := (x-c.x)*common.PixelsPerMeter + screenWidth/2
	sy := screenHeight/2 - (y-c.y)*common.PixelsPerMeter
	return float32(sx), float32(sy)
}

func (c camera) meters(m float64) float32 {
	return float32(m * common.PixelsPerMeter)
}

func drawLevel(screen *ebiten.Image, cam camera, lvl *levels.Level) {
	if g := lvl.Ground; g != nil {
		x, y := cam.toScreen(-g.HalfExtent, g.Y)
		vector.FillRect(screen, x, y, cam.meters(2*g.HalfExtent), cam.meters(1), groundColor, false)
	}
	for _, b := range lvl.Boxes {
		c, s := b.Center, b.Size
		x, y := cam.toScreen(c[0]-s[0]/2, c[1]+s[1]/2)
		vector.FillRect(screen, x, y, cam.meters(s[0]), cam.meters(s[1]), boxColor(b.Color), false)
	}
	for _, s := range lvl.Slopes {
		x0, y0 := cam.toScreen(s.From[0], s.From[1])
		x1, y1 := cam.toScreen(s.To[0], s.To[1])
		vector.StrokeLine(screen, x0, y0, x1, y1, 3, slopeColor, true)
	}
}

func boxColor(name string) color.Color {
	if c, ok := colornames.Map[strings.ToLower(name)]; ok {
		return c
	}
	return groundColor
}

func drawCharacters(screen *ebiten.Image, cam camera, w *ecs.World, alpha float64, player ecs.Entity) {
	ecs.ForEach2(w, component.TransformComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, t *component.Transform, pb *component.PhysicsBody) {
		pos := t.Lerp(alpha)
		fill := color.Color(npcColor)
		if e == player {
			fill = playerColor
		}
		if g, ok := ecs.Get(w, e, component.GroundingComponent.Kind()); ok {
			if g.Phase == controller.Airborne {
				fill = airborneColor
			}
			if g.Result.HasHit {
				x0, y0 := cam.toScreen(pos.X(), pos.Y())
				x1, y1 := cam.toScreen(pos.X(), pos.Y()-g.Result.Distance)
				vector.StrokeLine(screen, x0, y0, x1, y1, 1, probeColor, false)
			}
		}
		drawCapsule(screen, cam, pos, pb.Capsule.Radius, pb.Capsule.HalfLength, fill)
	})
}

func drawCapsule(screen *ebiten.Image, cam camera, pos mgl64.Vec3, radius, halfLength float64, clr color.Color) {
	tx, ty := cam.toScreen(pos.X(), pos.Y()+halfLength)
	bx, by := cam.toScreen(pos.X(), pos.Y()-halfLength)
	r := cam.meters(radius)
	vector.FillCircle(screen, tx, ty, r, clr, true)
	vector.FillCircle(screen, bx, by, r, clr, true)
	vector.FillRect(screen, tx-r, ty, 2*r, by-ty, clr, false)
}

func newHUDFace() (text.Face, error) {
	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, err
	}
	return &text.GoTextFace{Source: s, Size: hudFontSize}, nil
}

// drawHUD falls back to the debug font when no face could be loaded.
func drawHUD(screen *ebiten.Image, face text.Face, msg string) {
	if face == nil {
		ebitenutil.DebugPrintAt(screen, msg, 10, 10)
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(10, 10)
	op.LayoutOptions.LineSpacing = hudFontSize * 1.4
	op.ColorScale.ScaleWithColor(colornames.Whitesmoke)
	text.Draw(screen, msg, face, op)
}
