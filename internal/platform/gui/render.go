package gui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/bitmapfont/v4"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/lane-racer/internal/core"
	"github.com/vovakirdan/lane-racer/internal/games/racer"
)

var (
	backgroundColor = color.RGBA{30, 30, 40, 255}
	laneColor       = color.RGBA{90, 90, 100, 255}
	vehicleColor    = color.RGBA{220, 40, 40, 255}
	obstacleColor   = color.RGBA{235, 235, 235, 255}
	buttonColor     = color.RGBA{255, 200, 50, 255}
	overlayColor    = color.RGBA{0, 0, 0, 170}
	wastedColor     = color.RGBA{255, 60, 60, 255}
	textColor       = color.White
)

// imageRenderer draws arena rectangles onto an ebiten image. The arena is
// y-up and images are y-down, so every rectangle is flipped first.
type imageRenderer struct {
	dst    *ebiten.Image
	height int
	face   *text.GoXFace
}

func newImageRenderer(height int) *imageRenderer {
	return &imageRenderer{
		height: height,
		face:   text.NewGoXFace(bitmapfont.Face),
	}
}

// begin clears the frame and targets dst.
func (r *imageRenderer) begin(dst *ebiten.Image) {
	r.dst = dst
	dst.Fill(backgroundColor)
}

func (r *imageRenderer) fillRect(rect core.Rect, clr color.Color) {
	s := rect.FlipY(r.height)
	vector.DrawFilledRect(r.dst, float32(s.X), float32(s.Y), float32(s.W), float32(s.H), clr, false)
}

// DrawRoad draws dashed lane markings, one per lane step.
func (r *imageRenderer) DrawRoad(a racer.Arena) {
	dash := max(a.Height/40, 2)
	for x := a.LaneStep; x < a.Width; x += a.LaneStep {
		for y := 0; y < a.Height; y += dash * 2 {
			vector.DrawFilledRect(r.dst, float32(x), float32(y), 2, float32(dash), laneColor, false)
		}
	}
}

func (r *imageRenderer) DrawObstacle(rect core.Rect) {
	r.fillRect(rect, obstacleColor)
}

func (r *imageRenderer) DrawVehicle(rect core.Rect) {
	r.fillRect(rect, vehicleColor)
}

func (r *imageRenderer) DrawScore(score int) {
	r.drawText(fmt.Sprintf("Score: %d", score), 12, 12, 2, textColor)
}

func (r *imageRenderer) DrawControls(c racer.Controls) {
	r.drawButton(c.Left, "< LEFT")
	r.drawButton(c.Right, "RIGHT >")
}

// DrawGameOver dims the road and shows the result with the restart button.
func (r *imageRenderer) DrawGameOver(best int, restart core.Rect) {
	b := r.dst.Bounds()
	vector.DrawFilledRect(r.dst, 0, 0, float32(b.Dx()), float32(b.Dy()), overlayColor, false)

	cx := float64(b.Dx()) / 2
	y := float64(r.height) / 4
	r.drawCentered("WASTED!!!", cx, y, 4, wastedColor)
	r.drawCentered(fmt.Sprintf("Best Score: %d", best), cx, y+80, 2, textColor)

	r.drawButton(restart, "RESTART")
}

// drawPaused overlays the pause banner.
func (r *imageRenderer) drawPaused() {
	b := r.dst.Bounds()
	vector.DrawFilledRect(r.dst, 0, 0, float32(b.Dx()), float32(b.Dy()), overlayColor, false)

	cx := float64(b.Dx()) / 2
	cy := float64(b.Dy()) / 2
	r.drawCentered("PAUSED", cx, cy-24, 3, textColor)
	r.drawCentered("Press P to resume", cx, cy+24, 1.5, textColor)
}

// drawButton outlines the button and centres its label inside.
func (r *imageRenderer) drawButton(rect core.Rect, label string) {
	s := rect.FlipY(r.height)
	vector.StrokeRect(r.dst, float32(s.X), float32(s.Y), float32(s.W), float32(s.H), 3, buttonColor, false)

	scale := 2.0
	cx := float64(s.X) + float64(s.W)/2
	cy := float64(s.Y) + float64(s.H)/2 - r.lineHeight()*scale/2
	r.drawCentered(label, cx, cy, scale, buttonColor)
}

func (r *imageRenderer) drawCentered(s string, cx, y, scale float64, clr color.Color) {
	w := text.Advance(s, r.face) * scale
	r.drawText(s, cx-w/2, y, scale, clr)
}

func (r *imageRenderer) drawText(s string, x, y, scale float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(r.dst, s, r.face, op)
}

func (r *imageRenderer) lineHeight() float64 {
	m := r.face.Metrics()
	return m.HAscent + m.HDescent
}
