package system

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/reactor/ecs"
	"github.com/milk9111/reactor/ecs/component"
	"github.com/milk9111/reactor/spatial"
)

var (
	colliderDebugColor = color.NRGBA{R: 0x40, G: 0xff, B: 0x60, A: 0xc0}
	crosshairColor     = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xc0}
)

var boxEdges = [12][2]int{
	{0, 1}, {1, 3}, {3, 2}, {2, 0},
	{4, 5}, {5, 7}, {7, 6}, {6, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

var octahedronEdges = [12][2]int{
	{0, 2}, {0, 3}, {0, 4}, {0, 5},
	{1, 2}, {1, 3}, {1, 4}, {1, 5},
	{2, 4}, {4, 3}, {3, 5}, {5, 2},
}

// RenderSystem draws the world as wireframes seen from the main camera, then
// the HUD and the debug overlay.
type RenderSystem struct{}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	b := screen.Bounds()
	width, height := float32(b.Dx()), float32(b.Dy())

	camE, ok := mainCamera(w)
	if !ok {
		return
	}
	cam, ok := ecs.Get(w, camE, component.CameraComponent.Kind())
	if !ok {
		return
	}
	view := globalOf(w, camE)
	vp := viewProjection(view, *cam, width, height)
	debug, _ := singleton(w, component.DebugSettingsComponent.Kind())

	ecs.ForEach2(w, component.MeshComponent.Kind(), component.GlobalTransformComponent.Kind(), func(e ecs.Entity, m *component.Mesh, g *component.GlobalTransform) {
		if m.Hidden {
			return
		}
		switch m.Kind {
		case component.MeshBox:
			r.wire(screen, vp, width, height, boxCorners(m.HalfExtents, g.Transform), boxEdges[:], m.Color, 1)
		case component.MeshOctahedron:
			r.wire(screen, vp, width, height, transformPoints(component.OctahedronPoints(m.HalfExtents.Y(), m.HalfExtents.X()), g.Transform), octahedronEdges[:], m.Color, 1)
		case component.MeshSphere:
			drawSphere(screen, vp, view, g.Translation, m.Radius*maxScale(g.Transform), width, height, m.Color)
		case component.MeshLine:
			if a, c, ok := projectSegment(vp, g.Translation, g.Translation.Add(m.LineEnd), width, height); ok {
				vector.StrokeLine(screen, a.X(), a.Y(), c.X(), c.Y(), 3, m.Color, true)
			}
		}
	})

	ecs.ForEach3(w, component.OutlineComponent.Kind(), component.ColliderComponent.Kind(), component.GlobalTransformComponent.Kind(), func(e ecs.Entity, o *component.Outline, c *component.Collider, g *component.GlobalTransform) {
		if !o.Visible {
			return
		}
		half := c.LocalHalfExtents().Mul(1.04)
		r.wire(screen, vp, width, height, boxCorners(half, g.Transform), boxEdges[:], o.Color, max(o.Width, 1))
	})

	if debug != nil && debug.Physics {
		ecs.ForEach2(w, component.ColliderComponent.Kind(), component.GlobalTransformComponent.Kind(), func(e ecs.Entity, c *component.Collider, g *component.GlobalTransform) {
			if c.Disabled {
				return
			}
			bounds := colliderBounds(*c, g.Transform)
			r.wire(screen, vp, width, height, aabbCorners(bounds), boxEdges[:], colliderDebugColor, 1)
		})
	}

	if currentCameraMode(w) == component.CameraModePlayer {
		cx, cy := width*0.5, height*0.5
		vector.StrokeLine(screen, cx-6, cy, cx+6, cy, 1, crosshairColor, false)
		vector.StrokeLine(screen, cx, cy-6, cx, cy+6, 1, crosshairColor, false)
	}

	drawHUD(w, screen, width)
	if debug != nil && debug.Overlay {
		drawOverlay(w, screen, view, debug.Physics)
	}
}

func (r *RenderSystem) wire(screen *ebiten.Image, vp mgl32.Mat4, width, height float32, pts []mgl32.Vec3, edges [][2]int, c color.NRGBA, stroke float32) {
	for _, edge := range edges {
		a, b, ok := projectSegment(vp, pts[edge[0]], pts[edge[1]], width, height)
		if !ok {
			continue
		}
		vector.StrokeLine(screen, a.X(), a.Y(), b.X(), b.Y(), stroke, c, true)
	}
}

// boxCorners orders corners so bit 0 is +X, bit 1 is +Y and bit 2 is +Z.
func boxCorners(half mgl32.Vec3, t component.Transform) []mgl32.Vec3 {
	pts := make([]mgl32.Vec3, 8)
	for i := range pts {
		p := half
		if i&1 == 0 {
			p[0] = -p[0]
		}
		if i&2 == 0 {
			p[1] = -p[1]
		}
		if i&4 == 0 {
			p[2] = -p[2]
		}
		pts[i] = p
	}
	return transformPoints(pts, t)
}

func aabbCorners(b spatial.AABB) []mgl32.Vec3 {
	return boxCorners(b.HalfExtents(), *component.NewTransform(b.Center()))
}

func transformPoints(pts []mgl32.Vec3, t component.Transform) []mgl32.Vec3 {
	out := make([]mgl32.Vec3, len(pts))
	for i, p := range pts {
		scaled := mgl32.Vec3{p[0] * t.Scale[0], p[1] * t.Scale[1], p[2] * t.Scale[2]}
		out[i] = t.Translation.Add(t.Rotation.Rotate(scaled))
	}
	return out
}

func drawSphere(screen *ebiten.Image, vp mgl32.Mat4, view component.Transform, center mgl32.Vec3, radius, width, height float32, c color.NRGBA) {
	p, ok := project(vp, center, width, height)
	if !ok {
		return
	}
	edge, ok := project(vp, center.Add(view.Up().Mul(radius)), width, height)
	if !ok {
		return
	}
	r := edge.Sub(p).Len()
	if r < 1 {
		r = 1
	}
	vector.DrawFilledCircle(screen, p.X(), p.Y(), r, c, true)
}

func drawHUD(w *ecs.World, screen *ebiten.Image, width float32) {
	if _, ok := ecs.First(w, component.DispenserComponent.Kind()); ok {
		if sb, ok := singleton(w, component.ScoreBoardComponent.Kind()); ok {
			line := fmt.Sprintf("score %d  high %d", sb.Score, sb.High)
			if sb.Running {
				line += fmt.Sprintf("  time %.0f", sb.Round.Remaining())
			}
			ebitenutil.DebugPrintAt(screen, line, int(width)-8-len(line)*6, 8)
		}
	}
	if _, ok := ecs.First(w, component.TutorialComponent.Kind()); ok {
		ebitenutil.DebugPrintAt(screen, "Alt+S to skip", 8, screen.Bounds().Dy()-20)
	}
}

func drawOverlay(w *ecs.World, screen *ebiten.Image, view component.Transform, physics bool) {
	p := view.Translation
	text := fmt.Sprintf("fps %.0f tps %.0f\ncamera %s\npos %.2f %.2f %.2f\nphysics debug %v\nentities %d",
		ebiten.ActualFPS(), ebiten.ActualTPS(), currentCameraMode(w), p[0], p[1], p[2], physics, w.Count())
	if sb, ok := singleton(w, component.ScoreBoardComponent.Kind()); ok {
		text += fmt.Sprintf("\nscore %d high %d rounds %d", sb.Score, sb.High, sb.Rounds)
	}
	if tut, ok := singleton(w, component.TutorialComponent.Kind()); ok {
		text += fmt.Sprintf("\nstep %d/%d paused %v", tut.Step, len(tut.Lines), tut.Paused)
	}
	if c, ok := singleton(w, component.CursorComponent.Kind()); ok && c.Hit {
		text += fmt.Sprintf("\nhover %d at %.1f", c.Entity, c.Distance)
	}
	ebitenutil.DebugPrintAt(screen, text, 8, 8)
}
