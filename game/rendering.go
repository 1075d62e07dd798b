package game

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/substep/collide"
	"github.com/pthm-cable/substep/components"
	"github.com/pthm-cable/substep/physnum"
)

// Draw renders the scene, HUD, and the optional debug panel.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	g.drawEntities()

	rl.DrawText(fmt.Sprintf("Tick: %d", g.tick), 14, 14, 20, rl.White)
	rl.DrawText(fmt.Sprintf("Entities: %d", g.entityCount), 14, 38, 20, rl.White)
	if x, y, ok := g.PlayerPosition(); ok {
		rl.DrawText(fmt.Sprintf("Player: %.2f, %.2f", x, y), 14, 62, 20, rl.White)
	}
	if g.paused {
		rl.DrawText("PAUSED", 14, 86, 20, rl.Yellow)
	}

	if g.debugPanel {
		g.drawDebugPanel()
	}

	rl.EndDrawing()
}

// drawEntities renders every positioned, shaped entity.
func (g *Game) drawEntities() {
	query := g.renderFilter.Query()
	for query.Next() {
		pos, shape, colour := query.Get()
		p := pos.Vec()
		c := toRaylib(*colour)

		switch s := shape.Geom.(type) {
		case collide.Rect[physnum.SubPixel]:
			rl.DrawRectangleV(
				rl.Vector2{X: p.X.Pixels(), Y: p.Y.Pixels()},
				rl.Vector2{X: s.Size.X.Pixels(), Y: s.Size.Y.Pixels()},
				c,
			)
		case collide.Segment[physnum.SubPixel]:
			start := s.Start.Add(p)
			end := s.End.Add(p)
			rl.DrawLineEx(
				rl.Vector2{X: start.X.Pixels(), Y: start.Y.Pixels()},
				rl.Vector2{X: end.X.Pixels(), Y: end.Y.Pixels()},
				2,
				c,
			)
		}

		if g.showAABBs {
			b := shape.Geom.AABB(p)
			rl.DrawRectangleLines(
				int32(b.Min.X.Pixels()),
				int32(b.Min.Y.Pixels()),
				int32((b.Max.X - b.Min.X).Pixels()),
				int32((b.Max.Y - b.Min.Y).Pixels()),
				rl.Magenta,
			)
		}
	}
}

// drawDebugPanel renders the raygui control panel.
func (g *Game) drawDebugPanel() {
	panelX := float32(g.cfg.Screen.Width) - 230
	panelY := float32(14)

	rl.DrawText("Debug", int32(panelX), int32(panelY), 20, rl.DarkGray)
	panelY += 30

	g.paused = gui.CheckBox(
		rl.Rectangle{X: panelX, Y: panelY, Width: 20, Height: 20},
		"Paused", g.paused,
	)
	panelY += 30

	g.showAABBs = gui.CheckBox(
		rl.Rectangle{X: panelX, Y: panelY, Width: 20, Height: 20},
		"Show AABBs", g.showAABBs,
	)
	panelY += 30

	rl.DrawText(fmt.Sprintf("Speed: %.1f px/tick", g.speed), int32(panelX), int32(panelY), 14, rl.Gray)
	panelY += 20
	g.speed = gui.SliderBar(
		rl.Rectangle{X: panelX, Y: panelY, Width: 180, Height: 20},
		"1", "10",
		g.speed, 1, 10,
	)
	panelY += 35

	if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 180, Height: 28}, "Reset Scene") {
		g.ResetScene(g.cfg)
	}
}

func toRaylib(c components.Colour) rl.Color {
	return rl.Color{
		R: uint8(c.R * 255),
		G: uint8(c.G * 255),
		B: uint8(c.B * 255),
		A: 255,
	}
}
