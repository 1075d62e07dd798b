package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/substep/physnum"
)

// InputModel holds the four directional input axes, each clamped to
// [0, 1] pixel. Analog sources can feed fractional values; the keyboard
// feeds 0 or 1.
type InputModel struct {
	left, right, up, down physnum.SubPixel
}

func clampInput(value float32) physnum.SubPixel {
	return physnum.FromPixels(value).ClampZeroOnePixel()
}

// SetLeft sets the left axis, clamped to [0, 1].
func (m *InputModel) SetLeft(value float32) { m.left = clampInput(value) }

// SetRight sets the right axis, clamped to [0, 1].
func (m *InputModel) SetRight(value float32) { m.right = clampInput(value) }

// SetUp sets the up axis, clamped to [0, 1].
func (m *InputModel) SetUp(value float32) { m.up = clampInput(value) }

// SetDown sets the down axis, clamped to [0, 1].
func (m *InputModel) SetDown(value float32) { m.down = clampInput(value) }

// Movement combines the axes into a movement direction of at most one
// pixel length, so diagonals are no faster than cardinals.
func (m *InputModel) Movement() vec {
	return physnum.NormalizeIfLongerThanOnePixel(vec{
		X: m.right - m.left,
		Y: m.down - m.up,
	})
}

// handleInput processes keyboard input.
func (g *Game) handleInput() {
	g.input.SetLeft(keyAxis(rl.KeyA, rl.KeyLeft))
	g.input.SetRight(keyAxis(rl.KeyD, rl.KeyRight))
	g.input.SetUp(keyAxis(rl.KeyW, rl.KeyUp))
	g.input.SetDown(keyAxis(rl.KeyS, rl.KeyDown))

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		g.debugPanel = !g.debugPanel
	}
	if rl.IsKeyPressed(rl.KeyR) {
		g.ResetScene(g.cfg)
	}
}

func keyAxis(keys ...int32) float32 {
	for _, k := range keys {
		if rl.IsKeyDown(k) {
			return 1
		}
	}
	return 0
}
