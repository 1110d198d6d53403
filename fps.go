package tumble

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// fpsPanelW and fpsPanelH fit "FPS: 60.0\nTPS: 60.0" in the debug font.
const (
	fpsPanelW = 100
	fpsPanelH = 32
)

var fpsBackground = color.RGBA{0, 0, 0, 128}

// drawFPS prints the current FPS and TPS over a semi-transparent panel in the
// top-left corner of dst.
func drawFPS(dst *ebiten.Image) {
	vector.FillRect(dst, 0, 0, fpsPanelW, fpsPanelH, fpsBackground, false)
	ebitenutil.DebugPrint(dst, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
}
