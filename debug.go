package tumble

import (
	"fmt"
	"os"
	"time"
)

// debugStats holds per-frame timing and draw-call metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	advanceTime time.Duration
	drawTime    time.Duration
	running     int
	drawCalls   int
}

// debugLog prints timing and draw-call stats to stderr.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[tumble] advance: %v | draw: %v | total: %v\n",
		stats.advanceTime, stats.drawTime, stats.advanceTime+stats.drawTime)
	_, _ = fmt.Fprintf(os.Stderr,
		"[tumble] animations: %d | entities: %d | draw calls: %d\n",
		stats.running, len(s.entities), stats.drawCalls)
}

func debugLifecycle(kind AnimationEventKind, a *Animation) {
	_, _ = fmt.Fprintf(os.Stderr, "[tumble] animation %d %s (entity %s, %.3fs)\n",
		a.ID, kind, a.Target, a.elapsed)
}

// debugMaxStackDepth is the cursor stack depth above which a warning is
// printed. Deeply nested trees usually mean a script generated them.
const debugMaxStackDepth = 32

func debugCheckDepth(a *Animation) {
	if len(a.stack) > debugMaxStackDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[tumble] warning: animation %d nested %d deep (threshold %d)\n",
			a.ID, len(a.stack), debugMaxStackDepth)
	}
}
