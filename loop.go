package tumble

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// Stage is one phase of the program driven by a Loop. Each frame the loop
// hands the stage its press and release events followed by exactly one
// update event, then draws it.
type Stage interface {
	// HandleEvent consumes one event. A non-nil error ends the program.
	HandleEvent(ev Event) error
	// Done reports whether the loop should move on to the next stage.
	Done() bool
	// Draw renders the stage onto dst.
	Draw(dst *ebiten.Image)
}

// RunConfig holds optional parameters for Run.
type RunConfig struct {
	// Title sets the window title.
	Title string
	// Width and Height set the window size and the logical screen size.
	// Zero means 300x300.
	Width, Height int
	// ShowFPS prints the actual FPS and TPS in the top-left corner.
	ShowFPS bool
}

// Loop runs a list of stages one after the other and implements ebiten.Game.
// Ordering within a frame is fixed: events, then the update tick, then draw.
type Loop struct {
	stages  []Stage
	current int
	cfg     RunConfig

	events []Event
	keys   []ebiten.Key
	poll   func(buf []Event, keys []ebiten.Key) ([]Event, []ebiten.Key)

	injectQueue     []Event
	testRunner      *TestRunner
	screenshotQueue []string
	shots           int

	// ScreenshotDir is the directory where Screenshot writes PNG files.
	ScreenshotDir string

	// OnStage, if set, is called whenever the loop moves to a new stage with
	// that stage's index.
	OnStage func(index int)
}

// NewLoop creates a loop over stages with the given window settings.
func NewLoop(cfg RunConfig, stages ...Stage) *Loop {
	if cfg.Width <= 0 {
		cfg.Width = 300
	}
	if cfg.Height <= 0 {
		cfg.Height = 300
	}
	return &Loop{
		stages:        stages,
		cfg:           cfg,
		poll:          PollEvents,
		ScreenshotDir: "screenshots",
	}
}

// Stage returns the index of the current stage. It equals the number of
// stages once the loop has finished.
func (l *Loop) Stage() int {
	return l.current
}

// Finished reports whether every stage is done.
func (l *Loop) Finished() bool {
	return l.current >= len(l.stages)
}

// Update implements ebiten.Game.
func (l *Loop) Update() error {
	return l.tick(1 / float64(ebiten.TPS()))
}

// tick runs one frame of dt seconds against the current stage.
func (l *Loop) tick(dt float64) error {
	if l.testRunner != nil {
		l.testRunner.step(l)
	}
	if l.Finished() {
		return ebiten.Termination
	}
	st := l.stages[l.current]

	l.events = l.events[:0]
	if ev, ok := l.popInjected(); ok {
		l.events = append(l.events, ev)
	}
	if l.poll != nil {
		l.events, l.keys = l.poll(l.events, l.keys)
	}
	l.events = append(l.events, UpdateEvent(dt))

	for _, ev := range l.events {
		if err := st.HandleEvent(ev); err != nil {
			return fmt.Errorf("stage %d: %w", l.current, err)
		}
	}

	if st.Done() {
		l.current++
		if l.OnStage != nil {
			l.OnStage(l.current)
		}
		if l.Finished() {
			return ebiten.Termination
		}
	}
	return nil
}

// Draw implements ebiten.Game.
func (l *Loop) Draw(screen *ebiten.Image) {
	if !l.Finished() {
		l.stages[l.current].Draw(screen)
	}
	if l.cfg.ShowFPS {
		drawFPS(screen)
	}
	l.flushScreenshots(screen)
}

// Layout implements ebiten.Game. The logical screen is always the configured
// size.
func (l *Loop) Layout(_, _ int) (int, int) {
	return l.cfg.Width, l.cfg.Height
}

// Run opens a window and runs stages in order until the last one is done or
// the window is closed.
func Run(cfg RunConfig, stages ...Stage) error {
	return RunLoop(NewLoop(cfg, stages...))
}

// RunLoop opens a window for an already configured loop, for callers that
// attach a TestRunner or OnStage hook first.
func RunLoop(l *Loop) error {
	if l.cfg.Title != "" {
		ebiten.SetWindowTitle(l.cfg.Title)
	}
	ebiten.SetWindowSize(l.cfg.Width, l.cfg.Height)
	if err := ebiten.RunGame(l); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
