package tumble

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/kamstrup/intmap"
)

// ButtonKind distinguishes the input device a Button belongs to.
type ButtonKind uint8

const (
	ButtonKeyboard ButtonKind = iota // keyboard key
	ButtonMouse                      // mouse button
)

// Button identifies one physical input control. Buttons are comparable and
// can be used as map keys; the zero value is the keyboard key with code 0.
type Button uint32

const buttonKindShift = 24

// KeyButton returns the Button for a keyboard key.
func KeyButton(k ebiten.Key) Button {
	return Button(uint32(ButtonKeyboard)<<buttonKindShift | uint32(k))
}

// MouseButton returns the Button for a mouse button.
func MouseButton(b ebiten.MouseButton) Button {
	return Button(uint32(ButtonMouse)<<buttonKindShift | uint32(b))
}

// Kind returns the device kind of b.
func (b Button) Kind() ButtonKind {
	return ButtonKind(b >> buttonKindShift)
}

func (b Button) code() int {
	return int(b & (1<<buttonKindShift - 1))
}

// String returns the name ParseButton accepts for b.
func (b Button) String() string {
	switch b.Kind() {
	case ButtonKeyboard:
		return ebiten.Key(b.code()).String()
	case ButtonMouse:
		switch ebiten.MouseButton(b.code()) {
		case ebiten.MouseButtonLeft:
			return "MouseLeft"
		case ebiten.MouseButtonRight:
			return "MouseRight"
		case ebiten.MouseButtonMiddle:
			return "MouseMiddle"
		}
		return fmt.Sprintf("Mouse%d", b.code())
	}
	return fmt.Sprintf("Button(%d)", uint32(b))
}

// ParseButton resolves a key name such as "Left", "Space" or "Enter", or one
// of "MouseLeft", "MouseRight", "MouseMiddle".
func ParseButton(name string) (Button, error) {
	switch strings.TrimSpace(name) {
	case "MouseLeft":
		return MouseButton(ebiten.MouseButtonLeft), nil
	case "MouseRight":
		return MouseButton(ebiten.MouseButtonRight), nil
	case "MouseMiddle":
		return MouseButton(ebiten.MouseButtonMiddle), nil
	}
	var k ebiten.Key
	if err := k.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return 0, fmt.Errorf("parse button %q: %w", name, err)
	}
	return KeyButton(k), nil
}

// UnmarshalText implements encoding.TextUnmarshaler so buttons can be named
// in config files.
func (b *Button) UnmarshalText(text []byte) error {
	v, err := ParseButton(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (b Button) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// EventKind identifies what a frame event carries.
type EventKind uint8

const (
	EventUpdate  EventKind = iota // an update tick with an elapsed time
	EventPress                    // a button went down
	EventRelease                  // a button went up
)

// Event is one notification from the windowing collaborator. Update events
// carry DT in seconds; press and release events carry Button.
type Event struct {
	Kind   EventKind
	DT     float64
	Button Button
}

// UpdateEvent returns an update tick of dt seconds.
func UpdateEvent(dt float64) Event {
	return Event{Kind: EventUpdate, DT: dt}
}

// PressEvent returns a press notification for b.
func PressEvent(b Button) Event {
	return Event{Kind: EventPress, Button: b}
}

// ReleaseEvent returns a release notification for b.
func ReleaseEvent(b Button) Event {
	return Event{Kind: EventRelease, Button: b}
}

// InputState tracks which buttons are currently held. It keeps no history: it
// cannot tell a button pressed this frame from one held for many frames.
type InputState struct {
	held *intmap.Set[Button]
}

// NewInputState creates an empty tracker.
func NewInputState() *InputState {
	return &InputState{held: intmap.NewSet[Button](16)}
}

// Update applies a press or release notification. Repeated presses are
// idempotent and a release of a button that is not held is a no-op. Update
// events are ignored.
func (s *InputState) Update(ev Event) {
	switch ev.Kind {
	case EventPress:
		s.held.Add(ev.Button)
	case EventRelease:
		s.held.Del(ev.Button)
	}
}

// IsDown reports whether b is currently held.
func (s *InputState) IsDown(b Button) bool {
	return s.held.Has(b)
}

// Held returns the number of buttons currently held.
func (s *InputState) Held() int {
	return s.held.Len()
}

// Reset releases every button.
func (s *InputState) Reset() {
	s.held.Clear()
}

var pollMouseButtons = [...]ebiten.MouseButton{
	ebiten.MouseButtonLeft,
	ebiten.MouseButtonRight,
	ebiten.MouseButtonMiddle,
}

// PollEvents appends press and release events for every key and mouse button
// whose state changed since the previous tick. Must be called from inside
// ebiten's Update.
func PollEvents(buf []Event, keys []ebiten.Key) ([]Event, []ebiten.Key) {
	keys = inpututil.AppendJustPressedKeys(keys[:0])
	for _, k := range keys {
		buf = append(buf, PressEvent(KeyButton(k)))
	}
	keys = inpututil.AppendJustReleasedKeys(keys[:0])
	for _, k := range keys {
		buf = append(buf, ReleaseEvent(KeyButton(k)))
	}
	for _, mb := range pollMouseButtons {
		if inpututil.IsMouseButtonJustPressed(mb) {
			buf = append(buf, PressEvent(MouseButton(mb)))
		}
		if inpututil.IsMouseButtonJustReleased(mb) {
			buf = append(buf, ReleaseEvent(MouseButton(mb)))
		}
	}
	return buf, keys
}
