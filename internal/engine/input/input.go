// Package input defines the window events the viewer reacts to.
// Events are produced by the window package from SDL and consumed by the app.
package input

// EventType identifies an Event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventMouseWheel
)

// Key is a physical key.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyF12
	KeyR
)

// Mouse buttons, numbered as SDL does.
const (
	ButtonLeft   uint8 = 1
	ButtonMiddle uint8 = 2
	ButtonRight  uint8 = 3
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    Key
	Width  int
	Height int
	MouseX int
	MouseY int
	RelX   int // Motion since the previous move event
	RelY   int
	Button uint8
	WheelY float32 // Positive scrolls away from the user
}

// Input collects the events of one frame.
type Input struct {
	events []Event
	quit   bool
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Reset clears the previous frame's events.
func (i *Input) Reset() {
	i.events = i.events[:0]
}

// Push appends an event for this frame.
func (i *Input) Push(e Event) {
	if e.Type == EventQuit {
		i.quit = true
	}
	i.events = append(i.events, e)
}

// Events returns the events queued since the last Reset.
func (i *Input) Events() []Event {
	return i.events
}

// QuitRequested reports whether a quit event was ever pushed.
func (i *Input) QuitRequested() bool {
	return i.quit
}
