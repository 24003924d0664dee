package window

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/mallmap/internal/engine/input"
)

var keyMap = map[sdl.Scancode]input.Key{
	sdl.SCANCODE_ESCAPE: input.KeyEscape,
	sdl.SCANCODE_F12:    input.KeyF12,
	sdl.SCANCODE_R:      input.KeyR,
}

// PollEvents drains the SDL queue into in, replacing last frame's events.
// Returns true if the window should close.
func (w *Window) PollEvents(in *input.Input) bool {
	in.Reset()

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			in.Push(input.Event{Type: input.EventQuit})

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				width, height := w.GetSize()
				in.Push(input.Event{
					Type:   input.EventWindowResize,
					Width:  width,
					Height: height,
				})
			}

		case *sdl.KeyboardEvent:
			key, ok := keyMap[e.Keysym.Scancode]
			if !ok || e.Repeat != 0 {
				continue
			}
			if e.Type == sdl.KEYDOWN {
				in.Push(input.Event{Type: input.EventKeyDown, Key: key})
			} else if e.Type == sdl.KEYUP {
				in.Push(input.Event{Type: input.EventKeyUp, Key: key})
			}

		case *sdl.MouseMotionEvent:
			in.Push(input.Event{
				Type:   input.EventMouseMove,
				MouseX: int(e.X),
				MouseY: int(e.Y),
				RelX:   int(e.XRel),
				RelY:   int(e.YRel),
			})

		case *sdl.MouseButtonEvent:
			ev := input.Event{
				MouseX: int(e.X),
				MouseY: int(e.Y),
				Button: e.Button,
			}
			if e.Type == sdl.MOUSEBUTTONDOWN {
				ev.Type = input.EventMouseDown
			} else {
				ev.Type = input.EventMouseUp
			}
			in.Push(ev)

		case *sdl.MouseWheelEvent:
			wheel := float32(e.Y)
			if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
				wheel = -wheel
			}
			in.Push(input.Event{Type: input.EventMouseWheel, WheelY: wheel})
		}
	}

	return in.QuitRequested()
}
