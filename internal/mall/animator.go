package mall

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/Faultbox/mallmap/pkg/math"
)

// DefaultStep is the fraction of a segment covered per frame.
const DefaultStep = 0.005

// ErrInvalidStep is returned for a non-positive marker step.
var ErrInvalidStep = errors.New("marker step must be positive")

// segmentEnd tolerates accumulated rounding so a step that divides 1
// evenly finishes its segment in exactly 1/step ticks.
const segmentEnd = 1 - 1e-9

// MarkerState is where the marker sits on the route.
type MarkerState struct {
	Segment  int     // Index of the segment start point, in [0, N-2]
	Fraction float64 // Progress along the segment, in [0, 1)
}

// Animator walks a marker along a closed route, one fixed step per frame.
// Speed is tied to frame rate, not wall-clock time.
type Animator struct {
	route []math.Vec3
	step  float64
	state MarkerState
}

// NewAnimator returns an animator at the start of route.
func NewAnimator(route []math.Vec3, step float64) (*Animator, error) {
	if len(route) < 2 {
		return nil, fmt.Errorf("new animator: %w (got %d)", ErrRouteTooShort, len(route))
	}
	if step <= 0 {
		return nil, fmt.Errorf("new animator: %w (got %v)", ErrInvalidStep, step)
	}
	return &Animator{route: route, step: step}, nil
}

// Tick advances the marker by one step and returns its new world position.
// Finishing a segment resets the fraction to 0 on the next segment; after
// the last segment the marker restarts at the first.
func (a *Animator) Tick() math.Vec3 {
	a.state.Fraction += a.step
	if a.state.Fraction >= segmentEnd {
		a.state.Fraction = 0
		a.state.Segment++
		if a.state.Segment >= len(a.route)-1 {
			a.state.Segment = 0
		}
	}
	return a.Position()
}

// Position returns the marker's world position for the current state.
func (a *Animator) Position() math.Vec3 {
	s := a.state
	return math.Lerp(a.route[s.Segment], a.route[s.Segment+1], float32(s.Fraction))
}

// State returns the current marker state.
func (a *Animator) State() MarkerState {
	return a.state
}

// Step returns the per-tick fraction increment.
func (a *Animator) Step() float64 {
	return a.step
}

// Reset puts the marker back at the start of the route.
func (a *Animator) Reset() {
	a.state = MarkerState{}
}

// TicksPerLoop returns how many ticks one full pass over the route takes.
func (a *Animator) TicksPerLoop() int {
	perSegment := int(gomath.Ceil(1/a.step - 1e-9))
	return perSegment * (len(a.route) - 1)
}
