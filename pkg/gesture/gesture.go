// Package gesture implements a multi-touch gesture engine for an interactive
// map view. It ingests raw pointer events (up to two simultaneous pointers)
// and translates them into pan, zoom, rotate and tilt mutations on a View,
// drives a kinetic decay animation for fling momentum, and mediates
// application listeners that may observe or suppress clicks and continuous
// interactions.
//
// The engine is single-threaded cooperative: OnTouch, Update and all setters
// must be called from one goroutine (typically the UI or session loop).
// Listener registration is the only concern guarded for cross-goroutine use.
package gesture

import "math"

// Action identifies one of the six raw pointer actions reported by the
// input platform. The numeric values are part of the native protocol.
type Action int

const (
	ActionPointer1Down Action = iota // first pointer touched down
	ActionPointer2Down               // second pointer touched down
	ActionMove                       // one or both pointers moved
	ActionCancel                     // gesture aborted by the platform
	ActionPointer1Up                 // first pointer lifted
	ActionPointer2Up                 // second pointer lifted
)

func (a Action) String() string {
	switch a {
	case ActionPointer1Down:
		return "pointer1Down"
	case ActionPointer2Down:
		return "pointer2Down"
	case ActionMove:
		return "move"
	case ActionCancel:
		return "cancel"
	case ActionPointer1Up:
		return "pointer1Up"
	case ActionPointer2Up:
		return "pointer2Up"
	}
	return "unknown"
}

// Mode is the current gesture hypothesis. Exactly one mode is active at any
// moment; transitions are driven exclusively by pointer actions.
type Mode int

const (
	ModeSingleClickGuess Mode = iota // one pointer down, could still be a tap
	ModeDualClickGuess               // two pointers down, could still be a dual tap
	ModeSinglePan                    // one pointer panning
	ModeSingleZoom                   // double-tap-and-drag zoom
	ModeDualGuess                    // two pointers moving, gesture not yet classified
	ModeDualTilt                     // two-finger vertical shove
	ModeDualRotate                   // sticky rotation
	ModeDualScale                    // sticky pinch
	ModeDualFree                     // simultaneous rotate and scale
)

func (m Mode) String() string {
	switch m {
	case ModeSingleClickGuess:
		return "singleClickGuess"
	case ModeDualClickGuess:
		return "dualClickGuess"
	case ModeSinglePan:
		return "singlePan"
	case ModeSingleZoom:
		return "singleZoom"
	case ModeDualGuess:
		return "dualGuess"
	case ModeDualTilt:
		return "dualTilt"
	case ModeDualRotate:
		return "dualRotate"
	case ModeDualScale:
		return "dualScale"
	case ModeDualFree:
		return "dualFree"
	}
	return "unknown"
}

// dual reports whether the mode has both pointers engaged in a gesture.
func (m Mode) dual() bool {
	switch m {
	case ModeDualGuess, ModeDualTilt, ModeDualRotate, ModeDualScale, ModeDualFree:
		return true
	}
	return false
}

// PanningMode selects how rotation and scaling combine during a dual gesture.
type PanningMode int

const (
	// PanningFree rotates and scales simultaneously.
	PanningFree PanningMode = iota
	// PanningSticky locks to one of rotate/scale but allows switching
	// mid-gesture when the other clearly dominates.
	PanningSticky
	// PanningStickyFinal locks until both pointers release.
	PanningStickyFinal
)

func (p PanningMode) String() string {
	switch p {
	case PanningFree:
		return "free"
	case PanningSticky:
		return "sticky"
	case PanningStickyFinal:
		return "stickyFinal"
	}
	return "unknown"
}

// NoCoordinate is the sentinel passed for a pointer position that does not
// apply to the action (e.g. pos2 on a single-pointer move).
const NoCoordinate = -1.0

// ScreenPos is a position in device pixels, origin at the view's top-left,
// y growing downward.
type ScreenPos struct {
	X, Y float64
}

// Pos is shorthand for constructing a ScreenPos.
func Pos(x, y float64) ScreenPos {
	return ScreenPos{X: x, Y: y}
}

func (p ScreenPos) sub(q ScreenPos) ScreenPos {
	return ScreenPos{X: p.X - q.X, Y: p.Y - q.Y}
}

func (p ScreenPos) length() float64 {
	return math.Hypot(p.X, p.Y)
}

func (p ScreenPos) distanceTo(q ScreenPos) float64 {
	return p.sub(q).length()
}

func midpoint(a, b ScreenPos) ScreenPos {
	return ScreenPos{X: (a.X + b.X) * 0.5, Y: (a.Y + b.Y) * 0.5}
}

// View is the narrow surface the engine mutates. Implementations provide the
// map camera; the engine never touches rendering or tile state.
//
// ScreenToGroundPlane returns coordinates on the z = elev map plane relative
// to the view center. All angles are radians; MaxPitch included.
type View interface {
	Width() float64
	Height() float64
	PixelScale() float64
	PixelsPerMeter() float64
	Zoom() float64
	Pitch() float64
	MaxPitch() float64

	Translate(dx, dy float64)
	ZoomBy(delta float64)
	YawBy(radians float64)
	PitchBy(radians float64)

	ScreenToGroundPlane(x, y, elev float64) (mx, my float64)
	ScreenPositionToLngLat(x, y float64) (lng, lat, elev float64)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
