package gesture

import (
	"math"
	"time"
)

// Damping factors; reciprocal of the decay period in seconds.
const (
	DampingPan  = 4.0
	DampingZoom = 6.0
)

// Momentum thresholds. Pan velocities are screen pixels per second, zoom
// velocities are zoom levels per second.
const (
	ThresholdStartPan  = 350.0
	ThresholdStopPan   = 24.0
	ThresholdStartZoom = 1.0
	ThresholdStopZoom  = 0.3
)

// Timing windows for tap classification and dual-gesture handoff.
const (
	DoubleTapTimeout        = 300 * time.Millisecond
	LongPressTimeout        = 500 * time.Millisecond
	DualStopHoldDuration    = 500 * time.Millisecond
	DualKineticHoldDuration = 200 * time.Millisecond
)

// Distance heuristics, in inches; converted to pixels with the view DPI.
const (
	TapMovementThresholdInches  = 0.1
	GuessMaxDeltaYInches        = 1.0
	GuessMinSwipeLengthSame     = 0.1
	GuessMinSwipeLengthOpposite = 0.075
)

// RotationScalingThresholdSticky is the dominance factor at which a sticky
// gesture switches between rotation and scaling.
const RotationScalingThresholdSticky = 0.3

// SinglePointerZoomSensitivity converts vertical drag pixels into zoom
// levels during a double-tap-and-drag.
const SinglePointerZoomSensitivity = 0.005

// MaxPitchForPanLimiting is the pitch above which ground-plane pan deltas
// are clamped to the screen-space delta, preventing runaway panning when the
// view is nearly horizontal.
const MaxPitchForPanLimiting = 75.0 * math.Pi / 180.0

// DefaultDPI is assumed when the platform cannot report a true density. It
// yields a 16 px tap threshold, consistent with legacy pixel thresholds.
const DefaultDPI = 160.0
