package gesture

import "time"

// Engine is the gesture state machine for one map view. All methods except
// the listener setters must be called from a single goroutine.
type Engine struct {
	view View

	mode        Mode
	panningMode PanningMode

	pointersDown int

	// noDualPointerYet gates the kinetic handoff at pointer-1 up: a fling
	// is only armed for gestures that never grew a second pointer.
	noDualPointerYet bool

	// interactionConsumed is set when the interaction listener suppressed
	// default handling for the current continuous gesture.
	interactionConsumed bool

	prev1, prev2 ScreenPos

	firstTapPos  ScreenPos
	firstTapTime time.Time
	p1DownTime   time.Time

	// dualReleaseTime suppresses single-pan jitter right after one pointer
	// of a dual gesture lifts and the survivor becomes the pan anchor.
	dualReleaseTime time.Time

	// doubleTapStartPos is the fixed screen anchor during ModeSingleZoom.
	doubleTapStartPos   ScreenPos
	singleZoomStartZoom float64

	// swipe1, swipe2 accumulate DPI-normalized displacements for the
	// dual-pointer classification heuristic.
	swipe1, swipe2 ScreenPos

	// Fling state: pan velocity in map meters per second, zoom velocity in
	// zoom levels per second. Set when a fling is armed; once they fall
	// below the stop thresholds Update stops moving the view but leaves the
	// residual values in place.
	velocityPanX, velocityPanY float64
	velocityZoom               float64

	// Velocity estimator fed by move deltas during a gesture; copied into
	// the fling state at arming.
	estVelPanX, estVelPanY float64
	estVelZoom             float64
	lastMoveTime           time.Time

	dpi float64

	zoomEnabled          bool
	panEnabled           bool
	doubleTapEnabled     bool
	doubleTapDragEnabled bool
	tiltEnabled          bool
	rotateEnabled        bool

	listeners listenerHolder

	// now samples the monotonic clock; replaceable in tests. Wall-clock
	// must not be used: DST or NTP jumps would mis-classify double taps.
	now func() time.Time
}

// New creates an engine for the given view with all gestures enabled,
// free panning and the default DPI.
func New(view View) *Engine {
	return &Engine{
		view:                 view,
		mode:                 ModeSingleClickGuess,
		panningMode:          PanningFree,
		noDualPointerYet:     true,
		dpi:                  DefaultDPI,
		zoomEnabled:          true,
		panEnabled:           true,
		doubleTapEnabled:     true,
		doubleTapDragEnabled: true,
		tiltEnabled:          true,
		rotateEnabled:        true,
		now:                  time.Now,
	}
}

// SetView swaps the view the engine mutates.
func (e *Engine) SetView(view View) { e.view = view }

// SetDPI sets the device density used to convert the inch-based gesture
// thresholds into pixels. Non-positive values restore the default.
func (e *Engine) SetDPI(dpi float64) {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	e.dpi = dpi
}

// DPI returns the configured device density.
func (e *Engine) DPI() float64 { return e.dpi }

// SetPanningMode selects how rotation and scaling combine during dual
// gestures.
func (e *Engine) SetPanningMode(mode PanningMode) { e.panningMode = mode }

// PanningMode returns the active panning policy.
func (e *Engine) PanningMode() PanningMode { return e.panningMode }

// Mode returns the currently active gesture mode.
func (e *Engine) Mode() Mode { return e.mode }

// PointersDown returns the number of pointers currently touching.
func (e *Engine) PointersDown() int { return e.pointersDown }

// SetZoomEnabled toggles pinch and drag zooming.
func (e *Engine) SetZoomEnabled(on bool) { e.zoomEnabled = on }

// SetPanEnabled toggles panning.
func (e *Engine) SetPanEnabled(on bool) { e.panEnabled = on }

// SetDoubleTapEnabled toggles double-tap recognition.
func (e *Engine) SetDoubleTapEnabled(on bool) { e.doubleTapEnabled = on }

// SetDoubleTapDragEnabled toggles the double-tap-and-drag zoom gesture.
func (e *Engine) SetDoubleTapDragEnabled(on bool) { e.doubleTapDragEnabled = on }

// SetTiltEnabled toggles the two-finger shove.
func (e *Engine) SetTiltEnabled(on bool) { e.tiltEnabled = on }

// SetRotateEnabled toggles two-finger rotation.
func (e *Engine) SetRotateEnabled(on bool) { e.rotateEnabled = on }

// SetClickListener installs the click listener. Safe to call from any
// goroutine. Pass nil to remove.
func (e *Engine) SetClickListener(l ClickListener) { e.listeners.setClick(l) }

// SetInteractionListener installs the interaction listener. Safe to call
// from any goroutine. Pass nil to remove.
func (e *Engine) SetInteractionListener(l InteractionListener) {
	e.listeners.setInteraction(l)
}

// tapThreshold is the maximum movement, in pixels, for an up to still
// qualify as a click.
func (e *Engine) tapThreshold() float64 {
	return TapMovementThresholdInches * e.dpi
}

// Cancel hard-resets the engine: any gesture terminates, velocities zero,
// and the machine returns to the initial mode with no pointers down.
func (e *Engine) Cancel() {
	e.reset()
}

func (e *Engine) reset() {
	e.setVelocity(0, 0, 0)
	e.resetEstimator()
	e.mode = ModeSingleClickGuess
	e.pointersDown = 0
	e.interactionConsumed = false
}

// OnTouch feeds one pointer action into the state machine. Positions are in
// device pixels; pass NoCoordinate for a position the action does not carry.
// It returns whether the interaction listener consumed the event.
func (e *Engine) OnTouch(action Action, pos1, pos2 ScreenPos) bool {
	if e.view == nil {
		return false
	}

	// Malformed sequences (a duplicate down without an intervening up) are
	// treated as an implicit cancel followed by the new action.
	switch action {
	case ActionPointer1Down:
		if e.pointersDown != 0 {
			e.reset()
		}
	case ActionPointer2Down:
		if e.pointersDown > 1 {
			e.reset()
		}
	}

	switch action {
	case ActionPointer1Down:
		e.onPointer1Down(pos1)
	case ActionPointer2Down:
		e.onPointer2Down(pos1, pos2)
	case ActionMove:
		e.onMove(pos1, pos2)
	case ActionCancel:
		e.reset()
	case ActionPointer1Up:
		e.onPointer1Up(pos1, pos2)
	case ActionPointer2Up:
		e.onPointer2Up(pos1, pos2)
	}

	switch action {
	case ActionPointer1Down, ActionPointer2Down:
		if e.pointersDown < 2 {
			e.pointersDown++
		}
	case ActionPointer1Up, ActionPointer2Up:
		if e.pointersDown > 0 {
			e.pointersDown--
		}
	}

	return e.interactionConsumed
}

func (e *Engine) onPointer1Down(pos1 ScreenPos) {
	now := e.now()
	e.p1DownTime = now
	e.noDualPointerYet = true
	e.interactionConsumed = false
	e.setVelocity(0, 0, 0)
	e.resetEstimator()
	e.prev1 = pos1

	secondTap := e.doubleTapEnabled &&
		e.mode == ModeSingleClickGuess &&
		now.Sub(e.firstTapTime) < DoubleTapTimeout &&
		pos1.distanceTo(e.firstTapPos) < e.tapThreshold()

	if secondTap {
		if !e.doubleTapDragEnabled {
			e.mode = ModeSingleClickGuess
			return
		}
		if !e.consultInteraction(false, true, false, false) {
			e.startSingleZoom(pos1)
			return
		}
	}

	e.mode = ModeSingleClickGuess
	e.firstTapTime = now
	e.firstTapPos = pos1
}

func (e *Engine) onPointer2Down(pos1, pos2 ScreenPos) {
	e.noDualPointerYet = false
	switch e.mode {
	case ModeSingleClickGuess:
		// Record the baseline here so a later classification measures the
		// full motion since both pointers landed.
		e.prev1 = pos1
		e.prev2 = pos2
		e.swipe1 = ScreenPos{}
		e.swipe2 = ScreenPos{}
		e.mode = ModeDualClickGuess
	case ModeSinglePan, ModeSingleZoom:
		e.startDualPointer(pos1, pos2)
	}
}

func (e *Engine) onMove(pos1, pos2 ScreenPos) {
	if e.interactionConsumed {
		return
	}

	switch e.mode {
	case ModeSingleClickGuess:
		if pos1.distanceTo(e.prev1) > e.tapThreshold() && e.panEnabled {
			if !e.consultInteraction(true, false, false, false) {
				e.mode = ModeSinglePan
				e.prev1 = pos1
			}
		}

	case ModeDualClickGuess:
		if !e.consultInteraction(true, true, true, true) {
			e.mode = ModeDualGuess
			e.dualPointerGuess(pos1, pos2)
		}

	case ModeSinglePan:
		if e.now().Sub(e.dualReleaseTime) >= DualStopHoldDuration {
			e.singlePointerPan(pos1)
		}

	case ModeSingleZoom:
		e.singlePointerZoom(pos1)

	case ModeDualGuess:
		e.dualPointerGuess(pos1, pos2)

	case ModeDualTilt:
		e.dualPointerTilt(pos1)

	case ModeDualRotate, ModeDualScale:
		if e.panningMode == PanningSticky {
			factor := e.calculateRotatingScalingFactor(pos1, pos2)
			if factor > RotationScalingThresholdSticky {
				e.mode = ModeDualRotate
			} else if factor < -RotationScalingThresholdSticky {
				e.mode = ModeDualScale
			}
		}
		e.dualPointerPan(pos1, pos2, e.mode == ModeDualRotate, e.mode == ModeDualScale)

	case ModeDualFree:
		e.dualPointerPan(pos1, pos2, true, true)
	}
}

func (e *Engine) onPointer1Up(pos1, pos2 ScreenPos) {
	now := e.now()
	tapDuration := now.Sub(e.p1DownTime)
	moveDist := pos1.distanceTo(e.prev1)

	switch e.mode {
	case ModeSingleClickGuess:
		// A tap that briefly grew a second pointer already reported (or
		// rejected) a dual click; don't also report a single one.
		if e.noDualPointerYet {
			if moveDist < e.tapThreshold() && tapDuration >= LongPressTimeout {
				e.emitClick(ClickLong, pos1)
			} else if tapDuration < DoubleTapTimeout {
				e.emitClick(ClickSingle, e.prev1)
			}
		}
		e.mode = ModeSingleClickGuess

	case ModeDualClickGuess:
		e.mode = ModeSingleClickGuess

	case ModeSinglePan:
		e.mode = ModeSingleClickGuess
		if e.noDualPointerYet {
			e.armKineticPan(now)
		}

	case ModeSingleZoom:
		if tapDuration < DoubleTapTimeout && moveDist < e.tapThreshold() {
			e.emitClick(ClickDouble, pos1)
		}
		e.mode = ModeSingleClickGuess
		if e.noDualPointerYet {
			e.armKineticZoom(now)
		}

	default:
		if e.mode.dual() {
			// Pointer 2 survives and becomes the pan anchor.
			e.dualReleaseTime = now
			e.prev1 = pos2
			e.mode = ModeSinglePan
		}
	}
}

func (e *Engine) onPointer2Up(pos1, pos2 ScreenPos) {
	now := e.now()

	switch e.mode {
	case ModeDualClickGuess:
		if now.Sub(e.p1DownTime) < DoubleTapTimeout {
			e.emitClick(ClickDual, midpoint(pos1, pos2))
		}
		e.mode = ModeSingleClickGuess

	default:
		if e.mode.dual() {
			e.dualReleaseTime = now
			e.prev1 = pos1
			e.mode = ModeSinglePan
		}
	}
}

// consultInteraction asks the interaction listener whether to consume the
// continuous gesture described by the flags. A consumed gesture silences all
// Moves until the next pointer-down.
func (e *Engine) consultInteraction(panning, zooming, rotating, tilting bool) bool {
	if e.listeners.dispatchInteraction(panning, zooming, rotating, tilting) {
		e.interactionConsumed = true
		return true
	}
	return false
}

// emitClick dispatches a click to the listener and, when not suppressed,
// performs the default behavior. The listener runs before and outside any
// view mutation.
func (e *Engine) emitClick(kind ClickKind, pos ScreenPos) {
	if e.listeners.dispatchClick(kind, pos.X, pos.Y) {
		return
	}
	switch kind {
	case ClickDouble:
		e.zoomAbout(pos, 1)
	case ClickDual:
		e.zoomAbout(pos, -1)
	}
}
