package gesture

import "math"

// startDualPointer begins tracking a two-finger gesture of unknown kind.
func (e *Engine) startDualPointer(pos1, pos2 ScreenPos) {
	e.prev1 = pos1
	e.prev2 = pos2
	e.swipe1 = ScreenPos{}
	e.swipe2 = ScreenPos{}
	e.mode = ModeDualGuess
}

// dualPointerGuess classifies an unclassified two-finger gesture and, once
// a mode commits, hands the triggering move straight to its handler so the
// motion accumulated while guessing is not lost.
//
// With only one dual-gesture family enabled the classification is
// immediate; otherwise fingers must either move vertically in opposite
// directions (rotate/scale) or together (tilt) far enough, measured in
// inches, before the gesture commits. Until then it stays in ModeDualGuess
// and re-tests on the next move.
func (e *Engine) dualPointerGuess(pos1, pos2 ScreenPos) {
	tiltFamily := e.tiltEnabled
	rotateScaleFamily := e.rotateEnabled || e.zoomEnabled

	switch {
	case !tiltFamily && !rotateScaleFamily:
		e.mode = ModeSingleClickGuess
		return
	case tiltFamily && !rotateScaleFamily:
		e.mode = ModeDualTilt
	case rotateScaleFamily && !tiltFamily:
		e.mode = ModeDualFree
	default:
		e.guessByHeuristic(pos1, pos2)
	}

	switch e.mode {
	case ModeDualTilt:
		e.dualPointerTilt(pos1)
		e.prev2 = pos2
	case ModeDualFree:
		e.dualPointerPan(pos1, pos2, true, true)
	case ModeDualRotate:
		e.dualPointerPan(pos1, pos2, true, false)
	case ModeDualScale:
		e.dualPointerPan(pos1, pos2, false, true)
	default:
		// Still guessing; advance the per-move baseline.
		e.prev1 = pos1
		e.prev2 = pos2
	}
}

func (e *Engine) guessByHeuristic(pos1, pos2 ScreenPos) {
	// Fingers far apart vertically cannot be a tilt.
	if math.Abs(pos1.Y-pos2.Y)/e.dpi > GuessMaxDeltaYInches {
		e.mode = ModeDualFree
		return
	}

	e.swipe1.X += (pos1.X - e.prev1.X) / e.dpi
	e.swipe1.Y += (pos1.Y - e.prev1.Y) / e.dpi
	e.swipe2.X += (pos2.X - e.prev2.X) / e.dpi
	e.swipe2.Y += (pos2.Y - e.prev2.Y) / e.dpi

	len1 := e.swipe1.length()
	len2 := e.swipe2.length()
	yProduct := e.swipe1.Y * e.swipe2.Y

	switch {
	case (len1 > GuessMinSwipeLengthOpposite || len2 > GuessMinSwipeLengthOpposite) && yProduct <= 0:
		// Opposite vertical motion: rotating or scaling.
		if e.panningMode == PanningFree {
			e.mode = ModeDualFree
		} else {
			// Sticky modes start rotating; the dominance factor may
			// switch to scaling on subsequent moves.
			e.mode = ModeDualRotate
		}
	case (len1 > GuessMinSwipeLengthSame || len2 > GuessMinSwipeLengthSame) && yProduct > 0 && e.tiltEnabled:
		// Same vertical motion: shoving.
		e.mode = ModeDualTilt
	}
}

// calculateRotatingScalingFactor compares how much the pointer pair rotated
// against how much its spread changed since the previous move. It returns
// the angle change when rotation dominates by at least 2x, the negated
// scale change when scaling dominates by at least 2x, and zero when neither
// clearly dominates.
func (e *Engine) calculateRotatingScalingFactor(pos1, pos2 ScreenPos) float64 {
	prevDist := e.prev2.distanceTo(e.prev1)
	currDist := pos2.distanceTo(pos1)

	prevAngle := math.Atan2(e.prev2.Y-e.prev1.Y, e.prev2.X-e.prev1.X)
	currAngle := math.Atan2(pos2.Y-pos1.Y, pos2.X-pos1.X)

	angleChange := math.Abs(normalizeAngle(currAngle - prevAngle))

	scaleChange := 0.0
	if prevDist > 0 {
		scaleChange = math.Abs(currDist/prevDist - 1)
	}

	switch {
	case angleChange >= 2*scaleChange && angleChange > 0:
		return angleChange
	case scaleChange >= 2*angleChange && scaleChange > 0:
		return -scaleChange
	}
	return 0
}

// normalizeAngle wraps an angle into (-pi, pi].
func normalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
