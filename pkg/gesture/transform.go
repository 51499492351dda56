package gesture

import "math"

// getTranslation projects both screen points onto the ground plane, using
// the elevation under the start point, and returns the map-plane delta that
// keeps the touched point under the pointer. Near-horizontal views clamp the
// delta to the screen-space distance to prevent runaway panning toward the
// horizon. Non-finite projections yield a zero delta for the frame.
func (e *Engine) getTranslation(startX, startY, endX, endY float64) (float64, float64) {
	_, _, elev := e.view.ScreenPositionToLngLat(startX, startY)

	sx, sy := e.view.ScreenToGroundPlane(startX, startY, elev)
	ex, ey := e.view.ScreenToGroundPlane(endX, endY, elev)

	dx := sx - ex
	dy := sy - ey

	if !finite(dx, dy) {
		return 0, 0
	}

	if e.view.Pitch() > MaxPitchForPanLimiting {
		dpx := math.Hypot(startX-endX, startY-endY) / e.view.PixelsPerMeter()
		dd := math.Hypot(dx, dy)
		if dd > dpx {
			dx = dx * dpx / dd
			dy = dy * dpx / dd
		}
	}
	return dx, dy
}

func (e *Engine) singlePointerPan(pos ScreenPos) {
	dx, dy := e.getTranslation(e.prev1.X, e.prev1.Y, pos.X, pos.Y)
	e.view.Translate(dx, dy)
	e.recordPanSample(dx, dy)
	e.prev1 = pos
}

// startSingleZoom enters double-tap-and-drag zoom anchored at pos.
func (e *Engine) startSingleZoom(pos ScreenPos) {
	e.singleZoomStartZoom = e.view.Zoom()
	e.doubleTapStartPos = pos
	e.prev1 = pos
	e.mode = ModeSingleZoom
}

// singlePointerZoom converts vertical drag into a zoom delta applied about
// the double-tap anchor, which stays screen-fixed.
func (e *Engine) singlePointerZoom(pos ScreenPos) {
	deltaY := pos.Y - e.prev1.Y
	zoomDelta := deltaY * SinglePointerZoomSensitivity
	e.zoomAbout(e.doubleTapStartPos, zoomDelta)
	e.recordZoomSample(zoomDelta)
	e.prev1 = pos
}

// zoomAbout changes zoom by delta levels while holding the ground-plane
// point under the given screen anchor fixed.
func (e *Engine) zoomAbout(anchor ScreenPos, delta float64) {
	_, _, elev := e.view.ScreenPositionToLngLat(anchor.X, anchor.Y)

	sx, sy := e.view.ScreenToGroundPlane(anchor.X, anchor.Y, elev)
	e.view.ZoomBy(delta)
	ex, ey := e.view.ScreenToGroundPlane(anchor.X, anchor.Y, elev)

	dx, dy := sx-ex, sy-ey
	if !finite(dx, dy) {
		return
	}
	e.view.Translate(dx, dy)
}

// dualPointerPan applies the combined two-finger transform: pan by the
// midpoint delta, then optionally scale and rotate about the current
// midpoint, each holding it screen-fixed.
func (e *Engine) dualPointerPan(pos1, pos2 ScreenPos, rotate, scale bool) {
	prevCenter := midpoint(e.prev1, e.prev2)
	currCenter := midpoint(pos1, pos2)

	if e.panEnabled {
		dx, dy := e.getTranslation(prevCenter.X, prevCenter.Y, currCenter.X, currCenter.Y)
		e.view.Translate(dx, dy)
	}

	if scale && e.zoomEnabled {
		prevDist := e.prev2.distanceTo(e.prev1)
		currDist := pos2.distanceTo(pos1)
		if prevDist > 0 && currDist > 0 {
			e.zoomAbout(currCenter, math.Log2(currDist/prevDist))
		}
	}

	if rotate && e.rotateEnabled {
		prevAngle := math.Atan2(e.prev2.Y-e.prev1.Y, e.prev2.X-e.prev1.X)
		currAngle := math.Atan2(pos2.Y-pos1.Y, pos2.X-pos1.X)
		rotation := currAngle - prevAngle

		_, _, elev := e.view.ScreenPositionToLngLat(currCenter.X, currCenter.Y)
		ox, oy := e.view.ScreenToGroundPlane(currCenter.X, currCenter.Y, elev)

		// Rotate the center's ground-plane offset and translate by the
		// difference so the midpoint stays fixed, then apply the yaw.
		rx, ry := rotateVec(ox, oy, rotation)
		if finite(rx, ry) {
			e.view.Translate(ox-rx, oy-ry)
		}
		e.view.YawBy(rotation)
	}

	e.prev1 = pos1
	e.prev2 = pos2
}

// dualPointerTilt maps the vertical shove of pointer 1 onto a pitch delta,
// clamped so the view never pitches below flat or past the pan limit.
func (e *Engine) dualPointerTilt(pos1 ScreenPos) {
	angle := -math.Pi * (pos1.Y - e.prev1.Y) / e.view.Height()

	maxPitch := math.Min(MaxPitchForPanLimiting, e.view.MaxPitch())
	pitch0 := clamp(e.view.Pitch(), 0, maxPitch)
	pitch1 := clamp(e.view.Pitch()+angle, 0, maxPitch)

	e.view.PitchBy(pitch1 - pitch0)
	e.prev1 = pos1
}

// rotateVec rotates (x, y) by the given angle about the origin.
func rotateVec(x, y, angle float64) (float64, float64) {
	sin, cos := math.Sincos(angle)
	return x*cos - y*sin, x*sin + y*cos
}
