package gesture

import (
	"math"
	"time"
)

// estimatorAlpha blends the newest per-move velocity sample into the
// running estimate.
const estimatorAlpha = 0.5

// maxSampleInterval discards velocity samples across implausibly long gaps
// between moves (event-queue stalls, app switches).
const maxSampleInterval = 500 * time.Millisecond

// Update advances the kinetic animation by dt seconds and reports whether a
// fling is still in progress. The pan velocity, held in map meters per
// second, is compared against the stop threshold in screen pixels per
// second. Negative dt is clamped to zero.
func (e *Engine) Update(dt float64) bool {
	if dt < 0 {
		dt = 0
	}
	if e.view == nil {
		return false
	}

	metersToPixels := e.view.PixelsPerMeter() / e.view.PixelScale()
	panPixels := math.Hypot(e.velocityPanX, e.velocityPanY) * metersToPixels

	flinging := panPixels > ThresholdStopPan || math.Abs(e.velocityZoom) > ThresholdStopZoom
	if !flinging {
		return false
	}

	panDamp := math.Min(dt*DampingPan, 1)
	e.velocityPanX -= panDamp * e.velocityPanX
	e.velocityPanY -= panDamp * e.velocityPanY
	e.view.Translate(dt*e.velocityPanX, dt*e.velocityPanY)

	zoomDamp := math.Min(dt*DampingZoom, 1)
	e.velocityZoom -= zoomDamp * e.velocityZoom
	e.view.ZoomBy(dt * e.velocityZoom)

	return true
}

// Flinging reports whether the kinetic velocities are above the stop
// thresholds, i.e. whether Update still produces motion.
func (e *Engine) Flinging() bool {
	if e.view == nil {
		return false
	}
	metersToPixels := e.view.PixelsPerMeter() / e.view.PixelScale()
	panPixels := math.Hypot(e.velocityPanX, e.velocityPanY) * metersToPixels
	return panPixels > ThresholdStopPan || math.Abs(e.velocityZoom) > ThresholdStopZoom
}

func (e *Engine) setVelocity(zoom, panX, panY float64) {
	e.velocityZoom = zoom
	e.velocityPanX = panX
	e.velocityPanY = panY
}

func (e *Engine) resetEstimator() {
	e.estVelPanX = 0
	e.estVelPanY = 0
	e.estVelZoom = 0
	e.lastMoveTime = time.Time{}
}

// recordPanSample folds one move's map-plane translation into the velocity
// estimate.
func (e *Engine) recordPanSample(dx, dy float64) {
	now := e.now()
	if dt := now.Sub(e.lastMoveTime); dt > 0 && dt < maxSampleInterval && !e.lastMoveTime.IsZero() {
		secs := dt.Seconds()
		e.estVelPanX += estimatorAlpha * (dx/secs - e.estVelPanX)
		e.estVelPanY += estimatorAlpha * (dy/secs - e.estVelPanY)
	}
	e.lastMoveTime = now
}

// recordZoomSample folds one move's zoom delta into the velocity estimate.
func (e *Engine) recordZoomSample(deltaZoom float64) {
	now := e.now()
	if dt := now.Sub(e.lastMoveTime); dt > 0 && dt < maxSampleInterval && !e.lastMoveTime.IsZero() {
		e.estVelZoom += estimatorAlpha * (deltaZoom/dt.Seconds() - e.estVelZoom)
	}
	e.lastMoveTime = now
}

// armKineticPan hands the estimated pan velocity to the fling animation if
// the gesture released fast enough. A pointer held still before lifting
// (no move within DualKineticHoldDuration) produces no fling.
func (e *Engine) armKineticPan(now time.Time) {
	defer e.resetEstimator()

	if e.lastMoveTime.IsZero() || now.Sub(e.lastMoveTime) > DualKineticHoldDuration {
		e.setVelocity(0, 0, 0)
		return
	}

	metersToPixels := e.view.PixelsPerMeter() / e.view.PixelScale()
	speedPixels := math.Hypot(e.estVelPanX, e.estVelPanY) * metersToPixels
	if speedPixels <= ThresholdStartPan {
		e.setVelocity(0, 0, 0)
		return
	}
	e.setVelocity(0, e.estVelPanX, e.estVelPanY)
}

// armKineticZoom hands the estimated zoom velocity to the fling animation,
// with the same staleness gate as armKineticPan.
func (e *Engine) armKineticZoom(now time.Time) {
	defer e.resetEstimator()

	if e.lastMoveTime.IsZero() || now.Sub(e.lastMoveTime) > DualKineticHoldDuration {
		e.setVelocity(0, 0, 0)
		return
	}

	if math.Abs(e.estVelZoom) < ThresholdStartZoom {
		e.setVelocity(0, 0, 0)
		return
	}
	e.setVelocity(e.estVelZoom, 0, 0)
}
