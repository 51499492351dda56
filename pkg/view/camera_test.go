package view

import (
	"math"
	"testing"
)

func newTestCamera() *Camera {
	c := NewCamera(800, 600)
	c.SetPosition(13.405, 52.52)
	c.SetZoom(10)
	return c
}

func TestCenterRayHitsViewCenter(t *testing.T) {
	c := newTestCamera()

	// Tolerances are in meters; a pixel spans ~150 m at this zoom.
	mx, my := c.ScreenToGroundPlane(400, 300, 0)
	if math.Abs(mx) > 1e-3 || math.Abs(my) > 1e-3 {
		t.Errorf("center ray hit (%g, %g), want the view center", mx, my)
	}

	lng, lat, _ := c.ScreenPositionToLngLat(400, 300)
	clng, clat := c.LngLat()
	if math.Abs(lng-clng) > 1e-7 || math.Abs(lat-clat) > 1e-7 {
		t.Errorf("center pixel = (%g, %g), camera at (%g, %g)", lng, lat, clng, clat)
	}
}

func TestGroundPlaneMatchesPixelScale(t *testing.T) {
	c := newTestCamera()
	ppm := c.PixelsPerMeter()

	// 100 px right of center is 100/ppm meters east in a flat top-down view.
	mx, my := c.ScreenToGroundPlane(500, 300, 0)
	if math.Abs(mx-100/ppm) > 1/ppm {
		t.Errorf("mx = %g, want about %g", mx, 100/ppm)
	}
	if math.Abs(my) > 1/ppm {
		t.Errorf("my = %g, want about 0", my)
	}

	// Screen y grows downward, world y grows north.
	_, myUp := c.ScreenToGroundPlane(400, 200, 0)
	if myUp <= 0 {
		t.Errorf("point above center projected to my = %g, want north (> 0)", myUp)
	}
}

func TestPixelsPerMeterDoublesPerZoom(t *testing.T) {
	c := newTestCamera()
	c.SetZoom(10)
	p10 := c.PixelsPerMeter()
	c.SetZoom(11)
	p11 := c.PixelsPerMeter()
	if math.Abs(p11/p10-2) > 1e-12 {
		t.Errorf("pixelsPerMeter ratio = %g, want 2", p11/p10)
	}
}

func TestZoomClamped(t *testing.T) {
	c := newTestCamera()
	c.ZoomBy(100)
	if c.Zoom() != defaultMaxZoom {
		t.Errorf("zoom = %v, want clamped at %v", c.Zoom(), defaultMaxZoom)
	}
	c.ZoomBy(-100)
	if c.Zoom() != 0 {
		t.Errorf("zoom = %v, want clamped at 0", c.Zoom())
	}
}

func TestPitchClamped(t *testing.T) {
	c := newTestCamera()
	c.PitchBy(3)
	if c.Pitch() > c.MaxPitch() {
		t.Errorf("pitch = %v exceeds max %v", c.Pitch(), c.MaxPitch())
	}
	c.PitchBy(-10)
	if c.Pitch() != 0 {
		t.Errorf("pitch = %v, want clamped at 0", c.Pitch())
	}

	c.SetMaxPitch(30 * math.Pi / 180)
	c.PitchBy(1)
	if c.Pitch() > 30*math.Pi/180+1e-12 {
		t.Errorf("pitch = %v exceeds configured max", c.Pitch())
	}
}

func TestTranslateWrapsAntimeridian(t *testing.T) {
	c := newTestCamera()
	c.SetPosition(179.9, 0)

	// Push east across the antimeridian.
	c.Translate(EarthCircumferenceMeters/360*0.2, 0)
	lng, _ := c.LngLat()
	if lng > -179.8 && lng < 179.8 {
		t.Errorf("lng = %g, want wrapped near the antimeridian", lng)
	}
}

func TestPitchedViewLooksAhead(t *testing.T) {
	c := newTestCamera()
	c.SetPitch(45 * math.Pi / 180)

	// With pitch the camera backs away southward; the view center stays
	// under the center pixel and points above it land farther north.
	mx, my := c.ScreenToGroundPlane(400, 300, 0)
	if math.Abs(mx) > 1e-3 || math.Abs(my) > 1e-3 {
		t.Errorf("pitched center ray hit (%g, %g), want the view center", mx, my)
	}

	_, myAbove := c.ScreenToGroundPlane(400, 100, 0)
	_, myBelow := c.ScreenToGroundPlane(400, 500, 0)
	if myAbove <= myBelow {
		t.Errorf("pitched projection inverted: above %g, below %g", myAbove, myBelow)
	}
}

func TestHorizonRayClamped(t *testing.T) {
	c := newTestCamera()
	c.SetPitch(60 * math.Pi / 180)

	// The top edge of a steeply pitched view is near or above the horizon;
	// its ground distance must stay within the draw-distance clamp.
	_, my := c.ScreenToGroundPlane(400, 0, 0)
	maxDist := horizonDistanceFactor * MetersPerTile(c.Zoom())
	if my > maxDist+1e-6 {
		t.Errorf("horizon ray reached %g m, want clamped at %g", my, maxDist)
	}
	if math.IsNaN(my) || math.IsInf(my, 0) {
		t.Errorf("horizon ray produced a non-finite value: %g", my)
	}
}

func TestYawRotatesGroundPlane(t *testing.T) {
	c := newTestCamera()
	c.SetYaw(math.Pi / 2)

	// With a quarter-turn yaw the screen-right direction maps along the
	// world y axis instead of x.
	mx, my := c.ScreenToGroundPlane(500, 300, 0)
	if math.Abs(mx) > math.Abs(my) {
		t.Errorf("yawed projection kept x dominant: (%g, %g)", mx, my)
	}
}

func TestViewportResizeChangesAspect(t *testing.T) {
	c := newTestCamera()
	before, _ := c.ScreenToGroundPlane(799, 300, 0)

	c.SetViewport(400, 600)
	after, _ := c.ScreenToGroundPlane(399, 300, 0)

	// The right edge of a narrower viewport spans fewer meters.
	if math.Abs(after) >= math.Abs(before) {
		t.Errorf("narrower viewport should span less ground: %g vs %g", after, before)
	}

	// Degenerate sizes are ignored.
	c.SetViewport(0, -5)
	if c.Width() != 400 || c.Height() != 600 {
		t.Error("degenerate viewport must be rejected")
	}
}
