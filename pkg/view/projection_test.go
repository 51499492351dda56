package view

import (
	"math"
	"testing"
)

func TestLngLatToMetersOrigin(t *testing.T) {
	x, y := LngLatToMeters(0, 0)
	if x != 0 || math.Abs(y) > 1e-9 {
		t.Errorf("origin projected to (%g, %g), want (0, 0)", x, y)
	}
}

func TestLngLatToMetersKnownPoints(t *testing.T) {
	// 180 degrees east is half the circumference.
	x, _ := LngLatToMeters(180, 0)
	if math.Abs(x-EarthHalfCircumferenceMeters) > 1e-6 {
		t.Errorf("x(180°) = %g, want %g", x, EarthHalfCircumferenceMeters)
	}

	// The projection cutoff latitude maps to half the circumference, which
	// is what makes the mercator world square.
	_, y := LngLatToMeters(0, MaxLatitude)
	if math.Abs(y-EarthHalfCircumferenceMeters) > 1 {
		t.Errorf("y(max lat) = %g, want ~%g", y, EarthHalfCircumferenceMeters)
	}
}

func TestMetersToLngLatInverts(t *testing.T) {
	points := []struct{ lng, lat float64 }{
		{0, 0},
		{13.405, 52.52},
		{-122.419, 37.775},
		{151.21, -33.87},
	}
	for _, p := range points {
		x, y := LngLatToMeters(p.lng, p.lat)
		lng, lat := MetersToLngLat(x, y)
		if math.Abs(lng-p.lng) > 1e-9 || math.Abs(lat-p.lat) > 1e-9 {
			t.Errorf("roundtrip (%g, %g) -> (%g, %g)", p.lng, p.lat, lng, lat)
		}
	}
}

func TestLatitudeClamped(t *testing.T) {
	_, yPole := LngLatToMeters(0, 90)
	_, yMax := LngLatToMeters(0, MaxLatitude)
	if yPole != yMax {
		t.Errorf("poles must clamp to the projection cutoff: %g vs %g", yPole, yMax)
	}
}

func TestMetersPerTileHalvesPerZoom(t *testing.T) {
	if got := MetersPerTile(0); math.Abs(got-EarthCircumferenceMeters) > 1e-6 {
		t.Errorf("MetersPerTile(0) = %g, want the full circumference", got)
	}
	for z := 1.0; z <= 20; z++ {
		ratio := MetersPerTile(z-1) / MetersPerTile(z)
		if math.Abs(ratio-2) > 1e-12 {
			t.Errorf("zoom %v: ratio = %g, want 2", z, ratio)
		}
	}
}

func TestWrapMeters(t *testing.T) {
	if got := wrapMeters(EarthHalfCircumferenceMeters + 10); got >= EarthHalfCircumferenceMeters {
		t.Errorf("wrapMeters overflow east: %g", got)
	}
	if got := wrapMeters(-EarthHalfCircumferenceMeters - 10); got <= -EarthHalfCircumferenceMeters {
		t.Errorf("wrapMeters overflow west: %g", got)
	}
	if got := wrapMeters(12345); got != 12345 {
		t.Errorf("wrapMeters in range = %g, want unchanged", got)
	}
}
