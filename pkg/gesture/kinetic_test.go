package gesture

import (
	"math"
	"testing"
)

func TestKineticDecayMonotone(t *testing.T) {
	te := newTestEngine()
	ppm := te.view.PixelsPerMeter()

	// Seed a fling well above both stop thresholds.
	te.setVelocity(2.0, 800/ppm, -600/ppm)

	prevPan := math.Hypot(te.velocityPanX, te.velocityPanY)
	prevZoom := math.Abs(te.velocityZoom)

	ticks := 0
	for te.Update(0.016) {
		pan := math.Hypot(te.velocityPanX, te.velocityPanY)
		zoom := math.Abs(te.velocityZoom)
		if pan > prevPan {
			t.Fatalf("pan speed increased: %g -> %g", prevPan, pan)
		}
		if zoom > prevZoom {
			t.Fatalf("zoom speed increased: %g -> %g", prevZoom, zoom)
		}
		prevPan, prevZoom = pan, zoom
		ticks++
		if ticks > 10000 {
			t.Fatal("fling never reached the stop thresholds")
		}
	}

	if te.Flinging() {
		t.Error("Flinging() should be false once Update stops")
	}
}

func TestUpdateBelowThresholdIsInert(t *testing.T) {
	te := newTestEngine()
	ppm := te.view.PixelsPerMeter()

	// 10 px/s is below the 24 px/s stop threshold.
	te.setVelocity(0, 10/ppm, 0)

	if te.Update(0.016) {
		t.Error("Update should report no fling below the stop threshold")
	}
	if te.view.translateCalls != 0 || te.view.zoomCalls != 0 {
		t.Error("an inert update must not mutate the view")
	}
}

func TestUpdateClampsNegativeDt(t *testing.T) {
	te := newTestEngine()
	ppm := te.view.PixelsPerMeter()
	te.setVelocity(0, 800/ppm, 0)

	cx := te.view.centerX
	te.Update(-1)
	if te.view.centerX != cx {
		t.Error("negative dt must not translate")
	}
	if math.Hypot(te.velocityPanX, te.velocityPanY) > 800/ppm+floatTolerance {
		t.Error("negative dt must not grow the velocity")
	}
}

func TestSlowReleaseArmsNoFling(t *testing.T) {
	te := newTestEngine()

	// 20 px per 100 ms is 200 px/s, below the 350 px/s start threshold.
	te.at(0, ActionPointer1Down, Pos(400, 300), none())
	for i := 1; i <= 10; i++ {
		te.at(int64(i)*100, ActionMove, Pos(400+float64(i)*20, 300), none())
	}
	te.at(1050, ActionPointer1Up, Pos(600, 300), none())

	if te.Flinging() {
		t.Error("slow pan must not arm a fling")
	}
}

func TestHoldBeforeLiftKillsFling(t *testing.T) {
	te := newTestEngine()

	te.at(0, ActionPointer1Down, Pos(400, 300), none())
	for i := 1; i <= 10; i++ {
		te.at(int64(i)*16, ActionMove, Pos(400+float64(i)*30, 300), none())
	}

	// Hold still for 300 ms before lifting; the velocity samples are stale.
	te.at(460, ActionPointer1Up, Pos(700, 300), none())

	if te.Flinging() {
		t.Error("holding before the lift must not arm a fling")
	}
}

func TestDualGestureArmsNoKinetic(t *testing.T) {
	te := newTestEngine()

	// Fast single pan that grows a second pointer mid-gesture.
	te.at(0, ActionPointer1Down, Pos(400, 300), none())
	te.at(16, ActionMove, Pos(430, 300), none())
	te.at(32, ActionMove, Pos(460, 300), none())
	te.at(40, ActionPointer2Down, Pos(460, 300), Pos(600, 300))
	te.at(60, ActionPointer2Up, Pos(460, 300), Pos(600, 300))
	te.at(80, ActionPointer1Up, Pos(460, 300), none())

	if te.Flinging() {
		t.Error("a gesture that saw two pointers must not arm a fling")
	}
}

func TestDoubleTapDragArmsZoomFling(t *testing.T) {
	te := newTestEngine()

	te.at(0, ActionPointer1Down, Pos(300, 300), none())
	te.at(100, ActionPointer1Up, Pos(300, 300), none())
	te.at(200, ActionPointer1Down, Pos(300, 300), none())
	if te.Mode() != ModeSingleZoom {
		t.Fatalf("mode = %v, want singleZoom", te.Mode())
	}

	// Drag down fast: 40 px per 16 ms is 12.5 zoom levels/s estimated.
	for i := 1; i <= 8; i++ {
		te.at(200+int64(i)*16, ActionMove, Pos(300, 300+float64(i)*40), none())
	}
	te.at(328, ActionPointer1Up, Pos(300, 620), none())

	if !te.Flinging() {
		t.Fatal("fast drag-zoom release should arm a zoom fling")
	}
	if te.velocityZoom <= 0 {
		t.Errorf("velocityZoom = %g, want positive for a downward drag", te.velocityZoom)
	}

	startZoom := te.view.zoom
	te.Update(0.016)
	if te.view.zoom <= startZoom {
		t.Error("zoom fling should keep zooming in")
	}
}

// With no new input the fling must stop in finite time and leave the view
// still thereafter.
func TestFlingTerminates(t *testing.T) {
	te := newTestEngine()
	ppm := te.view.PixelsPerMeter()
	te.setVelocity(0, 2000/ppm, 0)

	for i := 0; i < 10000 && te.Update(0.016); i++ {
	}
	if te.Flinging() {
		t.Fatal("fling still active after 10000 ticks")
	}

	cx := te.view.centerX
	te.Update(0.016)
	if te.view.centerX != cx {
		t.Error("a stopped fling must not move the view")
	}
}
