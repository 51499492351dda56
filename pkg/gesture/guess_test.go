package gesture

import (
	"math"
	"testing"
)

// enterDualGuess brings a fresh engine to ModeDualGuess with the given
// starting positions.
func enterDualGuess(te *testEngine, p1, p2 ScreenPos) {
	te.at(0, ActionPointer1Down, p1, none())
	te.at(20, ActionPointer2Down, p1, p2)
	if te.Mode() != ModeDualClickGuess {
		panic("setup: expected dualClickGuess")
	}
}

func TestGuessOppositeVerticalMotionIsRotateScale(t *testing.T) {
	te := newTestEngine()
	enterDualGuess(te, Pos(300, 300), Pos(500, 300))

	// Fingers twist: one up, one down, each 20 px (0.125 in at 160 dpi).
	te.at(40, ActionMove, Pos(300, 280), Pos(500, 320))

	if te.Mode() != ModeDualFree {
		t.Errorf("mode = %v, want dualFree under free panning", te.Mode())
	}
	if te.view.yawCalls == 0 {
		t.Error("rotation should have been applied")
	}
}

func TestGuessOppositeMotionStickyStartsRotate(t *testing.T) {
	te := newTestEngine()
	te.SetPanningMode(PanningSticky)
	enterDualGuess(te, Pos(300, 300), Pos(500, 300))

	te.at(40, ActionMove, Pos(300, 280), Pos(500, 320))

	if te.Mode() != ModeDualRotate {
		t.Errorf("mode = %v, want dualRotate under sticky panning", te.Mode())
	}
}

func TestGuessSameVerticalMotionIsTilt(t *testing.T) {
	te := newTestEngine()
	enterDualGuess(te, Pos(300, 300), Pos(500, 300))

	// Both fingers shove down 20 px (0.125 in > 0.1 in threshold).
	te.at(40, ActionMove, Pos(300, 320), Pos(500, 320))

	if te.Mode() != ModeDualTilt {
		t.Errorf("mode = %v, want dualTilt", te.Mode())
	}
	if te.view.pitchCalls == 0 {
		t.Error("tilt should have been applied")
	}
}

func TestGuessMisalignedFingersSkipTilt(t *testing.T) {
	te := newTestEngine()
	// 200 px vertical separation is 1.25 in at 160 dpi, beyond the 1 in
	// alignment limit.
	enterDualGuess(te, Pos(300, 200), Pos(500, 400))

	te.at(40, ActionMove, Pos(300, 220), Pos(500, 420))

	if te.Mode() != ModeDualFree {
		t.Errorf("mode = %v, want dualFree for misaligned fingers", te.Mode())
	}
}

func TestGuessTinyMotionStaysGuessing(t *testing.T) {
	te := newTestEngine()
	enterDualGuess(te, Pos(300, 300), Pos(500, 300))

	// 5 px is 0.03 in, below both swipe thresholds.
	te.at(40, ActionMove, Pos(300, 295), Pos(500, 305))

	if te.Mode() != ModeDualGuess {
		t.Errorf("mode = %v, want dualGuess to keep testing", te.Mode())
	}
	if te.view.translateCalls != 0 || te.view.zoomCalls != 0 {
		t.Error("an unclassified gesture must not mutate the view")
	}
}

func TestGuessAccumulatesAcrossMoves(t *testing.T) {
	te := newTestEngine()
	enterDualGuess(te, Pos(300, 300), Pos(500, 300))

	// Each move is below threshold; the accumulated swipe is not.
	te.at(40, ActionMove, Pos(300, 295), Pos(500, 305))
	te.at(60, ActionMove, Pos(300, 290), Pos(500, 310))
	te.at(80, ActionMove, Pos(300, 285), Pos(500, 315))

	if te.Mode() != ModeDualFree {
		t.Errorf("mode = %v, want dualFree after accumulation", te.Mode())
	}
}

func TestGuessOnlyTiltEnabledJumpsToTilt(t *testing.T) {
	te := newTestEngine()
	te.SetRotateEnabled(false)
	te.SetZoomEnabled(false)
	enterDualGuess(te, Pos(300, 300), Pos(500, 300))

	te.at(40, ActionMove, Pos(301, 300), Pos(501, 300))

	if te.Mode() != ModeDualTilt {
		t.Errorf("mode = %v, want dualTilt when it is the only family", te.Mode())
	}
}

func TestGuessOnlyRotateScaleEnabledJumpsToFree(t *testing.T) {
	te := newTestEngine()
	te.SetTiltEnabled(false)
	enterDualGuess(te, Pos(300, 300), Pos(500, 300))

	te.at(40, ActionMove, Pos(301, 300), Pos(501, 300))

	if te.Mode() != ModeDualFree {
		t.Errorf("mode = %v, want dualFree when tilt is disabled", te.Mode())
	}
}

func TestGuessNothingEnabledReverts(t *testing.T) {
	te := newTestEngine()
	te.SetTiltEnabled(false)
	te.SetRotateEnabled(false)
	te.SetZoomEnabled(false)
	enterDualGuess(te, Pos(300, 300), Pos(500, 300))

	te.at(40, ActionMove, Pos(320, 300), Pos(520, 300))

	if te.Mode() != ModeSingleClickGuess {
		t.Errorf("mode = %v, want singleClickGuess with no dual families", te.Mode())
	}
}

func TestStickySwitchesBetweenRotateAndScale(t *testing.T) {
	te := newTestEngine()
	te.SetPanningMode(PanningSticky)
	te.mode = ModeDualRotate
	te.prev1 = Pos(300, 300)
	te.prev2 = Pos(500, 300)

	// Pure spread: distance 200 -> 320 px is a 0.6 scale change with no
	// angle change, factor -0.6 beyond the -0.3 switch threshold.
	te.at(0, ActionMove, Pos(240, 300), Pos(560, 300))

	if te.Mode() != ModeDualScale {
		t.Errorf("mode = %v, want dualScale after scale dominance", te.Mode())
	}
	if te.view.zoomCalls == 0 {
		t.Error("the switching move should already scale")
	}
	if te.view.yawCalls != 0 {
		t.Error("a scale move must not rotate")
	}
}

func TestStickySwitchesScaleToRotate(t *testing.T) {
	te := newTestEngine()
	te.SetPanningMode(PanningSticky)
	te.mode = ModeDualScale
	te.prev1 = Pos(300, 300)
	te.prev2 = Pos(500, 300)

	// Pure twist around the midpoint: ~0.4 rad with unchanged distance.
	dx, dy := 100*math.Cos(0.4), 100*math.Sin(0.4)
	te.at(0, ActionMove, Pos(400-dx, 300-dy), Pos(400+dx, 300+dy))

	if te.Mode() != ModeDualRotate {
		t.Errorf("mode = %v, want dualRotate after rotation dominance", te.Mode())
	}
	if te.view.yawCalls == 0 {
		t.Error("the switching move should already rotate")
	}
}

func TestStickyFinalNeverSwitches(t *testing.T) {
	te := newTestEngine()
	te.SetPanningMode(PanningStickyFinal)
	te.mode = ModeDualRotate
	te.prev1 = Pos(300, 300)
	te.prev2 = Pos(500, 300)

	te.at(0, ActionMove, Pos(240, 300), Pos(560, 300))

	if te.Mode() != ModeDualRotate {
		t.Errorf("mode = %v, want dualRotate to stay locked", te.Mode())
	}
	if te.view.zoomCalls != 0 {
		t.Error("a locked rotate gesture must not scale")
	}
}

func TestCalculateRotatingScalingFactor(t *testing.T) {
	tests := []struct {
		name         string
		prev1, prev2 ScreenPos
		pos1, pos2   ScreenPos
		wantSign     int // -1 scale, 0 ambiguous, +1 rotate
	}{
		{
			name:  "pure rotation",
			prev1: Pos(300, 300), prev2: Pos(500, 300),
			pos1: Pos(310, 250), pos2: Pos(490, 350),
			wantSign: 1,
		},
		{
			name:  "pure scale",
			prev1: Pos(300, 300), prev2: Pos(500, 300),
			pos1: Pos(250, 300), pos2: Pos(550, 300),
			wantSign: -1,
		},
		{
			name:  "no motion",
			prev1: Pos(300, 300), prev2: Pos(500, 300),
			pos1: Pos(300, 300), pos2: Pos(500, 300),
			wantSign: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			te := newTestEngine()
			te.prev1 = tt.prev1
			te.prev2 = tt.prev2

			got := te.calculateRotatingScalingFactor(tt.pos1, tt.pos2)
			switch {
			case tt.wantSign > 0 && got <= 0:
				t.Errorf("factor = %v, want positive (rotation)", got)
			case tt.wantSign < 0 && got >= 0:
				t.Errorf("factor = %v, want negative (scale)", got)
			case tt.wantSign == 0 && got != 0:
				t.Errorf("factor = %v, want 0", got)
			}
		})
	}
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi / 2, math.Pi / 2},
		{2 * math.Pi, 0},
		{-3 * math.Pi / 2, math.Pi / 2},
		{3 * math.Pi / 2, -math.Pi / 2},
	}
	for _, tt := range tests {
		if got := normalizeAngle(tt.in); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("normalizeAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
