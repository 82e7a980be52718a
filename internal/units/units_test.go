package units

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

// TestConvert checks the engine factors for each dimension
func TestConvert(t *testing.T) {
	tests := []struct {
		value float64
		unit  Unit
		want  float64
	}{
		{1, MM, 1},
		{2.5, CM, 25},
		{3, M, 3000},
		{500, NM, 5e-4},
		{60, KEV, 0.06},
		{1, MEV, 1},
		{1e4, BQ, 1e-5},
		{2, SEC, 2e9},
	}

	for _, tt := range tests {
		if got := Convert(tt.value, tt.unit); !almostEqual(got, tt.want) {
			t.Errorf("Convert(%v, %s) = %v, want %v", tt.value, tt.unit, got, tt.want)
		}
		if back := FromEngine(Convert(tt.value, tt.unit), tt.unit); !almostEqual(back, tt.value) {
			t.Errorf("FromEngine round trip for %s = %v, want %v", tt.unit, back, tt.value)
		}
	}
}

func TestFactorUnknownUnit(t *testing.T) {
	if _, err := Factor("furlong"); err == nil {
		t.Error("Expected error for unknown unit")
	}
	if Unit("furlong").Valid() {
		t.Error("Expected furlong to be invalid")
	}
}

func TestDimension(t *testing.T) {
	if CM.Dimension() != Length {
		t.Errorf("Expected cm to be a length, got %s", CM.Dimension())
	}
	if KEV.Dimension() != Energy {
		t.Errorf("Expected keV to be an energy, got %s", KEV.Dimension())
	}
	if MBQ.Dimension() != Activity {
		t.Errorf("Expected MBq to be an activity, got %s", MBQ.Dimension())
	}
}

func TestRunTimingIntervals(t *testing.T) {
	intervals := RunTimingIntervals(3, 0.5)
	if len(intervals) != 3 {
		t.Fatalf("Expected 3 intervals, got %d", len(intervals))
	}
	want := [][2]float64{{0, 0.5e9}, {0.5e9, 1e9}, {1e9, 1.5e9}}
	for i := range want {
		if !almostEqual(intervals[i][0], want[i][0]) || !almostEqual(intervals[i][1], want[i][1]) {
			t.Errorf("Interval %d = %v, want %v", i, intervals[i], want[i])
		}
	}
}

func TestLinspace(t *testing.T) {
	got := Linspace(0, 90, 4)
	want := []float64{0, 30, 60, 90}
	if len(got) != len(want) {
		t.Fatalf("Expected %d values, got %d", len(want), len(got))
	}
	for i := range want {
		if !almostEqual(got[i], want[i]) {
			t.Errorf("Linspace[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	if single := Linspace(5, 10, 1); len(single) != 1 || single[0] != 5 {
		t.Errorf("Expected [5] for a single point, got %v", single)
	}
	if Linspace(0, 1, 0) != nil {
		t.Error("Expected nil for zero points")
	}
}

func TestLinspaceVec(t *testing.T) {
	got := LinspaceVec([]float64{0, 0, 0}, []float64{10, -10, 0}, 3)
	want := [][]float64{{0, 0, 0}, {5, -5, 0}, {10, -10, 0}}
	for i := range want {
		for j := range want[i] {
			if !almostEqual(got[i][j], want[i][j]) {
				t.Errorf("LinspaceVec[%d][%d] = %v, want %v", i, j, got[i][j], want[i][j])
			}
		}
	}
	if LinspaceVec([]float64{0}, []float64{1, 2}, 2) != nil {
		t.Error("Expected nil for mismatched vectors")
	}
}

func TestRotationRoundTrip(t *testing.T) {
	for _, axis := range []Axis{X, Y, Z} {
		for _, angle := range []float64{-120, -45, 0.5, 30, 90, 179} {
			m, err := RotationMatrix(axis, angle)
			if err != nil {
				t.Fatalf("RotationMatrix(%s, %v) failed: %v", axis, angle, err)
			}
			gotAxis, gotAngle := AxisAngle(m)
			if gotAxis != axis || math.Abs(gotAngle-angle) > 1e-6 {
				t.Errorf("AxisAngle(RotationMatrix(%s, %v)) = (%s, %v)", axis, angle, gotAxis, gotAngle)
			}
		}
	}
}

func TestRotationIdentity(t *testing.T) {
	m, err := RotationMatrix(Z, 0)
	if err != nil {
		t.Fatal(err)
	}
	if m != Identity {
		t.Errorf("Expected identity matrix, got %v", m)
	}
	axis, angle := AxisAngle(Identity)
	if axis != X || angle != 0 {
		t.Errorf("Expected (x, 0) for identity, got (%s, %v)", axis, angle)
	}
	if _, err := RotationMatrix("w", 10); err == nil {
		t.Error("Expected error for unknown axis")
	}
}

func TestAngleAbout(t *testing.T) {
	for _, axis := range []Axis{X, Y, Z} {
		for _, angle := range []float64{-179, -90, 0, 45, 135} {
			m, err := RotationMatrix(axis, angle)
			if err != nil {
				t.Fatal(err)
			}
			if got := AngleAbout(m, axis); math.Abs(got-angle) > 1e-6 {
				t.Errorf("AngleAbout(%s, %v) = %v", axis, angle, got)
			}
		}
	}
}

func TestWrapAngle(t *testing.T) {
	for in, expected := range map[float64]float64{0: 0, 270: -90, -270: 90, 540: -180, 90: 90, -180: -180} {
		if got := WrapAngle(in); math.Abs(got-expected) > 1e-9 {
			t.Errorf("WrapAngle(%v) = %v, expected %v", in, got, expected)
		}
	}
}
