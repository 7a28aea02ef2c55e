package dr

import "testing"

func TestReboundProfileShape(t *testing.T) {
	s := NewSimulator()

	points := s.ReboundProfile(100, 0)
	if len(points) != 7 {
		t.Fatalf("expected 7 points at 5-minute steps, got %d", len(points))
	}

	first := points[0]
	if first.MinuteOffset != 0 || first.ConsumptionMW != 135 {
		t.Fatalf("curve must start at the rebound peak, got %+v", first)
	}
	if first.RecoveryPercent != 100 {
		t.Fatalf("recovery must be 100 at offset 0, got %d", first.RecoveryPercent)
	}

	for i := 1; i < len(points); i++ {
		if points[i].MinuteOffset != i*5 {
			t.Fatalf("point %d at offset %d, want %d", i, points[i].MinuteOffset, i*5)
		}
		if points[i].RecoveryPercent > points[i-1].RecoveryPercent {
			t.Fatalf("recovery must not increase: %d -> %d", points[i-1].RecoveryPercent, points[i].RecoveryPercent)
		}
	}

	last := points[len(points)-1]
	if last.MinuteOffset != 30 {
		t.Fatalf("curve must end at minute 30, got %d", last.MinuteOffset)
	}
	// e^-2 of the excess remains; the curve is asymptotic, not zero.
	if last.RecoveryPercent != 14 {
		t.Fatalf("recovery at minute 30 = %d, want 14", last.RecoveryPercent)
	}
}

func TestReboundProfileBaseline(t *testing.T) {
	s := NewSimulator()

	points := s.ReboundProfile(100, 2000)
	if points[0].ConsumptionMW != 135 {
		t.Fatalf("consumption at offset 0 is the peak regardless of baseline, got %d", points[0].ConsumptionMW)
	}

	// The curve converges toward the supplied baseline.
	low := points[6]
	def := s.ReboundProfile(100, 0)[6]
	if low.ConsumptionMW >= def.ConsumptionMW {
		t.Fatalf("lower baseline must converge lower: %d vs %d", low.ConsumptionMW, def.ConsumptionMW)
	}
}
