package dr

import (
	"strings"
	"testing"

	"ecogrid/internal/domain/models"
)

func TestSimulateNominalEvent(t *testing.T) {
	s := NewSimulator()

	res := s.Simulate(200, models.EventWindow{DurationHours: 2}, 10)
	if !res.Valid {
		t.Fatalf("expected valid result, errors: %v", res.Errors)
	}
	if res.RampingFactor != 1 {
		t.Fatalf("120 min window vs 10 min ramp must not penalize, got %v", res.RampingFactor)
	}

	// 200 * (0.40*0.85 + 0.35*0.80 + 0.25*0.75) * 0.90 = 145.35
	if res.AchievedMW != 145 {
		t.Fatalf("achieved = %d, want 145", res.AchievedMW)
	}
	if res.CostSavedEUR != 11600 {
		t.Fatalf("cost = %d, want 11600", res.CostSavedEUR)
	}
	if res.CO2AvoidedTons != 130.5 {
		t.Fatalf("co2 = %v, want 130.5", res.CO2AvoidedTons)
	}
	if res.ReboundPeakMW != 145*0.35 {
		t.Fatalf("rebound peak = %v", res.ReboundPeakMW)
	}
	if res.ReboundEnergyMWh != 25.4 {
		t.Fatalf("rebound energy = %v, want 25.4", res.ReboundEnergyMWh)
	}

	// 145 < 160 (80% of target) fires the low-achievement warning.
	if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0], "80%") {
		t.Fatalf("expected a single low-achievement warning, got %v", res.Warnings)
	}
}

func TestSimulateSegmentOutcomes(t *testing.T) {
	s := NewSimulator()

	res := s.Simulate(100, models.EventWindow{DurationHours: 0.5}, 10)
	if !res.Valid {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	if len(res.SegmentResults) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(res.SegmentResults))
	}

	ind := res.SegmentResults["industrial"]
	if ind.TargetMW != 40 || !ind.CanAchieveInWindow {
		t.Fatalf("industrial: target=%v canAchieve=%v", ind.TargetMW, ind.CanAchieveInWindow)
	}
	com := res.SegmentResults["commercial"]
	if com.CanAchieveInWindow {
		t.Fatalf("commercial needs 45 min ramp, 30 min window should not suffice")
	}
	ev := res.SegmentResults["ev"]
	if ev.ParticipationRatePct != 80 || ev.MinRampMinutesNeeded != 10 {
		t.Fatalf("ev: participation=%v ramp=%d", ev.ParticipationRatePct, ev.MinRampMinutesNeeded)
	}
}

func TestSimulateValidation(t *testing.T) {
	s := NewSimulator()

	res := s.Simulate(5, models.EventWindow{DurationHours: 1}, 10)
	if res.Valid {
		t.Fatalf("5 MW target must fail")
	}
	if len(res.Errors) != 1 || !strings.Contains(res.Errors[0], "10 MW") {
		t.Fatalf("expected 10 MW floor error, got %v", res.Errors)
	}

	res = s.Simulate(600, models.EventWindow{DurationHours: 1}, 10)
	if res.Valid {
		t.Fatalf("600 MW target must fail")
	}
	if len(res.Errors) != 1 || !strings.Contains(res.Errors[0], "500 MW") {
		t.Fatalf("expected capacity ceiling error, got %v", res.Errors)
	}

	// A non-positive target breaks both the zero rule and the 10 MW floor;
	// both come back as distinct messages.
	res = s.Simulate(-5, models.EventWindow{DurationHours: 1}, 10)
	if res.Valid || len(res.Errors) != 2 {
		t.Fatalf("negative target must report both target violations, got %v", res.Errors)
	}
	if !strings.Contains(res.Errors[0], "greater than zero") || !strings.Contains(res.Errors[1], "10 MW") {
		t.Fatalf("unexpected violation messages: %v", res.Errors)
	}

	res = s.Simulate(0, models.EventWindow{}, 10)
	if res.Valid || len(res.Errors) != 3 {
		t.Fatalf("zero target and duration must report every violation, got %v", res.Errors)
	}
}

func TestSimulateAchievedNeverExceedsTarget(t *testing.T) {
	s := NewSimulator()

	for _, target := range []float64{10, 50, 137.5, 250, 500} {
		res := s.Simulate(target, models.EventWindow{DurationHours: 4}, 10)
		if !res.Valid {
			t.Fatalf("target %v: unexpected errors %v", target, res.Errors)
		}
		if float64(res.AchievedMW) > target {
			t.Fatalf("target %v: achieved %d exceeds it", target, res.AchievedMW)
		}
	}
}

func TestRampingFactorMonotone(t *testing.T) {
	s := NewSimulator()

	prev := -1.0
	for _, hours := range []float64{0.25, 0.5, 1, 2, 8} {
		res := s.Simulate(100, models.EventWindow{DurationHours: hours}, 60)
		if res.RampingFactor < prev {
			t.Fatalf("ramping factor decreased at %v hours: %v < %v", hours, res.RampingFactor, prev)
		}
		if res.RampingFactor > 1 {
			t.Fatalf("ramping factor above 1 at %v hours", hours)
		}
		prev = res.RampingFactor
	}
}

func TestSimulateRampingWarning(t *testing.T) {
	s := NewSimulator()

	// 30 min window against a 60 min ramp: factor 0.5, both warnings fire.
	res := s.Simulate(100, models.EventWindow{DurationHours: 0.5}, 60)
	if !res.Valid {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	if res.RampingFactor != 0.5 {
		t.Fatalf("ramping factor = %v, want 0.5", res.RampingFactor)
	}
	if len(res.Warnings) != 2 {
		t.Fatalf("expected ramping and achievement warnings, got %v", res.Warnings)
	}
}

func TestRampProfile(t *testing.T) {
	s := NewSimulator()

	profile := s.RampProfile(100, 10)
	if len(profile) != 3 {
		t.Fatalf("10 min ramp at 5 min steps = 3 points, got %d", len(profile))
	}
	if profile[0].ReductionMW != 0 || profile[0].Percentage != 0 {
		t.Fatalf("profile must start at zero, got %+v", profile[0])
	}
	last := profile[len(profile)-1]
	if last.Minute != 10 || last.ReductionMW != 100 || last.Percentage != 100 {
		t.Fatalf("profile must end at full reduction, got %+v", last)
	}
}
