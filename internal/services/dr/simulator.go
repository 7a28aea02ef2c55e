package dr

import (
	"fmt"
	"math"

	"ecogrid/internal/domain/models"
)

// Total flexible capacity under DR contracts, MW.
const TotalFlexCapacityMW = 500

const (
	minTargetMW          = 10
	executionEfficiency  = 0.90
	costRateEURPerMWh    = 40
	emissionFactorTCO2   = 0.45
	reboundPeakRatio     = 0.35
	reboundWindowMinutes = 30
)

type segment struct {
	name          string
	share         float64
	participation float64
	minRampMin    int
}

// Segment order is fixed so segment math folds deterministically.
var segments = []segment{
	{name: "industrial", share: 0.40, participation: 0.85, minRampMin: 30},
	{name: "ev", share: 0.35, participation: 0.80, minRampMin: 10},
	{name: "commercial", share: 0.25, participation: 0.75, minRampMin: 45},
}

// Simulator models DR events against the fixed segment portfolio. Stateless
// and pure; safe for concurrent use.
type Simulator struct{}

// NewSimulator creates a DR simulator.
func NewSimulator() *Simulator { return &Simulator{} }

// Simulate models a DR event for the requested reduction. Validation failures
// come back as Valid=false with every violated rule listed; the zero-value
// numeric fields are left untouched in that case.
func (s *Simulator) Simulate(targetMW float64, window models.EventWindow, rampMinutes float64) *models.DrSimulationResult {
	if rampMinutes <= 0 {
		rampMinutes = 10
	}

	result := &models.DrSimulationResult{TargetMW: targetMW}

	if errs := validate(targetMW, window); len(errs) > 0 {
		result.Errors = errs
		return result
	}
	result.Valid = true

	durationMinutes := window.DurationHours * 60
	rampingFactor := math.Min(1, durationMinutes/rampMinutes)
	result.RampingFactor = rampingFactor

	var achieved float64
	result.SegmentResults = make(map[string]models.SegmentOutcome, len(segments))
	for _, seg := range segments {
		segTarget := targetMW * seg.share
		segAchieved := segTarget * seg.participation * rampingFactor * executionEfficiency
		achieved += segAchieved

		result.SegmentResults[seg.name] = models.SegmentOutcome{
			SegmentName:          seg.name,
			TargetMW:             segTarget,
			AchievedMW:           segAchieved,
			ParticipationRatePct: seg.participation * 100,
			MinRampMinutesNeeded: seg.minRampMin,
			CanAchieveInWindow:   durationMinutes >= float64(seg.minRampMin),
		}
	}

	result.AchievedMW = int(math.Round(achieved))
	result.CostSavedEUR = int(math.Round(float64(result.AchievedMW) * window.DurationHours * costRateEURPerMWh))
	result.CO2AvoidedTons = round1(float64(result.AchievedMW) * window.DurationHours * emissionFactorTCO2)

	result.ReboundPeakMW = float64(result.AchievedMW) * reboundPeakRatio
	result.ReboundEnergyMWh = round1(result.ReboundPeakMW * reboundWindowMinutes / 60)

	if rampingFactor < 0.95 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("ramping constraint limits achievable reduction to %.0f%% of target", rampingFactor*100))
	}
	if float64(result.AchievedMW) < 0.8*targetMW {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("achieved reduction %d MW falls below 80%% of the %.0f MW target", result.AchievedMW, targetMW))
	}

	return result
}

// validate applies the fail-closed input rules. Every violated rule is
// reported, not just the first.
func validate(targetMW float64, window models.EventWindow) []string {
	var errs []string
	if targetMW <= 0 {
		errs = append(errs, "target reduction must be greater than zero")
	}
	if targetMW < minTargetMW {
		errs = append(errs, fmt.Sprintf("target reduction must be at least %d MW", minTargetMW))
	}
	if targetMW > TotalFlexCapacityMW {
		errs = append(errs, fmt.Sprintf("target reduction exceeds the %d MW total flexible capacity", TotalFlexCapacityMW))
	}
	if window.DurationHours <= 0 {
		errs = append(errs, "event duration must be greater than zero")
	}
	return errs
}

// RampProfile returns the linear ramp-up trajectory at 5-minute steps from
// event start to full reduction.
func (s *Simulator) RampProfile(targetMW, rampMinutes float64) []models.RampPoint {
	if rampMinutes <= 0 {
		rampMinutes = 10
	}

	steps := int(math.Ceil(rampMinutes / 5))
	profile := make([]models.RampPoint, 0, steps+1)
	for i := 0; i <= steps; i++ {
		progress := float64(i) / float64(steps)
		profile = append(profile, models.RampPoint{
			Minute:      i * 5,
			ReductionMW: targetMW * progress,
			Percentage:  int(math.Round(progress * 100)),
		})
	}
	return profile
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
