package dr

import (
	"math"

	"ecogrid/internal/domain/models"
)

const (
	// DefaultBaselineMW is the assumed pre-event consumption when the caller
	// does not supply one.
	DefaultBaselineMW = 4000

	reboundPeakFactor = 1.35
	reboundDecayRate  = 2.0
	reboundSpanMin    = 30
	reboundStepMin    = 5
)

// ReboundProfile models the consumption-recovery curve after a DR event ends,
// sampled at 5-minute offsets from 0 to 30 inclusive. The curve decays
// exponentially from the rebound peak toward the baseline; it approaches the
// baseline asymptotically and does not land on it exactly at minute 30.
// RecoveryPercent is the remaining fraction of the rebound excess, 100 at the
// moment the event ends.
func (s *Simulator) ReboundProfile(achievedMW, baselineMW float64) []models.ReboundPoint {
	if baselineMW <= 0 {
		baselineMW = DefaultBaselineMW
	}
	peak := achievedMW * reboundPeakFactor

	points := make([]models.ReboundPoint, 0, reboundSpanMin/reboundStepMin+1)
	for t := 0; t <= reboundSpanMin; t += reboundStepMin {
		decay := math.Exp(-reboundDecayRate * float64(t) / reboundSpanMin)
		consumption := baselineMW + (peak-baselineMW)*decay
		points = append(points, models.ReboundPoint{
			MinuteOffset:    t,
			ConsumptionMW:   int(math.Round(consumption)),
			RecoveryPercent: int(math.Round(100 * decay)),
		})
	}
	return points
}
