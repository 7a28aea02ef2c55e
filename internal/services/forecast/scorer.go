package forecast

import (
	"fmt"
	"math"
	"strings"

	"ecogrid/internal/domain/models"
)

// Thresholds calibrated to the Portugal grid. Demand bounds are MW against a
// 7.1 GW installed capacity, prices in EUR/MWh.
const (
	demandCritical = 6200
	demandMedium   = 4800

	renewableCritical = 0.35
	renewableLow      = 0.50

	priceCritical = 120
	priceMedium   = 60

	weightDemand     = 0.35
	weightRenewable  = 0.30
	weightPrice      = 0.25
	weightVolatility = 0.10

	highThreshold   = 0.70
	mediumThreshold = 0.45
)

// Scorer computes the multi-factor peak-risk forecast from a snapshot. It is
// stateless and pure; the same snapshot always yields the same forecast.
type Scorer struct{}

// NewScorer creates a risk scorer.
func NewScorer() *Scorer { return &Scorer{} }

// ComputeRisk scores every hour of the snapshot and derives the peak window
// summary. An empty or nil hourly series yields an empty forecast.
func (s *Scorer) ComputeRisk(snap *models.GridSnapshot) *models.RiskForecast {
	if snap == nil || len(snap.Hourly) == 0 {
		return &models.RiskForecast{Hourly: []models.HourRisk{}}
	}

	hourly := make([]models.HourRisk, 0, len(snap.Hourly))
	for i := range snap.Hourly {
		hourly = append(hourly, scoreHour(snap.Hourly, i))
	}

	// Ties resolve to the earliest hour.
	peakIdx := 0
	for i, h := range hourly {
		if h.Score > hourly[peakIdx].Score {
			peakIdx = i
		}
	}

	return &models.RiskForecast{
		Hourly:            hourly,
		PeakRiskHourIndex: hourly[peakIdx].HourIndex,
		PeakRiskScore:     hourly[peakIdx].Score,
		Summary:           summarize(hourly),
	}
}

func scoreHour(hours []models.HourRecord, idx int) models.HourRisk {
	hour := hours[idx]
	demand := float64(hour.DemandMW)

	demandScore := clamp01((demand - demandMedium) / (demandCritical - demandMedium))

	// Inverted: scarce renewables push the score up.
	share := renewableShare(hour)
	renewableScore := clamp01((renewableLow - share) / (renewableLow - renewableCritical))

	priceScore := clamp01((hour.PriceMWh - priceMedium) / (priceCritical - priceMedium))

	// Volatility is hour-over-hour; the first hour has no predecessor and
	// scores zero.
	volatilityScore := 0.0
	if idx > 0 {
		prev := hours[idx-1]
		demandChange := math.Abs(demand - float64(prev.DemandMW))
		prevDemand := float64(prev.DemandMW)
		if prevDemand == 0 {
			prevDemand = 1
		}
		shareChange := math.Abs(share - renewableTotal(prev)/prevDemand)
		volatilityScore = math.Min(1, demandChange/500+shareChange*2)
	}

	score := demandScore*weightDemand +
		renewableScore*weightRenewable +
		priceScore*weightPrice +
		volatilityScore*weightVolatility

	level := models.RiskLow
	switch {
	case score > highThreshold:
		level = models.RiskHigh
	case score > mediumThreshold:
		level = models.RiskMedium
	}

	return models.HourRisk{
		HourIndex: hour.HourIndex,
		Score:     score,
		Level:     level,
		Factors: models.RiskFactors{
			Demand:     demandScore,
			Renewable:  renewableScore,
			Price:      priceScore,
			Volatility: volatilityScore,
		},
		Explanation: explain(demandScore, renewableScore, priceScore, volatilityScore),
	}
}

func explain(demand, renewable, price, volatility float64) string {
	var reasons []string
	if demand > 0.6 {
		reasons = append(reasons, "high demand stress")
	}
	if renewable > 0.6 {
		reasons = append(reasons, "low renewable availability")
	}
	if price > 0.6 {
		reasons = append(reasons, "elevated market prices")
	}
	if volatility > 0.5 {
		reasons = append(reasons, "rapid grid fluctuations")
	}
	if len(reasons) == 0 {
		return "stable grid conditions"
	}
	return strings.Join(reasons, ", ")
}

func summarize(hourly []models.HourRisk) string {
	var high []models.HourRisk
	for _, h := range hourly {
		if h.Level == models.RiskHigh {
			high = append(high, h)
		}
	}
	if len(high) == 0 {
		return "Grid conditions stable across 24-hour forecast window."
	}
	first := high[0]
	last := high[len(high)-1]
	return fmt.Sprintf("High peak risk expected between %d:00-%d:00 due to %s.",
		first.HourIndex, (last.HourIndex%24)+1, first.Explanation)
}

func renewableShare(hour models.HourRecord) float64 {
	if hour.DemandMW <= 0 {
		return 0
	}
	return renewableTotal(hour) / float64(hour.DemandMW)
}

func renewableTotal(hour models.HourRecord) float64 {
	return float64(hour.Production.SolarMW + hour.Production.WindMW + hour.Production.HydroMW)
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}
