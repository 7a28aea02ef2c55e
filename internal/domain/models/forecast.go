package models

// RiskLevel classifies an hourly risk score.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// RiskFactors holds the four normalized inputs to an hourly score,
// each clamped to [0,1].
type RiskFactors struct {
	Demand     float64 `json:"demand"`
	Renewable  float64 `json:"renewable"`
	Price      float64 `json:"price"`
	Volatility float64 `json:"volatility"`
}

// HourRisk is the scored risk for a single forecast hour.
type HourRisk struct {
	HourIndex   int         `json:"hourIndex"`
	Score       float64     `json:"score"`
	Level       RiskLevel   `json:"level"`
	Factors     RiskFactors `json:"factors"`
	Explanation string      `json:"explanation"`
}

// RiskForecast is the 24-entry risk timeline for a snapshot. Hourly has one
// entry per snapshot hour, same order.
type RiskForecast struct {
	Hourly            []HourRisk `json:"hourly"`
	PeakRiskHourIndex int        `json:"peakRiskHourIndex"`
	PeakRiskScore     float64    `json:"peakRiskScore"`
	Summary           string     `json:"summary"`
}
