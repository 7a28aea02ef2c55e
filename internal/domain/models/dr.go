package models

import "time"

// EventWindow describes when and for how long a DR event runs.
type EventWindow struct {
	StartTime     string  `json:"startTime,omitempty"`
	DurationHours float64 `json:"durationHours"`
}

// SegmentOutcome reports one flexible-load segment's share of a simulated
// event. MinRampMinutesNeeded is informational; the global ramping factor is
// what gates achievability.
type SegmentOutcome struct {
	SegmentName          string  `json:"segmentName"`
	TargetMW             float64 `json:"targetMW"`
	AchievedMW           float64 `json:"achievedMW"`
	ParticipationRatePct float64 `json:"participationRatePercent"`
	MinRampMinutesNeeded int     `json:"minRampMinutesNeeded"`
	CanAchieveInWindow   bool    `json:"canAchieveInWindow"`
}

// DrSimulationResult is the terminal value of one simulation run. Immutable
// once produced; validation failures come back as Valid=false with Errors,
// never as a Go error.
type DrSimulationResult struct {
	TargetMW         float64                   `json:"targetMW"`
	AchievedMW       int                       `json:"achievedMW"`
	RampingFactor    float64                   `json:"rampingFactor"`
	CostSavedEUR     int                       `json:"costSavedEUR"`
	CO2AvoidedTons   float64                   `json:"co2AvoidedTons"`
	SegmentResults   map[string]SegmentOutcome `json:"segmentResults,omitempty"`
	ReboundPeakMW    float64                   `json:"reboundPeakMW"`
	ReboundEnergyMWh float64                   `json:"reboundEnergyMWh"`
	Warnings         []string                  `json:"warnings,omitempty"`
	Valid            bool                      `json:"valid"`
	Errors           []string                  `json:"errors,omitempty"`
}

// ReboundPoint is one sample of the post-event recovery curve.
type ReboundPoint struct {
	MinuteOffset    int `json:"minuteOffset"`
	ConsumptionMW   int `json:"consumptionMW"`
	RecoveryPercent int `json:"recoveryPercent"`
}

// RampPoint is one sample of the ramp-up profile at the start of an event.
type RampPoint struct {
	Minute      int     `json:"minute"`
	ReductionMW float64 `json:"reductionMW"`
	Percentage  int     `json:"percentage"`
}

// DrEvent is the flat record handed to the event sink after a simulated or
// executed event. Aggregation and export formatting live outside this core.
type DrEvent struct {
	ID             int64     `json:"id,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	OperatorName   string    `json:"operatorName"`
	TargetMW       float64   `json:"targetMW"`
	AchievedMW     int       `json:"achievedMW"`
	DurationHours  float64   `json:"durationHours"`
	StartTime      string    `json:"startTime,omitempty"`
	CostSavedEUR   int       `json:"costSavedEUR"`
	CO2AvoidedTons float64   `json:"co2AvoidedTons"`
}
