package models

// Requests for the HTTP endpoints. Defined in domain for consistency and reuse.

// SimulateRequest deliberately skips range validation on TargetMW and
// DurationHours; the simulator reports violations as a structured
// valid:false result rather than a 400.
type SimulateRequest struct {
	TargetMW      float64 `query:"targetMW" json:"targetMW"`
	DurationHours float64 `query:"durationHours" json:"durationHours"`
	RampMinutes   float64 `query:"rampMinutes" json:"rampMinutes" default:"10" validate:"gt=0"`
	StartTime     string  `query:"startTime" json:"startTime"`
}

type CreateEventRequest struct {
	OperatorName  string  `query:"operatorName" json:"operatorName" default:"Anonymous"`
	TargetMW      float64 `query:"targetMW" json:"targetMW" validate:"required"`
	DurationHours float64 `query:"durationHours" json:"durationHours" validate:"required,gt=0"`
	RampMinutes   float64 `query:"rampMinutes" json:"rampMinutes" default:"10" validate:"gt=0"`
	StartTime     string  `query:"startTime" json:"startTime" validate:"required"`
}

type ReboundRequest struct {
	AchievedMW float64 `query:"achievedMW" json:"achievedMW" validate:"required,gt=0"`
	BaselineMW float64 `query:"baselineMW" json:"baselineMW" default:"4000" validate:"gt=0"`
}

type ListEventsRequest struct {
	Limit int `query:"limit" json:"limit" default:"100" validate:"gte=1,lte=1000"`
}
