package models

import "time"

// DataSource records where a snapshot came from. It is set once when the
// snapshot is built and travels with the data; nothing downstream rewrites it.
type DataSource string

const (
	SourceLivePrimary  DataSource = "live-primary"
	SourceLiveFallback DataSource = "live-fallback-transport"
	SourceCached       DataSource = "cached"
	SourceSynthetic    DataSource = "synthetic"
)

// HourProduction breaks down generation for a single hour.
type HourProduction struct {
	SolarMW   int `json:"solarMW"`
	WindMW    int `json:"windMW"`
	HydroMW   int `json:"hydroMW"`
	GasMW     int `json:"gasMW"`
	ImportsMW int `json:"importsMW"`
}

// HourRecord is one hour of grid state. A supply shortfall
// (SupplyMW < DemandMW) is a reportable condition, not an error.
type HourRecord struct {
	HourIndex  int            `json:"hourIndex"`
	Timestamp  string         `json:"timestamp"`
	DemandMW   int            `json:"demandMW"`
	SupplyMW   int            `json:"supplyMW"`
	PriceMWh   float64        `json:"priceMWh"`
	Production HourProduction `json:"production"`
}

// ProductionShare is one fuel source's contribution to the daily mix.
type ProductionShare struct {
	MW      int `json:"MW"`
	Percent int `json:"percent"`
}

// GridSnapshot is the canonical hourly grid state for one day. Hourly is
// ordered by hour-of-day; the slice index is the time axis. A snapshot is
// built whole and replaced whole, never patched.
type GridSnapshot struct {
	GeneratedAt    time.Time                  `json:"generatedAt"`
	Region         string                     `json:"region"`
	DataSource     DataSource                 `json:"dataSource"`
	TotalDemandMW  int                        `json:"totalDemandMW"`
	TotalSupplyMW  int                        `json:"totalSupplyMW"`
	MarketPriceEUR float64                    `json:"marketPriceEUR"`
	Hourly         []HourRecord               `json:"hourly"`
	ProductionMix  map[string]ProductionShare `json:"productionMix"`
}

// CacheEntry pairs a snapshot with its fetch time for freshness checks.
// Owned by the snapshot cache; callers replace entries wholesale.
type CacheEntry struct {
	Key       string        `json:"key"`
	Snapshot  *GridSnapshot `json:"snapshot"`
	FetchedAt int64         `json:"fetchedAtEpochMs"`
}
