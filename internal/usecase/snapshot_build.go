package usecase

import (
	"encoding/json"
	"math"
	"time"

	"ecogrid/internal/domain/models"
	drepo "ecogrid/internal/domain/repository"
)

// Calibrated defaults for missing upstream fields (daily baselines, MW except
// price in EUR/MWh).
const (
	defaultConsumptionMW = 4200
	defaultSupplyMW      = 4350
	defaultPriceEUR      = 75
	defaultSolarMW       = 1100
	defaultWindMW        = 900
	defaultHydroMW       = 650
	defaultGasMW         = 450
	defaultImportsMW     = 200
)

// Synthetic baselines, used when both transports are down.
const (
	syntheticBaseLoadMW  = 4200
	syntheticVariationMW = 600
	syntheticSolarPeakMW = 1200
	syntheticWindBaseMW  = 800
	syntheticHydroMW     = 400
)

type dailyBaselines struct {
	consumption float64
	supply      float64
	price       float64
	solar       float64
	wind        float64
	hydro       float64
	gas         float64
	imports     float64
}

// transformUpstream turns the three raw upstream payloads into a canonical
// snapshot. The upstream publishes daily aggregates only, so the 24 hourly
// records are interpolated from fixed closed-form curves around the daily
// baseline.
func transformUpstream(p *drepo.DailyPayloads, source models.DataSource, region string, now time.Time) *models.GridSnapshot {
	b := dailyBaselines{
		consumption: numField(p.Consumption, "consumption", defaultConsumptionMW),
		supply:      numField(p.Consumption, "supply", defaultSupplyMW),
		price:       numField(p.Prices, "price", defaultPriceEUR),
		solar:       numField(p.Production, "solar", defaultSolarMW),
		wind:        numField(p.Production, "wind", defaultWindMW),
		hydro:       numField(p.Production, "hydro", defaultHydroMW),
		gas:         numField(p.Production, "gas", defaultGasMW),
		imports:     numField(p.Production, "imports", defaultImportsMW),
	}

	totalProduction := b.solar + b.wind + b.hydro + b.gas + b.imports

	return &models.GridSnapshot{
		GeneratedAt:    now,
		Region:         region,
		DataSource:     source,
		TotalDemandMW:  roundMW(b.consumption),
		TotalSupplyMW:  roundMW(b.supply),
		MarketPriceEUR: round1(b.price),
		Hourly:         interpolateHourly(b, now),
		ProductionMix: map[string]models.ProductionShare{
			"solar":   mixShare(b.solar, totalProduction),
			"wind":    mixShare(b.wind, totalProduction),
			"hydro":   mixShare(b.hydro, totalProduction),
			"gas":     mixShare(b.gas, totalProduction),
			"imports": mixShare(b.imports, totalProduction),
		},
	}
}

// synthesizeSnapshot builds a deterministic snapshot from fixed baselines.
// Same shape as the transform path, provenance marked synthetic.
func synthesizeSnapshot(region string, now time.Time) *models.GridSnapshot {
	b := dailyBaselines{
		consumption: syntheticBaseLoadMW,
		supply:      syntheticBaseLoadMW + 150,
		price:       60, // hourly curve adds 30·sin(π(h+5)/24)
		solar:       syntheticSolarPeakMW,
		wind:        syntheticWindBaseMW,
		hydro:       syntheticHydroMW,
	}

	hourly := make([]models.HourRecord, 0, 24)
	for h := 0; h < 24; h++ {
		rec := hourRecord(b, h, now)
		rec.PriceMWh = round1(60 + 30*math.Sin(math.Pi*float64(h+5)/24))
		hourly = append(hourly, rec)
	}

	return &models.GridSnapshot{
		GeneratedAt:    now,
		Region:         region,
		DataSource:     models.SourceSynthetic,
		TotalDemandMW:  syntheticBaseLoadMW,
		TotalSupplyMW:  syntheticBaseLoadMW + 150,
		MarketPriceEUR: 82.5,
		Hourly:         hourly,
		ProductionMix: map[string]models.ProductionShare{
			"solar":   {MW: 1100, Percent: 32},
			"wind":    {MW: 950, Percent: 27},
			"hydro":   {MW: 650, Percent: 19},
			"gas":     {MW: 450, Percent: 13},
			"imports": {MW: 350, Percent: 9},
		},
	}
}

func interpolateHourly(b dailyBaselines, now time.Time) []models.HourRecord {
	hourly := make([]models.HourRecord, 0, 24)
	for h := 0; h < 24; h++ {
		rec := hourRecord(b, h, now)
		rec.PriceMWh = round1(b.price + 20*math.Sin(math.Pi*float64(h+5)/24))
		hourly = append(hourly, rec)
	}
	return hourly
}

// hourRecord applies the shared demand/production curves for hour h.
func hourRecord(b dailyBaselines, h int, now time.Time) models.HourRecord {
	sine := math.Sin(math.Pi * float64(h) / 24)
	demand := b.consumption + syntheticVariationMW*sine
	solar := math.Max(0, b.solar*math.Sin(math.Pi*float64(h-6)/12))
	wind := b.wind + 300*math.Cos(math.Pi*float64(h)/24)

	ts := time.Date(now.Year(), now.Month(), now.Day(), h, 0, 0, 0, now.Location())

	return models.HourRecord{
		HourIndex: h,
		Timestamp: ts.Format(time.RFC3339),
		DemandMW:  roundMW(demand),
		SupplyMW:  roundMW(demand + 150),
		Production: models.HourProduction{
			SolarMW:   roundMW(solar),
			WindMW:    roundMW(wind),
			HydroMW:   roundMW(b.hydro),
			GasMW:     roundMW(demand * 0.3),
			ImportsMW: roundMW(demand * 0.1),
		},
	}
}

func mixShare(mw, total float64) models.ProductionShare {
	share := models.ProductionShare{MW: roundMW(mw)}
	if total > 0 {
		share.Percent = roundMW(mw / total * 100)
	}
	return share
}

// numField reads a numeric field from a loosely typed upstream record,
// falling back to the calibrated default.
func numField(m map[string]any, key string, def float64) float64 {
	if m == nil {
		return def
	}
	switch v := m[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return f
		}
	}
	return def
}

func roundMW(v float64) int {
	return int(math.Round(v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
