package usecase

import (
	"reflect"
	"testing"
	"time"

	"ecogrid/internal/domain/models"
	drepo "ecogrid/internal/domain/repository"
)

var testNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func TestSynthesizeDeterministic(t *testing.T) {
	a := synthesizeSnapshot("Portugal (Mainland)", testNow)
	b := synthesizeSnapshot("Portugal (Mainland)", testNow)

	if !reflect.DeepEqual(a.Hourly, b.Hourly) {
		t.Fatalf("synthetic hourly series must be identical across calls")
	}
	if a.DataSource != models.SourceSynthetic {
		t.Fatalf("data source = %s, want synthetic", a.DataSource)
	}
}

func TestSynthesizeShape(t *testing.T) {
	snap := synthesizeSnapshot("Portugal (Mainland)", testNow)

	if len(snap.Hourly) != 24 {
		t.Fatalf("expected 24 hours, got %d", len(snap.Hourly))
	}
	if snap.TotalDemandMW != 4200 || snap.TotalSupplyMW != 4350 {
		t.Fatalf("totals = %d/%d", snap.TotalDemandMW, snap.TotalSupplyMW)
	}

	h0 := snap.Hourly[0]
	if h0.DemandMW != 4200 {
		t.Fatalf("hour 0 demand = %d, want baseline 4200", h0.DemandMW)
	}
	if h0.Production.SolarMW != 0 {
		t.Fatalf("no solar before dawn, got %d", h0.Production.SolarMW)
	}
	if h0.PriceMWh != 78.3 {
		t.Fatalf("hour 0 price = %v, want 78.3", h0.PriceMWh)
	}

	noon := snap.Hourly[12]
	if noon.Production.SolarMW != 1200 {
		t.Fatalf("solar peaks at noon, got %d", noon.Production.SolarMW)
	}
	if noon.SupplyMW != noon.DemandMW+150 {
		t.Fatalf("supply must track demand with a 150 MW margin")
	}

	if snap.ProductionMix["solar"].MW != 1100 || snap.ProductionMix["solar"].Percent != 32 {
		t.Fatalf("unexpected synthetic mix %+v", snap.ProductionMix["solar"])
	}
}

func TestTransformAppliesDefaults(t *testing.T) {
	snap := transformUpstream(&drepo.DailyPayloads{}, models.SourceLivePrimary, "Portugal (Mainland)", testNow)

	if snap.DataSource != models.SourceLivePrimary {
		t.Fatalf("data source = %s", snap.DataSource)
	}
	if snap.TotalDemandMW != 4200 || snap.TotalSupplyMW != 4350 {
		t.Fatalf("default totals = %d/%d", snap.TotalDemandMW, snap.TotalSupplyMW)
	}
	if snap.MarketPriceEUR != 75 {
		t.Fatalf("default price = %v", snap.MarketPriceEUR)
	}

	h0 := snap.Hourly[0]
	if h0.Production.WindMW != 1200 {
		t.Fatalf("hour 0 wind = %d, want 900 + 300", h0.Production.WindMW)
	}
	if h0.Production.GasMW != 1260 || h0.Production.ImportsMW != 420 {
		t.Fatalf("gas/imports = %d/%d, want 30%%/10%% of demand", h0.Production.GasMW, h0.Production.ImportsMW)
	}

	// 1100+900+650+450+200 = 3300 total production baseline.
	if snap.ProductionMix["solar"].Percent != 33 {
		t.Fatalf("solar share = %d%%, want 33", snap.ProductionMix["solar"].Percent)
	}
}

func TestTransformUsesUpstreamValues(t *testing.T) {
	p := &drepo.DailyPayloads{
		Consumption: map[string]any{"consumption": 5000.0, "supply": 5200.0},
		Production:  map[string]any{"solar": 1500.0, "wind": 700.0},
		Prices:      map[string]any{"price": 92.0},
	}
	snap := transformUpstream(p, models.SourceLiveFallback, "Portugal (Mainland)", testNow)

	if snap.TotalDemandMW != 5000 || snap.TotalSupplyMW != 5200 {
		t.Fatalf("totals = %d/%d", snap.TotalDemandMW, snap.TotalSupplyMW)
	}
	if snap.MarketPriceEUR != 92 {
		t.Fatalf("price = %v", snap.MarketPriceEUR)
	}
	if snap.Hourly[12].Production.SolarMW != 1500 {
		t.Fatalf("noon solar = %d, want upstream 1500", snap.Hourly[12].Production.SolarMW)
	}
	// Missing fields still fall back.
	if snap.Hourly[0].Production.HydroMW != 650 {
		t.Fatalf("hydro default = %d", snap.Hourly[0].Production.HydroMW)
	}
}

func TestHourRecordTimestamps(t *testing.T) {
	snap := synthesizeSnapshot("Portugal (Mainland)", testNow)
	for i, h := range snap.Hourly {
		want := time.Date(2026, 3, 14, i, 0, 0, 0, time.UTC).Format(time.RFC3339)
		if h.Timestamp != want {
			t.Fatalf("hour %d timestamp %q, want %q", i, h.Timestamp, want)
		}
		if h.HourIndex != i {
			t.Fatalf("hour index %d at position %d", h.HourIndex, i)
		}
	}
}
