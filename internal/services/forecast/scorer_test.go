package forecast

import (
	"strings"
	"testing"

	"ecogrid/internal/domain/models"
)

func hour(idx, demand, solar, wind, hydro int, price float64) models.HourRecord {
	return models.HourRecord{
		HourIndex: idx,
		DemandMW:  demand,
		SupplyMW:  demand + 150,
		PriceMWh:  price,
		Production: models.HourProduction{
			SolarMW: solar,
			WindMW:  wind,
			HydroMW: hydro,
		},
	}
}

func TestComputeRiskEmptySnapshot(t *testing.T) {
	s := NewScorer()

	fc := s.ComputeRisk(nil)
	if len(fc.Hourly) != 0 || fc.Summary != "" {
		t.Fatalf("nil snapshot: got %d hours, summary %q", len(fc.Hourly), fc.Summary)
	}

	fc = s.ComputeRisk(&models.GridSnapshot{})
	if len(fc.Hourly) != 0 || fc.Summary != "" {
		t.Fatalf("empty snapshot: got %d hours, summary %q", len(fc.Hourly), fc.Summary)
	}
}

func TestComputeRiskLevels(t *testing.T) {
	s := NewScorer()

	// Calm hour: low demand, abundant renewables, cheap prices.
	low := s.ComputeRisk(&models.GridSnapshot{
		Hourly: []models.HourRecord{hour(0, 4000, 1000, 800, 400, 50)},
	})
	if got := low.Hourly[0]; got.Level != models.RiskLow || got.Score != 0 {
		t.Fatalf("expected LOW with zero score, got %s score=%v", got.Level, got.Score)
	}
	if low.Hourly[0].Explanation != "stable grid conditions" {
		t.Fatalf("unexpected explanation %q", low.Hourly[0].Explanation)
	}

	// Critical demand and prices but renewables still plentiful.
	med := s.ComputeRisk(&models.GridSnapshot{
		Hourly: []models.HourRecord{hour(0, 6200, 2000, 800, 400, 120)},
	})
	if got := med.Hourly[0]; got.Level != models.RiskMedium {
		t.Fatalf("expected MEDIUM, got %s score=%v", got.Level, got.Score)
	}

	// Everything stressed at once.
	high := s.ComputeRisk(&models.GridSnapshot{
		Hourly: []models.HourRecord{hour(0, 6200, 0, 0, 0, 120)},
	})
	got := high.Hourly[0]
	if got.Level != models.RiskHigh {
		t.Fatalf("expected HIGH, got %s score=%v", got.Level, got.Score)
	}
	want := "high demand stress, low renewable availability, elevated market prices"
	if got.Explanation != want {
		t.Fatalf("explanation %q, want %q", got.Explanation, want)
	}
}

func TestComputeRiskHighBoundary(t *testing.T) {
	s := NewScorer()

	// Demand and renewable factors saturate at 1 (critical demand, zero
	// renewables); the price factor tunes the total. At 72 EUR/MWh the
	// weighted score sits exactly on the HIGH threshold, which is
	// exclusive: 0.35 + 0.30 + 0.25*0.2 = 0.70 stays MEDIUM.
	at := s.ComputeRisk(&models.GridSnapshot{
		Hourly: []models.HourRecord{hour(0, 6200, 0, 0, 0, 72)},
	})
	if got := at.Hourly[0]; got.Level != models.RiskMedium {
		t.Fatalf("score at threshold must stay MEDIUM, got %s score=%v", got.Level, got.Score)
	}

	// 84 EUR/MWh lifts the price factor to 0.4 and the total to 0.75.
	above := s.ComputeRisk(&models.GridSnapshot{
		Hourly: []models.HourRecord{hour(0, 6200, 0, 0, 0, 84)},
	})
	if got := above.Hourly[0]; got.Level != models.RiskHigh {
		t.Fatalf("score above threshold must be HIGH, got %s score=%v", got.Level, got.Score)
	}
}

func TestComputeRiskVolatility(t *testing.T) {
	s := NewScorer()

	fc := s.ComputeRisk(&models.GridSnapshot{
		Hourly: []models.HourRecord{
			hour(0, 4000, 1000, 800, 400, 50),
			hour(1, 4600, 1000, 800, 400, 50),
		},
	})

	if fc.Hourly[0].Factors.Volatility != 0 {
		t.Fatalf("first hour must have zero volatility, got %v", fc.Hourly[0].Factors.Volatility)
	}
	if fc.Hourly[1].Factors.Volatility != 1 {
		t.Fatalf("600 MW jump should saturate volatility, got %v", fc.Hourly[1].Factors.Volatility)
	}
	if !strings.Contains(fc.Hourly[1].Explanation, "rapid grid fluctuations") {
		t.Fatalf("explanation %q should mention fluctuations", fc.Hourly[1].Explanation)
	}
}

func TestComputeRiskPeakTieBreak(t *testing.T) {
	s := NewScorer()

	fc := s.ComputeRisk(&models.GridSnapshot{
		Hourly: []models.HourRecord{
			hour(0, 6200, 0, 0, 0, 120),
			hour(1, 6200, 0, 0, 0, 120),
		},
	})
	if fc.PeakRiskHourIndex != 0 {
		t.Fatalf("tie must resolve to the earliest hour, got %d", fc.PeakRiskHourIndex)
	}
	if fc.PeakRiskScore != fc.Hourly[0].Score {
		t.Fatalf("peak score mismatch")
	}
}

func TestComputeRiskSummary(t *testing.T) {
	s := NewScorer()

	calm := s.ComputeRisk(&models.GridSnapshot{
		Hourly: []models.HourRecord{hour(0, 4000, 1000, 800, 400, 50)},
	})
	if calm.Summary != "Grid conditions stable across 24-hour forecast window." {
		t.Fatalf("unexpected calm summary %q", calm.Summary)
	}

	stressed := s.ComputeRisk(&models.GridSnapshot{
		Hourly: []models.HourRecord{
			hour(0, 4000, 1000, 800, 400, 50),
			hour(1, 6200, 0, 0, 0, 120),
		},
	})
	want := "High peak risk expected between 1:00-2:00 due to high demand stress, low renewable availability, elevated market prices, rapid grid fluctuations."
	if stressed.Summary != want {
		t.Fatalf("summary %q, want %q", stressed.Summary, want)
	}
}
