package ren

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	applogger "ecogrid/pkg/logger"
)

func testLogger(t *testing.T) *applogger.Logger {
	t.Helper()
	l, err := applogger.New(&applogger.Config{Level: "error", Format: "console", Output: "stdout"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

func jsonHandler(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}

func TestFetchDailyGroup(t *testing.T) {
	mux := http.NewServeMux()
	mux.Handle(endpointConsumption, jsonHandler(`{"data": {"consumption": 4500, "supply": 4700}}`))
	mux.Handle(endpointProduction, jsonHandler(`{"data": [{"solar": 1300, "wind": 850}]}`))
	mux.Handle(endpointPrices, jsonHandler(`{"price": 81.5}`))
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(srv.URL, "", 2*time.Second, testLogger(t))
	p, err := c.FetchDaily(context.Background())
	if err != nil {
		t.Fatalf("fetch daily: %v", err)
	}
	if p.Consumption["consumption"] != 4500.0 {
		t.Fatalf("consumption = %v", p.Consumption["consumption"])
	}
	if p.Production["solar"] != 1300.0 {
		t.Fatalf("solar = %v", p.Production["solar"])
	}
	if p.Prices["price"] != 81.5 {
		t.Fatalf("price = %v", p.Prices["price"])
	}
}

func TestFetchDailyOneFailurePoisonsGroup(t *testing.T) {
	mux := http.NewServeMux()
	mux.Handle(endpointConsumption, jsonHandler(`{"consumption": 4500}`))
	mux.Handle(endpointProduction, jsonHandler(`{"solar": 1300}`))
	mux.HandleFunc(endpointPrices, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream error", http.StatusBadGateway)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(srv.URL, "", 2*time.Second, testLogger(t))
	if _, err := c.FetchDaily(context.Background()); err == nil {
		t.Fatalf("one non-2xx response must fail the whole group")
	}
}

func TestFetchDailyTimeout(t *testing.T) {
	mux := http.NewServeMux()
	slow := func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(500 * time.Millisecond)
		_, _ = w.Write([]byte(`{}`))
	}
	mux.HandleFunc(endpointConsumption, slow)
	mux.HandleFunc(endpointProduction, slow)
	mux.HandleFunc(endpointPrices, slow)
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(srv.URL, "", 50*time.Millisecond, testLogger(t))
	if _, err := c.FetchDaily(context.Background()); err == nil {
		t.Fatalf("expected timeout error")
	}
}

func TestFetchDailyFallbackUnconfigured(t *testing.T) {
	c := New("http://example.invalid", "", time.Second, testLogger(t))
	if c.HasFallback() {
		t.Fatalf("no proxy configured")
	}
	if _, err := c.FetchDailyFallback(context.Background()); err == nil {
		t.Fatalf("fallback without a proxy must error")
	}
}

func TestNormalizeEnvelope(t *testing.T) {
	cases := []struct {
		name string
		in   string
		key  string
		want float64
	}{
		{"bare record", `{"price": 60}`, "price", 60},
		{"bare sequence", `[{"price": 61}, {"price": 99}]`, "price", 61},
		{"wrapped record", `{"data": {"price": 62}}`, "price", 62},
		{"wrapped sequence", `{"data": [{"price": 63}]}`, "price", 63},
	}
	for _, tc := range cases {
		got, err := normalizeEnvelope(json.RawMessage(tc.in))
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if got[tc.key] != tc.want {
			t.Fatalf("%s: got %v, want %v", tc.name, got[tc.key], tc.want)
		}
	}
}

func TestNormalizeEnvelopeEmpty(t *testing.T) {
	for _, in := range []string{``, `[]`, `{"data": []}`, `"scalar"`, `null`} {
		got, err := normalizeEnvelope(json.RawMessage(in))
		if err != nil {
			t.Fatalf("%q: %v", in, err)
		}
		if len(got) != 0 {
			t.Fatalf("%q: expected empty record, got %v", in, got)
		}
	}
}
