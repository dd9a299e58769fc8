package telemetry

import (
	"context"
	"testing"
)

func TestParseEndpoint(t *testing.T) {
	cases := []struct {
		raw      string
		host     string
		insecure bool
	}{
		{"http://collector:4318", "collector:4318", true},
		{"https://otel.example.com", "otel.example.com", false},
		{"collector:4318", "collector:4318", true},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			host, insecure, err := parseEndpoint(tc.raw)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if host != tc.host || insecure != tc.insecure {
				t.Fatalf("got %q insecure=%v", host, insecure)
			}
		})
	}
}

func TestInitMetricsNoop(t *testing.T) {
	mp, shutdown, err := InitMetrics(context.Background(), "")
	if err != nil || mp == nil {
		t.Fatalf("unexpected result: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("unexpected shutdown error: %v", err)
	}
}
