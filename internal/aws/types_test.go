package aws

import "testing"

func TestMetricCounts_SucceededPercent(t *testing.T) {
	tests := []struct {
		name      string
		started   float64
		succeeded float64
		want      float64
	}{
		{"all succeeded", 10, 10, 100},
		{"half succeeded", 8, 4, 50},
		{"none succeeded", 5, 0, 0},
		{"nothing started", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := MetricCounts{Started: tt.started, Succeeded: tt.succeeded}
			if got := m.SucceededPercent(); got != tt.want {
				t.Fatalf("expected %.2f, got %.2f", tt.want, got)
			}
		})
	}
}

func TestMetricCounts_DeriveRunning(t *testing.T) {
	tests := []struct {
		name   string
		counts MetricCounts
		want   float64
	}{
		{"some running", MetricCounts{Started: 10, Succeeded: 4, Failed: 2, Aborted: 1}, 3},
		{"none running", MetricCounts{Started: 6, Succeeded: 3, Failed: 3}, 0},
		{"clamped to zero", MetricCounts{Started: 4, Succeeded: 3, Failed: 2, TimedOut: 1}, 0},
		{"all statuses", MetricCounts{Started: 12, Succeeded: 3, Failed: 2, Aborted: 1, TimedOut: 1, Throttled: 1}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := tt.counts
			m.DeriveRunning()
			if m.Running != tt.want {
				t.Fatalf("expected running %.0f, got %.0f", tt.want, m.Running)
			}
		})
	}
}

func TestRow_Values(t *testing.T) {
	r := Row{
		Name:      "sm1",
		Profile:   "prod",
		AccountID: "123456789012",
		Region:    "eu-west-1",
		Counts:    MetricCounts{Started: 8, Succeeded: 4, Failed: 2, Aborted: 1, Running: 1},
	}

	values := r.Values()
	if len(values) != len(Columns()) {
		t.Fatalf("expected %d values, got %d", len(Columns()), len(values))
	}
	if values[0] != "sm1" || values[1] != "prod" {
		t.Fatalf("unexpected identity columns: %v", values[:2])
	}
	if values[4] != "8" {
		t.Fatalf("expected started 8, got %q", values[4])
	}
	if values[5] != "50.00" {
		t.Fatalf("expected succeeded percent 50.00, got %q", values[5])
	}
	if values[7] != "2/1/0/0" {
		t.Fatalf("expected failure column 2/1/0/0, got %q", values[7])
	}
}
