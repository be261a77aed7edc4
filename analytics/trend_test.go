package analytics

import "testing"

func TestTrend(t *testing.T) {
	if got := Trend(150, 100); got == nil || *got != 50 {
		t.Errorf("Trend(150,100) = %v, want 50", got)
	}
	if got := Trend(50, 100); got == nil || *got != -50 {
		t.Errorf("Trend(50,100) = %v, want -50", got)
	}
}

func TestTrendBothZero(t *testing.T) {
	got := Trend(0, 0)
	if got == nil || *got != 0 {
		t.Errorf("Trend(0,0) = %v, want 0", got)
	}
}

func TestTrendNewIsSentinel(t *testing.T) {
	// A metric appearing from a zero base has no comparable prior, so the
	// trend is nil and marshals to JSON null, never a finite percentage.
	if got := Trend(5, 0); got != nil {
		t.Errorf("Trend(5,0) = %v, want nil", *got)
	}
	if got := TrendCount(7, 0); got != nil {
		t.Errorf("TrendCount(7,0) = %v, want nil", *got)
	}
}

func TestTrendCount(t *testing.T) {
	if got := TrendCount(30, 40); got == nil || *got != -25 {
		t.Errorf("TrendCount(30,40) = %v, want -25", got)
	}
}
