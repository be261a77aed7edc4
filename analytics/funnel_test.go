package analytics

import "testing"

func TestBuildFunnel(t *testing.T) {
	steps := []StepCount{
		{Name: "Viewed", Count: 200},
		{Name: "Selected", Count: 50},
		{Name: "Completed", Count: 15},
	}
	funnel := BuildFunnel(steps)

	if funnel[0].Percentage != 100 || funnel[0].Dropoff != 0 {
		t.Errorf("first step: got %+v, want percentage 100 dropoff 0", funnel[0])
	}
	if funnel[1].Percentage != 25 {
		t.Errorf("step 1 percentage: got %v, want 25", funnel[1].Percentage)
	}
	if funnel[1].Dropoff != 75 {
		t.Errorf("step 1 dropoff: got %v, want 75", funnel[1].Dropoff)
	}
	if funnel[2].Percentage != 7.5 {
		t.Errorf("step 2 percentage: got %v, want 7.5", funnel[2].Percentage)
	}
	if funnel[2].Dropoff != 70 {
		t.Errorf("step 2 dropoff: got %v, want 70", funnel[2].Dropoff)
	}
}

func TestBuildFunnelZeroBase(t *testing.T) {
	funnel := BuildFunnel([]StepCount{
		{Name: "A", Count: 0},
		{Name: "B", Count: 0},
	})
	if funnel[0].Percentage != 100 {
		t.Errorf("first step percentage: got %v, want 100", funnel[0].Percentage)
	}
	if funnel[1].Percentage != 0 || funnel[1].Dropoff != 0 {
		t.Errorf("empty funnel later step: got %+v, want zeros", funnel[1])
	}
}

func TestBuildFunnelGrowingStepClampsDropoff(t *testing.T) {
	funnel := BuildFunnel([]StepCount{
		{Name: "A", Count: 10},
		{Name: "B", Count: 25},
	})
	if funnel[1].Dropoff != 0 {
		t.Errorf("growing step dropoff: got %v, want 0", funnel[1].Dropoff)
	}
	if funnel[1].Percentage != 250 {
		t.Errorf("growing step percentage: got %v, want 250", funnel[1].Percentage)
	}
}

func TestBuildFunnelEmpty(t *testing.T) {
	if got := BuildFunnel(nil); len(got) != 0 {
		t.Errorf("got %d steps, want 0", len(got))
	}
}

func TestRound1(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{7.54, 7.5},
		{7.56, 7.6},
		{-2.26, -2.3},
		{0, 0},
	}
	for _, tt := range tests {
		if got := Round1(tt.in); got != tt.want {
			t.Errorf("Round1(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRate(t *testing.T) {
	if got := Rate(1, 3); got != 33.3 {
		t.Errorf("Rate(1,3) = %v, want 33.3", got)
	}
	if got := Rate(5, 0); got != 0 {
		t.Errorf("Rate(5,0) = %v, want 0", got)
	}
}
