package analytics

import (
	"reflect"
	"testing"
	"time"
)

func TestResolveRange(t *testing.T) {
	tests := []struct {
		token string
		days  int
	}{
		{"1d", 1},
		{"7d", 7},
		{"30d", 30},
		{"90d", 90},
		{"365d", 365},
		{"", 30},
		{"bogus", 30},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			r := ResolveRange(tt.token)
			if got := r.Days(); got != tt.days {
				t.Errorf("Days() = %d, want %d", got, tt.days)
			}
			if r.To != time.Now().Format("2006-01-02") {
				t.Errorf("To = %s, want today", r.To)
			}
		})
	}
}

func TestEnumerateDays(t *testing.T) {
	tests := []struct {
		name string
		r    DateRange
		want []string
	}{
		{
			"single day",
			DateRange{From: "2025-03-10", To: "2025-03-10"},
			[]string{"2025-03-10"},
		},
		{
			"month boundary",
			DateRange{From: "2025-01-30", To: "2025-02-02"},
			[]string{"2025-01-30", "2025-01-31", "2025-02-01", "2025-02-02"},
		},
		{
			"leap february",
			DateRange{From: "2024-02-27", To: "2024-03-01"},
			[]string{"2024-02-27", "2024-02-28", "2024-02-29", "2024-03-01"},
		},
		{
			"year boundary",
			DateRange{From: "2024-12-30", To: "2025-01-02"},
			[]string{"2024-12-30", "2024-12-31", "2025-01-01", "2025-01-02"},
		},
		{
			"inverted",
			DateRange{From: "2025-02-02", To: "2025-02-01"},
			nil,
		},
		{
			"malformed",
			DateRange{From: "not-a-date", To: "2025-02-01"},
			nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EnumerateDays(tt.r); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("EnumerateDays(%v) = %v, want %v", tt.r, got, tt.want)
			}
		})
	}
}

func TestPriorPeriod(t *testing.T) {
	r := DateRange{From: "2025-03-01", To: "2025-03-30"}
	prior := r.PriorPeriod()
	want := DateRange{From: "2025-01-30", To: "2025-02-28"}
	if prior != want {
		t.Errorf("PriorPeriod() = %v, want %v", prior, want)
	}
	if prior.Days() != r.Days() {
		t.Errorf("prior period length %d != range length %d", prior.Days(), r.Days())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		r       DateRange
		wantErr bool
	}{
		{"valid", DateRange{From: "2025-01-01", To: "2025-01-31"}, false},
		{"same day", DateRange{From: "2025-01-01", To: "2025-01-01"}, false},
		{"inverted", DateRange{From: "2025-01-31", To: "2025-01-01"}, true},
		{"garbage from", DateRange{From: "31/01/2025", To: "2025-01-31"}, true},
		{"garbage to", DateRange{From: "2025-01-01", To: "soon"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.r.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
