package analytics

import (
	"testing"

	"chunkmetrics/api/models"
)

func pev(props models.Properties) models.Event {
	props["distinct_id"] = "u"
	return models.Event{Name: "Page_Viewed", Properties: props}
}

func TestFilterByPlatform(t *testing.T) {
	web := pev(models.Properties{"mp_lib": "web"})
	webTag := pev(models.Properties{"platform": "web"})
	ios := pev(models.Properties{"$os": "iOS"})
	ipad := pev(models.Properties{"$os": "iPadOS"})
	mac := pev(models.Properties{"$os": "macOS"})
	vision := pev(models.Properties{"$os": "visionOS"})
	unknown := pev(models.Properties{})

	all := []models.Event{web, webTag, ios, ipad, mac, vision, unknown}

	tests := []struct {
		platform string
		want     int
	}{
		{"all", 7},
		{"", 7},
		{"web", 2},
		{"iOS", 2}, // iPadOS devices count as iOS
		{"iPadOS", 1},
		{"macOS", 1},
		{"visionOS", 1},
	}
	for _, tt := range tests {
		t.Run(tt.platform, func(t *testing.T) {
			if got := len(FilterByPlatform(all, tt.platform)); got != tt.want {
				t.Errorf("got %d events, want %d", got, tt.want)
			}
		})
	}
}

func TestFilterByPlatformIdempotent(t *testing.T) {
	events := []models.Event{
		pev(models.Properties{"$os": "iOS"}),
		pev(models.Properties{"mp_lib": "web"}),
	}
	once := FilterByPlatform(events, PlatformIOS)
	twice := FilterByPlatform(once, PlatformIOS)
	if len(once) != len(twice) {
		t.Errorf("second filter changed the result: %d != %d", len(once), len(twice))
	}
}

func TestSegment(t *testing.T) {
	tests := []struct {
		name  string
		props models.Properties
		want  string
	}{
		{"web lib", models.Properties{"mp_lib": "web"}, "web"},
		{"ios", models.Properties{"$os": "iOS"}, "iOS"},
		{"ipad folds into ios", models.Properties{"$os": "iPadOS"}, "iOS"},
		{"mac", models.Properties{"$os": "macOS"}, "macOS"},
		{"vision", models.Properties{"$os": "visionOS"}, "visionOS"},
		{"no signal", models.Properties{}, "Unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Segment(pev(tt.props)); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGroup(t *testing.T) {
	tests := []struct {
		name  string
		props models.Properties
		want  string
	}{
		{"web", models.Properties{"mp_lib": "web"}, GroupWeb},
		{"mac", models.Properties{"$os": "macOS"}, GroupMacOS},
		{"ios", models.Properties{"$os": "iOS"}, GroupMobile},
		{"ipad", models.Properties{"$os": "iPadOS"}, GroupMobile},
		{"vision", models.Properties{"$os": "visionOS"}, GroupMobile},
		{"no signal", models.Properties{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Group(pev(tt.props)); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
