package analytics

import "chunkmetrics/api/models"

// Platform selectors accepted by the dashboard. Platform is inferred per
// event from whichever signal is populated: the web client library marker
// ("mp_lib"), the OS property ("$os"), or an explicit "platform" property.
const (
	PlatformAll      = "all"
	PlatformWeb      = "web"
	PlatformIOS      = "iOS"
	PlatformIPadOS   = "iPadOS"
	PlatformMacOS    = "macOS"
	PlatformVisionOS = "visionOS"
)

// matchesPlatform applies the canonical per-platform rules. The "iOS"
// selector includes iPadOS devices; "iPadOS" is also separately selectable.
// An event carrying none of the known signals matches no concrete platform
// and only shows up under "all" (or the Unknown segment, see Segment).
func matchesPlatform(e models.Event, platform string) bool {
	os := e.Properties.Str("$os")
	tag := e.Properties.Str("platform")
	switch platform {
	case PlatformWeb:
		return e.Properties.Str("mp_lib") == "web" || tag == "web"
	case PlatformIOS:
		return os == "iOS" || os == "iPadOS" || tag == "iOS"
	case PlatformIPadOS:
		return os == "iPadOS"
	case PlatformMacOS:
		return os == "macOS" || tag == "macOS"
	case PlatformVisionOS:
		return os == "visionOS" || tag == "visionOS"
	default:
		return false
	}
}

// FilterByPlatform narrows events to one platform. "all" is the identity.
func FilterByPlatform(events []models.Event, platform string) []models.Event {
	if platform == PlatformAll || platform == "" {
		return events
	}
	var out []models.Event
	for _, e := range events {
		if matchesPlatform(e, platform) {
			out = append(out, e)
		}
	}
	return out
}

// Segment buckets an event into exactly one platform segment for
// segmentation views: web, iOS (including iPadOS), macOS, visionOS, or
// "Unknown" when no signal is present. The precedence mirrors
// matchesPlatform so an event never lands in two segments.
func Segment(e models.Event) string {
	switch {
	case matchesPlatform(e, PlatformWeb):
		return PlatformWeb
	case matchesPlatform(e, PlatformIOS):
		return PlatformIOS
	case matchesPlatform(e, PlatformMacOS):
		return PlatformMacOS
	case matchesPlatform(e, PlatformVisionOS):
		return PlatformVisionOS
	default:
		return "Unknown"
	}
}

// Segments lists every segment Segment can produce, in display order.
var Segments = []string{PlatformWeb, PlatformIOS, PlatformMacOS, PlatformVisionOS, "Unknown"}

// Onboarding funnels group platforms more coarsely: every handheld/headset
// OS counts as "mobile".
const (
	GroupMobile = "mobile"
	GroupMacOS  = "macOS"
	GroupWeb    = "web"
)

// Group buckets an event into an onboarding platform group, or "" when the
// event carries no platform signal.
func Group(e models.Event) string {
	switch {
	case matchesPlatform(e, PlatformWeb):
		return GroupWeb
	case matchesPlatform(e, PlatformMacOS):
		return GroupMacOS
	case matchesPlatform(e, PlatformIOS), matchesPlatform(e, PlatformVisionOS):
		return GroupMobile
	default:
		return ""
	}
}

// FilterByGroup narrows events to one onboarding platform group.
func FilterByGroup(events []models.Event, group string) []models.Event {
	var out []models.Event
	for _, e := range events {
		if Group(e) == group {
			out = append(out, e)
		}
	}
	return out
}
