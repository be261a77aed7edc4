package utils

// IsValidRange reports whether a relative range token is one the dashboard
// accepts.
func IsValidRange(token string) bool {
	switch token {
	case "1d", "7d", "30d", "90d", "365d":
		return true
	default:
		return false
	}
}

// IsValidPlatformGroup reports whether a value is one of the onboarding
// platform groups.
func IsValidPlatformGroup(group string) bool {
	switch group {
	case "mobile", "macOS", "web":
		return true
	default:
		return false
	}
}
