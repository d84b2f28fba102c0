package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// DefaultFallbackCaseMinutes is the interval length assumed for cases that
// carry neither an end timestamp nor a duration. Overridable via config.
const DefaultFallbackCaseMinutes = 60

// Duration sources reported to the dialog when a duration is obtained
const (
	DurationSourceModel    = "AI Model"
	DurationSourceAverage  = "Historical Avg"
	DurationSourceFallback = "Fallback Default"
)

// Display labels for cases with missing metadata
const (
	UnknownPatientLabel   = "No Name"
	UnassignedDoctorLabel = "Unassigned"
)

// Utilization bands reported by the analytics status summary
const (
	UtilizationLow      = "Low"
	UtilizationModerate = "Moderate"
	UtilizationHigh     = "High"
)

// Case-count thresholds for the utilization bands
const (
	UtilizationModerateThreshold = 5
	UtilizationHighThreshold     = 20
)

// UtilizationBand maps a case count to its load band.
func UtilizationBand(totalCases int) string {
	switch {
	case totalCases > UtilizationHighThreshold:
		return UtilizationHigh
	case totalCases > UtilizationModerateThreshold:
		return UtilizationModerate
	default:
		return UtilizationLow
	}
}
