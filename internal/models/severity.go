package models

// Severity is the 5-level ordinal burn severity classification derived from
// dNBR using the standard USGS thresholds.
type Severity string

const (
	SeverityVeryHigh Severity = "Very High Severity"
	SeverityHigh     Severity = "High Severity"
	SeverityModerate Severity = "Moderate Severity"
	SeverityLow      Severity = "Low Severity"
	SeverityUnburned Severity = "Unburned or Regrowth"
)

// Severity tier lower bounds. A dNBR exactly on a boundary belongs to the
// higher tier.
const (
	veryHighDNBR = 0.66
	highDNBR     = 0.44
	moderateDNBR = 0.27
	lowDNBR      = 0.10
)

// ClassifySeverity maps a dNBR value onto its severity tier.
func ClassifySeverity(dnbr float64) Severity {
	switch {
	case dnbr >= veryHighDNBR:
		return SeverityVeryHigh
	case dnbr >= highDNBR:
		return SeverityHigh
	case dnbr >= moderateDNBR:
		return SeverityModerate
	case dnbr >= lowDNBR:
		return SeverityLow
	default:
		return SeverityUnburned
	}
}
