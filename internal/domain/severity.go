package domain

// SeverityLevel is a coarse priority classification for tickets.
type SeverityLevel struct {
	ID          int64
	Description string
}

// Seeded severity identifiers.
const (
	SeverityHigh   int64 = 1
	SeverityMedium int64 = 2
	SeverityLow    int64 = 3
)

// DefaultSeverityID is applied to tickets created without a severity.
const DefaultSeverityID = SeverityLow
