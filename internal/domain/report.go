package domain

// StatusCount is one row of a complaints summary.
type StatusCount struct {
	Status     TicketStatus
	Count      int64
	Percentage float64
}

// OwnerCounts totals a user's tickets per status.
type OwnerCounts struct {
	Total    int64
	ByStatus map[TicketStatus]int64
}
