package domain

// Department is an organizational unit tickets are routed to.
type Department struct {
	ID          int64
	Description string
}

// UnknownDepartmentName is reported when a department lookup misses.
const UnknownDepartmentName = "Unknown"
