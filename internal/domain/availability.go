package domain

// AvailabilityStatus classifies how many seats a bus has left.
type AvailabilityStatus string

const (
	StatusFullAvailable AvailabilityStatus = "FULL_AVAILABLE"
	StatusLow           AvailabilityStatus = "LOW"
	StatusNormal        AvailabilityStatus = "NORMAL"
)

// Availability is the per-bus seat tuple shown on the summary.
type Availability struct {
	TotalSeats     int                `json:"total_seats"`
	AvailableSeats int                `json:"available_seats"`
	PercentFree    int                `json:"percent_free"`
	PercentFull    int                `json:"percent_full"`
	Status         AvailabilityStatus `json:"status"`
}

// ComputeAvailability derives percentages and status from seat counts.
// PercentFree is floor(available*100/total) and 0 when total is 0.
// LOW means strictly under 30% free; exactly 30% is NORMAL.
func ComputeAvailability(total, available int) Availability {
	free := 0
	if total > 0 {
		free = available * 100 / total
	}

	status := StatusNormal
	switch {
	case available == total:
		status = StatusFullAvailable
	case total > 0 && available*10 < total*3:
		status = StatusLow
	}

	return Availability{
		TotalSeats:     total,
		AvailableSeats: available,
		PercentFree:    free,
		PercentFull:    100 - free,
		Status:         status,
	}
}
