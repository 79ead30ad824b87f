package models

// Intent is a rider's non-binding travel declaration. SeatReserved is always
// written false; no flow reads or updates it.
type Intent struct {
	ID           int64  `json:"id"`
	StudentID    string `json:"student_id"`
	BusID        int64  `json:"bus_id"`
	SeatReserved bool   `json:"seat_reserved"`
}
