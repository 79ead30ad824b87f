package models

// Bus is a shuttle vehicle row from the buses table.
type Bus struct {
	ID         int64  `json:"bus_id"`
	Number     string `json:"bus_number"`
	TotalSeats int    `json:"total_seats"`
}

// Seat is the mutable available-capacity counter for a bus.
type Seat struct {
	BusID          int64 `json:"bus_id"`
	AvailableSeats int   `json:"available_seats"`
}

// BusUpdate carries an admin edit of a bus, its seat counter and its stops.
type BusUpdate struct {
	Number         string      `json:"bus_number"`
	TotalSeats     int         `json:"total_seats"`
	AvailableSeats int         `json:"available_seats"`
	Routes         []RouteStop `json:"routes"`
}
