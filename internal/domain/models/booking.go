package models

import "time"

// Occupancy is an append-only record of a completed booking.
type Occupancy struct {
	ID        int64     `json:"id"`
	BusID     int64     `json:"bus_id"`
	UserName  string    `json:"user_name"`
	CreatedAt time.Time `json:"created_at"`
}

// Booking is returned to the rider after a successful seat booking.
type Booking struct {
	OccupancyID    int64  `json:"occupancy_id"`
	BusID          int64  `json:"bus_id"`
	BusNumber      string `json:"bus_number"`
	UserName       string `json:"user_name"`
	RemainingSeats int    `json:"remaining_seats"`
}
