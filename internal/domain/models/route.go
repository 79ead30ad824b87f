package models

// RouteStop is one stop of a bus route. StopTime is stored as text.
type RouteStop struct {
	ID       int64  `json:"id"`
	BusID    int64  `json:"bus_id"`
	StopName string `json:"stop_name"`
	StopTime string `json:"stop_time"`
}
