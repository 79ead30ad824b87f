package domain

import (
	"sort"
	"strings"
	"time"

	"shuttle/internal/domain/models"
)

const (
	layoutClockSeconds = "15:04:05"
	layoutClockMinutes = "15:04"

	NoRouteInfo    = "No route info"
	routeSeparator = " → "
)

// StopTime is a parsed time-of-day or, when the stored text did not parse,
// the raw text. Parsed values always order before unparsed ones.
type StopTime struct {
	Parsed bool
	Clock  time.Duration // offset from midnight, valid when Parsed
	Raw    string
}

// ParseStopTime tries HH:MM:SS first, then HH:MM. The text must match the
// layout exactly; time.Parse alone would accept a trailing fraction.
func ParseStopTime(raw string) StopTime {
	s := strings.TrimSpace(raw)
	for _, layout := range []string{layoutClockSeconds, layoutClockMinutes} {
		if len(s) != len(layout) {
			continue
		}
		if t, err := time.Parse(layout, s); err == nil {
			clock := time.Duration(t.Hour())*time.Hour +
				time.Duration(t.Minute())*time.Minute +
				time.Duration(t.Second())*time.Second
			return StopTime{Parsed: true, Clock: clock, Raw: s}
		}
	}
	return StopTime{Raw: s}
}

// Less is the total order used for stop sequencing.
func (t StopTime) Less(o StopTime) bool {
	switch {
	case t.Parsed && o.Parsed:
		return t.Clock < o.Clock
	case t.Parsed != o.Parsed:
		return t.Parsed
	default:
		return t.Raw < o.Raw
	}
}

// String renders parsed times as HH:MM:SS and unparsed ones verbatim.
func (t StopTime) String() string {
	if !t.Parsed {
		return t.Raw
	}
	return time.Time{}.Add(t.Clock).Format(layoutClockSeconds)
}

// OrderedStop is one entry of an aggregated route.
type OrderedStop struct {
	StopID   int64  `json:"stop_id"`
	Time     string `json:"time"`
	StopName string `json:"stop_name"`
	Parsed   bool   `json:"parsed"`
	key      StopTime
}

// BuildRouteMap groups stops by bus and orders each group by stop time.
// Rows without a bus are skipped.
func BuildRouteMap(stops []models.RouteStop) map[int64][]OrderedStop {
	out := map[int64][]OrderedStop{}
	for _, s := range stops {
		if s.BusID == 0 {
			continue
		}
		key := ParseStopTime(s.StopTime)
		out[s.BusID] = append(out[s.BusID], OrderedStop{
			StopID:   s.ID,
			Time:     key.String(),
			StopName: s.StopName,
			Parsed:   key.Parsed,
			key:      key,
		})
	}
	for busID := range out {
		seq := out[busID]
		sort.SliceStable(seq, func(i, j int) bool { return seq[i].key.Less(seq[j].key) })
	}
	return out
}

// RouteFor returns the ordered stops of one bus.
func RouteFor(stops []models.RouteStop, busID int64) []OrderedStop {
	seq := BuildRouteMap(stops)[busID]
	if seq == nil {
		return []OrderedStop{}
	}
	return seq
}

// RouteLabel joins stop names, e.g. "Library → Gate → Hostel".
func RouteLabel(seq []OrderedStop) string {
	if len(seq) == 0 {
		return NoRouteInfo
	}
	names := make([]string, 0, len(seq))
	for _, s := range seq {
		names = append(names, s.StopName)
	}
	return strings.Join(names, routeSeparator)
}
