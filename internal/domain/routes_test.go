package domain

import (
	"testing"
	"time"

	"shuttle/internal/domain/models"
)

func stopNames(seq []OrderedStop) []string {
	out := make([]string, 0, len(seq))
	for _, s := range seq {
		out = append(out, s.StopName)
	}
	return out
}

func assertOrder(t *testing.T, got []OrderedStop, want ...string) {
	t.Helper()
	names := stopNames(got)
	if len(names) != len(want) {
		t.Fatalf("got %v want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("got %v want %v", names, want)
		}
	}
}

func TestRouteFor_OrdersByTimeOfDay(t *testing.T) {
	stops := []models.RouteStop{
		{ID: 1, BusID: 7, StopName: "Gate", StopTime: "09:00"},
		{ID: 2, BusID: 7, StopName: "Library", StopTime: "08:30"},
		{ID: 3, BusID: 7, StopName: "Hostel", StopTime: "09:15"},
	}
	seq := RouteFor(stops, 7)
	assertOrder(t, seq, "Library", "Gate", "Hostel")
	if RouteLabel(seq) != "Library → Gate → Hostel" {
		t.Fatalf("unexpected label %q", RouteLabel(seq))
	}
}

func TestRouteFor_MixesSecondsAndMinutesLayouts(t *testing.T) {
	stops := []models.RouteStop{
		{BusID: 1, StopName: "B", StopTime: "08:30:30"},
		{BusID: 1, StopName: "A", StopTime: "08:30"},
		{BusID: 1, StopName: "C", StopTime: "08:31:00"},
	}
	assertOrder(t, RouteFor(stops, 1), "A", "B", "C")
}

func TestRouteFor_UnparsedSortAfterParsed(t *testing.T) {
	stops := []models.RouteStop{
		{BusID: 1, StopName: "Late", StopTime: "tbd"},
		{BusID: 1, StopName: "Evening", StopTime: "18:00"},
		{BusID: 1, StopName: "Morning", StopTime: "06:45"},
		{BusID: 1, StopName: "Unknown", StopTime: "after lunch"},
	}
	seq := RouteFor(stops, 1)
	assertOrder(t, seq, "Morning", "Evening", "Unknown", "Late")
	if seq[2].Parsed || seq[3].Parsed {
		t.Fatalf("unparsed stops must be flagged: %+v", seq)
	}
	if seq[2].Time != "after lunch" {
		t.Fatalf("raw time must be kept, got %q", seq[2].Time)
	}
}

func TestRouteFor_FiltersByBusAndKeepsTiesStable(t *testing.T) {
	stops := []models.RouteStop{
		{BusID: 1, StopName: "First", StopTime: "10:00"},
		{BusID: 2, StopName: "Other", StopTime: "07:00"},
		{BusID: 1, StopName: "Second", StopTime: "10:00:00"},
		{BusID: 0, StopName: "Orphan", StopTime: "05:00"},
	}
	assertOrder(t, RouteFor(stops, 1), "First", "Second")
	assertOrder(t, RouteFor(stops, 2), "Other")
	if got := RouteFor(stops, 99); len(got) != 0 {
		t.Fatalf("expected empty route, got %v", got)
	}
	if RouteLabel(RouteFor(stops, 99)) != NoRouteInfo {
		t.Fatalf("empty route must render %q", NoRouteInfo)
	}
}

func TestParseStopTime(t *testing.T) {
	got := ParseStopTime(" 07:05 ")
	if !got.Parsed || got.Clock != 7*time.Hour+5*time.Minute {
		t.Fatalf("unexpected parse: %+v", got)
	}
	if got.String() != "07:05:00" {
		t.Fatalf("unexpected render %q", got.String())
	}
	if ParseStopTime("25:00").Parsed {
		t.Fatalf("25:00 must not parse")
	}
	for _, raw := range []string{"08:30:00.750", "8:30", "08:30:0", "08:30 "} {
		got := ParseStopTime(raw)
		if raw == "08:30 " {
			if !got.Parsed {
				t.Fatalf("%q should parse after trimming", raw)
			}
			continue
		}
		if got.Parsed {
			t.Fatalf("%q must not parse, got %s", raw, got)
		}
		if got.Raw != raw {
			t.Fatalf("%q raw text not kept: %q", raw, got.Raw)
		}
	}
}
