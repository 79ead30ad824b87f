package domain

import "testing"

func TestComputeAvailability_Percentages(t *testing.T) {
	for total := 0; total <= 40; total++ {
		for available := 0; available <= total; available++ {
			got := ComputeAvailability(total, available)
			want := 0
			if total > 0 {
				want = (100 * available) / total
			}
			if got.PercentFree != want {
				t.Fatalf("total=%d available=%d: percent free got %d want %d", total, available, got.PercentFree, want)
			}
			if got.PercentFull != 100-want {
				t.Fatalf("total=%d available=%d: percent full got %d want %d", total, available, got.PercentFull, 100-want)
			}
		}
	}
}

func TestComputeAvailability_Status(t *testing.T) {
	cases := []struct {
		name             string
		total, available int
		want             AvailabilityStatus
	}{
		{"all seats free", 40, 40, StatusFullAvailable},
		{"empty bus with no capacity", 0, 0, StatusFullAvailable},
		{"under thirty percent", 10, 2, StatusLow},
		{"exactly thirty percent", 10, 3, StatusNormal},
		{"no seats left", 20, 0, StatusLow},
		{"half full", 20, 10, StatusNormal},
		{"just under threshold", 100, 29, StatusLow},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeAvailability(tc.total, tc.available).Status
			if got != tc.want {
				t.Fatalf("status got %s want %s", got, tc.want)
			}
		})
	}
}

func TestComputeAvailability_ZeroTotalIsZeroPercent(t *testing.T) {
	got := ComputeAvailability(0, 0)
	if got.PercentFree != 0 || got.PercentFull != 100 {
		t.Fatalf("unexpected percentages: %+v", got)
	}
}
