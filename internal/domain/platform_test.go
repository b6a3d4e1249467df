package domain

import (
	"math"
	"testing"
)

func TestSplitFare(t *testing.T) {
	t.Parallel()

	cases := []struct {
		fare, bps    int64
		fee, payment int64
	}{
		{100, 1000, 10, 90},
		{100, 0, 0, 100},
		{100, 10000, 100, 0},
		{1, 1000, 0, 1},    // fee truncates toward zero
		{99, 1000, 9, 90},
		{12345, 250, 308, 12037},
		// Fares where the naive fare*bps product exceeds int64.
		{3_000_000_000_000_000_000, 10000, 3_000_000_000_000_000_000, 0},
		{3_000_000_000_000_000_000, 9999, 2_999_700_000_000_000_000, 300_000_000_000_000_000},
		{math.MaxInt64, 10000, math.MaxInt64, 0},
		{math.MaxInt64, 1, 922_337_203_685_477, 9_222_449_699_651_090_330},
	}
	for _, c := range cases {
		fee, payment := SplitFare(c.fare, c.bps)
		if fee != c.fee || payment != c.payment {
			t.Errorf("SplitFare(%d, %d) = (%d, %d), want (%d, %d)",
				c.fare, c.bps, fee, payment, c.fee, c.payment)
		}
	}
}

func TestSplitFareAlwaysBalances(t *testing.T) {
	t.Parallel()

	fares := make([]int64, 0, 512)
	for fare := int64(1); fare <= 500; fare++ {
		fares = append(fares, fare)
	}
	fares = append(fares,
		math.MaxInt64/MaxFeeBps-1,
		math.MaxInt64/MaxFeeBps,
		math.MaxInt64/MaxFeeBps+1,
		math.MaxInt64-1,
		math.MaxInt64,
	)

	for _, fare := range fares {
		for bps := int64(0); bps <= MaxFeeBps; bps += 37 {
			fee, payment := SplitFare(fare, bps)
			if fee+payment != fare {
				t.Fatalf("SplitFare(%d, %d): %d+%d != fare", fare, bps, fee, payment)
			}
			if fee < 0 || payment < 0 {
				t.Fatalf("SplitFare(%d, %d): negative part", fare, bps)
			}
		}
	}
}

func TestValidRole(t *testing.T) {
	t.Parallel()

	if !ValidRole(RoleRider) || !ValidRole(RoleDriver) {
		t.Error("known roles must be valid")
	}
	if ValidRole("") || ValidRole("ADMIN") {
		t.Error("unknown roles must be invalid")
	}
}
