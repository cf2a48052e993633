package types

import "testing"

func TestRupiahDisplay(t *testing.T) {
	t.Parallel()

	cases := map[Rupiah]string{
		0:        "Rp0",
		950:      "Rp950",
		50000:    "Rp50.000",
		100000:   "Rp100.000",
		1250000:  "Rp1.250.000",
		-75000:   "-Rp75.000",
		10000000: "Rp10.000.000",
	}
	for amount, want := range cases {
		if got := amount.Display(); got != want {
			t.Fatalf("Display(%d) = %q, want %q", int64(amount), got, want)
		}
	}
}
