package eh

import "testing"

func TestMsecToClock(t *testing.T) {
	cases := []struct {
		msec, clocksPerSec, want uint64
	}{
		{0, 1000, 0},
		{1, 1000, 1},
		{1000, 1000, 1000},
		{1, 1_000_000, 1000},
		{1, 3, 1}, // rounds a fractional tick up to the minimum of 1
	}
	for _, c := range cases {
		if got := MsecToClock(c.msec, c.clocksPerSec); got != c.want {
			t.Errorf("MsecToClock(%d, %d) = %d, want %d", c.msec, c.clocksPerSec, got, c.want)
		}
	}
}

func TestClockToMsecRoundTrip(t *testing.T) {
	const clocksPerSec = 1_000_000
	for _, msec := range []uint64{0, 1, 7, 1000, 60_000} {
		clock := MsecToClock(msec, clocksPerSec)
		got := ClockToMsec(clock, clocksPerSec)
		if msec == 0 {
			if got != 0 {
				t.Errorf("ClockToMsec(MsecToClock(0)) = %d, want 0", got)
			}
			continue
		}
		if got != msec {
			t.Errorf("round trip for %d msec produced %d", msec, got)
		}
	}
}

func TestUsecClockRoundTrip(t *testing.T) {
	const clocksPerSec = 1_000_000
	usec := uint64(2500)
	clock := UsecToClock(usec, clocksPerSec)
	if clock != usec {
		t.Fatalf("UsecToClock(%d) = %d, want %d at 1:1 tick rate", usec, clock, usec)
	}
	if got := ClockToUsec(clock, clocksPerSec); got != usec {
		t.Fatalf("ClockToUsec(%d) = %d, want %d", clock, got, usec)
	}
}
