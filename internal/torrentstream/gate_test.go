package torrentstream

import "testing"

func TestPercent(t *testing.T) {
	cases := []struct {
		part, total int64
		want        float64
	}{
		{0, 1000, 0},
		{500, 1000, 50},
		{1000, 1000, 100},
		{100, 0, 0},
	}
	for _, tc := range cases {
		if got := percent(tc.part, tc.total); got != tc.want {
			t.Errorf("percent(%d, %d) = %v, want %v", tc.part, tc.total, got, tc.want)
		}
	}
}
