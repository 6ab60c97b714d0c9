package termsize

import "testing"

func TestClampBounds(t *testing.T) {
	cases := []struct {
		w, h     int
		wantW    int
		wantH    int
	}{
		{40, 10, 78, 20},
		{300, 300, 200, 100},
		{100, 50, 100, 50},
	}
	for _, c := range cases {
		got := Clamp(c.w, c.h)
		if got.Width != c.wantW || got.Height != c.wantH {
			t.Errorf("Clamp(%d,%d) = %+v, want {%d %d}", c.w, c.h, got, c.wantW, c.wantH)
		}
	}
}
