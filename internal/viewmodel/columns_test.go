package viewmodel

import "testing"

func TestSyncColumnsClampsToScreenBounds(t *testing.T) {
	cols := Modes()[ModeStatus].Columns
	SyncColumns(cols, 40) // below ScreenXMin
	total := 0
	for _, c := range cols {
		if c.Width < c.MinWidth {
			t.Fatalf("column %s width %d below minwidth %d", c.Name, c.Width, c.MinWidth)
		}
		total += c.Width
	}
	if total == 0 {
		t.Fatal("expected nonzero total width")
	}
}

func TestSyncColumnsDistributesExcess(t *testing.T) {
	cols := Modes()[ModeStatus].Columns
	minTotal := 0
	for _, c := range cols {
		minTotal += c.MinWidth
	}
	SyncColumns(cols, ScreenXMin+len(cols)*2)
	total := 0
	for _, c := range cols {
		total += c.Width
		if c.MaxWidth > 0 && c.Width > c.MaxWidth {
			t.Fatalf("column %s exceeded maxwidth: %d > %d", c.Name, c.Width, c.MaxWidth)
		}
	}
	if total <= minTotal {
		t.Fatalf("expected wider terminal to grow unbounded columns: total=%d minTotal=%d", total, minTotal)
	}
}

func TestSyncColumnsClampsOverscreenMax(t *testing.T) {
	cols := Modes()[ModeTraffic].Columns
	SyncColumns(cols, 10000)
	for _, c := range cols {
		if c.MaxWidth > 0 && c.Width > c.MaxWidth {
			t.Fatalf("column %s exceeded maxwidth under oversized terminal", c.Name)
		}
	}
}

func TestCellAlignment(t *testing.T) {
	if got := Cell(6, AlignLeft, "ab"); got != "ab    " {
		t.Errorf("left align = %q", got)
	}
	if got := Cell(6, AlignRight, "ab"); got != "    ab" {
		t.Errorf("right align = %q", got)
	}
	if got := Cell(6, AlignCenter, "ab"); got != "  ab  " {
		t.Errorf("center align = %q", got)
	}
	if got := Cell(1, AlignLeft, "abcdef"); got != "abcdef" {
		t.Errorf("overlong value should pass through unpadded, got %q", got)
	}
}
