// Package termsize clamps terminal dimensions to the rectangle the view
// model is allowed to render into (§4.6), and probes the controlling
// terminal's size before bubbletea's first WindowSizeMsg arrives.
package termsize

import (
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/lbtop/lbtop/internal/viewmodel"
)

// Size is a clamped (width, height) pair, bounded to
// [viewmodel.ScreenXMin, viewmodel.ScreenXMax] x [viewmodel.ScreenYMin, maxHeight].
type Size struct {
	Width, Height int
}

const maxHeight = 100

// Clamp bounds a raw (w, h) pair to the supported rectangle.
func Clamp(w, h int) Size {
	if w < viewmodel.ScreenXMin {
		w = viewmodel.ScreenXMin
	}
	if w > viewmodel.ScreenXMax {
		w = viewmodel.ScreenXMax
	}
	if h < viewmodel.ScreenYMin {
		h = viewmodel.ScreenYMin
	}
	if h > maxHeight {
		h = maxHeight
	}
	return Size{Width: w, Height: h}
}

// Probe reads the controlling terminal's current size via stdout's file
// descriptor, falling back to the minimum supported size when stdout isn't
// a terminal (e.g. under a test harness or when piped).
func Probe() Size {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return Size{Width: viewmodel.ScreenXMin, Height: viewmodel.ScreenYMin}
	}
	return Clamp(w, h)
}
