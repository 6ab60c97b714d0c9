package ui

import (
	"fmt"
	"strings"

	"github.com/lbtop/lbtop/internal/statproto"
	"github.com/lbtop/lbtop/internal/viewmodel"
)

// Renderer draws the chrome around the scrollable body: the header bar
// (node/uptime/proxy+service counts), the mode tab strip, and the footer
// status line. It holds no mutable state of its own.
type Renderer struct {
	theme Theme
}

func NewRenderer(theme Theme) *Renderer {
	return &Renderer{theme: theme}
}

// Header renders the reverse-video top bar: node name, uptime, process
// counts, left-aligned; the haproxy pid right-aligned — restored per
// SPEC_FULL.md §11.2 ("Header line fields").
func (r *Renderer) Header(width int, info statproto.InfoSnapshot, proxies, services int) string {
	left := fmt.Sprintf(" %s  up %s  node:%s  procs:%s  tasks:%s  queue:%s  proxies:%d  services:%d",
		valueOr(info, "software_name", "lbtop"),
		valueOr(info, "uptime", "-"),
		valueOr(info, "node", "-"),
		valueOr(info, "nproc", "-"),
		valueOr(info, "tasks", "-"),
		valueOr(info, "runqueue", "-"),
		proxies, services)
	right := fmt.Sprintf("pid:%s ", valueOr(info, "pid", "-"))
	return r.theme.HeaderBar.Render(padBar(width, left, right))
}

func valueOr(info statproto.InfoSnapshot, key, fallback string) string {
	if info == nil {
		return fallback
	}
	if v, ok := info[key]; ok && v != "" {
		return v
	}
	return fallback
}

// ModeTabs renders the six mode labels, marking the active one.
func (r *Renderer) ModeTabs(active viewmodel.ModeID) string {
	var b strings.Builder
	for id := viewmodel.ModeHelp; id <= viewmodel.ModeCLI; id++ {
		label := fmt.Sprintf(" %d:%s ", int(id), id.String())
		if id == active {
			b.WriteString(r.theme.ModeActive.Render(label))
		} else {
			b.WriteString(r.theme.ModeInactive.Render(label))
		}
	}
	return b.String()
}

// Footer renders the bottom status bar: read-only marker, pending
// warning/error text, and the selected service identifier bottom-right.
func (r *Renderer) Footer(width int, readOnly bool, message string, selected string) string {
	left := " "
	if readOnly {
		left += "[read-only] "
	}
	left += message
	right := selected
	return r.theme.FooterBar.Render(padBar(width, left, right))
}

func padBar(width int, left, right string) string {
	if width < len(left)+len(right)+1 {
		width = len(left) + len(right) + 1
	}
	pad := width - len(left) - len(right)
	return left + strings.Repeat(" ", pad) + right
}
