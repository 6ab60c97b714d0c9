// Package ui is the Screen Coordinator: a bubbletea Elm-architecture model
// driving the six display modes, the embedded CLI, and the periodic
// refresh of the Data Plane (§4.6-§4.8).
package ui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lbtop/lbtop/internal/dataplane"
	"github.com/lbtop/lbtop/internal/logger"
	"github.com/lbtop/lbtop/internal/statproto"
	"github.com/lbtop/lbtop/internal/termsize"
	"github.com/lbtop/lbtop/internal/viewmodel"
)

// tickMsg drives the periodic `show info`/`show stat` poll (§5's "periodic
// poll" leg of the main loop).
type tickMsg time.Time

// statLimitWarning is appended to every stat screen once the service cap is
// hit, verbatim per §4.3/§4.7/§8 (grounded on the original's
// HAPROXY_STAT_LIMIT_WARNING, hatopdemo.py:1118).
var statLimitWarning = []string{
	"Warning: You have reached the stat parser limit! (100)",
	"Use --filter to parse specific service stats only.",
}

// fatalMsg terminates the program with the given error, mapped to an exit
// code by internal/lberr.
type fatalMsg struct{ err error }

// Config carries the validated startup parameters from cmd/lbtop.
type Config struct {
	UpdateInterval time.Duration
	InitialMode    viewmodel.ModeID
	ReadOnly       bool
}

// Model is the Screen Coordinator's display state (§3 "Display State").
type Model struct {
	plane  *dataplane.Plane
	cfg    Config
	theme  Theme
	render *Renderer

	width, height int

	mode     viewmodel.ModeID
	prevMode viewmodel.ModeID
	modes    map[viewmodel.ModeID]*Mode

	cursor int // index into the current mode's flattened row list
	scroll int

	hotkeys  bool // overlay shown for the cursor's selected service
	escPending bool

	message string // transient footer message (warning/error banner)

	editor     *editor
	cliOut     *ringBuffer
	cliScroll  int

	fatalErr error
}

// Mode wraps a viewmodel.Mode with the synced screen lines for the current
// stat snapshot, refreshed on every data update.
type Mode struct {
	*viewmodel.Mode
	lines []selectableLine
}

// selectableLine pairs a rendered row with the record it came from (nil for
// proxy-header/blank spacer lines), so cursor movement can skip them.
type selectableLine struct {
	viewmodel.Line
	rec *statproto.ServiceRecord
}

func NewModel(plane *dataplane.Plane, cfg Config) Model {
	theme := DefaultTheme()
	m := Model{
		plane:  plane,
		cfg:    cfg,
		theme:  theme,
		render: NewRenderer(theme),
		mode:   cfg.InitialMode,
		editor: newEditor(),
		cliOut: newRingBuffer(cliMaxLines),
	}
	m.modes = map[viewmodel.ModeID]*Mode{}
	for id, vm := range viewmodel.Modes() {
		m.modes[id] = &Mode{Mode: vm}
	}
	m.cliOut.append(cliWelcomeText)
	size := termsize.Probe()
	m.width, m.height = size.Width, size.Height
	m.syncColumns()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.refreshCmd(), tea.EnterAltScreen)
}

func (m Model) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		return m.doRefresh()
	}
}

type refreshMsg struct {
	warnings []dataplane.Warning
	err      error
}

func (m Model) doRefresh() tea.Msg {
	if err := m.plane.UpdateInfo(); err != nil {
		return refreshMsg{err: err}
	}
	warnings, err := m.plane.UpdateStat()
	return refreshMsg{warnings: warnings, err: err}
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = termsize.Clamp(msg.Width, msg.Height).Width, termsize.Clamp(msg.Width, msg.Height).Height
		m.syncColumns()
		return m, nil

	case tickMsg:
		return m, m.refreshCmd()

	case refreshMsg:
		return m.handleRefresh(msg)

	case fatalMsg:
		m.fatalErr = msg.err
		return m, tea.Quit

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// handleRefresh applies a poll result. Every error returned by the Data
// Plane (protocol failure, garbage CSV field, a stale registered filter) is
// fatal per §7 — there is no partial/degraded display state to fall back
// to once a refresh can no longer be trusted. Non-fatal conditions (no
// stat data yet, a proxy/service count change) arrive as Warnings inside a
// successful refresh instead of as an error.
func (m Model) handleRefresh(msg refreshMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		logger.Error("refresh failed", "error", msg.err)
		return m, func() tea.Msg { return fatalMsg{err: msg.err} }
	}
	m.message = ""
	for _, w := range msg.warnings {
		m.message = w.Text
		logger.Warn("data plane warning", "text", w.Text)
	}
	m.rebuildLines()
	return m, tickCmd(m.cfg.UpdateInterval)
}

func (m *Model) syncColumns() {
	for _, mode := range m.modes {
		viewmodel.SyncColumns(mode.Columns, m.width)
	}
}

func (m *Model) rebuildLines() {
	stat := m.plane.Stat()
	if stat == nil {
		return
	}
	for id, mode := range m.modes {
		if id == viewmodel.ModeHelp || id == viewmodel.ModeCLI {
			continue
		}
		screen := viewmodel.ScreenLines(mode.Mode, stat.Table)
		lines := make([]selectableLine, 0, len(screen))
		recIdx := recordsByLine(mode.Mode, stat.Table)
		for i, l := range screen {
			lines = append(lines, selectableLine{Line: l, rec: recIdx[i]})
		}
		if stat.Overflowed {
			lines = append(lines, selectableLine{})
			for _, w := range statLimitWarning {
				lines = append(lines, selectableLine{Line: viewmodel.Line{Text: w}})
			}
		}
		mode.lines = lines
	}
}

// recordsByLine re-derives which ServiceRecord (if any) backs each rendered
// line, in the same order ScreenLines produced them, so the cursor can
// select a record without ScreenLines itself needing to expose internals.
func recordsByLine(mode *viewmodel.Mode, table statproto.ProxyTable) map[int]*statproto.ServiceRecord {
	out := map[int]*statproto.ServiceRecord{}
	idx := 0
	iids := sortedIids(table)
	for _, iid := range iids {
		services := table[iid]
		frontend := services["FRONTEND"]
		backend := services["BACKEND"]
		var body []*statproto.ServiceRecord
		if frontend != nil {
			body = append(body, frontend)
		}
		for _, k := range sortedServerKeys(services) {
			body = append(body, services[k])
		}
		if backend != nil {
			body = append(body, backend)
		}
		if len(body) == 0 {
			continue
		}
		idx++ // proxy header line
		for _, rec := range body {
			out[idx] = rec
			idx++
		}
		idx++ // blank spacer
	}
	return out
}

func sortedIids(table statproto.ProxyTable) []int {
	iids := make([]int, 0, len(table))
	for iid := range table {
		iids = append(iids, iid)
	}
	sort.Ints(iids)
	return iids
}

func sortedServerKeys(services map[string]*statproto.ServiceRecord) []string {
	keys := make([]string, 0, len(services))
	for k := range services {
		if k == "FRONTEND" || k == "BACKEND" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, _ := strconv.Atoi(keys[i])
		b, _ := strconv.Atoi(keys[j])
		return a < b
	})
	return keys
}

// Err returns the fatal error that ended the program, if any, for
// cmd/lbtop to map to a process exit code via internal/lberr.
func (m Model) Err() error { return m.fatalErr }

func (m Model) currentMode() *Mode { return m.modes[m.mode] }

func (m Model) selectedRecord() *statproto.ServiceRecord {
	mode := m.currentMode()
	if m.cursor < 0 || m.cursor >= len(mode.lines) {
		return nil
	}
	return mode.lines[m.cursor].rec
}

func (m Model) View() string {
	if m.fatalErr != nil {
		return fmt.Sprintf("lbtop: %v\n", m.fatalErr)
	}

	stat := m.plane.Stat()
	proxies, services := 0, 0
	if stat != nil {
		proxies, services = stat.ProxyCount, stat.ServiceCount
	}

	header := m.render.Header(m.width, m.plane.Info(), proxies, services)
	tabs := m.render.ModeTabs(m.mode)

	var body string
	switch m.mode {
	case viewmodel.ModeHelp:
		body = m.viewHelp()
	case viewmodel.ModeCLI:
		body = m.viewCLI()
	default:
		body = m.viewStat()
	}

	selected := ""
	if rec := m.selectedRecord(); rec != nil {
		selected = fmt.Sprintf("[#%d/#%d]", rec.Iid(), rec.Sid())
	}
	footer := m.render.Footer(m.width, m.cfg.ReadOnly, m.message, selected)

	out := header + "\n" + tabs + "\n" + body
	if m.hotkeys {
		out += "\n" + m.viewHotkeyOverlay()
	}
	return out + "\n" + footer
}

// viewHelp renders helpLines starting at the scroll offset held in
// m.cursor, clamped to a window that leaves the last line reachable.
func (m Model) viewHelp() string {
	span := m.height - 4
	if span < 1 {
		span = 1
	}
	start := m.cursor
	if start > len(helpLines)-1 {
		start = len(helpLines) - 1
	}
	if start < 0 {
		start = 0
	}
	end := start + span
	if end > len(helpLines) {
		end = len(helpLines)
	}
	return strings.Join(helpLines[start:end], "\n")
}

func (m Model) viewStat() string {
	mode := m.currentMode()
	out := m.theme.ColumnHeader.Render(viewmodel.Head(mode.Mode)) + "\n"
	for i, l := range mode.lines {
		line := l.Text
		if l.Bold {
			line = m.theme.ProxyHeader.Render(line)
		}
		if i == m.cursor && l.rec != nil {
			line = m.theme.CursorRow.Render(l.Text)
		}
		out += line + "\n"
	}
	return out
}

func (m Model) viewCLI() string {
	span := m.height - 4
	if span < 1 {
		span = 1
	}
	lines := m.cliScreenlines()

	vmax := len(lines) - m.cliScroll
	if vmax > len(lines) {
		vmax = len(lines)
	}
	vmin := vmax - span
	if vmin < 0 {
		vmin = 0
	}
	out := ""
	for _, l := range lines[vmin:vmax] {
		out += l + "\n"
	}
	vminE, vmaxE := m.editor.viewport(m.width - 6)
	visible := string(m.editor.buf[vminE:vmaxE])
	prompt := m.theme.CLIPrompt.Render("> ") + visible
	return out + prompt
}

// cliScreenlines word-wraps the CLI output buffer to the current terminal
// width, mirroring the original's ScreenCLI.update_screenlines
// (hatopdemo.py:650), which wraps obuf into screenlines whenever a line
// overruns the pane width.
func (m Model) cliScreenlines() []string {
	width := m.width - 2
	if width < 1 {
		width = 1
	}
	var out []string
	for _, l := range m.cliOut.lines() {
		if len(l) <= width {
			out = append(out, l)
			continue
		}
		out = append(out, wordWrap(l, width)...)
	}
	return out
}

// wordWrap greedily wraps s into lines no longer than width, breaking on
// word boundaries. A single word longer than width is placed on its own
// (overlong) line rather than split mid-word.
func wordWrap(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	cur := words[0]
	for _, w := range words[1:] {
		if len(cur)+1+len(w) > width {
			lines = append(lines, cur)
			cur = w
			continue
		}
		cur += " " + w
	}
	lines = append(lines, cur)
	return lines
}

func (m Model) viewHotkeyOverlay() string {
	return m.theme.HotkeyOverlay.Render(
		"ENTER/SPACE select  F4 reset  F5/F6 -10/-1  F7/F8 +1/+10  F9 enable  F10 disable")
}
