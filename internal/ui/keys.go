package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/lbtop/lbtop/internal/cliexec"
	"github.com/lbtop/lbtop/internal/logger"
	"github.com/lbtop/lbtop/internal/viewmodel"
)

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := msg.String()

	if m.escPending {
		m.escPending = false
		if handled, next := m.handleEscDigit(s); handled {
			return next, nil
		}
	}
	if msg.Alt {
		if handled, next := m.handleEscDigit(strings.TrimPrefix(s, "alt+")); handled {
			return next, nil
		}
	}

	switch s {
	case "ctrl+c":
		return m, tea.Quit
	case "q", "Q":
		if m.mode != viewmodel.ModeCLI {
			return m, tea.Quit
		}
	case "esc":
		m.escPending = true
		return m, nil
	case "h", "H", "?":
		if m.mode != viewmodel.ModeCLI {
			m.switchMode(viewmodel.ModeHelp)
			return m, nil
		}
	case "tab":
		m.cycleMode(1)
		return m, nil
	case "shift+tab":
		m.cycleMode(-1)
		return m, nil
	}

	if m.hotkeys {
		return m.handleHotkeyOverlay(s)
	}

	switch m.mode {
	case viewmodel.ModeHelp:
		return m.handleHelpKey(s)
	case viewmodel.ModeCLI:
		return m.handleCLIKey(msg)
	default:
		return m.handleStatKey(s)
	}
}

// handleEscDigit resolves ALT-n / ESC-n direct mode switch and ESC-ESC
// jump-to-previous, restored per SPEC_FULL.md §11.3.
func (m Model) handleEscDigit(s string) (bool, Model) {
	switch s {
	case "esc":
		m.switchMode(m.prevMode)
		return true, m
	case "0":
		m.switchMode(viewmodel.ModeHelp)
		return true, m
	case "1":
		m.switchMode(viewmodel.ModeStatus)
		return true, m
	case "2":
		m.switchMode(viewmodel.ModeTraffic)
		return true, m
	case "3":
		m.switchMode(viewmodel.ModeHTTP)
		return true, m
	case "4":
		m.switchMode(viewmodel.ModeErrors)
		return true, m
	case "5":
		m.switchMode(viewmodel.ModeCLI)
		return true, m
	}
	return false, m
}

// switchMode moves to mode id, refusing to ever enter CLI mode on a
// read-only socket (mirrors the original's switch_mode guard,
// hatopdemo.py:1049) and resyncing the target mode's columns and cursor
// visibility the way the original's mode.sync(self) does before the switch
// takes effect.
func (m *Model) switchMode(id viewmodel.ModeID) {
	if id == viewmodel.ModeCLI && m.cfg.ReadOnly {
		return
	}
	if id == m.mode {
		return
	}
	m.prevMode = m.mode
	m.mode = id
	m.hotkeys = false
	m.syncColumns()
	m.cursor = 0
	m.moveCursor(0)
}

// cycleMode wraps within [STATUS..border], where border is CLI(5) unless
// the socket is read-only (then ERRORS(4)), and never lands on HELP(0).
// Grounded on the original's cycle_mode (hatopdemo.py:1068).
func (m *Model) cycleMode(dir int) {
	border := viewmodel.ModeCLI
	if m.cfg.ReadOnly {
		border = viewmodel.ModeErrors
	}
	cur := m.mode
	var next viewmodel.ModeID
	switch {
	case cur == viewmodel.ModeHelp:
		next = viewmodel.ModeStatus
	case cur == viewmodel.ModeStatus && dir < 0:
		next = border
	case cur == border && dir > 0:
		next = viewmodel.ModeStatus
	default:
		next = viewmodel.ModeID(int(cur) + dir)
	}
	m.switchMode(next)
}

// handleHelpKey scrolls the static HELP text. m.cursor doubles as a line
// offset here (HELP has no selectable records, so it never collides with
// the stat modes' cursor-over-records use of the same field).
func (m Model) handleHelpKey(s string) (tea.Model, tea.Cmd) {
	switch s {
	case "up":
		m.cursor--
	case "down":
		m.cursor++
	case "pgup":
		m.cursor -= 10
	case "pgdown":
		m.cursor += 10
	case "home":
		m.cursor = 0
	case "end":
		m.cursor = len(helpLines)
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if max := len(helpLines) - 1; m.cursor > max {
		m.cursor = max
	}
	return m, nil
}

func (m Model) handleStatKey(s string) (tea.Model, tea.Cmd) {
	mode := m.currentMode()
	switch s {
	case "up":
		m.moveCursor(-1)
	case "down":
		m.moveCursor(1)
	case "pgup":
		m.moveCursor(-10)
	case "pgdown":
		m.moveCursor(10)
	case "home":
		m.cursor = 0
	case "end":
		m.cursor = len(mode.lines) - 1
	case "enter":
		if m.selectedRecord() != nil {
			m.hotkeys = true
		}
	case " ":
		if rec := m.selectedRecord(); rec != nil {
			if m.editor.insert(fmt.Sprintf("%s/%s", rec.Pxname(), rec.Svname())) {
				m.switchMode(viewmodel.ModeCLI)
			}
		}
	}
	return m, nil
}

func (m *Model) moveCursor(n int) {
	mode := m.currentMode()
	m.cursor += n
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(mode.lines) {
		m.cursor = len(mode.lines) - 1
	}
	for m.cursor >= 0 && m.cursor < len(mode.lines) && mode.lines[m.cursor].rec == nil {
		if n >= 0 {
			m.cursor++
		} else {
			m.cursor--
		}
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// handleHotkeyOverlay dispatches the per-service F4-F10 admin actions
// once ENTER has opened the overlay for the selected
// service. Disabled entirely in read-only mode.
func (m Model) handleHotkeyOverlay(s string) (tea.Model, tea.Cmd) {
	if s == "esc" || s == "enter" {
		m.hotkeys = false
		return m, nil
	}
	if m.cfg.ReadOnly {
		return m, nil
	}
	rec := m.selectedRecord()
	if rec == nil || rec.Iid() <= 0 || rec.Sid() <= 0 || rec.Pxname() == "" || rec.Svname() == "" {
		return m, nil
	}
	target := fmt.Sprintf("%s/%s", rec.Pxname(), rec.Svname())

	var cmd string
	switch s {
	case "f4":
		cmd = fmt.Sprintf("set weight %s 100%%", target)
	case "f5":
		if rec.Weight() <= 0 {
			return m, nil
		}
		cmd = fmt.Sprintf("set weight %s %d", target, max(0, rec.Weight()-10))
	case "f6":
		if rec.Weight() <= 0 {
			return m, nil
		}
		cmd = fmt.Sprintf("set weight %s %d", target, max(0, rec.Weight()-1))
	case "f7":
		if rec.Weight() >= 256 {
			return m, nil
		}
		cmd = fmt.Sprintf("set weight %s %d", target, min(256, rec.Weight()+1))
	case "f8":
		if rec.Weight() >= 256 {
			return m, nil
		}
		cmd = fmt.Sprintf("set weight %s %d", target, min(256, rec.Weight()+10))
	case "f9":
		cmd = fmt.Sprintf("enable server %s", target)
	case "f10":
		cmd = fmt.Sprintf("disable server %s", target)
	default:
		return m, nil
	}

	m.hotkeys = false
	m.message = "updating..."
	return m, m.runAdminCmd(cmd)
}

// runAdminCmd issues a single admin command and logs it under a generated
// cmd_id, so a run of several CLI/hotkey commands can be correlated back to
// their replies in the log even though the Data Plane itself logs nothing.
func (m Model) runAdminCmd(cmd string) tea.Cmd {
	cmdID := uuid.New().String()
	return func() tea.Msg {
		logger.Info("admin command", "cmd_id", cmdID, "cmd", cmd)
		lines, err := m.plane.Execute(cmd)
		if err != nil {
			logger.Error("admin command failed", "cmd_id", cmdID, "cmd", cmd, "error", err)
		}
		m.cliOut.append(fmt.Sprintf("* %s", time.Now().Format(time.RFC3339)))
		m.cliOut.append("> " + cmd)
		m.cliOut.appendAll(lines)
		m.cliOut.append("")
		return m.doRefresh()
	}
}

func (m Model) handleCLIKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		return m.executeCLI()
	case tea.KeyLeft:
		m.editor.moveBy(-1)
	case tea.KeyRight:
		m.editor.moveBy(1)
	case tea.KeyHome:
		m.editor.moveHome()
	case tea.KeyEnd:
		m.editor.moveEnd()
	case tea.KeyDelete:
		m.editor.deleteRight()
	case tea.KeyBackspace:
		m.editor.deleteLeft()
	case tea.KeyUp:
		m.editor.historyPrev()
	case tea.KeyDown:
		m.editor.historyNext()
	case tea.KeyPgUp:
		m.scrollCLI(10)
	case tea.KeyPgDown:
		m.scrollCLI(-10)
	case tea.KeyRunes, tea.KeySpace:
		m.editor.insert(msg.String())
	}
	return m, nil
}

// scrollCLI adjusts cliScroll, the number of wrapped screenlines the CLI
// pane's view is offset up from the bottom (0 == tailing the latest
// output, matching the original's ypos == len(screenlines) invariant,
// hatopdemo.py:650). Clamped so it can never scroll past the top of the
// buffer.
func (m *Model) scrollCLI(n int) {
	m.cliScroll += n
	if m.cliScroll < 0 {
		m.cliScroll = 0
	}
	if max := len(m.cliScreenlines()) - 1; m.cliScroll > max {
		m.cliScroll = max
	}
	if m.cliScroll < 0 {
		m.cliScroll = 0
	}
}

// executeCLI validates and runs the command line currently in the editor,
// mirroring the original's ScreenCLI.execute(): an empty line just prints
// a marker, each ';'-separated statement is checked against the denylist
// before anything is sent, and the whole line is rejected (nothing sent)
// if any statement fails.
func (m Model) executeCLI() (tea.Model, tea.Cmd) {
	cmdline := m.editor.text()
	if cmdline == "" {
		m.cliOut.append(fmt.Sprintf("- %s %s", time.Now().Format(time.RFC3339), strings.Repeat("-", 50)))
		m.cliOut.append("")
		m.cliScroll = 0
		return m, nil
	}

	if ok, rejected := cliexec.Validate(cmdline); !ok {
		m.cliOut.append("* command not allowed: " + rejected)
		m.cliOut.append("")
		m.editor.commit()
		m.cliScroll = 0
		return m, nil
	}

	m.editor.commit()
	m.cliScroll = 0
	return m, m.runAdminCmd(cmdline)
}
