package ui

import "strings"

// helpLines is helpText split for scrolling; computed once at package init.
var helpLines = strings.Split(strings.TrimRight(helpText, "\n"), "\n")

// helpText is the full-page content rendered in HELP mode (mode id 0).
// Scrollable with the same movement keys as the stat modes.
const helpText = `lbtop - an interactive terminal dashboard for a load-balancer admin socket

Display modes:

ID  Mode    Description

1   STATUS  Health, session and queue statistics
2   TRAFFIC Connection/request rates and traffic counters
3   HTTP    HTTP response-code breakdown
4   ERRORS  Health checks, error counters, downtime
5   CLI     Embedded command line for the admin socket

Keys:

Key             Action

Hh?             Show this help screen
CTRL-C / Qq     Quit

TAB             Cycle mode forwards
SHIFT-TAB       Cycle mode backwards
ALT-n / ESC-n   Jump to mode n
ESC-ESC         Jump to the previous mode

UP/DOWN/PGUP/PGDOWN/HOME/END   Scroll the current view
ENTER           Show the hotkey menu for the selected service
SPACE           Copy "pxname/svname" of the selected service to the CLI

Hotkeys (STATUS/TRAFFIC/HTTP/ERRORS, read-write mode only):

F4   Restore initial server weight
F5   Decrease server weight by 10
F6   Decrease server weight by 1
F7   Increase server weight by 1
F8   Increase server weight by 10
F9   Enable server (return from maintenance)
F10  Disable server (put into maintenance)

Header fields:

Node        configured name of the load-balancer node
Uptime      runtime since the process was started
Proxies     number of configured proxies
Services    number of configured services matching the active filters
`

// cliWelcomeText seeds the CLI pane's output buffer at startup, mirroring
// the original embedded shell's greeting.
const cliWelcomeText = `             Welcome to the embedded admin socket shell!

                  Type "help" to get a command reference
`
