package viewmodel

import (
	"strings"
	"testing"

	"github.com/lbtop/lbtop/internal/statproto"
)

// statFields mirrors the statproto schema's column order; kept local since
// the schema itself is unexported across package boundaries.
var statFields = []string{
	"pxname", "svname", "qcur", "qmax", "scur", "smax", "slim", "stot",
	"bin", "bout", "dreq", "dresp", "ereq", "econ", "eresp", "wretr", "wredis",
	"status", "weight", "act", "bck", "chkfail", "chkdown", "lastchg", "downtime",
	"qlimit", "pid", "iid", "sid", "throttle", "lbtot", "tracked", "type",
	"rate", "rate_lim", "rate_max", "check_status", "check_code", "check_duration",
	"hrsp_1xx", "hrsp_2xx", "hrsp_3xx", "hrsp_4xx", "hrsp_5xx", "hrsp_other",
	"hanafail", "req_rate", "req_rate_max", "req_tot", "cli_abrt", "srv_abrt",
}

var statStringFields = map[string]bool{
	"pxname": true, "svname": true, "status": true, "tracked": true, "check_status": true,
}

func mkStatRow(fields map[string]string) string {
	cells := make([]string, len(statFields))
	for i, name := range statFields {
		if v, ok := fields[name]; ok {
			cells[i] = v
			continue
		}
		if !statStringFields[name] {
			cells[i] = "0"
		}
	}
	// HAProxy terminates every CSV line with a trailing separator.
	return strings.Join(cells, ",") + ","
}

func rec(fields map[string]string) *statproto.ServiceRecord {
	lines := []string{mkStatRow(fields)}
	res, err := statproto.ParseStat(func(yield func(string) bool) {
		for _, l := range lines {
			if !yield(l) {
				return
			}
		}
	})
	if err != nil {
		panic(err)
	}
	for _, services := range res.Table {
		for _, r := range services {
			return r
		}
	}
	panic("no record parsed")
}

func TestRowTrimsAndPads(t *testing.T) {
	mode := Modes()[ModeStatus]
	SyncColumns(mode.Columns, ScreenXMin)
	r := rec(map[string]string{
		"pxname": "web", "svname": "a-very-long-server-name-indeed", "iid": "1", "sid": "1", "type": "2",
		"weight": "1", "status": "UP", "check_status": "L7OK",
	})
	line := Row(mode, r)
	if !strings.Contains(line, "UP") {
		t.Fatalf("expected status in row, got %q", line)
	}
}

func TestRowAppliesOndemandOnlyWhenOverflowing(t *testing.T) {
	mode := Modes()[ModeStatus]
	SyncColumns(mode.Columns, ScreenXMin)
	r := rec(map[string]string{
		"pxname": "web", "svname": "app1", "iid": "1", "sid": "1", "type": "2",
		"qcur": "5",
	})
	line := Row(mode, r)
	if !strings.Contains(line, "5") {
		t.Fatalf("expected raw qcur value to pass through unprefixed, got %q", line)
	}
}

func TestScreenLinesOrdersFrontendServersBackend(t *testing.T) {
	mode := Modes()[ModeStatus]
	SyncColumns(mode.Columns, ScreenXMin)

	lines := linesOfRows(
		mkStatRow(map[string]string{"pxname": "web", "svname": "FRONTEND", "iid": "1", "sid": "0", "type": "0"}),
		mkStatRow(map[string]string{"pxname": "web", "svname": "app2", "iid": "1", "sid": "2", "type": "2"}),
		mkStatRow(map[string]string{"pxname": "web", "svname": "app1", "iid": "1", "sid": "1", "type": "2"}),
		mkStatRow(map[string]string{"pxname": "web", "svname": "BACKEND", "iid": "1", "sid": "0", "type": "1"}),
	)
	res, err := statproto.ParseStat(lines)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	screen := ScreenLines(mode, res.Table)
	if len(screen) != 5 {
		t.Fatalf("expected header + frontend + 2 servers + backend, no trailing blank = 5 lines, got %d: %+v", len(screen), screen)
	}
	if !screen[0].Bold || !strings.Contains(screen[0].Text, ">>> web") {
		t.Fatalf("expected bold proxy header first, got %+v", screen[0])
	}
}

func linesOfRows(rows ...string) func(yield func(string) bool) {
	return func(yield func(string) bool) {
		for _, r := range rows {
			if !yield(r) {
				return
			}
		}
	}
}
