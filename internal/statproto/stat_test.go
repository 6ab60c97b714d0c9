package statproto

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"testing"
)

func mkRow(overrides map[string]string) string {
	cells := make([]string, NumFields)
	for i, f := range schema {
		if v, ok := overrides[f.name]; ok {
			cells[i] = v
			continue
		}
		if f.kind == kindInt {
			cells[i] = "0"
		}
	}
	// HAProxy terminates every CSV line with a trailing separator.
	return strings.Join(cells, ",") + ","
}

func linesOf(rows ...string) func(yield func(string) bool) {
	return func(yield func(string) bool) {
		for _, r := range rows {
			if !yield(r) {
				return
			}
		}
	}
}

func TestParseStatBasicProxy(t *testing.T) {
	rows := []string{
		"# comment preamble",
		"",
		mkRow(map[string]string{"pxname": "web", "svname": "FRONTEND", "iid": "1", "sid": "0", "type": "0"}),
		mkRow(map[string]string{"pxname": "web", "svname": "app1", "iid": "1", "sid": "1", "type": "2"}),
		mkRow(map[string]string{"pxname": "web", "svname": "app2", "iid": "1", "sid": "2", "type": "2"}),
		mkRow(map[string]string{"pxname": "web", "svname": "BACKEND", "iid": "1", "sid": "0", "type": "1"}),
	}

	res, err := ParseStat(linesOf(rows...))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if res.ProxyCount != 1 || res.ServiceCount != 4 {
		t.Fatalf("unexpected counts: %+v", res)
	}
	px := res.Table[1]
	if px["FRONTEND"] == nil || px["BACKEND"] == nil || px["1"] == nil || px["2"] == nil {
		t.Fatalf("missing expected keys: %v", keysOf(px))
	}
	if px["FRONTEND"].Type() != TypeFrontend {
		t.Fatalf("frontend type mismatch")
	}
}

func keysOf(m map[string]*ServiceRecord) []string {
	var ks []string
	for k := range m {
		ks = append(ks, k)
	}
	slices.Sort(ks)
	return ks
}

func TestParseStatStatusNormalization(t *testing.T) {
	row := mkRow(map[string]string{
		"pxname": "web", "svname": "app1", "iid": "1", "sid": "1", "type": "2",
		"status": "no check", "check_status": "L4OK",
	})
	res, err := ParseStat(linesOf(row))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	rec := res.Table[1]["1"]
	if rec.Status() != "-" || rec.CheckStatus() != "none" {
		t.Fatalf("expected normalized status, got %q/%q", rec.Status(), rec.CheckStatus())
	}
}

func TestParseStatGarbageField(t *testing.T) {
	row := mkRow(map[string]string{"iid": "1", "sid": "1", "type": "2", "weight": "abc"})
	_, err := ParseStat(linesOf(row))
	if err == nil {
		t.Fatal("expected garbage field error")
	}
}

func TestParseStatOverflowCap(t *testing.T) {
	var rows []string
	for i := 1; i <= 120; i++ {
		rows = append(rows, mkRow(map[string]string{
			"pxname": "web", "svname": fmt.Sprintf("app%d", i),
			"iid": "1", "sid": strconv.Itoa(i), "type": "2",
		}))
	}
	res, err := ParseStat(linesOf(rows...))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !res.Overflowed {
		t.Fatal("expected overflow to be flagged")
	}
	if res.ServiceCount != 120 {
		t.Fatalf("expected svcount to count all input rows, got %d", res.ServiceCount)
	}
	materialized := 0
	for _, services := range res.Table {
		materialized += len(services)
	}
	if materialized > MaxServices {
		t.Fatalf("materialized %d rows, want <= %d", materialized, MaxServices)
	}
}

func TestParseStatDedupAfterCap(t *testing.T) {
	var rows []string
	for i := 1; i <= 105; i++ {
		rows = append(rows, mkRow(map[string]string{
			"pxname": "web", "svname": fmt.Sprintf("app%d", i),
			"iid": "1", "sid": strconv.Itoa(i), "type": "2",
		}))
	}
	// Repeat the last row verbatim — must not be double counted once past the cap.
	rows = append(rows, rows[len(rows)-1])

	res, err := ParseStat(linesOf(rows...))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if res.ServiceCount != 105 {
		t.Fatalf("expected dedup to keep svcount at 105, got %d", res.ServiceCount)
	}
}

func TestParseStatShortLineIgnored(t *testing.T) {
	res, err := ParseStat(linesOf("a,b,c"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if res.ProxyCount != 0 || res.ServiceCount != 0 {
		t.Fatalf("expected short line to be ignored, got %+v", res)
	}
}

func TestParseInfoAllKeys(t *testing.T) {
	lines := linesOf(
		"Name: HAProxy",
		"Version: 1.4.4",
		"Release_date: 2010/01/01",
		"Nbproc: 1",
		"Process_num: 1",
		"Pid: 1234",
		"Uptime: 0d 1h02m03s",
		"Maxconn: 2000",
		"CurrConns: 3",
		"Maxpipes: 0",
		"PipesUsed: 0",
		"Tasks: 5",
		"Run_queue: 1",
		"node: lb1",
	)
	snap, err := ParseInfo(lines)
	if err != nil {
		t.Fatalf("parse info: %v", err)
	}
	if snap["pid"] != "1234" || snap["node"] != "lb1" {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
}

func TestParseInfoMissingKey(t *testing.T) {
	lines := linesOf("Name: HAProxy")
	_, err := ParseInfo(lines)
	if err == nil {
		t.Fatal("expected missing key error")
	}
	if !strings.Contains(err.Error(), `missing "software_version" in info data`) {
		t.Fatalf("unexpected error: %v", err)
	}
}
