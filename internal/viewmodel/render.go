package viewmodel

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/lbtop/lbtop/internal/statproto"
)

// Line is one renderable row of a STATUS/TRAFFIC/HTTP/ERRORS screen: a
// ">>> pxname" proxy header, a blank spacer, or a data row built from a
// ServiceRecord.
type Line struct {
	Text string
	Bold bool
}

// Head renders a mode's column headers, space-joined, per the original's
// get_head.
func Head(mode *Mode) string {
	cells := make([]string, len(mode.Columns))
	for i, col := range mode.Columns {
		cells[i] = Cell(col.Width, col.Align, col.Header)
	}
	return strings.Join(cells, " ")
}

// Row renders one ServiceRecord through a mode's columns: "always" filters
// run unconditionally, "ondemand" filters only fire once the unfiltered
// value overruns the column width, and the result is trimmed to fit before
// padding/alignment. Grounded on the original's get_screenline.
func Row(mode *Mode, rec *statproto.ServiceRecord) string {
	cells := make([]string, len(mode.Columns))
	for i, col := range mode.Columns {
		raw, _ := rec.Get(col.Name)
		value := raw
		for _, f := range col.Always {
			value = f(value)
		}
		if len(value) > col.Width {
			for _, f := range col.OnDemand {
				value = f(value)
			}
		}
		value = Trim(value, col.Width)
		cells[i] = Cell(col.Width, col.Align, value)
	}
	return strings.Join(cells, " ")
}

// ScreenLines assembles the full body of a STATUS/TRAFFIC/HTTP/ERRORS
// screen from a stat snapshot: for each proxy (in ascending iid order), a
// bold ">>> pxname" header, the FRONTEND row (if any), server rows sorted
// by key, the BACKEND row (if any), then a blank spacer — with the final
// trailing spacer dropped. Grounded on the original's get_screenlines.
func ScreenLines(mode *Mode, table statproto.ProxyTable) []Line {
	var lines []Line

	iids := make([]int, 0, len(table))
	for iid := range table {
		iids = append(iids, iid)
	}
	sort.Ints(iids)

	for _, iid := range iids {
		services := table[iid]
		frontend := services["FRONTEND"]
		backend := services["BACKEND"]

		var body []Line
		if frontend != nil {
			body = append(body, Line{Text: Row(mode, frontend)})
		}

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
		for _, k := range keys {
			body = append(body, Line{Text: Row(mode, services[k])})
		}

		if backend != nil {
			body = append(body, Line{Text: Row(mode, backend)})
		}

		if len(body) == 0 {
			continue
		}

		var pxname string
		switch {
		case frontend != nil:
			pxname = frontend.Pxname()
		case backend != nil:
			pxname = backend.Pxname()
		case len(keys) > 0:
			pxname = services[keys[0]].Pxname()
		}

		lines = append(lines, Line{Text: fmt.Sprintf(">>> %s", pxname), Bold: true})
		lines = append(lines, body...)
		lines = append(lines, Line{})
	}

	if len(lines) > 1 {
		lines = lines[:len(lines)-1]
	}
	return lines
}
