// Package dataplane holds the most recent info/stat snapshots, the
// registered filter set, and per-tick proxy/service counters, driving the
// socket client and the two parsers on behalf of the screen coordinator.
package dataplane

import (
	"fmt"
	"iter"
	"regexp"

	"github.com/lbtop/lbtop/internal/lberr"
	"github.com/lbtop/lbtop/internal/sockclient"
	"github.com/lbtop/lbtop/internal/statproto"
)

// Filter is a canonical (iid, type, sid) triple scoping `show stat`.
type Filter struct {
	Iid, Type, Sid int
}

var reStatFilter = regexp.MustCompile(`^-?\d+ -?\d+ -?\d+$`)
var reProxyFilter = regexp.MustCompile(`^[A-Za-z0-9_.:\-]+$`)

// Warning is a non-fatal condition raised by a refresh (§7 "Configuration
// warnings"), captured by the caller as a pending banner.
type Warning struct {
	Text string
}

// Plane is the Data Plane component. It is not safe for concurrent use; the
// screen coordinator serializes access to it and to the shared socket.
type Plane struct {
	client  *sockclient.Client
	filters []Filter

	info statproto.InfoSnapshot
	stat *statproto.ParseResult

	pxCountOld int
	svCountOld int
}

func New(client *sockclient.Client) *Plane {
	return &Plane{client: client}
}

func toSeq(lines []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, l := range lines {
			if !yield(l) {
				return
			}
		}
	}
}

func (p *Plane) addFilter(f Filter) {
	for _, existing := range p.filters {
		if existing == f {
			return
		}
	}
	p.filters = append(p.filters, f)
}

// RegisterStatFilter validates and registers direct (iid, type, sid)
// filters, e.g. "1 2 3".
func (p *Plane) RegisterStatFilter(entries []string) error {
	for _, e := range entries {
		m := reStatFilter.FindStringSubmatch(e)
		if m == nil {
			return lberr.New(lberr.KindValue, "invalid stat filter: "+e)
		}
		var iid, typ, sid int
		if _, err := fmt.Sscanf(e, "%d %d %d", &iid, &typ, &sid); err != nil {
			return lberr.New(lberr.KindValue, "invalid stat filter: "+e)
		}
		p.addFilter(Filter{Iid: iid, Type: typ, Sid: sid})
	}
	return nil
}

// RegisterProxyFilter resolves proxy names to iids via a one-shot unfiltered
// `show stat`, then registers (iid, -1, -1) filters. Resolution happens once
// at registration time, not per tick.
func (p *Plane) RegisterProxyFilter(names []string) error {
	for _, n := range names {
		if !reProxyFilter.MatchString(n) {
			return lberr.New(lberr.KindValue, "invalid proxy filter: "+n)
		}
	}
	if len(names) == 0 {
		return nil
	}

	if err := p.client.Send("show stat"); err != nil {
		return err
	}
	lines, err := p.client.RecvLines()
	if err != nil {
		return err
	}
	res, err := statproto.ParseStat(toSeq(lines))
	if err != nil {
		return err
	}

	iidByName := map[string]int{}
	for iid, services := range res.Table {
		for _, rec := range services {
			if _, ok := iidByName[rec.Pxname()]; !ok {
				iidByName[rec.Pxname()] = iid
			}
		}
	}

	for _, n := range names {
		iid, ok := iidByName[n]
		if !ok {
			return lberr.New(lberr.KindValue, "proxy not found: "+n)
		}
		p.addFilter(Filter{Iid: iid, Type: -1, Sid: -1})
	}
	return nil
}

// UpdateInfo issues `show info` and replaces the info snapshot.
func (p *Plane) UpdateInfo() error {
	if err := p.client.Send("show info"); err != nil {
		return err
	}
	lines, err := p.client.RecvLines()
	if err != nil {
		return err
	}
	snap, err := statproto.ParseInfo(toSeq(lines))
	if err != nil {
		return err
	}
	p.info = snap
	return nil
}

func (p *Plane) Info() statproto.InfoSnapshot { return p.info }
func (p *Plane) Stat() *statproto.ParseResult { return p.stat }

// UpdateStat issues `show stat` (unfiltered or once per registered filter,
// merging results), replaces the stat snapshot, and returns any warnings
// raised per §4.4/§7: zero merged proxies, or a proxy/service count delta
// against the previous successful refresh.
func (p *Plane) UpdateStat() ([]Warning, error) {
	merged := &statproto.ParseResult{Table: statproto.ProxyTable{}}

	if len(p.filters) == 0 {
		res, err := p.queryStat("show stat")
		if err != nil {
			return nil, err
		}
		merged = res
	} else {
		for _, f := range p.filters {
			cmd := fmt.Sprintf("show stat %d %d %d", f.Iid, f.Type, f.Sid)
			res, err := p.queryStat(cmd)
			if err != nil {
				return nil, err
			}
			if res.ProxyCount == 0 {
				return nil, lberr.New(lberr.KindStaleFilter,
					fmt.Sprintf("stale stat filter: %d %d %d", f.Iid, f.Type, f.Sid))
			}
			merged.ProxyCount += res.ProxyCount
			merged.ServiceCount += res.ServiceCount
			merged.Overflowed = merged.Overflowed || res.Overflowed
			for iid, services := range res.Table {
				if merged.Table[iid] == nil {
					merged.Table[iid] = map[string]*statproto.ServiceRecord{}
				}
				for k, v := range services {
					merged.Table[iid][k] = v
				}
			}
		}
	}

	var warnings []Warning
	if merged.ProxyCount == 0 {
		warnings = append(warnings, Warning{Text: "no stat data available"})
	}

	pxDiff, svDiff := 0, 0
	if merged.ProxyCount < p.pxCountOld {
		pxDiff -= p.pxCountOld - merged.ProxyCount
	}
	if p.pxCountOld > 0 && merged.ProxyCount > p.pxCountOld {
		pxDiff += merged.ProxyCount - p.pxCountOld
	}
	if merged.ServiceCount < p.svCountOld {
		svDiff -= p.svCountOld - merged.ServiceCount
	}
	if p.svCountOld > 0 && merged.ServiceCount > p.svCountOld {
		svDiff += merged.ServiceCount - p.svCountOld
	}
	if pxDiff != 0 || svDiff != 0 {
		warnings = append(warnings, Warning{
			Text: fmt.Sprintf("config changed: proxy %+d, service %+d (reloading...)", pxDiff, svDiff),
		})
	}

	p.pxCountOld = merged.ProxyCount
	p.svCountOld = merged.ServiceCount
	p.stat = merged
	return warnings, nil
}

// Execute sends a raw admin command line to the socket and returns its
// reply lines verbatim, for the Embedded CLI and hotkey actions (§4.8).
// Whitelist/denylist validation is the caller's responsibility
// (internal/cliexec); the Data Plane itself does not interpret commands.
func (p *Plane) Execute(cmdline string) ([]string, error) {
	if err := p.client.Send(cmdline); err != nil {
		return nil, err
	}
	return p.client.RecvLines()
}

func (p *Plane) queryStat(cmd string) (*statproto.ParseResult, error) {
	if err := p.client.Send(cmd); err != nil {
		return nil, err
	}
	lines, err := p.client.RecvLines()
	if err != nil {
		return nil, err
	}
	return statproto.ParseStat(toSeq(lines))
}
