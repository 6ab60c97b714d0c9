package statproto

import (
	"iter"
	"strconv"
	"strings"

	"github.com/lbtop/lbtop/internal/lberr"
)

// MaxServices is the hard cap on materialized service records per parse.
const MaxServices = 100

// RecordKey identifies one row uniquely across a single parse: proxy id plus
// the literal "FRONTEND"/"BACKEND" or the server's numeric sid rendered as
// a string.
type RecordKey struct {
	Iid int
	Key string
}

// ProxyTable is `iid -> { key -> record }`, the Data Model's Proxy Table.
type ProxyTable map[int]map[string]*ServiceRecord

// ParseResult is the outcome of a single ParseStat call.
type ParseResult struct {
	Table        ProxyTable
	ProxyCount   int
	ServiceCount int
	// Overflowed is true once more than MaxServices distinct rows were seen;
	// rows beyond the cap are counted but not materialized into Table.
	Overflowed bool
}

func formatInt(v int64) string { return strconv.FormatInt(v, 10) }

// ParseStat decodes a `show stat` reply into a ProxyTable, enforcing the
// 100-service materialization cap and classifying frontend/backend/server
// rows. Blank lines and comment lines (leading '#') are ignored. A line is
// only accepted if it carries at least NumFields separators (HAProxy ends
// every CSV line with a trailing comma); anything after the NumFields-th
// field, such as that trailing comma, is discarded. Short lines are silently
// skipped rather than treated as an error, since HAProxy may emit a trailing
// "# comment" preamble of a different shape per proxy type.
func ParseStat(lines iter.Seq[string]) (*ParseResult, error) {
	table := ProxyTable{}
	seenProxies := map[int]bool{}
	seenKeys := map[RecordKey]bool{}
	result := &ParseResult{Table: table}

	for raw := range lines {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if strings.Count(raw, ",") < NumFields {
			continue
		}
		parts := strings.SplitN(raw, ",", NumFields+1)
		if len(parts) < NumFields {
			continue
		}

		iid, err := parseRequiredInt("iid", parts[fieldIndex["iid"]])
		if err != nil {
			return nil, err
		}
		sid, err := parseRequiredInt("sid", parts[fieldIndex["sid"]])
		if err != nil {
			return nil, err
		}
		typ, err := parseRequiredInt("type", parts[fieldIndex["type"]])
		if err != nil {
			return nil, err
		}
		svname := parts[fieldIndex["svname"]]

		key := recordKeyFor(int(typ), svname, int(sid))
		rk := RecordKey{Iid: int(iid), Key: key}

		if !seenProxies[int(iid)] {
			seenProxies[int(iid)] = true
			result.ProxyCount++
		}
		if seenKeys[rk] {
			continue
		}
		seenKeys[rk] = true
		result.ServiceCount++

		if result.ServiceCount > MaxServices {
			result.Overflowed = true
			continue
		}

		rec, err := decodeRecord(parts)
		if err != nil {
			return nil, err
		}
		if table[int(iid)] == nil {
			table[int(iid)] = map[string]*ServiceRecord{}
		}
		table[int(iid)][key] = rec
	}

	return result, nil
}

// recordKeyFor implements the classification rule: frontend/backend rows key
// on their literal svname value, everything else keys on the numeric sid.
func recordKeyFor(typ int, svname string, sid int) string {
	if typ == TypeFrontend || typ == TypeBackend {
		return svname
	}
	return strconv.Itoa(sid)
}

func parseRequiredInt(name, raw string) (int64, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, lberr.New(lberr.KindParse, "garbage field: "+name+"="+raw)
	}
	return v, nil
}

func decodeRecord(parts []string) (*ServiceRecord, error) {
	rec := newRecord()
	for i, f := range schema {
		raw := parts[i]
		switch f.kind {
		case kindInt:
			v, err := parseRequiredInt(f.name, raw)
			if err != nil {
				return nil, err
			}
			rec.Ints[f.name] = v
		default:
			rec.Strings[f.name] = raw
		}
	}
	normalizeStatus(rec)
	return rec, nil
}

// normalizeStatus implements the Data Model invariant: status == "no check"
// is rewritten to "-", and in that case check_status is rewritten to "none".
func normalizeStatus(rec *ServiceRecord) {
	if rec.Strings["status"] == "no check" {
		rec.Strings["status"] = "-"
		rec.Strings["check_status"] = "none"
	}
}
