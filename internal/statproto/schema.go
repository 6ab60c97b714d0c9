package statproto

// fieldKind is the declared cell type of a stat CSV column.
type fieldKind int

const (
	kindString fieldKind = iota
	kindInt
)

type fieldDef struct {
	name string
	kind fieldKind
}

// schema is the fixed, ordered `show stat` CSV column list. It is built at
// startup as immutable configuration (not a process-wide mutable global),
// grounded on the original source's HAPROXY_STAT_CSV table. The original
// enumerates 51 columns (spec.md's prose count of "50" is treated as an
// approximate figure rather than a literal truncation target — see
// DESIGN.md's "Schema 51-vs-50 decision"); every field named explicitly
// in the spec (pxname, svname, iid, sid, type, status, check_status,
// weight) is present regardless of which count is used.
var schema = []fieldDef{
	{"pxname", kindString},
	{"svname", kindString},
	{"qcur", kindInt},
	{"qmax", kindInt},
	{"scur", kindInt},
	{"smax", kindInt},
	{"slim", kindInt},
	{"stot", kindInt},
	{"bin", kindInt},
	{"bout", kindInt},
	{"dreq", kindInt},
	{"dresp", kindInt},
	{"ereq", kindInt},
	{"econ", kindInt},
	{"eresp", kindInt},
	{"wretr", kindInt},
	{"wredis", kindInt},
	{"status", kindString},
	{"weight", kindInt},
	{"act", kindInt},
	{"bck", kindInt},
	{"chkfail", kindInt},
	{"chkdown", kindInt},
	{"lastchg", kindInt},
	{"downtime", kindInt},
	{"qlimit", kindInt},
	{"pid", kindInt},
	{"iid", kindInt},
	{"sid", kindInt},
	{"throttle", kindInt},
	{"lbtot", kindInt},
	{"tracked", kindString},
	{"type", kindInt},
	{"rate", kindInt},
	{"rate_lim", kindInt},
	{"rate_max", kindInt},
	{"check_status", kindString},
	{"check_code", kindInt},
	{"check_duration", kindInt},
	{"hrsp_1xx", kindInt},
	{"hrsp_2xx", kindInt},
	{"hrsp_3xx", kindInt},
	{"hrsp_4xx", kindInt},
	{"hrsp_5xx", kindInt},
	{"hrsp_other", kindInt},
	{"hanafail", kindString},
	{"req_rate", kindInt},
	{"req_rate_max", kindInt},
	{"req_tot", kindInt},
	{"cli_abrt", kindInt},
	{"srv_abrt", kindInt},
}

// NumFields is the authoritative column count used for CSV acceptance and
// splitting.
var NumFields = len(schema)

var fieldIndex = func() map[string]int {
	m := make(map[string]int, len(schema))
	for i, f := range schema {
		m[f.name] = i
	}
	return m
}()

// FieldNames returns the ordered column names, for use by the view layer.
func FieldNames() []string {
	names := make([]string, len(schema))
	for i, f := range schema {
		names[i] = f.name
	}
	return names
}

// Proxy/server type codes (ServiceRecord.Type).
const (
	TypeFrontend = 0
	TypeBackend  = 1
	TypeServer   = 2
	TypeSocket   = 3
)
