package viewmodel

// Terminal geometry bounds (§4.1 "Display Surface"), grounded on the
// original's SCREEN_XMIN/SCREEN_XMAX/SCREEN_YMIN.
const (
	ScreenXMin = 78
	ScreenXMax = 200
	ScreenYMin = 20
)

// ModeID enumerates the six screens a user can cycle through.
type ModeID int

const (
	ModeHelp ModeID = iota
	ModeStatus
	ModeTraffic
	ModeHTTP
	ModeErrors
	ModeCLI
)

func (m ModeID) String() string {
	switch m {
	case ModeHelp:
		return "HELP"
	case ModeStatus:
		return "STATUS"
	case ModeTraffic:
		return "TRAFFIC"
	case ModeHTTP:
		return "HTTP"
	case ModeErrors:
		return "ERRORS"
	case ModeCLI:
		return "CLI"
	default:
		return "?"
	}
}

// Mode is one of the six screens, carrying the ordered set of columns a
// stat row is rendered through. HELP and CLI each carry a single synthetic
// column that spans the remaining width; they are not driven by stat data.
type Mode struct {
	ID      ModeID
	Columns []*Column
}

func ondemand(f ...Filter) []Filter { return f }
func always(f ...Filter) []Filter   { return f }

// Modes returns a fresh set of the six screens with their column
// definitions, grounded on the original's SCREEN_MODES table (§4.6). Fresh
// instances are returned per call since Column.Width is mutated in place by
// SyncColumns and each Model owns its own set.
func Modes() map[ModeID]*Mode {
	return map[ModeID]*Mode{
		ModeHelp: {
			ID: ModeHelp,
			Columns: []*Column{
				{Name: "help", Header: " lbtop Online Help ", MinWidth: ScreenXMin, Align: AlignLeft},
			},
		},
		ModeStatus: {
			ID: ModeStatus,
			Columns: []*Column{
				{Name: "svname", Header: "NAME", MinWidth: 10, MaxWidth: 50, Align: AlignLeft},
				{Name: "weight", Header: "W", MinWidth: 4, MaxWidth: 6, Align: AlignRight},
				{Name: "status", Header: "STATUS", MinWidth: 6, MaxWidth: 10, Align: AlignLeft},
				{Name: "check_status", Header: "CHECK", MinWidth: 7, MaxWidth: 20, Align: AlignLeft},
				{Name: "act", Header: "ACT", MinWidth: 3, Align: AlignRight, OnDemand: ondemand(HumanMetric)},
				{Name: "bck", Header: "BCK", MinWidth: 3, Align: AlignRight, OnDemand: ondemand(HumanMetric)},
				{Name: "qcur", Header: "QCUR", MinWidth: 5, Align: AlignRight, OnDemand: ondemand(HumanMetric)},
				{Name: "qmax", Header: "QMAX", MinWidth: 5, Align: AlignRight, OnDemand: ondemand(HumanMetric)},
				{Name: "scur", Header: "SCUR", MinWidth: 6, Align: AlignRight, OnDemand: ondemand(HumanMetric)},
				{Name: "smax", Header: "SMAX", MinWidth: 6, Align: AlignRight, OnDemand: ondemand(HumanMetric)},
				{Name: "slim", Header: "SLIM", MinWidth: 6, Align: AlignRight, OnDemand: ondemand(HumanMetric)},
				{Name: "stot", Header: "STOT", MinWidth: 6, Align: AlignRight, OnDemand: ondemand(HumanMetric)},
			},
		},
		ModeTraffic: {
			ID: ModeTraffic,
			Columns: []*Column{
				{Name: "svname", Header: "NAME", MinWidth: 10, MaxWidth: 50, Align: AlignLeft},
				{Name: "weight", Header: "W", MinWidth: 4, MaxWidth: 6, Align: AlignRight},
				{Name: "status", Header: "STATUS", MinWidth: 6, MaxWidth: 10, Align: AlignLeft},
				{Name: "lbtot", Header: "LBTOT", MinWidth: 8, Align: AlignRight, OnDemand: ondemand(HumanMetric)},
				{Name: "rate", Header: "RATE", MinWidth: 6, Align: AlignRight, OnDemand: ondemand(HumanMetric)},
				{Name: "rate_lim", Header: "RLIM", MinWidth: 6, Align: AlignRight, OnDemand: ondemand(HumanMetric)},
				{Name: "rate_max", Header: "RMAX", MinWidth: 6, Align: AlignRight, OnDemand: ondemand(HumanMetric)},
				{Name: "bin", Header: "BIN", MinWidth: 12, Align: AlignRight, Always: always(HumanBinary)},
				{Name: "bout", Header: "BOUT", MinWidth: 12, Align: AlignRight, Always: always(HumanBinary)},
			},
		},
		ModeHTTP: {
			ID: ModeHTTP,
			Columns: []*Column{
				{Name: "svname", Header: "NAME", MinWidth: 10, MaxWidth: 50, Align: AlignLeft},
				{Name: "weight", Header: "W", MinWidth: 4, MaxWidth: 6, Align: AlignRight},
				{Name: "status", Header: "STATUS", MinWidth: 6, MaxWidth: 10, Align: AlignLeft},
				{Name: "req_rate", Header: "RATE", MinWidth: 5, Align: AlignRight, OnDemand: ondemand(HumanMetric)},
				{Name: "req_rate_max", Header: "RMAX", MinWidth: 5, Align: AlignRight, OnDemand: ondemand(HumanMetric)},
				{Name: "req_tot", Header: "RTOT", MinWidth: 7, Align: AlignRight, OnDemand: ondemand(HumanMetric)},
				{Name: "hrsp_1xx", Header: "1xx", MinWidth: 5, Align: AlignRight, OnDemand: ondemand(HumanMetric)},
				{Name: "hrsp_2xx", Header: "2xx", MinWidth: 5, Align: AlignRight, OnDemand: ondemand(HumanMetric)},
				{Name: "hrsp_3xx", Header: "3xx", MinWidth: 5, Align: AlignRight, OnDemand: ondemand(HumanMetric)},
				{Name: "hrsp_4xx", Header: "4xx", MinWidth: 5, Align: AlignRight, OnDemand: ondemand(HumanMetric)},
				{Name: "hrsp_5xx", Header: "5xx", MinWidth: 5, Align: AlignRight, OnDemand: ondemand(HumanMetric)},
				{Name: "hrsp_other", Header: "?xx", MinWidth: 5, Align: AlignRight, OnDemand: ondemand(HumanMetric)},
			},
		},
		ModeErrors: {
			ID: ModeErrors,
			Columns: []*Column{
				{Name: "svname", Header: "NAME", MinWidth: 10, MaxWidth: 50, Align: AlignLeft},
				{Name: "weight", Header: "W", MinWidth: 4, MaxWidth: 6, Align: AlignRight},
				{Name: "status", Header: "STATUS", MinWidth: 6, MaxWidth: 10, Align: AlignLeft},
				{Name: "check_status", Header: "CHECK", MinWidth: 7, MaxWidth: 20, Align: AlignLeft},
				{Name: "chkfail", Header: "CF", MinWidth: 3, Align: AlignRight, OnDemand: ondemand(HumanMetric)},
				{Name: "chkdown", Header: "CD", MinWidth: 3, Align: AlignRight, OnDemand: ondemand(HumanMetric)},
				{Name: "lastchg", Header: "CL", MinWidth: 3, Align: AlignRight, Always: always(HumanSeconds)},
				{Name: "econ", Header: "ECONN", MinWidth: 5, Align: AlignRight, OnDemand: ondemand(HumanMetric)},
				{Name: "ereq", Header: "EREQ", MinWidth: 5, Align: AlignRight, OnDemand: ondemand(HumanMetric)},
				{Name: "eresp", Header: "ERSP", MinWidth: 5, Align: AlignRight, OnDemand: ondemand(HumanMetric)},
				{Name: "dreq", Header: "DREQ", MinWidth: 5, Align: AlignRight, OnDemand: ondemand(HumanMetric)},
				{Name: "dresp", Header: "DRSP", MinWidth: 5, Align: AlignRight, OnDemand: ondemand(HumanMetric)},
				{Name: "downtime", Header: "DOWN", MinWidth: 5, Align: AlignRight, Always: always(HumanSeconds)},
			},
		},
		ModeCLI: {
			ID: ModeCLI,
			Columns: []*Column{
				{Name: "cli", Header: " haproxy command line   use ALT-n / ESC-n to escape", MinWidth: ScreenXMin, Align: AlignLeft},
			},
		},
	}
}
