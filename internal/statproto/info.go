// Package statproto decodes the two reply grammars of the admin socket: the
// key/value `show info` response and the CSV `show stat` response.
package statproto

import (
	"iter"
	"regexp"
	"strings"

	"github.com/lbtop/lbtop/internal/lberr"
)

// InfoSnapshot is the flat key/value map produced by ParseInfo. Every key in
// infoFields must be present after a successful parse.
type InfoSnapshot map[string]string

type infoField struct {
	key string
	re  *regexp.Regexp
}

// infoFields lists the fixed set of `show info` keys this program recognizes,
// grounded on the original implementation's regex table.
var infoFields = []infoField{
	{"software_name", regexp.MustCompile(`^Name:\s*(\S+)`)},
	{"software_version", regexp.MustCompile(`^Version:\s*(\S+)`)},
	{"software_release", regexp.MustCompile(`^Release_date:\s*(\S+)`)},
	{"nproc", regexp.MustCompile(`^Nbproc:\s*(\d+)`)},
	{"procn", regexp.MustCompile(`^Process_num:\s*(\d+)`)},
	{"pid", regexp.MustCompile(`^Pid:\s*(\d+)`)},
	{"uptime", regexp.MustCompile(`^Uptime:\s*(\S.*)$`)},
	{"maxconn", regexp.MustCompile(`^Maxconn:\s*(\d+)`)},
	{"curconn", regexp.MustCompile(`^CurrConns:\s*(\d+)`)},
	{"maxpipes", regexp.MustCompile(`^Maxpipes:\s*(\d+)`)},
	{"curpipes", regexp.MustCompile(`^PipesUsed:\s*(\d+)`)},
	{"tasks", regexp.MustCompile(`^Tasks:\s*(\d+)`)},
	{"runqueue", regexp.MustCompile(`^Run_queue:\s*(\d+)`)},
	{"node", regexp.MustCompile(`^node:\s*(\S+)`)},
}

// ParseInfo decodes a `show info` reply. For each nonempty trimmed line, it
// tries each known field pattern and records the first match's capture
// group. Any required key missing afterwards is a fatal parse error.
func ParseInfo(lines iter.Seq[string]) (InfoSnapshot, error) {
	snap := InfoSnapshot{}
	for raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		for _, f := range infoFields {
			if _, ok := snap[f.key]; ok {
				continue
			}
			if m := f.re.FindStringSubmatch(line); m != nil {
				snap[f.key] = m[1]
				break
			}
		}
	}
	for _, f := range infoFields {
		if _, ok := snap[f.key]; !ok {
			return nil, lberr.New(lberr.KindParse, `missing "`+f.key+`" in info data`)
		}
	}
	return snap, nil
}
