package statproto

// ServiceRecord is one typed row of `show stat` output: a frontend
// aggregate, a backend aggregate, or a single backend server, depending on
// Type. Columns are kept both by declared type (Strings/Ints) and exposed
// through named accessors for the handful of fields the rest of the system
// treats specially.
type ServiceRecord struct {
	Strings map[string]string
	Ints    map[string]int64
}

func newRecord() *ServiceRecord {
	return &ServiceRecord{
		Strings: make(map[string]string),
		Ints:    make(map[string]int64),
	}
}

func (r *ServiceRecord) String(name string) string { return r.Strings[name] }
func (r *ServiceRecord) Int(name string) int64      { return r.Ints[name] }

func (r *ServiceRecord) Pxname() string      { return r.String("pxname") }
func (r *ServiceRecord) Svname() string      { return r.String("svname") }
func (r *ServiceRecord) Status() string      { return r.String("status") }
func (r *ServiceRecord) CheckStatus() string { return r.String("check_status") }
func (r *ServiceRecord) Iid() int            { return int(r.Int("iid")) }
func (r *ServiceRecord) Sid() int            { return int(r.Int("sid")) }
func (r *ServiceRecord) Type() int           { return int(r.Int("type")) }
func (r *ServiceRecord) Weight() int         { return int(r.Int("weight")) }

// Get returns the raw value of a named column as a string, formatted the
// same way regardless of its declared kind, for callers (column formatting
// filters) that work generically across the schema.
func (r *ServiceRecord) Get(name string) (string, bool) {
	if v, ok := r.Strings[name]; ok {
		return v, true
	}
	if v, ok := r.Ints[name]; ok {
		return formatInt(v), true
	}
	return "", false
}
