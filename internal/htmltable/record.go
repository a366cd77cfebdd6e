package htmltable

// Record is an insertion-ordered mapping from column title to cell text.
// Setting an existing key overwrites its value but keeps the key's original
// position (last-write-wins). This tolerates malformed or duplicate header
// rows without treating them as errors.
type Record struct {
	keys   []string
	values map[string]string
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{values: make(map[string]string)}
}

// Set stores value under key. A repeated key keeps its first insertion
// position; the later value wins.
func (r *Record) Set(key, value string) {
	if _, exists := r.values[key]; !exists {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Get returns the value for key and whether the key is present.
func (r *Record) Get(key string) (string, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Keys returns the column titles in insertion order.
func (r *Record) Keys() []string {
	return r.keys
}

// Values returns the cell values in insertion order.
func (r *Record) Values() []string {
	vals := make([]string, len(r.keys))
	for i, k := range r.keys {
		vals[i] = r.values[k]
	}
	return vals
}

// Len returns the number of columns in the record.
func (r *Record) Len() int {
	return len(r.keys)
}
