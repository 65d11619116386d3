package record

// Deduper collapses duplicate records, keeping the first-seen record
// per identity key and preserving first-appearance order. The policy
// is first-seen-wins for every vertical.
type Deduper struct {
	seen map[string]struct{}
}

// NewDeduper returns an empty Deduper. One Deduper is scoped to one
// scrape cycle; identities are not shared across cycles.
func NewDeduper() *Deduper {
	return &Deduper{seen: make(map[string]struct{})}
}

// Add records the identity key and reports whether it was new.
func (d *Deduper) Add(r *Record) bool {
	key := r.DedupKey()
	if _, dup := d.seen[key]; dup {
		return false
	}
	d.seen[key] = struct{}{}
	return true
}

// Filter returns the subset of recs that survive deduplication, in
// first-appearance order.
func (d *Deduper) Filter(recs []*Record) []*Record {
	out := make([]*Record, 0, len(recs))
	for _, r := range recs {
		if d.Add(r) {
			out = append(out, r)
		}
	}
	return out
}

// Size returns the number of distinct identities seen so far.
func (d *Deduper) Size() int {
	return len(d.seen)
}
