package diag

import "sort"

// Bag accumulates diagnostics across pipeline passes. A bag never
// grows past its cap; once full, further adds are dropped and counted.
type Bag struct {
	items   []Diagnostic
	max     int
	dropped int
}

// NewBag returns a bag that keeps at most max diagnostics. max <= 0
// means unbounded.
func NewBag(max int) *Bag {
	return &Bag{max: max}
}

// Add appends a diagnostic. It reports false when the bag is full and
// the diagnostic was dropped.
func (b *Bag) Add(d Diagnostic) bool {
	if b.max > 0 && len(b.items) >= b.max {
		b.dropped++
		return false
	}
	b.items = append(b.items, d)
	return true
}

// Merge adds every diagnostic from other, respecting the cap.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	for _, d := range other.items {
		b.Add(d)
	}
	b.dropped += other.dropped
}

// Len returns the number of kept diagnostics.
func (b *Bag) Len() int { return len(b.items) }

// Dropped returns how many diagnostics were discarded by the cap.
func (b *Bag) Dropped() int { return b.dropped }

// Items returns the kept diagnostics in insertion order. The returned
// slice is owned by the bag.
func (b *Bag) Items() []Diagnostic { return b.items }

// HasErrors reports whether any kept diagnostic is an error.
func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity == SevError {
			return true
		}
	}
	return false
}

// HasWarnings reports whether any kept diagnostic is a warning.
func (b *Bag) HasWarnings() bool {
	for _, d := range b.items {
		if d.Severity == SevWarning {
			return true
		}
	}
	return false
}

// Sort orders diagnostics by file, then position, then severity
// (errors first among equals), then code, then message. The order is
// total, so formatted output is stable run to run.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		return Less(b.items[i], b.items[j])
	})
}

// Less is the ordering used by Sort, exported for formatters that sort
// plain slices.
func Less(a, c Diagnostic) bool {
	if a.File != c.File {
		return a.File < c.File
	}
	if a.Primary.Start != c.Primary.Start {
		return a.Primary.Start.Before(c.Primary.Start)
	}
	if a.Severity != c.Severity {
		return a.Severity > c.Severity
	}
	if a.Code != c.Code {
		return a.Code < c.Code
	}
	return a.Message < c.Message
}

// Dedup removes adjacent duplicates after sorting. Two diagnostics are
// duplicates when code, file, span and message all match.
func (b *Bag) Dedup() {
	if len(b.items) < 2 {
		return
	}
	b.Sort()
	out := b.items[:1]
	for _, d := range b.items[1:] {
		last := out[len(out)-1]
		if d.Code == last.Code && d.File == last.File &&
			d.Primary == last.Primary && d.Message == last.Message {
			continue
		}
		out = append(out, d)
	}
	b.items = out
}
