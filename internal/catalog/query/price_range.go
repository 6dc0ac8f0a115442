package query

// PriceRange maintains a two-ended price interval [low, high] inside global
// bounds [min, max]. After every operation min <= low < high <= max holds,
// with a minimum separation of one cent between the two ends.
type PriceRange struct {
	min, max  int64
	low, high int64
	onChange  func(low, high int64)
}

// NewPriceRange creates a selector spanning the full [min, max] interval.
// max must be greater than min.
func NewPriceRange(min, max int64) *PriceRange {
	if max <= min {
		max = min + 1
	}
	return &PriceRange{min: min, max: max, low: min, high: max}
}

// OnChange registers a consumer notified with [low, high] on every change.
func (r *PriceRange) OnChange(fn func(low, high int64)) {
	r.onChange = fn
}

// SetLow moves the lower end, clamped to [min, high-1].
func (r *PriceRange) SetLow(v int64) {
	r.low = clamp(v, r.min, r.high-1)
	r.emit()
}

// SetHigh moves the upper end, clamped to [low+1, max].
func (r *PriceRange) SetHigh(v int64) {
	r.high = clamp(v, r.low+1, r.max)
	r.emit()
}

// Bounds returns the current [low, high] interval.
func (r *PriceRange) Bounds() (low, high int64) {
	return r.low, r.high
}

func (r *PriceRange) emit() {
	if r.onChange != nil {
		r.onChange(r.low, r.high)
	}
}

func clamp(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
