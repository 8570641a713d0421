package nimsforestgallery

// Map linearly maps value from [domainMin, domainMax] onto
// [rangeMin, rangeMax]. Values outside the domain map outside the range;
// nothing is clamped. The result is undefined when domainMin == domainMax.
//
// Pixel Y grows downward, so a "higher is up" axis passes an inverted
// range (rangeMin > rangeMax).
func Map(value, domainMin, domainMax, rangeMin, rangeMax float64) float64 {
	return rangeMin + (value-domainMin)*(rangeMax-rangeMin)/(domainMax-domainMin)
}

// Scale is a linear mapping from a data domain to a pixel range.
// Scales are cheap values rebuilt on every draw from the current data
// bounds and layout.
type Scale struct {
	DomainMin, DomainMax float64
	RangeMin, RangeMax   float64
}

// NewScale returns the scale mapping [domainMin, domainMax] onto
// [rangeMin, rangeMax].
func NewScale(domainMin, domainMax, rangeMin, rangeMax float64) Scale {
	return Scale{
		DomainMin: domainMin,
		DomainMax: domainMax,
		RangeMin:  rangeMin,
		RangeMax:  rangeMax,
	}
}

// Map applies the scale to v.
func (s Scale) Map(v float64) float64 {
	return Map(v, s.DomainMin, s.DomainMax, s.RangeMin, s.RangeMax)
}

// Degenerate reports whether the domain is empty, in which case Map has
// no meaningful result.
func (s Scale) Degenerate() bool {
	return s.DomainMin == s.DomainMax
}
