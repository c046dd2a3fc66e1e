package tracer

// Stats counts the work done by a Tracer
type Stats struct {
	Rays                     int64 // traceRay calls, primary and secondary
	Reflections              int64
	Refractions              int64
	TotalInternalReflections int64
	CeilingHits              int64 // rays cut off by the recursion ceiling
	MaxLevel                 int   // deepest call level reached
}

// Add merges other into s
func (s *Stats) Add(other Stats) {
	s.Rays += other.Rays
	s.Reflections += other.Reflections
	s.Refractions += other.Refractions
	s.TotalInternalReflections += other.TotalInternalReflections
	s.CeilingHits += other.CeilingHits
	if other.MaxLevel > s.MaxLevel {
		s.MaxLevel = other.MaxLevel
	}
}
