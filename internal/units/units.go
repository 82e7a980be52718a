package units

import "fmt"

// Unit is a physical unit accepted by the API
type Unit string

const (
	NM  Unit = "nm"
	UM  Unit = "um"
	MM  Unit = "mm"
	CM  Unit = "cm"
	M   Unit = "m"
	EV  Unit = "eV"
	KEV Unit = "keV"
	MEV Unit = "MeV"
	BQ  Unit = "Bq"
	KBQ Unit = "kBq"
	MBQ Unit = "MBq"
	NS  Unit = "ns"
	MS  Unit = "ms"
	SEC Unit = "sec"
)

// Dimension groups units that can be used interchangeably
type Dimension string

const (
	Length   Dimension = "length"
	Energy   Dimension = "energy"
	Activity Dimension = "activity"
	Time     Dimension = "time"
)

type unitInfo struct {
	factor    float64
	dimension Dimension
}

// Engine base units are mm, MeV and ns. Activity is 1/s expressed per ns.
var table = map[Unit]unitInfo{
	NM:  {1e-6, Length},
	UM:  {1e-3, Length},
	MM:  {1, Length},
	CM:  {10, Length},
	M:   {1000, Length},
	EV:  {1e-6, Energy},
	KEV: {1e-3, Energy},
	MEV: {1, Energy},
	NS:  {1, Time},
	MS:  {1e6, Time},
	SEC: {1e9, Time},
	BQ:  {1e-9, Activity},
	KBQ: {1e-6, Activity},
	MBQ: {1e-3, Activity},
}

// Valid reports whether u is a known unit
func (u Unit) Valid() bool {
	_, ok := table[u]
	return ok
}

// Dimension returns the dimension of u, or "" for unknown units
func (u Unit) Dimension() Dimension {
	return table[u].dimension
}

// Factor returns the multiplier that converts a value in u to engine units
func Factor(u Unit) (float64, error) {
	info, ok := table[u]
	if !ok {
		return 0, fmt.Errorf("unknown unit %q", u)
	}
	return info.factor, nil
}

// MustFactor is Factor for units that have already been validated
func MustFactor(u Unit) float64 {
	f, err := Factor(u)
	if err != nil {
		panic(err)
	}
	return f
}

// Convert converts value expressed in u to engine units
func Convert(value float64, u Unit) float64 {
	return value * MustFactor(u)
}

// ConvertVec converts every component of v to engine units
func ConvertVec(v []float64, u Unit) []float64 {
	f := MustFactor(u)
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = x * f
	}
	return out
}

// FromEngine converts an engine value back into u
func FromEngine(value float64, u Unit) float64 {
	return value / MustFactor(u)
}

// FromEngineVec converts every component of v from engine units into u
func FromEngineVec(v []float64, u Unit) []float64 {
	f := MustFactor(u)
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = x / f
	}
	return out
}

// RunTimingIntervals splits numRuns consecutive runs of runLen seconds into
// [start, end] pairs in engine time units.
func RunTimingIntervals(numRuns int, runLen float64) [][2]float64 {
	sec := MustFactor(SEC)
	intervals := make([][2]float64, 0, numRuns)
	for i := 0; i < numRuns; i++ {
		intervals = append(intervals, [2]float64{
			float64(i) * runLen * sec,
			float64(i+1) * runLen * sec,
		})
	}
	return intervals
}
