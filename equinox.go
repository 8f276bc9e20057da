package jpholiday

import "math"

// equinoxEra is the span of years a base constant of the approximation
// formula is valid for.
type equinoxEra struct {
	lastYear int
	base     float64
}

// The public holiday law took effect in 1948; the formula is not tuned
// past 2150.
const (
	firstEquinoxYear = 1948
	lastEquinoxYear  = 2150
)

var (
	vernalEras = []equinoxEra{
		{lastYear: 1979, base: 20.8357},
		{lastYear: 2099, base: 20.8431},
		{lastYear: lastEquinoxYear, base: 21.851},
	}
	autumnalEras = []equinoxEra{
		{lastYear: 1979, base: 23.2588},
		{lastYear: 2099, base: 23.2488},
		{lastYear: lastEquinoxYear, base: 24.2488},
	}
)

// VernalEquinoxDay returns the day of March on which the vernal equinox
// falls in the given year. It returns false for years the estimate is not
// defined for (before 1948 or after 2150).
func VernalEquinoxDay(year int) (int, bool) {
	return equinoxDay(vernalEras, year)
}

// AutumnalEquinoxDay returns the day of September on which the autumnal
// equinox falls in the given year. It returns false for years the estimate
// is not defined for (before 1948 or after 2150).
func AutumnalEquinoxDay(year int) (int, bool) {
	return equinoxDay(autumnalEras, year)
}

func equinoxDay(eras []equinoxEra, year int) (int, bool) {
	if year < firstEquinoxYear {
		return 0, false
	}
	for _, era := range eras {
		if year <= era.lastYear {
			return estimateEquinox(era.base, year), true
		}
	}
	return 0, false
}

// estimateEquinox is floor(base + 0.242194*(y-1980) - floor((y-1980)/4)).
// Both floors round toward negative infinity, which matters for years
// before 1980.
func estimateEquinox(base float64, year int) int {
	n := float64(year - 1980)
	return int(math.Floor(base + 0.242194*n - math.Floor(n/4)))
}
