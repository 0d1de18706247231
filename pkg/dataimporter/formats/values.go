package formats

import (
	"math"
	"strconv"
	"strings"
)

// ParseWhole accepts integers written either plainly or as "42.0", which is
// how float typed id columns come out of spreadsheet and dataframe exports
func ParseWhole(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i, true
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || math.Trunc(f) != f {
		return 0, false
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}

	return int64(f), true
}
