package nws

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrUnparsableWind is returned by ParseWindSpeed for text that carries no finite number.
var ErrUnparsableWind = errors.New("unparsable wind speed")

// ParseWindSpeed turns an NWS wind string into miles per hour.
// Ranges ("10-15 mph", "5 to 10 mph") resolve to their lower bound.
func ParseWindSpeed(s string) (float64, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	v = strings.TrimSpace(strings.TrimSuffix(v, "mph"))
	if v == "" {
		return 0, fmt.Errorf("%w: %q", ErrUnparsableWind, s)
	}

	v = strings.ReplaceAll(v, " to ", "-")

	lowest := math.Inf(1)
	for _, bound := range strings.Split(v, "-") {
		n, err := strconv.ParseFloat(strings.TrimSpace(bound), 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, fmt.Errorf("%w: %q", ErrUnparsableWind, s)
		}
		lowest = math.Min(lowest, n)
	}
	return lowest, nil
}
