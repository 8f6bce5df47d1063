// Package gear derives camping gear recommendations and warnings from a
// forecast using fixed temperature and rain thresholds.
package gear

import (
	"errors"
	"fmt"
	"sort"

	"github.com/i474232898/smartpack/internal/forecast"
)

// ErrInsufficientData is returned when the periods carry no temperature or no
// precipitation value to derive recommendations from.
var ErrInsufficientData = errors.New("insufficient forecast data for gear recommendation")

const (
	WinterSleepingBag = "❄️ 0°F Rated Sleeping Bag"
	GlovesAndBeanie   = "🧤 Insulated Gloves & Beanie"
	InsulatedPad      = "🔥 Sleeping Pad with R-value > 4"
	ThreeSeasonBag    = "🛌 20°F Rated Sleeping Bag"
	PuffyJacket       = "🧥 Puffy Down Jacket"
	SummerSleepingBag = "🏞️ 40°F+ Summer Sleeping Bag"
	Rainfly           = "☔ Waterproof Rainfly"
	WaterproofBoots   = "🥾 Waterproof Hiking Boots"
	PackRainCover     = "🎒 Pack Rain Cover"

	FreezingWarning  = "Freezing conditions expected! Bring extra fuel."
	HeavyRainWarning = "Heavy rain forecast. Ensure tent footprint is tucked under tent."
)

// tier is one row of the rule table. warning is optional.
type tier struct {
	applies func(v float64) bool
	gear    []string
	warning string
}

// Temperature tiers are disjoint; the first match wins.
var temperatureTiers = []tier{
	{
		applies: func(minTemp float64) bool { return minTemp < 32 },
		gear:    []string{WinterSleepingBag, GlovesAndBeanie, InsulatedPad},
		warning: FreezingWarning,
	},
	{
		applies: func(minTemp float64) bool { return minTemp < 50 },
		gear:    []string{ThreeSeasonBag, PuffyJacket},
	},
	{
		applies: func(float64) bool { return true },
		gear:    []string{SummerSleepingBag},
	},
}

// Rain tiers are additive; every match applies.
var rainTiers = []tier{
	{
		applies: func(maxRain float64) bool { return maxRain > 0 },
		gear:    []string{Rainfly, WaterproofBoots, PackRainCover},
	},
	{
		applies: func(maxRain float64) bool { return maxRain > 50 },
		warning: HeavyRainWarning,
	},
}

// GearSet is a set of recommended items plus warnings in rule order.
// The zero value is an empty set.
type GearSet struct {
	items    map[string]struct{}
	warnings []string
}

// Items returns the recommended items sorted, never nil.
func (g GearSet) Items() []string {
	items := make([]string, 0, len(g.items))
	for item := range g.items {
		items = append(items, item)
	}
	sort.Strings(items)
	return items
}

// Warnings returns a copy of the warnings, never nil.
func (g GearSet) Warnings() []string {
	return append([]string{}, g.warnings...)
}

// Has reports whether item is recommended.
func (g GearSet) Has(item string) bool {
	_, ok := g.items[item]
	return ok
}

// Len is the number of distinct recommended items.
func (g GearSet) Len() int {
	return len(g.items)
}

func (g *GearSet) apply(t tier) {
	if g.items == nil {
		g.items = make(map[string]struct{})
	}
	for _, item := range t.gear {
		g.items[item] = struct{}{}
	}
	if t.warning != "" {
		g.warnings = append(g.warnings, t.warning)
	}
}

// Recommend evaluates the rule table against the coldest temperature and the
// highest precipitation probability found in periods. Temperature rules are
// evaluated before rain rules, which fixes the warning order.
func Recommend(periods []forecast.Period) (GearSet, error) {
	minTemp, maxRain, err := extremes(periods)
	if err != nil {
		return GearSet{}, err
	}

	var set GearSet
	for _, t := range temperatureTiers {
		if t.applies(minTemp) {
			set.apply(t)
			break
		}
	}
	for _, t := range rainTiers {
		if t.applies(maxRain) {
			set.apply(t)
		}
	}
	return set, nil
}

// extremes returns the minimum temperature and maximum rain probability,
// ignoring nil values.
func extremes(periods []forecast.Period) (minTemp, maxRain float64, err error) {
	var haveTemp, haveRain bool

	for _, p := range periods {
		if p.Temperature != nil && (!haveTemp || *p.Temperature < minTemp) {
			minTemp = *p.Temperature
			haveTemp = true
		}
		if p.RainProbability != nil && (!haveRain || *p.RainProbability > maxRain) {
			maxRain = *p.RainProbability
			haveRain = true
		}
	}

	switch {
	case !haveTemp:
		return 0, 0, fmt.Errorf("%w: no temperature in %d periods", ErrInsufficientData, len(periods))
	case !haveRain:
		return 0, 0, fmt.Errorf("%w: no precipitation probability in %d periods", ErrInsufficientData, len(periods))
	}
	return minTemp, maxRain, nil
}
