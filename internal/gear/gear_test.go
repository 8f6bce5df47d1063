package gear

import (
	"errors"
	"reflect"
	"sort"
	"testing"

	"github.com/i474232898/smartpack/internal/forecast"
)

func periods(temps, rains []*float64) []forecast.Period {
	n := len(temps)
	if len(rains) > n {
		n = len(rains)
	}
	out := make([]forecast.Period, n)
	for i := range out {
		if i < len(temps) {
			out[i].Temperature = temps[i]
		}
		if i < len(rains) {
			out[i].RainProbability = rains[i]
		}
	}
	return out
}

func f(v float64) *float64 { return forecast.Float(v) }

func sorted(items ...string) []string {
	out := append([]string{}, items...)
	sort.Strings(out)
	return out
}

func TestRecommendWarmAndDry(t *testing.T) {
	set, err := Recommend(periods([]*float64{f(65), f(50), f(72)}, []*float64{f(0), f(0), nil}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got, want := set.Items(), []string{SummerSleepingBag}; !reflect.DeepEqual(got, want) {
		t.Fatalf("items = %v, want %v", got, want)
	}
	if got := set.Warnings(); len(got) != 0 {
		t.Fatalf("expected no warnings, got %v", got)
	}
}

func TestRecommendFreezingAndHeavyRain(t *testing.T) {
	set, err := Recommend(periods([]*float64{f(20), f(45)}, []*float64{f(70), f(10)}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := sorted(WinterSleepingBag, GlovesAndBeanie, InsulatedPad, Rainfly, WaterproofBoots, PackRainCover)
	if got := set.Items(); !reflect.DeepEqual(got, want) {
		t.Fatalf("items = %v, want %v", got, want)
	}
	if got, want := set.Warnings(), []string{FreezingWarning, HeavyRainWarning}; !reflect.DeepEqual(got, want) {
		t.Fatalf("warnings = %v, want %v", got, want)
	}
}

func TestRecommendBoundaries(t *testing.T) {
	tests := []struct {
		name         string
		minTemp      float64
		maxRain      float64
		wantItems    []string
		wantWarnings []string
	}{
		{
			name:         "exactly freezing selects the cool tier",
			minTemp:      32,
			maxRain:      0,
			wantItems:    sorted(ThreeSeasonBag, PuffyJacket),
			wantWarnings: []string{},
		},
		{
			name:         "just below freezing",
			minTemp:      31.9,
			maxRain:      0,
			wantItems:    sorted(WinterSleepingBag, GlovesAndBeanie, InsulatedPad),
			wantWarnings: []string{FreezingWarning},
		},
		{
			name:         "exactly fifty selects the summer tier",
			minTemp:      50,
			maxRain:      0,
			wantItems:    []string{SummerSleepingBag},
			wantWarnings: []string{},
		},
		{
			name:         "rain of fifty is not heavy",
			minTemp:      60,
			maxRain:      50,
			wantItems:    sorted(SummerSleepingBag, Rainfly, WaterproofBoots, PackRainCover),
			wantWarnings: []string{},
		},
		{
			name:         "rain above fifty is heavy",
			minTemp:      60,
			maxRain:      51,
			wantItems:    sorted(SummerSleepingBag, Rainfly, WaterproofBoots, PackRainCover),
			wantWarnings: []string{HeavyRainWarning},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := Recommend(periods([]*float64{f(tt.minTemp)}, []*float64{f(tt.maxRain)}))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := set.Items(); !reflect.DeepEqual(got, tt.wantItems) {
				t.Fatalf("items = %v, want %v", got, tt.wantItems)
			}
			if got := set.Warnings(); !reflect.DeepEqual(got, tt.wantWarnings) {
				t.Fatalf("warnings = %v, want %v", got, tt.wantWarnings)
			}
		})
	}
}

func TestRecommendFixture(t *testing.T) {
	input := periods([]*float64{f(28), f(35), f(40)}, []*float64{f(0), f(10), f(60)})

	set, err := Recommend(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, item := range []string{WinterSleepingBag, GlovesAndBeanie, InsulatedPad, Rainfly, WaterproofBoots, PackRainCover} {
		if !set.Has(item) {
			t.Fatalf("expected %q in %v", item, set.Items())
		}
	}
	if set.Has(ThreeSeasonBag) || set.Has(SummerSleepingBag) {
		t.Fatalf("only one temperature tier may fire: %v", set.Items())
	}
	if got, want := set.Warnings(), []string{FreezingWarning, HeavyRainWarning}; !reflect.DeepEqual(got, want) {
		t.Fatalf("warnings = %v, want %v", got, want)
	}
}

func TestRecommendIsIdempotent(t *testing.T) {
	input := periods([]*float64{f(40), f(38)}, []*float64{f(55), nil})

	first, err := Recommend(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Recommend(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first.Items(), second.Items()) || !reflect.DeepEqual(first.Warnings(), second.Warnings()) {
		t.Fatalf("results differ: %v/%v vs %v/%v", first.Items(), first.Warnings(), second.Items(), second.Warnings())
	}
}

func TestRecommendInsufficientData(t *testing.T) {
	tests := map[string][]forecast.Period{
		"no periods":     nil,
		"no temperature": periods([]*float64{nil, nil}, []*float64{f(10), f(20)}),
		"no rain":        periods([]*float64{f(40)}, []*float64{nil}),
	}

	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			set, err := Recommend(input)
			if !errors.Is(err, ErrInsufficientData) {
				t.Fatalf("expected ErrInsufficientData, got %v", err)
			}
			if set.Len() != 0 || len(set.Warnings()) != 0 {
				t.Fatalf("expected empty result, got %v / %v", set.Items(), set.Warnings())
			}
		})
	}
}
