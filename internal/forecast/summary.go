package forecast

import (
	"sort"
)

// DaySummary holds the headline metrics for one calendar date of a forecast.
// Temperature and wind metrics are nil when no period of the day carried a value.
type DaySummary struct {
	Date      string   `json:"date"`
	Periods   []Period `json:"periods"`
	LowTemp   *float64 `json:"low_temp"`
	HighTemp  *float64 `json:"high_temp"`
	MaxWind   *float64 `json:"max_wind"`
	TotalRain *float64 `json:"total_rain"`
}

// Dates returns the distinct start dates of periods in ascending order.
func Dates(periods []Period) []string {
	seen := make(map[string]struct{})
	for _, p := range periods {
		if d := p.Date(); d != "" {
			seen[d] = struct{}{}
		}
	}

	dates := make([]string, 0, len(seen))
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// SummarizeDay reduces the periods starting on date to the dashboard metrics:
// lowest and highest temperature, strongest wind and summed rain probability
// (missing rain values count as zero). ok is false when no period falls on date.
func SummarizeDay(periods []Period, date string) (summary DaySummary, ok bool) {
	summary.Date = date

	var sumRain float64

	for _, p := range periods {
		if p.Date() != date {
			continue
		}
		summary.Periods = append(summary.Periods, p)

		if t := p.Temperature; t != nil {
			if summary.LowTemp == nil || *t < *summary.LowTemp {
				summary.LowTemp = Float(*t)
			}
			if summary.HighTemp == nil || *t > *summary.HighTemp {
				summary.HighTemp = Float(*t)
			}
		}
		if w := p.WindSpeed; w != nil {
			if summary.MaxWind == nil || *w > *summary.MaxWind {
				summary.MaxWind = Float(*w)
			}
		}
		if p.RainProbability != nil {
			sumRain += *p.RainProbability
		}
	}

	if len(summary.Periods) == 0 {
		return DaySummary{Date: date}, false
	}
	summary.TotalRain = Float(sumRain)
	return summary, true
}
