package forecast

import (
	"strings"
)

// Location is a named place from the reference list.
// Name must be unique within the list.
type Location struct {
	Name      string  `json:"name" yaml:"name" validate:"required"`
	Latitude  float64 `json:"latitude" yaml:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" yaml:"longitude" validate:"gte=-180,lte=180"`
}

// Period is one labeled time window of a forecast feed ("Tonight", "Monday", ...).
// Nil numeric fields mean the feed carried no usable value.
//
// JSON keys follow the snapshot file format consumed by the dashboard.
type Period struct {
	StartTime        string   `json:"startTime"`
	Name             string   `json:"Time of Day"`
	ShortForecast    string   `json:"shortForecast"`
	DetailedForecast string   `json:"detailedForecast"`
	Temperature      *float64 `json:"Temp"` // °F
	WindSpeed        *float64 `json:"Wind"` // mph
	WindDirection    string   `json:"windDirection"`
	RainProbability  *float64 `json:"Rain"` // percent, 0-100
}

// Date returns the calendar date (YYYY-MM-DD) the period starts on, as
// written in the feed's local offset.
func (p Period) Date() string {
	date, _, _ := strings.Cut(p.StartTime, "T")
	return date
}

// Float returns a pointer to v; handy for building periods in code.
func Float(v float64) *float64 {
	return &v
}
