package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/i474232898/smartpack/internal/forecast"
)

var validate = validator.New()

// locationList is the document form of the reference list.
type locationList struct {
	Locations []forecast.Location `yaml:"locations" validate:"required,min=1,unique=Name,dive"`
}

// LoadLocations reads and validates the reference location list. The file is
// YAML; a bare top-level sequence (including a JSON array) is accepted as
// well as a mapping with a "locations" key.
func LoadLocations(path string) ([]forecast.Location, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read locations file: %w", err)
	}

	locs, err := ParseLocations(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return locs, nil
}

// ParseLocations decodes and validates a reference location list.
func ParseLocations(data []byte) ([]forecast.Location, error) {
	var list locationList

	var seq []forecast.Location
	if err := yaml.Unmarshal(data, &seq); err == nil {
		list.Locations = seq
	} else if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse locations: %w", err)
	}

	if err := validate.Struct(list); err != nil {
		return nil, fmt.Errorf("invalid locations: %w", err)
	}
	return list.Locations, nil
}
