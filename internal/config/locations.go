package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	locationDomain "propinvest/internal/domain/location"
)

// LocationsFile is the YAML shape of LOCATIONS_FILE:
//
//	locations:
//	  - name: bangalore
//	    monthly_rent: 18000
//	    appreciation_rate: 0.055
type LocationsFile struct {
	Locations []locationDomain.Location `yaml:"locations"`
}

// LoadLocations reads the per-location reference table from a YAML file.
func LoadLocations(path string) ([]locationDomain.Location, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading locations file: %w", err)
	}

	var f LocationsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing locations YAML: %w", err)
	}
	for i, l := range f.Locations {
		if l.Name == "" {
			return nil, fmt.Errorf("locations[%d]: missing name", i)
		}
		if math.IsNaN(l.MonthlyRent) || math.IsInf(l.MonthlyRent, 0) || l.MonthlyRent < 0 {
			return nil, fmt.Errorf("locations[%d] %s: monthly_rent must be a non-negative number", i, l.Name)
		}
		if r := l.AppreciationRate; r != nil && (math.IsNaN(*r) || math.IsInf(*r, 0) || *r <= -1) {
			return nil, fmt.Errorf("locations[%d] %s: appreciation_rate must be greater than -1", i, l.Name)
		}
		if y := l.RentalYield; y != nil && (math.IsNaN(*y) || math.IsInf(*y, 0) || *y < 0) {
			return nil, fmt.Errorf("locations[%d] %s: rental_yield must be a non-negative number", i, l.Name)
		}
	}
	return f.Locations, nil
}
