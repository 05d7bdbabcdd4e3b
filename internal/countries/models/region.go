package models

import (
	"fmt"
	"strings"

	"countries/pkg/platform/sentinel"
)

// Region is one of the fixed continental regions the service can filter by,
// or RegionAll for no filter.
type Region string

const (
	RegionAll      Region = "all"
	RegionAfrica   Region = "Africa"
	RegionAmericas Region = "Americas"
	RegionAsia     Region = "Asia"
	RegionEurope   Region = "Europe"
	RegionOceania  Region = "Oceania"
)

// Regions lists the filterable regions in display order.
var Regions = []Region{RegionAfrica, RegionAmericas, RegionAsia, RegionEurope, RegionOceania}

// ParseRegion maps user input onto a Region. Matching is case-insensitive and an
// empty string means RegionAll.
func ParseRegion(s string) (Region, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, string(RegionAll)) {
		return RegionAll, nil
	}
	for _, r := range Regions {
		if strings.EqualFold(s, string(r)) {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown region %q: %w", s, sentinel.ErrInvalidInput)
}

// IsAll reports whether the region disables filtering.
func (r Region) IsAll() bool {
	return r == RegionAll || r == ""
}

// IsValid reports whether r is RegionAll or one of Regions.
func (r Region) IsValid() bool {
	if r.IsAll() {
		return true
	}
	for _, known := range Regions {
		if r == known {
			return true
		}
	}
	return false
}

func (r Region) String() string {
	if r == "" {
		return string(RegionAll)
	}
	return string(r)
}
