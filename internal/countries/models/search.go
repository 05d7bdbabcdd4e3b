package models

import "strings"

// SearchState is the transient query/region pair a view searches with.
type SearchState struct {
	Query  string
	Region Region
}

// NewSearchState trims the query and validates the region.
func NewSearchState(query, region string) (SearchState, error) {
	r, err := ParseRegion(region)
	if err != nil {
		return SearchState{}, err
	}
	return SearchState{Query: strings.TrimSpace(query), Region: r}, nil
}

// DefaultSearchState is the empty query over all regions.
func DefaultSearchState() SearchState {
	return SearchState{Region: RegionAll}
}

// IsDefault reports whether neither filter is active.
func (s SearchState) IsDefault() bool {
	return strings.TrimSpace(s.Query) == "" && s.Region.IsAll()
}
