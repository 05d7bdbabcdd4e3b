package search

import (
	"strings"

	"golang.org/x/text/cases"

	"countries/internal/countries/models"
)

// Filter narrows records to those in region whose common name contains query.
// It never reorders records and returns the input unchanged when neither filter
// is active. Matching folds case with Unicode rules, so "ÅLAND" matches "åland".
//
// Filter is idempotent: Filter(Filter(r, q, g), q, g) equals Filter(r, q, g).
func Filter(records []models.CountryRecord, query string, region models.Region) []models.CountryRecord {
	query = strings.TrimSpace(query)
	if query == "" && region.IsAll() {
		return records
	}

	byRegion := records
	if !region.IsAll() {
		byRegion = make([]models.CountryRecord, 0, len(records))
		for _, r := range records {
			if r.Region == string(region) {
				byRegion = append(byRegion, r)
			}
		}
	}

	if query == "" {
		return byRegion
	}

	fold := cases.Fold()
	needle := fold.String(query)
	out := make([]models.CountryRecord, 0, len(byRegion))
	for _, r := range byRegion {
		if strings.Contains(fold.String(r.Name), needle) {
			out = append(out, r)
		}
	}
	return out
}
