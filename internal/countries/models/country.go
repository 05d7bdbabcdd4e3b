package models

import (
	"encoding/json"
	"sort"
)

// Currency is a single entry of a country's currency table.
type Currency struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol,omitempty"`
}

// BorderCodes holds the 3-letter codes of a country's land neighbors.
// Present is false when the service omitted the field entirely, which is not the
// same fact as an empty list even though both render as "no border countries".
type BorderCodes struct {
	Codes   []string
	Present bool
}

// NoBorders returns an absent border list.
func NoBorders() BorderCodes {
	return BorderCodes{}
}

// Borders returns a present border list. A nil slice becomes an empty one.
func Borders(codes ...string) BorderCodes {
	if codes == nil {
		codes = []string{}
	}
	return BorderCodes{Codes: codes, Present: true}
}

// Empty reports whether there is nothing to resolve.
func (b BorderCodes) Empty() bool {
	return !b.Present || len(b.Codes) == 0
}

// MarshalJSON writes null for an absent list and [] for an empty one.
func (b BorderCodes) MarshalJSON() ([]byte, error) {
	if !b.Present {
		return []byte("null"), nil
	}
	codes := b.Codes
	if codes == nil {
		codes = []string{}
	}
	return json.Marshal(codes)
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (b *BorderCodes) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*b = NoBorders()
		return nil
	}
	var codes []string
	if err := json.Unmarshal(data, &codes); err != nil {
		return err
	}
	*b = Borders(codes...)
	return nil
}

// CountryRecord is one country as returned by the remote service, normalized.
// Optional attributes are pointers or nil maps; nil always means "not provided".
type CountryRecord struct {
	Name         string              `json:"name"`
	OfficialName string              `json:"official_name,omitempty"`
	Code         string              `json:"code"`
	NativeNames  map[string]string   `json:"native_names,omitempty"`
	Capital      *string             `json:"capital,omitempty"`
	Population   *int64              `json:"population,omitempty"`
	Region       string              `json:"region"`
	Subregion    *string             `json:"subregion,omitempty"`
	TLDs         []string            `json:"tlds"`
	Currencies   map[string]Currency `json:"currencies,omitempty"`
	Languages    map[string]string   `json:"languages,omitempty"`
	Flag         string              `json:"flag"`
	Borders      BorderCodes         `json:"borders"`
}

// PrimaryTLD returns the first top-level domain, or "" when none is listed.
func (c CountryRecord) PrimaryTLD() string {
	if len(c.TLDs) == 0 {
		return ""
	}
	return c.TLDs[0]
}

// PopulationOrZero returns the population, treating an unknown value as zero.
func (c CountryRecord) PopulationOrZero() int64 {
	if c.Population == nil {
		return 0
	}
	return *c.Population
}

// HasBorders reports whether the record lists at least one neighbor code.
func (c CountryRecord) HasBorders() bool {
	return !c.Borders.Empty()
}

// CurrencyNames lists currency names ordered by currency code.
func (c CountryRecord) CurrencyNames() []string {
	codes := sortedKeys(c.Currencies)
	names := make([]string, 0, len(codes))
	for _, code := range codes {
		names = append(names, c.Currencies[code].Name)
	}
	return names
}

// LanguageNames lists language names ordered by language code.
func (c CountryRecord) LanguageNames() []string {
	codes := sortedKeys(c.Languages)
	names := make([]string, 0, len(codes))
	for _, code := range codes {
		names = append(names, c.Languages[code])
	}
	return names
}

// NativeNameList lists native names ordered by language code, without repeats.
// Several languages often share one spelling (e.g. "Schweiz" is not repeated).
func (c CountryRecord) NativeNameList() []string {
	codes := sortedKeys(c.NativeNames)
	seen := make(map[string]struct{}, len(codes))
	names := make([]string, 0, len(codes))
	for _, code := range codes {
		n := c.NativeNames[code]
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		names = append(names, n)
	}
	return names
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
