package handler

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"countries/internal/countries/models"
	"countries/internal/countries/search"
	"countries/internal/countries/view"
)

// CountrySummary is one card of the country list.
type CountrySummary struct {
	Name              string  `json:"name"`
	Code              string  `json:"code"`
	Capital           *string `json:"capital,omitempty"`
	Population        *int64  `json:"population,omitempty"`
	PopulationDisplay string  `json:"population_display"`
	Region            string  `json:"region"`
	Flag              string  `json:"flag"`
}

// NeighborResponse is one border code and its resolved name.
type NeighborResponse struct {
	Code     string `json:"code"`
	Name     string `json:"name,omitempty"`
	Resolved bool   `json:"resolved"`
}

// CountryDetail is the full detail page of one country.
type CountryDetail struct {
	Name                 string             `json:"name"`
	OfficialName         string             `json:"official_name,omitempty"`
	Code                 string             `json:"code"`
	NativeNames          []string           `json:"native_names"`
	Capital              *string            `json:"capital,omitempty"`
	Population           *int64             `json:"population,omitempty"`
	PopulationDisplay    string             `json:"population_display"`
	Region               string             `json:"region"`
	Subregion            *string            `json:"subregion,omitempty"`
	TopLevelDomain       string             `json:"top_level_domain,omitempty"`
	TopLevelDomains      []string           `json:"top_level_domains"`
	Currencies           []string           `json:"currencies"`
	Languages            []string           `json:"languages"`
	Flag                 string             `json:"flag"`
	Borders              models.BorderCodes `json:"borders"`
	BorderCountries      []string           `json:"border_countries"`
	Neighbors            []NeighborResponse `json:"neighbors"`
	NeighborsUnavailable bool               `json:"neighbors_unavailable"`
}

// SearchResponse is the result of GET /api/countries.
type SearchResponse struct {
	Query     string           `json:"query"`
	Region    string           `json:"region"`
	Mode      string           `json:"mode"`
	Count     int              `json:"count"`
	Countries []CountrySummary `json:"countries"`
	// Degraded is set when the remote fetch failed and the list is empty.
	Degraded bool `json:"degraded"`
}

// StateResponse is the displayed state of a session.
type StateResponse struct {
	SessionID string         `json:"session_id"`
	Search    SearchResponse `json:"search"`
	Loading   bool           `json:"loading"`
	Detail    *CountryDetail `json:"detail,omitempty"`
}

// RegionsResponse lists the region filter values.
type RegionsResponse struct {
	Regions []string `json:"regions"`
}

var printer = message.NewPrinter(language.English)

func formatPopulation(p *int64) string {
	if p == nil {
		return "unknown"
	}
	return printer.Sprintf("%d", *p)
}

func toSummary(r models.CountryRecord) CountrySummary {
	return CountrySummary{
		Name:              r.Name,
		Code:              r.Code,
		Capital:           r.Capital,
		Population:        r.Population,
		PopulationDisplay: formatPopulation(r.Population),
		Region:            r.Region,
		Flag:              r.Flag,
	}
}

func toSearchResponse(res search.Result) SearchResponse {
	countries := make([]CountrySummary, 0, len(res.Records))
	for _, r := range res.Records {
		countries = append(countries, toSummary(r))
	}
	return SearchResponse{
		Query:     res.State.Query,
		Region:    res.State.Region.String(),
		Mode:      string(res.Mode),
		Count:     len(countries),
		Countries: countries,
		Degraded:  res.Degraded(),
	}
}

func toDetail(d view.Detail) CountryDetail {
	r := d.Record
	neighbors := make([]NeighborResponse, 0, len(d.Neighbors.Codes))
	for _, n := range d.Neighbors.Neighbors() {
		neighbors = append(neighbors, NeighborResponse{Code: n.Code, Name: n.Name, Resolved: n.Resolved})
	}
	return CountryDetail{
		Name:                 r.Name,
		OfficialName:         r.OfficialName,
		Code:                 r.Code,
		NativeNames:          r.NativeNameList(),
		Capital:              r.Capital,
		Population:           r.Population,
		PopulationDisplay:    formatPopulation(r.Population),
		Region:               r.Region,
		Subregion:            r.Subregion,
		TopLevelDomain:       r.PrimaryTLD(),
		TopLevelDomains:      r.TLDs,
		Currencies:           r.CurrencyNames(),
		Languages:            r.LanguageNames(),
		Flag:                 r.Flag,
		Borders:              r.Borders,
		BorderCountries:      d.Neighbors.Names(),
		Neighbors:            neighbors,
		NeighborsUnavailable: d.Neighbors.Unavailable,
	}
}

func toStateResponse(sessionID string, snap view.Snapshot) StateResponse {
	resp := StateResponse{
		SessionID: sessionID,
		Search: toSearchResponse(search.Result{
			State:   snap.State,
			Mode:    snap.Mode,
			Records: snap.Records,
			Failure: snap.Failure,
		}),
		Loading: snap.Loading,
	}
	if snap.Detail != nil {
		d := toDetail(*snap.Detail)
		resp.Detail = &d
	}
	return resp
}
