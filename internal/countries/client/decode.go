package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"countries/internal/countries/models"
)

// codeLength is the fixed length of a cca3 border code.
const codeLength = 3

type wireNativeName struct {
	Official string `json:"official"`
	Common   string `json:"common"`
}

type wireName struct {
	Common     string                    `json:"common"`
	Official   string                    `json:"official"`
	NativeName map[string]wireNativeName `json:"nativeName"`
}

type wireCurrency struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

type wireFlags struct {
	PNG string `json:"png"`
	SVG string `json:"svg"`
}

// wireCountry mirrors the remote payload. Pointer and map fields stay nil when
// the service omits them so absence survives into the model.
type wireCountry struct {
	Name       wireName                `json:"name"`
	CCA3       string                  `json:"cca3"`
	Capital    []string                `json:"capital"`
	Population *int64                  `json:"population"`
	Region     string                  `json:"region"`
	Subregion  string                  `json:"subregion"`
	TLD        []string                `json:"tld"`
	Currencies map[string]wireCurrency `json:"currencies"`
	Languages  map[string]string       `json:"languages"`
	Flags      wireFlags               `json:"flags"`
	Borders    *[]string               `json:"borders"`
}

// decodeRecords parses a response body into normalized records.
// The service reports some failures as a JSON object ({"status":..,"message":..})
// instead of an array, so the shape is checked before decoding.
func decodeRecords(body []byte) ([]models.CountryRecord, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.New("malformed JSON payload")
	}
	parsed := gjson.ParseBytes(body)
	if !parsed.IsArray() {
		if msg := parsed.Get("message"); msg.Exists() {
			return nil, fmt.Errorf("expected array, got error object: %s", msg.String())
		}
		return nil, fmt.Errorf("expected array, got %s", parsed.Type)
	}

	var wire []wireCountry
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("decode countries: %w", err)
	}

	records := make([]models.CountryRecord, 0, len(wire))
	for _, w := range wire {
		records = append(records, w.toModel())
	}
	return records, nil
}

func (w wireCountry) toModel() models.CountryRecord {
	rec := models.CountryRecord{
		Name:         w.Name.Common,
		OfficialName: w.Name.Official,
		Code:         strings.ToUpper(strings.TrimSpace(w.CCA3)),
		Region:       w.Region,
		TLDs:         w.TLD,
		Languages:    w.Languages,
		Flag:         w.Flags.PNG,
		Borders:      models.NoBorders(),
	}
	if rec.TLDs == nil {
		rec.TLDs = []string{}
	}

	if w.Name.NativeName != nil {
		rec.NativeNames = make(map[string]string, len(w.Name.NativeName))
		for lang, n := range w.Name.NativeName {
			rec.NativeNames[lang] = n.Common
		}
	}

	if len(w.Capital) > 0 && w.Capital[0] != "" {
		capital := w.Capital[0]
		rec.Capital = &capital
	}

	if w.Population != nil && *w.Population >= 0 {
		pop := *w.Population
		rec.Population = &pop
	}

	if w.Subregion != "" {
		sub := w.Subregion
		rec.Subregion = &sub
	}

	if w.Currencies != nil {
		rec.Currencies = make(map[string]models.Currency, len(w.Currencies))
		for code, c := range w.Currencies {
			rec.Currencies[code] = models.Currency{Name: c.Name, Symbol: c.Symbol}
		}
	}

	if w.Borders != nil {
		codes := make([]string, 0, len(*w.Borders))
		for _, code := range *w.Borders {
			code = strings.ToUpper(strings.TrimSpace(code))
			if len(code) != codeLength {
				continue
			}
			codes = append(codes, code)
		}
		rec.Borders = models.Borders(codes...)
	}

	return rec
}
