package models

import "sort"

// AirportRecord represents one US airport from the airport reference payload
// JSON field names match the payload exactly (case-sensitive)
type AirportRecord struct {
	City              string   `json:"City"`
	FAA               string   `json:"FAA"`
	IATA              string   `json:"IATA"` // Unique key
	ICAO              string   `json:"ICAO"`
	Airport           string   `json:"Airport"`
	Role              string   `json:"Role"`         // FAA role classification (e.g. P-L, P-M, P-S)
	Enplanements      string   `json:"Enplanements"` // Kept as given, e.g. "1,000,000"
	State             string   `json:"State"`
	StateAbbreviation string   `json:"StateAbbreviation"`
	Valid             Validity `json:"valid"`
	SSID              string   `json:"SSID,omitempty"` // Set only when Valid is ValidityVerified
}

// SSIDEntry is one known WiFi network for an airport
type SSIDEntry struct {
	IATA string `json:"IATA"`
	SSID string `json:"SSID"`
}

// Style returns the display style for the record's validity state
func (a AirportRecord) Style() Style {
	return StyleFor(a.Valid)
}

// Verify attaches a WiFi network name and marks the record verified.
// It reports false if the record was already verified; the existing SSID is kept.
func (a *AirportRecord) Verify(ssid string) bool {
	if a.Valid == ValidityVerified {
		return false
	}
	a.SSID = ssid
	a.Valid = ValidityVerified
	return true
}

// Collection maps IATA codes to airport records
type Collection map[string]AirportRecord

// NewCollection keys records by IATA code. Later records replace earlier ones with the same code.
func NewCollection(records []AirportRecord) Collection {
	c := make(Collection, len(records))
	for _, r := range records {
		c[r.IATA] = r
	}
	return c
}

// Len returns the number of airports in the collection
func (c Collection) Len() int {
	return len(c)
}

// Verified returns how many airports carry a verified SSID
func (c Collection) Verified() int {
	n := 0
	for _, r := range c {
		if r.Valid == ValidityVerified {
			n++
		}
	}
	return n
}

// Records returns the collection values sorted by IATA code
func (c Collection) Records() []AirportRecord {
	records := make([]AirportRecord, 0, len(c))
	for _, r := range c {
		records = append(records, r)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].IATA < records[j].IATA
	})
	return records
}

// FallbackAirport returns the placeholder record used when the dataset cannot be loaded
func FallbackAirport() AirportRecord {
	return AirportRecord{
		City:              "Portland",
		FAA:               "PDX",
		IATA:              "PDX",
		ICAO:              "KPDX",
		Airport:           "Portland International Airport",
		Role:              "P-S",
		Enplanements:      "1,000,000",
		State:             "OREGON",
		StateAbbreviation: "OR",
		Valid:             ValidityUnverified,
	}
}

// FallbackCollection returns a fresh collection holding only the fallback airport
func FallbackCollection() Collection {
	return NewCollection([]AirportRecord{FallbackAirport()})
}
