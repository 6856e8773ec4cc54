package loader

import (
	"log/slog"

	"airless/internal/models"
)

// requiredFields are the airport payload fields every record must carry as non-empty strings
var requiredFields = []string{
	"City",
	"FAA",
	"IATA",
	"ICAO",
	"Airport",
	"Role",
	"Enplanements",
	"State",
	"StateAbbreviation",
}

// Validate filters a decoded airport payload down to well-formed records.
// The payload must be a JSON array; anything else returns an InvalidInputError.
// Elements missing a required field are dropped and logged. Every returned record is unverified.
func Validate(payload any) ([]models.AirportRecord, error) {
	return validate(slog.Default(), payload)
}

func validate(logger *slog.Logger, payload any) ([]models.AirportRecord, error) {
	items, ok := payload.([]any)
	if !ok {
		return nil, &InvalidInputError{Got: jsonKind(payload)}
	}

	records := make([]models.AirportRecord, 0, len(items))
	for i, item := range items {
		rec, field, ok := toAirportRecord(item)
		if !ok {
			logger.Warn("Dropped invalid airport record",
				"index", i,
				"field", field,
				"kind", jsonKind(item),
			)
			continue
		}
		records = append(records, rec)
	}

	return records, nil
}

// toAirportRecord converts one decoded element. On failure it returns the first offending field name.
func toAirportRecord(item any) (models.AirportRecord, string, bool) {
	obj, ok := item.(map[string]any)
	if !ok {
		return models.AirportRecord{}, "", false
	}

	values := make(map[string]string, len(requiredFields))
	for _, field := range requiredFields {
		s, ok := obj[field].(string)
		if !ok || s == "" {
			return models.AirportRecord{}, field, false
		}
		values[field] = s
	}

	return models.AirportRecord{
		City:              values["City"],
		FAA:               values["FAA"],
		IATA:              values["IATA"],
		ICAO:              values["ICAO"],
		Airport:           values["Airport"],
		Role:              values["Role"],
		Enplanements:      values["Enplanements"],
		State:             values["State"],
		StateAbbreviation: values["StateAbbreviation"],
		Valid:             models.ValidityUnverified,
	}, "", true
}
