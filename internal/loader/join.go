package loader

import (
	"log/slog"

	"airless/internal/models"
)

type joinStats struct {
	matched   int
	unmatched int
	ignored   int
}

// Join keys records by IATA code and attaches each SSID entry to its airport, marking it verified.
// Entries naming an unknown airport are skipped, or returned as a JoinKeyNotFoundError when strict is set.
// An airport keeps the first SSID attached to it.
func Join(records []models.AirportRecord, entries []models.SSIDEntry, strict bool) (models.Collection, error) {
	c, _, err := join(slog.Default(), records, entries, strict)
	return c, err
}

func join(logger *slog.Logger, records []models.AirportRecord, entries []models.SSIDEntry, strict bool) (models.Collection, joinStats, error) {
	var stats joinStats

	c := models.NewCollection(records)
	if dups := len(records) - c.Len(); dups > 0 {
		logger.Warn("Airport payload repeats IATA codes, keeping the last record for each", "duplicates", dups)
	}

	for _, entry := range entries {
		if entry.IATA == "" || entry.SSID == "" {
			logger.Warn("Ignored incomplete SSID entry", "iata", entry.IATA, "ssid", entry.SSID)
			stats.ignored++
			continue
		}

		rec, ok := c[entry.IATA]
		if !ok {
			if strict {
				return nil, stats, &JoinKeyNotFoundError{IATA: entry.IATA}
			}
			logger.Warn("Skipped SSID entry for unknown airport", "iata", entry.IATA, "ssid", entry.SSID)
			stats.unmatched++
			continue
		}

		if !rec.Verify(entry.SSID) {
			logger.Warn("Ignored duplicate SSID entry",
				"iata", entry.IATA,
				"ssid", entry.SSID,
				"kept", rec.SSID,
			)
			stats.ignored++
			continue
		}

		c[entry.IATA] = rec
		stats.matched++
	}

	return c, stats, nil
}
