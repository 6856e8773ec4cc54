package loader

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"airless/internal/models"
)

const (
	DefaultAirportsName = "airports.json"
	DefaultSSIDName     = "ssid.json"
)

// Snapshot is the result of one successful run of the load pipeline
type Snapshot struct {
	ID       uuid.UUID
	LoadedAt time.Time
	Checksum string // xxhash of both payloads, hex encoded
	Airports models.Collection
	Stats    Stats
}

// Stats counts what happened to each payload during a load
type Stats struct {
	Received    int // airport payload elements
	Kept        int // airport records that passed validation
	Dropped     int // airport records rejected by validation
	SSIDEntries int
	Matched     int // SSID entries attached to an airport
	Unmatched   int // SSID entries naming an unknown airport
	Ignored     int // incomplete or duplicate SSID entries
}

// Loader fetches the airport and SSID payloads and joins them into a collection
type Loader struct {
	source       Source
	airportsName string
	ssidName     string
	strict       bool // fail the load when an SSID entry names an unknown airport
}

// NewLoader uses the default payload names and a lenient join
func NewLoader(source Source) *Loader {
	return &Loader{
		source:       source,
		airportsName: DefaultAirportsName,
		ssidName:     DefaultSSIDName,
	}
}

// NewLoaderWithConfig creates a loader with custom payload names and join policy
func NewLoaderWithConfig(source Source, airportsName, ssidName string, strict bool) *Loader {
	return &Loader{
		source:       source,
		airportsName: airportsName,
		ssidName:     ssidName,
		strict:       strict,
	}
}

// Load runs the pipeline and never fails: on any error it logs and returns the fallback collection.
// An airport payload with no valid records yields an empty collection, not the fallback.
func (l *Loader) Load(ctx context.Context) models.Collection {
	snap, err := l.Fetch(ctx)
	if err != nil {
		slog.Error("Error fetching airport data, using fallback", "error", err)
		return models.FallbackCollection()
	}
	return snap.Airports
}

// Fetch runs the pipeline and returns the first error encountered.
// The SSID payload is only requested once the airport payload has been validated.
func (l *Loader) Fetch(ctx context.Context) (*Snapshot, error) {
	id := uuid.New()
	logger := slog.With("load_id", id.String())
	digest := xxhash.New()

	airportsData, err := l.source.Fetch(ctx, l.airportsName)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch airports: %w", err)
	}
	digest.Write(airportsData)

	var payload any
	if err := json.Unmarshal(airportsData, &payload); err != nil {
		return nil, &ParseError{Resource: l.airportsName, Err: err}
	}

	records, err := validate(logger, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to validate airports: %w", err)
	}
	received := len(payload.([]any))
	logger.Debug("Validated airport payload", "received", received, "kept", len(records))

	ssidData, err := l.source.Fetch(ctx, l.ssidName)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch SSIDs: %w", err)
	}
	digest.Write([]byte{0})
	digest.Write(ssidData)

	var entries []models.SSIDEntry
	if err := json.Unmarshal(ssidData, &entries); err != nil {
		return nil, &ParseError{Resource: l.ssidName, Err: err}
	}

	airports, js, err := join(logger, records, entries, l.strict)
	if err != nil {
		return nil, fmt.Errorf("failed to join SSIDs: %w", err)
	}

	snap := &Snapshot{
		ID:       id,
		LoadedAt: time.Now(),
		Checksum: hex.EncodeToString(digest.Sum(nil)),
		Airports: airports,
		Stats: Stats{
			Received:    received,
			Kept:        len(records),
			Dropped:     received - len(records),
			SSIDEntries: len(entries),
			Matched:     js.matched,
			Unmatched:   js.unmatched,
			Ignored:     js.ignored,
		},
	}

	logger.Info("Loaded airport data",
		"airports", airports.Len(),
		"verified", airports.Verified(),
		"dropped", snap.Stats.Dropped,
		"unmatched_ssids", snap.Stats.Unmatched,
		"checksum", snap.Checksum,
	)

	return snap, nil
}
