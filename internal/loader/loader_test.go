package loader

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"airless/internal/models"
)

// MockSource is a mock implementation of the Source interface.
type MockSource struct {
	mock.Mock
}

func (m *MockSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func assertFallback(t *testing.T, c models.Collection) {
	t.Helper()
	records := c.Records()
	require.Len(t, records, 1)
	assert.Equal(t, models.FallbackAirport(), records[0])
	assert.Equal(t, "PDX", records[0].IATA)
	assert.Equal(t, models.ValidityUnverified, records[0].Valid)
}

func TestLoader_Load_VerifiedAirport(t *testing.T) {
	src := new(MockSource)
	src.On("Fetch", mock.Anything, "airports.json").Return([]byte(`[`+portlandJSON+`]`), nil).Once()
	src.On("Fetch", mock.Anything, "ssid.json").Return([]byte(`[{"IATA":"PDX","SSID":"flypdx"}]`), nil).Once()

	c := NewLoader(src).Load(context.Background())

	require.Equal(t, 1, c.Len())
	rec := c["PDX"]
	assert.Equal(t, "PDX", rec.IATA)
	assert.Equal(t, models.ValidityVerified, rec.Valid)
	assert.Equal(t, "flypdx", rec.SSID)
	src.AssertExpectations(t)
}

func TestLoader_Load_InvalidRecordGivesEmptyCollection(t *testing.T) {
	missingICAO := `[{"City":"Portland","FAA":"PDX","IATA":"PDX","Airport":"Portland International Airport",
		"Role":"P-S","Enplanements":"1,000,000","State":"OREGON","StateAbbreviation":"OR"}]`

	src := new(MockSource)
	src.On("Fetch", mock.Anything, "airports.json").Return([]byte(missingICAO), nil).Once()
	src.On("Fetch", mock.Anything, "ssid.json").Return([]byte(`[{"IATA":"PDX","SSID":"flypdx"}]`), nil).Once()

	c := NewLoader(src).Load(context.Background())

	assert.NotNil(t, c)
	assert.Equal(t, 0, c.Len())
	src.AssertExpectations(t)
}

func TestLoader_Load_UnknownSSIDKeyIgnored(t *testing.T) {
	src := new(MockSource)
	src.On("Fetch", mock.Anything, "airports.json").Return([]byte(`[`+portlandJSON+`]`), nil).Once()
	src.On("Fetch", mock.Anything, "ssid.json").Return([]byte(`[{"IATA":"ZZZ","SSID":"nowhere"}]`), nil).Once()

	snap, err := NewLoader(src).Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, snap.Airports.Len())
	_, ok := snap.Airports["ZZZ"]
	assert.False(t, ok)
	assert.Equal(t, models.ValidityUnverified, snap.Airports["PDX"].Valid)
	assert.Equal(t, 1, snap.Stats.Unmatched)
	assert.Equal(t, 0, snap.Stats.Matched)
}

func TestLoader_Load_FallbackOnErrors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(src *MockSource)
	}{
		{
			name: "airports transport error",
			setup: func(src *MockSource) {
				src.On("Fetch", mock.Anything, "airports.json").Return(nil, &TransportError{Location: "airports.json", StatusCode: 500}).Once()
			},
		},
		{
			name: "airports invalid JSON",
			setup: func(src *MockSource) {
				src.On("Fetch", mock.Anything, "airports.json").Return([]byte(`not json`), nil).Once()
			},
		},
		{
			name: "airports root not an array",
			setup: func(src *MockSource) {
				src.On("Fetch", mock.Anything, "airports.json").Return([]byte(portlandJSON), nil).Once()
			},
		},
		{
			name: "SSID transport error",
			setup: func(src *MockSource) {
				src.On("Fetch", mock.Anything, "airports.json").Return([]byte(`[`+portlandJSON+`]`), nil).Once()
				src.On("Fetch", mock.Anything, "ssid.json").Return(nil, errors.New("connection refused")).Once()
			},
		},
		{
			name: "SSID invalid JSON",
			setup: func(src *MockSource) {
				src.On("Fetch", mock.Anything, "airports.json").Return([]byte(`[`+portlandJSON+`]`), nil).Once()
				src.On("Fetch", mock.Anything, "ssid.json").Return([]byte(`{"IATA":`), nil).Once()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := new(MockSource)
			tt.setup(src)

			assertFallback(t, NewLoader(src).Load(context.Background()))
			src.AssertExpectations(t)
		})
	}
}

func TestLoader_Fetch_SSIDNotRequestedAfterFailedValidation(t *testing.T) {
	src := new(MockSource)
	src.On("Fetch", mock.Anything, "airports.json").Return([]byte(`{"airports":[]}`), nil).Once()

	_, err := NewLoader(src).Fetch(context.Background())

	var invalid *InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "object", invalid.Got)
	src.AssertNotCalled(t, "Fetch", mock.Anything, "ssid.json")
}

func TestLoader_Fetch_ErrorTypes(t *testing.T) {
	src := new(MockSource)
	src.On("Fetch", mock.Anything, "airports.json").Return([]byte(`[`), nil).Once()

	_, err := NewLoader(src).Fetch(context.Background())

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "airports.json", parseErr.Resource)
}

func TestLoader_Fetch_StrictJoin(t *testing.T) {
	src := new(MockSource)
	src.On("Fetch", mock.Anything, "a.json").Return([]byte(`[`+portlandJSON+`]`), nil).Twice()
	src.On("Fetch", mock.Anything, "s.json").Return([]byte(`[{"IATA":"ZZZ","SSID":"nowhere"}]`), nil).Twice()

	l := NewLoaderWithConfig(src, "a.json", "s.json", true)

	_, err := l.Fetch(context.Background())
	var notFound *JoinKeyNotFoundError
	require.ErrorAs(t, err, &notFound)

	assertFallback(t, l.Load(context.Background()))
	src.AssertExpectations(t)
}

func TestLoader_Fetch_Snapshot(t *testing.T) {
	airports := []byte(`[` + portlandJSON + `, {"IATA":"SEA"}]`)
	ssids := []byte(`[{"IATA":"PDX","SSID":"flypdx"},{"IATA":"PDX","SSID":"again"},{"IATA":"ZZZ","SSID":"x"}]`)

	src := new(MockSource)
	src.On("Fetch", mock.Anything, "airports.json").Return(airports, nil).Twice()
	src.On("Fetch", mock.Anything, "ssid.json").Return(ssids, nil).Twice()

	l := NewLoader(src)
	first, err := l.Fetch(context.Background())
	require.NoError(t, err)
	second, err := l.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Stats{
		Received:    2,
		Kept:        1,
		Dropped:     1,
		SSIDEntries: 3,
		Matched:     1,
		Unmatched:   1,
		Ignored:     1,
	}, first.Stats)
	assert.NotEmpty(t, first.Checksum)
	assert.Equal(t, first.Checksum, second.Checksum)
	assert.NotEqual(t, first.ID, second.ID)
	assert.WithinDuration(t, time.Now(), first.LoadedAt, time.Minute)

	// Each load builds its own collection
	first.Airports["PDX"] = models.AirportRecord{}
	assert.Equal(t, "flypdx", second.Airports["PDX"].SSID)
}

func TestLoader_Load_HTTP(t *testing.T) {
	tests := []struct {
		name         string
		airportsCode int
		check        func(t *testing.T, c models.Collection)
	}{
		{
			name:         "both payloads served",
			airportsCode: http.StatusOK,
			check: func(t *testing.T, c models.Collection) {
				require.Equal(t, 1, c.Len())
				assert.Equal(t, models.ValidityVerified, c["PDX"].Valid)
				assert.Equal(t, "flypdx", c["PDX"].SSID)
			},
		},
		{
			name:         "airports returns 500",
			airportsCode: http.StatusInternalServerError,
			check:        assertFallback,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				switch r.URL.Path {
				case "/data/airports.json":
					w.WriteHeader(tt.airportsCode)
					w.Write([]byte(`[` + portlandJSON + `]`))
				case "/data/ssid.json":
					w.WriteHeader(http.StatusOK)
					w.Write([]byte(`[{"IATA":"PDX","SSID":"flypdx"}]`))
				default:
					w.WriteHeader(http.StatusNotFound)
				}
			}))
			defer server.Close()

			src, err := NewSource(server.URL+"/data/", 5*time.Second)
			require.NoError(t, err)

			tt.check(t, NewLoader(src).Load(context.Background()))
		})
	}
}
