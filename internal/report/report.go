package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"airless/internal/models"
)

// Row is an airport record with the style a UI should render it with
type Row struct {
	models.AirportRecord
	Status string       `json:"status"`
	Style  models.Style `json:"style"`
}

// Rows converts a collection into rows sorted by IATA code
func Rows(c models.Collection) []Row {
	records := c.Records()
	rows := make([]Row, 0, len(records))
	for _, r := range records {
		rows = append(rows, Row{
			AirportRecord: r,
			Status:        r.Valid.String(),
			Style:         r.Style(),
		})
	}
	return rows
}

// Write renders the collection in the given format ("text" or "json")
func Write(w io.Writer, c models.Collection, format string) error {
	switch strings.ToLower(format) {
	case "json":
		return WriteJSON(w, c)
	case "text":
		return WriteText(w, c)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

// WriteJSON writes the rows as an indented JSON array
func WriteJSON(w io.Writer, c models.Collection) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Rows(c)); err != nil {
		return fmt.Errorf("failed to encode airports: %w", err)
	}
	return nil
}

// WriteText writes one aligned line per airport
func WriteText(w io.Writer, c models.Collection) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "IATA\tICAO\tCITY\tAIRPORT\tSSID\tSTATUS")
	for _, row := range Rows(c) {
		ssid := row.SSID
		if ssid == "" {
			ssid = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s, %s\t%s\t%s\t%s\n",
			row.IATA, row.ICAO, row.City, row.StateAbbreviation, row.Airport, ssid, row.Status)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write airports: %w", err)
	}
	return nil
}
