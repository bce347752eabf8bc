// Package export builds the comparison report document served to the PDF
// rendering collaborator. The document is a pure projection of a comparison
// result: every score is copied verbatim and never recomputed here, so the
// exported report always matches what the user saw on screen.
package export

import (
	"fmt"
	"time"

	"github.com/stevenyi0526-glitch/AirEaseWeb-sub002/internal/domain"
	"github.com/stevenyi0526-glitch/AirEaseWeb-sub002/internal/infrastructure/timeutil"
	"github.com/stevenyi0526-glitch/AirEaseWeb-sub002/internal/scoring"
)

// AmenityState is the tri-state presence marker for an amenity cell.
type AmenityState string

// Amenity cell states. Unknown is distinct from absent: the backend simply
// had no data for the flight.
const (
	AmenityYes     AmenityState = "yes"
	AmenityNo      AmenityState = "no"
	AmenityUnknown AmenityState = "unknown"
)

// Document is the export data contract.
type Document struct {
	// GeneratedAt is the document build time
	GeneratedAt time.Time `json:"generatedAt"`

	// Cards are the per-flight headline cards, in comparison order
	Cards []HeadlineCard `json:"cards"`

	// DimensionRows are the score table rows
	DimensionRows []DimensionRow `json:"dimensionRows"`

	// AmenityRows are the tri-state amenity table rows
	AmenityRows []AmenityRow `json:"amenityRows"`

	// ChartImageRef references the radar chart image captured client-side
	ChartImageRef string `json:"chartImageRef,omitempty"`
}

// HeadlineCard summarizes one flight at the top of the report.
type HeadlineCard struct {
	FlightID     string  `json:"flightId"`
	Airline      string  `json:"airline"`
	FlightNumber string  `json:"flightNumber"`
	Route        string  `json:"route"`
	Departure    string  `json:"departure"`
	Arrival      string  `json:"arrival"`
	OverallScore float64 `json:"overallScore"`
	Price        float64 `json:"price"`
	Currency     string  `json:"currency"`
	Duration     string  `json:"duration"`
	Stops        int     `json:"stops"`

	// BestOverall marks the compound badge: cheapest and highest-scored at once
	BestOverall bool `json:"bestOverall"`
}

// DimensionRow is one row of the score table.
type DimensionRow struct {
	// Label is the display name of the dimension
	Label string `json:"label"`

	// Cells hold per-flight values in comparison order
	Cells []ScoreCell `json:"cells"`
}

// ScoreCell is one flight's value in a dimension row.
type ScoreCell struct {
	FlightID string  `json:"flightId"`
	Score    float64 `json:"score"`

	// Best marks the row's winners; ties are all marked
	Best bool `json:"best"`
}

// AmenityRow is one row of the amenities table.
type AmenityRow struct {
	Label string        `json:"label"`
	Cells []AmenityCell `json:"cells"`
}

// AmenityCell is one flight's amenity state.
type AmenityCell struct {
	FlightID string       `json:"flightId"`
	State    AmenityState `json:"state"`

	// Best marks flights with the amenity known present
	Best bool `json:"best"`
}

// BuildDocument projects a comparison result into the export document.
// chartImageRef is the client-captured chart image reference and may be empty.
func BuildDocument(result *scoring.ComparisonResult, chartImageRef string) Document {
	doc := Document{
		GeneratedAt:   timeutil.NowUTC(),
		Cards:         make([]HeadlineCard, 0, len(result.Flights)),
		ChartImageRef: chartImageRef,
	}

	bestOverallIDs := idSet(result.BestOverall)
	for _, f := range result.Flights {
		doc.Cards = append(doc.Cards, HeadlineCard{
			FlightID:     f.Flight.ID,
			Airline:      f.Flight.Airline.Name,
			FlightNumber: f.Flight.FlightNumber,
			Route:        f.Flight.Route(),
			Departure:    pointLabel(f.Flight.Departure),
			Arrival:      pointLabel(f.Flight.Arrival),
			OverallScore: f.Dimensions.Overall,
			Price:        f.Flight.Price.Amount,
			Currency:     f.Flight.Price.Currency,
			Duration:     f.Flight.Duration.Formatted,
			Stops:        f.Flight.Stops,
			BestOverall:  bestOverallIDs[f.Flight.ID],
		})
	}

	doc.DimensionRows = buildDimensionRows(result)
	doc.AmenityRows = buildAmenityRows(result)
	return doc
}

// buildDimensionRows lays out the score table. Rows backed by a best-of
// metric take their winners from the comparison result; the remaining quality
// dimensions mark the highest copied value, ties included.
func buildDimensionRows(result *scoring.ComparisonResult) []DimensionRow {
	rows := []DimensionRow{
		metricRow(result, "Price", scoring.MetricPrice, func(f scoring.ComparedFlight) float64 { return f.PriceScore }),
		metricRow(result, "Duration", scoring.MetricDuration, func(f scoring.ComparedFlight) float64 { return f.DurationScore }),
		metricRow(result, "Stops", scoring.MetricStops, func(f scoring.ComparedFlight) float64 { return f.StopsScore }),
		highestValueRow(result, "Safety", func(f scoring.ComparedFlight) float64 { return f.Dimensions.Safety }),
		highestValueRow(result, "Reliability", func(f scoring.ComparedFlight) float64 { return f.Dimensions.Reliability }),
		highestValueRow(result, "Comfort", func(f scoring.ComparedFlight) float64 { return f.Dimensions.Comfort }),
		highestValueRow(result, "Service", func(f scoring.ComparedFlight) float64 { return f.Dimensions.Service }),
		highestValueRow(result, "Value", func(f scoring.ComparedFlight) float64 { return f.Dimensions.Value }),
		metricRow(result, "Overall", scoring.MetricOverall, func(f scoring.ComparedFlight) float64 { return f.Dimensions.Overall }),
	}
	return rows
}

// metricRow builds a row whose winners come from the aggregator's best map.
func metricRow(result *scoring.ComparisonResult, label string, metric scoring.Metric, value func(scoring.ComparedFlight) float64) DimensionRow {
	winners := idSet(result.Best[metric])
	row := DimensionRow{Label: label, Cells: make([]ScoreCell, 0, len(result.Flights))}
	for _, f := range result.Flights {
		row.Cells = append(row.Cells, ScoreCell{
			FlightID: f.Flight.ID,
			Score:    value(f),
			Best:     winners[f.Flight.ID],
		})
	}
	return row
}

// highestValueRow builds a row for a dimension without a best-of metric,
// marking the highest copied score.
func highestValueRow(result *scoring.ComparisonResult, label string, value func(scoring.ComparedFlight) float64) DimensionRow {
	best := value(result.Flights[0])
	for _, f := range result.Flights[1:] {
		if v := value(f); v > best {
			best = v
		}
	}

	row := DimensionRow{Label: label, Cells: make([]ScoreCell, 0, len(result.Flights))}
	for _, f := range result.Flights {
		v := value(f)
		row.Cells = append(row.Cells, ScoreCell{
			FlightID: f.Flight.ID,
			Score:    v,
			Best:     v == best,
		})
	}
	return row
}

// buildAmenityRows lays out the tri-state amenity table. Best markers come
// from the aggregator: only flights with the amenity known present win, and
// a row may have no winner at all.
func buildAmenityRows(result *scoring.ComparisonResult) []AmenityRow {
	amenities := []struct {
		label  string
		metric scoring.Metric
		field  func(*domain.Facilities) *bool
	}{
		{"WiFi", scoring.MetricWifi, func(f *domain.Facilities) *bool { return f.HasWifi }},
		{"Power outlets", scoring.MetricPower, func(f *domain.Facilities) *bool { return f.HasPower }},
		{"Entertainment", scoring.MetricIFE, func(f *domain.Facilities) *bool { return f.HasIFE }},
		{"Meal", scoring.MetricMeal, func(f *domain.Facilities) *bool { return f.MealIncluded }},
	}

	rows := make([]AmenityRow, 0, len(amenities))
	for _, a := range amenities {
		winners := idSet(result.Best[a.metric])
		row := AmenityRow{Label: a.label, Cells: make([]AmenityCell, 0, len(result.Flights))}
		for _, f := range result.Flights {
			row.Cells = append(row.Cells, AmenityCell{
				FlightID: f.Flight.ID,
				State:    amenityState(f.Flight.Facilities, a.field),
				Best:     winners[f.Flight.ID],
			})
		}
		rows = append(rows, row)
	}
	return rows
}

// amenityState maps a facility flag onto the tri-state display value.
func amenityState(facilities *domain.Facilities, field func(*domain.Facilities) *bool) AmenityState {
	if facilities == nil {
		return AmenityUnknown
	}
	flag := field(facilities)
	switch {
	case !domain.Known(flag):
		return AmenityUnknown
	case domain.KnownTrue(flag):
		return AmenityYes
	default:
		return AmenityNo
	}
}

// pointLabel renders a schedule endpoint as "City HH:MM" for the card.
func pointLabel(p domain.FlightPoint) string {
	return fmt.Sprintf("%s %s", p.City, timeutil.FormatClock(p.DateTime))
}

func idSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
