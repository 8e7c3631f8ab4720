package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// OutputFormat selects how a computed chart is rendered.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatBoth OutputFormat = "both"
)

// ParseOutputFormat validates a user-supplied format selector.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(strings.TrimSpace(s)) {
	case FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatBoth:
		return FormatBoth, nil
	}
	return "", &OpError{
		Op:   "domain.parse_format",
		Kind: KindInvalidInput,
		Err:  fmt.Errorf("unsupported format %q (expected text|json|both)", s),
	}
}

// HouseSystem names a house division method. The value set is owned by the
// computation engine; the plugin forwards it verbatim.
type HouseSystem string

const HouseSystemPlacidus HouseSystem = "Placidus"

// Coordinates are geographic decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// BirthLayout is the wall-clock layout accepted by --birth.
const BirthLayout = "2006-01-02 15:04"

var tzRe = regexp.MustCompile(`^[+-](?:0\d|1\d|2[0-3]):[0-5]\d$`)

// ChartRequest is the flat parameter record forwarded from the host CLI to the
// computation engine. It lives for a single invocation.
type ChartRequest struct {
	Person      string
	Birth       string // local wall time, BirthLayout
	TZ          string // signed UTC offset, e.g. "+02:00"
	Location    Coordinates
	HouseSystem HouseSystem
	Format      OutputFormat
	EphePath    string // explicit --ephe-path value; may be empty
}

// Validate checks the request without touching the filesystem or the engine.
func (r ChartRequest) Validate() error {
	if strings.TrimSpace(r.Person) == "" {
		return invalidInput("person is required")
	}
	if _, err := time.Parse(BirthLayout, strings.TrimSpace(r.Birth)); err != nil {
		return invalidInput(fmt.Sprintf("invalid birth %q (expected YYYY-MM-DD HH:MM)", r.Birth))
	}
	if !tzRe.MatchString(strings.TrimSpace(r.TZ)) {
		return invalidInput(fmt.Sprintf("invalid tz %q (expected offset like +02:00)", r.TZ))
	}
	if r.Location.Lat < -90 || r.Location.Lat > 90 {
		return invalidInput(fmt.Sprintf("latitude %v out of range [-90, 90]", r.Location.Lat))
	}
	if r.Location.Lon < -180 || r.Location.Lon > 180 {
		return invalidInput(fmt.Sprintf("longitude %v out of range [-180, 180]", r.Location.Lon))
	}
	if strings.TrimSpace(string(r.HouseSystem)) == "" {
		return invalidInput("house system is required")
	}
	if _, err := ParseOutputFormat(string(r.Format)); err != nil {
		return err
	}
	return nil
}

// UTC converts the local birth time plus UTC offset to the instant forwarded to
// the engine.
func (r ChartRequest) UTC() (time.Time, error) {
	tz := strings.TrimSpace(r.TZ)
	if !tzRe.MatchString(tz) {
		return time.Time{}, invalidInput(fmt.Sprintf("invalid tz %q (expected offset like +02:00)", r.TZ))
	}

	hours, _ := strconv.Atoi(tz[1:3])
	mins, _ := strconv.Atoi(tz[4:6])
	offset := hours*3600 + mins*60
	if tz[0] == '-' {
		offset = -offset
	}

	local, err := time.ParseInLocation(BirthLayout, strings.TrimSpace(r.Birth), time.FixedZone("UTC"+tz, offset))
	if err != nil {
		return time.Time{}, invalidInput(fmt.Sprintf("invalid birth %q (expected YYYY-MM-DD HH:MM)", r.Birth))
	}
	return local.UTC(), nil
}

func invalidInput(msg string) error {
	return &OpError{
		Op:   "domain.validate_request",
		Kind: KindInvalidInput,
		Err:  fmt.Errorf("%s", msg),
	}
}

// BodyPosition is a celestial body placed on the chart.
type BodyPosition struct {
	Name           string `json:"name"`
	SignedDMS      string `json:"signed_dms"`
	House          int    `json:"house,omitempty"`
	DeclinationDMS string `json:"declination_dms,omitempty"`
	AbsoluteDMS    string `json:"absolute_dms,omitempty"`
}

// HouseCusp is one of the twelve house boundaries.
type HouseCusp struct {
	ID             int    `json:"id"`
	DMS            string `json:"dms"`
	Sign           string `json:"sign"`
	DeclinationDMS string `json:"declination_dms,omitempty"`
	AbsoluteDMS    string `json:"absolute_dms,omitempty"`
}

// Aspect is an angular relation between two bodies.
type Aspect struct {
	Body1  string `json:"body1"`
	Symbol string `json:"symbol"`
	Body2  string `json:"body2"`
	Orb    string `json:"orb"`
}

// Distribution counts chart placements per category (element or modality).
type Distribution map[string]int

// ChartSummary is the engine's computed view of a natal chart, bounded to what
// the plugin renders and persists.
type ChartSummary struct {
	Person     string        `json:"person"`
	UTC        time.Time     `json:"dt_utc"`
	Location   Coordinates   `json:"location"`
	Sun        *BodyPosition `json:"sun,omitempty"`
	Moon       *BodyPosition `json:"moon,omitempty"`
	Aspects    []Aspect      `json:"aspects"`
	Elements   Distribution  `json:"element_distribution"`
	Modalities Distribution  `json:"modality_distribution"`
	Houses     []HouseCusp   `json:"houses"`
}
