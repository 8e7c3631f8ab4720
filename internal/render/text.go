// Package render formats chart summaries for terminal output.
package render

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/kodkafa/nataly/internal/domain"
)

const maxAspectLines = 50

// Text writes the human-readable chart summary.
func Text(w io.Writer, s domain.ChartSummary) {
	fmt.Fprintf(w, "Person: %s\n", s.Person)
	fmt.Fprintf(w, "UTC:    %s\n", s.UTC.Format(time.RFC3339))
	fmt.Fprintf(w, "Loc:    lat=%v, lon=%v\n", s.Location.Lat, s.Location.Lon)
	fmt.Fprintln(w)

	writeBody(w, "Sun: ", s.Sun)
	writeBody(w, "Moon:", s.Moon)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Distributions")
	writeDistribution(w, "element", s.Elements)
	writeDistribution(w, "modality", s.Modalities)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Aspects")
	aspects := s.Aspects
	if len(aspects) > maxAspectLines {
		aspects = aspects[:maxAspectLines]
	}
	for _, a := range aspects {
		fmt.Fprintf(w, "  %s %s %s (orb: %s)\n", a.Body1, a.Symbol, a.Body2, a.Orb)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Houses")
	for _, h := range s.Houses {
		line := fmt.Sprintf("  House %d: %s %s", h.ID, h.DMS, h.Sign)
		if h.DeclinationDMS != "" {
			line += fmt.Sprintf(" (decl: %s)", h.DeclinationDMS)
		}
		fmt.Fprintln(w, line)
	}
}

func writeBody(w io.Writer, label string, b *domain.BodyPosition) {
	if b == nil {
		return
	}

	houseStr := "House ?"
	if b.House > 0 {
		houseStr = fmt.Sprintf("House %d", b.House)
	}
	fmt.Fprintf(w, "%s %s (%s)\n", label, b.SignedDMS, houseStr)
	if b.DeclinationDMS != "" {
		fmt.Fprintf(w, "      decl: %s\n", b.DeclinationDMS)
	}
}

// writeDistribution prints categories ordered by descending count, ties by name.
func writeDistribution(w io.Writer, label string, d domain.Distribution) {
	type entry struct {
		name  string
		count int
	}

	entries := make([]entry, 0, len(d))
	for k, v := range d {
		entries = append(entries, entry{name: k, count: v})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].name < entries[j].name
	})

	parts := ""
	for i, e := range entries {
		if i > 0 {
			parts += ", "
		}
		parts += fmt.Sprintf("%s: %d", e.name, e.count)
	}
	fmt.Fprintf(w, "  %-10s %s\n", label, parts)
}
