package query

import (
	"strings"
	"testing"
	"time"

	"github.com/kodkafa/nataly/internal/domain"
)

func summary() domain.ChartSummary {
	return domain.ChartSummary{
		Person:   "Ada",
		UTC:      time.Date(1815, 12, 10, 13, 30, 0, 0, time.UTC),
		Location: domain.Coordinates{Lat: 51.5, Lon: -0.12},
		Sun:      &domain.BodyPosition{Name: "Sun", SignedDMS: "17°35' Sag", House: 3},
		Aspects: []domain.Aspect{
			{Body1: "Sun", Symbol: "△", Body2: "Moon", Orb: "2°11'"},
			{Body1: "Venus", Symbol: "☌", Body2: "Mars", Orb: "0°42'"},
		},
		Elements:   domain.Distribution{"Fire": 4, "Earth": 3},
		Modalities: domain.Distribution{"Cardinal": 5},
	}
}

func TestSelect_ScalarField(t *testing.T) {
	got, err := Select(summary(), "$.sun.signed_dms")
	if err != nil {
		t.Fatalf("Select error: %v", err)
	}
	if got != "17°35' Sag" {
		t.Fatalf("got %q", got)
	}
}

func TestSelect_NumericField(t *testing.T) {
	got, err := Select(summary(), "$.sun.house")
	if err != nil {
		t.Fatalf("Select error: %v", err)
	}
	if got != "3" {
		t.Fatalf("got %q", got)
	}
}

func TestSelect_ObjectReencodedAsJSON(t *testing.T) {
	got, err := Select(summary(), "$.location")
	if err != nil {
		t.Fatalf("Select error: %v", err)
	}
	if !strings.Contains(got, `"lat":51.5`) {
		t.Fatalf("got %q", got)
	}
}

func TestSelect_ArrayElement(t *testing.T) {
	got, err := Select(summary(), "$.aspects[1].symbol")
	if err != nil {
		t.Fatalf("Select error: %v", err)
	}
	if got != "☌" {
		t.Fatalf("got %q", got)
	}
}

func TestSelect_MissingValue(t *testing.T) {
	_, err := Select(summary(), "$.moon.name")
	if err == nil {
		t.Fatal("expected error for absent moon")
	}
}

func TestSelect_EmptyExpression(t *testing.T) {
	_, err := Select(summary(), "   ")
	if !domain.IsKind(err, domain.KindInvalidInput) {
		t.Fatalf("expected KindInvalidInput, got %v", err)
	}
}

func TestSelect_BadExpression(t *testing.T) {
	_, err := Select(summary(), "$[[[")
	if !domain.IsKind(err, domain.KindInvalidInput) {
		t.Fatalf("expected KindInvalidInput, got %v", err)
	}
}
