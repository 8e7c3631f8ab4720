package natalyexec

import (
	"time"

	"github.com/kodkafa/nataly/internal/domain"
)

// wireRequest is the stdin contract with the engine binary.
type wireRequest struct {
	Person      string  `json:"person"`
	UTC         string  `json:"dt_utc"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	HouseSystem string  `json:"house_system"`
	EphePath    string  `json:"ephe_path,omitempty"`
}

// wireSummary is the stdout contract with the engine binary.
type wireSummary struct {
	Sun        *wireBody      `json:"sun"`
	Moon       *wireBody      `json:"moon"`
	Aspects    []wireAspect   `json:"aspects"`
	Elements   map[string]int `json:"element_distribution"`
	Modalities map[string]int `json:"modality_distribution"`
	Houses     []wireHouse    `json:"houses"`
}

type wireBody struct {
	Name           string `json:"name"`
	SignedDMS      string `json:"signed_dms"`
	House          int    `json:"house"`
	DeclinationDMS string `json:"declination_dms"`
	AbsoluteDMS    string `json:"absolute_dms"`
}

type wireAspect struct {
	Body1  string `json:"body1"`
	Symbol string `json:"symbol"`
	Body2  string `json:"body2"`
	Orb    string `json:"orb"`
}

type wireHouse struct {
	ID             int    `json:"id"`
	DMS            string `json:"dms"`
	Sign           string `json:"sign"`
	DeclinationDMS string `json:"declination_dms"`
	AbsoluteDMS    string `json:"absolute_dms"`
}

func mapSummary(req domain.ChartRequest, utc time.Time, in wireSummary) domain.ChartSummary {
	out := domain.ChartSummary{
		Person:     req.Person,
		UTC:        utc,
		Location:   req.Location,
		Sun:        mapBody(in.Sun),
		Moon:       mapBody(in.Moon),
		Aspects:    make([]domain.Aspect, 0, len(in.Aspects)),
		Elements:   domain.Distribution{},
		Modalities: domain.Distribution{},
		Houses:     make([]domain.HouseCusp, 0, len(in.Houses)),
	}

	for _, a := range in.Aspects {
		out.Aspects = append(out.Aspects, domain.Aspect{
			Body1:  a.Body1,
			Symbol: a.Symbol,
			Body2:  a.Body2,
			Orb:    a.Orb,
		})
	}
	for k, v := range in.Elements {
		out.Elements[k] = v
	}
	for k, v := range in.Modalities {
		out.Modalities[k] = v
	}
	for _, h := range in.Houses {
		out.Houses = append(out.Houses, domain.HouseCusp{
			ID:             h.ID,
			DMS:            h.DMS,
			Sign:           h.Sign,
			DeclinationDMS: h.DeclinationDMS,
			AbsoluteDMS:    h.AbsoluteDMS,
		})
	}

	return out
}

func mapBody(in *wireBody) *domain.BodyPosition {
	if in == nil {
		return nil
	}
	return &domain.BodyPosition{
		Name:           in.Name,
		SignedDMS:      in.SignedDMS,
		House:          in.House,
		DeclinationDMS: in.DeclinationDMS,
		AbsoluteDMS:    in.AbsoluteDMS,
	}
}
