package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kodkafa/nataly/internal/domain"
	"github.com/kodkafa/nataly/internal/infra/logger"
	"github.com/kodkafa/nataly/internal/render"
	"github.com/kodkafa/nataly/internal/usecase"
	"github.com/kodkafa/nataly/internal/usecase/query"
)

func runCmd() *cobra.Command {
	var pluginDir string
	var person string
	var birth string
	var tz string
	var lat float64
	var lon float64
	var houseSystem string
	var ephePath string
	var format string
	var queryExpr string
	var noSave bool

	c := &cobra.Command{
		Use:   "run",
		Short: "Compute a natal chart via the nataly engine",
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := loadPlugin(pluginDir)
			if err != nil {
				return err
			}

			req := domain.ChartRequest{
				Person:      person,
				Birth:       birth,
				TZ:          tz,
				Location:    domain.Coordinates{Lat: lat, Lon: lon},
				HouseSystem: domain.HouseSystem(houseSystem),
				Format:      domain.OutputFormat(format),
				EphePath:    ephePath,
			}
			if req.HouseSystem == "" {
				req.HouseSystem = p.cfg.Defaults.HouseSystem
			}
			if format == "" {
				req.Format = p.cfg.Defaults.Format
			}

			var store = p.store
			if noSave {
				store = nil
			}

			uc := usecase.NewComputeChart(p.engine, p.ephe, store)

			art, id, err := uc.Execute(cmd.Context(), req)
			if err != nil {
				return err
			}

			logger.L().Info("chart.computed",
				"artifact_id", id,
				"ephe_path", art.EphePath,
				"engine_ms", art.EngineMS,
			)

			if queryExpr != "" {
				val, qerr := query.Select(art.Summary, queryExpr)
				if qerr != nil {
					return qerr
				}
				fmt.Fprintln(os.Stdout, val)
				return nil
			}

			return printChart(os.Stdout, art.Summary, req.Format)
		},
	}

	c.Flags().StringVar(&pluginDir, "plugin-dir", "", "Plugin root (optional; autodetected if omitted)")
	c.Flags().StringVar(&person, "person", "", "Person label for the chart (required)")
	c.Flags().StringVar(&birth, "birth", "", `Local birth date-time, "YYYY-MM-DD HH:MM" (required)`)
	c.Flags().StringVar(&tz, "tz", "", "UTC offset of the birth place, e.g. +02:00 (required)")
	c.Flags().Float64Var(&lat, "lat", 0, "Birth latitude in decimal degrees (required)")
	c.Flags().Float64Var(&lon, "lon", 0, "Birth longitude in decimal degrees (required)")
	c.Flags().StringVar(&houseSystem, "house-system", "", "House system (default from nataly.yaml, normally Placidus)")
	c.Flags().StringVar(&ephePath, "ephe-path", "", "Ephemeris directory (falls back to NATALY_EPHE_PATH, then ephe/)")
	c.Flags().StringVar(&format, "format", "", "Output format: text|json|both (default from nataly.yaml)")
	c.Flags().StringVar(&queryExpr, "query", "", "JSONPath over the chart summary; prints only the matched value")
	c.Flags().BoolVar(&noSave, "no-save", false, "Do not save an invocation artifact under runs/")

	_ = c.MarkFlagRequired("person")
	_ = c.MarkFlagRequired("birth")
	_ = c.MarkFlagRequired("tz")
	_ = c.MarkFlagRequired("lat")
	_ = c.MarkFlagRequired("lon")
	return c
}

func printChart(w io.Writer, sum domain.ChartSummary, format domain.OutputFormat) error {
	switch format {
	case domain.FormatText:
		render.Text(w, sum)
		return nil
	case domain.FormatJSON:
		return printJSON(w, sum)
	case domain.FormatBoth:
		render.Text(w, sum)
		return printJSON(w, sum)
	default:
		return fmt.Errorf("unsupported format %q (expected text|json|both)", format)
	}
}

func printJSON(w io.Writer, sum domain.ChartSummary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(sum)
}
