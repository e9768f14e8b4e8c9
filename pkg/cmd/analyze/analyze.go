package analyze

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/ohler55/ojg"
	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"

	"github.com/racestory/racestory-analysis-go/log"
	"github.com/racestory/racestory-analysis-go/pkg/config"
	"github.com/racestory/racestory-analysis-go/pkg/locator"
	"github.com/racestory/racestory-analysis-go/pkg/model"
	"github.com/racestory/racestory-analysis-go/pkg/parser"
	"github.com/racestory/racestory-analysis-go/pkg/processing/race"
	"github.com/racestory/racestory-analysis-go/pkg/service"
)

func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze circuit season session",
		Short: "analyze one race session",
		Long: `loads the timing exports of a session and prints the derived
analytics (summary, close battles, fastest laps, consistency, position
changes). Sections without data are omitted.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalysis(cmd.Context(), args[0], args[1], args[2])
		},
	}
	cmd.Flags().StringVarP(&config.OutputFormat, "format", "f", "text",
		"output format (text, json)")
	return cmd
}

// report is what gets rendered; nil/empty sections are skipped.
type report struct {
	Circuit         string                    `json:"circuit"`
	Season          string                    `json:"season"`
	Session         string                    `json:"session"`
	Summary         *model.RaceSummary        `json:"summary,omitempty"`
	FastestLaps     []model.FastestLap        `json:"fastestLaps,omitempty"`
	Consistency     []model.ConsistencyRecord `json:"consistency,omitempty"`
	PositionChanges []model.PositionChange    `json:"positionChanges,omitempty"`
	Progression     *model.Progression        `json:"progression,omitempty"`
	Weather         *model.WeatherSummary     `json:"weather,omitempty"`
}

func runAnalysis(ctx context.Context, circuit, season, session string) error {
	logger := log.GetFromContext(ctx).Named("analyze")

	delimiter := ';'
	if config.Delimiter != "" {
		delimiter = rune(config.Delimiter[0])
	}
	loader := service.NewLoader(
		service.WithLocator(locator.NewLocator(
			locator.WithBaseDir(config.DataDir))),
		service.WithParser(parser.NewParser(
			parser.WithDelimiter(delimiter))),
	)
	bundle := loader.LoadSession(ctx, circuit, season, session)
	if bundle.Empty() {
		fmt.Printf("no data found for %s / %s / %s\n", circuit, season, session)
		return nil
	}

	analyzer := race.NewAnalyzer(
		race.WithGapThreshold(config.GapThreshold),
		race.WithLogger(logger.Named("race")),
	)
	rep := buildReport(analyzer, bundle, logger)

	if config.OutputFormat == "json" {
		fmt.Println(oj.JSON(rep, &ojg.Options{Indent: 2, UseTags: true, OmitEmpty: true}))
		return nil
	}
	renderText(rep)
	return nil
}

// buildReport runs every computation that has input data. A computation
// failing on a required column only drops its own section.
func buildReport(analyzer *race.Analyzer, bundle *service.Bundle, logger *log.Logger) *report {
	rep := &report{
		Circuit: bundle.Circuit,
		Season:  bundle.Season,
		Session: bundle.Session,
	}
	if !bundle.Results.Empty() {
		summary, err := analyzer.GenerateRaceSummary(bundle.Results)
		if err != nil {
			logger.Warn("skipping summary", log.ErrorField(err))
		} else {
			rep.Summary = summary
		}
		ranked, err := analyzer.AnalyzeFastestLaps(bundle.Results)
		if err != nil {
			logger.Warn("skipping fastest laps", log.ErrorField(err))
		} else {
			rep.FastestLaps = ranked
		}
		rep.PositionChanges = analyzer.GetPositionChanges(bundle.Results, model.ColGrid)
		progression := analyzer.AnalyzeProgression(bundle.Results)
		rep.Progression = &progression
	}
	rep.Consistency = analyzer.CalculateConsistency(bundle.BestLaps)
	rep.Weather = analyzer.AnalyzeWeather(bundle.Weather)
	return rep
}

//nolint:funlen // rendering is naturally linear
func renderText(rep *report) {
	fmt.Printf("%s / %s / %s\n", rep.Circuit, rep.Season, rep.Session)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	if rep.Summary != nil {
		fmt.Fprintf(w, "\nWinner:\t%s (#%s, %s), %d laps\n",
			rep.Summary.Winner.Driver, rep.Summary.Winner.CarNum,
			rep.Summary.Winner.Team, rep.Summary.Winner.Laps)
		if fl := rep.Summary.FastestLap; fl != nil {
			fmt.Fprintf(w, "Fastest lap:\t%s (#%s) %s on lap %d\n",
				fl.Driver, fl.CarNum, fl.Time, fl.LapNum)
		}
		fmt.Fprintf(w, "Finishers:\t%d\n", rep.Summary.TotalFinishers)
		if len(rep.Summary.CloseBattles) > 0 {
			fmt.Fprintf(w, "\nClose battles\n")
			fmt.Fprintf(w, "POS\tDRIVER\tCAR\tGAP\n")
			for _, b := range rep.Summary.CloseBattles {
				fmt.Fprintf(w, "%d\t%s\t#%s\t+%.3f\n",
					b.Position, b.Driver, b.CarNum, b.Gap)
			}
		}
	}
	if len(rep.FastestLaps) > 0 {
		fmt.Fprintf(w, "\nFastest laps\n")
		fmt.Fprintf(w, "RANK\tDRIVER\tCAR\tTIME\tLAP\tKPH\n")
		for _, fl := range rep.FastestLaps {
			fmt.Fprintf(w, "%d\t%s\t#%s\t%s\t%d\t%.1f\n",
				fl.Rank, fl.Driver, fl.CarNum, fl.Time, fl.LapNum, fl.Kph)
		}
	}
	if len(rep.Consistency) > 0 {
		fmt.Fprintf(w, "\nConsistency\n")
		fmt.Fprintf(w, "DRIVER\tCAR\tBEST\tAVG\tSTDDEV\tSCORE\n")
		for _, c := range rep.Consistency {
			fmt.Fprintf(w, "%s\t#%s\t%.3f\t%.3f\t%.3f\t%.1f\n",
				c.Driver, c.CarNum, c.BestLap, c.AverageLap, c.StdDev, c.Score)
		}
	}
	if len(rep.PositionChanges) > 0 {
		fmt.Fprintf(w, "\nPosition changes\n")
		fmt.Fprintf(w, "DRIVER\tCAR\tSTART\tFINISH\tGAINED\n")
		for _, pc := range rep.PositionChanges {
			fmt.Fprintf(w, "%s\t#%s\t%d\t%d\t%+d\n",
				pc.Driver, pc.CarNum, pc.StartPosition, pc.FinishPosition,
				pc.PositionsGained)
		}
	}
	if rep.Progression != nil {
		fmt.Fprintf(w, "\nClassified:\t%d of %d (%d DNF), avg %.1f laps\n",
			rep.Progression.TotalClassified, rep.Progression.TotalFinishers,
			rep.Progression.DNFCount, rep.Progression.AverageLaps)
	}
	if rep.Weather != nil {
		fmt.Fprintf(w, "\nWeather:\tair %.1f°C, track %.1f°C, humidity %.0f%%, wind max %.1f\n",
			rep.Weather.AvgAirTemp, rep.Weather.AvgTrackTemp,
			rep.Weather.AvgHumidity, rep.Weather.MaxWindSpeed)
	}
}
