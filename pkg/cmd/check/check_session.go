package check

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/racestory/racestory-analysis-go/log"
	"github.com/racestory/racestory-analysis-go/pkg/config"
	"github.com/racestory/racestory-analysis-go/pkg/locator"
	"github.com/racestory/racestory-analysis-go/pkg/model"
	"github.com/racestory/racestory-analysis-go/pkg/parser"
	"github.com/racestory/racestory-analysis-go/pkg/service"
)

func NewCheckSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session circuit season session",
		Short: "display located files and table shapes (dev only)",
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			checkSession(cmd.Context(), args[0], args[1], args[2])
		},
	}
	return cmd
}

func checkSession(ctx context.Context, circuit, season, session string) {
	logger := log.GetFromContext(ctx).Named("check")
	logger.Info("check session",
		log.String("circuit", circuit), log.String("season", season),
		log.String("session", session))

	loc := locator.NewLocator(locator.WithBaseDir(config.DataDir))
	files := loc.SessionFiles(circuit, season, session)
	if len(files) == 0 {
		fmt.Println("no data files located")
	}
	for _, kind := range lo.Keys(files) {
		fmt.Printf("%-10s %s\n", kind, files[kind])
	}
	for kind, path := range loc.SessionDocuments(circuit, season, session) {
		fmt.Printf("%-12s %s\n", kind, path)
	}

	loader := service.NewLoader(
		service.WithLocator(loc),
		service.WithParser(parser.NewParser()),
	)
	bundle := loader.LoadSession(ctx, circuit, season, session)
	for kind, table := range map[model.SourceKind]*model.RaceTable{
		model.KindResults:  bundle.Results,
		model.KindWeather:  bundle.Weather,
		model.KindLaps:     bundle.Laps,
		model.KindBestLaps: bundle.BestLaps,
	} {
		if table == nil {
			continue
		}
		fmt.Printf("%-10s %d rows, %d columns\n",
			kind, table.Len(), len(table.Columns))
	}
}
