package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/racestory/racestory-analysis-go/pkg/locator"
	"github.com/racestory/racestory-analysis-go/pkg/model"
	"github.com/racestory/racestory-analysis-go/pkg/parser"
	"github.com/racestory/racestory-analysis-go/pkg/processing/race"
)

const resultsCSV = `POS;NUMBER;DRIVER_FIRSTNAME;DRIVER_SECONDNAME;TEAM;LAPS;GAP_PREVIOUS;FL_TIME
1;10;A.;Smith;Alpha Racing;25;;1:23.456
2;20;B.;Jones;Beta Motorsport;25;+1.234;1:22.100
`

const bestLapsCSV = `NUMBER;FIRSTNAME;SECONDNAME;TEAM;BESTLAP_1;BESTLAP_2;BESTLAP_3;BESTLAP_4;BESTLAP_5;BESTLAP_6;BESTLAP_7;BESTLAP_8;BESTLAP_9;BESTLAP_10
10;A.;Smith;Alpha Racing;1:23.456;1:23.500;1:23.600;1:23.700;1:23.800;1:23.900;1:24.000;1:24.100;1:24.200;1:24.300
`

func writeSession(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	dir := filepath.Join(base, "sonoma", "Sonoma", "2025 season", "race 1")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "03_Classification_Race 1.csv"),
		[]byte(resultsCSV), 0o644))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "99_Best 10 Laps_Race 1.csv"),
		[]byte(bestLapsCSV), 0o644))
	return base
}

func newLoader(base string) *Loader {
	return NewLoader(
		WithLocator(locator.NewLocator(locator.WithBaseDir(base))),
		WithParser(parser.NewParser()),
	)
}

func TestLoader_EndToEnd(t *testing.T) {
	loader := newLoader(writeSession(t))
	bundle := loader.LoadSession(context.Background(), "sonoma", "2025 season", "Race 1")

	require.False(t, bundle.Empty())
	assert.ElementsMatch(t,
		[]model.SourceKind{model.KindResults, model.KindBestLaps},
		bundle.Available())
	assert.Nil(t, bundle.Weather)

	analyzer := race.NewAnalyzer()
	summary, err := analyzer.GenerateRaceSummary(bundle.Results)
	require.NoError(t, err)
	assert.Equal(t, "A. Smith", summary.Winner.Driver)
	assert.Equal(t, "Alpha Racing", summary.Winner.Team)

	records := analyzer.CalculateConsistency(bundle.BestLaps)
	require.Len(t, records, 1)
	assert.Equal(t, "10", records[0].CarNum)
	assert.Equal(t, "A. Smith", records[0].Driver)
	assert.Greater(t, records[0].Score, 0.0)
}

func TestLoader_NoData(t *testing.T) {
	loader := newLoader(t.TempDir())
	bundle := loader.LoadSession(context.Background(), "sonoma", "2025 season", "race 1")

	assert.True(t, bundle.Empty())
	assert.Empty(t, bundle.Available())
}

func TestLoader_PartialData(t *testing.T) {
	base := t.TempDir()
	dir := filepath.Join(base, "sonoma", "Sonoma", "2024 season", "qualifying 1")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "result.csv"), []byte(resultsCSV), 0o644))

	loader := newLoader(base)
	bundle := loader.LoadSession(
		context.Background(), "sonoma", "2024 season", "Qualifying 1")

	assert.Equal(t, []model.SourceKind{model.KindResults}, bundle.Available())
	assert.Equal(t, 2, bundle.Results.Len())
	assert.Nil(t, bundle.BestLaps)
}
