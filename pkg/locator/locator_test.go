package locator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/racestory/racestory-analysis-go/pkg/model"
)

func setupSession(t *testing.T, files ...string) string {
	t.Helper()
	base := t.TempDir()
	sessionDir := filepath.Join(base, "sebring", "Sebring", "2025 season", "Race 1")
	require.NoError(t, os.MkdirAll(sessionDir, 0o755))
	for _, name := range files {
		require.NoError(t,
			os.WriteFile(filepath.Join(sessionDir, name), []byte("POS\n"), 0o644))
	}
	return base
}

func TestLocator_SessionFiles(t *testing.T) {
	base := setupSession(t,
		"03_Classification_Race 1.CSV",
		"05_Weather_Race 1.csv",
		"23_AnalysisEnhanced_Race 1_Laptimes.csv",
		"99_Best 10 Laps_Race 1.csv",
		"notes.txt",
	)
	l := NewLocator(WithBaseDir(base))

	// session folder name matches case-insensitively
	files := l.SessionFiles("sebring", "2025 season", "race 1")
	require.Len(t, files, 4)
	assert.Contains(t, files[model.KindResults], "Classification")
	assert.Contains(t, files[model.KindWeather], "Weather")
	assert.Contains(t, files[model.KindLaps], "Laptimes")
	assert.Contains(t, files[model.KindBestLaps], "Best 10 Laps")
}

func TestLocator_UnknownSession(t *testing.T) {
	base := setupSession(t, "03_Classification_Race 1.CSV")
	l := NewLocator(WithBaseDir(base))

	assert.Empty(t, l.SessionFiles("sebring", "2025 season", "race 9"))
	assert.Empty(t, l.SessionFiles("sebring", "1999 season", "race 1"))
	assert.Empty(t, l.SessionFiles("monaco", "2025 season", "race 1"))
}

func TestLocator_CircuitWithoutShorthand(t *testing.T) {
	base := t.TempDir()
	sessionDir := filepath.Join(base, "testtrack", "2025 season", "race 1")
	require.NoError(t, os.MkdirAll(sessionDir, 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(sessionDir, "results.csv"), []byte("POS\n"), 0o644))

	l := NewLocator(WithBaseDir(base))
	files := l.SessionFiles("testtrack", "2025 season", "race 1")
	require.Len(t, files, 1)
	assert.Contains(t, files[model.KindResults], "results.csv")
}

func TestLocator_SessionDocuments(t *testing.T) {
	base := setupSession(t,
		"13_Pit Stop Summary_Race 1.PDF",
		"17_Best Sector Analysis_Race 1.pdf",
		"21_Lap Chart_Race 1.PDF",
		"02_Starting Grid_Race 1.pdf",
	)
	l := NewLocator(WithBaseDir(base))

	docs := l.SessionDocuments("sebring", "2025 season", "Race 1")
	require.Len(t, docs, 4)
	assert.Contains(t, docs[DocPitStops], "Pit Stop")
	assert.Contains(t, docs[DocSectorTimes], "Sector")
	assert.Contains(t, docs[DocLapChart], "Lap Chart")
	assert.Contains(t, docs[DocGrid], "Grid")
}
