package locator

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/racestory/racestory-analysis-go/log"
	"github.com/racestory/racestory-analysis-go/pkg/model"
)

// shorthand circuit ids to the directory layout of the data drops
var circuitDirs = map[string]string{
	"barber":       "barber-motorsports-park/barber",
	"cota":         "circuit-of-the-americas/COTA",
	"road-america": "road-america/Road America",
	"sebring":      "sebring/Sebring",
	"sonoma":       "sonoma/Sonoma",
	"vir":          "virginia-international-raceway/VIR",
}

// document kinds found as PDFs next to the CSV exports
const (
	DocPitStops    = "pit_stops"
	DocSectorTimes = "sector_times"
	DocLapChart    = "lap_chart"
	DocGrid        = "grid"
)

// Locator resolves a (circuit, season, session) triple to the files of that
// session. A session that cannot be located yields empty results; missing
// data is a normal outcome, not an error.
type Locator struct {
	baseDir string
	logger  *log.Logger
}

type Option func(l *Locator)

func WithBaseDir(dir string) Option {
	return func(l *Locator) {
		l.baseDir = dir
	}
}

func WithLogger(lg *log.Logger) Option {
	return func(l *Locator) {
		l.logger = lg
	}
}

func NewLocator(opts ...Option) *Locator {
	l := &Locator{
		baseDir: ".",
		logger:  log.Default().Named("locator"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// SessionFiles returns the CSV exports of a session keyed by source kind.
func (l *Locator) SessionFiles(
	circuit, season, session string,
) map[model.SourceKind]string {
	files := map[model.SourceKind]string{}
	sessionDir, ok := l.sessionDir(circuit, season, session)
	if !ok {
		return files
	}
	for _, entry := range l.listFiles(sessionDir, ".csv") {
		name := strings.ToLower(entry)
		path := filepath.Join(sessionDir, entry)
		switch {
		case strings.Contains(name, "result") || strings.Contains(name, "classification"):
			files[model.KindResults] = path
		case strings.Contains(name, "weather"):
			files[model.KindWeather] = path
		case strings.Contains(name, "best") && strings.Contains(name, "lap"):
			files[model.KindBestLaps] = path
		case strings.Contains(name, "lap"):
			files[model.KindLaps] = path
		}
	}
	return files
}

// SessionDocuments returns the PDF timing documents of a session keyed by
// document kind. Content extraction is left to the caller.
func (l *Locator) SessionDocuments(circuit, season, session string) map[string]string {
	docs := map[string]string{}
	sessionDir, ok := l.sessionDir(circuit, season, session)
	if !ok {
		return docs
	}
	for _, entry := range l.listFiles(sessionDir, ".pdf") {
		name := strings.ToLower(entry)
		path := filepath.Join(sessionDir, entry)
		switch {
		case strings.Contains(name, "pit") && strings.Contains(name, "stop"):
			docs[DocPitStops] = path
		case strings.Contains(name, "sector"):
			docs[DocSectorTimes] = path
		case strings.Contains(name, "lap") && strings.Contains(name, "chart"):
			docs[DocLapChart] = path
		case strings.Contains(name, "grid"):
			docs[DocGrid] = path
		}
	}
	return docs
}

func (l *Locator) sessionDir(circuit, season, session string) (string, bool) {
	circuitRel, ok := circuitDirs[strings.ToLower(circuit)]
	if !ok {
		circuitRel = circuit
	}
	seasonDir := filepath.Join(l.baseDir, filepath.FromSlash(circuitRel), season)
	entries, err := os.ReadDir(seasonDir)
	if err != nil {
		l.logger.Warn("season directory not found",
			log.String("circuit", circuit), log.String("season", season),
			log.String("dir", seasonDir))
		return "", false
	}
	// session folders are matched case-insensitively
	for _, entry := range entries {
		if entry.IsDir() && strings.EqualFold(entry.Name(), session) {
			return filepath.Join(seasonDir, entry.Name()), true
		}
	}
	l.logger.Warn("session folder not found",
		log.String("session", session), log.String("dir", seasonDir))
	return "", false
}

func (l *Locator) listFiles(dir, ext string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ext) {
			names = append(names, entry.Name())
		}
	}
	return names
}
