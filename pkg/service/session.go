package service

import (
	"context"

	"github.com/samber/lo"

	"github.com/racestory/racestory-analysis-go/log"
	"github.com/racestory/racestory-analysis-go/pkg/locator"
	"github.com/racestory/racestory-analysis-go/pkg/model"
	"github.com/racestory/racestory-analysis-go/pkg/parser"
)

// Bundle holds the parsed tables of one session. Sources that could not be
// located or read are nil; partial coverage is the expected case.
type Bundle struct {
	Circuit string
	Season  string
	Session string

	Results  *model.RaceTable
	Weather  *model.RaceTable
	Laps     *model.RaceTable
	BestLaps *model.RaceTable
}

func (b *Bundle) table(kind model.SourceKind) *model.RaceTable {
	switch kind {
	case model.KindResults:
		return b.Results
	case model.KindWeather:
		return b.Weather
	case model.KindLaps:
		return b.Laps
	case model.KindBestLaps:
		return b.BestLaps
	default:
		return nil
	}
}

// Available lists the source kinds that produced at least one row.
func (b *Bundle) Available() []model.SourceKind {
	kinds := []model.SourceKind{
		model.KindResults, model.KindWeather, model.KindLaps, model.KindBestLaps,
	}
	return lo.Filter(kinds, func(kind model.SourceKind, _ int) bool {
		return !b.table(kind).Empty()
	})
}

func (b *Bundle) Empty() bool {
	return len(b.Available()) == 0
}

// Loader wires locator and parser into the single entry point the
// presentation layer calls. Each call parses fresh; sessions are small
// enough that caching parsed tables is not worth shared state.
type Loader struct {
	locator *locator.Locator
	parser  *parser.Parser
	logger  *log.Logger
}

type LoaderOption func(l *Loader)

func WithLocator(loc *locator.Locator) LoaderOption {
	return func(l *Loader) {
		l.locator = loc
	}
}

func WithParser(p *parser.Parser) LoaderOption {
	return func(l *Loader) {
		l.parser = p
	}
}

func WithLogger(lg *log.Logger) LoaderOption {
	return func(l *Loader) {
		l.logger = lg
	}
}

func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		logger: log.Default().Named("service.session"),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.locator == nil {
		l.locator = locator.NewLocator()
	}
	if l.parser == nil {
		l.parser = parser.NewParser()
	}
	return l
}

// LoadSession locates and parses whatever data exists for the session.
func (l *Loader) LoadSession(
	ctx context.Context, circuit, season, session string,
) *Bundle {
	logger := l.logger
	bundle := &Bundle{Circuit: circuit, Season: season, Session: session}

	files := l.locator.SessionFiles(circuit, season, session)
	if len(files) == 0 {
		logger.Warn("no data found",
			log.String("circuit", circuit), log.String("season", season),
			log.String("session", session))
		return bundle
	}
	if path, ok := files[model.KindResults]; ok {
		bundle.Results = l.parser.ParseFile(path, model.KindResults)
	}
	if path, ok := files[model.KindWeather]; ok {
		bundle.Weather = l.parser.ParseFile(path, model.KindWeather)
	}
	if path, ok := files[model.KindLaps]; ok {
		bundle.Laps = l.parser.ParseFile(path, model.KindLaps)
	}
	if path, ok := files[model.KindBestLaps]; ok {
		bundle.BestLaps = l.parser.ParseFile(path, model.KindBestLaps)
	}
	logger.Info("loaded session data",
		log.String("circuit", circuit), log.String("season", season),
		log.String("session", session),
		log.Int("sources", len(bundle.Available())))
	return bundle
}
