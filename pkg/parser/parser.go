package parser

import (
	"encoding/csv"
	"errors"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/racestory/racestory-analysis-go/log"
	"github.com/racestory/racestory-analysis-go/pkg/model"
)

// fields coerced to numeric per source kind. Coercion failures turn the
// cell into missing, never into an error.
//
//nolint:lll // readablity
var numericFields = map[model.SourceKind][]string{
	model.KindResults: {model.ColPosition, model.ColNumber, model.ColLaps},
	model.KindWeather: {
		model.ColAirTemp, model.ColTrackTemp, model.ColHumidity, model.ColPressure,
		model.ColWindSpeed, model.ColWindDir, model.ColRain, model.ColTimeUTC,
	},
	model.KindLaps:     {model.ColNumber},
	model.KindBestLaps: {model.ColNumber, "TOTAL_DRIVER_LAPS"},
}

// Parser reads delimited timing exports into RaceTables.
// It never fails towards the caller: unreadable input yields an empty table
// and a warning, since partial data coverage is the expected case.
type Parser struct {
	delimiter  rune
	normalizer *Normalizer
	logger     *log.Logger
}

type Option func(p *Parser)

func WithDelimiter(d rune) Option {
	return func(p *Parser) {
		p.delimiter = d
	}
}

func WithNormalizer(n *Normalizer) Option {
	return func(p *Parser) {
		p.normalizer = n
	}
}

func WithLogger(l *log.Logger) Option {
	return func(p *Parser) {
		p.logger = l
	}
}

func NewParser(opts ...Option) *Parser {
	p := &Parser{
		delimiter: ';',
		logger:    log.Default().Named("parser"),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.normalizer == nil {
		p.normalizer = NewNormalizer(WithNormalizerLogger(p.logger))
	}
	return p
}

// ParseFile reads one timing export. A missing or unreadable file is a
// normal outcome and yields an empty table.
func (p *Parser) ParseFile(path string, kind model.SourceKind) *model.RaceTable {
	f, err := os.Open(path)
	if err != nil {
		p.logger.Warn("file not readable",
			log.String("path", path), log.ErrorField(err))
		return model.EmptyTable(kind)
	}
	defer f.Close()
	return p.Parse(f, kind, path)
}

// Parse reads delimited rows from r. The path argument is used for
// diagnostics only.
func (p *Parser) Parse(r io.Reader, kind model.SourceKind, path string) *model.RaceTable {
	cr := csv.NewReader(r)
	cr.Comma = p.delimiter
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		if !errors.Is(err, io.EOF) {
			p.logger.Warn("unreadable header",
				log.String("path", path), log.ErrorField(err))
		}
		return model.EmptyTable(kind)
	}

	columns := p.normalizer.Rename(header)
	table := &model.RaceTable{Kind: kind, Columns: columns, Rows: []model.Row{}}

	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// structural damage; keep what was read so far
			p.logger.Warn("aborting read after malformed record",
				log.String("path", path),
				log.Int("rows", len(table.Rows)), log.ErrorField(err))
			break
		}
		table.Rows = append(table.Rows, p.buildRow(columns, record, kind))
	}

	if kind == model.KindWeather {
		p.deriveTimestamps(table)
	}
	p.logger.Debug("parsed table", log.String("path", path),
		log.String("kind", string(kind)), log.Int("rows", len(table.Rows)))
	return table
}

func (p *Parser) buildRow(
	columns []string,
	record []string,
	kind model.SourceKind,
) model.Row {
	row := make(model.Row, len(columns))
	for i, col := range columns {
		if i >= len(record) {
			row[col] = model.MissingValue()
			continue
		}
		row[col] = p.cellValue(col, record[i], kind)
	}
	return row
}

func (p *Parser) cellValue(col, raw string, kind model.SourceKind) model.Value {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return model.MissingValue()
	}
	if isNumericField(col, kind) {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(f) {
			return model.MissingValue()
		}
		return model.NumberValue(f)
	}
	return model.StringValue(raw)
}

func isNumericField(col string, kind model.SourceKind) bool {
	for _, f := range numericFields[kind] {
		if f == col {
			return true
		}
	}
	return false
}

// deriveTimestamps adds a TIMESTAMP column from epoch seconds when the
// weather export carries them.
func (p *Parser) deriveTimestamps(table *model.RaceTable) {
	if !table.HasColumn(model.ColTimeUTC) {
		return
	}
	for _, row := range table.Rows {
		if epoch, ok := row.Float(model.ColTimeUTC); ok {
			sec, frac := math.Modf(epoch)
			row[model.ColTimestamp] = model.TimeValue(
				time.Unix(int64(sec), int64(frac*float64(time.Second))).UTC())
		} else {
			row[model.ColTimestamp] = model.MissingValue()
		}
	}
	table.Columns = append(table.Columns, model.ColTimestamp)
}
