package race

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/racestory/racestory-analysis-go/log"
	"github.com/racestory/racestory-analysis-go/pkg/model"
	"github.com/racestory/racestory-analysis-go/pkg/processing/util"
)

const (
	DefaultGapThreshold = 5.0
	ClassifiedStatus    = "Classified"
	CloseBattleLabel    = "Close Battle"

	bestLapFields   = 10 // BESTLAP_1 .. BESTLAP_10
	minBestLaps     = 3  // fewer parsed laps exclude the driver
	topPerformerCnt = 3
)

var (
	ErrNoData        = errors.New("no data")
	ErrMissingColumn = errors.New("required column missing")
)

// Analyzer computes derived metrics over parsed race tables. All methods
// are read-only over their inputs and safe to call on partially available
// data.
type Analyzer struct {
	gapThreshold float64
	logger       *log.Logger
}

type Option func(a *Analyzer)

func WithGapThreshold(threshold float64) Option {
	return func(a *Analyzer) {
		a.gapThreshold = threshold
	}
}

func WithLogger(l *log.Logger) Option {
	return func(a *Analyzer) {
		a.logger = l
	}
}

func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		gapThreshold: DefaultGapThreshold,
		logger:       log.Default().Named("analyzer"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// GenerateRaceSummary builds the aggregate view over the results table.
// The winner is taken from the first row as delivered by the timing export.
// The table is trusted to be ordered by position; callers feeding unordered
// data get a wrong winner. Kept that way to match the historical reports.
func (a *Analyzer) GenerateRaceSummary(results *model.RaceTable) (*model.RaceSummary, error) {
	if results.Empty() {
		return nil, fmt.Errorf("race summary: %w", ErrNoData)
	}
	first := results.Rows[0]
	summary := &model.RaceSummary{
		Winner: &model.Winner{
			Driver: driverName(first),
			CarNum: first.Text(model.ColNumber),
			Team:   first.Text(model.ColTeam),
		},
		TotalFinishers: results.Len(),
		CloseBattles:   a.IdentifyKeyBattles(results),
	}
	if laps, ok := first.Int(model.ColLaps); ok {
		summary.Winner.Laps = laps
	}

	ranked, err := a.AnalyzeFastestLaps(results)
	if err != nil {
		a.logger.Warn("fastest lap ranking unavailable", log.ErrorField(err))
	} else if len(ranked) > 0 {
		fastest := ranked[0]
		summary.FastestLap = &model.FastestLapInfo{
			Driver: fastest.Driver,
			CarNum: fastest.CarNum,
			Time:   fastest.Time,
			LapNum: fastest.LapNum,
			Kph:    fastest.Kph,
		}
		summary.TopPerformers = lo.Slice(ranked, 0, topPerformerCnt)
	}

	a.logger.Info("generated race summary",
		log.Int("finishers", summary.TotalFinishers),
		log.Int("battles", len(summary.CloseBattles)))
	return summary, nil
}

// IdentifyKeyBattles reports cars that finished within the gap threshold of
// the car ahead. Only "+"-prefixed gaps count; DNF markers, laps-down and
// negative gaps are skipped. Output keeps the table row order.
func (a *Analyzer) IdentifyKeyBattles(results *model.RaceTable) []model.Battle {
	battles := []model.Battle{}
	if results.Empty() || !results.HasColumn(model.ColGapPrev) {
		return battles
	}
	for idx, row := range results.Rows {
		if idx == 0 { // leader has nobody ahead
			continue
		}
		gap, ok := util.ParseGap(row.Text(model.ColGapPrev))
		if !ok || gap < 0 || gap > a.gapThreshold {
			continue
		}
		position, ok := row.Int(model.ColPosition)
		if !ok {
			position = idx + 1
		}
		battles = append(battles, model.Battle{
			Position:       position,
			Driver:         driverName(row),
			CarNum:         row.Text(model.ColNumber),
			Gap:            gap,
			Classification: CloseBattleLabel,
		})
	}
	a.logger.Debug("identified close battles", log.Int("count", len(battles)))
	return battles
}

// AnalyzeFastestLaps ranks the field by fastest lap, ascending. Rows whose
// FL_TIME does not parse sort last; ties keep the original row order.
func (a *Analyzer) AnalyzeFastestLaps(results *model.RaceTable) ([]model.FastestLap, error) {
	if results.Empty() {
		return nil, fmt.Errorf("fastest laps: %w", ErrNoData)
	}
	if !results.HasColumn(model.ColFlTime) {
		return nil, fmt.Errorf(
			"fastest laps: %w: %s (available: %s)",
			ErrMissingColumn, model.ColFlTime, strings.Join(results.Columns, ", "))
	}

	ranked := make([]model.FastestLap, 0, results.Len())
	for _, row := range results.Rows {
		entry := model.FastestLap{
			CarNum: row.Text(model.ColNumber),
			Driver: driverName(row),
			Team:   row.Text(model.ColTeam),
			Time:   row.Text(model.ColFlTime),
		}
		if pos, ok := row.Int(model.ColPosition); ok {
			entry.Position = pos
		}
		if lap, ok := row.Int(model.ColFlLapNum); ok {
			entry.LapNum = lap
		}
		if kph, ok := row.Float(model.ColFlKph); ok {
			entry.Kph = kph
		}
		if seconds, ok := util.ParseLaptime(entry.Time); ok {
			entry.Seconds = seconds
		}
		ranked = append(ranked, entry)
	}
	slices.SortStableFunc(ranked, func(x, y model.FastestLap) int {
		switch {
		case lapSortKey(x) < lapSortKey(y):
			return -1
		case lapSortKey(x) > lapSortKey(y):
			return 1
		default:
			return 0
		}
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked, nil
}

// CalculateConsistency rates drivers by the spread of their ten best laps.
// Drivers with fewer than three parseable lap times are left out.
func (a *Analyzer) CalculateConsistency(bestLaps *model.RaceTable) []model.ConsistencyRecord {
	records := []model.ConsistencyRecord{}
	if bestLaps.Empty() {
		return records
	}
	for _, row := range bestLaps.Rows {
		lapTimes := make([]float64, 0, bestLapFields)
		for i := 1; i <= bestLapFields; i++ {
			if seconds, ok := util.ParseLaptime(
				row.Text(fmt.Sprintf("BESTLAP_%d", i))); ok {
				lapTimes = append(lapTimes, seconds)
			}
		}
		if len(lapTimes) < minBestLaps {
			continue
		}
		stdDev := popStdDev(lapTimes)
		records = append(records, model.ConsistencyRecord{
			Driver:     driverName(row),
			CarNum:     row.Text(model.ColNumber),
			Team:       row.Text(model.ColTeam),
			BestLap:    slices.Min(lapTimes),
			AverageLap: mean(lapTimes),
			StdDev:     stdDev,
			Score:      1 / (stdDev + 0.001),
		})
	}
	slices.SortStableFunc(records, func(x, y model.ConsistencyRecord) int {
		switch {
		case x.Score > y.Score:
			return -1
		case x.Score < y.Score:
			return 1
		default:
			return 0
		}
	})
	a.logger.Debug("calculated consistency", log.Int("drivers", len(records)))
	return records
}

// GetPositionChanges computes start minus finish per driver, sorted by
// positions gained. Rows where either field fails to parse are skipped.
func (a *Analyzer) GetPositionChanges(
	results *model.RaceTable,
	gridField string,
) []model.PositionChange {
	changes := []model.PositionChange{}
	if gridField == "" {
		gridField = model.ColGrid
	}
	if results.Empty() || !results.HasColumn(gridField) {
		return changes
	}
	for _, row := range results.Rows {
		start, ok := row.Int(gridField)
		if !ok {
			continue
		}
		finish, ok := row.Int(model.ColPosition)
		if !ok {
			continue
		}
		changes = append(changes, model.PositionChange{
			Driver:          driverName(row),
			CarNum:          row.Text(model.ColNumber),
			StartPosition:   start,
			FinishPosition:  finish,
			PositionsGained: start - finish,
		})
	}
	slices.SortStableFunc(changes, func(x, y model.PositionChange) int {
		return y.PositionsGained - x.PositionsGained
	})
	return changes
}

// AnalyzeProgression summarizes the finishing state of the field.
func (a *Analyzer) AnalyzeProgression(results *model.RaceTable) model.Progression {
	progression := model.Progression{}
	if results.Empty() {
		return progression
	}
	progression.TotalFinishers = results.Len()
	progression.TotalClassified = len(lo.Filter(results.Rows,
		func(row model.Row, _ int) bool {
			return row.Text(model.ColStatus) == ClassifiedStatus
		}))
	progression.DNFCount = progression.TotalFinishers - progression.TotalClassified

	var laps []float64
	for _, row := range results.Rows {
		if l, ok := row.Float(model.ColLaps); ok {
			laps = append(laps, l)
		}
	}
	if len(laps) > 0 {
		progression.AverageLaps = mean(laps)
	}
	return progression
}

// AnalyzeWeather condenses the weather samples of a session.
func (a *Analyzer) AnalyzeWeather(weather *model.RaceTable) *model.WeatherSummary {
	if weather.Empty() {
		return nil
	}
	summary := &model.WeatherSummary{Samples: weather.Len()}
	summary.AvgAirTemp = columnMean(weather, model.ColAirTemp)
	summary.AvgTrackTemp = columnMean(weather, model.ColTrackTemp)
	summary.AvgHumidity = columnMean(weather, model.ColHumidity)
	for _, row := range weather.Rows {
		if wind, ok := row.Float(model.ColWindSpeed); ok && wind > summary.MaxWindSpeed {
			summary.MaxWindSpeed = wind
		}
	}
	return summary
}

// driverName prefers the combined driver column and falls back to the
// first/last name pair.
func driverName(row model.Row) string {
	if name := row.Text(model.ColDriver); name != "" {
		return name
	}
	name := strings.TrimSpace(
		row.Text(model.ColDriverFirst) + " " + row.Text(model.ColDriverLast))
	if name == "" {
		return "Unknown"
	}
	return name
}

func lapSortKey(entry model.FastestLap) float64 {
	if entry.Seconds > 0 {
		return entry.Seconds
	}
	return math.MaxFloat64
}

func mean(values []float64) float64 {
	return lo.Sum(values) / float64(len(values))
}

// popStdDev is the population standard deviation (divides by n).
func popStdDev(values []float64) float64 {
	m := mean(values)
	var sum float64
	for _, v := range values {
		sum += (v - m) * (v - m)
	}
	return math.Sqrt(sum / float64(len(values)))
}

func columnMean(t *model.RaceTable, field string) float64 {
	var values []float64
	for _, row := range t.Rows {
		if v, ok := row.Float(field); ok {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return 0
	}
	return mean(values)
}
