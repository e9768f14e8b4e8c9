package parser

import (
	"strings"

	"github.com/racestory/racestory-analysis-go/log"
	"github.com/racestory/racestory-analysis-go/pkg/model"
)

// Normalizer renames source columns to their canonical schema names.
// Matching is exact (case-insensitive) against the alias registry; no fuzzy
// matching. The registry is walked in declared order and the first field
// claiming an alias wins.
type Normalizer struct {
	fields []model.Field
	logger *log.Logger
}

type NormalizerOption func(n *Normalizer)

func WithFields(fields []model.Field) NormalizerOption {
	return func(n *Normalizer) {
		n.fields = fields
	}
}

func WithNormalizerLogger(l *log.Logger) NormalizerOption {
	return func(n *Normalizer) {
		n.logger = l
	}
}

func NewNormalizer(opts ...NormalizerOption) *Normalizer {
	n := &Normalizer{
		fields: model.Schema,
		logger: log.Default().Named("parser.normalizer"),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// CanonicalName resolves a single source column name.
// The second return value reports whether a known alias matched.
func (n *Normalizer) CanonicalName(col string) (string, bool) {
	trimmed := strings.TrimSpace(col)
	for i := range n.fields {
		for _, alias := range n.fields[i].Aliases {
			if strings.EqualFold(trimmed, alias) {
				return n.fields[i].Name, true
			}
		}
	}
	return trimmed, false
}

// Rename maps a header to canonical names. Unmatched columns pass through
// with surrounding whitespace removed.
func (n *Normalizer) Rename(header []string) []string {
	renamed := make([]string, len(header))
	matched := 0
	for i, col := range header {
		name, ok := n.CanonicalName(col)
		if ok {
			matched++
		}
		renamed[i] = name
	}
	n.logger.Debug("normalized columns",
		log.Int("total", len(header)), log.Int("matched", matched))
	return renamed
}

// NormalizeTable returns a copy of the table with canonical column names.
// The input table is left untouched. A table where no column matches any
// known alias is returned as a copy with its original names (schema
// mismatch is not an error).
func (n *Normalizer) NormalizeTable(t *model.RaceTable) *model.RaceTable {
	if t == nil {
		return nil
	}
	renamed := n.Rename(t.Columns)
	out := &model.RaceTable{
		Kind:    t.Kind,
		Columns: renamed,
		Rows:    make([]model.Row, 0, len(t.Rows)),
	}
	for _, row := range t.Rows {
		newRow := make(model.Row, len(row))
		for i, col := range t.Columns {
			if v, ok := row[col]; ok {
				newRow[renamed[i]] = v
			}
		}
		out.Rows = append(out.Rows, newRow)
	}
	return out
}
