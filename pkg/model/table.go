package model

import (
	"strconv"
	"strings"
	"time"
)

// SourceKind identifies the type of a timing export within a session.
type SourceKind string

const (
	KindResults  SourceKind = "results"
	KindWeather  SourceKind = "weather"
	KindLaps     SourceKind = "laps"
	KindBestLaps SourceKind = "bestlaps"
)

type ValueKind int

const (
	KindMissing ValueKind = iota
	KindString
	KindNumber
	KindTime
)

// Value is one cell of a RaceTable. Missing is an explicit state, never a
// zero value in disguise.
type Value struct {
	kind ValueKind
	str  string
	num  float64
	ts   time.Time
}

func MissingValue() Value         { return Value{kind: KindMissing} }
func StringValue(s string) Value  { return Value{kind: KindString, str: s} }
func NumberValue(f float64) Value { return Value{kind: KindNumber, num: f} }
func TimeValue(t time.Time) Value { return Value{kind: KindTime, ts: t} }

func (v Value) Kind() ValueKind { return v.kind }
func (v Value) IsMissing() bool { return v.kind == KindMissing }

// Float returns the numeric content. String cells are parsed on the fly so
// that fields outside the per-kind coercion lists (GRID for example) can
// still be read numerically.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindNumber:
		return v.num, true
	case KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.str), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Text returns a display representation. Missing cells render empty.
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindTime:
		return v.ts.UTC().Format(time.RFC3339)
	default:
		return ""
	}
}

func (v Value) Time() (time.Time, bool) {
	if v.kind != KindTime {
		return time.Time{}, false
	}
	return v.ts, true
}

// Row maps canonical (or passed-through original) column names to cell values.
type Row map[string]Value

func (r Row) Text(field string) string {
	return r[field].Text()
}

func (r Row) Float(field string) (float64, bool) {
	return r[field].Float()
}

func (r Row) Int(field string) (int, bool) {
	f, ok := r[field].Float()
	if !ok {
		return 0, false
	}
	return int(f), true
}

// RaceTable is an ordered set of records produced by the parser.
// It is read-only by contract once returned; the analyzer never mutates it.
type RaceTable struct {
	Kind    SourceKind `json:"kind"`
	Columns []string   `json:"columns"` // source order, canonical names where matched
	Rows    []Row      `json:"rows"`
}

func EmptyTable(kind SourceKind) *RaceTable {
	return &RaceTable{Kind: kind, Columns: []string{}, Rows: []Row{}}
}

func (t *RaceTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

func (t *RaceTable) Empty() bool {
	return t.Len() == 0
}

func (t *RaceTable) HasColumn(name string) bool {
	if t == nil {
		return false
	}
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}
