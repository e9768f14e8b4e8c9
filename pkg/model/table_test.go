package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValue_Float(t *testing.T) {
	f, ok := NumberValue(1.5).Float()
	assert.True(t, ok)
	assert.InDelta(t, 1.5, f, 1e-9)

	// numeric strings parse on the fly
	f, ok = StringValue(" 5 ").Float()
	assert.True(t, ok)
	assert.InDelta(t, 5.0, f, 1e-9)

	_, ok = StringValue("n/a").Float()
	assert.False(t, ok)
	_, ok = MissingValue().Float()
	assert.False(t, ok)
	_, ok = TimeValue(time.Now()).Float()
	assert.False(t, ok)
}

func TestValue_Text(t *testing.T) {
	assert.Equal(t, "", MissingValue().Text())
	assert.Equal(t, "10", NumberValue(10).Text())
	assert.Equal(t, "1.5", NumberValue(1.5).Text())
	assert.Equal(t, "abc", StringValue("abc").Text())
}

func TestRaceTable_NilSafety(t *testing.T) {
	var table *RaceTable
	assert.Equal(t, 0, table.Len())
	assert.True(t, table.Empty())
	assert.False(t, table.HasColumn(ColPosition))
}

func TestRaceTable_HasColumn(t *testing.T) {
	table := &RaceTable{Columns: []string{ColPosition, "VENDOR_X"}}
	assert.True(t, table.HasColumn(ColPosition))
	assert.True(t, table.HasColumn("VENDOR_X"))
	assert.False(t, table.HasColumn(ColDriver))
}
