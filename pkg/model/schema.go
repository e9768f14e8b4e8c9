package model

type FieldType int

const (
	FieldString FieldType = iota
	FieldNumeric
)

// Field describes one canonical column of the internal schema together with
// the spellings used for it by the various timing data providers.
type Field struct {
	Name    string
	Type    FieldType
	Aliases []string
}

// canonical column names
const (
	ColPosition    = "POSITION"
	ColNumber      = "NUMBER"
	ColDriver      = "DRIVER"
	ColDriverFirst = "DRIVER_FIRST"
	ColDriverLast  = "DRIVER_LAST"
	ColTeam        = "TEAM"
	ColLaps        = "LAPS"
	ColTotalTime   = "TOTAL_TIME"
	ColGapFirst    = "GAP_FIRST"
	ColGapPrev     = "GAP_PREV"
	ColFlTime      = "FL_TIME"
	ColFlLapNum    = "FL_LAPNUM"
	ColFlKph       = "FL_KPH"
	ColStatus      = "STATUS"
	ColClass       = "CLASS"
	ColVehicle     = "VEHICLE"
	ColGrid        = "GRID"
	ColAirTemp     = "AIR_TEMP"
	ColTrackTemp   = "TRACK_TEMP"
	ColHumidity    = "HUMIDITY"
	ColPressure    = "PRESSURE"
	ColWindSpeed   = "WIND_SPEED"
	ColWindDir     = "WIND_DIRECTION"
	ColRain        = "RAIN"
	ColTimeUTC     = "TIME_UTC_SECONDS"
	ColTimestamp   = "TIMESTAMP" // derived by the parser for weather sources
)

// Schema is the canonical field registry. Matching is first-match-wins in
// the declared order below. STATUS and CLASS both list CLASS_TYPE; STATUS is
// declared first and therefore claims it. This mirrors the behavior of the
// historical exports and must not be "improved" by a priority scheme.
var Schema = []Field{
	{ColPosition, FieldNumeric, []string{"POS", "POSITION", "P", "RANK"}},
	{ColNumber, FieldNumeric, []string{"NUMBER", "CAR", "CAR_NUMBER", "#"}},
	{ColDriver, FieldString, []string{"DRIVER", "DRIVER_NAME", "NAME"}},
	{ColDriverFirst, FieldString, []string{"DRIVER_FIRSTNAME", "FIRST_NAME", "FIRSTNAME"}},
	{ColDriverLast, FieldString, []string{
		"DRIVER_SECONDNAME", "SECONDNAME", "LAST_NAME", "SURNAME", "LASTNAME",
	}},
	{ColTeam, FieldString, []string{"TEAM", "TEAM_NAME", "CONSTRUCTOR"}},
	{ColLaps, FieldNumeric, []string{"LAPS", "TOTAL_LAPS", "LAPS_COMPLETED"}},
	{ColTotalTime, FieldString, []string{"ELAPSED", "TIME", "TOTAL_TIME"}},
	{ColGapFirst, FieldString, []string{"GAP_FIRST", "GAP", "INTERVAL"}},
	{ColGapPrev, FieldString, []string{"GAP_PREVIOUS", "GAP_PREV", "BEHIND"}},
	{ColFlTime, FieldString, []string{"FL_TIME", "BEST_LAP_TIME", "BEST_LAP", "FASTEST_LAP"}},
	{ColFlLapNum, FieldNumeric, []string{"FL_LAPNUM", "BEST_LAP_NUM", "BEST_LAP_NUMBER", "FL_LAP"}},
	{ColFlKph, FieldNumeric, []string{"FL_KPH", "BEST_LAP_KPH", "BEST_LAP_MPH", "FL_SPEED"}},
	{ColStatus, FieldString, []string{"STATUS", "CLASS_TYPE", "CLASSIFICATION"}},
	{ColClass, FieldString, []string{"CLASS_TYPE", "CLASS", "CATEGORY"}},
	{ColVehicle, FieldString, []string{"VEHICLE", "CAR_MODEL", "MODEL"}},
	{ColGrid, FieldNumeric, []string{"GRID", "GRID_POS", "STARTING_POSITION"}},
	{ColAirTemp, FieldNumeric, []string{"AIR_TEMP", "AMBIENT_TEMP"}},
	{ColTrackTemp, FieldNumeric, []string{"TRACK_TEMP"}},
	{ColHumidity, FieldNumeric, []string{"HUMIDITY"}},
	{ColPressure, FieldNumeric, []string{"PRESSURE"}},
	{ColWindSpeed, FieldNumeric, []string{"WIND_SPEED"}},
	{ColWindDir, FieldNumeric, []string{"WIND_DIRECTION"}},
	{ColRain, FieldNumeric, []string{"RAIN"}},
	{ColTimeUTC, FieldNumeric, []string{"TIME_UTC_SECONDS", "TIME_UTC", "UTC_SECONDS"}},
}
