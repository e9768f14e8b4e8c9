package model

// derived analytics records. Created fresh per analysis call, never shared
// or persisted.

type Winner struct {
	Driver string `json:"driver"`
	CarNum string `json:"carNum"`
	Team   string `json:"team"`
	Laps   int    `json:"laps"`
}

type FastestLapInfo struct {
	Driver string  `json:"driver"`
	CarNum string  `json:"carNum"`
	Time   string  `json:"time"`
	LapNum int     `json:"lapNum"`
	Kph    float64 `json:"kph"`
}

type Battle struct {
	Position       int     `json:"position"`
	Driver         string  `json:"driver"`
	CarNum         string  `json:"carNum"`
	Gap            float64 `json:"gap"` // seconds to the car ahead
	Classification string  `json:"classification"`
}

type FastestLap struct {
	Rank     int     `json:"rank"` // 1-based, ties keep table order
	Position int     `json:"position"`
	CarNum   string  `json:"carNum"`
	Driver   string  `json:"driver"`
	Team     string  `json:"team"`
	Time     string  `json:"time"`
	Seconds  float64 `json:"seconds"`
	LapNum   int     `json:"lapNum"`
	Kph      float64 `json:"kph"`
}

type ConsistencyRecord struct {
	Driver     string  `json:"driver"`
	CarNum     string  `json:"carNum"`
	Team       string  `json:"team"`
	BestLap    float64 `json:"bestLap"`    // seconds
	AverageLap float64 `json:"averageLap"` // seconds
	StdDev     float64 `json:"stdDev"`
	Score      float64 `json:"consistencyScore"` // 1/(stdDev+0.001), higher is better
}

type PositionChange struct {
	Driver          string `json:"driver"`
	CarNum          string `json:"carNum"`
	StartPosition   int    `json:"startPosition"`
	FinishPosition  int    `json:"finishPosition"`
	PositionsGained int    `json:"positionsGained"`
}

type Progression struct {
	TotalFinishers  int     `json:"totalFinishers"`
	TotalClassified int     `json:"totalClassified"`
	DNFCount        int     `json:"dnfCount"`
	AverageLaps     float64 `json:"averageLaps"`
}

type WeatherSummary struct {
	Samples      int     `json:"samples"`
	AvgAirTemp   float64 `json:"avgAirTemp"`
	AvgTrackTemp float64 `json:"avgTrackTemp"`
	AvgHumidity  float64 `json:"avgHumidity"`
	MaxWindSpeed float64 `json:"maxWindSpeed"`
}

type RaceSummary struct {
	Winner         *Winner         `json:"winner"`
	FastestLap     *FastestLapInfo `json:"fastestLap"`
	TotalFinishers int             `json:"totalFinishers"`
	CloseBattles   []Battle        `json:"closeBattles"`
	TopPerformers  []FastestLap    `json:"topPerformers"`
}
