package config

// this holds the resolved configuration values from CLI
//
//nolint:lll // readablity
var (
	DataDir      string  // root directory containing the circuit folders
	Delimiter    string  // field delimiter used by the timing exports
	GapThreshold float64 // max gap in seconds to count as a close battle
	LogLevel     string  // sets the log level (zap log level values)
	LogFormat    string  // text vs json
	LogFilter    string  // zapfilter rules for named loggers
	OutputFormat string  // output format of analysis commands (text, json)
)
