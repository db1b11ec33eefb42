package model

// Telemetry is the single process-wide tracking snapshot. It is
// overwritten on every refresh; last write wins. Values keep their
// display formatting ("22.5°C", "63%", "lat, lon").
type Telemetry struct {
	GPS  string `json:"gps"`
	Temp string `json:"temp"`
	Hum  string `json:"hum"`
	TS   int64  `json:"ts"`
}
