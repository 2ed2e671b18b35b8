package domain

import "time"

// Preset is a named set of profile options applied before per-request
// overrides.
type Preset struct {
	Name    string         `json:"name"`
	Options map[string]any `json:"options"`
	CDate   time.Time      `json:"cdate,omitempty"`
	MDate   time.Time      `json:"mdate,omitempty"`
}
