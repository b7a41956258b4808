package domain

import "time"

// BootStep is one line of the simulated boot sequence.
type BootStep struct {
	Text     string        `yaml:"text" json:"text"`
	Duration time.Duration `yaml:"duration" json:"duration"`
}
