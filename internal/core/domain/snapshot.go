package domain

import "time"

// Snapshot is a named, stored copy of a parsed requirement set.
type Snapshot struct {
	Name         string    `yaml:"name"`
	Source       string    `yaml:"source"`
	CreatedAt    time.Time `yaml:"created_at"`
	Requirements int       `yaml:"requirements"`
}
