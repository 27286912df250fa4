package repository

import "strings"

// DefaultConference is used for teams whose conference is unknown.
const DefaultConference = "Other"

// Option applies a configuration option to the League.
type Option func(*League)

// WithDefaultConference sets the conference given to teams first seen
// without one.
func WithDefaultConference(conference string) Option {
	return func(l *League) {
		if c := strings.TrimSpace(conference); c != "" {
			l.defaultConference = c
		}
	}
}
