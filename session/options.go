// File: session/options.go
// Package session defines functional options for session construction.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package session

import (
	"github.com/rs/zerolog"

	"github.com/momentics/wsession/policy"
)

// Option customizes session construction.
type Option func(*Session)

// WithPolicy attaches a policy instead of the defaults.
func WithPolicy(p *policy.Policy) Option {
	return func(s *Session) {
		if p != nil {
			s.pol = p
		}
	}
}

// WithLogger attaches a structured logger. The default is a no-op logger.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Session) {
		s.log = log
	}
}

// WithID overrides the generated session identifier.
func WithID(id string) Option {
	return func(s *Session) {
		if id != "" {
			s.id = id
		}
	}
}
