// File: policy/file.go
// Package policy TOML file loading.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package policy

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type filePolicy struct {
	MaxMessageSize int64  `toml:"max_message_size"`
	IdleTimeout    string `toml:"idle_timeout"`
	IdleTimeoutMS  int64  `toml:"idle_timeout_ms"`
}

// FromFile loads a policy from a TOML file. Keys absent from the file keep
// their defaults. `idle_timeout` accepts Go duration strings ("5m", "30s")
// and takes precedence over `idle_timeout_ms` when both are present.
func FromFile(path string) (*Policy, error) {
	p := Default()

	var raw filePolicy
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return nil, fmt.Errorf("load policy: %w", err)
	}

	if meta.IsDefined("max_message_size") {
		p.SetMaxMessageSize(raw.MaxMessageSize)
	}

	if meta.IsDefined("idle_timeout_ms") {
		p.SetIdleTimeoutMillis(raw.IdleTimeoutMS)
	}

	if meta.IsDefined("idle_timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.IdleTimeout))
		if err != nil {
			return nil, fmt.Errorf("parse idle_timeout: %w", err)
		}
		p.SetIdleTimeoutMillis(d.Milliseconds())
	}

	return p, nil
}
