// File: internal/urlenc/urlenc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Ordered multi-value decoding of URI query strings. The session builds its
// parameter map from the request URI exactly once; repeated keys keep their
// arrival order, and the first appearance of a key fixes its position.

package urlenc

import (
	"net/url"
	"strings"
)

// Params is an ordered mapping from parameter name to its values.
type Params struct {
	names  []string
	values map[string][]string
}

// ParseQuery decodes a raw query string ("a=1&a=2&b=3") into Params.
// Both '+' and percent escapes decode per form encoding. Tokens that fail
// to decode are kept verbatim rather than dropped, so a malformed pair
// cannot silently erase a parameter.
func ParseQuery(query string) *Params {
	p := &Params{values: make(map[string][]string)}
	if strings.TrimSpace(query) == "" {
		return p
	}
	for _, pair := range strings.Split(query, "&") {
		if pair == "" {
			continue
		}
		name, value, _ := strings.Cut(pair, "=")
		name = unescape(name)
		value = unescape(value)
		if _, seen := p.values[name]; !seen {
			p.names = append(p.names, name)
		}
		p.values[name] = append(p.values[name], value)
	}
	return p
}

func unescape(s string) string {
	out, err := url.QueryUnescape(s)
	if err != nil {
		return s
	}
	return out
}

// Names returns parameter names in first-appearance order.
func (p *Params) Names() []string {
	out := make([]string, len(p.names))
	copy(out, p.names)
	return out
}

// Values returns all values recorded for name, in arrival order.
func (p *Params) Values(name string) []string {
	vals, ok := p.values[name]
	if !ok {
		return nil
	}
	out := make([]string, len(vals))
	copy(out, vals)
	return out
}

// Get returns the first value for name.
func (p *Params) Get(name string) (string, bool) {
	vals, ok := p.values[name]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}

// Len returns the number of distinct parameter names.
func (p *Params) Len() int {
	return len(p.names)
}

// Map returns a copy of the mapping keyed by name.
func (p *Params) Map() map[string][]string {
	out := make(map[string][]string, len(p.values))
	for k, v := range p.values {
		vals := make([]string, len(v))
		copy(vals, v)
		out[k] = vals
	}
	return out
}
