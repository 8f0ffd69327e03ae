// SPDX-License-Identifier: GPL-3.0-or-later

package svcclient

import "fmt"

// Spec declares every endpoint a [Client] can invoke by name, plus
// spec-wide plugin configuration defaults that endpoints can override.
type Spec struct {
	Endpoints map[string]*Endpoint
	Config    map[string]any
}

// NewSpec creates an empty [Spec].
func NewSpec() *Spec {
	return &Spec{
		Endpoints: map[string]*Endpoint{},
		Config:    map[string]any{},
	}
}

// Add declares endpoint, returning the [Spec] for chaining.
func (s *Spec) Add(endpoint *Endpoint) *Spec {
	s.Endpoints[endpoint.Name] = endpoint
	return s
}

// Lookup returns the named endpoint, or a [*SpecError] if undeclared.
func (s *Spec) Lookup(name string) (*Endpoint, error) {
	ep, ok := s.Endpoints[name]
	if !ok {
		return nil, &SpecError{Endpoint: name}
	}
	return ep, nil
}

// PluginConfig resolves a plugin's configuration for ep: the endpoint's
// own [Endpoint.Config] entry under key wins, else the spec-wide
// default. Plugins that take endpoint-specific configuration beyond the
// named [Endpoint] fields look themselves up here by name.
func (s *Spec) PluginConfig(ep *Endpoint, key string) (any, bool) {
	if ep != nil && ep.Config != nil {
		if v, ok := ep.Config[key]; ok {
			return v, true
		}
	}
	if s.Config != nil {
		if v, ok := s.Config[key]; ok {
			return v, true
		}
	}
	return nil, false
}

func (s *Spec) String() string {
	return fmt.Sprintf("Spec(%d endpoints)", len(s.Endpoints))
}
