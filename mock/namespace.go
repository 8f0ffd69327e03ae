// SPDX-License-Identifier: GPL-3.0-or-later

package mock

import "fmt"

// Constructor builds a [Definition] from an endpoint's mock params
// sub-map.
type Constructor func(params map[string]any) (Definition, error)

// Namespace resolves a mock_type name to a [Constructor], so the Mock
// plugin can build a default stub for an endpoint without hard-coding
// which [Definition] implementations exist.
type Namespace struct {
	ctors map[string]Constructor
}

// NewNamespace creates an empty Namespace.
func NewNamespace() *Namespace {
	return &Namespace{ctors: map[string]Constructor{}}
}

// Register binds name to ctor, overwriting any previous binding.
func (n *Namespace) Register(name string, ctor Constructor) {
	n.ctors[name] = ctor
}

// Construct resolves mockType and invokes its constructor with params.
func (n *Namespace) Construct(mockType string, params map[string]any) (Definition, error) {
	ctor, ok := n.ctors[mockType]
	if !ok {
		return nil, fmt.Errorf("mock: unknown mock_type %q", mockType)
	}
	return ctor(params)
}

// DefaultNamespace returns a Namespace pre-registered with the three
// bundled [Definition] implementations, under the mock_type names a
// spec's `mock` sub-map would name them.
func DefaultNamespace() *Namespace {
	n := NewNamespace()
	n.Register("raw_data", newRawDataMockFromParams)
	n.Register("json_data", newJsonDataMockFromParams)
	n.Register("raw_file", newRawFileMockFromParams)
	return n
}

func paramStatusCode(params map[string]any) int {
	if v, ok := params["status_code"]; ok {
		switch n := v.(type) {
		case int:
			return n
		case float64:
			return int(n)
		}
	}
	return 200
}

func paramHeaders(params map[string]any) map[string][]string {
	v, ok := params["headers"]
	if !ok {
		return nil
	}
	out := map[string][]string{}
	switch h := v.(type) {
	case map[string][]string:
		for k, vs := range h {
			out[k] = vs
		}
	case map[string]string:
		for k, v := range h {
			out[k] = []string{v}
		}
	case map[string]any:
		for k, v := range h {
			if s, ok := v.(string); ok {
				out[k] = []string{s}
			}
		}
	}
	return out
}

func newRawDataMockFromParams(params map[string]any) (Definition, error) {
	data, _ := params["data"].(string)
	return RawDataMock(paramStatusCode(params), paramHeaders(params), data), nil
}

func newJsonDataMockFromParams(params map[string]any) (Definition, error) {
	value := params["data"]
	return JsonDataMock(paramStatusCode(params), paramHeaders(params), value)
}

func newRawFileMockFromParams(params map[string]any) (Definition, error) {
	path, _ := params["path"].(string)
	if path == "" {
		return nil, fmt.Errorf("mock: raw_file mock_type requires a non-empty params.path")
	}
	return NewRawFileMock(paramStatusCode(params), paramHeaders(params), path), nil
}
