// SPDX-License-Identifier: GPL-3.0-or-later

package plugins

import (
	"context"

	svcclient "github.com/alfred82santa/aio-service-client"
	"github.com/alfred82santa/aio-service-client/mock"
)

// Mock consults a [mock.Registry] at prepare_session and, when a
// definition applies, replaces the session's transport call entirely
// with it: no plugin registered after Mock can further decorate a socket
// that is never dialed.
//
// A registry [mock.KindUseMock] match installs its [mock.Definition]
// directly. A [mock.KindPatchMock] match splices its patch into the
// call's endpoint.mock sub-map and constructs a stub from the patched
// configuration via Namespace, just like the no-match path. When neither
// the registry nor the endpoint's own `mock` declaration apply, Mock
// leaves the session undecorated and the real transport runs, so a
// test fixture can register Mock globally without every endpoint
// needing a mock_type.
type Mock struct {
	Registry  *mock.Registry
	Namespace *mock.Namespace

	// ServiceName is matched against registry selectors. Left empty, it
	// is filled in from the owning client when the plugin is registered.
	ServiceName string
}

var (
	_ svcclient.PrepareSessioner      = (*Mock)(nil)
	_ svcclient.ServiceClientAssigner = (*Mock)(nil)
)

// NewMock creates a Mock plugin backed by registry, resolving default
// stubs through namespace (falls back to [mock.DefaultNamespace] when
// nil).
func NewMock(registry *mock.Registry, namespace *mock.Namespace) *Mock {
	if namespace == nil {
		namespace = mock.DefaultNamespace()
	}
	return &Mock{Registry: registry, Namespace: namespace}
}

// Name implements [svcclient.Plugin].
func (*Mock) Name() string { return "mock" }

// AssignServiceClient implements [svcclient.ServiceClientAssigner],
// adopting the owning client's service name for registry selector
// matching unless one was set explicitly.
func (m *Mock) AssignServiceClient(client *svcclient.Client) {
	if m.ServiceName == "" {
		m.ServiceName = client.ServiceName()
	}
}

// PrepareSession implements [svcclient.PrepareSessioner].
func (m *Mock) PrepareSession(ctx context.Context, session *svcclient.SessionWrapper, params *svcclient.RequestParams) error {
	ep := params.EndpointDesc

	var def mock.Definition
	if m.Registry != nil {
		if match, ok := m.Registry.NextMock(m.ServiceName, params.Endpoint); ok {
			switch match.Kind {
			case mock.KindUseMock:
				def = match.Def
			case mock.KindPatchMock:
				if ep != nil {
					ep.Mock = mergeMockPatch(ep.Mock, match.Patch)
				}
			}
		}
	}

	if def == nil {
		var err error
		def, err = m.constructDefault(ep)
		if err != nil {
			return err
		}
	}

	if def == nil {
		return nil
	}

	session.Decorate(func(next svcclient.TransportDoFunc) svcclient.TransportDoFunc {
		return func(ctx context.Context, req *svcclient.TransportRequest) (*svcclient.TransportResponse, error) {
			return def.Handle(ctx, req)
		}
	})
	return nil
}

func (m *Mock) constructDefault(ep *svcclient.Endpoint) (mock.Definition, error) {
	if ep == nil || ep.Mock == nil || ep.Mock.Type == "" {
		return nil, nil
	}
	return m.Namespace.Construct(ep.Mock.Type, ep.Mock.Params)
}

// mergeMockPatch merges patch over base's Type/Params, patch winning on
// key collision.
func mergeMockPatch(base *svcclient.MockConfig, patch map[string]any) *svcclient.MockConfig {
	out := &svcclient.MockConfig{Params: map[string]any{}}
	if base != nil {
		out.Type = base.Type
		for k, v := range base.Params {
			out.Params[k] = v
		}
	}
	if t, ok := patch["mock_type"].(string); ok {
		out.Type = t
	}
	for k, v := range patch {
		if k == "mock_type" {
			continue
		}
		out.Params[k] = v
	}
	return out
}
