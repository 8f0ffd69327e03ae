// SPDX-License-Identifier: GPL-3.0-or-later

// Package mock provides a programmable transport-stub registry for
// exercising a [svcclient.Client] without a real HTTP endpoint.
package mock

import (
	"context"
	"sync"

	"github.com/google/uuid"

	svcclient "github.com/alfred82santa/aio-service-client"
)

// Definition answers one mocked transport round trip.
type Definition interface {
	// ID uniquely identifies this definition, so a [Handle] can verify
	// it is removing the entry it expects.
	ID() uuid.UUID
	Handle(ctx context.Context, req *svcclient.TransportRequest) (*svcclient.TransportResponse, error)
}

// Kind distinguishes the two payload shapes a registry entry can carry.
type Kind int

const (
	// KindUseMock installs Definition directly as the transport
	// override for the matching call.
	KindUseMock Kind = iota

	// KindPatchMock splices Patch into the matching endpoint's Mock
	// sub-map before a stub is constructed from it.
	KindPatchMock
)

// Selector optionally filters which calls a registry entry answers. An
// empty field matches anything.
type Selector struct {
	ServiceName string
	Endpoint    string
}

func (s Selector) matches(serviceName, endpoint string) bool {
	if s.ServiceName != "" && s.ServiceName != serviceName {
		return false
	}
	if s.Endpoint != "" && s.Endpoint != endpoint {
		return false
	}
	return true
}

// Match is what [Registry.NextMock] returns for a live, matching entry.
type Match struct {
	Kind  Kind
	Def   Definition
	Patch map[string]any
}

type entry struct {
	id       uuid.UUID
	selector Selector
	offset   int
	limit    int
	kind     Kind
	def      Definition
	patch    map[string]any
}

// Registry holds an ordered sequence of mock entries, most-recently
// pushed first, consulted by [Registry.NextMock] on every call through a
// client carrying the Mock plugin.
type Registry struct {
	mu      sync.Mutex
	entries []*entry
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Handle is returned by [Registry.UseMock]/[Registry.PatchMock]; Close
// pops the entry it was issued for, so a test can scope a mock with
// push-on-enter/pop-on-exit semantics.
type Handle struct {
	registry *Registry
	id       uuid.UUID
}

// Close removes the entry this handle was issued for. Safe to call more
// than once; later calls are no-ops.
func (h *Handle) Close() {
	h.registry.remove(h.id)
}

// Do runs fn with the entry registered and pops it afterwards, even if
// fn panics, scoping the mock to exactly one test body.
func (h *Handle) Do(fn func()) {
	defer h.Close()
	fn()
}

// UnlimitedUses marks a registry entry as never exhausting: it answers
// every matching consult until explicitly popped.
const UnlimitedUses = -1

// EntryOptions configures a registry entry's selector, offset, and limit.
type EntryOptions struct {
	ServiceName string
	Endpoint    string

	// Offset is the number of matching consults to skip before the
	// entry becomes live.
	Offset int

	// Limit is the number of live consults the entry answers before it
	// is removed. Zero means the default of 1; [UnlimitedUses] keeps the
	// entry until popped.
	Limit int
}

// UseMock registers def as a transport override, consulted in
// [Registry.NextMock] order ahead of anything pushed earlier. The
// returned [Handle] pops it back off; callers typically
// `defer registry.UseMock(...).Close()`.
func (r *Registry) UseMock(def Definition, opts EntryOptions) *Handle {
	return r.push(&entry{
		id:       uuid.New(),
		selector: Selector{ServiceName: opts.ServiceName, Endpoint: opts.Endpoint},
		offset:   opts.Offset,
		limit:    normalizeLimit(opts.Limit),
		kind:     KindUseMock,
		def:      def,
	})
}

// PatchMock registers patch to be spliced into the matching endpoint's
// Mock sub-map (merged over its existing Type/Params, patch winning) the
// next time it is consulted live; a stub is then constructed from the
// patched configuration via a [Namespace].
func (r *Registry) PatchMock(patch map[string]any, opts EntryOptions) *Handle {
	return r.push(&entry{
		id:       uuid.New(),
		selector: Selector{ServiceName: opts.ServiceName, Endpoint: opts.Endpoint},
		offset:   opts.Offset,
		limit:    normalizeLimit(opts.Limit),
		kind:     KindPatchMock,
		patch:    patch,
	})
}

func normalizeLimit(limit int) int {
	switch {
	case limit == 0:
		return 1
	case limit < 0:
		return 0 // internal 0 = unlimited
	default:
		return limit
	}
}

func (r *Registry) push(e *entry) *Handle {
	r.mu.Lock()
	r.entries = append([]*entry{e}, r.entries...)
	r.mu.Unlock()
	return &Handle{registry: r, id: e.id}
}

func (r *Registry) remove(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removeLocked(id)
}

func (r *Registry) removeLocked(id uuid.UUID) {
	for i, e := range r.entries {
		if e.id == id {
			r.entries = append(r.entries[:i:i], r.entries[i+1:]...)
			return
		}
	}
}

// NextMock scans the registry in insertion order (most recent first) for
// the first entry whose selector matches (serviceName, endpoint) and is
// past its offset skip window. A selector mismatch never consumes offset
// or limit and never blocks the scan from reaching a later entry. A
// matching entry still inside its offset window has its offset
// decremented and the scan moves on, so a later entry can answer this
// consult. A live match has its limit decremented per return; the entry
// is removed once limit reaches zero. Returns (nil, false) when no entry
// answers.
func (r *Registry) NextMock(serviceName, endpoint string) (*Match, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if !e.selector.matches(serviceName, endpoint) {
			continue
		}
		if e.offset > 0 {
			e.offset--
			continue
		}
		m := &Match{Kind: e.kind, Def: e.def, Patch: e.patch}
		if e.limit > 0 {
			e.limit--
			if e.limit == 0 {
				r.removeLocked(e.id)
			}
		}
		return m, true
	}
	return nil, false
}
