/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package registry

import (
	"errors"
	"sync"

	"dirpx.dev/pfx/apis"
)

var (
	// ErrZeroDescriptor is returned when a zero Descriptor is provided.
	ErrZeroDescriptor = errors.New("pfx(registry): zero descriptor provided")
	// ErrEmptyName is returned when an empty external name is provided.
	ErrEmptyName = errors.New("pfx(registry): empty external name provided")
	// ErrNilFactory is returned when a nil factory is provided.
	ErrNilFactory = errors.New("pfx(registry): nil factory provided")
)

// New constructs an empty Registry. Registrations overwrite earlier bindings
// for the same key, so callers can replace bootstrap defaults.
func New(cfg apis.Config) apis.Registry {
	return &registry{cfg: cfg}
}

// registry is a Registry implementation backed by sync.Map, one map per
// binding shape. Writes happen during an initialization phase; reads are
// lock-free afterwards.
type registry struct {
	// cfg is retained for symmetry with the builder contract; the registry
	// itself is configuration-independent.
	cfg apis.Config
	// mu guards write-side consistency and the counter.
	mu sync.Mutex
	// direct maps Descriptor.Key() to apis.Triple.
	direct sync.Map
	// factories maps Descriptor.Key() to a factoryEntry.
	factories sync.Map
	// lazy maps external type name to a lazyEntry.
	lazy sync.Map
	// count tracks the number of bindings across all three maps.
	count int
}

// factoryEntry keeps the descriptor next to the factory for snapshots.
type factoryEntry struct {
	desc apis.Descriptor
	f    apis.Factory
}

// directEntry keeps the descriptor next to the triple for snapshots.
type directEntry struct {
	desc apis.Descriptor
	t    apis.Triple
}

// Register binds a direct triple to d, overwriting any prior binding.
func (r *registry) Register(d apis.Descriptor, t apis.Triple) error {
	if d.IsZero() {
		return ErrZeroDescriptor
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, loaded := r.direct.Load(d.Key()); !loaded {
		r.count++
	}
	r.direct.Store(d.Key(), directEntry{desc: d, t: t})
	return nil
}

// RegisterFactory binds a factory to d, overwriting any prior binding.
func (r *registry) RegisterFactory(d apis.Descriptor, f apis.Factory) error {
	if d.IsZero() {
		return ErrZeroDescriptor
	}
	if f == nil {
		return ErrNilFactory
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, loaded := r.factories.Load(d.Key()); !loaded {
		r.count++
	}
	r.factories.Store(d.Key(), factoryEntry{desc: d, f: f})
	return nil
}

// RegisterLazy binds a lazy factory to an external type name, overwriting
// any prior binding. The name is not resolved here.
func (r *registry) RegisterLazy(name string, f apis.LazyFactory) error {
	if name == "" {
		return ErrEmptyName
	}
	if f == nil {
		return ErrNilFactory
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, loaded := r.lazy.Load(name); !loaded {
		r.count++
	}
	r.lazy.Store(name, f)
	return nil
}

// Direct returns the direct triple bound to d, if any.
func (r *registry) Direct(d apis.Descriptor) (apis.Triple, bool) {
	if d.IsZero() {
		return apis.Triple{}, false
	}
	if v, ok := r.direct.Load(d.Key()); ok {
		return v.(directEntry).t, true
	}
	return apis.Triple{}, false
}

// Factory returns the factory bound to d, if any.
func (r *registry) Factory(d apis.Descriptor) (apis.Factory, bool) {
	if d.IsZero() {
		return nil, false
	}
	if v, ok := r.factories.Load(d.Key()); ok {
		return v.(factoryEntry).f, true
	}
	return nil, false
}

// Lazy returns the lazy factory bound to name, if any.
func (r *registry) Lazy(name string) (apis.LazyFactory, bool) {
	if name == "" {
		return nil, false
	}
	if v, ok := r.lazy.Load(name); ok {
		return v.(apis.LazyFactory), true
	}
	return nil, false
}

// Entries returns a snapshot for diagnostics/migration (order is unspecified).
func (r *registry) Entries() []apis.Entry {
	entries := make([]apis.Entry, 0, r.Count())
	r.direct.Range(func(_, value any) bool {
		e := value.(directEntry)
		entries = append(entries, apis.Entry{Kind: apis.EntryDirect, Desc: e.desc, Triple: e.t})
		return true
	})
	r.factories.Range(func(_, value any) bool {
		e := value.(factoryEntry)
		entries = append(entries, apis.Entry{Kind: apis.EntryFactory, Desc: e.desc, Factory: e.f})
		return true
	})
	r.lazy.Range(func(key, value any) bool {
		entries = append(entries, apis.Entry{Kind: apis.EntryLazy, Name: key.(string), Lazy: value.(apis.LazyFactory)})
		return true
	})
	return entries
}

// Count returns the number of bindings.
func (r *registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Reset clears all bindings.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.direct = sync.Map{}
	r.factories = sync.Map{}
	r.lazy = sync.Map{}
	r.count = 0
}
