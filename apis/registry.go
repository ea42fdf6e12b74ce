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

package apis

// Registry stores sample-value bindings: direct triples and factories keyed
// by Descriptor, plus lazy factories keyed by external type name. It is
// populated during an initialization phase and read-mostly afterwards;
// implementations must be safe for concurrent reads.
//
// All registrations overwrite: a later binding for the same key replaces the
// earlier one, which is how caller overrides take precedence over defaults.
type Registry interface {
	// Register binds a direct triple to d.
	Register(d Descriptor, t Triple) error
	// RegisterFactory binds a factory to d, for types whose triple depends
	// on nested types or runtime-discovered details.
	RegisterFactory(d Descriptor, f Factory) error
	// RegisterLazy binds a lazy factory to an external type name. The
	// external type is not located here; a missing optional dependency never
	// affects this call.
	RegisterLazy(name string, f LazyFactory) error

	// Direct returns the direct triple bound to d, if any.
	Direct(d Descriptor) (Triple, bool)
	// Factory returns the factory bound to d, if any.
	Factory(d Descriptor) (Factory, bool)
	// Lazy returns the lazy factory bound to name, if any.
	Lazy(name string) (LazyFactory, bool)

	// Entries returns a snapshot for diagnostics/migration (order is
	// unspecified).
	Entries() []Entry
	// Count returns the number of bindings.
	Count() int
	// Reset clears all bindings.
	Reset()
}

// EntryKind discriminates the binding shapes in a Registry snapshot.
type EntryKind int

const (
	// EntryDirect is a (Descriptor -> Triple) binding.
	EntryDirect EntryKind = iota
	// EntryFactory is a (Descriptor -> Factory) binding.
	EntryFactory
	// EntryLazy is an (external name -> LazyFactory) binding.
	EntryLazy
)

// Entry is a single binding in a Registry snapshot. Desc is zero and Name is
// set for EntryLazy; the reverse holds for the other kinds.
type Entry struct {
	Kind    EntryKind
	Desc    Descriptor
	Name    string
	Triple  Triple
	Factory Factory
	Lazy    LazyFactory
}
