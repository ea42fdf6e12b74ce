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

import "reflect"

// Resolver produces sample-value triples. Typical chain:
// DirectStrategy -> FactoryStrategy -> LazyStrategy -> KindStrategy.
//
// Resolve is re-entrant: factories recurse into it for element/key types,
// passing the same Guard. A request whose descriptor is already on the guard
// is redirected to a terminal fallback triple instead of recursing (cycle
// handling), which is policy, not an error.
type Resolver interface {
	// Resolve returns a triple for d, or a typed failure
	// (UnsupportedTypeError, AbsentTypeError, InstantiationError).
	// A nil Guard starts a fresh top-level request.
	Resolve(d Descriptor, g *Guard, cfg Config) (Triple, error)

	// ResolveType decomposes t into a structural descriptor and resolves it.
	ResolveType(t reflect.Type, g *Guard, cfg Config) (Triple, error)
}
