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

// Strategy is a pluggable resolution step. A Resolver chains multiple
// strategies in order (e.g., Direct -> Factory -> Lazy -> Kind).
type Strategy interface {
	// TryResolve attempts to produce a triple for d. It returns
	// handled=false to fall through to the next strategy. A handled=true
	// result with a non-nil error terminates the chain with that error
	// (e.g. an absent optional dependency or a failed instantiation).
	//
	// res is the resolver owning the chain, for recursive element/key
	// lookups; g is the current request's guard.
	TryResolve(d Descriptor, res Resolver, g *Guard, cfg Config) (t Triple, handled bool, err error)
}
