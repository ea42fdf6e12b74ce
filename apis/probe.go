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

// Probe decouples "is this optional dependency present" from "what value do
// we build". Resolve never fails for mere absence; only a located-but-broken
// invocation on a Handle produces an error. Probing happens lazily, at first
// actual request for a type, never during bulk initialization.
type Probe interface {
	// Resolve locates an external type by fully qualified name. The second
	// return is false when the owning package is not linked into the binary.
	Resolve(name string) (Handle, bool)
}

// Handle is a located external type. Invocation failures (wrong arity,
// panics, error returns from the callee) surface as InstantiationError,
// never as absence.
type Handle interface {
	// Name returns the fully qualified name the handle was resolved under.
	Name() string
	// Type returns the external type.
	Type() reflect.Type
	// New invokes the type's constructor with args.
	New(args ...any) (any, error)
	// Call invokes a named factory function of the type with args.
	Call(method string, args ...any) (any, error)
	// Constant returns a named pre-existing value of the type, for types
	// that must not be constructed.
	Constant(name string) (any, bool)
}
