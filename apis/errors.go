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

// The resolution error taxonomy. UnsupportedTypeError and
// InstantiationError propagate to the verification engine as user-visible
// failures naming the offending type. AbsentTypeError is confined to the
// resolve call for the affected type; it never aborts bulk initialization or
// unrelated lookups. Cycle fallback is not an error at all.

// UnsupportedTypeError reports that no direct value and no applicable
// factory exist for a descriptor. Terminal; the caller is expected to supply
// a custom registration.
type UnsupportedTypeError struct {
	Desc Descriptor
}

func (e *UnsupportedTypeError) Error() string {
	return "pfx: unsupported type " + e.Desc.String()
}

// AbsentTypeError reports that an optional dependency's type could not be
// located: a lazy registration exists for the name, but no provider is
// linked into the binary. Distinct from UnsupportedTypeError (nothing
// registered) and from InstantiationError (located but broken).
type AbsentTypeError struct {
	Name string
}

func (e *AbsentTypeError) Error() string {
	return "pfx: external type " + e.Name + " is not present"
}

// InstantiationError reports that an external type was located but
// constructing a value failed: wrong signature, an error return, or a panic
// from the external call. Likely a version incompatibility; escalated, not
// absorbed.
type InstantiationError struct {
	Name string
	Err  error
}

func (e *InstantiationError) Error() string {
	msg := "pfx: instantiating " + e.Name + " failed"
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *InstantiationError) Unwrap() error {
	return e.Err
}
