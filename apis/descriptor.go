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

import (
	"reflect"
	"strings"
)

// Descriptor is an immutable structural key for a (possibly parameterized)
// type. Its base identity is either a reflect.Type or, for types that may not
// be linked into the binary, a fully qualified external name. Equality is
// structural: base identity plus parameters, recursively.
//
// Descriptors are values; once constructed they never change. They are used
// as registry keys and as guard elements.
type Descriptor struct {
	typ    reflect.Type
	name   string
	params []Descriptor
	key    string
}

// AnyType is the reflect.Type of the empty interface. It is the default
// element type for unparameterized container descriptors.
var AnyType = reflect.TypeOf((*any)(nil)).Elem()

// OfType returns a Descriptor for t with no parameters.
func OfType(t reflect.Type) Descriptor {
	return Parameterized(t)
}

// TypeOf returns a Descriptor for the dynamic type of v, with no parameters.
// A nil v yields the zero Descriptor.
func TypeOf(v any) Descriptor {
	t := reflect.TypeOf(v)
	if t == nil {
		return Descriptor{}
	}
	return Parameterized(t)
}

// Parameterized returns a Descriptor for t with the given ordered parameters.
func Parameterized(t reflect.Type, params ...Descriptor) Descriptor {
	if t == nil {
		return Descriptor{}
	}
	d := Descriptor{typ: t, params: cloneParams(params)}
	d.key = buildKey(baseIdentity(t, ""), d.params)
	return d
}

// External returns a Descriptor keyed by a fully qualified external type name
// (e.g. "github.com/google/uuid.UUID"). No attempt is made to locate the
// type; that is the capability probe's job, at resolution time.
func External(name string, params ...Descriptor) Descriptor {
	if name == "" {
		return Descriptor{}
	}
	d := Descriptor{name: name, params: cloneParams(params)}
	d.key = buildKey(name, d.params)
	return d
}

// Type returns the base reflect.Type, or nil for external descriptors.
func (d Descriptor) Type() reflect.Type {
	return d.typ
}

// Name returns the fully qualified name of the base type. For reflect-backed
// descriptors this is "pkgpath.Type" (or the bare name for builtins); for
// external descriptors it is the name given to External. Unnamed composite
// types yield "".
func (d Descriptor) Name() string {
	if d.typ == nil {
		return d.name
	}
	if d.typ.Name() == "" {
		return ""
	}
	return baseIdentity(d.typ, "")
}

// Params returns a copy of the ordered parameter descriptors.
func (d Descriptor) Params() []Descriptor {
	return cloneParams(d.params)
}

// NumParams returns the number of parameter descriptors.
func (d Descriptor) NumParams() int {
	return len(d.params)
}

// Param returns the i-th parameter descriptor.
func (d Descriptor) Param(i int) Descriptor {
	return d.params[i]
}

// Base returns the descriptor with all parameters stripped.
func (d Descriptor) Base() Descriptor {
	if len(d.params) == 0 {
		return d
	}
	if d.typ != nil {
		return Parameterized(d.typ)
	}
	return External(d.name)
}

// IsZero reports whether d is the zero Descriptor.
func (d Descriptor) IsZero() bool {
	return d.typ == nil && d.name == ""
}

// IsExternal reports whether d is keyed by an external name rather than a
// linked reflect.Type.
func (d Descriptor) IsExternal() bool {
	return d.typ == nil && d.name != ""
}

// Key returns the canonical structural key for d. Two descriptors are equal
// iff their keys are equal.
func (d Descriptor) Key() string {
	return d.key
}

// Equal reports structural equality.
func (d Descriptor) Equal(o Descriptor) bool {
	return d.key == o.key
}

// String returns the structural key; it doubles as a readable diagnostic.
func (d Descriptor) String() string {
	if d.IsZero() {
		return "<zero>"
	}
	return d.key
}

// baseIdentity produces the identity string for a base type: full package
// path for named types, reflect's composite syntax otherwise.
func baseIdentity(t reflect.Type, fallback string) string {
	if t == nil {
		return fallback
	}
	if n := t.Name(); n != "" {
		if p := t.PkgPath(); p != "" {
			return p + "." + n
		}
		return n
	}
	return t.String()
}

func buildKey(base string, params []Descriptor) string {
	if len(params) == 0 {
		return base
	}
	var b strings.Builder
	b.WriteString(base)
	b.WriteByte('<')
	for i, p := range params {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(p.key)
	}
	b.WriteByte('>')
	return b.String()
}

func cloneParams(params []Descriptor) []Descriptor {
	if len(params) == 0 {
		return nil
	}
	out := make([]Descriptor, len(params))
	copy(out, params)
	return out
}
