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

package reflect

import (
	"errors"
	"fmt"
	"reflect"

	"dirpx.dev/pfx/apis"
	"dirpx.dev/pfx/config"
)

var (
	// ErrReflectNilType is returned when a nil reflect.Type is provided.
	ErrReflectNilType = errors.New("reflect: nil reflect.Type provided")
	// ErrNotAssignable is returned when a value cannot be assigned or
	// converted to a target type.
	ErrNotAssignable = errors.New("reflect: value not assignable to target type")
)

// Decompose builds a structural descriptor for t, recursing into container
// kinds according to cfg (MaxDepth caps recursion):
//   - ptr/slice/array/chan -> one parameter, the element type
//   - map[K]V              -> two parameters, key then element
//   - everything else      -> a bare descriptor for t
//
// Named container types (e.g. "type IDs []int") decompose like their
// underlying kind, keeping the named base. Past MaxDepth the type is kept as
// a bare descriptor, which also terminates decomposition of recursive type
// graphs ("type Tree []Tree").
func Decompose(t reflect.Type, cfg apis.Config) (apis.Descriptor, error) {
	if t == nil {
		return apis.Descriptor{}, ErrReflectNilType
	}
	maxDepth := cfg.MaxDepth
	if maxDepth <= 0 {
		maxDepth = config.DefaultMaxDepth
	}
	return decompose(t, maxDepth), nil
}

func decompose(t reflect.Type, depth int) apis.Descriptor {
	if depth <= 0 {
		return apis.OfType(t)
	}
	switch t.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Array, reflect.Chan:
		return apis.Parameterized(t, decompose(t.Elem(), depth-1))
	case reflect.Map:
		return apis.Parameterized(t, decompose(t.Key(), depth-1), decompose(t.Elem(), depth-1))
	default:
		return apis.OfType(t)
	}
}

// DeepCopy returns a structurally independent copy of v: fresh pointers,
// slices, maps and arrays all the way down. Channels, funcs and unsafe
// pointers are carried over as-is (they have no meaningful copy). Unexported
// struct fields are copied shallowly via whole-struct assignment.
func DeepCopy(v any) any {
	if v == nil {
		return nil
	}
	return deepCopy(reflect.ValueOf(v)).Interface()
}

func deepCopy(rv reflect.Value) reflect.Value {
	switch rv.Kind() {
	case reflect.Ptr:
		if rv.IsNil() {
			return rv
		}
		np := reflect.New(rv.Type().Elem())
		np.Elem().Set(deepCopy(rv.Elem()))
		return np

	case reflect.Slice:
		if rv.IsNil() {
			return rv
		}
		ns := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			ns.Index(i).Set(deepCopy(rv.Index(i)))
		}
		return ns

	case reflect.Map:
		if rv.IsNil() {
			return rv
		}
		nm := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			nm.SetMapIndex(deepCopy(iter.Key()), deepCopy(iter.Value()))
		}
		return nm

	case reflect.Array:
		na := reflect.New(rv.Type()).Elem()
		for i := 0; i < rv.Len(); i++ {
			na.Index(i).Set(deepCopy(rv.Index(i)))
		}
		return na

	case reflect.Struct:
		ns := reflect.New(rv.Type()).Elem()
		// Whole-struct assignment carries unexported fields.
		ns.Set(rv)
		for i := 0; i < rv.NumField(); i++ {
			if rv.Type().Field(i).PkgPath != "" {
				continue
			}
			ns.Field(i).Set(deepCopy(rv.Field(i)))
		}
		return ns

	case reflect.Interface:
		if rv.IsNil() {
			return rv
		}
		ni := reflect.New(rv.Type()).Elem()
		ni.Set(deepCopy(rv.Elem()))
		return ni

	default:
		return rv
	}
}

// SameInstance reports whether a and b are the same reference-shaped
// instance (pointer, map, channel, or slice over the same backing array).
// Value kinds have no observable identity in Go and always report false.
func SameInstance(a, b any) bool {
	if a == nil || b == nil {
		return false
	}
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Kind() != rb.Kind() {
		return false
	}
	switch ra.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.UnsafePointer:
		return ra.Pointer() == rb.Pointer()
	case reflect.Slice:
		return ra.Len() > 0 && ra.Len() == rb.Len() && ra.Pointer() == rb.Pointer()
	default:
		return false
	}
}

// Assign coerces v into a reflect.Value of type t: direct assignment where
// possible, conversion where allowed, zero value for nil against nilable
// kinds. It is the single choke point between resolved triples (any-typed)
// and reflective construction.
func Assign(v any, t reflect.Type) (reflect.Value, error) {
	if t == nil {
		return reflect.Value{}, ErrReflectNilType
	}
	if v == nil {
		switch t.Kind() {
		case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Chan,
			reflect.Func, reflect.Interface, reflect.UnsafePointer:
			return reflect.Zero(t), nil
		default:
			return reflect.Value{}, fmt.Errorf("%w: nil into %s", ErrNotAssignable, t)
		}
	}
	rv := reflect.ValueOf(v)
	switch {
	case rv.Type().AssignableTo(t):
		return rv, nil
	case rv.Type().ConvertibleTo(t):
		return rv.Convert(t), nil
	default:
		return reflect.Value{}, fmt.Errorf("%w: %s into %s", ErrNotAssignable, rv.Type(), t)
	}
}
