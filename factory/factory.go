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

// Package factory provides the factory variants of the sample-value
// protocol as small closure-backed constructors: one declarative table of
// registrations instead of one dedicated type per external class.
package factory

import (
	"dirpx.dev/pfx/apis"
	uref "dirpx.dev/pfx/utils/reflect"
)

// Values returns a factory that ignores its inputs and serves fixed
// constants. For types whose instances are cheap and context-free.
func Values(red, black, redCopy any) apis.Factory {
	t := apis.Triple{Red: red, Black: black, RedCopy: redCopy}
	return apis.FactoryFunc(func(apis.Descriptor, apis.Resolver, *apis.Guard, apis.Config) (apis.Triple, error) {
		return t, nil
	})
}

// Container returns a single-element-container factory for user-defined
// container types. newEmpty builds an empty container; add inserts an
// element and returns the container (enabling value receivers). The element
// descriptor is the request's first parameter, defaulting to the generic
// any type when unparameterized.
func Container(newEmpty func() any, add func(c, e any) any) apis.Factory {
	return apis.FactoryFunc(func(d apis.Descriptor, res apis.Resolver, g *apis.Guard, cfg apis.Config) (apis.Triple, error) {
		et, err := res.Resolve(paramOrAny(d, 0), g, cfg)
		if err != nil {
			return apis.Triple{}, err
		}
		return apis.Triple{
			Red:     add(newEmpty(), et.Red),
			Black:   add(newEmpty(), et.Black),
			RedCopy: add(newEmpty(), uref.DeepCopy(et.Red)),
		}, nil
	})
}

// KeyValue returns a key-value-container factory. put stores an entry and
// returns the container. Red and black receive differing values under the
// same key, so the containers are unequal by content. Key and value
// descriptors are the request's first and second parameters, defaulting to
// the generic any type.
func KeyValue(newEmpty func() any, put func(m, k, v any) any) apis.Factory {
	return apis.FactoryFunc(func(d apis.Descriptor, res apis.Resolver, g *apis.Guard, cfg apis.Config) (apis.Triple, error) {
		kt, err := res.Resolve(paramOrAny(d, 0), g, cfg)
		if err != nil {
			return apis.Triple{}, err
		}
		vt, err := res.Resolve(paramOrAny(d, 1), g, cfg)
		if err != nil {
			return apis.Triple{}, err
		}
		return apis.Triple{
			Red:     put(newEmpty(), kt.Red, vt.Red),
			Black:   put(newEmpty(), kt.Red, vt.Black),
			RedCopy: put(newEmpty(), uref.DeepCopy(kt.Red), uref.DeepCopy(vt.Red)),
		}, nil
	})
}

// Wrapper returns a lazy factory for single-type-parameter wrapper types: it
// resolves a triple for the parameter type and wraps each value through the
// named external factory method.
func Wrapper(method string) apis.LazyFactory {
	return apis.LazyFactoryFunc(func(h apis.Handle, d apis.Descriptor, res apis.Resolver, g *apis.Guard, cfg apis.Config) (apis.Triple, error) {
		et, err := res.Resolve(paramOrAny(d, 0), g, cfg)
		if err != nil {
			return apis.Triple{}, err
		}
		red, err := h.Call(method, et.Red)
		if err != nil {
			return apis.Triple{}, err
		}
		black, err := h.Call(method, et.Black)
		if err != nil {
			return apis.Triple{}, err
		}
		redCopy, err := h.Call(method, uref.DeepCopy(et.Red))
		if err != nil {
			return apis.Triple{}, err
		}
		return apis.Triple{Red: red, Black: black, RedCopy: redCopy}, nil
	})
}

// Instantiate returns a lazy factory that invokes the external constructor
// with fixed argument lists: redArgs for red and redCopy, blackArgs for
// black.
func Instantiate(redArgs, blackArgs []any) apis.LazyFactory {
	return apis.LazyFactoryFunc(func(h apis.Handle, _ apis.Descriptor, _ apis.Resolver, _ *apis.Guard, _ apis.Config) (apis.Triple, error) {
		red, err := h.New(redArgs...)
		if err != nil {
			return apis.Triple{}, err
		}
		black, err := h.New(blackArgs...)
		if err != nil {
			return apis.Triple{}, err
		}
		redCopy, err := h.New(redArgs...)
		if err != nil {
			return apis.Triple{}, err
		}
		return apis.Triple{Red: red, Black: black, RedCopy: redCopy}, nil
	})
}

// Method returns a lazy factory that invokes a named external factory method
// with fixed argument lists: redArgs for red and redCopy, blackArgs for
// black.
func Method(method string, redArgs, blackArgs []any) apis.LazyFactory {
	return apis.LazyFactoryFunc(func(h apis.Handle, _ apis.Descriptor, _ apis.Resolver, _ *apis.Guard, _ apis.Config) (apis.Triple, error) {
		red, err := h.Call(method, redArgs...)
		if err != nil {
			return apis.Triple{}, err
		}
		black, err := h.Call(method, blackArgs...)
		if err != nil {
			return apis.Triple{}, err
		}
		redCopy, err := h.Call(method, redArgs...)
		if err != nil {
			return apis.Triple{}, err
		}
		return apis.Triple{Red: red, Black: black, RedCopy: redCopy}, nil
	})
}

// Constants returns a lazy factory for types that must not be constructed
// but expose distinguishable pre-existing values: it selects two named
// constants from the handle. RedCopy reuses the red constant; for such types
// identity-distinct copies do not exist by definition.
func Constants(redName, blackName string) apis.LazyFactory {
	return apis.LazyFactoryFunc(func(h apis.Handle, _ apis.Descriptor, _ apis.Resolver, _ *apis.Guard, _ apis.Config) (apis.Triple, error) {
		red, ok := h.Constant(redName)
		if !ok {
			return apis.Triple{}, &apis.InstantiationError{Name: h.Name(), Err: errMissingConstant(redName)}
		}
		black, ok := h.Constant(blackName)
		if !ok {
			return apis.Triple{}, &apis.InstantiationError{Name: h.Name(), Err: errMissingConstant(blackName)}
		}
		return apis.Triple{Red: red, Black: black, RedCopy: red}, nil
	})
}

type errMissingConstant string

func (e errMissingConstant) Error() string {
	return "no such constant: " + string(e)
}

// paramOrAny picks the i-th parameter descriptor, defaulting to the generic
// any type for unparameterized requests.
func paramOrAny(d apis.Descriptor, i int) apis.Descriptor {
	if d.NumParams() > i {
		return d.Param(i)
	}
	return apis.OfType(apis.AnyType)
}
