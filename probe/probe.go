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

// Package probe implements the capability probe: locating optional external
// types without failing when they are absent.
//
// Go has no classloader, so "is this library present" maps to "is a provider
// for it linked into the binary". Optional packages register a Provider from
// their init function, in the manner of database/sql drivers:
//
//	func init() {
//		probe.RegisterProvider("github.com/google/uuid.UUID", probe.Provider{...})
//	}
//
// and consumers reach the type through Probe.Resolve by that name. The
// probe's view of present vs absent is therefore a boundary condition of the
// build: deterministic for a fixed binary, different across binaries. That
// is intentional.
package probe

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"dirpx.dev/pfx/apis"
	uref "dirpx.dev/pfx/utils/reflect"
)

var (
	// ErrEmptyName is returned when an empty provider name is given.
	ErrEmptyName = errors.New("pfx(probe): empty provider name")
	// ErrNilProviderType is returned when a provider carries no type.
	ErrNilProviderType = errors.New("pfx(probe): provider has nil type")
	// errNoConstructor reports a New call on a provider without one.
	errNoConstructor = errors.New("no constructor registered")
	// errNoSuchMethod reports a Call on a method the provider does not have.
	errNoSuchMethod = errors.New("no such factory method")
	// errNotAFunc reports a registered entry point that is not a function.
	errNotAFunc = errors.New("registered entry point is not a func")
)

// Provider describes one optional external type: its reflect.Type, an
// optional constructor, named factory functions, and named pre-existing
// constants. All invocation targets are plain funcs/values; the probe does
// the reflective plumbing.
type Provider struct {
	// Type is the external type being provided.
	Type reflect.Type
	// New is an optional constructor func. Its results follow factory-func
	// conventions: a value, or (value, error).
	New any
	// Methods maps factory-method names to funcs.
	Methods map[string]any
	// Constants maps constant names to pre-existing values, for types that
	// must not be constructed.
	Constants map[string]any
}

var (
	catalogMu sync.RWMutex
	catalog   = make(map[string]Provider)
)

// RegisterProvider publishes a provider under a fully qualified type name.
// Later registrations for the same name replace earlier ones. Call this from
// the optional package's init function.
func RegisterProvider(name string, p Provider) error {
	if name == "" {
		return ErrEmptyName
	}
	if p.Type == nil {
		return ErrNilProviderType
	}
	catalogMu.Lock()
	defer catalogMu.Unlock()
	catalog[name] = p
	return nil
}

// UnregisterProvider removes a provider. Intended for tests.
func UnregisterProvider(name string) {
	catalogMu.Lock()
	defer catalogMu.Unlock()
	delete(catalog, name)
}

// Providers returns the sorted names of all registered providers.
func Providers() []string {
	catalogMu.RLock()
	defer catalogMu.RUnlock()
	names := make([]string, 0, len(catalog))
	for n := range catalog {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// New returns an apis.Probe backed by the process-wide provider catalog.
func New() apis.Probe {
	return probe{}
}

// probe is a stateless view over the catalog.
type probe struct{}

// Ensure probe implements apis.Probe.
var _ apis.Probe = probe{}

// Resolve locates a provider by name. Absence is a false return, never an
// error.
func (probe) Resolve(name string) (apis.Handle, bool) {
	catalogMu.RLock()
	p, ok := catalog[name]
	catalogMu.RUnlock()
	if !ok {
		return nil, false
	}
	return handle{name: name, p: p}, true
}

// handle is a located provider. All invocation failures surface as
// InstantiationError; absence was already filtered out by Resolve.
type handle struct {
	name string
	p    Provider
}

// Ensure handle implements apis.Handle.
var _ apis.Handle = handle{}

func (h handle) Name() string {
	return h.name
}

func (h handle) Type() reflect.Type {
	return h.p.Type
}

func (h handle) New(args ...any) (any, error) {
	if h.p.New == nil {
		return nil, &apis.InstantiationError{Name: h.name, Err: errNoConstructor}
	}
	return h.invoke(h.p.New, args)
}

func (h handle) Call(method string, args ...any) (any, error) {
	fn, ok := h.p.Methods[method]
	if !ok {
		return nil, &apis.InstantiationError{
			Name: h.name,
			Err:  fmt.Errorf("%w: %s", errNoSuchMethod, method),
		}
	}
	return h.invoke(fn, args)
}

func (h handle) Constant(name string) (any, bool) {
	v, ok := h.p.Constants[name]
	return v, ok
}

// invoke calls fn reflectively, coercing args to the parameter types and
// recovering panics from the external call.
func (h handle) invoke(fn any, args []any) (out any, err error) {
	rf := reflect.ValueOf(fn)
	if !rf.IsValid() || rf.Kind() != reflect.Func {
		return nil, &apis.InstantiationError{Name: h.name, Err: errNotAFunc}
	}
	ft := rf.Type()

	in, err := h.buildArgs(ft, args)
	if err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = &apis.InstantiationError{Name: h.name, Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	results := rf.Call(in)

	// Conventions: one value, or (value, error).
	switch len(results) {
	case 1:
		return results[0].Interface(), nil
	case 2:
		if e, ok := results[1].Interface().(error); ok && e != nil {
			return nil, &apis.InstantiationError{Name: h.name, Err: e}
		}
		return results[0].Interface(), nil
	default:
		return nil, &apis.InstantiationError{
			Name: h.name,
			Err:  fmt.Errorf("unexpected result arity %d", len(results)),
		}
	}
}

func (h handle) buildArgs(ft reflect.Type, args []any) ([]reflect.Value, error) {
	fixed := ft.NumIn()
	if ft.IsVariadic() {
		fixed--
		if len(args) < fixed {
			return nil, &apis.InstantiationError{
				Name: h.name,
				Err:  fmt.Errorf("want at least %d args, got %d", fixed, len(args)),
			}
		}
	} else if len(args) != fixed {
		return nil, &apis.InstantiationError{
			Name: h.name,
			Err:  fmt.Errorf("want %d args, got %d", fixed, len(args)),
		}
	}

	in := make([]reflect.Value, 0, len(args))
	for i, a := range args {
		var pt reflect.Type
		if i < fixed {
			pt = ft.In(i)
		} else {
			pt = ft.In(ft.NumIn() - 1).Elem()
		}
		v, err := uref.Assign(a, pt)
		if err != nil {
			return nil, &apis.InstantiationError{Name: h.name, Err: err}
		}
		in = append(in, v)
	}
	return in, nil
}
