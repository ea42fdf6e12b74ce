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

package pfx

import (
	"errors"
	"reflect"
	"sync"
	"sync/atomic"

	"dirpx.dev/pfx/apis"
	"dirpx.dev/pfx/builder"
	"dirpx.dev/pfx/config"
	"dirpx.dev/pfx/prefab"
)

// init initializes the global pfx state.
func init() {
	// Initialize state with default cfg, reg, prb and res.
	s := &state{cfg: config.DefaultConfig()}
	b := builder.New()
	s.reg = b.BuildRegistry(s.cfg, nil, nil)
	prefab.AddTo(s.reg)
	s.prb = b.BuildProbe(s.cfg, nil, nil)
	s.res = b.BuildResolver(s.cfg, s.reg, s.prb, nil, nil)
	s.bld = b
	// Store the initial state atomically.
	st.Store(s)
}

var (
	// ErrNilRegistry is returned when a builder returns a nil registry.
	ErrNilRegistry = errors.New("pfx: builder returned nil registry")
	// ErrNilProbe is returned when a builder returns a nil probe.
	ErrNilProbe = errors.New("pfx: builder returned nil probe")
	// ErrNilResolver is returned when a builder returns a nil resolver.
	ErrNilResolver = errors.New("pfx: builder returned nil resolver")
)

// Values resolves a sample-value triple for the dynamic type of v using the
// global pfx resolver, with a fresh recursion guard.
// This is a convenience wrapper around the global res.
func Values(v any) (apis.Triple, error) {
	s := st.Load()
	return s.res.ResolveType(reflect.TypeOf(v), apis.NewGuard(), s.cfg)
}

// ValuesForType resolves a sample-value triple for the reflect.Type t using
// the global pfx resolver, with a fresh recursion guard.
// This is a convenience wrapper around the global res.
func ValuesForType(t reflect.Type) (apis.Triple, error) {
	s := st.Load()
	return s.res.ResolveType(t, apis.NewGuard(), s.cfg)
}

// ValuesFor resolves a sample-value triple for the descriptor d using the
// global pfx resolver, with a fresh recursion guard.
// This is a convenience wrapper around the global res.
func ValuesFor(d apis.Descriptor) (apis.Triple, error) {
	s := st.Load()
	return s.res.Resolve(d, apis.NewGuard(), s.cfg)
}

// Register adds a direct triple binding to the global pfx reg, overriding
// any bootstrap default for the same descriptor.
// This is a convenience wrapper around the global reg.
func Register(d apis.Descriptor, t apis.Triple) error {
	return st.Load().reg.Register(d, t)
}

// RegisterFactory adds a factory binding to the global pfx reg.
// This is a convenience wrapper around the global reg.
func RegisterFactory(d apis.Descriptor, f apis.Factory) error {
	return st.Load().reg.RegisterFactory(d, f)
}

// RegisterLazy adds a name-keyed lazy binding to the global pfx reg. The
// external type is not located until first use.
// This is a convenience wrapper around the global reg.
func RegisterLazy(name string, f apis.LazyFactory) error {
	return st.Load().reg.RegisterLazy(name, f)
}

// SetAll explicitly sets all global pfx state components.
//
// Nil arguments leave the corresponding component unchanged,
// except for ext which is always replaced.
//
// This is a convenience wrapper around the global state.
func SetAll(cfg *apis.Config, ext any, reg apis.Registry, prb apis.Probe, res apis.Resolver, bld apis.Builder) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Configuration
	ncfg := old.cfg
	if cfg != nil {
		ncfg = *cfg
	}

	// Extension
	next := ext

	// Builder
	nbld := old.bld
	if bld != nil {
		nbld = bld
	}

	// Registry
	nreg := reg
	npreg := false
	if nreg == nil {
		nreg = nbld.BuildRegistry(ncfg, old.reg, next)
	} else {
		npreg = true
	}

	// Probe
	nprb := prb
	npprb := false
	if nprb == nil {
		nprb = nbld.BuildProbe(ncfg, old.prb, next)
	} else {
		npprb = true
	}

	// Resolver
	nres := res
	npres := false
	if nres == nil {
		nres = nbld.BuildResolver(ncfg, nreg, nprb, old.res, next)
	} else {
		npres = true
	}

	// Ensure non-nil reg, prb and res.
	if nreg == nil {
		panic(ErrNilRegistry)
	}
	if nprb == nil {
		panic(ErrNilProbe)
	}
	if nres == nil {
		panic(ErrNilResolver)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  ncfg,
			ext:  next,
			reg:  nreg,
			prb:  nprb,
			res:  nres,
			bld:  nbld,
			preg: npreg,
			pprb: npprb,
			pres: npres,
		},
	)
}

// Config returns the global pfx configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the global pfx configuration to cfg.
// It rebuilds the non-pinned layers using the new configuration.
// This is a convenience wrapper around the global state.
func SetConfig(cfg apis.Config) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	b := old.bld

	// Build new reg, prb and res based on the new cfg and old state.
	nreg := old.reg
	if !old.preg {
		nreg = b.BuildRegistry(cfg, old.reg, old.ext)
	}
	nprb := old.prb
	if !old.pprb {
		nprb = b.BuildProbe(cfg, old.prb, old.ext)
	}
	nres := old.res
	if !old.pres {
		nres = b.BuildResolver(cfg, nreg, nprb, old.res, old.ext)
	}

	// Ensure non-nil reg, prb and res.
	if nreg == nil {
		panic(ErrNilRegistry)
	}
	if nprb == nil {
		panic(ErrNilProbe)
	}
	if nres == nil {
		panic(ErrNilResolver)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  cfg,
			ext:  old.ext,
			reg:  nreg,
			prb:  nprb,
			res:  nres,
			bld:  b,
			preg: old.preg,
			pprb: old.pprb,
			pres: old.pres,
		},
	)
}

// Registry returns the global pfx reg.
func Registry() apis.Registry {
	return st.Load().reg
}

// SetRegistry sets the global pfx reg to reg and pins it.
// It uses the global pfx configuration to rebuild the global res.
// This is a convenience wrapper around the global state.
func SetRegistry(reg apis.Registry) {
	if reg == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	b := old.bld

	// Build new res based on the old cfg and new reg.
	nres := old.res
	if !old.pres {
		nres = b.BuildResolver(old.cfg, reg, old.prb, old.res, old.ext)
	}

	// Ensure non-nil res.
	if nres == nil {
		panic(ErrNilResolver)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			reg:  reg,
			prb:  old.prb,
			res:  nres,
			bld:  b,
			preg: true,
			pprb: old.pprb,
			pres: old.pres,
		},
	)
}

// Probe returns the global pfx prb.
func Probe() apis.Probe {
	return st.Load().prb
}

// SetProbe sets the global pfx prb to prb and pins it.
// It uses the global pfx configuration and reg to rebuild the global res.
// This is a convenience wrapper around the global state.
func SetProbe(prb apis.Probe) {
	if prb == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	b := old.bld

	// Build new res based on the old cfg/reg and new prb.
	nres := old.res
	if !old.pres {
		nres = b.BuildResolver(old.cfg, old.reg, prb, old.res, old.ext)
	}

	// Ensure non-nil res.
	if nres == nil {
		panic(ErrNilResolver)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			reg:  old.reg,
			prb:  prb,
			res:  nres,
			bld:  b,
			preg: old.preg,
			pprb: true,
			pres: old.pres,
		},
	)
}

// Resolver returns the global pfx res.
func Resolver() apis.Resolver {
	return st.Load().res
}

// SetResolver sets the global pfx res to res and pins it.
// This is a convenience wrapper around the global state.
func SetResolver(res apis.Resolver) {
	if res == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			reg:  old.reg,
			prb:  old.prb,
			res:  res,
			bld:  old.bld,
			preg: old.preg,
			pprb: old.pprb,
			pres: true,
		},
	)
}

// Builder returns the global pfx bld.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder sets the global pfx bld to b.
// This is a convenience wrapper around the global state.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Build new reg, prb and res based on the new bld and old state.
	nreg := old.reg
	if !old.preg {
		nreg = b.BuildRegistry(old.cfg, old.reg, old.ext)
	}
	nprb := old.prb
	if !old.pprb {
		nprb = b.BuildProbe(old.cfg, old.prb, old.ext)
	}
	nres := old.res
	if !old.pres {
		nres = b.BuildResolver(old.cfg, nreg, nprb, old.res, old.ext)
	}

	// Ensure non-nil reg, prb and res.
	if nreg == nil {
		panic(ErrNilRegistry)
	}
	if nprb == nil {
		panic(ErrNilProbe)
	}
	if nres == nil {
		panic(ErrNilResolver)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			reg:  nreg,
			prb:  nprb,
			res:  nres,
			bld:  b,
			preg: old.preg,
			pprb: old.pprb,
			pres: old.pres,
		},
	)
}

// SetExt replaces extension config and rebuilds non-pinned layers via the builder.
func SetExt[T any](ext T) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	b := old.bld

	// Build new reg, prb and res based on the new ext and old state.
	nreg := old.reg
	if !old.preg {
		nreg = b.BuildRegistry(old.cfg, old.reg, ext)
	}
	nprb := old.prb
	if !old.pprb {
		nprb = b.BuildProbe(old.cfg, old.prb, ext)
	}
	nres := old.res
	if !old.pres {
		nres = b.BuildResolver(old.cfg, nreg, nprb, old.res, ext)
	}

	// Ensure non-nil reg, prb and res.
	if nreg == nil {
		panic(ErrNilRegistry)
	}
	if nprb == nil {
		panic(ErrNilProbe)
	}
	if nres == nil {
		panic(ErrNilResolver)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  ext,
			reg:  nreg,
			prb:  nprb,
			res:  nres,
			bld:  b,
			preg: old.preg,
			pprb: old.pprb,
			pres: old.pres,
		},
	)
}

// ExtAs returns the global pfx extension config as type T.
func ExtAs[T any]() (T, bool) {
	ext, ok := st.Load().ext.(T)
	return ext, ok
}

// IsRegistryPinned returns whether the global pfx reg is pinned (immutable).
func IsRegistryPinned() bool {
	return st.Load().preg
}

// PinRegistry makes the global pfx reg immutable.
func PinRegistry() {
	setPins(func(s *state) { s.preg = true })
}

// UnpinRegistry makes the global pfx reg mutable again.
func UnpinRegistry() {
	setPins(func(s *state) { s.preg = false })
}

// IsProbePinned returns whether the global pfx prb is pinned (immutable).
func IsProbePinned() bool {
	return st.Load().pprb
}

// PinProbe makes the global pfx prb immutable.
func PinProbe() {
	setPins(func(s *state) { s.pprb = true })
}

// UnpinProbe makes the global pfx prb mutable again.
func UnpinProbe() {
	setPins(func(s *state) { s.pprb = false })
}

// IsResolverPinned returns whether the global pfx res is pinned (immutable).
func IsResolverPinned() bool {
	return st.Load().pres
}

// PinResolver makes the global pfx res immutable.
func PinResolver() {
	setPins(func(s *state) { s.pres = true })
}

// UnpinResolver makes the global pfx res mutable again.
func UnpinResolver() {
	setPins(func(s *state) { s.pres = false })
}

// setPins copies the current state, applies f to the copy, and publishes it.
func setPins(f func(*state)) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	ns := &state{
		cfg:  old.cfg,
		ext:  old.ext,
		reg:  old.reg,
		prb:  old.prb,
		res:  old.res,
		bld:  old.bld,
		preg: old.preg,
		pprb: old.pprb,
		pres: old.pres,
	}
	f(ns)

	// Store the new state atomically.
	st.Store(ns)
}

// buildMu serializes writers (reconfigurations/swaps) so we never publish
// partially-built snapshots.
var buildMu sync.Mutex

// st is the global pfx state.
var st atomic.Pointer[state]

// state is the global pfx state snapshot.
// Immutable snapshot published atomically via st.Store; never mutate fields
// of a published state. Writers create a new state and swap it atomically.
type state struct {
	// cfg is the global pfx configuration.
	cfg apis.Config
	// ext is the global pfx extension configuration.
	ext any
	// reg is the global pfx reg.
	reg apis.Registry
	// prb is the global pfx prb.
	prb apis.Probe
	// res is the global pfx res.
	res apis.Resolver
	// bld is the global pfx bld.
	bld apis.Builder
	// preg indicates whether the reg is pinned (immutable).
	preg bool
	// pprb indicates whether the prb is pinned (immutable).
	pprb bool
	// pres indicates whether the res is pinned (immutable).
	pres bool
}
