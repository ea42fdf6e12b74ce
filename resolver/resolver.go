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

package resolver

import (
	"reflect"

	"go.uber.org/zap"

	"dirpx.dev/pfx/apis"
	"dirpx.dev/pfx/config"
	uref "dirpx.dev/pfx/utils/reflect"
)

// New constructs an apis.Resolver that tries the given strategies in order.
// Nil strategies are ignored. reg is consulted for the cycle fallback (the
// direct triple of the bare base descriptor). The returned resolver is safe
// for concurrent use provided strategies themselves are, and each request
// owns its Guard.
func New(reg apis.Registry, strategies ...apis.Strategy) apis.Resolver {
	// Filter out nils to avoid nil-interface panics on call sites.
	out := make([]apis.Strategy, 0, len(strategies))
	for _, s := range strategies {
		if s != nil {
			out = append(out, s)
		}
	}
	return chain{reg: reg, strats: out}
}

// chain is an immutable, order-preserving resolver over a set of strategies.
type chain struct {
	reg    apis.Registry
	strats []apis.Strategy
}

// Resolve produces a triple for d:
//  1. A descriptor already on the guard (or a request past MaxDepth) is a
//     cyclic/self-referential request and yields the terminal fallback
//     triple instead of recursing. Policy, not an error.
//  2. Otherwise d is pushed, the strategies run in order, and d is popped on
//     every path.
//  3. No strategy handled -> UnsupportedTypeError.
func (r chain) Resolve(d apis.Descriptor, g *apis.Guard, cfg apis.Config) (apis.Triple, error) {
	if d.IsZero() {
		return apis.Triple{}, &apis.UnsupportedTypeError{Desc: d}
	}
	if g == nil {
		g = apis.NewGuard()
	}
	maxDepth := cfg.MaxDepth
	if maxDepth <= 0 {
		maxDepth = config.DefaultMaxDepth
	}

	if g.Depth() >= maxDepth || !g.Push(d) {
		if cfg.Logger != nil {
			cfg.Logger.Debug("pfx: cycle fallback",
				zap.String("type", d.String()),
				zap.Int("depth", g.Depth()),
				zap.Int("cycles", g.Cycles()))
		}
		return r.fallback(d), nil
	}
	defer g.Pop(d)

	for _, s := range r.strats {
		t, handled, err := s.TryResolve(d, r, g, cfg)
		if err != nil {
			return apis.Triple{}, err
		}
		if handled {
			return t, nil
		}
	}
	return apis.Triple{}, &apis.UnsupportedTypeError{Desc: d}
}

// ResolveType decomposes t into a structural descriptor and resolves it.
func (r chain) ResolveType(t reflect.Type, g *apis.Guard, cfg apis.Config) (apis.Triple, error) {
	d, err := uref.Decompose(t, cfg)
	if err != nil {
		return apis.Triple{}, err
	}
	return r.Resolve(d, g, cfg)
}

// fallback is the uniform cycle substitution: the direct triple registered
// for the bare base descriptor if one exists, else a minimal triple of the
// base type. For reference-shaped kinds the minimal triple is
// empty-vs-nil, which stays content-unequal so outer containers built
// around it keep their red/black distinction; for value kinds it degrades
// to zero values. Degenerate inner values are acceptable at the cycle
// point; the contract under test concerns the outer type.
func (r chain) fallback(d apis.Descriptor) apis.Triple {
	if r.reg != nil {
		if t, ok := r.reg.Direct(d.Base()); ok {
			return t
		}
	}
	bt := d.Type()
	if bt == nil {
		return apis.Triple{}
	}
	switch bt.Kind() {
	case reflect.Slice:
		return apis.Triple{
			Red:     reflect.MakeSlice(bt, 0, 0).Interface(),
			Black:   reflect.Zero(bt).Interface(),
			RedCopy: reflect.MakeSlice(bt, 0, 0).Interface(),
		}
	case reflect.Map:
		return apis.Triple{
			Red:     reflect.MakeMap(bt).Interface(),
			Black:   reflect.Zero(bt).Interface(),
			RedCopy: reflect.MakeMap(bt).Interface(),
		}
	case reflect.Ptr:
		return apis.Triple{
			Red:     reflect.New(bt.Elem()).Interface(),
			Black:   reflect.Zero(bt).Interface(),
			RedCopy: reflect.New(bt.Elem()).Interface(),
		}
	default:
		return apis.Triple{
			Red:     reflect.New(bt).Elem().Interface(),
			Black:   reflect.New(bt).Elem().Interface(),
			RedCopy: reflect.New(bt).Elem().Interface(),
		}
	}
}
