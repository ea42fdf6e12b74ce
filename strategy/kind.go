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

package strategy

import (
	"reflect"

	"dirpx.dev/pfx/apis"
	uref "dirpx.dev/pfx/utils/reflect"
)

// NewKind creates an apis.Strategy that builds triples for Go's generic
// container kinds without per-type registration:
//
//   - slice/array: single-element containers; red holds the element triple's
//     red, black holds its black, redCopy is a fresh container holding red's
//     element again.
//   - map: key-value container; red and black hold differing values under
//     the same key.
//   - ptr: single-parameter wrapper around the element triple.
//   - chan: three fresh buffered channels carrying the red/black elements.
//     Channels compare by identity, so redCopy is distinct but not equal to
//     red; the degenerate copy mirrors how identity-only types behave.
//
// Element and key descriptors come from the request's parameters when
// present, falling back to structural decomposition of the reflect type.
func NewKind() apis.Strategy {
	return kindStrategy{}
}

// kindStrategy is the universal fallback for container kinds. It recurses
// into the resolver for element/key triples, so nested containers resolve to
// arbitrary depth (bounded by the guard).
type kindStrategy struct{}

// Ensure kindStrategy implements apis.Strategy.
var _ apis.Strategy = kindStrategy{}

func (kindStrategy) TryResolve(d apis.Descriptor, res apis.Resolver, g *apis.Guard, cfg apis.Config) (apis.Triple, bool, error) {
	t := d.Type()
	if t == nil {
		return apis.Triple{}, false, nil
	}
	switch t.Kind() {
	case reflect.Slice:
		tr, err := sliceTriple(d, t, res, g, cfg)
		return tr, true, err
	case reflect.Array:
		if t.Len() == 0 {
			// Zero-length arrays cannot differ in content.
			return apis.Triple{}, false, nil
		}
		tr, err := arrayTriple(d, t, res, g, cfg)
		return tr, true, err
	case reflect.Map:
		tr, err := mapTriple(d, t, res, g, cfg)
		return tr, true, err
	case reflect.Ptr:
		tr, err := ptrTriple(d, t, res, g, cfg)
		return tr, true, err
	case reflect.Chan:
		tr, err := chanTriple(d, t, res, g, cfg)
		return tr, true, err
	default:
		return apis.Triple{}, false, nil
	}
}

// elemDescriptor picks the i-th parameter descriptor if the request carries
// one, else decomposes the statically declared type.
func elemDescriptor(d apis.Descriptor, i int, static reflect.Type, cfg apis.Config) (apis.Descriptor, error) {
	if d.NumParams() > i {
		return d.Param(i), nil
	}
	return uref.Decompose(static, cfg)
}

func sliceTriple(d apis.Descriptor, t reflect.Type, res apis.Resolver, g *apis.Guard, cfg apis.Config) (apis.Triple, error) {
	ed, err := elemDescriptor(d, 0, t.Elem(), cfg)
	if err != nil {
		return apis.Triple{}, err
	}
	et, err := res.Resolve(ed, g, cfg)
	if err != nil {
		return apis.Triple{}, err
	}
	red, err := singleton(t, et.Red)
	if err != nil {
		return apis.Triple{}, wrapAssign(d, err)
	}
	black, err := singleton(t, et.Black)
	if err != nil {
		return apis.Triple{}, wrapAssign(d, err)
	}
	redCopy, err := singleton(t, uref.DeepCopy(et.Red))
	if err != nil {
		return apis.Triple{}, wrapAssign(d, err)
	}
	return apis.Triple{Red: red, Black: black, RedCopy: redCopy}, nil
}

// singleton builds a one-element slice of type t.
func singleton(t reflect.Type, elem any) (any, error) {
	ev, err := uref.Assign(elem, t.Elem())
	if err != nil {
		return nil, err
	}
	s := reflect.MakeSlice(t, 0, 1)
	return reflect.Append(s, ev).Interface(), nil
}

func arrayTriple(d apis.Descriptor, t reflect.Type, res apis.Resolver, g *apis.Guard, cfg apis.Config) (apis.Triple, error) {
	ed, err := elemDescriptor(d, 0, t.Elem(), cfg)
	if err != nil {
		return apis.Triple{}, err
	}
	et, err := res.Resolve(ed, g, cfg)
	if err != nil {
		return apis.Triple{}, err
	}
	fill := func(elem any) (any, error) {
		ev, err := uref.Assign(elem, t.Elem())
		if err != nil {
			return nil, err
		}
		a := reflect.New(t).Elem()
		a.Index(0).Set(ev)
		return a.Interface(), nil
	}
	red, err := fill(et.Red)
	if err != nil {
		return apis.Triple{}, wrapAssign(d, err)
	}
	black, err := fill(et.Black)
	if err != nil {
		return apis.Triple{}, wrapAssign(d, err)
	}
	redCopy, err := fill(uref.DeepCopy(et.Red))
	if err != nil {
		return apis.Triple{}, wrapAssign(d, err)
	}
	return apis.Triple{Red: red, Black: black, RedCopy: redCopy}, nil
}

func mapTriple(d apis.Descriptor, t reflect.Type, res apis.Resolver, g *apis.Guard, cfg apis.Config) (apis.Triple, error) {
	kd, err := elemDescriptor(d, 0, t.Key(), cfg)
	if err != nil {
		return apis.Triple{}, err
	}
	vd, err := elemDescriptor(d, 1, t.Elem(), cfg)
	if err != nil {
		return apis.Triple{}, err
	}
	kt, err := res.Resolve(kd, g, cfg)
	if err != nil {
		return apis.Triple{}, err
	}
	vt, err := res.Resolve(vd, g, cfg)
	if err != nil {
		return apis.Triple{}, err
	}
	entry := func(key, val any) (any, error) {
		kv, err := uref.Assign(key, t.Key())
		if err != nil {
			return nil, err
		}
		vv, err := uref.Assign(val, t.Elem())
		if err != nil {
			return nil, err
		}
		m := reflect.MakeMapWithSize(t, 1)
		m.SetMapIndex(kv, vv)
		return m.Interface(), nil
	}
	// Same key on both sides; only the value differs, so the maps are
	// unequal by content, not by key set.
	red, err := entry(kt.Red, vt.Red)
	if err != nil {
		return apis.Triple{}, wrapAssign(d, err)
	}
	black, err := entry(kt.Red, vt.Black)
	if err != nil {
		return apis.Triple{}, wrapAssign(d, err)
	}
	redCopy, err := entry(uref.DeepCopy(kt.Red), uref.DeepCopy(vt.Red))
	if err != nil {
		return apis.Triple{}, wrapAssign(d, err)
	}
	return apis.Triple{Red: red, Black: black, RedCopy: redCopy}, nil
}

func ptrTriple(d apis.Descriptor, t reflect.Type, res apis.Resolver, g *apis.Guard, cfg apis.Config) (apis.Triple, error) {
	ed, err := elemDescriptor(d, 0, t.Elem(), cfg)
	if err != nil {
		return apis.Triple{}, err
	}
	et, err := res.Resolve(ed, g, cfg)
	if err != nil {
		return apis.Triple{}, err
	}
	wrap := func(elem any) (any, error) {
		ev, err := uref.Assign(elem, t.Elem())
		if err != nil {
			return nil, err
		}
		p := reflect.New(t.Elem())
		p.Elem().Set(ev)
		if p.Type() != t {
			return p.Convert(t).Interface(), nil
		}
		return p.Interface(), nil
	}
	red, err := wrap(et.Red)
	if err != nil {
		return apis.Triple{}, wrapAssign(d, err)
	}
	black, err := wrap(et.Black)
	if err != nil {
		return apis.Triple{}, wrapAssign(d, err)
	}
	redCopy, err := wrap(uref.DeepCopy(et.Red))
	if err != nil {
		return apis.Triple{}, wrapAssign(d, err)
	}
	return apis.Triple{Red: red, Black: black, RedCopy: redCopy}, nil
}

func chanTriple(d apis.Descriptor, t reflect.Type, res apis.Resolver, g *apis.Guard, cfg apis.Config) (apis.Triple, error) {
	ed, err := elemDescriptor(d, 0, t.Elem(), cfg)
	if err != nil {
		return apis.Triple{}, err
	}
	et, err := res.Resolve(ed, g, cfg)
	if err != nil {
		return apis.Triple{}, err
	}
	mk := func(elem any) (any, error) {
		bidi := reflect.ChanOf(reflect.BothDir, t.Elem())
		c := reflect.MakeChan(bidi, 1)
		if ev, err := uref.Assign(elem, t.Elem()); err == nil {
			c.Send(ev)
		}
		if bidi != t {
			return c.Convert(t).Interface(), nil
		}
		return c.Interface(), nil
	}
	red, err := mk(et.Red)
	if err != nil {
		return apis.Triple{}, wrapAssign(d, err)
	}
	black, err := mk(et.Black)
	if err != nil {
		return apis.Triple{}, wrapAssign(d, err)
	}
	redCopy, err := mk(et.Red)
	if err != nil {
		return apis.Triple{}, wrapAssign(d, err)
	}
	return apis.Triple{Red: red, Black: black, RedCopy: redCopy}, nil
}

// wrapAssign turns an element coercion failure into the instantiation slot
// of the error taxonomy, naming the container type.
func wrapAssign(d apis.Descriptor, err error) error {
	return &apis.InstantiationError{Name: d.String(), Err: err}
}
