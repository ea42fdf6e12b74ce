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

package factory_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	"dirpx.dev/pfx/apis"
	"dirpx.dev/pfx/config"
	"dirpx.dev/pfx/factory"
	"dirpx.dev/pfx/probe"
	"dirpx.dev/pfx/registry"
	"dirpx.dev/pfx/resolver"
	"dirpx.dev/pfx/strategy"
)

// stack seeds int, string and the generic any type, which unparameterized
// requests default to.
func stack(t *testing.T) (apis.Resolver, apis.Config) {
	t.Helper()
	cfg := config.DefaultConfig()
	reg := registry.New(cfg)
	require.NoError(t, reg.Register(apis.OfType(reflect.TypeOf(0)), apis.NewTriple(1, 2, 1)))
	require.NoError(t, reg.Register(apis.OfType(reflect.TypeOf("")), apis.NewTriple("one", "two", "one")))
	require.NoError(t, reg.Register(apis.OfType(apis.AnyType), apis.NewTriple(any("red"), any("black"), any("red"))))
	return resolver.New(reg, strategy.NewDirect(reg), strategy.NewKind()), cfg
}

func TestValues(t *testing.T) {
	f := factory.Values("r", "b", "r")
	tr, err := f.Produce(apis.Descriptor{}, nil, nil, apis.Config{})
	require.NoError(t, err)
	require.Equal(t, "r", tr.Red)
	require.Equal(t, "b", tr.Black)
	require.Equal(t, "r", tr.RedCopy)
}

// stack is a minimal user-defined container for the Container helper.
type intStack struct{ items []int }

func TestContainer(t *testing.T) {
	res, cfg := stack(t)
	f := factory.Container(
		func() any { return &intStack{} },
		func(c, e any) any {
			s := c.(*intStack)
			s.items = append(s.items, e.(int))
			return s
		},
	)

	d := apis.Parameterized(reflect.TypeOf(&intStack{}), apis.OfType(reflect.TypeOf(0)))
	tr, err := f.Produce(d, res, apis.NewGuard(), cfg)
	require.NoError(t, err)
	require.Equal(t, []int{1}, tr.Red.(*intStack).items)
	require.Equal(t, []int{2}, tr.Black.(*intStack).items)
	require.Equal(t, []int{1}, tr.RedCopy.(*intStack).items)
	require.NotSame(t, tr.Red, tr.RedCopy)
}

func TestContainer_DefaultsToAnyParam(t *testing.T) {
	res, cfg := stack(t)
	f := factory.Container(
		func() any { return &intStack{} },
		func(c, e any) any { return c },
	)
	// No parameter on the request; the element resolves as the any type.
	d := apis.OfType(reflect.TypeOf(&intStack{}))
	_, err := f.Produce(d, res, apis.NewGuard(), cfg)
	require.NoError(t, err)
}

type table struct{ m map[string]int }

func TestKeyValue(t *testing.T) {
	res, cfg := stack(t)
	f := factory.KeyValue(
		func() any { return &table{m: map[string]int{}} },
		func(m, k, v any) any {
			tb := m.(*table)
			tb.m[k.(string)] = v.(int)
			return tb
		},
	)

	d := apis.Parameterized(reflect.TypeOf(&table{}),
		apis.OfType(reflect.TypeOf("")), apis.OfType(reflect.TypeOf(0)))
	tr, err := f.Produce(d, res, apis.NewGuard(), cfg)
	require.NoError(t, err)
	// Same key on both sides, differing values.
	require.Equal(t, map[string]int{"one": 1}, tr.Red.(*table).m)
	require.Equal(t, map[string]int{"one": 2}, tr.Black.(*table).m)
	require.Equal(t, map[string]int{"one": 1}, tr.RedCopy.(*table).m)
}

// box stands in for an external wrapper type reached through the probe.
type box struct{ V any }

const boxName = "example.org/ext.Box"

func boxHandle(t *testing.T) apis.Handle {
	t.Helper()
	require.NoError(t, probe.RegisterProvider(boxName, probe.Provider{
		Type: reflect.TypeOf(box{}),
		New:  func(v int) box { return box{V: v} },
		Methods: map[string]any{
			"Of": func(v any) box { return box{V: v} },
		},
		Constants: map[string]any{
			"Empty": box{},
			"Full":  box{V: "full"},
		},
	}))
	t.Cleanup(func() { probe.UnregisterProvider(boxName) })

	h, ok := probe.New().Resolve(boxName)
	require.True(t, ok)
	return h
}

func TestWrapper(t *testing.T) {
	res, cfg := stack(t)
	h := boxHandle(t)

	f := factory.Wrapper("Of")
	d := apis.External(boxName, apis.OfType(reflect.TypeOf(0)))
	tr, err := f.Produce(h, d, res, apis.NewGuard(), cfg)
	require.NoError(t, err)
	require.Equal(t, box{V: 1}, tr.Red)
	require.Equal(t, box{V: 2}, tr.Black)
	require.Equal(t, box{V: 1}, tr.RedCopy)
}

func TestInstantiate(t *testing.T) {
	h := boxHandle(t)

	f := factory.Instantiate([]any{1}, []any{2})
	tr, err := f.Produce(h, apis.Descriptor{}, nil, nil, apis.Config{})
	require.NoError(t, err)
	require.Equal(t, box{V: 1}, tr.Red)
	require.Equal(t, box{V: 2}, tr.Black)
	require.Equal(t, box{V: 1}, tr.RedCopy)
}

func TestMethod(t *testing.T) {
	h := boxHandle(t)

	f := factory.Method("Of", []any{"one"}, []any{"two"})
	tr, err := f.Produce(h, apis.Descriptor{}, nil, nil, apis.Config{})
	require.NoError(t, err)
	require.Equal(t, box{V: "one"}, tr.Red)
	require.Equal(t, box{V: "two"}, tr.Black)

	f = factory.Method("Missing", nil, nil)
	_, err = f.Produce(h, apis.Descriptor{}, nil, nil, apis.Config{})
	var ie *apis.InstantiationError
	require.ErrorAs(t, err, &ie)
}

func TestConstants(t *testing.T) {
	h := boxHandle(t)

	f := factory.Constants("Empty", "Full")
	tr, err := f.Produce(h, apis.Descriptor{}, nil, nil, apis.Config{})
	require.NoError(t, err)
	require.Equal(t, box{}, tr.Red)
	require.Equal(t, box{V: "full"}, tr.Black)
	// Constant-backed types have no independent copies.
	require.Equal(t, tr.Red, tr.RedCopy)

	f = factory.Constants("Empty", "Nope")
	_, err = f.Produce(h, apis.Descriptor{}, nil, nil, apis.Config{})
	var ie *apis.InstantiationError
	require.ErrorAs(t, err, &ie)
}
