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

package prefab_test

import (
	"errors"
	"math/big"
	"net"
	"reflect"
	"regexp"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"dirpx.dev/pfx/apis"
	"dirpx.dev/pfx/builder"
	"dirpx.dev/pfx/config"
	"dirpx.dev/pfx/prefab"
)

// opaqueComparers make cmp usable for bootstrap types with unexported
// fields.
var opaqueComparers = []cmp.Option{
	cmp.Comparer(func(a, b *big.Int) bool { return a.Cmp(b) == 0 }),
	cmp.Comparer(func(a, b *big.Float) bool { return a.Cmp(b) == 0 }),
	cmp.Comparer(func(a, b *big.Rat) bool { return a.Cmp(b) == 0 }),
	cmp.Comparer(func(a, b *regexp.Regexp) bool { return a.String() == b.String() }),
	cmp.Comparer(func(a, b *time.Location) bool { return a.String() == b.String() }),
	cmp.Comparer(func(a, b time.Time) bool { return a.Equal(b) }),
}

// Every bootstrap direct triple must satisfy the contract: red != black,
// red == redCopy, and reference-shaped copies are distinct instances.
func TestBootstrapTriplesAreValid(t *testing.T) {
	cfg := config.DefaultConfig()
	reg := builder.New().BuildRegistry(cfg, nil, nil)
	prefab.AddTo(reg)

	for _, e := range reg.Entries() {
		if e.Kind != apis.EntryDirect {
			continue
		}
		if err := e.Triple.Validate(opaqueComparers...); err != nil {
			t.Errorf("bootstrap triple for %s: %v", e.Desc, err)
		}
	}
}

func TestBootstrapCoverage(t *testing.T) {
	cfg := config.DefaultConfig()
	reg := builder.New().BuildRegistry(cfg, nil, nil)
	prefab.AddTo(reg)

	for _, v := range []any{
		true, int(0), int8(0), int16(0), int32(0), int64(0),
		uint(0), uint8(0), uint16(0), uint32(0), uint64(0), uintptr(0),
		float32(0), float64(0), complex64(0), complex128(0), "",
		time.Time{}, time.Duration(0), time.January, time.Sunday,
		&big.Int{}, &big.Float{}, &big.Rat{}, &regexp.Regexp{}, time.UTC,
	} {
		if _, ok := reg.Direct(apis.TypeOf(v)); !ok {
			t.Errorf("no bootstrap triple for %T", v)
		}
	}
	if _, ok := reg.Direct(apis.OfType(apis.AnyType)); !ok {
		t.Errorf("no bootstrap triple for the generic any type")
	}
}

func TestBootstrapOverridable(t *testing.T) {
	cfg := config.DefaultConfig()
	reg := builder.New().BuildRegistry(cfg, nil, nil)
	prefab.AddTo(reg)

	require.NoError(t, reg.Register(apis.TypeOf(0), apis.NewTriple(100, 200, 100)))
	tr, ok := reg.Direct(apis.TypeOf(0))
	require.True(t, ok)
	require.Equal(t, 100, tr.Red)
}

// The uuid provider package is deliberately not imported here, so the lazy
// bindings must report absence, not unsupportedness, and only for their own
// names.
func TestOptionalDepsAbsentWithoutProvider(t *testing.T) {
	cfg := config.DefaultConfig()
	b := builder.New()
	reg := b.BuildRegistry(cfg, nil, nil)
	prefab.AddTo(reg)
	res := b.BuildResolver(cfg, reg, b.BuildProbe(cfg, nil, nil), nil, nil)

	_, err := res.Resolve(apis.External("github.com/google/uuid.UUID"), nil, cfg)
	var ate *apis.AbsentTypeError
	require.ErrorAs(t, err, &ate)
	require.Equal(t, "github.com/google/uuid.UUID", ate.Name)

	// A name nobody bound is unsupported, not absent.
	_, err = res.Resolve(apis.External("github.com/google/uuid.Unbound"), nil, cfg)
	var ute *apis.UnsupportedTypeError
	require.ErrorAs(t, err, &ute)
	require.False(t, errors.As(err, &ate))

	// Ordinary resolution is unaffected by the absent bindings.
	tr, err := res.ResolveType(reflect.TypeOf([]string{}), nil, cfg)
	require.NoError(t, err)
	require.NoError(t, tr.Validate())
}

func TestIPTriplesStayComparable(t *testing.T) {
	cfg := config.DefaultConfig()
	b := builder.New()
	reg := b.BuildRegistry(cfg, nil, nil)
	prefab.AddTo(reg)
	res := b.BuildResolver(cfg, reg, b.BuildProbe(cfg, nil, nil), nil, nil)

	// net.IP is a named byte slice; the bare binding must serve its
	// structural decomposition too.
	tr, err := res.ResolveType(reflect.TypeOf(net.IP{}), nil, cfg)
	require.NoError(t, err)
	require.True(t, tr.Red.(net.IP).Equal(net.ParseIP("127.0.0.1")))
	require.True(t, tr.Black.(net.IP).Equal(net.ParseIP("127.0.0.42")))
}
