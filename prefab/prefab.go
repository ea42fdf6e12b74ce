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

// Package prefab registers the bootstrap sample values: hand-made triples
// for well-known types that cannot be produced structurally, plus lazy
// bindings for types behind optional dependencies. It is a client of the
// core, not part of it; every binding can be overridden by a later
// registration.
package prefab

import (
	"math/big"
	"net"
	"net/url"
	"regexp"
	"time"

	"dirpx.dev/pfx/apis"
	"dirpx.dev/pfx/factory"
)

// Optional-dependency type names served through the capability probe. The
// strings are deliberately not imports: linking the provider package (e.g.
// prefab/uuidpfb) is what makes them resolvable.
const (
	uuidTypeName     = "github.com/google/uuid.UUID"
	nullUUIDTypeName = "github.com/google/uuid.NullUUID"
)

// AddTo registers the bootstrap bindings on reg.
func AddTo(reg apis.Registry) {
	addPrimitives(reg)
	addNumeric(reg)
	addTime(reg)
	addNetAndText(reg)
	addOptionalDeps(reg)
}

func addPrimitives(reg apis.Registry) {
	values(reg, true, false, true)
	values(reg, int(1), int(2), int(1))
	values(reg, int8(1), int8(2), int8(1))
	values(reg, int16(1), int16(2), int16(1))
	values(reg, int32(1), int32(2), int32(1))
	values(reg, int64(1), int64(2), int64(1))
	values(reg, uint(1), uint(2), uint(1))
	values(reg, uint8(1), uint8(2), uint8(1))
	values(reg, uint16(1), uint16(2), uint16(1))
	values(reg, uint32(1), uint32(2), uint32(1))
	values(reg, uint64(1), uint64(2), uint64(1))
	values(reg, uintptr(1), uintptr(2), uintptr(1))
	values(reg, float32(0.5), float32(1.0), float32(0.5))
	values(reg, float64(0.5), float64(1.0), float64(0.5))
	values(reg, complex64(0.5), complex64(1.0), complex64(0.5))
	values(reg, complex128(0.5), complex128(1.0), complex128(0.5))
	values(reg, "one", "two", "one")

	// The generic object: the default element for unparameterized
	// containers.
	_ = reg.Register(apis.OfType(apis.AnyType), apis.NewTriple("red", "black", "red"))
}

func addNumeric(reg apis.Registry) {
	_ = reg.Register(apis.TypeOf(&big.Int{}),
		apis.NewTriple(big.NewInt(0), big.NewInt(1), big.NewInt(0)))
	_ = reg.Register(apis.TypeOf(&big.Float{}),
		apis.NewTriple(big.NewFloat(0.5), big.NewFloat(1.0), big.NewFloat(0.5)))
	_ = reg.Register(apis.TypeOf(&big.Rat{}),
		apis.NewTriple(big.NewRat(1, 2), big.NewRat(2, 1), big.NewRat(1, 2)))
}

func addTime(reg apis.Registry) {
	values(reg,
		time.Date(2010, time.August, 4, 0, 0, 0, 0, time.UTC),
		time.Date(2010, time.August, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2010, time.August, 4, 0, 0, 0, 0, time.UTC))
	values(reg, time.Second, time.Minute, time.Second)
	values(reg, time.January, time.February, time.January)
	values(reg, time.Sunday, time.Monday, time.Sunday)
	_ = reg.Register(apis.TypeOf(time.UTC), apis.NewTriple(
		time.FixedZone("red", 3600),
		time.FixedZone("black", 7200),
		time.FixedZone("red", 3600)))
}

func addNetAndText(reg apis.Registry) {
	values(reg, net.ParseIP("127.0.0.1"), net.ParseIP("127.0.0.42"), net.ParseIP("127.0.0.1"))
	values(reg, url.URL{Host: "one"}, url.URL{Host: "two"}, url.URL{Host: "one"})
	_ = reg.Register(apis.TypeOf(&regexp.Regexp{}), apis.NewTriple(
		regexp.MustCompile("one"),
		regexp.MustCompile("two"),
		regexp.MustCompile("one")))
}

func addOptionalDeps(reg apis.Registry) {
	_ = reg.RegisterLazy(uuidTypeName, factory.Method("Parse",
		[]any{"5adf9171-9c32-4db7-8f46-a7d9b35b1bba"},
		[]any{"c84497c2-3bcf-45e9-a4a9-db35aa4a1aa5"}))
	_ = reg.RegisterLazy(nullUUIDTypeName, factory.Instantiate(
		[]any{"5adf9171-9c32-4db7-8f46-a7d9b35b1bba"},
		[]any{"c84497c2-3bcf-45e9-a4a9-db35aa4a1aa5"}))
}

// values registers a direct triple keyed by red's own type.
func values[T any](reg apis.Registry, red, black, redCopy T) {
	_ = reg.Register(apis.TypeOf(red), apis.Triple{Red: red, Black: black, RedCopy: redCopy})
}
