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

package uuidpfb_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"dirpx.dev/pfx/apis"
	"dirpx.dev/pfx/builder"
	"dirpx.dev/pfx/config"
	"dirpx.dev/pfx/prefab"
	"dirpx.dev/pfx/prefab/uuidpfb"
	"dirpx.dev/pfx/probe"
)

// This binary imports the provider package, so both uuid types are present.
func TestProvidersRegistered(t *testing.T) {
	require.Contains(t, probe.Providers(), uuidpfb.UUIDTypeName)
	require.Contains(t, probe.Providers(), uuidpfb.NullUUIDTypeName)
}

func TestResolveUUIDThroughLazyBinding(t *testing.T) {
	cfg := config.DefaultConfig()
	b := builder.New()
	reg := b.BuildRegistry(cfg, nil, nil)
	prefab.AddTo(reg)
	res := b.BuildResolver(cfg, reg, b.BuildProbe(cfg, nil, nil), nil, nil)

	tr, err := res.Resolve(apis.External(uuidpfb.UUIDTypeName), nil, cfg)
	require.NoError(t, err)

	red, ok := tr.Red.(uuid.UUID)
	require.True(t, ok, "red has type %T", tr.Red)
	black := tr.Black.(uuid.UUID)
	redCopy := tr.RedCopy.(uuid.UUID)

	require.NotEqual(t, red, black)
	require.Equal(t, red, redCopy)
	require.Equal(t, "5adf9171-9c32-4db7-8f46-a7d9b35b1bba", red.String())
	require.Equal(t, "c84497c2-3bcf-45e9-a4a9-db35aa4a1aa5", black.String())
}

func TestResolveNullUUIDThroughLazyBinding(t *testing.T) {
	cfg := config.DefaultConfig()
	b := builder.New()
	reg := b.BuildRegistry(cfg, nil, nil)
	prefab.AddTo(reg)
	res := b.BuildResolver(cfg, reg, b.BuildProbe(cfg, nil, nil), nil, nil)

	tr, err := res.Resolve(apis.External(uuidpfb.NullUUIDTypeName), nil, cfg)
	require.NoError(t, err)

	red := tr.Red.(uuid.NullUUID)
	black := tr.Black.(uuid.NullUUID)
	require.True(t, red.Valid)
	require.True(t, black.Valid)
	require.NotEqual(t, red.UUID, black.UUID)
}

func TestUUIDConstants(t *testing.T) {
	h, ok := probe.New().Resolve(uuidpfb.UUIDTypeName)
	require.True(t, ok)

	nilV, ok := h.Constant("Nil")
	require.True(t, ok)
	require.Equal(t, uuid.Nil, nilV)

	maxV, ok := h.Constant("Max")
	require.True(t, ok)
	require.Equal(t, uuid.Max, maxV)
}

func TestUUIDFactoryMethods(t *testing.T) {
	h, ok := probe.New().Resolve(uuidpfb.UUIDTypeName)
	require.True(t, ok)

	v, err := h.Call("Parse", "5adf9171-9c32-4db7-8f46-a7d9b35b1bba")
	require.NoError(t, err)
	require.Equal(t, uuid.MustParse("5adf9171-9c32-4db7-8f46-a7d9b35b1bba"), v)

	_, err = h.Call("Parse", "not a uuid")
	var ie *apis.InstantiationError
	require.ErrorAs(t, err, &ie)

	v, err = h.New()
	require.NoError(t, err)
	require.IsType(t, uuid.UUID{}, v)
}
