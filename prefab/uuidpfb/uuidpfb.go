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

// Package uuidpfb makes github.com/google/uuid types resolvable through the
// capability probe. Import it for side effects:
//
//	import _ "dirpx.dev/pfx/prefab/uuidpfb"
//
// Binaries that do not import it simply see those types as absent.
package uuidpfb

import (
	"reflect"

	"github.com/google/uuid"

	"dirpx.dev/pfx/probe"
)

// Type names the providers are published under. They mirror the lazy
// bindings in package prefab.
const (
	UUIDTypeName     = "github.com/google/uuid.UUID"
	NullUUIDTypeName = "github.com/google/uuid.NullUUID"
)

func init() {
	_ = probe.RegisterProvider(UUIDTypeName, probe.Provider{
		Type: reflect.TypeOf(uuid.UUID{}),
		New:  uuid.NewRandom,
		Methods: map[string]any{
			"Parse":     uuid.Parse,
			"FromBytes": uuid.FromBytes,
			"MustParse": uuid.MustParse,
			"NewSHA1":   uuid.NewSHA1,
			"NewRandom": uuid.NewRandom,
		},
		Constants: map[string]any{
			"Nil": uuid.Nil,
			"Max": uuid.Max,
		},
	})

	_ = probe.RegisterProvider(NullUUIDTypeName, probe.Provider{
		Type: reflect.TypeOf(uuid.NullUUID{}),
		New: func(s string) (uuid.NullUUID, error) {
			u, err := uuid.Parse(s)
			if err != nil {
				return uuid.NullUUID{}, err
			}
			return uuid.NullUUID{UUID: u, Valid: true}, nil
		},
	})
}
