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

package registry_test

import (
	"reflect"
	"runtime"
	"sync"
	"testing"

	"go.uber.org/goleak"

	"dirpx.dev/pfx/apis"
	"dirpx.dev/pfx/config"
	"dirpx.dev/pfx/registry"
)

// A few named types to avoid anonymous/unnamed pitfalls.
type T0 struct{}
type T1 struct{}
type T2 struct{}
type T3 struct{}
type T4 struct{}
type T5 struct{}
type T6 struct{}
type T7 struct{}
type T8 struct{}
type T9 struct{}

// TestConcurrentRegisterAndLookup verifies that Register/Direct/Entries/Count
// are race-free and consistent under concurrent use.
func TestConcurrentRegisterAndLookup(t *testing.T) {
	defer goleak.VerifyNone(t)

	cfg := config.DefaultConfig()
	reg := registry.New(cfg)

	descs := []apis.Descriptor{
		apis.OfType(reflect.TypeOf(T0{})), apis.OfType(reflect.TypeOf(T1{})),
		apis.OfType(reflect.TypeOf(T2{})), apis.OfType(reflect.TypeOf(T3{})),
		apis.OfType(reflect.TypeOf(T4{})), apis.OfType(reflect.TypeOf(T5{})),
		apis.OfType(reflect.TypeOf(T6{})), apis.OfType(reflect.TypeOf(T7{})),
		apis.OfType(reflect.TypeOf(T8{})), apis.OfType(reflect.TypeOf(T9{})),
	}
	triples := make([]apis.Triple, len(descs))
	for i := range triples {
		triples[i] = apis.NewTriple(i*10+1, i*10+2, i*10+1)
	}

	// Register once (sequential) to establish baseline.
	for i, d := range descs {
		if err := reg.Register(d, triples[i]); err != nil {
			t.Fatalf("register %s: %v", d, err)
		}
	}

	// Hammer with concurrent lookups and idempotent re-registrations.
	wg := sync.WaitGroup{}
	workers := runtime.GOMAXPROCS(0) * 4

	// Readers
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < 5000; i++ {
				d := descs[i%len(descs)]
				if got, ok := reg.Direct(d); !ok || got.IsZero() {
					t.Errorf("direct lookup failed for %s: ok=%v got=%v", d, ok, got)
					return
				}
				_ = reg.Count()
				_ = reg.Entries()
			}
		}()
	}

	// Writers (idempotent re-register of the same triples)
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				j := (i + id) % len(descs)
				_ = reg.Register(descs[j], triples[j]) // must be safe
			}
		}(w)
	}

	wg.Wait()

	// Final consistency checks.
	if reg.Count() != len(descs) {
		t.Fatalf("count mismatch: got %d want %d", reg.Count(), len(descs))
	}
	got := map[string]apis.Triple{}
	for _, e := range reg.Entries() {
		got[e.Desc.Key()] = e.Triple
	}
	for i, d := range descs {
		if got[d.Key()].Red != triples[i].Red {
			t.Fatalf("entry mismatch for %s: got %v want %v", d, got[d.Key()], triples[i])
		}
	}
}

// TestResetSnapshot ensures Reset is safe and Entries returns a stable snapshot.
func TestResetSnapshot(t *testing.T) {
	reg := registry.New(config.DefaultConfig())

	_ = reg.Register(apis.OfType(reflect.TypeOf(T0{})), apis.NewTriple(1, 2, 1))
	_ = reg.Register(apis.OfType(reflect.TypeOf(T1{})), apis.NewTriple(3, 4, 3))

	snap := reg.Entries() // snapshot copy expected
	reg.Reset()

	// After Reset, Count() should be 0, but previous snapshot must still be usable.
	if reg.Count() != 0 {
		t.Fatalf("count after reset: got %d want 0", reg.Count())
	}
	if len(snap) != 2 {
		t.Fatalf("snapshot length changed unexpectedly: %d", len(snap))
	}
	// sanity
	if snap[0].Triple.IsZero() || snap[1].Triple.IsZero() {
		t.Fatalf("snapshot contents invalid after reset")
	}
}

// This ensures the interface is satisfied; not a test but a compile-time check.
var _ apis.Registry = registry.New(config.DefaultConfig())
