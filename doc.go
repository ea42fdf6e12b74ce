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

// Package pfx supplies sample values for equality-contract verification.
//
// For any type it can describe, pfx produces a triple of instances: "red"
// and "black", which are unequal in content, and "redCopy", which equals red
// in content but is a distinct instance. A verification engine uses these to
// mutate fields of a class under test and assert that its equality behavior
// holds under both identity and content comparison.
//
// # Design
//
// The core of pfx is a read-mostly global snapshot (state). The snapshot
// holds five things:
//
//   - Config: resolution knobs (recursion depth cap, diagnostics logger,
//     the go-cmp options expressing the target equality notion).
//
//   - Registry: the type-keyed store of sample-value bindings. A binding is
//     a direct triple, a factory (for types whose triple depends on nested
//     types), or a lazy factory keyed by an external type name for types
//     behind optional dependencies. Registrations overwrite, so callers can
//     replace bootstrap defaults before verification runs.
//
//   - Probe: the capability probe. It locates optional external types by
//     fully qualified name against a process-wide provider catalog
//     (populated by init functions of opt-in packages, in the manner of
//     database/sql drivers). Absence is an ordinary miss, never an error;
//     only a located-but-broken invocation fails.
//
//   - Resolver: answers "give me a triple for this type". It chains
//     strategies in priority order:
//     1. A direct triple stored for the descriptor (exact, then bare base).
//     2. A registered factory (exact descriptor, then bare base).
//     3. A lazy binding served through the capability probe.
//     4. The built-in container kinds: slice, array, map, pointer, channel,
//     recursing into element/key types.
//     Resolution is guarded per request: a descriptor already on the
//     resolution stack marks a cyclic generic type and yields a terminal
//     fallback triple instead of recursing, so self-referential type graphs
//     terminate.
//
//   - Builder: a pluggable factory that knows how to construct Registry,
//     Probe and Resolver instances for a given Config (and optional
//     extension data), migrating state from previous instances.
//
// All of these live inside a single immutable struct called state. The
// package holds an atomic pointer to the current state. Readers load that
// pointer, use it, and never mutate it. Writers build a brand-new state and
// atomically swap it in, so lookups are lock-free on the hot path:
//
//	triple, err := pfx.Values(myValue)
//	triple, err := pfx.ValuesForType(reflect.TypeOf(myValue))
//
// and concurrent callers always see a consistent snapshot.
//
// # Type descriptors
//
// Types are keyed by apis.Descriptor: a structural identity (a reflect.Type,
// or a fully qualified name for types that may not be linked in) plus an
// ordered list of parameter descriptors. Descriptors are built explicitly
// (apis.OfType, apis.Parameterized, apis.External) or decomposed from a
// reflect.Type. Equality is structural, so map[string]int and a registered
// binding for it meet in the same bucket regardless of how each was built.
//
// # Errors
//
// Resolution fails with exactly one of:
//
//   - apis.UnsupportedTypeError: nothing registered and no strategy applies.
//     Terminal; register a custom binding.
//   - apis.AbsentTypeError: a lazy binding exists but its provider package
//     is not linked into this binary. Confined to the affected type.
//   - apis.InstantiationError: an external type was located but invoking it
//     failed. Likely a version incompatibility; escalated.
//
// Cycle fallback is not an error. It is observable through the Config
// logger and the guard's cycle counter.
//
// # Concurrency model
//
// Reads (Values, ValuesForType, ValuesFor, Registry, Probe, Resolver) are
// wait-free snapshot loads. The registry is populated during an
// initialization phase and read-mostly afterwards; factories are stateless
// and produce fresh instances per call, so independent verification runs
// share nothing. Each resolution request owns its recursion guard. Writes
// (SetConfig, SetBuilder, SetExt, SetRegistry, SetProbe, SetResolver,
// SetAll) take a short build mutex, assemble a brand-new state, and publish
// it via an atomic pointer swap.
//
// # Pinning
//
// SetRegistry, SetProbe and SetResolver pin the layer they set: further
// SetConfig/SetBuilder/SetExt calls will not rebuild a pinned layer until
// the corresponding Unpin* call. This gives full control over one layer
// while letting the others evolve.
//
// # Usage pattern in a binary
//
//  1. Let pfx init with the default builder, config and bootstrap values.
//
//  2. Opt into optional-dependency providers:
//
//     import _ "dirpx.dev/pfx/prefab/uuidpfb"
//
//  3. Register overrides for domain types up front:
//
//     pfx.Register(apis.TypeOf(Money{}), apis.NewTriple(eur1, eur2, eur1))
//
//  4. Resolve triples during verification with pfx.Values / ValuesForType.
//
//  5. In tests, call pfx.SetAll(...) to get deterministic snapshots.
//
// # Scope
//
// pfx only produces sample values. The field-walking engine that consumes
// them, reflective construction of arbitrary user structs, and any
// command-line surface belong to higher layers.
package pfx
