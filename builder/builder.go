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

package builder

import (
	"dirpx.dev/pfx/apis"
	"dirpx.dev/pfx/probe"
	"dirpx.dev/pfx/registry"
	"dirpx.dev/pfx/resolver"
	"dirpx.dev/pfx/strategy"
)

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder struct{}

// BuildRegistry builds and returns a new apis.Registry based on the provided
// configuration and pre-existing registry. If a pre-existing registry is
// provided, its bindings are carried over into the new registry.
func (b *builder) BuildRegistry(cfg apis.Config, prev apis.Registry, _ any) apis.Registry {
	nreg := registry.New(cfg)
	if prev != nil {
		for _, e := range prev.Entries() {
			switch e.Kind {
			case apis.EntryDirect:
				_ = nreg.Register(e.Desc, e.Triple)
			case apis.EntryFactory:
				_ = nreg.RegisterFactory(e.Desc, e.Factory)
			case apis.EntryLazy:
				_ = nreg.RegisterLazy(e.Name, e.Lazy)
			}
		}
	}
	return nreg
}

// BuildProbe returns the catalog-backed capability probe. The probe is a
// stateless view over the process-wide provider catalog, so there is no
// state to migrate.
func (b *builder) BuildProbe(_ apis.Config, _ apis.Probe, _ any) apis.Probe {
	return probe.New()
}

// BuildResolver builds and returns a new apis.Resolver over the provided
// registry and probe: direct triples first, then registered factories, then
// lazy probe-backed bindings, then the built-in container kinds. Lazy
// bindings are explicit per-type choices and take precedence over
// structural synthesis, so an absent optional dependency surfaces as
// absence instead of being papered over by the kind strategy.
func (b *builder) BuildResolver(_ apis.Config, reg apis.Registry, prb apis.Probe, _ apis.Resolver, _ any) apis.Resolver {
	return resolver.New(
		reg,
		strategy.NewDirect(reg),
		strategy.NewFactory(reg),
		strategy.NewLazy(reg, prb),
		strategy.NewKind(),
	)
}
