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

package apis

// Builder composes Registry, Probe and Resolver from a Config.
// Implementations may migrate state from previous instances (prev*), or
// ignore them. ext is an optional extension context; its meaning is
// implementation-defined.
type Builder interface {
	// BuildRegistry constructs a Registry for cfg. May migrate entries from
	// the previous registry.
	BuildRegistry(cfg Config, prev Registry, ext any) Registry
	// BuildProbe constructs a Probe for cfg.
	BuildProbe(cfg Config, prev Probe, ext any) Probe
	// BuildResolver constructs a Resolver over reg and prb.
	BuildResolver(cfg Config, reg Registry, prb Probe, prev Resolver, ext any) Resolver
}
