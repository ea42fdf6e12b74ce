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

// Factory produces a triple for a descriptor, with access back to the
// resolver for recursive element/key lookups. Factories should be stateless:
// fresh instances per call, no caching, so no state leaks between
// independent verification runs.
type Factory interface {
	Produce(d Descriptor, res Resolver, g *Guard, cfg Config) (Triple, error)
}

// FactoryFunc adapts a function to the Factory interface.
type FactoryFunc func(d Descriptor, res Resolver, g *Guard, cfg Config) (Triple, error)

// Produce implements Factory.
func (f FactoryFunc) Produce(d Descriptor, res Resolver, g *Guard, cfg Config) (Triple, error) {
	return f(d, res, g, cfg)
}

// LazyFactory produces a triple for an external type whose presence is only
// established at resolution time. The probe handle h is guaranteed non-nil:
// absence is filtered out before the factory runs.
type LazyFactory interface {
	Produce(h Handle, d Descriptor, res Resolver, g *Guard, cfg Config) (Triple, error)
}

// LazyFactoryFunc adapts a function to the LazyFactory interface.
type LazyFactoryFunc func(h Handle, d Descriptor, res Resolver, g *Guard, cfg Config) (Triple, error)

// Produce implements LazyFactory.
func (f LazyFactoryFunc) Produce(h Handle, d Descriptor, res Resolver, g *Guard, cfg Config) (Triple, error) {
	return f(h, d, res, g, cfg)
}
