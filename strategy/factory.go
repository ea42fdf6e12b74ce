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

package strategy

import (
	"dirpx.dev/pfx/apis"
)

// NewFactory creates an apis.Strategy that invokes registered factories.
func NewFactory(reg apis.Registry) apis.Strategy {
	return &factoryStrategy{reg: reg}
}

// factoryStrategy consults the registry's factory bindings. A factory
// registered for the bare base descriptor also serves parameterized
// requests, so one binding covers a whole container family.
type factoryStrategy struct {
	reg apis.Registry
}

// Ensure factoryStrategy implements apis.Strategy.
var _ apis.Strategy = (*factoryStrategy)(nil)

// TryResolve locates a factory for d (exact descriptor first, then the bare
// base) and invokes it with recursive access to the resolver.
func (s *factoryStrategy) TryResolve(d apis.Descriptor, res apis.Resolver, g *apis.Guard, cfg apis.Config) (apis.Triple, bool, error) {
	if s.reg == nil {
		return apis.Triple{}, false, nil
	}
	f, ok := s.reg.Factory(d)
	if !ok && d.NumParams() > 0 {
		f, ok = s.reg.Factory(d.Base())
	}
	if !ok {
		return apis.Triple{}, false, nil
	}
	t, err := f.Produce(d, res, g, cfg)
	return t, true, err
}
