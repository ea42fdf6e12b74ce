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
	"go.uber.org/zap"

	"dirpx.dev/pfx/apis"
)

// NewLazy creates an apis.Strategy serving name-keyed lazy registrations
// through the capability probe. The probe is consulted here, at first actual
// request for the type, never at registration time.
func NewLazy(reg apis.Registry, prb apis.Probe) apis.Strategy {
	return &lazyStrategy{reg: reg, prb: prb}
}

// lazyStrategy matches a descriptor's fully qualified name against the
// registry's lazy bindings. A matching binding whose provider is absent is a
// handled request that fails with AbsentTypeError; other descriptors fall
// through untouched, so absence never poisons unrelated lookups.
type lazyStrategy struct {
	reg apis.Registry
	prb apis.Probe
}

// Ensure lazyStrategy implements apis.Strategy.
var _ apis.Strategy = (*lazyStrategy)(nil)

func (s *lazyStrategy) TryResolve(d apis.Descriptor, res apis.Resolver, g *apis.Guard, cfg apis.Config) (apis.Triple, bool, error) {
	if s.reg == nil {
		return apis.Triple{}, false, nil
	}
	name := d.Name()
	if name == "" {
		return apis.Triple{}, false, nil
	}
	lf, ok := s.reg.Lazy(name)
	if !ok {
		return apis.Triple{}, false, nil
	}
	if s.prb == nil {
		return apis.Triple{}, true, &apis.AbsentTypeError{Name: name}
	}
	h, ok := s.prb.Resolve(name)
	if !ok {
		if cfg.Logger != nil {
			cfg.Logger.Debug("pfx: optional type absent", zap.String("type", name))
		}
		return apis.Triple{}, true, &apis.AbsentTypeError{Name: name}
	}
	t, err := lf.Produce(h, d, res, g, cfg)
	return t, true, err
}
