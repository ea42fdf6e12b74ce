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

// NewDirect creates an apis.Strategy that serves stored triples.
func NewDirect(reg apis.Registry) apis.Strategy {
	return &directStrategy{reg: reg}
}

// directStrategy is the zero-cost fast path: a triple registered for the
// exact descriptor wins and stops the chain. A triple registered for the
// bare base also serves parameterized requests, so a binding for a named
// container type (e.g. net.IP) matches its structural decomposition.
type directStrategy struct {
	reg apis.Registry
}

// Ensure directStrategy implements apis.Strategy.
var _ apis.Strategy = (*directStrategy)(nil)

// TryResolve looks up a direct triple for d, exact descriptor first, then
// the bare base.
func (s *directStrategy) TryResolve(d apis.Descriptor, _ apis.Resolver, _ *apis.Guard, _ apis.Config) (apis.Triple, bool, error) {
	if s.reg == nil {
		return apis.Triple{}, false, nil
	}
	if t, ok := s.reg.Direct(d); ok {
		return t, true, nil
	}
	if d.NumParams() > 0 {
		if t, ok := s.reg.Direct(d.Base()); ok {
			return t, true, nil
		}
	}
	return apis.Triple{}, false, nil
}
