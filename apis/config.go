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

import (
	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
)

// Config carries read-only resolution knobs. It is passed by value and
// should be treated as immutable by implementations.
type Config struct {
	// MaxDepth caps the resolution stack depth. Requests beyond the cap are
	// redirected to the cycle fallback, like a detected cycle. Acts as a
	// safety guard against pathological type nesting.
	MaxDepth int

	// Logger receives diagnostics (cycle fallbacks, probe misses). A nil
	// logger disables diagnostics.
	Logger *zap.Logger

	// CmpOptions expresses the target equality notion used when validating
	// triples. Passed through to go-cmp.
	CmpOptions []cmp.Option
}
