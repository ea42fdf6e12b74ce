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

// Guard is the per-request recursion guard: an ordered set of descriptors
// currently on the resolution stack. It starts empty for each top-level
// request, grows as nested factories resolve element/key types, shrinks on
// the way back up, and is discarded afterwards. It is not safe for
// concurrent use; each resolution request owns its Guard.
type Guard struct {
	stack  []string
	member map[string]int
	cycles int
}

// NewGuard returns an empty Guard.
func NewGuard() *Guard {
	return &Guard{member: make(map[string]int)}
}

// Push adds d to the stack. It returns false, without pushing, when d is
// already on the stack; that is a detected cycle and is counted.
func (g *Guard) Push(d Descriptor) bool {
	k := d.Key()
	if g.member[k] > 0 {
		g.cycles++
		return false
	}
	g.stack = append(g.stack, k)
	g.member[k]++
	return true
}

// Pop removes the most recent occurrence of d from the stack. Pops of
// descriptors that were never pushed are ignored.
func (g *Guard) Pop(d Descriptor) {
	k := d.Key()
	if g.member[k] == 0 {
		return
	}
	for i := len(g.stack) - 1; i >= 0; i-- {
		if g.stack[i] == k {
			g.stack = append(g.stack[:i], g.stack[i+1:]...)
			break
		}
	}
	if g.member[k]--; g.member[k] == 0 {
		delete(g.member, k)
	}
}

// Contains reports whether d is currently on the stack.
func (g *Guard) Contains(d Descriptor) bool {
	return g.member[d.Key()] > 0
}

// Depth returns the current stack depth.
func (g *Guard) Depth() int {
	return len(g.stack)
}

// Cycles returns how many pushes were rejected as cycles over the lifetime
// of this guard. Diagnostic only.
func (g *Guard) Cycles() int {
	return g.cycles
}
