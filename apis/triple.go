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
	"errors"
	"reflect"

	"github.com/google/go-cmp/cmp"
)

var (
	// ErrEqualPair is returned by Triple.Validate when red and black compare
	// equal under the configured equality notion.
	ErrEqualPair = errors.New("pfx: red and black are equal")
	// ErrUnequalCopy is returned by Triple.Validate when redCopy does not
	// compare equal to red.
	ErrUnequalCopy = errors.New("pfx: redCopy does not equal red")
	// ErrSharedInstance is returned by Triple.Validate when red and redCopy
	// are the same instance.
	ErrSharedInstance = errors.New("pfx: red and redCopy share an instance")
)

// Triple is the unit of exchange between the registry and its caller: two
// content-unequal sample instances (Red, Black) and one instance equal in
// content to Red but distinct in identity (RedCopy). A Triple is never
// mutated after creation.
type Triple struct {
	// Red is the primary sample instance.
	Red any
	// Black is a sample instance unequal to Red.
	Black any
	// RedCopy equals Red in content but is a distinct instance.
	RedCopy any
}

// NewTriple is a convenience constructor for Triple literals at call sites
// that read better positionally.
func NewTriple(red, black, redCopy any) Triple {
	return Triple{Red: red, Black: black, RedCopy: redCopy}
}

// IsZero reports whether all three slots are nil.
func (t Triple) IsZero() bool {
	return t.Red == nil && t.Black == nil && t.RedCopy == nil
}

// Validate checks the triple invariants under the equality notion expressed
// by opts (go-cmp options): Red != Black, RedCopy == Red, and Red and
// RedCopy do not share an instance. The identity check is meaningful only
// for reference-shaped values (pointers, maps, slices, channels); for value
// kinds Go offers no observable identity and the check passes.
func (t Triple) Validate(opts ...cmp.Option) error {
	if cmp.Equal(t.Red, t.Black, opts...) {
		return ErrEqualPair
	}
	if !cmp.Equal(t.Red, t.RedCopy, opts...) {
		return ErrUnequalCopy
	}
	if sharedInstance(t.Red, t.RedCopy) {
		return ErrSharedInstance
	}
	return nil
}

// sharedInstance reports whether a and b are the same reference-shaped
// instance.
func sharedInstance(a, b any) bool {
	if a == nil || b == nil {
		return false
	}
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Kind() != rb.Kind() {
		return false
	}
	switch ra.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.UnsafePointer:
		return ra.Pointer() == rb.Pointer()
	case reflect.Slice:
		// Same backing array and length counts as the same instance.
		return ra.Len() == rb.Len() && ra.Len() > 0 && ra.Pointer() == rb.Pointer()
	default:
		return false
	}
}
