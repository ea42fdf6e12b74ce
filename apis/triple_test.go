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

package apis_test

import (
	"testing"

	"dirpx.dev/pfx/apis"
)

func TestTriple_ValidateOK(t *testing.T) {
	red := []int{1}
	tr := apis.NewTriple(red, []int{2}, []int{1})
	if err := tr.Validate(); err != nil {
		t.Fatalf("Validate: unexpected error: %v", err)
	}
}

func TestTriple_ValidateEqualPair(t *testing.T) {
	tr := apis.NewTriple(1, 1, 1)
	if err := tr.Validate(); err != apis.ErrEqualPair {
		t.Fatalf("Validate = %v, want ErrEqualPair", err)
	}
}

func TestTriple_ValidateUnequalCopy(t *testing.T) {
	tr := apis.NewTriple(1, 2, 3)
	if err := tr.Validate(); err != apis.ErrUnequalCopy {
		t.Fatalf("Validate = %v, want ErrUnequalCopy", err)
	}
}

func TestTriple_ValidateSharedInstance(t *testing.T) {
	red := &struct{ N int }{1}
	black := &struct{ N int }{2}
	// redCopy is literally red: same pointer, so no independent identity.
	tr := apis.NewTriple(red, black, red)
	if err := tr.Validate(); err != apis.ErrSharedInstance {
		t.Fatalf("Validate = %v, want ErrSharedInstance", err)
	}

	copyOf := &struct{ N int }{1}
	if err := apis.NewTriple(red, black, copyOf).Validate(); err != nil {
		t.Fatalf("Validate with fresh copy: unexpected error: %v", err)
	}
}

func TestTriple_ValueKindsHaveNoIdentity(t *testing.T) {
	// For scalar kinds the identity check cannot apply; equal content passes.
	if err := apis.NewTriple("one", "two", "one").Validate(); err != nil {
		t.Fatalf("Validate(strings): unexpected error: %v", err)
	}
}

func TestTriple_IsZero(t *testing.T) {
	if !(apis.Triple{}).IsZero() {
		t.Fatalf("empty Triple should be zero")
	}
	if apis.NewTriple(1, 2, 1).IsZero() {
		t.Fatalf("populated Triple should not be zero")
	}
}
