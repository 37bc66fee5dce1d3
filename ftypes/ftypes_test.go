// Copyright 2023 The Cockroach Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License.

package ftypes

import "testing"

func TestTagOf(t *testing.T) {
	testCases := []struct {
		val interface{}
		tag Tag
	}{
		{true, Bool},
		{Logical2(true), Bool2},
		{Logical4(false), Bool4},
		{Logical8(true), Bool8},
		{int8(-1), Byte},
		{uint8(1), Ubyte},
		{int16(-1), Int2},
		{int32(-1), Int4},
		{int64(-1), Int8},
		{int(-1), Int8},
		{uint16(1), Uint2},
		{uint32(1), Uint4},
		{uint64(1), Uint8},
		{uint(1), Uint8},
		{float32(1.5), Real4},
		{float64(1.5), Real8},
		{"x", Str},
		{complex64(complex(1, 2)), Complex4},
		{complex(1.0, 2.0), Complex8},
	}
	for _, tc := range testCases {
		tag, ok := TagOf(tc.val)
		if !ok {
			t.Errorf("%T: expected a tag", tc.val)
			continue
		}
		if tag != tc.tag {
			t.Errorf("%T: expected %s, got %s", tc.val, tc.tag, tag)
		}
	}
}

func TestTagOfUnsupported(t *testing.T) {
	if _, ok := TagOf(struct{}{}); ok {
		t.Errorf("expected no tag for a struct")
	}
	if _, ok := TagOf(nil); ok {
		t.Errorf("expected no tag for nil")
	}
}
