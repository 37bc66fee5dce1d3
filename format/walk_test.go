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

package format

import (
	"reflect"
	"testing"
)

func collect(w *Walk) []Node {
	var leaves []Node
	for {
		n, ok := w.Next()
		if !ok {
			return leaves
		}
		leaves = append(leaves, n)
	}
}

func TestWalkRepeatExpansion(t *testing.T) {
	w := NewWalk(MustParse("(3(I4))"))
	leaves := collect(w)
	expected := []Node{
		Int{Width: 4, Digits: Unset},
		Int{Width: 4, Digits: Unset},
		Int{Width: 4, Digits: Unset},
	}
	if !reflect.DeepEqual(leaves, expected) {
		t.Errorf("expected %v, got %v", expected, leaves)
	}
}

func TestWalkNested(t *testing.T) {
	w := NewWalk(MustParse("(2(1X, 'ab', 2(I2)))"))
	leaves := collect(w)
	one := []Node{
		SkipChar{},
		Literal{Text: "ab"},
		Int{Width: 2, Digits: Unset},
		Int{Width: 2, Digits: Unset},
	}
	expected := append(append([]Node{}, one...), one...)
	if !reflect.DeepEqual(leaves, expected) {
		t.Errorf("expected %v, got %v", expected, leaves)
	}
}

// The walk never yields a container node, whatever the nesting.
func TestWalkLeavesOnly(t *testing.T) {
	sources := []string{
		"()",
		"(I4)",
		"(3(2(1X), 'x'), 4/, 2(L2))",
		"('1'/1X,125('*')////)",
	}
	for _, src := range sources {
		for _, n := range collect(NewWalk(MustParse(src))) {
			switch n.(type) {
			case Group, Repeat:
				t.Errorf("%s: walk yielded container %T", src, n)
			}
		}
	}
}

func TestWalkReset(t *testing.T) {
	w := NewWalk(MustParse("(I4, 1X)"))
	first := collect(w)
	if _, ok := w.Next(); ok {
		t.Fatalf("expected exhausted walk")
	}
	w.Reset()
	second := collect(w)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("restarted walk differs: %v vs %v", first, second)
	}
}

func TestWalkPeek(t *testing.T) {
	w := NewWalk(MustParse("(I4)"))
	p1, ok := w.Peek()
	if !ok {
		t.Fatalf("expected a leaf")
	}
	p2, _ := w.Peek()
	if !reflect.DeepEqual(p1, p2) {
		t.Errorf("peek consumed the leaf")
	}
	n, _ := w.Next()
	if !reflect.DeepEqual(p1, n) {
		t.Errorf("peeked %v but consumed %v", p1, n)
	}
	if _, ok := w.Next(); ok {
		t.Errorf("expected exhausted walk")
	}
}
