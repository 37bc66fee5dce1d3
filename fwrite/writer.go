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

// Package fwrite drives a parsed format specification for output. The
// writer interleaves two operations: EmitNonData executes every
// non-data editing up to the next data slot, and EmitValue renders one
// externally supplied value into that slot. When the walk runs out of
// leaves while values remain, it restarts from the outermost group
// (reversion).
package fwrite

import (
	"io"
	"reflect"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/m1el/f77-io/format"
	"github.com/m1el/f77-io/ftypes"
)

// options is the sticky state mutated by non-data editings and
// consulted by the renderers.
type options struct {
	terminated      bool
	suppressNewLine bool
	scale           int
	radix           int
}

// Writer drives one output statement. It borrows the format tree for
// its lifetime and is not reentrant; concurrent statements need
// distinct writers.
type Writer struct {
	walk         *format.Walk
	opts         options
	consumedData bool
	touched      bool
	col          int
}

// NewWriter returns a writer positioned at the start of the format.
func NewWriter(root format.Group) *Writer {
	return &Writer{
		walk: format.NewWalk(root),
		opts: options{radix: 10},
	}
}

// Terminated reports whether a ':' editing stopped the statement.
func (w *Writer) Terminated() bool { return w.opts.terminated }

// requiresData reports whether the leaf consumes a value on output.
func requiresData(n format.Node) (bool, error) {
	switch n.(type) {
	case format.Str, format.Bool, format.Int, format.Oct, format.Hex, format.Real:
		return true, nil
	case format.RemainingChars:
		return false, ErrUnexpectedQInWrite
	case format.Group, format.Repeat:
		return false, errors.AssertionFailedf("container node %T escaped the walk", n)
	}
	return false, nil
}

func (w *Writer) emit(dst io.Writer, s string) error {
	if _, err := io.WriteString(dst, s); err != nil {
		return markIO(err)
	}
	w.col += len(s)
	return nil
}

func (w *Writer) newRecord(dst io.Writer) error {
	if _, err := io.WriteString(dst, "\n"); err != nil {
		return markIO(err)
	}
	w.col = 0
	return nil
}

// EmitNonData advances the walk, executing every non-data editing, and
// stops just before the next data editing. moreValues tells the driver
// whether the caller still has values to place: it decides both the
// ':' editing and the end-of-walk policy (reversion versus the final
// record terminator).
func (w *Writer) EmitNonData(dst io.Writer, moreValues bool) error {
	for {
		next, ok := w.walk.Peek()
		if !ok {
			if !moreValues {
				if !w.touched && !w.consumedData {
					return nil
				}
				if w.opts.suppressNewLine {
					return nil
				}
				return w.newRecord(dst)
			}
			if !w.consumedData {
				return ErrDataWithoutFormat
			}
			w.walk.Reset()
			continue
		}

		isData, err := requiresData(next)
		if err != nil {
			return err
		}
		if isData {
			return nil
		}
		w.walk.Next()
		w.touched = true

		switch n := next.(type) {
		case format.Radix:
			w.opts.radix = n.Base
		case format.Scale:
			w.opts.scale = n.Factor
		case format.BlankControl:
			// Blank interpretation only affects input.
		case format.Literal:
			if err := w.emit(dst, n.Text); err != nil {
				return err
			}
		case format.NewLine:
			if err := w.newRecord(dst); err != nil {
				return err
			}
		case format.SkipChar:
			if err := w.emit(dst, " "); err != nil {
				return err
			}
		case format.SuppressNewLine:
			w.opts.suppressNewLine = true
		case format.Terminate:
			if !moreValues {
				w.opts.terminated = true
				return nil
			}
		case format.AbsColumn:
			// Column control is whitespace emission, best effort: no
			// backward movement on a byte sink.
			if pad := n.Col - 1 - w.col; pad > 0 {
				if err := w.emit(dst, strings.Repeat(" ", pad)); err != nil {
					return err
				}
			}
		case format.RelColumn:
			if n.Offset > 0 {
				if err := w.emit(dst, strings.Repeat(" ", n.Offset)); err != nil {
					return err
				}
			}
		default:
			return errors.AssertionFailedf("unhandled non-data editing %T", next)
		}
	}
}

// EmitValue consumes the next data editing and renders val into it.
// Sequence values recurse element-wise, re-entering EmitNonData
// between elements so that separators, record breaks and reversion are
// observed.
func (w *Writer) EmitValue(dst io.Writer, val interface{}) error {
	if val == nil {
		return errors.AssertionFailedf("nil value in output list")
	}
	if rv := reflect.ValueOf(val); rv.Kind() == reflect.Slice {
		for i := 0; i < rv.Len(); i++ {
			if i > 0 {
				if err := w.EmitNonData(dst, true); err != nil {
					return err
				}
			}
			if err := w.EmitValue(dst, rv.Index(i).Interface()); err != nil {
				return err
			}
		}
		return nil
	}

	next, ok := w.walk.Next()
	if !ok {
		return ErrInvalidState
	}
	isData, err := requiresData(next)
	if err != nil {
		return err
	}
	if !isData {
		return ErrInvalidState
	}
	w.consumedData = true
	w.touched = true

	field, err := w.renderLeaf(next, val)
	if err != nil {
		return err
	}
	return w.emit(dst, field)
}

func (w *Writer) renderLeaf(n format.Node, val interface{}) (string, error) {
	tag, ok := ftypes.TagOf(val)
	if !ok {
		return "", errors.AssertionFailedf("unsupported value type %T", val)
	}
	invalid := func() (string, error) {
		return "", &InvalidEditingError{Node: n, Tag: tag}
	}

	switch leaf := n.(type) {
	case format.Bool:
		b, ok := boolValue(val)
		if !ok {
			return invalid()
		}
		return boolField(b, leaf.Width), nil

	case format.Int:
		return w.integerLeaf(n, val, tag, leaf.Width, leaf.Digits, w.opts.radix)
	case format.Oct:
		return w.integerLeaf(n, val, tag, leaf.Width, leaf.Digits, 8)
	case format.Hex:
		return w.integerLeaf(n, val, tag, leaf.Width, leaf.Digits, 16)

	case format.Real:
		return w.floatLeaf(leaf, val, tag)

	case format.Str:
		s, ok := val.(string)
		if !ok {
			return invalid()
		}
		return strField(s, leaf.Width), nil
	}
	return invalid()
}

func boolValue(val interface{}) (bool, bool) {
	switch v := val.(type) {
	case bool:
		return v, true
	case ftypes.Logical2:
		return bool(v), true
	case ftypes.Logical4:
		return bool(v), true
	case ftypes.Logical8:
		return bool(v), true
	}
	return false, false
}

// splitInt classifies an integer value into sign, magnitude and its
// type-default field width.
func splitInt(val interface{}) (neg bool, mag uint64, defWidth int, ok bool) {
	var i int64
	switch v := val.(type) {
	case int8:
		i, defWidth = int64(v), 5
	case int16:
		i, defWidth = int64(v), 7
	case int32:
		i, defWidth = int64(v), 12
	case int64:
		i, defWidth = v, 23
	case int:
		i, defWidth = int64(v), 23
	case uint8:
		return false, uint64(v), 5, true
	case uint16:
		return false, uint64(v), 7, true
	case uint32:
		return false, uint64(v), 12, true
	case uint64:
		return false, v, 23, true
	case uint:
		return false, uint64(v), 23, true
	default:
		return false, 0, 0, false
	}
	if i < 0 {
		// Negate in uint64 space so MinInt64 survives.
		return true, -uint64(i), defWidth, true
	}
	return false, uint64(i), defWidth, true
}

func (w *Writer) integerLeaf(
	n format.Node, val interface{}, tag ftypes.Tag, width, minDigits, base int,
) (string, error) {
	neg, mag, defWidth, ok := splitInt(val)
	if !ok {
		return "", &InvalidEditingError{Node: n, Tag: tag}
	}
	if width == format.Unset {
		width = defWidth
	}
	return intField(neg, mag, base, width, minDigits), nil
}

func (w *Writer) floatLeaf(leaf format.Real, val interface{}, tag ftypes.Tag) (string, error) {
	one := func(v float64, bits, defWidth int) string {
		width := leaf.Width
		if width == format.Unset {
			width = defWidth
		}
		return realField(v, leaf.Kind, width, leaf.Digits, leaf.ExpDigits, w.opts.scale, bits)
	}
	switch v := val.(type) {
	case float32:
		return one(float64(v), 32, 12), nil
	case float64:
		return one(v, 64, 23), nil
	case complex64:
		return " (" + one(float64(real(v)), 32, 12) + "," + one(float64(imag(v)), 32, 12) + ")", nil
	case complex128:
		return " (" + one(real(v), 64, 23) + "," + one(imag(v), 64, 23) + ")", nil
	}
	return "", &InvalidEditingError{Node: leaf, Tag: tag}
}
