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

// Package fread drives a parsed format specification for input, and
// also provides the list-directed ("star") reader. Input is
// line-buffered: one record is loaded on demand and consumed in place,
// with no backward seeking.
package fread

import (
	"bufio"
	"io"
	"math"
	"reflect"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/m1el/f77-io/format"
)

// options is the sticky state mutated by non-data editings and
// consulted when data fields are parsed.
type options struct {
	terminated      bool
	suppressNewLine bool
	scale           int
	radix           int
	blank           format.BlankKind
}

// Reader is the format-directed input driver. It borrows the format
// tree and the source for its lifetime and is not reentrant.
type Reader struct {
	walk         *format.Walk
	src          *bufio.Reader
	line         string
	pos          int
	consumedData bool
	opts         options
}

// NewReader returns a reader positioned at the start of the format
// with no record loaded.
func NewReader(root format.Group, src *bufio.Reader) *Reader {
	return &Reader{
		walk: format.NewWalk(root),
		src:  src,
		opts: options{radix: 10},
	}
}

// Terminated reports whether a ':' editing stopped the statement.
func (r *Reader) Terminated() bool { return r.opts.terminated }

// givesData reports whether the leaf produces a value on input.
// RemainingChars is a data leaf here, unlike on output.
func givesData(n format.Node) bool {
	switch n.(type) {
	case format.Str, format.Bool, format.Int, format.Oct, format.Hex,
		format.Real, format.RemainingChars:
		return true
	}
	return false
}

// readLine loads the next record, discarding the current one. It
// reports false at end of stream.
func (r *Reader) readLine() (bool, error) {
	line, err := r.src.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, markIO(err)
	}
	r.line = line
	r.pos = 0
	return len(line) > 0, nil
}

// checkRest loads a new record once the current one is fully consumed,
// including its terminator.
func (r *Reader) checkRest() (bool, error) {
	if r.pos >= len(r.line) {
		return r.readLine()
	}
	return true, nil
}

// recordEnd is the index just past the last data character of the
// current record, excluding the record terminator.
func (r *Reader) recordEnd() int {
	return len(strings.TrimRight(r.line, "\r\n"))
}

// ConsumeNonData advances the walk, executing every non-data editing,
// and stops just before the next data editing. wantData tells the
// driver whether the caller still has destinations to fill.
func (r *Reader) ConsumeNonData(wantData bool) error {
	for {
		next, ok := r.walk.Peek()
		if !ok {
			if !wantData {
				if !r.opts.suppressNewLine {
					if _, err := r.readLine(); err != nil {
						return err
					}
				}
				return nil
			}
			if !r.consumedData {
				return ErrNoDataEditings
			}
			// Reversion begins a new record: the remainder of the
			// current one is discarded.
			r.walk.Reset()
			r.pos = len(r.line)
			continue
		}
		if givesData(next) {
			return nil
		}
		r.walk.Next()

		switch n := next.(type) {
		case format.Radix:
			r.opts.radix = n.Base
		case format.Scale:
			r.opts.scale = n.Factor
		case format.BlankControl:
			r.opts.blank = n.Kind
		case format.NewLine:
			ok, err := r.checkRest()
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
			r.pos = len(r.line)
		case format.SkipChar:
			ok, err := r.checkRest()
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
			r.pos++
		case format.SuppressNewLine:
			r.opts.suppressNewLine = true
		case format.Terminate:
			if !wantData {
				r.opts.terminated = true
				return nil
			}
		case format.Literal:
			return ErrUnexpectedLiteral
		case format.AbsColumn:
			// Forward skip only; a line-buffered source cannot move
			// backward.
			if target := n.Col - 1; target > r.pos {
				r.pos = target
				if r.pos > len(r.line) {
					r.pos = len(r.line)
				}
			}
		case format.RelColumn:
			if n.Offset > 0 {
				r.pos += n.Offset
				if r.pos > len(r.line) {
					r.pos = len(r.line)
				}
			}
		default:
			return errors.AssertionFailedf("unhandled non-data editing %T", next)
		}
	}
}

// ReadValue consumes the next data editing and parses its field into
// dst. It reports whether a value was actually stored: an all-blank
// field or an exhausted source reads nothing and leaves dst alone.
//
// Slice destinations recurse element-wise, re-entering ConsumeNonData
// between elements.
func (r *Reader) ReadValue(dst interface{}) (bool, error) {
	if dst == nil {
		return false, errors.AssertionFailedf("nil destination in input list")
	}
	rv := reflect.ValueOf(dst)
	if rv.Kind() == reflect.Ptr && rv.Elem().Kind() == reflect.Slice {
		rv = rv.Elem()
	}
	if rv.Kind() == reflect.Slice {
		any := false
		for i := 0; i < rv.Len(); i++ {
			if i > 0 {
				if err := r.ConsumeNonData(true); err != nil {
					return any, err
				}
			}
			got, err := r.ReadValue(rv.Index(i).Addr().Interface())
			if err != nil {
				return any, err
			}
			any = any || got
		}
		return any, nil
	}

	next, ok := r.walk.Next()
	if !ok || !givesData(next) {
		return false, ErrInvalidState
	}
	r.consumedData = true

	switch leaf := next.(type) {
	case format.RemainingChars:
		return r.readRemaining(next, dst)
	case format.Bool:
		return r.readBool(next, dst, leaf.Width)
	case format.Int:
		return r.readInt(next, dst, leaf.Width, r.opts.radix)
	case format.Oct:
		return r.readInt(next, dst, leaf.Width, 8)
	case format.Hex:
		return r.readInt(next, dst, leaf.Width, 16)
	case format.Str:
		return r.readStr(next, dst, leaf.Width)
	case format.Real:
		return r.readReal(leaf, dst)
	}
	return false, errors.AssertionFailedf("unhandled data editing %T", next)
}

// takeField consumes up to width characters of the current record,
// loading a new record only when the previous one was consumed past
// its terminator. At end of stream the field is empty.
func (r *Reader) takeField(width int) (string, error) {
	ok, err := r.checkRest()
	if err != nil || !ok {
		return "", err
	}
	end := r.recordEnd()
	if r.pos >= end {
		return "", nil
	}
	stop := r.pos + width
	if stop > end {
		stop = end
	}
	field := r.line[r.pos:stop]
	r.pos = stop
	return field, nil
}

// cleanNumeric applies the sticky blank interpretation to a numeric
// field: by default blanks are ignored; under BZ every blank is a
// zero.
func (r *Reader) cleanNumeric(field string) string {
	if r.opts.blank == format.BlankZero {
		return strings.ReplaceAll(field, " ", "0")
	}
	return strings.ReplaceAll(field, " ", "")
}

func (r *Reader) invalidDest(n format.Node, dst interface{}) error {
	if tag, ok := tagOfDest(dst); ok {
		return &InvalidEditingError{Node: n, Tag: tag}
	}
	return errors.AssertionFailedf("unsupported destination type %T", dst)
}

func (r *Reader) readRemaining(n format.Node, dst interface{}) (bool, error) {
	if _, err := r.checkRest(); err != nil {
		return false, err
	}
	remaining := r.recordEnd() - r.pos
	if remaining < 0 {
		remaining = 0
	}
	if !setIntValue(dst, int64(remaining)) {
		return false, r.invalidDest(n, dst)
	}
	return true, nil
}

func (r *Reader) readBool(n format.Node, dst interface{}, width int) (bool, error) {
	if width == format.Unset {
		width = 2
	}
	field, err := r.takeField(width)
	if err != nil {
		return false, err
	}
	s := strings.TrimSpace(field)
	s = strings.TrimPrefix(s, ".")
	if s == "" {
		return false, nil
	}
	var v bool
	switch s[0] {
	case 'T', 't':
		v = true
	case 'F', 'f':
		v = false
	default:
		return false, errors.Mark(errors.Newf("field %q", field), ErrParseBool)
	}
	if !setBool(dst, v) {
		return false, r.invalidDest(n, dst)
	}
	return true, nil
}

func (r *Reader) readInt(n format.Node, dst interface{}, width, base int) (bool, error) {
	if width == format.Unset {
		width = intWidthOf(dst)
	}
	field, err := r.takeField(width)
	if err != nil {
		return false, err
	}
	s := strings.TrimSpace(r.cleanNumeric(field))
	if s == "" {
		return false, nil
	}
	matched, err := parseInt(dst, s, base)
	if !matched {
		return false, r.invalidDest(n, dst)
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *Reader) readStr(n format.Node, dst interface{}, width int) (bool, error) {
	d, ok := dst.(*string)
	if !ok {
		return false, r.invalidDest(n, dst)
	}
	if width == format.Unset {
		// 'A' with no width takes the rest of the record.
		ok, err := r.checkRest()
		if err != nil || !ok {
			return false, err
		}
		end := r.recordEnd()
		if r.pos > end {
			return false, nil
		}
		*d = r.line[r.pos:end]
		r.pos = end
		return true, nil
	}
	field, err := r.takeField(width)
	if err != nil {
		return false, err
	}
	if field == "" {
		return false, nil
	}
	*d = field
	return true, nil
}

// parseRealField turns one formatted field into a float, honoring the
// implied decimal point (a field without '.' is divided by 10^d) and
// the sticky scale factor (applied only when the field itself carries
// no exponent).
func (r *Reader) parseRealField(field string, digits int) (float64, bool, error) {
	s := strings.TrimSpace(r.cleanNumeric(field))
	if s == "" {
		return 0, false, nil
	}
	s = strings.ReplaceAll(s, "D", "E")
	s = strings.ReplaceAll(s, "d", "e")
	v, err := parseFloat(s)
	if err != nil {
		return 0, false, err
	}
	if !strings.Contains(s, ".") && digits != format.Unset && digits > 0 {
		v /= math.Pow(10, float64(digits))
	}
	if !strings.ContainsAny(s, "eE") && r.opts.scale != 0 {
		v /= math.Pow(10, float64(r.opts.scale))
	}
	return v, true, nil
}

func (r *Reader) readReal(leaf format.Real, dst interface{}) (bool, error) {
	width := leaf.Width
	if width == format.Unset {
		switch dst.(type) {
		case *float32, *complex64:
			width = 12
		default:
			width = 23
		}
	}

	switch d := dst.(type) {
	case *complex64, *complex128:
		// A complex destination consumes two real editings, one per
		// component.
		re, got, err := r.readRealComponent(width, leaf.Digits)
		if err != nil || !got {
			return false, err
		}
		if err := r.ConsumeNonData(true); err != nil {
			return false, err
		}
		next, ok := r.walk.Next()
		if !ok {
			return false, ErrInvalidState
		}
		imLeaf, ok := next.(format.Real)
		if !ok {
			return false, r.invalidDest(next, dst)
		}
		imWidth := imLeaf.Width
		if imWidth == format.Unset {
			imWidth = width
		}
		r.consumedData = true
		im, got, err := r.readRealComponent(imWidth, imLeaf.Digits)
		if err != nil {
			return false, err
		}
		if !got {
			im = 0
		}
		if c, ok := d.(*complex64); ok {
			*c = complex(float32(re), float32(im))
		} else {
			*d.(*complex128) = complex(re, im)
		}
		return true, nil

	default:
		field, err := r.takeField(width)
		if err != nil {
			return false, err
		}
		v, got, err := r.parseRealField(field, leaf.Digits)
		if err != nil || !got {
			return false, err
		}
		if !setFloat(dst, v) {
			return false, r.invalidDest(leaf, dst)
		}
		return true, nil
	}
}

func (r *Reader) readRealComponent(width, digits int) (float64, bool, error) {
	field, err := r.takeField(width)
	if err != nil {
		return 0, false, err
	}
	return r.parseRealField(field, digits)
}
