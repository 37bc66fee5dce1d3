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

package fread

import (
	"bufio"
	"io"
	"reflect"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/m1el/f77-io/ftypes"
)

// DefaultReader is the list-directed ("star") input driver. Fields are
// separated by runs of whitespace or a single comma; record boundaries
// are transparent between fields. Two consecutive commas denote an
// empty field, which reads no value.
type DefaultReader struct {
	src  *bufio.Reader
	line string
	pos  int
}

// NewDefaultReader returns a list-directed reader with no record
// loaded.
func NewDefaultReader(src *bufio.Reader) *DefaultReader {
	return &DefaultReader{src: src}
}

func (r *DefaultReader) readLine() (bool, error) {
	line, err := r.src.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, markIO(err)
	}
	r.line = line
	r.pos = 0
	return len(line) > 0, nil
}

func isFieldSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\v', '\f', '\r', '\n':
		return true
	}
	return false
}

func isEOL(c byte) bool { return c == '\r' || c == '\n' }

// readNextField returns the next separated field, spanning records as
// needed. At end of stream the field is empty. The returned field may
// carry leading whitespace; the per-type parsers strip it.
func (r *DefaultReader) readNextField() (string, error) {
	for {
		if r.pos >= len(r.line) || isEOL(r.line[r.pos]) {
			ok, err := r.readLine()
			if err != nil {
				return "", err
			}
			if !ok {
				return "", nil
			}
			continue
		}
		// Skip the leading whitespace of the field, then look for the
		// terminating whitespace or comma. The record terminator is
		// itself whitespace, so a field at end of record terminates
		// there.
		i := r.pos
		for i < len(r.line) && isFieldSpace(r.line[i]) {
			i++
		}
		j := i
		for j < len(r.line) && !isFieldSpace(r.line[j]) && r.line[j] != ',' {
			j++
		}
		if j < len(r.line) {
			field := r.line[r.pos:j]
			r.pos = j
			if r.line[j] == ',' {
				r.pos++
			}
			return field, nil
		}
		field := r.line[r.pos:]
		r.pos = len(r.line)
		return field, nil
	}
}

// readRestOfLine returns the remainder of the current record excluding
// its terminator, loading a record first if none is pending, and
// advances past the record. The second result is false at end of
// stream.
func (r *DefaultReader) readRestOfLine() (string, bool, error) {
	end := len(strings.TrimRight(r.line, "\r\n"))
	if r.pos >= end {
		// Only the record terminator (or nothing) is left; the string
		// starts on the next record.
		ok, err := r.readLine()
		if err != nil {
			return "", false, err
		}
		if !ok {
			return "", false, nil
		}
		end = len(strings.TrimRight(r.line, "\r\n"))
	}
	rest := r.line[r.pos:end]
	r.pos = len(r.line)
	return rest, true, nil
}

// ReadValue parses the next field into dst under default editing. It
// reports whether a value was stored; an empty field or an exhausted
// source leaves dst alone.
func (r *DefaultReader) ReadValue(dst interface{}) (bool, error) {
	if dst == nil {
		return false, errors.AssertionFailedf("nil destination in input list")
	}
	switch d := dst.(type) {
	case *bool, *ftypes.Logical2, *ftypes.Logical4, *ftypes.Logical8:
		return r.readBool(dst)
	case *int8, *int16, *int32, *int64, *int,
		*uint8, *uint16, *uint32, *uint64, *uint:
		return r.readInt(dst)
	case *float32, *float64:
		return r.readFloat(dst)
	case *string:
		rest, ok, err := r.readRestOfLine()
		if err != nil || !ok {
			return false, err
		}
		*d = rest
		return true, nil
	}

	rv := reflect.ValueOf(dst)
	if rv.Kind() == reflect.Ptr && rv.Elem().Kind() == reflect.Slice {
		rv = rv.Elem()
	}
	if rv.Kind() == reflect.Slice {
		any := false
		for i := 0; i < rv.Len(); i++ {
			got, err := r.ReadValue(rv.Index(i).Addr().Interface())
			if err != nil {
				return any, err
			}
			any = any || got
		}
		return any, nil
	}
	return false, errors.AssertionFailedf("unsupported destination type %T", dst)
}

func (r *DefaultReader) readBool(dst interface{}) (bool, error) {
	field, err := r.readNextField()
	if err != nil {
		return false, err
	}
	s := strings.TrimSpace(field)
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
	setBool(dst, v)
	return true, nil
}

func (r *DefaultReader) readInt(dst interface{}) (bool, error) {
	field, err := r.readNextField()
	if err != nil {
		return false, err
	}
	s := stripSpace(field)
	if s == "" {
		return false, nil
	}
	if _, err := parseInt(dst, s, 10); err != nil {
		return false, err
	}
	return true, nil
}

func (r *DefaultReader) readFloat(dst interface{}) (bool, error) {
	field, err := r.readNextField()
	if err != nil {
		return false, err
	}
	s := stripSpace(field)
	if s == "" {
		return false, nil
	}
	s = strings.ReplaceAll(s, "D", "E")
	s = strings.ReplaceAll(s, "d", "e")
	v, err := parseFloat(s)
	if err != nil {
		return false, err
	}
	setFloat(dst, v)
	return true, nil
}

func stripSpace(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if !isFieldSpace(s[i]) {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
