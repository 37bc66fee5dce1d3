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

// Package f77io reads and writes values under FORTRAN-77 format
// editing.
//
// A format specification is a parenthesized mini-language describing
// literal text, spacing, record breaks and typed data slots:
//
//	err := f77io.Write(os.Stdout, "('x =', 1X, I8.3, F8.3)", 42, 123.456)
//
// The four entry points mirror the FORTRAN formatted and list-directed
// statements:
//
//   - Write applies a format to a value list.
//   - WriteDefault renders each value at its type-default width
//     ("WRITE (*, *)").
//   - Read parses fields under a format into pointer destinations.
//   - ReadDefault parses whitespace/comma-separated fields
//     ("READ (*, *)").
//
// When a format has fewer data slots than the statement has values,
// evaluation re-enters the outermost group and continues (reversion).
// A malformed format string is a programming error and panics; all
// runtime failures are returned as errors from the fwrite and fread
// taxonomies.
//
// This package is the call-site surface; the machinery lives in the
// subpackages: format (AST, parser, evaluation walk), fwrite (output
// driver and renderers), fread (input drivers), ftypes (value
// taxonomy).
package f77io

import (
	"bufio"
	"io"

	"github.com/m1el/f77-io/format"
	"github.com/m1el/f77-io/fread"
	"github.com/m1el/f77-io/fwrite"
)

// Write applies the format specification to vals and emits the result
// to dst. It panics if fmtstr does not parse.
func Write(dst io.Writer, fmtstr string, vals ...interface{}) error {
	w := fwrite.NewWriter(format.MustParse(fmtstr))
	for _, v := range vals {
		if err := w.EmitNonData(dst, true); err != nil {
			return err
		}
		if err := w.EmitValue(dst, v); err != nil {
			return err
		}
	}
	return w.EmitNonData(dst, false)
}

// WriteDefault emits vals under list-directed ("star") editing: each
// value at its type-default width, one record terminator at the end.
func WriteDefault(dst io.Writer, vals ...interface{}) error {
	return fwrite.WriteDefault(dst, vals...)
}

// Read applies the format specification to src and parses fields into
// the pointer destinations. It panics if fmtstr does not parse.
func Read(src io.Reader, fmtstr string, dsts ...interface{}) error {
	r := fread.NewReader(format.MustParse(fmtstr), buffered(src))
	for _, d := range dsts {
		if err := r.ConsumeNonData(true); err != nil {
			return err
		}
		if _, err := r.ReadValue(d); err != nil {
			return err
		}
	}
	return r.ConsumeNonData(false)
}

// ReadDefault parses whitespace- or comma-separated fields from src
// into the pointer destinations. An empty field, or an exhausted
// source, leaves its destination unchanged.
func ReadDefault(src io.Reader, dsts ...interface{}) error {
	r := fread.NewDefaultReader(buffered(src))
	for _, d := range dsts {
		if _, err := r.ReadValue(d); err != nil {
			return err
		}
	}
	return nil
}

func buffered(src io.Reader) *bufio.Reader {
	if br, ok := src.(*bufio.Reader); ok {
		return br
	}
	return bufio.NewReader(src)
}

// Parse parses a format specification. Most callers use Write/Read
// directly; Parse is for callers that want to reuse a parsed format or
// inspect parse errors.
func Parse(src string) (format.Group, error) { return format.Parse(src) }

// MustParse is like Parse but panics on a malformed specification.
func MustParse(src string) format.Group { return format.MustParse(src) }

// ParseError is the error type returned by Parse.
type ParseError = format.ParseError

// Commonly tested error sentinels, re-exported from the driver
// packages.
var (
	ErrDataWithoutFormat  = fwrite.ErrDataWithoutFormat
	ErrUnexpectedQInWrite = fwrite.ErrUnexpectedQInWrite
	ErrUnexpectedLiteral  = fread.ErrUnexpectedLiteral
	ErrNoDataEditings     = fread.ErrNoDataEditings
)
