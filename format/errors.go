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
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
)

// ParseErrKind enumerates the ways a format specification can be
// rejected.
type ParseErrKind int

const (
	// UnexpectedEOF is reported when the input ends inside a group or a
	// quoted literal.
	UnexpectedEOF ParseErrKind = iota
	// ExpectedNumber is reported when a mandatory digit sequence is
	// missing.
	ExpectedNumber
	// ExpectedNonZero is reported for a zero field width, exponent
	// width or repeat count.
	ExpectedNonZero
	// ExpectedParen is reported when the leading '(' is missing.
	ExpectedParen
	// ExpectedComma is reported when two items are not separated.
	ExpectedComma
	// ExpectedScaleControl is reported when a signed number is not
	// followed by 'P'.
	ExpectedScaleControl
	// NumberTooBig is reported when a digit sequence overflows the
	// implementation's integer width.
	NumberTooBig
	// RepeatingDollar is reported for a repeat count on '$'.
	RepeatingDollar
	// RepeatingColon is reported for a repeat count on ':'.
	RepeatingColon
	// RepeatingStr is reported for a repeat count on a quoted literal.
	RepeatingStr
	// RepeatingBlankControl is reported for a repeat count on B/BN/BZ.
	RepeatingBlankControl
	// RepeatingTab is reported for a repeat count on T/TL/TR.
	RepeatingTab
	// RepeatingQ is reported for a repeat count on 'Q'.
	RepeatingQ
	// ExtraComma is reported for doubled commas and for a trailing
	// comma before ')'.
	ExtraComma
	// MissingScale is reported for a 'P' with no leading number.
	MissingScale
	// UnexpectedChar is reported for a character with no meaning at the
	// current position.
	UnexpectedChar
	// MissingRadix is reported for an 'R' with no leading number.
	MissingRadix
	// RadixOutOfRange is reported for a radix outside [2, 36].
	RadixOutOfRange
)

func (k ParseErrKind) String() string {
	switch k {
	case UnexpectedEOF:
		return "unexpected end of format"
	case ExpectedNumber:
		return "expected a number"
	case ExpectedNonZero:
		return "expected a nonzero number"
	case ExpectedParen:
		return "expected '('"
	case ExpectedComma:
		return "expected ','"
	case ExpectedScaleControl:
		return "expected scale control 'P'"
	case NumberTooBig:
		return "number too big"
	case RepeatingDollar:
		return "repeat count on '$'"
	case RepeatingColon:
		return "repeat count on ':'"
	case RepeatingStr:
		return "repeat count on a string literal"
	case RepeatingBlankControl:
		return "repeat count on blank control"
	case RepeatingTab:
		return "repeat count on tab control"
	case RepeatingQ:
		return "repeat count on 'Q'"
	case ExtraComma:
		return "extra comma"
	case MissingScale:
		return "'P' without a scale factor"
	case UnexpectedChar:
		return "unexpected character"
	case MissingRadix:
		return "'R' without a radix"
	case RadixOutOfRange:
		return "radix out of range"
	}
	return fmt.Sprintf("unknown parse error (%d)", int(k))
}

// ParseError is the error returned by Parse. Offset is the byte offset
// into the format string at which the error was detected.
type ParseError struct {
	Kind   ParseErrKind
	Offset int
	// Char is the offending character for UnexpectedChar.
	Char rune
	// Value is the offending number for RadixOutOfRange.
	Value int
}

var _ error = (*ParseError)(nil)
var _ fmt.Formatter = (*ParseError)(nil)
var _ errors.SafeFormatter = (*ParseError)(nil)

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("format parse error at offset %d: %s", e.Offset, e.Kind)
	switch e.Kind {
	case UnexpectedChar:
		msg += fmt.Sprintf(" %q", e.Char)
	case RadixOutOfRange:
		msg += fmt.Sprintf(" (%d)", e.Value)
	}
	return msg
}

func (e *ParseError) Format(s fmt.State, verb rune) { errors.FormatError(e, s, verb) }

// SafeFormatError implements errors.SafeFormatter. Everything in a
// parse error comes from the format string, which is programmer input,
// so the message is reportable in full.
func (e *ParseError) SafeFormatError(p errors.Printer) error {
	p.Printf("format parse error at offset %d: %s",
		redact.Safe(e.Offset), redact.Safe(e.Kind.String()))
	switch e.Kind {
	case UnexpectedChar:
		p.Printf(" %q", redact.Safe(string(e.Char)))
	case RadixOutOfRange:
		p.Printf(" (%d)", redact.Safe(e.Value))
	}
	return nil
}
