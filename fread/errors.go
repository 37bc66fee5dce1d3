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
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
	"github.com/m1el/f77-io/format"
	"github.com/m1el/f77-io/ftypes"
)

var (
	// ErrIO marks any failure of the underlying source. The cause is
	// preserved; test with errors.Is(err, ErrIO).
	ErrIO = errors.New("i/o failure during formatted read")
	// ErrUnexpectedLiteral is reported when a quoted literal editing is
	// encountered on input.
	ErrUnexpectedLiteral = errors.New("literal editing is not valid for input")
	// ErrNoDataEditings is reported when destinations remain but the
	// format contains no data editings.
	ErrNoDataEditings = errors.New("destinations remain but the format has no data editings")
	// ErrInvalidState is reported when a destination is supplied while
	// the reader is not positioned at a data editing.
	ErrInvalidState = errors.New("reader is not positioned at a data editing")
	// ErrParseBool marks a logical field that is neither T nor F.
	ErrParseBool = errors.New("invalid logical field")
	// ErrParseInt marks an integer field rejected by the number parser.
	// The strconv cause is preserved.
	ErrParseInt = errors.New("invalid integer field")
	// ErrParseFloat marks a real field rejected by the number parser.
	ErrParseFloat = errors.New("invalid real field")
)

func markIO(err error) error {
	return errors.Mark(errors.Wrap(err, "formatted read"), ErrIO)
}

// InvalidEditingError is reported when a data editing does not accept
// the type of the destination supplied for it.
type InvalidEditingError struct {
	Node format.Node
	Tag  ftypes.Tag
}

var _ error = (*InvalidEditingError)(nil)
var _ fmt.Formatter = (*InvalidEditingError)(nil)
var _ errors.SafeFormatter = (*InvalidEditingError)(nil)

func (e *InvalidEditingError) Error() string {
	return fmt.Sprintf("editing %s does not accept a destination of type %s", e.Node, e.Tag)
}

func (e *InvalidEditingError) Format(s fmt.State, verb rune) { errors.FormatError(e, s, verb) }

// SafeFormatError implements errors.SafeFormatter; the editing
// descriptor and type tag are program text.
func (e *InvalidEditingError) SafeFormatError(p errors.Printer) error {
	p.Printf("editing %s does not accept a destination of type %s",
		redact.Safe(e.Node.String()), redact.Safe(e.Tag.String()))
	return nil
}
