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

package fwrite

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
	"github.com/m1el/f77-io/format"
	"github.com/m1el/f77-io/ftypes"
)

var (
	// ErrIO marks any failure of the underlying sink. The cause is
	// preserved; test with errors.Is(err, ErrIO).
	ErrIO = errors.New("i/o failure during formatted write")
	// ErrDataWithoutFormat is reported when values remain after a full
	// pass over the format but the format contains no data editings.
	ErrDataWithoutFormat = errors.New("values remain but the format has no data editings")
	// ErrUnexpectedQInWrite is reported when a 'Q' editing is
	// encountered on output.
	ErrUnexpectedQInWrite = errors.New("'Q' editing is not valid for output")
	// ErrInvalidState is reported when a value is supplied while the
	// writer is not positioned at a data editing.
	ErrInvalidState = errors.New("writer is not positioned at a data editing")
)

func markIO(err error) error {
	return errors.Mark(errors.Wrap(err, "formatted write"), ErrIO)
}

// InvalidEditingError is reported when a data editing does not accept
// the type of the value supplied for it.
type InvalidEditingError struct {
	Node format.Node
	Tag  ftypes.Tag
}

var _ error = (*InvalidEditingError)(nil)
var _ fmt.Formatter = (*InvalidEditingError)(nil)
var _ errors.SafeFormatter = (*InvalidEditingError)(nil)

func (e *InvalidEditingError) Error() string {
	return fmt.Sprintf("editing %s does not accept a value of type %s", e.Node, e.Tag)
}

func (e *InvalidEditingError) Format(s fmt.State, verb rune) { errors.FormatError(e, s, verb) }

// SafeFormatError implements errors.SafeFormatter. The editing
// descriptor and the type tag both come from program text, never from
// the data being written.
func (e *InvalidEditingError) SafeFormatError(p errors.Printer) error {
	p.Printf("editing %s does not accept a value of type %s",
		redact.Safe(e.Node.String()), redact.Safe(e.Tag.String()))
	return nil
}
