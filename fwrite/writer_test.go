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

package fwrite_test

import (
	"bytes"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/m1el/f77-io/format"
	"github.com/m1el/f77-io/fwrite"
)

// drive runs one output statement: the values interleaved with the
// non-data editings, then the closing call.
func drive(t *testing.T, fmtstr string, vals ...interface{}) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	w := fwrite.NewWriter(format.MustParse(fmtstr))
	for _, v := range vals {
		if err := w.EmitNonData(&buf, true); err != nil {
			return buf.String(), err
		}
		if err := w.EmitValue(&buf, v); err != nil {
			return buf.String(), err
		}
	}
	err := w.EmitNonData(&buf, false)
	return buf.String(), err
}

func expectOutput(t *testing.T, fmtstr string, expected string, vals ...interface{}) {
	t.Helper()
	got, err := drive(t, fmtstr, vals...)
	if err != nil {
		t.Fatalf("%s: unexpected error: %v", fmtstr, err)
	}
	if got != expected {
		t.Errorf("%s: expected %q, got %q", fmtstr, expected, got)
	}
}

func TestWriteFormatted(t *testing.T) {
	expectOutput(t, "(I8.3, F8.3)", "     042 123.456\n", uint64(42), 123.456)
	expectOutput(t, "(I4)", "   7\n", int32(7))
	expectOutput(t, "('ab', 2X/I2)", "ab  \n 7\n", int32(7))
	expectOutput(t, "(L2, L7)", " T      F\n", true, false)
	expectOutput(t, "(A8)", "******hi\n", "hi")
	expectOutput(t, "(A2)", "he\n", "hello")
	expectOutput(t, "(Z6, O6)", "    ff    10\n", uint32(255), uint32(8))
}

func TestWriteOverflowFillsStars(t *testing.T) {
	expectOutput(t, "(I4)", "****\n", int64(123456))
	expectOutput(t, "(F6.3)", "******\n", 123.456)
}

func TestWriteReversion(t *testing.T) {
	expectOutput(t, "(I4)", "   1   2\n", int32(1), int32(2))
	expectOutput(t, "(I2, ', ')", " 1,  2, \n", int32(1), int32(2))
}

func TestWriteDataWithoutFormat(t *testing.T) {
	_, err := drive(t, "()", int32(1))
	if !errors.Is(err, fwrite.ErrDataWithoutFormat) {
		t.Errorf("expected ErrDataWithoutFormat, got %v", err)
	}
}

func TestWriteSuppressNewLine(t *testing.T) {
	expectOutput(t, "(I2, $)", " 5", int32(5))
}

func TestWriteTerminate(t *testing.T) {
	// ':' with no values left stops before the trailing text and the
	// record terminator.
	expectOutput(t, "(I2, :, ' after')", " 5", int32(5))
	// With values left it is a no-op.
	expectOutput(t, "(I2, :, I2)", " 1 2\n", int32(1), int32(2))
}

func TestWriteQRejected(t *testing.T) {
	_, err := drive(t, "(Q, I2)", int32(1))
	if !errors.Is(err, fwrite.ErrUnexpectedQInWrite) {
		t.Errorf("expected ErrUnexpectedQInWrite, got %v", err)
	}
}

func TestWriteInvalidState(t *testing.T) {
	var buf bytes.Buffer
	w := fwrite.NewWriter(format.MustParse("('x')"))
	err := w.EmitValue(&buf, int32(1))
	if !errors.Is(err, fwrite.ErrInvalidState) {
		t.Errorf("expected ErrInvalidState, got %v", err)
	}
}

func TestWriteInvalidEditing(t *testing.T) {
	_, err := drive(t, "(L2)", int32(42))
	var ie *fwrite.InvalidEditingError
	if !errors.As(err, &ie) {
		t.Fatalf("expected InvalidEditingError, got %v", err)
	}
	if _, ok := ie.Node.(format.Bool); !ok {
		t.Errorf("expected a Bool leaf, got %T", ie.Node)
	}
}

func TestWriteStickyRadix(t *testing.T) {
	expectOutput(t, "(16R, I4)", "  ff\n", uint32(255))
	// O and Z are unaffected by the sticky radix.
	expectOutput(t, "(2R, Z4)", "  ff\n", uint32(255))
}

func TestWriteStickyScale(t *testing.T) {
	expectOutput(t, "(1P, E12.5)", " 1.23456E+02\n", 123.456)
	expectOutput(t, "(1P, F6.3)", " 5.000\n", 0.5)
}

func TestWriteComplex(t *testing.T) {
	expectOutput(t, "(F8.3)", " (   1.500,  -2.250)\n", complex64(complex(1.5, -2.25)))
}

func TestWriteSlice(t *testing.T) {
	expectOutput(t, "(3(I3, 1X))", "  1   2   3 \n", []int32{1, 2, 3})
}

func TestWriteColumnControl(t *testing.T) {
	expectOutput(t, "('ab', T6, I2)", "ab    7\n", int32(7))
	expectOutput(t, "('ab', TR2, I2)", "ab   7\n", int32(7))
}

func TestWriteDefault(t *testing.T) {
	var buf bytes.Buffer
	if err := fwrite.WriteDefault(&buf, uint32(42)); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "          42\n" {
		t.Errorf("expected %q, got %q", "          42\n", got)
	}

	buf.Reset()
	if err := fwrite.WriteDefault(&buf, int8(-5), true, "hi"); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "   -5      Thi\n" {
		t.Errorf("unexpected output %q", got)
	}

	buf.Reset()
	if err := fwrite.WriteDefault(&buf, []uint32{1, 2}); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "           1           2\n" {
		t.Errorf("unexpected output %q", got)
	}
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("sink is closed")
}

func TestWriteIOError(t *testing.T) {
	w := fwrite.NewWriter(format.MustParse("('x')"))
	err := w.EmitNonData(failingWriter{}, false)
	if !errors.Is(err, fwrite.ErrIO) {
		t.Errorf("expected ErrIO, got %v", err)
	}
}
