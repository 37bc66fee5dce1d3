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
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/m1el/f77-io/ftypes"
)

// setBool stores v when dst is a logical destination.
func setBool(dst interface{}, v bool) bool {
	switch d := dst.(type) {
	case *bool:
		*d = v
	case *ftypes.Logical2:
		*d = ftypes.Logical2(v)
	case *ftypes.Logical4:
		*d = ftypes.Logical4(v)
	case *ftypes.Logical8:
		*d = ftypes.Logical8(v)
	default:
		return false
	}
	return true
}

// parseInt parses the cleaned-up field s into dst in the given base.
// The first result is false when dst is not an integer destination.
func parseInt(dst interface{}, s string, base int) (matched bool, err error) {
	wrap := func(e error) error {
		return errors.Mark(errors.Wrapf(e, "field %q", s), ErrParseInt)
	}
	signed := func(bits int) (int64, error) {
		v, e := strconv.ParseInt(s, base, bits)
		if e != nil {
			return 0, wrap(e)
		}
		return v, nil
	}
	unsigned := func(bits int) (uint64, error) {
		v, e := strconv.ParseUint(s, base, bits)
		if e != nil {
			return 0, wrap(e)
		}
		return v, nil
	}
	switch d := dst.(type) {
	case *int8:
		v, e := signed(8)
		*d = int8(v)
		return true, e
	case *int16:
		v, e := signed(16)
		*d = int16(v)
		return true, e
	case *int32:
		v, e := signed(32)
		*d = int32(v)
		return true, e
	case *int64:
		v, e := signed(64)
		*d = v
		return true, e
	case *int:
		v, e := signed(64)
		*d = int(v)
		return true, e
	case *uint8:
		v, e := unsigned(8)
		*d = uint8(v)
		return true, e
	case *uint16:
		v, e := unsigned(16)
		*d = uint16(v)
		return true, e
	case *uint32:
		v, e := unsigned(32)
		*d = uint32(v)
		return true, e
	case *uint64:
		v, e := unsigned(64)
		*d = v
		return true, e
	case *uint:
		v, e := unsigned(64)
		*d = uint(v)
		return true, e
	}
	return false, nil
}

// setIntValue stores v when dst is an integer destination.
func setIntValue(dst interface{}, v int64) bool {
	switch d := dst.(type) {
	case *int8:
		*d = int8(v)
	case *int16:
		*d = int16(v)
	case *int32:
		*d = int32(v)
	case *int64:
		*d = v
	case *int:
		*d = int(v)
	case *uint8:
		*d = uint8(v)
	case *uint16:
		*d = uint16(v)
	case *uint32:
		*d = uint32(v)
	case *uint64:
		*d = uint64(v)
	case *uint:
		*d = uint(v)
	default:
		return false
	}
	return true
}

// parseFloat parses a cleaned-up real field.
func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Mark(errors.Wrapf(err, "field %q", s), ErrParseFloat)
	}
	return v, nil
}

// setFloat stores v when dst is a real destination.
func setFloat(dst interface{}, v float64) bool {
	switch d := dst.(type) {
	case *float32:
		*d = float32(v)
	case *float64:
		*d = v
	default:
		return false
	}
	return true
}

// intWidthOf reports the type-default input field width of an integer
// destination.
func intWidthOf(dst interface{}) int {
	switch dst.(type) {
	case *int8, *uint8:
		return 5
	case *int16, *uint16:
		return 7
	case *int32, *uint32:
		return 12
	}
	return 23
}

// tagOfDest classifies a pointer destination by its element type.
func tagOfDest(dst interface{}) (ftypes.Tag, bool) {
	switch dst.(type) {
	case *bool:
		return ftypes.Bool, true
	case *ftypes.Logical2:
		return ftypes.Bool2, true
	case *ftypes.Logical4:
		return ftypes.Bool4, true
	case *ftypes.Logical8:
		return ftypes.Bool8, true
	case *int8:
		return ftypes.Byte, true
	case *uint8:
		return ftypes.Ubyte, true
	case *int16:
		return ftypes.Int2, true
	case *int32:
		return ftypes.Int4, true
	case *int64, *int:
		return ftypes.Int8, true
	case *uint16:
		return ftypes.Uint2, true
	case *uint32:
		return ftypes.Uint4, true
	case *uint64, *uint:
		return ftypes.Uint8, true
	case *float32:
		return ftypes.Real4, true
	case *float64:
		return ftypes.Real8, true
	case *string:
		return ftypes.Str, true
	case *complex64:
		return ftypes.Complex4, true
	case *complex128:
		return ftypes.Complex8, true
	}
	return 0, false
}
