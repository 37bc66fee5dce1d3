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
	"io"
	"reflect"

	"github.com/cockroachdb/errors"
	"github.com/m1el/f77-io/format"
	"github.com/m1el/f77-io/ftypes"
)

// WriteDefault is list-directed ("star") output: every value is
// rendered at its type-default width with no separators, and a single
// record terminator ends the statement.
func WriteDefault(dst io.Writer, vals ...interface{}) error {
	for _, v := range vals {
		if err := writeDefault(dst, v); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(dst, "\n"); err != nil {
		return markIO(err)
	}
	return nil
}

func writeDefault(dst io.Writer, val interface{}) error {
	if val == nil {
		return errors.AssertionFailedf("nil value in output list")
	}
	if rv := reflect.ValueOf(val); rv.Kind() == reflect.Slice {
		for i := 0; i < rv.Len(); i++ {
			if err := writeDefault(dst, rv.Index(i).Interface()); err != nil {
				return err
			}
		}
		return nil
	}
	field, err := defaultField(val)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(dst, field); err != nil {
		return markIO(err)
	}
	return nil
}

func defaultField(val interface{}) (string, error) {
	if b, ok := boolValue(val); ok {
		return boolField(b, 7), nil
	}
	if neg, mag, defWidth, ok := splitInt(val); ok {
		return intField(neg, mag, 10, defWidth, format.Unset), nil
	}
	switch v := val.(type) {
	case float32:
		return defaultReal(float64(v), 32), nil
	case float64:
		return defaultReal(v, 64), nil
	case string:
		return v, nil
	case complex64:
		return " (" + defaultReal(float64(real(v)), 32) + "," +
			defaultReal(float64(imag(v)), 32) + ")", nil
	case complex128:
		return " (" + defaultReal(real(v), 64) + "," + defaultReal(imag(v), 64) + ")", nil
	}
	if tag, ok := ftypes.TagOf(val); ok {
		return "", errors.AssertionFailedf("no default editing for %s", tag)
	}
	return "", errors.AssertionFailedf("unsupported value type %T", val)
}

// defaultReal renders a float the way Gw.d editing would at the
// type-default width: 15.6 for 32-bit values, 25.16 for 64-bit.
func defaultReal(v float64, bits int) string {
	width, d := 25, 16
	if bits == 32 {
		width, d = 15, 6
	}
	return realField(v, format.RealG, width, d, format.Unset, 0, bits)
}
