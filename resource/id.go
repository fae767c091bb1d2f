// Copyright (c) 2026 Uber Technologies, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package resource

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/ypservice/yp/yperrors"
)

const _idTextLen = 36

// ID identifies a resource within a provider. IDs are random (version 4)
// UUIDs generated by the provider when the resource is created or opened.
//
// On the wire an ID is its canonical text form: 36 lowercase hexadecimal
// characters and hyphens.
type ID uuid.UUID

// Nil is the all-zero ID. It is never assigned to a resource.
var Nil ID

// NewID returns a fresh random ID.
func NewID() (ID, error) {
	u, err := uuid.NewRandom()
	if err != nil {
		return Nil, yperrors.AllocationErrorf("could not generate resource id: %v", err)
	}
	return ID(u), nil
}

// ParseID parses the canonical text form of an ID.
func ParseID(s string) (ID, error) {
	if len(s) != _idTextLen {
		return Nil, fmt.Errorf("invalid resource id %q: want %d characters", s, _idTextLen)
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return Nil, fmt.Errorf("invalid resource id %q: %v", s, err)
	}
	return ID(u), nil
}

// String returns the canonical text form of the ID.
func (id ID) String() string {
	return uuid.UUID(id).String()
}

// IsNil reports whether id is the Nil ID.
func (id ID) IsNil() bool {
	return id == Nil
}

// MarshalText implements encoding.TextMarshaler.
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ID) UnmarshalText(text []byte) error {
	parsed, err := ParseID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler. The binary form is the
// 16 raw bytes of the UUID.
func (id ID) MarshalBinary() ([]byte, error) {
	b := make([]byte, len(id))
	copy(b, id[:])
	return b, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (id *ID) UnmarshalBinary(data []byte) error {
	if len(data) != len(id) {
		return fmt.Errorf("invalid resource id: want %d bytes, got %d", len(id), len(data))
	}
	copy(id[:], data)
	return nil
}
