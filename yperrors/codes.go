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

package yperrors

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// CodeOK means no error.
	CodeOK Code = 0

	// CodeAllocation means the provider could not allocate state for the
	// request, for example a fresh resource identifier.
	CodeAllocation Code = 1

	// CodeInvalidArgs means the caller passed arguments that can never
	// succeed, regardless of the provider's state.
	CodeInvalidArgs Code = 2

	// CodeInvalidProvider means the provider id is already in use or does
	// not name a usable provider.
	CodeInvalidProvider Code = 3

	// CodeInvalidResource means no resource with the requested id exists on
	// the provider.
	CodeInvalidResource Code = 4

	// CodeInvalidBackend means no backend with the requested type name is
	// registered, or a backend with that name is already registered.
	CodeInvalidBackend Code = 5

	// CodeInvalidConfig means a JSON configuration failed to parse, or was
	// not an object where an object is required.
	CodeInvalidConfig Code = 6

	// CodeInvalidToken means the request token does not match the
	// provider's token.
	CodeInvalidToken Code = 7

	// CodeFromTransport means the request failed below the application:
	// address resolution, encoding, sending, decoding, or routing to an
	// unknown provider. All such causes collapse into this code.
	CodeFromTransport Code = 8

	// CodeFromConcurrencyRuntime means a failure of the runtime executing
	// the handlers.
	CodeFromConcurrencyRuntime Code = 9

	// CodeOpUnsupported means the operation is not supported by the
	// backend or by the client's transport.
	CodeOpUnsupported Code = 10

	// CodeOpForbidden means the operation is not allowed on the resource.
	CodeOpForbidden Code = 11

	// CodeOther means any failure that does not fit another code, for
	// example an untyped error returned by a backend.
	CodeOther Code = 12
)

var (
	_codeToString = map[Code]string{
		CodeOK:                     "ok",
		CodeAllocation:             "allocation",
		CodeInvalidArgs:            "invalid-args",
		CodeInvalidProvider:        "invalid-provider",
		CodeInvalidResource:        "invalid-resource",
		CodeInvalidBackend:         "invalid-backend",
		CodeInvalidConfig:          "invalid-config",
		CodeInvalidToken:           "invalid-token",
		CodeFromTransport:          "from-transport",
		CodeFromConcurrencyRuntime: "from-concurrency-runtime",
		CodeOpUnsupported:          "op-unsupported",
		CodeOpForbidden:            "op-forbidden",
		CodeOther:                  "other",
	}
	_stringToCode = map[string]Code{
		"ok":                       CodeOK,
		"allocation":               CodeAllocation,
		"invalid-args":             CodeInvalidArgs,
		"invalid-provider":         CodeInvalidProvider,
		"invalid-resource":         CodeInvalidResource,
		"invalid-backend":          CodeInvalidBackend,
		"invalid-config":           CodeInvalidConfig,
		"invalid-token":            CodeInvalidToken,
		"from-transport":           CodeFromTransport,
		"from-concurrency-runtime": CodeFromConcurrencyRuntime,
		"op-unsupported":           CodeOpUnsupported,
		"op-forbidden":             CodeOpForbidden,
		"other":                    CodeOther,
	}
)

// Code is the result of a provider operation. It travels on the wire as the
// int32 "ret" field of every admin and client response.
type Code int32

// String returns the string representation of the Code.
func (c Code) String() string {
	s, ok := _codeToString[c]
	if ok {
		return s
	}
	return strconv.Itoa(int(c))
}

// ParseCode returns the Code named by s. Names are case-insensitive.
func ParseCode(s string) (Code, error) {
	c, ok := _stringToCode[strings.ToLower(s)]
	if !ok {
		return CodeOther, fmt.Errorf("unknown code string: %s", s)
	}
	return c, nil
}

// MarshalText implements encoding.TextMarshaler.
func (c Code) MarshalText() ([]byte, error) {
	s, ok := _codeToString[c]
	if ok {
		return []byte(s), nil
	}
	return nil, fmt.Errorf("unknown code: %d", int(c))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Code) UnmarshalText(text []byte) error {
	i, err := ParseCode(string(text))
	if err != nil {
		return err
	}
	*c = i
	return nil
}
