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

// Package yperrors holds the result codes shared by providers, backends and
// clients, and the Status error that carries them.
package yperrors

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"go.uber.org/yarpc/yarpcerrors"
)

// Newf returns a new Status.
//
// The Code should never be CodeOK, if it is, this will return nil.
func Newf(code Code, format string, args ...interface{}) *Status {
	if code == CodeOK {
		return nil
	}

	var err error
	if len(args) == 0 {
		err = errors.New(format)
	} else {
		err = fmt.Errorf(format, args...)
	}

	return &Status{
		code: code,
		err:  err,
	}
}

// FromError returns the Status for the provided error.
//
// If the error:
//   - is nil, return nil
//   - is or wraps a 'Status', return the 'Status'
//   - is or wraps a YARPC status, or is a context error, return a Status
//     with code 'CodeFromTransport' wrapping it
//
// Otherwise, return a wrapped error with code 'CodeOther'.
func FromError(err error) *Status {
	if err == nil {
		return nil
	}

	var st *Status
	if errors.As(err, &st) {
		return st
	}

	if yarpcerrors.IsStatus(err) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) {
		return FromTransport(err)
	}

	return &Status{
		code: CodeOther,
		err:  &wrapError{err: err},
	}
}

// FromTransport wraps an error returned by the RPC layer. Every transport
// failure, whatever its cause, is reported with CodeFromTransport.
func FromTransport(err error) *Status {
	if err == nil {
		return nil
	}
	return &Status{
		code: CodeFromTransport,
		err:  &wrapError{err: err},
	}
}

// FromRet converts the "ret" field of a response into an error. Zero is
// success and returns nil.
func FromRet(ret int32, procedure string) error {
	if ret == 0 {
		return nil
	}
	code := Code(ret)
	return Newf(code, "%s failed: %v", procedure, code)
}

// ErrorCode returns the Code carried by err: CodeOK for nil, the Status code
// when err is or wraps a Status, and the FromError classification otherwise.
func ErrorCode(err error) Code {
	return FromError(err).Code()
}

// Unwrap supports errors.Unwrap.
//
// See "errors" package documentation for details.
func (s *Status) Unwrap() error {
	if s == nil {
		return nil
	}
	return errors.Unwrap(s.err)
}

// IsStatus returns whether the provided error is or wraps a Status.
//
// This is false if the error is nil.
func IsStatus(err error) bool {
	var st *Status
	return errors.As(err, &st)
}

// Status is the error returned by provider operations and clients.
type Status struct {
	code Code
	err  error
}

// Code returns the error code for this Status.
func (s *Status) Code() Code {
	if s == nil {
		return CodeOK
	}
	return s.code
}

// Message returns the error message for this Status.
func (s *Status) Message() string {
	if s == nil {
		return ""
	}
	return s.err.Error()
}

// Error implements the error interface.
func (s *Status) Error() string {
	buffer := bytes.NewBuffer(nil)
	_, _ = buffer.WriteString(`code:`)
	_, _ = buffer.WriteString(s.code.String())
	if s.err != nil && s.err.Error() != "" {
		_, _ = buffer.WriteString(` message:`)
		_, _ = buffer.WriteString(s.err.Error())
	}
	return buffer.String()
}

// AllocationErrorf returns a new Status with code CodeAllocation
// by calling Newf(CodeAllocation, format, args...).
func AllocationErrorf(format string, args ...interface{}) error {
	return Newf(CodeAllocation, format, args...)
}

// InvalidArgsErrorf returns a new Status with code CodeInvalidArgs
// by calling Newf(CodeInvalidArgs, format, args...).
func InvalidArgsErrorf(format string, args ...interface{}) error {
	return Newf(CodeInvalidArgs, format, args...)
}

// InvalidProviderErrorf returns a new Status with code CodeInvalidProvider
// by calling Newf(CodeInvalidProvider, format, args...).
func InvalidProviderErrorf(format string, args ...interface{}) error {
	return Newf(CodeInvalidProvider, format, args...)
}

// InvalidResourceErrorf returns a new Status with code CodeInvalidResource
// by calling Newf(CodeInvalidResource, format, args...).
func InvalidResourceErrorf(format string, args ...interface{}) error {
	return Newf(CodeInvalidResource, format, args...)
}

// InvalidBackendErrorf returns a new Status with code CodeInvalidBackend
// by calling Newf(CodeInvalidBackend, format, args...).
func InvalidBackendErrorf(format string, args ...interface{}) error {
	return Newf(CodeInvalidBackend, format, args...)
}

// InvalidConfigErrorf returns a new Status with code CodeInvalidConfig
// by calling Newf(CodeInvalidConfig, format, args...).
func InvalidConfigErrorf(format string, args ...interface{}) error {
	return Newf(CodeInvalidConfig, format, args...)
}

// InvalidTokenErrorf returns a new Status with code CodeInvalidToken
// by calling Newf(CodeInvalidToken, format, args...).
func InvalidTokenErrorf(format string, args ...interface{}) error {
	return Newf(CodeInvalidToken, format, args...)
}

// OpUnsupportedErrorf returns a new Status with code CodeOpUnsupported
// by calling Newf(CodeOpUnsupported, format, args...).
func OpUnsupportedErrorf(format string, args ...interface{}) error {
	return Newf(CodeOpUnsupported, format, args...)
}

// OpForbiddenErrorf returns a new Status with code CodeOpForbidden
// by calling Newf(CodeOpForbidden, format, args...).
func OpForbiddenErrorf(format string, args ...interface{}) error {
	return Newf(CodeOpForbidden, format, args...)
}

// OtherErrorf returns a new Status with code CodeOther
// by calling Newf(CodeOther, format, args...).
func OtherErrorf(format string, args ...interface{}) error {
	return Newf(CodeOther, format, args...)
}

type wrapError struct {
	err error
}

func (e *wrapError) Error() string {
	return e.err.Error()
}

func (e *wrapError) Unwrap() error {
	return e.err
}
