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
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/yarpc/yarpcerrors"
)

var _codeToErrorConstructor = map[Code]func(string, ...interface{}) error{
	CodeAllocation:      AllocationErrorf,
	CodeInvalidArgs:     InvalidArgsErrorf,
	CodeInvalidProvider: InvalidProviderErrorf,
	CodeInvalidResource: InvalidResourceErrorf,
	CodeInvalidBackend:  InvalidBackendErrorf,
	CodeInvalidConfig:   InvalidConfigErrorf,
	CodeInvalidToken:    InvalidTokenErrorf,
	CodeOpUnsupported:   OpUnsupportedErrorf,
	CodeOpForbidden:     OpForbiddenErrorf,
	CodeOther:           OtherErrorf,
}

func TestErrorsString(t *testing.T) {
	for code, errorConstructor := range _codeToErrorConstructor {
		t.Run(code.String(), func(t *testing.T) {
			status, ok := errorConstructor("hello %d", 1).(*Status)
			require.True(t, ok)
			assert.Equal(t, fmt.Sprintf("code:%s message:hello 1", code.String()), status.Error())
			assert.Equal(t, code, ErrorCode(status))
			assert.True(t, IsStatus(status))
		})
	}
}

func TestNewfOK(t *testing.T) {
	assert.Nil(t, Newf(CodeOK, "ok"))
	assert.Equal(t, CodeOK, ErrorCode(nil))
	assert.Equal(t, "", (*Status)(nil).Message())
}

func TestFromError(t *testing.T) {
	cause := errors.New("great sadness")

	tests := []struct {
		desc    string
		give    error
		want    Code
		wantIs  error
		wantNil bool
	}{
		{
			desc:    "nil",
			wantNil: true,
		},
		{
			desc: "status",
			give: InvalidTokenErrorf("bad token"),
			want: CodeInvalidToken,
		},
		{
			desc: "wrapped status",
			give: fmt.Errorf("create: %w", InvalidConfigErrorf("bad config")),
			want: CodeInvalidConfig,
		},
		{
			desc: "yarpc status",
			give: yarpcerrors.UnimplementedErrorf("unrecognized procedure"),
			want: CodeFromTransport,
		},
		{
			desc:   "deadline",
			give:   fmt.Errorf("call: %w", context.DeadlineExceeded),
			want:   CodeFromTransport,
			wantIs: context.DeadlineExceeded,
		},
		{
			desc:   "unknown error",
			give:   cause,
			want:   CodeOther,
			wantIs: cause,
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			st := FromError(tt.give)
			if tt.wantNil {
				assert.Nil(t, st)
				return
			}
			require.NotNil(t, st)
			assert.Equal(t, tt.want, st.Code())
			if tt.wantIs != nil {
				assert.True(t, errors.Is(st, tt.wantIs))
			}
		})
	}
}

func TestFromTransport(t *testing.T) {
	assert.Nil(t, FromTransport(nil))

	yerr := yarpcerrors.UnavailableErrorf("provider %d is destroyed", 42)
	st := FromTransport(yerr)
	assert.Equal(t, CodeFromTransport, st.Code())
	assert.True(t, yarpcerrors.IsUnavailable(st))
	assert.Equal(t, "code:from-transport message:"+yerr.Error(), st.Error())
}

func TestFromRet(t *testing.T) {
	assert.NoError(t, FromRet(0, "sum"))

	err := FromRet(int32(CodeInvalidResource), "sum")
	require.Error(t, err)
	assert.Equal(t, CodeInvalidResource, ErrorCode(err))
	assert.Equal(t, "code:invalid-resource message:sum failed: invalid-resource", err.Error())
}
