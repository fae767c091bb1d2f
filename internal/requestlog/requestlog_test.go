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

package requestlog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/yarpc/api/transport"
	"go.uber.org/yarpc/encoding/json"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type unaryHandlerFunc func(context.Context, *transport.Request, transport.ResponseWriter) error

func (f unaryHandlerFunc) Handle(ctx context.Context, req *transport.Request, resw transport.ResponseWriter) error {
	return f(ctx, req, resw)
}

type onewayHandlerFunc func(context.Context, *transport.Request) error

func (f onewayHandlerFunc) HandleOneway(ctx context.Context, req *transport.Request) error {
	return f(ctx, req)
}

type unaryOutboundFunc struct {
	transport.UnaryOutbound

	call func(context.Context, *transport.Request) (*transport.Response, error)
}

func (o unaryOutboundFunc) Call(ctx context.Context, req *transport.Request) (*transport.Response, error) {
	return o.call(ctx, req)
}

func newRequest() *transport.Request {
	return &transport.Request{
		Service:   "yp-42",
		Procedure: "sum",
		Caller:    "yp",
		Encoding:  json.Encoding,
	}
}

func TestInbound(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	mw := NewInbound(zap.New(core))

	failure := errors.New("great sadness")
	err := mw.Handle(context.Background(), newRequest(), nil, unaryHandlerFunc(
		func(context.Context, *transport.Request, transport.ResponseWriter) error {
			return failure
		}))
	assert.Equal(t, failure, err)

	require.NoError(t, mw.HandleOneway(context.Background(), newRequest(), onewayHandlerFunc(
		func(context.Context, *transport.Request) error { return nil })))

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)

	assert.Equal(t, "handled request", entries[0].Message)
	assert.Equal(t, "requestlog", entries[0].LoggerName)
	fields := entries[0].ContextMap()
	assert.Equal(t, "yp-42", fields["service"])
	assert.Equal(t, "sum", fields["procedure"])
	assert.Equal(t, "json", fields["encoding"])
	assert.Equal(t, "great sadness", fields["error"])

	assert.Equal(t, "handled oneway request", entries[1].Message)
}

func TestOutbound(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	mw := NewOutbound(zap.New(core))

	want := &transport.Response{}
	res, err := mw.Call(context.Background(), newRequest(), unaryOutboundFunc{
		call: func(context.Context, *transport.Request) (*transport.Response, error) {
			return want, nil
		},
	})
	require.NoError(t, err)
	assert.Equal(t, want, res)

	entries := logs.FilterMessage("sent request").AllUntimed()
	require.Len(t, entries, 1)
	assert.Equal(t, "yp", entries[0].ContextMap()["caller"])
}

func TestNilLogger(t *testing.T) {
	assert.NotNil(t, NewInbound(nil).logger)
	assert.NotNil(t, NewOutbound(nil).logger)
}
