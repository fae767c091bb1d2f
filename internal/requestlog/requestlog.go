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

// Package requestlog provides middleware that logs every request at debug
// level.
package requestlog

import (
	"context"
	"time"

	"go.uber.org/yarpc/api/middleware"
	"go.uber.org/yarpc/api/transport"
	"go.uber.org/zap"
)

var (
	_ middleware.UnaryInbound  = (*Inbound)(nil)
	_ middleware.OnewayInbound = (*Inbound)(nil)
	_ middleware.UnaryOutbound = (*Outbound)(nil)
)

// Inbound logs requests received by a dispatcher.
type Inbound struct {
	logger *zap.Logger
}

// NewInbound builds an Inbound middleware.
func NewInbound(logger *zap.Logger) *Inbound {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Inbound{logger: logger.Named("requestlog")}
}

// Handle implements middleware.UnaryInbound.
func (i *Inbound) Handle(ctx context.Context, req *transport.Request, resw transport.ResponseWriter, h transport.UnaryHandler) error {
	start := time.Now()
	err := h.Handle(ctx, req, resw)
	i.logger.Debug("handled request", append(fields(req), zap.Duration("latency", time.Since(start)), zap.Error(err))...)
	return err
}

// HandleOneway implements middleware.OnewayInbound.
func (i *Inbound) HandleOneway(ctx context.Context, req *transport.Request, h transport.OnewayHandler) error {
	err := h.HandleOneway(ctx, req)
	i.logger.Debug("handled oneway request", append(fields(req), zap.Error(err))...)
	return err
}

// Outbound logs requests sent by a dispatcher.
type Outbound struct {
	logger *zap.Logger
}

// NewOutbound builds an Outbound middleware.
func NewOutbound(logger *zap.Logger) *Outbound {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Outbound{logger: logger.Named("requestlog")}
}

// Call implements middleware.UnaryOutbound.
func (o *Outbound) Call(ctx context.Context, req *transport.Request, out transport.UnaryOutbound) (*transport.Response, error) {
	start := time.Now()
	res, err := out.Call(ctx, req)
	o.logger.Debug("sent request", append(fields(req), zap.Duration("latency", time.Since(start)), zap.Error(err))...)
	return res, err
}

func fields(req *transport.Request) []zap.Field {
	return []zap.Field{
		zap.String("service", req.Service),
		zap.String("procedure", req.Procedure),
		zap.String("caller", req.Caller),
		zap.String("encoding", string(req.Encoding)),
	}
}
